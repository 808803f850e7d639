package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/shop-dashboard/internal/domain/models"
	"github.com/linemk/shop-dashboard/internal/service"
	"github.com/linemk/shop-dashboard/internal/storage"
)

var validate = validator.New()

// ErrorResponse — тело любого ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse — простой ответ с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

var errEmptyBody = errors.New("request body is empty")

func writeJSON(log *slog.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response", slog.Any("error", err))
	}
}

func writeError(log *slog.Logger, w http.ResponseWriter, status int, msg string) {
	writeJSON(log, w, status, ErrorResponse{Error: msg})
}

// statusFromError сопоставляет ошибку слоя сервисов с HTTP-статусом
func statusFromError(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, service.ErrAuthDisabled):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrVariantNotFound),
		errors.Is(err, models.ErrVariantRequired):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError логирует ошибку и отвечает клиенту. Детали 500 наружу не отдаются.
func respondError(log *slog.Logger, w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", slog.Any("error", err))
		writeError(log, w, status, "internal server error")
		return
	}
	log.Info("request rejected", slog.Int("status", status), slog.Any("error", err))
	writeError(log, w, status, err.Error())
}

// decodeJSON читает тело запроса в dst и, если нужно, валидирует его тегами validate
func decodeJSON(r *http.Request, dst any, validateStruct bool) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	if validateStruct {
		return validate.Struct(dst)
	}
	return nil
}

// decodeRequest декодирует тело и сам отвечает 400 при ошибке
func decodeRequest(log *slog.Logger, w http.ResponseWriter, r *http.Request, dst any, validateStruct bool) bool {
	err := decodeJSON(r, dst, validateStruct)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		log.Info("invalid request: validation error", slog.Any("error", err))
		writeError(log, w, http.StatusBadRequest, "validation error: "+verrs.Error())
		return false
	}
	log.Info("invalid request: decoding error", slog.Any("error", err))
	writeError(log, w, http.StatusBadRequest, "invalid request body")
	return false
}
