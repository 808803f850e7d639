package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/linemk/shop-dashboard/internal/service"
)

// запас на заголовки multipart сверх лимита самого файла
const multipartOverhead = 1 << 20

type DeleteUploadRequest struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// UploadHandler — POST /api/upload, поле формы "file" и необязательное "folder"
func UploadHandler(log *slog.Logger, svc service.UploadService, maxSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UploadHandler"
		logger := log.With(slog.String("op", op))

		if maxSize > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(logger, w, http.StatusRequestEntityTooLarge, "file too large")
				return
			}
			logger.Info("invalid multipart form", slog.Any("error", err))
			writeError(logger, w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(logger, w, http.StatusBadRequest, "file is required")
			return
		}
		defer file.Close()

		obj, err := svc.Upload(r.Context(), file, header.Filename, header.Size, r.FormValue("folder"))
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusCreated, obj)
	}
}

// DeleteUploadHandler — DELETE /api/upload с телом {key} или {url}, либо ?key=
func DeleteUploadHandler(log *slog.Logger, svc service.UploadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteUploadHandler"
		logger := log.With(slog.String("op", op))

		req := DeleteUploadRequest{Key: r.URL.Query().Get("key")}
		if req.Key == "" {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
				logger.Info("invalid request: decoding error", slog.Any("error", err))
				writeError(logger, w, http.StatusBadRequest, "invalid request body")
				return
			}
		}

		if err := svc.Delete(r.Context(), req.Key, req.URL); err != nil {
			respondError(logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
