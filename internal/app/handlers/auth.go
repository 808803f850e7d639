package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/shop-dashboard/internal/service"
)

// AuthRequest — логин администратора
type AuthRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

// AuthHandler обрабатывает POST /api/auth
func AuthHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AuthHandler"
		logger := log.With(slog.String("op", op))

		var req AuthRequest
		if !decodeRequest(logger, w, r, &req, true) {
			return
		}

		token, err := authService.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, AuthResponse{Token: token})
	}
}
