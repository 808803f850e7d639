package handlers

import (
	"log/slog"
	"net/http"
)

// PingHandler отвечает на GET /api/ping. Пустое сообщение заменяется на "ping".
func PingHandler(log *slog.Logger, message string) http.HandlerFunc {
	if message == "" {
		message = "ping"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(log, w, http.StatusOK, MessageResponse{Message: message})
	}
}

func DemoHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(log, w, http.StatusOK, MessageResponse{Message: "Hello from the API server"})
	}
}
