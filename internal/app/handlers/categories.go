package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/shop-dashboard/internal/service"
)

func ListCategoriesHandler(log *slog.Logger, svc service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListCategoriesHandler"
		logger := log.With(slog.String("op", op))

		categories, err := svc.List(r.Context())
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, categories)
	}
}

func GetCategoryHandler(log *slog.Logger, svc service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCategoryHandler"
		logger := log.With(slog.String("op", op))

		category, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, category)
	}
}

func CreateCategoryHandler(log *slog.Logger, svc service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCategoryHandler"
		logger := log.With(slog.String("op", op))

		var req service.CategoryInput
		if !decodeRequest(logger, w, r, &req, true) {
			return
		}
		category, err := svc.Create(r.Context(), req)
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusCreated, category)
	}
}

func UpdateCategoryHandler(log *slog.Logger, svc service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateCategoryHandler"
		logger := log.With(slog.String("op", op))

		var req service.CategoryInput
		if !decodeRequest(logger, w, r, &req, true) {
			return
		}
		category, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, category)
	}
}

func DeleteCategoryHandler(log *slog.Logger, svc service.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCategoryHandler"
		logger := log.With(slog.String("op", op))

		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondError(logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
