package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/shop-dashboard/internal/service"
)

// ListProductsHandler — GET /api/products[?category_id=]
func ListProductsHandler(log *slog.Logger, svc service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListProductsHandler"
		logger := log.With(slog.String("op", op))

		products, err := svc.List(r.Context(), r.URL.Query().Get("category_id"))
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, products)
	}
}

func GetProductHandler(log *slog.Logger, svc service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetProductHandler"
		logger := log.With(slog.String("op", op))

		product, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, product)
	}
}

func CreateProductHandler(log *slog.Logger, svc service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateProductHandler"
		logger := log.With(slog.String("op", op))

		var req service.CreateProductInput
		if !decodeRequest(logger, w, r, &req, true) {
			return
		}
		product, err := svc.Create(r.Context(), req)
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusCreated, product)
	}
}

func UpdateProductHandler(log *slog.Logger, svc service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateProductHandler"
		logger := log.With(slog.String("op", op))

		var req service.UpdateProductInput
		if !decodeRequest(logger, w, r, &req, false) {
			return
		}
		product, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, product)
	}
}

func DeleteProductHandler(log *slog.Logger, svc service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteProductHandler"
		logger := log.With(slog.String("op", op))

		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondError(logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
