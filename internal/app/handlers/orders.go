package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/shop-dashboard/internal/domain/models"
	"github.com/linemk/shop-dashboard/internal/service"
	"github.com/linemk/shop-dashboard/internal/storage"
)

// ListOrdersHandler — GET /api/orders[?status=&customerId=]
func ListOrdersHandler(log *slog.Logger, svc service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(slog.String("op", op))

		q := r.URL.Query()
		filter := storage.OrderFilter{Status: q.Get("status"), CustomerID: q.Get("customerId")}
		if filter.Status != "" && !models.ValidStatus(filter.Status) {
			writeError(logger, w, http.StatusBadRequest, "unknown status "+filter.Status)
			return
		}

		orders, err := svc.List(r.Context(), filter)
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, orders)
	}
}

func GetOrderHandler(log *slog.Logger, svc service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetOrderHandler"
		logger := log.With(slog.String("op", op))

		order, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, order)
	}
}

// PlaceOrderHandler — POST /api/orders
func PlaceOrderHandler(log *slog.Logger, svc service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.PlaceOrderHandler"
		logger := log.With(slog.String("op", op))

		var req service.PlaceOrderInput
		if !decodeRequest(logger, w, r, &req, true) {
			return
		}
		order, err := svc.PlaceOrder(r.Context(), req)
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusCreated, order)
	}
}

func UpdateOrderHandler(log *slog.Logger, svc service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateOrderHandler"
		logger := log.With(slog.String("op", op))

		var req service.UpdateOrderInput
		if !decodeRequest(logger, w, r, &req, false) {
			return
		}
		order, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, order)
	}
}

func DeleteOrderHandler(log *slog.Logger, svc service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteOrderHandler"
		logger := log.With(slog.String("op", op))

		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondError(logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
