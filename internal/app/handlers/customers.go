package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/shop-dashboard/internal/service"
)

func ListCustomersHandler(log *slog.Logger, svc service.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListCustomersHandler"
		logger := log.With(slog.String("op", op))

		customers, err := svc.List(r.Context())
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, customers)
	}
}

func GetCustomerHandler(log *slog.Logger, svc service.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCustomerHandler"
		logger := log.With(slog.String("op", op))

		customer, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, customer)
	}
}

// CreateCustomerHandler — POST /api/customers, доступен без авторизации (оформление заказа на витрине)
func CreateCustomerHandler(log *slog.Logger, svc service.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCustomerHandler"
		logger := log.With(slog.String("op", op))

		var req service.CreateCustomerInput
		if !decodeRequest(logger, w, r, &req, true) {
			return
		}
		customer, err := svc.Create(r.Context(), req)
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusCreated, customer)
	}
}

func UpdateCustomerHandler(log *slog.Logger, svc service.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateCustomerHandler"
		logger := log.With(slog.String("op", op))

		var req service.UpdateCustomerInput
		if !decodeRequest(logger, w, r, &req, false) {
			return
		}
		customer, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			respondError(logger, w, err)
			return
		}
		writeJSON(logger, w, http.StatusOK, customer)
	}
}

func DeleteCustomerHandler(log *slog.Logger, svc service.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCustomerHandler"
		logger := log.With(slog.String("op", op))

		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondError(logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
