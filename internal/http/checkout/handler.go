package checkout

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/till/internal/checkout"
	"github.com/MrJamesThe3rd/till/internal/http/auth"
	"github.com/MrJamesThe3rd/till/internal/register"
)

type Handler struct {
	session *register.Session
	receipt checkout.ReceiptOptions
}

func NewHandler(session *register.Session, receipt checkout.ReceiptOptions) *Handler {
	return &Handler{session: session, receipt: receipt}
}

// Routes mounts checkout under the router root since it spans /checkout and
// /transactions.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/checkout", h.checkout)
	r.Get("/transactions/last", h.last)
	r.Get("/transactions/last/receipt", h.lastReceipt)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	tx, err := h.session.Checkout()
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			http.Error(w, "cart is empty", http.StatusConflict)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if cashier, ok := auth.Cashier(r.Context()); ok {
		slog.Info("checkout by cashier", "transaction_id", tx.ID, "cashier", cashier)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx, h.receipt)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) last(w http.ResponseWriter, _ *http.Request) {
	tx, ok := h.lastTransaction(w)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx, h.receipt)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) lastReceipt(w http.ResponseWriter, _ *http.Request) {
	tx, ok := h.lastTransaction(w)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := w.Write([]byte(checkout.FormatReceipt(tx, h.receipt))); err != nil {
		slog.Error("failed to write receipt", "error", err)
	}
}

func (h *Handler) lastTransaction(w http.ResponseWriter) (*checkout.Transaction, bool) {
	tx, err := h.session.LastTransaction()
	if err != nil {
		if errors.Is(err, register.ErrNoTransaction) {
			http.Error(w, "no transaction yet", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	return tx, true
}
