package cart

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/till/internal/cart"
	"github.com/MrJamesThe3rd/till/internal/register"
)

type Handler struct {
	session *register.Session
}

func NewHandler(session *register.Session) *Handler {
	return &Handler{session: session}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Post("/items", h.add)
	r.Post("/items/{code}/increase", h.increase)
	r.Post("/items/{code}/decrease", h.decrease)
	r.Delete("/items/{code}", h.remove)
}

type addItemRequest struct {
	Code string `json:"code"`
}

func (h *Handler) get(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toResponse(h.session.View()))
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		http.Error(w, "code is required", http.StatusBadRequest)
		return
	}

	line, err := h.session.AddItem(code)
	if err != nil {
		if errors.Is(err, cart.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, toLineResponse(line))
}

func (h *Handler) increase(w http.ResponseWriter, r *http.Request) {
	h.session.IncreaseQuantity(chi.URLParam(r, "code"))
	writeJSON(w, http.StatusOK, toResponse(h.session.View()))
}

func (h *Handler) decrease(w http.ResponseWriter, r *http.Request) {
	h.session.DecreaseQuantity(chi.URLParam(r, "code"))
	writeJSON(w, http.StatusOK, toResponse(h.session.View()))
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	h.session.RemoveItem(chi.URLParam(r, "code"))
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
