package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/till/internal/barcode"
	"github.com/MrJamesThe3rd/till/internal/catalog"
)

type Handler struct {
	catalog *catalog.Catalog
}

func NewHandler(c *catalog.Catalog) *Handler {
	return &Handler{catalog: c}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{code}", h.get)
}

type productResponse struct {
	Code   string         `json:"code"`
	Name   string         `json:"name"`
	Price  int64          `json:"price"`
	Format barcode.Format `json:"format"`
}

func toResponse(p catalog.Product) productResponse {
	return productResponse{
		Code:   p.Code,
		Name:   p.Name,
		Price:  p.Price,
		Format: barcode.Detect(p.Code),
	}
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	products := h.catalog.Products()

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toResponse(p)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, ok := barcode.Resolve(h.catalog, chi.URLParam(r, "code"))
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
