package scan

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/till/internal/barcode"
	"github.com/MrJamesThe3rd/till/internal/register"
	"github.com/MrJamesThe3rd/till/internal/scan"
)

type Handler struct {
	session *register.Session
	now     func() time.Time
}

func NewHandler(session *register.Session) *Handler {
	return &Handler{session: session, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.scan)
	r.Post("/start", h.start)
}

type scanRequest struct {
	RawCode   string         `json:"raw_code"`
	Format    barcode.Format `json:"format,omitempty"`
	Timestamp *time.Time     `json:"timestamp,omitempty"`
}

type productResponse struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type scanResponse struct {
	Accepted bool             `json:"accepted"`
	Found    bool             `json:"found"`
	Format   barcode.Format   `json:"format"`
	Product  *productResponse `json:"product,omitempty"`
}

func (h *Handler) scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	code := strings.TrimSpace(req.RawCode)
	if code == "" {
		http.Error(w, "raw_code is required", http.StatusBadRequest)
		return
	}

	ev := scan.Event{RawCode: code, Format: req.Format, Timestamp: h.now()}
	if req.Timestamp != nil {
		ev.Timestamp = *req.Timestamp
	}

	res := h.session.Scan(ev)

	resp := scanResponse{
		Accepted: !res.Suppressed,
		Found:    res.Found,
		Format:   res.Format,
	}

	if res.Found {
		resp.Product = &productResponse{
			Code:     res.Line.Code,
			Name:     res.Line.Name,
			Price:    res.Line.Price,
			Quantity: res.Line.Quantity,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) start(w http.ResponseWriter, _ *http.Request) {
	h.session.StartScanning()
	w.WriteHeader(http.StatusNoContent)
}
