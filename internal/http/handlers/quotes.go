package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmarais/go-autoquote/internal/core"
)

type QuoteHandler struct {
	svc core.QuoteService
	log *slog.Logger
}

func NewQuoteHandler(svc core.QuoteService, log *slog.Logger) *QuoteHandler {
	return &QuoteHandler{svc: svc, log: log}
}

func (h *QuoteHandler) Mount(r chi.Router) {
	r.Route("/quotes", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Post("/premium", h.Premium)
		r.Get("/{quote_id}", h.Get)
	})
}

func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var dto quoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(ctx, h.log, w, core.ErrValidation, "Request body is not valid JSON.")
		return
	}

	req, err := dto.toCore()
	if err != nil {
		writeError(ctx, h.log, w, err, err.Error())
		return
	}

	resp, err := h.svc.GenerateQuote(ctx, req)
	if err != nil {
		writeError(ctx, h.log, w, err, err.Error())
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(fromResponse(resp))
}

func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "quote_id")

	resp, err := h.svc.GetQuoteByID(ctx, id)
	if err != nil {
		writeError(ctx, h.log, w, err, err.Error())
		return
	}

	_ = json.NewEncoder(w).Encode(fromResponse(resp))
}

// Premium is the estimate-only fast path: base premium, no discounts, no
// persistence.
func (h *QuoteHandler) Premium(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var dto quoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(ctx, h.log, w, core.ErrValidation, "Request body is not valid JSON.")
		return
	}

	req, err := dto.toCore()
	if err != nil {
		writeError(ctx, h.log, w, err, err.Error())
		return
	}

	base, err := h.svc.CalculatePremium(ctx, req)
	if err != nil {
		writeError(ctx, h.log, w, err, err.Error())
		return
	}

	_ = json.NewEncoder(w).Encode(premiumResponseDTO{BasePremium: base})
}
