package ledger

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/shop-ledger/pkg/adapters"
	"github.com/de-tools/shop-ledger/pkg/models/api"
	"github.com/de-tools/shop-ledger/pkg/services/pricing"
	"github.com/de-tools/shop-ledger/pkg/services/report"
	"github.com/de-tools/shop-ledger/pkg/store"
)

type Handler struct {
	source  store.Source
	reports *report.Service
}

func NewHandler(source store.Source, reports *report.Service) *Handler {
	return &Handler{
		source:  source,
		reports: reports,
	}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	tickets, err := h.source.ListTickets(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list tickets")
		http.Error(w, "failed to load tickets", http.StatusInternalServerError)
		return
	}
	entries, err := h.source.ListPriceEntries(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list price entries")
		http.Error(w, "failed to load price catalog", http.StatusInternalServerError)
		return
	}

	result, err := h.reports.Recompute(ctx, tickets, entries)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute report")
		http.Error(w, "failed to compute report", http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, adapters.MapReportDomainToApi(result))
}

func (h *Handler) GetTicketFinancials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	ticket, err := h.source.GetTicket(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "ticket not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("ticket_id", id).Msg("failed to get ticket")
		http.Error(w, "failed to load ticket", http.StatusInternalServerError)
		return
	}

	entries, err := h.source.ListPriceEntries(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list price entries")
		http.Error(w, "failed to load price catalog", http.StatusInternalServerError)
		return
	}

	snapshot := h.reports.Snapshot(*ticket, entries)
	writeJSON(w, r, adapters.MapTicketFinancialsDomainToApi(*ticket, snapshot))
}

func (h *Handler) ResolvePrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	query := r.URL.Query()

	kind, ok := adapters.ParsePriceCategory(query.Get("kind"))
	if !ok {
		http.Error(w, "invalid 'kind'. Expected ram or disk", http.StatusBadRequest)
		return
	}
	capacity := query.Get("capacity")
	if capacity == "" {
		http.Error(w, "missing 'capacity'", http.StatusBadRequest)
		return
	}
	typeHint := query.Get("type")

	entries, err := h.source.ListPriceEntries(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list price entries")
		http.Error(w, "failed to load price catalog", http.StatusInternalServerError)
		return
	}

	price := pricing.NewCatalog(entries).Resolve(kind, capacity, typeHint)
	writeJSON(w, r, api.PriceResolution{
		Category: string(kind),
		Capacity: pricing.NormalizeCapacity(capacity),
		Type:     typeHint,
		Price:    price,
		Resolved: price > 0,
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
