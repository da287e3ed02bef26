package adapters

import (
	"sort"
	"strings"

	"github.com/de-tools/shop-ledger/pkg/models/api"
	"github.com/de-tools/shop-ledger/pkg/models/domain"
)

func MapTicketApiToDomain(t api.Ticket) domain.Ticket {
	soldAt := t.SoldAt
	if soldAt.IsZero() {
		soldAt = t.FechaSalida
	}

	ticket := domain.Ticket{
		ID:          t.ID,
		TicketID:    t.TicketID,
		Status:      strings.TrimSpace(t.Status),
		CurrentArea: strings.TrimSpace(t.CurrentArea),
		Deleted:     bool(t.Deleted),
		CreatedAt:   t.CreatedAt.Ptr(),
		SoldAt:      soldAt.Ptr(),
		ClosedAt:    t.ClosedAt.Ptr(),
		UpdatedAt:   t.UpdatedAt.Ptr(),

		PurchasePrice:  float64(t.PrecioCompra),
		SalePrice:      float64(t.PrecioVenta),
		ExtraCosts:     float64(t.CostosExtra),
		Viatico:        float64(t.Viatico),
		Advertising:    float64(t.Publicidad),
		SparePartsCost: float64(t.Reparacion.CostoRepuestos),
		ServiceCost:    float64(t.Reparacion.CostoServicio),

		Brand:      strings.TrimSpace(t.Marca),
		DeviceType: strings.TrimSpace(t.TipoEquipo),
		Technician: strings.TrimSpace(t.Tecnico),

		RAM:  mapSpecs(t.RAMDetails.Items),
		Disk: mapSpecs(t.DiskDetails.Items),

		PurchasedWithInvoice: bool(t.ConFactura),
		SaleDocument:         mapDocumentType(t.TipoDocumento),
		History:              mapHistory(t.Historial),
	}

	var detailedRAM, detailedDisk api.SpecList
	if t.OriginalSpecs != nil {
		detailedRAM, detailedDisk = t.OriginalSpecs.RAMDetails, t.OriginalSpecs.DiskDetails
	}
	ticket.OriginalRAM = ResolveOriginalSpec(detailedRAM, t.RAMDetailsOriginal, t.OriginalRAM)
	ticket.OriginalDisk = ResolveOriginalSpec(detailedDisk, t.DiskDetailsOriginal, t.OriginalDisk)

	return ticket
}

func MapTicketsApiToDomain(tickets []api.Ticket) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, MapTicketApiToDomain(t))
	}
	return out
}

// ResolveOriginalSpec picks the most specific legacy shape that is present.
// An explicit "N/A" in the chosen shape means the device had nothing worth
// subtracting.
func ResolveOriginalSpec(detailed, flat api.SpecList, legacyText string) domain.OriginalSpec {
	switch {
	case detailed.Present():
		return originalFromList(domain.OriginalSourceDetailed, detailed)
	case flat.Present():
		return originalFromList(domain.OriginalSourceFlat, flat)
	case strings.TrimSpace(legacyText) != "":
		items := mapSpecs(api.SplitSpecText(legacyText))
		if len(items) == 0 {
			return domain.OriginalSpec{Source: domain.OriginalSourceNone}
		}
		return domain.OriginalSpec{Source: domain.OriginalSourceLegacyText, Items: items}
	default:
		return domain.OriginalSpec{Source: domain.OriginalSourceNone}
	}
}

func originalFromList(source domain.OriginalSource, list api.SpecList) domain.OriginalSpec {
	if list.NotApplicable || len(list.Items) == 0 {
		return domain.OriginalSpec{Source: domain.OriginalSourceNone}
	}
	return domain.OriginalSpec{Source: source, Items: mapSpecs(list.Items)}
}

func mapSpecs(specs []api.Spec) []domain.HardwareSpec {
	if len(specs) == 0 {
		return nil
	}
	out := make([]domain.HardwareSpec, 0, len(specs))
	for _, s := range specs {
		out = append(out, domain.HardwareSpec{
			Capacity: strings.TrimSpace(s.Capacity),
			Type:     strings.TrimSpace(s.Type),
		})
	}
	return out
}

func mapDocumentType(raw string) domain.DocumentType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "factura":
		return domain.DocumentFactura
	case "boleta":
		return domain.DocumentBoleta
	default:
		return domain.DocumentType(strings.TrimSpace(raw))
	}
}

// mapHistory drops events without a valid timestamp and orders the rest.
func mapHistory(events []api.HistoryEvent) []domain.HistoryEvent {
	out := make([]domain.HistoryEvent, 0, len(events))
	for _, e := range events {
		if e.Fecha.IsZero() {
			continue
		}
		out = append(out, domain.HistoryEvent{
			Area:   strings.TrimSpace(e.Area),
			Action: strings.TrimSpace(e.Accion),
			At:     e.Fecha.Time.UTC(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At.Before(out[j].At)
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParsePriceCategory accepts the category spellings found in catalogs and
// query strings. Unknown values are returned upper-cased with ok=false.
func ParsePriceCategory(raw string) (domain.PriceCategory, bool) {
	category := domain.PriceCategory(strings.ToUpper(strings.TrimSpace(raw)))
	switch category {
	case domain.PriceCategoryRAM, "MEMORIA":
		return domain.PriceCategoryRAM, true
	case domain.PriceCategoryDisk, "DISCO", "STORAGE":
		return domain.PriceCategoryDisk, true
	}
	return category, false
}

func MapPriceEntryApiToDomain(e api.PriceEntry) domain.PriceEntry {
	category, _ := ParsePriceCategory(e.Category)
	return domain.PriceEntry{
		Category: category,
		Type:     strings.TrimSpace(e.Type),
		Capacity: strings.TrimSpace(e.Capacity),
		Price:    float64(e.Price),
	}
}

func MapPriceEntriesApiToDomain(entries []api.PriceEntry) []domain.PriceEntry {
	out := make([]domain.PriceEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, MapPriceEntryApiToDomain(e))
	}
	return out
}
