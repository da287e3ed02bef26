package api

import (
	"encoding/json"
	"strings"
)

// Ticket is a document as stored by the ticket store. Field names follow
// the store, not Go conventions.
type Ticket struct {
	ID          string    `json:"id"`
	TicketID    string    `json:"ticketId"`
	Status      string    `json:"status"`
	CurrentArea string    `json:"currentArea"`
	Deleted     Flag      `json:"deleted"`
	CreatedAt   Timestamp `json:"createdAt"`
	SoldAt      Timestamp `json:"soldAt"`
	FechaSalida Timestamp `json:"fechaSalida"`
	ClosedAt    Timestamp `json:"closedAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`

	PrecioCompra Number     `json:"precioCompra"`
	PrecioVenta  Number     `json:"precioVenta"`
	CostosExtra  Number     `json:"costosExtra"`
	Viatico      Number     `json:"viatico"`
	Publicidad   Number     `json:"publicidad"`
	Reparacion   Reparacion `json:"reparacion"`

	Marca      string `json:"marca"`
	TipoEquipo string `json:"tipoEquipo"`
	Tecnico    string `json:"tecnico"`

	RAMDetails  SpecList `json:"ramDetails"`
	DiskDetails SpecList `json:"diskDetails"`

	// Original hardware, newest shape first.
	OriginalSpecs       *OriginalSpecs `json:"originalSpecs"`
	RAMDetailsOriginal  SpecList       `json:"ramDetailsOriginal"`
	DiskDetailsOriginal SpecList       `json:"diskDetailsOriginal"`
	OriginalRAM         string         `json:"originalRam"`
	OriginalDisk        string         `json:"originalDisk"`

	ConFactura    Flag   `json:"conFactura"`
	TipoDocumento string `json:"tipoDocumento"`

	Historial []HistoryEvent `json:"historial"`
}

type Reparacion struct {
	CostoRepuestos Number `json:"costoRepuestos"`
	CostoServicio  Number `json:"costoServicio"`
}

type OriginalSpecs struct {
	RAMDetails  SpecList `json:"ramDetails"`
	DiskDetails SpecList `json:"diskDetails"`
}

type HistoryEvent struct {
	Area   string    `json:"area"`
	Accion string    `json:"accion"`
	Fecha  Timestamp `json:"fecha"`
}

type Spec struct {
	Capacity string `json:"capacity"`
	Type     string `json:"type"`
}

// SpecList decodes arrays of {capacity,type} objects, arrays of strings
// ("8GB DDR4") and the bare string "N/A". Items that cannot be read are
// skipped.
type SpecList struct {
	Items []Spec
	// NotApplicable is set when the store holds the literal "N/A".
	NotApplicable bool
}

func (l *SpecList) UnmarshalJSON(data []byte) error {
	*l = SpecList{}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if isNotApplicable(s) {
			l.NotApplicable = true
			return nil
		}
		l.Items = SplitSpecText(s)
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, item := range raw {
		var str string
		if err := json.Unmarshal(item, &str); err == nil {
			if isNotApplicable(str) {
				continue
			}
			l.Items = append(l.Items, SplitSpecText(str)...)
			continue
		}
		var obj struct {
			Capacity  string `json:"capacity"`
			Capacidad string `json:"capacidad"`
			Size      string `json:"size"`
			Type      string `json:"type"`
			Tipo      string `json:"tipo"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		spec := Spec{Capacity: firstNonEmpty(obj.Capacity, obj.Capacidad, obj.Size), Type: firstNonEmpty(obj.Type, obj.Tipo)}
		if spec.Capacity != "" {
			l.Items = append(l.Items, spec)
		}
	}
	if len(raw) > 0 && len(l.Items) == 0 && allNotApplicable(raw) {
		l.NotApplicable = true
	}
	return nil
}

func (l SpecList) MarshalJSON() ([]byte, error) {
	if l.NotApplicable {
		return json.Marshal("N/A")
	}
	if l.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Items)
}

// Present reports whether the document carried this list at all.
func (l SpecList) Present() bool {
	return l.NotApplicable || len(l.Items) > 0
}

// SplitSpecText reads "8GB DDR4 + 8GB DDR4" style text into specs.
func SplitSpecText(s string) []Spec {
	if isNotApplicable(s) {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == ',' || r == '/' || r == ';'
	})
	var specs []Spec
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		fields := strings.Fields(p)
		spec := Spec{Capacity: fields[0]}
		// "16 GB DDR4" splits the unit from the number
		rest := fields[1:]
		if len(rest) > 0 && (strings.EqualFold(rest[0], "GB") || strings.EqualFold(rest[0], "TB")) {
			spec.Capacity += rest[0]
			rest = rest[1:]
		}
		spec.Type = strings.Join(rest, " ")
		specs = append(specs, spec)
	}
	return specs
}

func isNotApplicable(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "N/A")
}

func allNotApplicable(raw []json.RawMessage) bool {
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err != nil || !isNotApplicable(s) {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

type PriceEntry struct {
	Category string `json:"category"`
	Type     string `json:"type"`
	Capacity string `json:"capacity"`
	Price    Number `json:"price"`
}
