package financials

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/de-tools/shop-ledger/pkg/models/domain"
	"github.com/de-tools/shop-ledger/pkg/services/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *pricing.Catalog {
	return pricing.NewCatalog([]domain.PriceEntry{
		{Category: domain.PriceCategoryRAM, Type: "DDR4", Capacity: "8GB", Price: 15000},
		{Category: domain.PriceCategoryRAM, Type: "DDR4", Capacity: "16GB", Price: 30000},
		{Category: domain.PriceCategoryDisk, Type: "SSD", Capacity: "256GB", Price: 20000},
		{Category: domain.PriceCategoryDisk, Type: "NVME", Capacity: "512GB", Price: 40000},
		{Category: domain.PriceCategoryDisk, Type: "HDD", Capacity: "500GB", Price: 10000},
	})
}

func TestDerive_InformalPurchaseFormalSale(t *testing.T) {
	ticket := domain.Ticket{
		PurchasePrice: 100000,
		SalePrice:     150000,
		SaleDocument:  domain.DocumentBoleta,
	}

	s := Derive(ticket, testCatalog())

	assert.Equal(t, 100000.0, s.BaseCost)
	assert.Equal(t, 100000.0, s.TotalCost)
	assert.Equal(t, 0.0, s.VATInput)
	assert.Equal(t, 126050.0, s.NetSale)
	assert.Equal(t, 23950.0, s.VATOutput)
	assert.Equal(t, 23950.0, s.VATPayable)
	assert.Equal(t, 0.0, s.DeductibleCost)
	assert.Equal(t, 31513.0, s.IncomeTaxFiscal)
	assert.Equal(t, 50000.0, s.ImmediateProfit)
	assert.Equal(t, 50000.0, s.GrossMargin)
	assert.Equal(t, 37500.0, s.IncomeTaxShadow)
	assert.Equal(t, 23950.0, s.VATShadow)
	assert.Equal(t, -11450.0, s.NetRealProfit)
	assert.True(t, s.IsFormalSale)
	assert.False(t, s.IsFormalPurchase)
}

func TestDerive_FormalPurchaseFormalSale(t *testing.T) {
	ticket := domain.Ticket{
		PurchasePrice:        100000,
		SalePrice:            150000,
		SaleDocument:         domain.DocumentBoleta,
		PurchasedWithInvoice: true,
	}

	s := Derive(ticket, testCatalog())

	assert.Equal(t, 84034.0, s.NetCost)
	assert.Equal(t, 15966.0, s.VATInput)
	assert.Equal(t, 84034.0, s.EconomicCost)
	assert.Equal(t, 65966.0, s.GrossMargin)
	assert.Equal(t, 7984.0, s.VATPayable)
	assert.Equal(t, 84034.0, s.DeductibleCost)
	assert.Equal(t, 42016.0, s.TaxableBase)
	assert.Equal(t, 10504.0, s.IncomeTaxFiscal)
	assert.Equal(t, 16492.0, s.IncomeTaxShadow)
	assert.Equal(t, 25524.0, s.NetRealProfit)
	assert.Equal(t, 50000.0, s.ImmediateProfit)
}

func TestDerive_FormalPurchaseInformalSale(t *testing.T) {
	ticket := domain.Ticket{
		PurchasePrice:        119000,
		SalePrice:            200000,
		SaleDocument:         "Transferencia",
		PurchasedWithInvoice: true,
	}

	s := Derive(ticket, testCatalog())

	assert.Equal(t, 19000.0, s.VATInput)
	assert.Equal(t, 0.0, s.VATOutput)
	assert.Equal(t, -19000.0, s.VATPayable)
	assert.Equal(t, 0.0, s.IncomeTaxFiscal)
	assert.Equal(t, 0.0, s.NetSale)
	assert.False(t, s.IsFormalSale)
}

func TestDerive_TaxableBaseNeverNegative(t *testing.T) {
	ticket := domain.Ticket{
		PurchasePrice:        300000,
		SalePrice:            119000,
		SaleDocument:         domain.DocumentFactura,
		PurchasedWithInvoice: true,
	}

	s := Derive(ticket, testCatalog())

	assert.Equal(t, 0.0, s.TaxableBase)
	assert.Equal(t, 0.0, s.IncomeTaxFiscal)
}

func TestDerive_HardwareDeltas(t *testing.T) {
	tests := []struct {
		name     string
		ticket   domain.Ticket
		ramDelta float64
		diskDelt float64
	}{
		{
			name: "upgrade against detailed original",
			ticket: domain.Ticket{
				RAM:         []domain.HardwareSpec{{Capacity: "16", Type: "DDR4"}},
				OriginalRAM: domain.OriginalSpec{Source: domain.OriginalSourceDetailed, Items: []domain.HardwareSpec{{Capacity: "8GB", Type: "DDR4"}}},
				Disk:        []domain.HardwareSpec{{Capacity: "512GB", Type: "NVMe"}},
				OriginalDisk: domain.OriginalSpec{Source: domain.OriginalSourceLegacyText, Items: []domain.HardwareSpec{
					{Capacity: "500GB", Type: "HDD"},
				}},
			},
			ramDelta: 15000,
			diskDelt: 30000,
		},
		{
			name: "no original means full current value",
			ticket: domain.Ticket{
				RAM:  []domain.HardwareSpec{{Capacity: "8", Type: "DDR4"}, {Capacity: "8", Type: "DDR4"}},
				Disk: []domain.HardwareSpec{{Capacity: "256", Type: ""}},
			},
			ramDelta: 30000,
			diskDelt: 20000,
		},
		{
			name: "downgrade is negative",
			ticket: domain.Ticket{
				RAM:         []domain.HardwareSpec{{Capacity: "8", Type: "DDR4"}},
				OriginalRAM: domain.OriginalSpec{Source: domain.OriginalSourceFlat, Items: []domain.HardwareSpec{{Capacity: "16", Type: "DDR4"}}},
			},
			ramDelta: -15000,
		},
		{
			name: "unknown price suppresses the component",
			ticket: domain.Ticket{
				RAM: []domain.HardwareSpec{{Capacity: "64", Type: "DDR5"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Derive(tt.ticket, testCatalog())
			assert.Equal(t, tt.ramDelta, s.RAMDelta)
			assert.Equal(t, tt.diskDelt, s.DiskDelta)
		})
	}
}

func TestDerive_AccountingIdentities(t *testing.T) {
	catalog := testCatalog()
	documents := []domain.DocumentType{domain.DocumentFactura, domain.DocumentBoleta, domain.DocumentNone, "Otro"}

	for i := 0; i < 40; i++ {
		ticket := domain.Ticket{
			PurchasePrice:        float64(50000 + i*7919),
			SalePrice:            float64(i * 13331),
			ExtraCosts:           float64(i%3) * 1500,
			Viatico:              float64(i%4) * 2000,
			Advertising:          float64(i%5) * 990,
			SparePartsCost:       float64(i%2) * 12000,
			ServiceCost:          float64(i%6) * 5000,
			PurchasedWithInvoice: i%2 == 0,
			SaleDocument:         documents[i%len(documents)],
			RAM:                  []domain.HardwareSpec{{Capacity: "16", Type: "DDR4"}},
			OriginalRAM:          domain.OriginalSpec{Source: domain.OriginalSourceFlat, Items: []domain.HardwareSpec{{Capacity: "8", Type: "DDR4"}}},
		}

		t.Run(fmt.Sprintf("ticket_%d", i), func(t *testing.T) {
			s := Derive(ticket, catalog)

			assert.Equal(t,
				s.BaseCost+s.RAMDelta+s.DiskDelta+s.SparePartsCost+s.ServiceCost+s.ExtraCosts+s.ViaticoCost+s.AdCost,
				s.TotalCost)
			assert.Equal(t, s.SalePrice-s.TotalCost, s.ImmediateProfit)
			assert.Equal(t, s.VATOutput-s.VATInput, s.VATPayable)
			assert.GreaterOrEqual(t, s.VATOutput, 0.0)
			assert.GreaterOrEqual(t, s.VATInput, 0.0)
			assert.Equal(t, s, Derive(ticket, catalog))
		})
	}
}

func TestDerive_EmptyTicketIsZero(t *testing.T) {
	s := Derive(domain.Ticket{}, nil)

	assert.Equal(t, domain.FinancialSnapshot{}, s)
}

func TestDerive_NonFiniteAmountsDoNotPanic(t *testing.T) {
	tickets := []domain.Ticket{
		{SalePrice: math.NaN(), SaleDocument: domain.DocumentBoleta},
		{PurchasePrice: math.Inf(1), PurchasedWithInvoice: true, SalePrice: 100000, SaleDocument: domain.DocumentFactura},
		{PurchasePrice: math.Inf(-1), SalePrice: math.Inf(1), SaleDocument: domain.DocumentFactura},
	}

	for i, ticket := range tickets {
		t.Run(fmt.Sprintf("ticket_%d", i), func(t *testing.T) {
			var s domain.FinancialSnapshot
			require.NotPanics(t, func() { s = Derive(ticket, testCatalog()) })
			assert.Equal(t, 0.0, s.NetCost)
			assert.Equal(t, 0.0, s.VATInput)
			assert.GreaterOrEqual(t, s.VATOutput, 0.0)
		})
	}

	assert.NotPanics(t, func() {
		_, err := DeriveParallel(context.Background(), tickets, NewCalculator(DefaultSettings(), testCatalog()), 2)
		require.NoError(t, err)
	})
}

func TestCalculator_IsSold(t *testing.T) {
	c := NewCalculator(DefaultSettings(), testCatalog())
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		ticket domain.Ticket
		sold   bool
		agree  bool
	}{
		{"open ticket", domain.Ticket{Status: "En proceso", CurrentArea: "Reparación"}, false, true},
		{"status only", domain.Ticket{Status: "vendido"}, true, false},
		{"area only", domain.Ticket{CurrentArea: " ventas "}, true, false},
		{"timestamp only", domain.Ticket{SoldAt: &now}, true, false},
		{"all three", domain.Ticket{Status: "Cerrado", CurrentArea: "Ventas", SoldAt: &now}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sold, c.IsSold(tt.ticket))
			assert.Equal(t, tt.agree, c.SoldSignalsAgree(tt.ticket))
		})
	}
}

func TestCalculator_IsActive(t *testing.T) {
	c := NewCalculator(Settings{}, testCatalog())

	open := domain.Ticket{Status: "Recibido"}
	deleted := domain.Ticket{Status: "Eliminado"}
	flagged := domain.Ticket{Deleted: true}
	sold := domain.Ticket{Status: "Vendido"}

	assert.True(t, c.IsActive(open, c.Derive(open)))
	assert.False(t, c.IsActive(deleted, c.Derive(deleted)))
	assert.False(t, c.IsActive(flagged, c.Derive(flagged)))
	assert.False(t, c.IsActive(sold, c.Derive(sold)))
}

func TestDeriveParallel_MatchesSequential(t *testing.T) {
	c := NewCalculator(DefaultSettings(), testCatalog())
	tickets := make([]domain.Ticket, 100)
	for i := range tickets {
		tickets[i] = domain.Ticket{
			PurchasePrice:        float64(i * 1000),
			SalePrice:            float64(i * 1700),
			PurchasedWithInvoice: i%3 == 0,
			SaleDocument:         domain.DocumentFactura,
		}
	}

	got, err := DeriveParallel(context.Background(), tickets, c, 8)
	require.NoError(t, err)
	assert.Equal(t, DeriveAll(tickets, c), got)
}

func TestDeriveParallel_CancelledContext(t *testing.T) {
	c := NewCalculator(DefaultSettings(), testCatalog())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DeriveParallel(ctx, make([]domain.Ticket, 10), c, 4)
	assert.ErrorIs(t, err, context.Canceled)
}
