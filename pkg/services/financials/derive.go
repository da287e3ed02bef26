// Package financials derives the per-ticket money view: costs, margins,
// VAT under the real and fiscal views, and income tax estimates.
package financials

import (
	"strings"

	"github.com/de-tools/shop-ledger/pkg/models/domain"
	"github.com/de-tools/shop-ledger/pkg/money"
	"github.com/de-tools/shop-ledger/pkg/services/pricing"
)

type Calculator struct {
	settings Settings
	resolver pricing.Resolver
}

func NewCalculator(settings Settings, resolver pricing.Resolver) *Calculator {
	if resolver == nil {
		resolver = pricing.NewCatalog(nil)
	}
	return &Calculator{
		settings: settings.withDefaults(),
		resolver: resolver,
	}
}

// Derive computes a snapshot with DefaultSettings.
func Derive(t domain.Ticket, resolver pricing.Resolver) domain.FinancialSnapshot {
	return NewCalculator(DefaultSettings(), resolver).Derive(t)
}

func (c *Calculator) Derive(t domain.Ticket) domain.FinancialSnapshot {
	vat := c.settings.VATRate
	taxRate := c.settings.IncomeTaxRate

	s := domain.FinancialSnapshot{
		BaseCost:       t.PurchasePrice,
		RAMDelta:       c.hardwareDelta(domain.PriceCategoryRAM, t.RAM, t.OriginalRAM),
		DiskDelta:      c.hardwareDelta(domain.PriceCategoryDisk, t.Disk, t.OriginalDisk),
		SparePartsCost: t.SparePartsCost,
		ServiceCost:    t.ServiceCost,
		ExtraCosts:     t.ExtraCosts,
		ViaticoCost:    t.Viatico,
		AdCost:         t.Advertising,
		SalePrice:      t.SalePrice,
	}
	s.TotalCost = s.BaseCost + s.RAMDelta + s.DiskDelta + s.SparePartsCost +
		s.ServiceCost + s.ExtraCosts + s.ViaticoCost + s.AdCost

	s.IsFormalPurchase = t.PurchasedWithInvoice
	s.IsFormalSale = t.SaleDocument.IsFormal()

	if s.IsFormalPurchase {
		s.NetCost = money.NetOfVAT(t.PurchasePrice, vat)
		s.VATInput = money.VATPortion(t.PurchasePrice, vat)
	}
	s.EconomicCost = s.TotalCost - s.VATInput
	s.GrossMargin = s.SalePrice - s.EconomicCost
	if s.SalePrice > 0 {
		s.MarginPercent = money.Ratio(s.GrossMargin, s.SalePrice)
	}

	if s.IsFormalSale {
		s.NetSale = money.NetOfVAT(s.SalePrice, vat)
		s.VATOutput = money.VATPortion(s.SalePrice, vat)
	}
	s.VATPayable = s.VATOutput - s.VATInput

	if s.IsFormalSale {
		if s.IsFormalPurchase {
			s.DeductibleCost = s.NetCost
		}
		s.TaxableBase = max(0, s.NetSale-s.DeductibleCost)
		s.IncomeTaxFiscal = money.Percent(s.TaxableBase, taxRate)
	}

	shadowBase := s.SalePrice
	if s.IsFormalPurchase {
		shadowBase = s.GrossMargin
	}
	s.IncomeTaxShadow = money.Percent(shadowBase, taxRate)
	s.VATShadow = money.VATPortion(s.SalePrice, vat)
	s.NetRealProfit = s.GrossMargin - s.VATShadow - s.IncomeTaxShadow
	s.ImmediateProfit = s.SalePrice - s.TotalCost

	s.IsSold = c.IsSold(t)
	return s
}

// IsSold is a permissive OR: terminal status, sitting in the sales area, or
// a sold timestamp. The three signals can disagree on partially updated
// tickets; SoldSignalsAgree reports that case.
func (c *Calculator) IsSold(t domain.Ticket) bool {
	return c.hasSoldStatus(t) || c.inSalesArea(t) || t.SoldAt != nil
}

// SoldSignalsAgree is false when some but not all sold signals are set.
func (c *Calculator) SoldSignalsAgree(t domain.Ticket) bool {
	status, area, stamp := c.hasSoldStatus(t), c.inSalesArea(t), t.SoldAt != nil
	return status == area && area == stamp
}

func (c *Calculator) IsDeleted(t domain.Ticket) bool {
	return t.Deleted || matchesAny(t.Status, c.settings.DeletedStatuses)
}

// IsActive is stock still held by the shop.
func (c *Calculator) IsActive(t domain.Ticket, s domain.FinancialSnapshot) bool {
	return !s.IsSold && !c.IsDeleted(t)
}

func (c *Calculator) hasSoldStatus(t domain.Ticket) bool {
	return matchesAny(t.Status, c.settings.SoldStatuses)
}

func (c *Calculator) inSalesArea(t domain.Ticket) bool {
	return t.CurrentArea != "" && strings.EqualFold(strings.TrimSpace(t.CurrentArea), c.settings.SalesArea)
}

// hardwareDelta is the value of the current parts minus the value of the
// parts the device arrived with.
func (c *Calculator) hardwareDelta(kind domain.PriceCategory, current []domain.HardwareSpec, original domain.OriginalSpec) float64 {
	currentValue := pricing.SumSpecs(c.resolver, kind, current)
	if original.Source == domain.OriginalSourceNone {
		return currentValue
	}
	return currentValue - pricing.SumSpecs(c.resolver, kind, original.Items)
}

func matchesAny(value string, candidates []string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return false
	}
	for _, c := range candidates {
		if strings.EqualFold(v, c) {
			return true
		}
	}
	return false
}
