package entities

// Cost line items. Every item carries a TotalCost that is a deterministic
// function of its rate fields; the constructors below are the only places
// the products are computed so the invariants cannot drift.

type Material struct {
	SKU          string  `json:"sku"`
	Description  string  `json:"description"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
	UnitCost     float64 `json:"unit_cost"`
	TotalCost    float64 `json:"total_cost"`
	Supplier     string  `json:"supplier"`
	LeadTimeDays int     `json:"lead_time_days"`
}

// NewMaterial computes TotalCost = Quantity * UnitCost.
func NewMaterial(sku, description, unit string, quantity, unitCost float64, supplier string, leadTimeDays int) Material {
	return Material{
		SKU:          sku,
		Description:  description,
		Unit:         unit,
		Quantity:     quantity,
		UnitCost:     unitCost,
		TotalCost:    quantity * unitCost,
		Supplier:     supplier,
		LeadTimeDays: leadTimeDays,
	}
}

type Labor struct {
	Category    string  `json:"category"`
	Hours       float64 `json:"hours"`
	RatePerHour float64 `json:"rate_per_hour"`
	TotalCost   float64 `json:"total_cost"`
	SkillLevel  string  `json:"skill_level"`
}

// NewLabor computes TotalCost = Hours * RatePerHour.
func NewLabor(category string, hours, ratePerHour float64, skillLevel string) Labor {
	return Labor{
		Category:    category,
		Hours:       hours,
		RatePerHour: ratePerHour,
		TotalCost:   hours * ratePerHour,
		SkillLevel:  skillLevel,
	}
}

type Equipment struct {
	Name       string  `json:"name"`
	DailyRate  float64 `json:"daily_rate"`
	DaysNeeded float64 `json:"days_needed"`
	TotalCost  float64 `json:"total_cost"`
}

// NewEquipment computes TotalCost = DailyRate * DaysNeeded.
func NewEquipment(name string, dailyRate, daysNeeded float64) Equipment {
	return Equipment{
		Name:       name,
		DailyRate:  dailyRate,
		DaysNeeded: daysNeeded,
		TotalCost:  dailyRate * daysNeeded,
	}
}

type Subcontractor struct {
	Company      string  `json:"company"`
	Scope        string  `json:"scope"`
	Cost         float64 `json:"cost"`
	PaymentTerms string  `json:"payment_terms"`
}

// CostBreakdown aggregates the four line-item sets.
//
// Invariants:
//   - TotalCost == sum of all line-item totals
//   - ContingencyAmount == TotalCost * ContingencyPercentage
//   - TaxAmount == TotalCost * TaxRate
//   - GrandTotal == TotalCost + ContingencyAmount + TaxAmount
//
// Build one through NewCostBreakdown; never assemble the derived fields
// by hand.
type CostBreakdown struct {
	Materials             []Material      `json:"materials"`
	Labor                 []Labor         `json:"labor"`
	Equipment             []Equipment     `json:"equipment"`
	Subcontractors        []Subcontractor `json:"subcontractors"`
	TotalCost             float64         `json:"total_cost"`
	ContingencyPercentage float64         `json:"contingency_percentage"`
	ContingencyAmount     float64         `json:"contingency_amount"`
	TaxRate               float64         `json:"tax_rate"`
	TaxAmount             float64         `json:"tax_amount"`
	GrandTotal            float64         `json:"grand_total"`
}

// NewCostBreakdown sums the line items and derives contingency, tax and the
// grand total. contingencyPct and taxRate are fractions in [0,1].
func NewCostBreakdown(materials []Material, labor []Labor, equipment []Equipment, subcontractors []Subcontractor, contingencyPct, taxRate float64) CostBreakdown {
	var total float64
	for _, m := range materials {
		total += m.TotalCost
	}
	for _, l := range labor {
		total += l.TotalCost
	}
	for _, e := range equipment {
		total += e.TotalCost
	}
	for _, s := range subcontractors {
		total += s.Cost
	}

	contingency := total * contingencyPct
	tax := total * taxRate

	return CostBreakdown{
		Materials:             materials,
		Labor:                 labor,
		Equipment:             equipment,
		Subcontractors:        subcontractors,
		TotalCost:             total,
		ContingencyPercentage: contingencyPct,
		ContingencyAmount:     contingency,
		TaxRate:               taxRate,
		TaxAmount:             tax,
		GrandTotal:            total + contingency + tax,
	}
}
