package interfaces

import "firesec_estimator/internal/domain/entities"

// IPricingCatalog is the pluggable pricing data source. Every method is a
// deterministic, side-effect-free lookup by system type or location;
// pricing data is loaded externally, never compiled into logic.
type IPricingCatalog interface {
	// Materials returns the base material list for a system type, with
	// line totals already computed.
	Materials(systemType entities.SystemType) []entities.Material
	// LaborHours returns the base installation hours for a system type.
	LaborHours(systemType entities.SystemType) float64
	// LaborRate resolves the hourly rate for a labor category by country.
	// Unrecognized countries explicitly fall back to the US baseline
	// table; resolvedCountry reports which table was used.
	LaborRate(country, category string) (rate float64, resolvedCountry string)
	// LaborRates returns the full category->rate table for a country.
	LaborRates(country string) (map[string]float64, bool)
	Equipment(systemType entities.SystemType) []entities.Equipment
	Subcontractors(systemType entities.SystemType, location entities.ProjectLocation) []entities.Subcontractor
	// TaxRate returns the location-aware tax fraction, falling back to the
	// documented default when the location is unknown.
	TaxRate(location entities.ProjectLocation) float64
	// ComplianceCodes returns the standard->codes table for a country.
	ComplianceCodes(country string) (map[string][]string, bool)
}
