package entities

// SystemType identifies one fire-protection/security subsystem line.
//
// Domain notes:
//   - Scope analysis emits one SystemSpecification per detected type.
//   - Pricing catalogs are keyed by SystemType.

type SystemType string

const (
	SystemTypeFireAlarm          SystemType = "fire_alarm"
	SystemTypeFireSuppression    SystemType = "fire_suppression"
	SystemTypeAccessControl      SystemType = "access_control"
	SystemTypeCCTV               SystemType = "cctv"
	SystemTypeIntrusionDetection SystemType = "intrusion_detection"
)

// AllSystemTypes lists every known subsystem in catalog order.
var AllSystemTypes = []SystemType{
	SystemTypeFireAlarm,
	SystemTypeFireSuppression,
	SystemTypeAccessControl,
	SystemTypeCCTV,
	SystemTypeIntrusionDetection,
}

// SystemSpecification is one required subsystem with its chosen equipment
// line. Immutable once produced by scope analysis for a given estimate.
type SystemSpecification struct {
	SystemType     SystemType `json:"system_type"`
	Manufacturer   string     `json:"manufacturer"`
	Model          string     `json:"model"`
	Features       []string   `json:"features"`
	Certifications []string   `json:"certifications"`
	WarrantyYears  int        `json:"warranty_years"`
}

// ProjectLocation is the installation site. Country drives labor rates and
// compliance codes; the zone fields feed risk-factor analysis.
type ProjectLocation struct {
	Country       string `json:"country"`
	StateProvince string `json:"state_province"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	SeismicZone   string `json:"seismic_zone,omitempty"`
	ClimateZone   string `json:"climate_zone,omitempty"`
}
