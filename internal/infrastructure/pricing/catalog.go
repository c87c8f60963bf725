package pricing

import (
	"fmt"
	"os"
	"strings"

	"firesec_estimator/internal/domain/entities"
	"firesec_estimator/internal/usecase/interfaces"

	"gopkg.in/yaml.v3"
)

const (
	defaultTaxRate      = 0.08
	fallbackCountry     = "US"
	defaultLaborHours   = 16
	defaultSupplier     = "Generic Supplier"
	defaultLeadTimeDays = 7
)

// materialEntry is one priced catalog row.
type materialEntry struct {
	SKU         string  `yaml:"sku"`
	Description string  `yaml:"description"`
	Unit        string  `yaml:"unit"`
	Quantity    float64 `yaml:"quantity"`
	UnitCost    float64 `yaml:"unit_cost"`
}

type equipmentEntry struct {
	Name       string  `yaml:"name"`
	DailyRate  float64 `yaml:"daily_rate"`
	DaysNeeded float64 `yaml:"days_needed"`
}

type subcontractorEntry struct {
	Company      string  `yaml:"company"`
	Scope        string  `yaml:"scope"`
	Cost         float64 `yaml:"cost"`
	PaymentTerms string  `yaml:"payment_terms"`
}

// catalogData is the full pricing dataset, YAML-loadable so pricing can
// change without a rebuild.
type catalogData struct {
	Materials       map[string][]materialEntry      `yaml:"materials"`
	LaborHours      map[string]float64              `yaml:"labor_hours"`
	LaborRates      map[string]map[string]float64   `yaml:"labor_rates"`
	Equipment       map[string][]equipmentEntry     `yaml:"equipment"`
	Subcontractors  map[string][]subcontractorEntry `yaml:"subcontractors"`
	TaxRates        map[string]float64              `yaml:"tax_rates"`
	ComplianceCodes map[string]map[string][]string  `yaml:"compliance_codes"`
}

// Catalog is the in-memory pricing source. Read-only after construction,
// safe for concurrent use.
type Catalog struct {
	data catalogData
}

var _ interfaces.IPricingCatalog = (*Catalog)(nil)

// NewDefaultCatalog builds the catalog from the built-in baseline tables.
func NewDefaultCatalog() *Catalog {
	return &Catalog{data: defaultData()}
}

// LoadCatalog reads the full pricing dataset from a YAML file. Sections
// missing from the file keep the baseline values.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pricing catalog %s: %w", path, err)
	}
	data := defaultData()
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing pricing catalog %s: %w", path, err)
	}
	return &Catalog{data: data}, nil
}

func (c *Catalog) Materials(systemType entities.SystemType) []entities.Material {
	entries := c.data.Materials[string(systemType)]
	materials := make([]entities.Material, 0, len(entries))
	for _, e := range entries {
		materials = append(materials, entities.NewMaterial(e.SKU, e.Description, e.Unit, e.Quantity, e.UnitCost, defaultSupplier, defaultLeadTimeDays))
	}
	return materials
}

func (c *Catalog) LaborHours(systemType entities.SystemType) float64 {
	if hours, ok := c.data.LaborHours[string(systemType)]; ok {
		return hours
	}
	return defaultLaborHours
}

func (c *Catalog) LaborRate(country, category string) (float64, string) {
	resolved := strings.ToUpper(strings.TrimSpace(country))
	rates, ok := c.data.LaborRates[resolved]
	if !ok {
		resolved = fallbackCountry
		rates = c.data.LaborRates[fallbackCountry]
	}
	return rates[category], resolved
}

func (c *Catalog) LaborRates(country string) (map[string]float64, bool) {
	rates, ok := c.data.LaborRates[strings.ToUpper(strings.TrimSpace(country))]
	if !ok {
		return nil, false
	}
	out := make(map[string]float64, len(rates))
	for k, v := range rates {
		out[k] = v
	}
	return out, true
}

func (c *Catalog) Equipment(systemType entities.SystemType) []entities.Equipment {
	entries := c.data.Equipment[string(systemType)]
	equipment := make([]entities.Equipment, 0, len(entries))
	for _, e := range entries {
		equipment = append(equipment, entities.NewEquipment(e.Name, e.DailyRate, e.DaysNeeded))
	}
	return equipment
}

func (c *Catalog) Subcontractors(systemType entities.SystemType, _ entities.ProjectLocation) []entities.Subcontractor {
	entries := c.data.Subcontractors[string(systemType)]
	subs := make([]entities.Subcontractor, 0, len(entries))
	for _, e := range entries {
		subs = append(subs, entities.Subcontractor{
			Company:      e.Company,
			Scope:        e.Scope,
			Cost:         e.Cost,
			PaymentTerms: e.PaymentTerms,
		})
	}
	return subs
}

// TaxRate resolves "COUNTRY/STATE" first, then "COUNTRY", then the
// documented default.
func (c *Catalog) TaxRate(location entities.ProjectLocation) float64 {
	country := strings.ToUpper(strings.TrimSpace(location.Country))
	state := strings.ToUpper(strings.TrimSpace(location.StateProvince))
	if state != "" {
		if rate, ok := c.data.TaxRates[country+"/"+state]; ok {
			return rate
		}
	}
	if rate, ok := c.data.TaxRates[country]; ok {
		return rate
	}
	return defaultTaxRate
}

func (c *Catalog) ComplianceCodes(country string) (map[string][]string, bool) {
	table, ok := c.data.ComplianceCodes[strings.ToUpper(strings.TrimSpace(country))]
	if !ok {
		return nil, false
	}
	out := make(map[string][]string, len(table))
	for standard, codes := range table {
		out[standard] = append([]string(nil), codes...)
	}
	return out, true
}

func defaultData() catalogData {
	return catalogData{
		Materials: map[string][]materialEntry{
			string(entities.SystemTypeFireAlarm): {
				{SKU: "FA-CTRL", Description: "Fire Alarm Control Panel", Unit: "ea", Quantity: 1, UnitCost: 1200.0},
				{SKU: "FA-DET", Description: "Smoke Detector", Unit: "ea", Quantity: 10, UnitCost: 45.0},
				{SKU: "FA-PULL", Description: "Manual Pull Station", Unit: "ea", Quantity: 4, UnitCost: 30.0},
			},
			string(entities.SystemTypeFireSuppression): {
				{SKU: "FS-VALVE", Description: "Sprinkler Valve", Unit: "ea", Quantity: 2, UnitCost: 350.0},
				{SKU: "FS-HEAD", Description: "Sprinkler Head", Unit: "ea", Quantity: 20, UnitCost: 18.0},
				{SKU: "FS-PIPE", Description: "Pipe (ft)", Unit: "ft", Quantity: 200, UnitCost: 3.5},
			},
			string(entities.SystemTypeAccessControl): {
				{SKU: "AC-PNL", Description: "Access Control Panel", Unit: "ea", Quantity: 1, UnitCost: 900.0},
				{SKU: "AC-RDR", Description: "Card Reader", Unit: "ea", Quantity: 4, UnitCost: 120.0},
				{SKU: "AC-STRK", Description: "Electric Strike", Unit: "ea", Quantity: 4, UnitCost: 80.0},
			},
			string(entities.SystemTypeCCTV): {
				{SKU: "CCTV-CAM", Description: "CCTV Camera", Unit: "ea", Quantity: 6, UnitCost: 150.0},
				{SKU: "CCTV-NVR", Description: "Network Video Recorder", Unit: "ea", Quantity: 1, UnitCost: 600.0},
				{SKU: "CCTV-CBL", Description: "Cabling (ft)", Unit: "ft", Quantity: 400, UnitCost: 0.5},
			},
			string(entities.SystemTypeIntrusionDetection): {
				{SKU: "ID-PNL", Description: "Intrusion Panel", Unit: "ea", Quantity: 1, UnitCost: 700.0},
				{SKU: "ID-MOT", Description: "Motion Sensor", Unit: "ea", Quantity: 6, UnitCost: 60.0},
				{SKU: "ID-SIREN", Description: "Siren", Unit: "ea", Quantity: 2, UnitCost: 90.0},
			},
		},
		LaborHours: map[string]float64{
			string(entities.SystemTypeFireAlarm):          24,
			string(entities.SystemTypeFireSuppression):    32,
			string(entities.SystemTypeAccessControl):      20,
			string(entities.SystemTypeCCTV):               18,
			string(entities.SystemTypeIntrusionDetection): 16,
		},
		LaborRates: map[string]map[string]float64{
			"US": {"journeyman": 45.0, "master": 65.0, "apprentice": 25.0},
			"CA": {"journeyman": 50.0, "master": 70.0, "apprentice": 30.0},
		},
		Equipment: map[string][]equipmentEntry{
			string(entities.SystemTypeFireAlarm):          {{Name: "Lift", DailyRate: 120.0, DaysNeeded: 2}},
			string(entities.SystemTypeFireSuppression):    {{Name: "Pipe Threader", DailyRate: 80.0, DaysNeeded: 3}},
			string(entities.SystemTypeAccessControl):      {{Name: "Drill", DailyRate: 30.0, DaysNeeded: 2}},
			string(entities.SystemTypeCCTV):               {{Name: "Lift", DailyRate: 120.0, DaysNeeded: 1}},
			string(entities.SystemTypeIntrusionDetection): {{Name: "Ladder", DailyRate: 20.0, DaysNeeded: 2}},
		},
		Subcontractors: map[string][]subcontractorEntry{
			string(entities.SystemTypeFireSuppression): {
				{Company: "FireSprink Inc.", Scope: "Install and test fire suppression system", Cost: 2500.0, PaymentTerms: "Net 30"},
			},
		},
		TaxRates: map[string]float64{
			"US": 0.08,
			"CA": 0.08,
		},
		ComplianceCodes: map[string]map[string][]string{
			"US": {
				"NFPA": {"72", "101", "13", "14", "20", "25"},
				"IFC":  {"2021"},
				"UL":   {"864", "268", "521"},
			},
			"CA": {
				"ULC": {"S524", "S536", "S537"},
				"CSA": {"C22.1", "C22.2"},
			},
		},
	}
}
