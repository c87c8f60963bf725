package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"firesec_estimator/internal/domain/entities"
)

func TestCatalog_Materials(t *testing.T) {
	c := NewDefaultCatalog()

	materials := c.Materials(entities.SystemTypeFireAlarm)
	if len(materials) != 3 {
		t.Fatalf("expected 3 material lines, got %d", len(materials))
	}

	var total float64
	for _, m := range materials {
		if m.TotalCost != m.Quantity*m.UnitCost {
			t.Fatalf("line %s total %v != %v * %v", m.SKU, m.TotalCost, m.Quantity, m.UnitCost)
		}
		total += m.TotalCost
	}
	if total != 1770 {
		t.Fatalf("expected fire alarm material total 1770, got %v", total)
	}
}

func TestCatalog_LaborLookups(t *testing.T) {
	c := NewDefaultCatalog()

	t.Run("hours per system", func(t *testing.T) {
		if h := c.LaborHours(entities.SystemTypeFireAlarm); h != 24 {
			t.Fatalf("expected 24 hours, got %v", h)
		}
		if h := c.LaborHours(entities.SystemType("unknown")); h != 16 {
			t.Fatalf("expected default 16 hours, got %v", h)
		}
	})

	t.Run("rate by country and category", func(t *testing.T) {
		rate, resolved := c.LaborRate("ca", "master")
		if rate != 70.0 || resolved != "CA" {
			t.Fatalf("unexpected rate %v for %s", rate, resolved)
		}
	})

	t.Run("unknown country falls back to US", func(t *testing.T) {
		rate, resolved := c.LaborRate("BR", "journeyman")
		if rate != 45.0 || resolved != "US" {
			t.Fatalf("expected US fallback at 45, got %v for %s", rate, resolved)
		}
	})

	t.Run("full rate table", func(t *testing.T) {
		rates, ok := c.LaborRates("US")
		if !ok || rates["apprentice"] != 25.0 {
			t.Fatalf("unexpected table: %v", rates)
		}
		if _, ok := c.LaborRates("BR"); ok {
			t.Fatalf("expected unknown country to report absence")
		}
	})
}

func TestCatalog_TaxRate(t *testing.T) {
	c := NewDefaultCatalog()

	if rate := c.TaxRate(entities.ProjectLocation{Country: "US", StateProvince: "CA"}); rate != 0.08 {
		t.Fatalf("expected 0.08, got %v", rate)
	}
	if rate := c.TaxRate(entities.ProjectLocation{Country: "ZZ"}); rate != 0.08 {
		t.Fatalf("expected default 0.08, got %v", rate)
	}
}

func TestCatalog_ComplianceCodes(t *testing.T) {
	c := NewDefaultCatalog()

	codes, ok := c.ComplianceCodes("us")
	if !ok {
		t.Fatalf("expected US codes")
	}
	if len(codes["NFPA"]) != 6 || codes["NFPA"][0] != "72" {
		t.Fatalf("unexpected NFPA codes: %v", codes["NFPA"])
	}
	if _, ok := c.ComplianceCodes("ZZ"); ok {
		t.Fatalf("expected unknown country to report absence")
	}
}

func TestCatalog_Subcontractors(t *testing.T) {
	c := NewDefaultCatalog()

	subs := c.Subcontractors(entities.SystemTypeFireSuppression, entities.ProjectLocation{Country: "US"})
	if len(subs) != 1 || subs[0].Company != "FireSprink Inc." || subs[0].Cost != 2500 {
		t.Fatalf("unexpected subcontractors: %+v", subs)
	}
	if subs := c.Subcontractors(entities.SystemTypeCCTV, entities.ProjectLocation{}); len(subs) != 0 {
		t.Fatalf("expected no cctv subcontractors, got %+v", subs)
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Run("overrides keep missing sections at baseline", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pricing.yaml")
		overrides := []byte(`
labor_rates:
  US:
    journeyman: 55.0
    master: 75.0
    apprentice: 30.0
tax_rates:
  US: 0.095
`)
		if err := os.WriteFile(path, overrides, 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		c, err := LoadCatalog(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rate, _ := c.LaborRate("US", "journeyman")
		if rate != 55.0 {
			t.Fatalf("override not applied, got %v", rate)
		}
		if rate := c.TaxRate(entities.ProjectLocation{Country: "US"}); rate != 0.095 {
			t.Fatalf("tax override not applied, got %v", rate)
		}
		// Sections absent from the file keep the built-in data.
		if h := c.LaborHours(entities.SystemTypeFireSuppression); h != 32 {
			t.Fatalf("baseline labor hours lost, got %v", h)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("materials: ["), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		if _, err := LoadCatalog(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}
