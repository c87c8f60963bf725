package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"firesec_estimator/internal/domain/entities"
	mock_interfaces "firesec_estimator/internal/usecase/interfaces/mocks"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

// stubCatalog is a minimal pricing source with hand-checkable numbers:
// a fire alarm system is 1770 in materials and 24 hours at 45/h.
type stubCatalog struct{}

func (stubCatalog) Materials(st entities.SystemType) []entities.Material {
	if st != entities.SystemTypeFireAlarm {
		return nil
	}
	return []entities.Material{
		entities.NewMaterial("FA-CTRL", "Fire Alarm Control Panel", "ea", 1, 1200.0, "Generic Supplier", 7),
		entities.NewMaterial("FA-DET", "Smoke Detector", "ea", 10, 45.0, "Generic Supplier", 7),
		entities.NewMaterial("FA-PULL", "Manual Pull Station", "ea", 4, 30.0, "Generic Supplier", 7),
	}
}

func (stubCatalog) LaborHours(st entities.SystemType) float64 {
	if st == entities.SystemTypeFireAlarm {
		return 24
	}
	return 16
}

func (stubCatalog) LaborRate(country, category string) (float64, string) {
	if strings.ToUpper(country) == "US" {
		return 45.0, "US"
	}
	return 45.0, "US"
}

func (stubCatalog) LaborRates(country string) (map[string]float64, bool) {
	if strings.ToUpper(country) != "US" {
		return nil, false
	}
	return map[string]float64{"journeyman": 45.0, "master": 65.0, "apprentice": 25.0}, true
}

func (stubCatalog) Equipment(entities.SystemType) []entities.Equipment { return nil }

func (stubCatalog) Subcontractors(entities.SystemType, entities.ProjectLocation) []entities.Subcontractor {
	return nil
}

func (stubCatalog) TaxRate(entities.ProjectLocation) float64 { return 0.08 }

func (stubCatalog) ComplianceCodes(country string) (map[string][]string, bool) {
	if strings.ToUpper(country) != "US" {
		return nil, false
	}
	return map[string][]string{"NFPA": {"72", "101"}}, true
}

func usLocation() entities.ProjectLocation {
	return entities.ProjectLocation{Country: "US", StateProvince: "CA", City: "San Francisco"}
}

func closeTo(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEstimateUseCase_Aggregate(t *testing.T) {
	uc := NewEstimateUseCase(stubCatalog{}, NewKeywordScopeDetector(), nil, zerolog.Nop())

	systems := []entities.SystemSpecification{{SystemType: entities.SystemTypeFireAlarm}}
	breakdown := uc.Aggregate(systems, usLocation())

	if !closeTo(breakdown.TotalCost, 2850) {
		t.Fatalf("expected total 2850, got %v", breakdown.TotalCost)
	}
	if !closeTo(breakdown.ContingencyAmount, 285) {
		t.Fatalf("expected contingency 285, got %v", breakdown.ContingencyAmount)
	}
	if !closeTo(breakdown.TaxAmount, 228) {
		t.Fatalf("expected tax 228, got %v", breakdown.TaxAmount)
	}
	if !closeTo(breakdown.GrandTotal, 3363) {
		t.Fatalf("expected grand total 3363, got %v", breakdown.GrandTotal)
	}

	var materialTotal float64
	for _, m := range breakdown.Materials {
		if !closeTo(m.TotalCost, m.Quantity*m.UnitCost) {
			t.Fatalf("material %s total %v != %v * %v", m.SKU, m.TotalCost, m.Quantity, m.UnitCost)
		}
		materialTotal += m.TotalCost
	}
	if !closeTo(materialTotal, 1770) {
		t.Fatalf("expected material total 1770, got %v", materialTotal)
	}

	if len(breakdown.Labor) != 1 {
		t.Fatalf("expected one labor line, got %d", len(breakdown.Labor))
	}
	labor := breakdown.Labor[0]
	if !closeTo(labor.TotalCost, 1080) || !closeTo(labor.Hours, 24) || !closeTo(labor.RatePerHour, 45) {
		t.Fatalf("unexpected labor line: %+v", labor)
	}
}

func TestEstimateUseCase_AnalyzeProjectScope(t *testing.T) {
	uc := NewEstimateUseCase(stubCatalog{}, NewKeywordScopeDetector(), nil, zerolog.Nop())

	t.Run("detects mentioned systems", func(t *testing.T) {
		systems, err := uc.AnalyzeProjectScope(context.Background(), "Install a fire alarm and CCTV cameras throughout the building.")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(systems) != 2 {
			t.Fatalf("expected 2 systems, got %d", len(systems))
		}
		if systems[0].SystemType != entities.SystemTypeFireAlarm || systems[1].SystemType != entities.SystemTypeCCTV {
			t.Fatalf("unexpected systems: %+v", systems)
		}
	})

	t.Run("defaults to fire alarm", func(t *testing.T) {
		systems, err := uc.AnalyzeProjectScope(context.Background(), "General renovation of the lobby.")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(systems) != 1 || systems[0].SystemType != entities.SystemTypeFireAlarm {
			t.Fatalf("expected fire alarm default, got %+v", systems)
		}
	})

	t.Run("model failure falls back to keywords", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		genai := mock_interfaces.NewMockIGenerativeClient(ctrl)
		genai.EXPECT().CompleteJSON(gomock.Any(), gomock.Any()).Return("", errors.New("model down"))

		detector := NewLLMScopeDetector(genai, zerolog.Nop())
		ucWithLLM := NewEstimateUseCase(stubCatalog{}, detector, nil, zerolog.Nop())

		// Model failure degrades to keywords, never an error.
		systems, err := ucWithLLM.AnalyzeProjectScope(context.Background(), "sprinkler retrofit")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(systems) != 1 || systems[0].SystemType != entities.SystemTypeFireSuppression {
			t.Fatalf("expected keyword fallback, got %+v", systems)
		}
	})
}

func TestEstimateUseCase_GenerateEstimate(t *testing.T) {
	uc := NewEstimateUseCase(stubCatalog{}, NewKeywordScopeDetector(), nil, zerolog.Nop())

	project := entities.Project{
		ID:          "proj-1",
		ProjectName: "Warehouse Retrofit",
		ClientName:  "Acme Corp",
		Location: entities.ProjectLocation{
			Country:       "US",
			StateProvince: "CA",
			SeismicZone:   "4",
		},
	}

	estimate, err := uc.GenerateEstimate(context.Background(), project, "fire alarm upgrade with smoke detector coverage")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if estimate.EstimateID == "" || estimate.ProjectID != "proj-1" {
		t.Fatalf("unexpected identity: %+v", estimate)
	}
	if !closeTo(estimate.CostBreakdown.GrandTotal, 3363) {
		t.Fatalf("expected grand total 3363, got %v", estimate.CostBreakdown.GrandTotal)
	}

	wantValid := estimate.CreatedAt.AddDate(0, 0, 30)
	if !estimate.ValidUntil.Equal(wantValid) {
		t.Fatalf("expected validity %v, got %v", wantValid, estimate.ValidUntil)
	}

	if len(estimate.ComplianceCodes) != 2 {
		t.Fatalf("expected 2 compliance codes, got %v", estimate.ComplianceCodes)
	}
	for _, code := range estimate.ComplianceCodes {
		if !strings.HasPrefix(code, "NFPA ") {
			t.Fatalf("expected NFPA prefix, got %q", code)
		}
	}

	foundSeismic := false
	for _, risk := range estimate.RiskFactors {
		if strings.Contains(risk, "zone 4") {
			foundSeismic = true
		}
	}
	if !foundSeismic {
		t.Fatalf("expected seismic risk factor, got %v", estimate.RiskFactors)
	}
}

func TestEstimateUseCase_BuildProposal(t *testing.T) {
	estimate := entities.ProjectEstimate{
		EstimateID:  "est-1",
		ProjectID:   "proj-1",
		ClientName:  "Acme Corp",
		ProjectName: "Warehouse Retrofit",
		Systems:     []entities.SystemSpecification{{SystemType: entities.SystemTypeFireAlarm, Manufacturer: "Generic", Model: "Standard", WarrantyYears: 1}},
		CostBreakdown: entities.NewCostBreakdown(
			[]entities.Material{entities.NewMaterial("FA-CTRL", "Panel", "ea", 1, 1200, "Generic Supplier", 7)},
			nil, nil, nil, 0.10, 0.08,
		),
		ComplianceCodes: []string{"NFPA 72"},
		CreatedAt:       time.Now().UTC(),
	}

	t.Run("model drafts executive summary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		genai := mock_interfaces.NewMockIGenerativeClient(ctrl)
		genai.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("A tailored summary.", nil)

		uc := NewEstimateUseCase(stubCatalog{}, NewKeywordScopeDetector(), genai, zerolog.Nop())
		proposal := uc.BuildProposal(context.Background(), estimate)

		if proposal.ExecutiveSummary != "A tailored summary." {
			t.Fatalf("expected model summary, got %q", proposal.ExecutiveSummary)
		}
		if proposal.Version != "draft" {
			t.Fatalf("expected draft version, got %q", proposal.Version)
		}
		if !proposal.ComplianceMatrix["NFPA 72"] {
			t.Fatalf("expected compliance matrix entry, got %v", proposal.ComplianceMatrix)
		}
		if !closeTo(proposal.TotalCost, estimate.CostBreakdown.GrandTotal) {
			t.Fatalf("expected total %v, got %v", estimate.CostBreakdown.GrandTotal, proposal.TotalCost)
		}
	})

	t.Run("model failure falls back to template", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		genai := mock_interfaces.NewMockIGenerativeClient(ctrl)
		genai.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("model down"))

		uc := NewEstimateUseCase(stubCatalog{}, NewKeywordScopeDetector(), genai, zerolog.Nop())
		proposal := uc.BuildProposal(context.Background(), estimate)

		if !strings.Contains(proposal.ExecutiveSummary, "Warehouse Retrofit") {
			t.Fatalf("expected template summary, got %q", proposal.ExecutiveSummary)
		}
		if !strings.Contains(proposal.ScopeOfWork, "fire_alarm system") {
			t.Fatalf("expected scope section, got %q", proposal.ScopeOfWork)
		}
	})
}

func TestEstimateUseCase_SuggestValueEngineering(t *testing.T) {
	uc := NewEstimateUseCase(stubCatalog{}, NewKeywordScopeDetector(), nil, zerolog.Nop())

	t.Run("baseline suggestion below threshold", func(t *testing.T) {
		breakdown := uc.Aggregate([]entities.SystemSpecification{{SystemType: entities.SystemTypeFireAlarm}}, usLocation())
		suggestions := uc.SuggestValueEngineering(context.Background(), entities.SystemSpecification{SystemType: entities.SystemTypeFireAlarm}, breakdown)
		if len(suggestions) != 1 || !strings.Contains(suggestions[0], "detector spacing") {
			t.Fatalf("unexpected suggestions: %v", suggestions)
		}
	})

	t.Run("threshold adds addressable-device suggestion", func(t *testing.T) {
		expensive := entities.NewCostBreakdown(
			[]entities.Material{entities.NewMaterial("FA-BULK", "Devices", "lot", 1, 60000, "Generic Supplier", 7)},
			nil, nil, nil, 0.10, 0.08,
		)
		suggestions := uc.SuggestValueEngineering(context.Background(), entities.SystemSpecification{SystemType: entities.SystemTypeFireAlarm}, expensive)
		if len(suggestions) != 2 || !strings.Contains(suggestions[0], "addressable devices") {
			t.Fatalf("unexpected suggestions: %v", suggestions)
		}
	})
}

func TestEstimateUseCase_CountryLookups(t *testing.T) {
	uc := NewEstimateUseCase(stubCatalog{}, NewKeywordScopeDetector(), nil, zerolog.Nop())

	t.Run("known country", func(t *testing.T) {
		rates, err := uc.LaborRates("US")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rates["journeyman"] != 45.0 {
			t.Fatalf("unexpected rates: %v", rates)
		}
		codes, err := uc.ComplianceCodes("US")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(codes["NFPA"]) == 0 {
			t.Fatalf("expected NFPA codes, got %v", codes)
		}
	})

	t.Run("unknown country", func(t *testing.T) {
		if _, err := uc.LaborRates("XX"); !errors.Is(err, ErrInvalidCountry) {
			t.Fatalf("expected ErrInvalidCountry, got %v", err)
		}
		if _, err := uc.ComplianceCodes("XX"); !errors.Is(err, ErrInvalidCountry) {
			t.Fatalf("expected ErrInvalidCountry, got %v", err)
		}
	})
}
