package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"firesec_estimator/internal/domain/entities"
	"firesec_estimator/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrNoSystemsDetected = errors.New("no systems detected")
	ErrInvalidCountry    = errors.New("unknown country")
)

const (
	contingencyPercentage = 0.10
	estimateValidityDays  = 30
	defaultLaborCategory  = "journeyman"
)

// IEstimateUseCase aggregates line items into cost breakdowns and builds
// complete estimates and proposal documents from them.
type IEstimateUseCase interface {
	GenerateEstimate(ctx context.Context, project entities.Project, scopeText string) (entities.ProjectEstimate, error)
	Aggregate(systems []entities.SystemSpecification, location entities.ProjectLocation) entities.CostBreakdown
	BuildProposal(ctx context.Context, estimate entities.ProjectEstimate) entities.Proposal
	ComplianceCodes(country string) (map[string][]string, error)
	LaborRates(country string) (map[string]float64, error)
}

// EstimateUseCase is the cost aggregator. All pricing flows through the
// pluggable catalog; the generative client is optional and only enriches
// advisory output, so its failures are absorbed.
type EstimateUseCase struct {
	catalog  interfaces.IPricingCatalog
	detector interfaces.IScopeDetector
	genai    interfaces.IGenerativeClient
	log      zerolog.Logger
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(catalog interfaces.IPricingCatalog, detector interfaces.IScopeDetector, genai interfaces.IGenerativeClient, log zerolog.Logger) *EstimateUseCase {
	return &EstimateUseCase{catalog: catalog, detector: detector, genai: genai, log: log}
}

// AnalyzeProjectScope determines the required subsystems from project
// text. An empty detection defaults to a fire alarm system so an estimate
// is always producible.
func (u *EstimateUseCase) AnalyzeProjectScope(ctx context.Context, scopeText string) ([]entities.SystemSpecification, error) {
	detected, err := u.detector.DetectSystems(ctx, scopeText)
	if err != nil {
		return nil, err
	}
	if len(detected) == 0 {
		detected = []entities.SystemType{entities.SystemTypeFireAlarm}
	}

	systems := make([]entities.SystemSpecification, 0, len(detected))
	for _, st := range detected {
		systems = append(systems, entities.SystemSpecification{
			SystemType:     st,
			Manufacturer:   "Generic",
			Model:          "Standard",
			Features:       []string{"Standard features"},
			Certifications: []string{"UL", "FM"},
			WarrantyYears:  1,
		})
	}
	return systems, nil
}

// CalculateMaterials looks up the base material list for a system. Line
// totals come from the entity constructor, so quantity times unit cost
// holds by construction.
func (u *EstimateUseCase) CalculateMaterials(system entities.SystemSpecification, _ entities.ProjectLocation) []entities.Material {
	return u.catalog.Materials(system.SystemType)
}

// CalculateLabor prices the base installation hours at the journeyman
// rate for the project country. Unrecognized countries use the US
// baseline table; the fallback is logged, never silent.
func (u *EstimateUseCase) CalculateLabor(system entities.SystemSpecification, location entities.ProjectLocation) []entities.Labor {
	rate, resolved := u.catalog.LaborRate(location.Country, defaultLaborCategory)
	if resolved != location.Country {
		u.log.Debug().
			Str("country", location.Country).
			Str("resolved", resolved).
			Msg("labor rate country fallback")
	}
	hours := u.catalog.LaborHours(system.SystemType)
	return []entities.Labor{entities.NewLabor(defaultLaborCategory, hours, rate, "Journeyman electrician")}
}

func (u *EstimateUseCase) CalculateEquipment(system entities.SystemSpecification) []entities.Equipment {
	return u.catalog.Equipment(system.SystemType)
}

func (u *EstimateUseCase) IdentifySubcontractors(system entities.SystemSpecification, location entities.ProjectLocation) []entities.Subcontractor {
	return u.catalog.Subcontractors(system.SystemType, location)
}

// Aggregate sums every line item across systems into one CostBreakdown
// with a fixed 10% contingency and the location-aware tax rate.
func (u *EstimateUseCase) Aggregate(systems []entities.SystemSpecification, location entities.ProjectLocation) entities.CostBreakdown {
	var (
		materials      []entities.Material
		labor          []entities.Labor
		equipment      []entities.Equipment
		subcontractors []entities.Subcontractor
	)
	for _, sys := range systems {
		materials = append(materials, u.CalculateMaterials(sys, location)...)
		labor = append(labor, u.CalculateLabor(sys, location)...)
		equipment = append(equipment, u.CalculateEquipment(sys)...)
		subcontractors = append(subcontractors, u.IdentifySubcontractors(sys, location)...)
	}
	return entities.NewCostBreakdown(materials, labor, equipment, subcontractors, contingencyPercentage, u.catalog.TaxRate(location))
}

// CheckCompliance returns every applicable code for the country, prefixed
// with its standards body.
func (u *EstimateUseCase) CheckCompliance(location entities.ProjectLocation) []string {
	table, ok := u.catalog.ComplianceCodes(location.Country)
	if !ok {
		return nil
	}
	var codes []string
	for standard, list := range table {
		for _, code := range list {
			codes = append(codes, standard+" "+code)
		}
	}
	return codes
}

func (u *EstimateUseCase) IdentifyRiskFactors(location entities.ProjectLocation) []string {
	var risks []string
	if location.SeismicZone != "" {
		risks = append(risks, "Seismic bracing requirements for zone "+location.SeismicZone)
	}
	if location.ClimateZone != "" {
		risks = append(risks, "Environmental ratings for climate zone "+location.ClimateZone)
	}
	return risks
}

// SuggestValueEngineering applies per-system threshold rules, then asks
// the generative service for additional suggestions. A model failure only
// costs the extra suggestions.
func (u *EstimateUseCase) SuggestValueEngineering(ctx context.Context, system entities.SystemSpecification, breakdown entities.CostBreakdown) []string {
	var materialCost, laborCost float64
	for _, m := range breakdown.Materials {
		materialCost += m.TotalCost
	}
	for _, l := range breakdown.Labor {
		laborCost += l.TotalCost
	}

	var suggestions []string
	switch system.SystemType {
	case entities.SystemTypeFireAlarm:
		if materialCost > 50000 {
			suggestions = append(suggestions, "Consider addressable devices to reduce wiring costs")
		}
		suggestions = append(suggestions, "Review detector spacing to optimize coverage while minimizing device count")
	case entities.SystemTypeFireSuppression:
		if materialCost > 75000 {
			suggestions = append(suggestions, "Consider CPVC piping for non-critical areas to reduce material costs")
		}
		suggestions = append(suggestions, "Review pipe routing to minimize material usage and installation time")
	case entities.SystemTypeAccessControl:
		if materialCost > 25000 {
			suggestions = append(suggestions, "Consider mobile credentials to reduce card costs")
		}
		suggestions = append(suggestions, "Review door hardware for optimal security-to-cost ratio")
	case entities.SystemTypeCCTV:
		if materialCost > 30000 {
			suggestions = append(suggestions, "Consider IP cameras with PoE to reduce cabling costs")
		}
		suggestions = append(suggestions, "Review camera resolution requirements to optimize storage and bandwidth")
	case entities.SystemTypeIntrusionDetection:
		if materialCost > 20000 {
			suggestions = append(suggestions, "Consider wireless sensors to reduce installation costs")
		}
		suggestions = append(suggestions, "Review sensor coverage to optimize detection while minimizing device count")
	}
	if laborCost > 50000 {
		suggestions = append(suggestions, "Consider phased installation to optimize labor utilization")
	}

	if u.genai != nil {
		prompt := fmt.Sprintf(
			"Suggest value engineering opportunities for a %s system with material cost $%.2f and labor cost $%.2f. One suggestion per line.",
			system.SystemType, materialCost, laborCost,
		)
		out, err := u.genai.Complete(ctx, prompt)
		if err != nil {
			u.log.Warn().Err(err).Msg("value engineering suggestions unavailable")
		} else {
			for _, line := range strings.Split(out, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					suggestions = append(suggestions, line)
				}
			}
		}
	}
	return suggestions
}

// GenerateEstimate runs scope analysis and aggregation into a complete
// estimate, valid for 30 days.
func (u *EstimateUseCase) GenerateEstimate(ctx context.Context, project entities.Project, scopeText string) (entities.ProjectEstimate, error) {
	systems, err := u.AnalyzeProjectScope(ctx, scopeText)
	if err != nil {
		return entities.ProjectEstimate{}, err
	}

	breakdown := u.Aggregate(systems, project.Location)

	var valueEngineering []string
	for _, sys := range systems {
		valueEngineering = append(valueEngineering, u.SuggestValueEngineering(ctx, sys, breakdown)...)
	}

	now := time.Now().UTC()
	return entities.ProjectEstimate{
		EstimateID:                  uuid.NewString(),
		ProjectID:                   project.ID,
		ClientName:                  project.ClientName,
		ProjectName:                 project.ProjectName,
		Location:                    project.Location,
		Systems:                     systems,
		CostBreakdown:               breakdown,
		ComplianceCodes:             u.CheckCompliance(project.Location),
		RiskFactors:                 u.IdentifyRiskFactors(project.Location),
		ValueEngineeringSuggestions: valueEngineering,
		CreatedAt:                   now,
		ValidUntil:                  now.AddDate(0, 0, estimateValidityDays),
	}, nil
}

// BuildProposal assembles the full proposal document from an estimate.
// The executive summary is drafted by the model when available and falls
// back to a template otherwise.
func (u *EstimateUseCase) BuildProposal(ctx context.Context, estimate entities.ProjectEstimate) entities.Proposal {
	summary := u.executiveSummary(ctx, estimate)

	matrix := make(map[string]bool, len(estimate.ComplianceCodes))
	for _, code := range estimate.ComplianceCodes {
		matrix[code] = true
	}

	now := time.Now().UTC()
	return entities.Proposal{
		ProposalID:              uuid.NewString(),
		ProjectID:               estimate.ProjectID,
		ClientName:              estimate.ClientName,
		ProjectName:             estimate.ProjectName,
		ExecutiveSummary:        summary,
		ScopeOfWork:             scopeOfWork(estimate),
		TechnicalSpecifications: technicalSpecifications(estimate),
		ComplianceMatrix:        matrix,
		TermsAndConditions:      termsAndConditions,
		PaymentSchedule:         paymentSchedule,
		Timeline:                projectTimeline,
		TotalCost:               estimate.CostBreakdown.GrandTotal,
		Version:                 "draft",
		GeneratedAt:             now,
		ValidUntil:              now.AddDate(0, 0, estimateValidityDays),
	}
}

func (u *EstimateUseCase) ComplianceCodes(country string) (map[string][]string, error) {
	table, ok := u.catalog.ComplianceCodes(country)
	if !ok {
		return nil, ErrInvalidCountry
	}
	return table, nil
}

func (u *EstimateUseCase) LaborRates(country string) (map[string]float64, error) {
	rates, ok := u.catalog.LaborRates(country)
	if !ok {
		return nil, ErrInvalidCountry
	}
	return rates, nil
}

func (u *EstimateUseCase) executiveSummary(ctx context.Context, estimate entities.ProjectEstimate) string {
	if u.genai != nil {
		prompt := fmt.Sprintf(
			"Write a professional executive summary for a fire protection and security systems proposal. Client: %s. Project: %s. Total cost: $%.2f. Systems: %s.",
			estimate.ClientName, estimate.ProjectName, estimate.CostBreakdown.GrandTotal, systemNames(estimate.Systems),
		)
		if out, err := u.genai.Complete(ctx, prompt); err == nil && strings.TrimSpace(out) != "" {
			return out
		} else if err != nil {
			u.log.Warn().Err(err).Str("project_id", estimate.ProjectID).Msg("executive summary generation failed, using template")
		}
	}
	return fmt.Sprintf(
		"We are pleased to present this proposal for the %s project. The solution includes %d integrated systems and represents an investment of $%.2f covering all equipment, installation, testing and commissioning services.",
		estimate.ProjectName, len(estimate.Systems), estimate.CostBreakdown.GrandTotal,
	)
}

func scopeOfWork(estimate entities.ProjectEstimate) string {
	var b strings.Builder
	b.WriteString("Scope of Work\n")
	for _, sys := range estimate.Systems {
		fmt.Fprintf(&b, "\n%s system:\n", sys.SystemType)
		b.WriteString("- Installation of all equipment and devices\n")
		b.WriteString("- System programming and configuration\n")
		b.WriteString("- Testing and commissioning\n")
		b.WriteString("- Training for system operators\n")
		b.WriteString("- Documentation and as-built drawings\n")
	}
	return b.String()
}

func technicalSpecifications(estimate entities.ProjectEstimate) string {
	var b strings.Builder
	b.WriteString("Technical Specifications\n")
	for _, sys := range estimate.Systems {
		fmt.Fprintf(&b, "\n%s system:\nManufacturer: %s\nModel: %s\n", sys.SystemType, sys.Manufacturer, sys.Model)
		for _, f := range sys.Features {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		fmt.Fprintf(&b, "Warranty: %d years\n", sys.WarrantyYears)
	}
	return b.String()
}

func systemNames(systems []entities.SystemSpecification) string {
	names := make([]string, 0, len(systems))
	for _, s := range systems {
		names = append(names, string(s.SystemType))
	}
	return strings.Join(names, ", ")
}

const termsAndConditions = `Terms and Conditions

1. Payment Terms: 30% deposit on signing, 40% on equipment delivery, 30% on acceptance.
2. Warranty: 1-year parts and labor; extended options available.
3. Service Level: 24/7 emergency support, 4-hour response for critical issues.
4. Change Orders: all changes in writing, quoted separately.
5. Insurance: general liability $2,000,000; workers compensation statutory.`

const paymentSchedule = `Payment Schedule

1. Contract signing: 30%
2. Equipment delivery: 40%
3. System acceptance: 30%`

const projectTimeline = `Project Timeline

Week 1-2: Design and engineering
Week 3-4: Procurement
Week 5-8: Installation and commissioning
Week 9: Training and handover
Week 10: Project closeout`
