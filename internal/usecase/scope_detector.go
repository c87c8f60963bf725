package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"firesec_estimator/internal/domain/entities"
	"firesec_estimator/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

// systemKeywords maps each system type to the phrases that indicate its
// presence in project documents. Matching is case-insensitive substring.
var systemKeywords = map[entities.SystemType][]string{
	entities.SystemTypeFireAlarm:          {"fire alarm", "smoke detector", "pull station"},
	entities.SystemTypeFireSuppression:    {"sprinkler", "suppression", "wet pipe", "dry pipe"},
	entities.SystemTypeAccessControl:      {"access control", "badge reader", "card reader"},
	entities.SystemTypeCCTV:               {"cctv", "camera", "video surveillance"},
	entities.SystemTypeIntrusionDetection: {"intrusion", "motion sensor", "security alarm"},
}

// KeywordScopeDetector detects required systems by keyword matching.
// Deterministic, dependency-free, used as the fallback behind the
// model-backed detector.
type KeywordScopeDetector struct{}

var _ interfaces.IScopeDetector = (*KeywordScopeDetector)(nil)

func NewKeywordScopeDetector() *KeywordScopeDetector {
	return &KeywordScopeDetector{}
}

func (d *KeywordScopeDetector) DetectSystems(_ context.Context, text string) ([]entities.SystemType, error) {
	lower := strings.ToLower(text)
	var detected []entities.SystemType
	for _, st := range entities.AllSystemTypes {
		for _, kw := range systemKeywords[st] {
			if strings.Contains(lower, kw) {
				detected = append(detected, st)
				break
			}
		}
	}
	return detected, nil
}

// LLMScopeDetector asks the generative service to classify the scope. Any
// model or parse failure falls back to keyword matching, so detection
// never fails outright.
type LLMScopeDetector struct {
	genai    interfaces.IGenerativeClient
	fallback *KeywordScopeDetector
	log      zerolog.Logger
}

var _ interfaces.IScopeDetector = (*LLMScopeDetector)(nil)

func NewLLMScopeDetector(genai interfaces.IGenerativeClient, log zerolog.Logger) *LLMScopeDetector {
	return &LLMScopeDetector{genai: genai, fallback: NewKeywordScopeDetector(), log: log}
}

func (d *LLMScopeDetector) DetectSystems(ctx context.Context, text string) ([]entities.SystemType, error) {
	prompt := fmt.Sprintf(
		`Identify the fire protection and security systems required by the following project documents. Respond with a JSON array containing only values from this list: %s.

Documents:
%s`,
		systemTypeList(), text,
	)

	raw, err := d.genai.CompleteJSON(ctx, prompt)
	if err != nil {
		d.log.Warn().Err(err).Msg("scope detection model call failed, falling back to keywords")
		return d.fallback.DetectSystems(ctx, text)
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		d.log.Warn().Err(err).Msg("scope detection response unparsable, falling back to keywords")
		return d.fallback.DetectSystems(ctx, text)
	}

	seen := make(map[entities.SystemType]bool)
	var detected []entities.SystemType
	for _, name := range names {
		st := entities.SystemType(strings.ToLower(strings.TrimSpace(name)))
		if !seen[st] && validSystemType(st) {
			seen[st] = true
			detected = append(detected, st)
		}
	}
	return detected, nil
}

func validSystemType(st entities.SystemType) bool {
	for _, known := range entities.AllSystemTypes {
		if st == known {
			return true
		}
	}
	return false
}

func systemTypeList() string {
	names := make([]string, 0, len(entities.AllSystemTypes))
	for _, st := range entities.AllSystemTypes {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}
