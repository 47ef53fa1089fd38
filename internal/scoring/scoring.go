// Package scoring computes trait scores, an overall score and a hiring
// risk tier from a candidate's raw questionnaire responses. It is a
// pure computation; persistence belongs to the caller.
package scoring

import (
	"errors"
	"math"
)

// ErrInsufficientData is returned when no question received a usable
// response, so no trait score can be computed.
var ErrInsufficientData = errors.New("no scorable responses")

type RiskTier string

const (
	RiskLow        RiskTier = "Low"
	RiskModerate   RiskTier = "Moderate"
	RiskBorderline RiskTier = "Borderline"
	RiskHigh       RiskTier = "High"
)

// Question is the scoring-relevant slice of the question reference
// data, positionally aligned with the response array.
type Question struct {
	ID          uint
	Trait       string
	Reverse     bool
	KOThreshold *float64
}

// KnockOutItem records a question whose normalized response fell at or
// below its knock-out threshold.
type KnockOutItem struct {
	QuestionID uint    `json:"id"`
	Value      float64 `json:"value"`
}

type Result struct {
	TraitScores  map[string]float64 `json:"trait_scores"`
	OverallScore float64            `json:"overall_score"`
	OverallRisk  RiskTier           `json:"overall_risk"`
	KOTriggered  bool               `json:"ko_triggered"`
	KOItems      []KnockOutItem     `json:"ko_items"`
}

// Normalize flips reverse-coded items so every response shares the
// polarity of its trait, keeping the 1-5 scale anchored at midpoint 3.
func Normalize(q Question, raw float64) float64 {
	if q.Reverse {
		return 6 - raw
	}
	return raw
}

// CoerceResponses converts a decoded JSON array into positional raw
// values. Non-numeric entries become nil and are skipped by Score;
// they are not an error.
func CoerceResponses(raw []interface{}) []*float64 {
	out := make([]*float64, len(raw))
	for i, v := range raw {
		if f, ok := v.(float64); ok {
			out[i] = &f
		}
	}
	return out
}

// Score walks questions and responses in lock-step by position.
// Missing or non-numeric responses exclude the question from trait
// sums and counts. Trait scores are means of normalized values rounded
// to two decimals; the overall score is the unweighted mean of the
// trait means, so every trait carries equal weight regardless of its
// question count. Knock-out thresholds compare against the normalized
// value and force the High tier.
func Score(questions []Question, responses []*float64) (*Result, error) {
	traitSums := make(map[string]float64)
	traitCounts := make(map[string]int)
	koItems := []KnockOutItem{}
	koTriggered := false

	for i, q := range questions {
		if i >= len(responses) || responses[i] == nil {
			continue
		}
		normalized := Normalize(q, *responses[i])
		traitSums[q.Trait] += normalized
		traitCounts[q.Trait]++
		if q.KOThreshold != nil && normalized <= *q.KOThreshold {
			koTriggered = true
			koItems = append(koItems, KnockOutItem{QuestionID: q.ID, Value: normalized})
		}
	}

	if len(traitSums) == 0 {
		return nil, ErrInsufficientData
	}

	traitScores := make(map[string]float64, len(traitSums))
	overallSum := 0.0
	for trait, sum := range traitSums {
		mean := sum / float64(traitCounts[trait])
		traitScores[trait] = round2(mean)
		overallSum += mean
	}
	overallScore := overallSum / float64(len(traitSums))

	return &Result{
		TraitScores:  traitScores,
		OverallScore: overallScore,
		OverallRisk:  classify(overallScore, koTriggered),
		KOTriggered:  koTriggered,
		KOItems:      koItems,
	}, nil
}

// classify applies the tier thresholds in priority order. A knock-out
// overrides the score-based tiers unconditionally; score boundaries
// are half-open, so a score exactly on a boundary falls into the
// higher tier.
func classify(overall float64, ko bool) RiskTier {
	switch {
	case ko:
		return RiskHigh
	case overall < 3.0:
		return RiskHigh
	case overall < 3.5:
		return RiskBorderline
	case overall < 4.0:
		return RiskModerate
	default:
		return RiskLow
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
