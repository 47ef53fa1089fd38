package scoring

import (
	"math"
	"testing"
)

func f(v float64) *float64 { return &v }

func resp(vals ...float64) []*float64 {
	out := make([]*float64, len(vals))
	for i := range vals {
		out[i] = &vals[i]
	}
	return out
}

func TestNormalizeKeepsScaleAnchored(t *testing.T) {
	q := Question{Trait: "A"}
	rq := Question{Trait: "A", Reverse: true}

	for raw := 1.0; raw <= 5.0; raw++ {
		n := Normalize(q, raw)
		if n != raw {
			t.Errorf("Normalize(non-reverse, %v) = %v, want %v", raw, n, raw)
		}
		rn := Normalize(rq, raw)
		if rn < 1 || rn > 5 {
			t.Errorf("Normalize(reverse, %v) = %v, outside [1,5]", raw, rn)
		}
		// raw + normalized must sum to 6 for reverse items
		if raw+rn != 6 {
			t.Errorf("Normalize(reverse, %v) = %v, raw+normalized = %v, want 6", raw, rn, raw+rn)
		}
	}

	// midpoint is a fixed point of the flip
	if Normalize(rq, 3) != 3 {
		t.Errorf("Normalize(reverse, 3) = %v, want 3", Normalize(rq, 3))
	}
}

func TestScoreWorkedExample(t *testing.T) {
	questions := []Question{
		{ID: 1, Trait: "A", Reverse: false},
		{ID: 2, Trait: "A", Reverse: true, KOThreshold: f(2)},
		{ID: 3, Trait: "B", Reverse: false},
	}

	res, err := Score(questions, resp(4, 5, 3))
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}

	if got := res.TraitScores["A"]; got != 2.5 {
		t.Errorf("trait A = %v, want 2.5", got)
	}
	if got := res.TraitScores["B"]; got != 3.0 {
		t.Errorf("trait B = %v, want 3.0", got)
	}
	if res.OverallScore != 2.75 {
		t.Errorf("overall = %v, want 2.75", res.OverallScore)
	}
	if res.OverallRisk != RiskHigh {
		t.Errorf("risk = %v, want High", res.OverallRisk)
	}
	if !res.KOTriggered {
		t.Error("knock-out not triggered, want triggered")
	}
	if len(res.KOItems) != 1 || res.KOItems[0].QuestionID != 2 || res.KOItems[0].Value != 1 {
		t.Errorf("ko items = %+v, want [{2 1}]", res.KOItems)
	}
}

func TestScoreSkipsMissingResponses(t *testing.T) {
	questions := []Question{
		{ID: 1, Trait: "A"},
		{ID: 2, Trait: "A"},
		{ID: 3, Trait: "B"},
	}

	tests := []struct {
		name      string
		responses []*float64
		wantA     float64
		wantB     bool // trait B present
	}{
		{"nil entry excluded", []*float64{f(4), nil, f(3)}, 4, true},
		{"short array treated as missing tail", []*float64{f(4)}, 4, false},
		{"all of one trait missing", []*float64{f(2), f(4), nil}, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Score(questions, tt.responses)
			if err != nil {
				t.Fatalf("Score returned error: %v", err)
			}
			if got := res.TraitScores["A"]; got != tt.wantA {
				t.Errorf("trait A = %v, want %v", got, tt.wantA)
			}
			_, present := res.TraitScores["B"]
			if present != tt.wantB {
				t.Errorf("trait B present = %v, want %v", present, tt.wantB)
			}
		})
	}
}

func TestScoreEmptyTraitNeverInResult(t *testing.T) {
	questions := []Question{
		{ID: 1, Trait: "A"},
		{ID: 2, Trait: "B"},
	}
	res, err := Score(questions, []*float64{f(5), nil})
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if v, ok := res.TraitScores["B"]; ok {
		t.Errorf("trait B = %v in result, want absent", v)
	}
	for trait, v := range res.TraitScores {
		if math.IsNaN(v) {
			t.Errorf("trait %s is NaN", trait)
		}
	}
}

func TestScoreInsufficientData(t *testing.T) {
	questions := []Question{
		{ID: 1, Trait: "A"},
		{ID: 2, Trait: "B"},
	}

	cases := [][]*float64{
		{nil, nil},
		{},
		nil,
	}
	for _, responses := range cases {
		if _, err := Score(questions, responses); err != ErrInsufficientData {
			t.Errorf("Score(%v) error = %v, want ErrInsufficientData", responses, err)
		}
	}
}

func TestScoreOverallIsMeanOfTraitMeans(t *testing.T) {
	// Trait A has three questions, trait B one; both traits still carry
	// equal weight in the overall score.
	questions := []Question{
		{ID: 1, Trait: "A"},
		{ID: 2, Trait: "A"},
		{ID: 3, Trait: "A"},
		{ID: 4, Trait: "B"},
	}
	res, err := Score(questions, resp(5, 5, 5, 1))
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if res.OverallScore != 3.0 {
		t.Errorf("overall = %v, want 3.0 (mean of 5 and 1)", res.OverallScore)
	}

	// Same data with the trait order reversed.
	reordered := []Question{
		{ID: 4, Trait: "B"},
		{ID: 1, Trait: "A"},
		{ID: 2, Trait: "A"},
		{ID: 3, Trait: "A"},
	}
	res2, err := Score(reordered, resp(1, 5, 5, 5))
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if res2.OverallScore != res.OverallScore {
		t.Errorf("overall depends on trait order: %v vs %v", res.OverallScore, res2.OverallScore)
	}
}

func TestScoreRiskTierBoundaries(t *testing.T) {
	// One question per trait so the overall score is easy to pin.
	questions := []Question{
		{ID: 1, Trait: "A"},
		{ID: 2, Trait: "B"},
	}

	tests := []struct {
		name string
		a, b float64
		want RiskTier
	}{
		{"well below 3", 1, 2, RiskHigh},
		{"just below 3", 2.5, 3.4, RiskHigh},
		{"exactly 3.0 is Borderline not High", 3, 3, RiskBorderline},
		{"exactly 3.5 is Moderate not Borderline", 3, 4, RiskModerate},
		{"exactly 4.0 is Low not Moderate", 4, 4, RiskLow},
		{"top of scale", 5, 5, RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Score(questions, resp(tt.a, tt.b))
			if err != nil {
				t.Fatalf("Score returned error: %v", err)
			}
			if res.OverallRisk != tt.want {
				t.Errorf("risk for overall %v = %v, want %v", res.OverallScore, res.OverallRisk, tt.want)
			}
		})
	}
}

func TestScoreKnockOutOverridesLowRisk(t *testing.T) {
	threshold := 2.0
	questions := []Question{
		{ID: 1, Trait: "A"},
		{ID: 2, Trait: "B"},
		{ID: 3, Trait: "C", KOThreshold: &threshold},
	}
	// Overall would be Low without the knock-out.
	res, err := Score(questions, resp(5, 5, 2))
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if !res.KOTriggered {
		t.Fatal("knock-out not triggered at value == threshold")
	}
	if res.OverallRisk != RiskHigh {
		t.Errorf("risk = %v, want High despite overall %v", res.OverallRisk, res.OverallScore)
	}

	// Just above the threshold the knock-out must not fire.
	res, err = Score(questions, resp(5, 5, 3))
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if res.KOTriggered {
		t.Error("knock-out triggered above threshold")
	}
	if res.OverallRisk != RiskLow {
		t.Errorf("risk = %v, want Low", res.OverallRisk)
	}
}

func TestScoreKnockOutUsesNormalizedValue(t *testing.T) {
	threshold := 2.0
	questions := []Question{
		{ID: 1, Trait: "A"},
		{ID: 2, Trait: "A", Reverse: true, KOThreshold: &threshold},
	}
	// Raw 5 on a reverse item normalizes to 1, below the threshold.
	res, err := Score(questions, resp(5, 5))
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if !res.KOTriggered {
		t.Error("knock-out should evaluate the normalized value")
	}
	if len(res.KOItems) != 1 || res.KOItems[0].Value != 1 {
		t.Errorf("ko items = %+v, want value 1", res.KOItems)
	}
}

func TestScoreKOFlagMatchesItems(t *testing.T) {
	threshold := 2.0
	questions := []Question{
		{ID: 1, Trait: "A", KOThreshold: &threshold},
		{ID: 2, Trait: "B", KOThreshold: &threshold},
	}
	res, err := Score(questions, resp(2, 1))
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if !res.KOTriggered || len(res.KOItems) != 2 {
		t.Errorf("ko flag %v with %d items, want true with 2", res.KOTriggered, len(res.KOItems))
	}

	res, err = Score(questions, resp(4, 4))
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if res.KOTriggered || len(res.KOItems) != 0 {
		t.Errorf("ko flag %v with %d items, want false with 0", res.KOTriggered, len(res.KOItems))
	}
}

func TestScoreRoundsTraitScores(t *testing.T) {
	questions := []Question{
		{ID: 1, Trait: "A"},
		{ID: 2, Trait: "A"},
		{ID: 3, Trait: "A"},
	}
	// mean of 1,3,4 = 2.666...
	res, err := Score(questions, resp(1, 3, 4))
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if got := res.TraitScores["A"]; got != 2.67 {
		t.Errorf("trait A = %v, want 2.67", got)
	}
}

func TestCoerceResponses(t *testing.T) {
	raw := []interface{}{float64(4), "3", nil, float64(1), true, map[string]interface{}{}}
	out := CoerceResponses(raw)

	if len(out) != len(raw) {
		t.Fatalf("len = %d, want %d", len(out), len(raw))
	}
	if out[0] == nil || *out[0] != 4 {
		t.Errorf("out[0] = %v, want 4", out[0])
	}
	if out[3] == nil || *out[3] != 1 {
		t.Errorf("out[3] = %v, want 1", out[3])
	}
	for _, i := range []int{1, 2, 4, 5} {
		if out[i] != nil {
			t.Errorf("out[%d] = %v, want nil for non-numeric entry", i, *out[i])
		}
	}
}
