package usecase

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pantryrank/backend/internal/domain"
)

// TuningCase is one labelled ingredient used to measure matcher accuracy
type TuningCase struct {
	Ingredient  string `json:"ingredient"`
	Expected    string `json:"expected,omitempty"` // Inventory item name; empty when ShouldMatch is false
	ShouldMatch bool   `json:"shouldMatch"`
}

// Case outcome statuses
const (
	StatusCorrect        = "CORRECT"
	StatusCorrectNoMatch = "CORRECT_NO_MATCH"
	StatusFalsePositive  = "FALSE_POSITIVE"
	StatusFalseNegative  = "FALSE_NEGATIVE"
)

// DefaultTuningCases returns labelled cases for the sample pantry and commissary
func DefaultTuningCases() []TuningCase {
	return []TuningCase{
		// Exact
		{Ingredient: "chicken breast", Expected: "Chicken Breast", ShouldMatch: true},
		{Ingredient: "olive oil", Expected: "Olive Oil", ShouldMatch: true},

		// Synonyms
		{Ingredient: "scallions", Expected: "Green Onions", ShouldMatch: true},
		{Ingredient: "spring onions", Expected: "Green Onions", ShouldMatch: true},
		{Ingredient: "sweet pepper", Expected: "Bell Peppers", ShouldMatch: true},
		{Ingredient: "courgette", Expected: "Zucchini", ShouldMatch: true},

		// Plurals
		{Ingredient: "bell pepper", Expected: "Bell Peppers", ShouldMatch: true},
		{Ingredient: "sweet potato", Expected: "Sweet Potatoes", ShouldMatch: true},
		{Ingredient: "avocado", Expected: "Avocados", ShouldMatch: true},
		{Ingredient: "carrot", Expected: "Carrots", ShouldMatch: true},

		// Quantities and descriptors
		{Ingredient: "2 lbs ground beef", Expected: "Ground Beef", ShouldMatch: true},
		{Ingredient: "1 cup diced tomatoes", Expected: "Tomatoes", ShouldMatch: true},
		{Ingredient: "3 cloves fresh garlic", Expected: "Garlic", ShouldMatch: true},
		{Ingredient: "2 tbsp extra virgin olive oil", Expected: "Olive Oil", ShouldMatch: true},
		{Ingredient: "1 tsp kosher salt", Expected: "Sea Salt", ShouldMatch: true},
		{Ingredient: "1/2 tsp ground black pepper", Expected: "Black Pepper", ShouldMatch: true},

		// Near misses
		{Ingredient: "chicken thighs", ShouldMatch: false},
		// "ground" is dropped before the synonym lookup, leaving "turkey" vs "turkey mince"
		{Ingredient: "ground turkey", ShouldMatch: false},

		// Store
		{Ingredient: "quinoa", ShouldMatch: false},
		{Ingredient: "almond flour", ShouldMatch: false},
		{Ingredient: "coconut milk", ShouldMatch: false},
	}
}

// CaseOutcome records how the matcher handled one tuning case
type CaseOutcome struct {
	TuningCase
	Actual string  `json:"actual,omitempty"`
	Score  float64 `json:"score"`
	Status string  `json:"status"`
}

// AccuracyReport summarizes a matcher configuration over a set of tuning cases
type AccuracyReport struct {
	Algorithm      string        `json:"algorithm"`
	Threshold      int           `json:"threshold"`
	Total          int           `json:"total"`
	Correct        int           `json:"correct"`
	FalsePositives int           `json:"falsePositives"`
	FalseNegatives int           `json:"falseNegatives"`
	Accuracy       float64       `json:"accuracy"` // Percentage
	Precision      float64       `json:"precision"`
	Recall         float64       `json:"recall"`
	F1             float64       `json:"f1"`
	Outcomes       []CaseOutcome `json:"outcomes"`
}

// Tuner evaluates matcher configurations against labelled cases.
// Scoring strategies are injected per run; the matcher is never modified.
type Tuner struct {
	pool   []domain.PoolItem
	cases  []TuningCase
	logger *zap.Logger
}

// NewTuner creates a tuner over the given inventory and cases
func NewTuner(pantry, commissary []domain.InventoryItem, cases []TuningCase, logger *zap.Logger) *Tuner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tuner{
		pool:   BuildPool(pantry, commissary),
		cases:  cases,
		logger: logger,
	}
}

// EvaluateAccuracy runs every case through a matcher built from the scorer and threshold
func (t *Tuner) EvaluateAccuracy(algorithm string, scorer ScoreFunc, threshold int) AccuracyReport {
	matcher := NewMatchingService(MatchConfig{
		FuzzyThreshold: threshold,
		Scorer:         scorer,
		Logger:         t.logger,
	})
	pool := matcher.PreparePool(t.pool)

	report := AccuracyReport{
		Algorithm: algorithm,
		Threshold: matcher.Threshold(),
		Total:     len(t.cases),
		Outcomes:  make([]CaseOutcome, 0, len(t.cases)),
	}

	for _, tc := range t.cases {
		outcome := CaseOutcome{TuningCase: tc}
		match := matcher.MatchPrepared(tc.Ingredient, pool)
		if match != nil {
			outcome.Actual = match.Item.Name
			outcome.Score = match.Score
		}

		switch {
		case tc.ShouldMatch && match != nil && match.Item.Name == tc.Expected:
			outcome.Status = StatusCorrect
			report.Correct++
		case tc.ShouldMatch && match == nil:
			outcome.Status = StatusFalseNegative
			report.FalseNegatives++
		case !tc.ShouldMatch && match == nil:
			outcome.Status = StatusCorrectNoMatch
			report.Correct++
		default:
			outcome.Status = StatusFalsePositive
			report.FalsePositives++
		}

		report.Outcomes = append(report.Outcomes, outcome)
	}

	if report.Total > 0 {
		report.Accuracy = roundTo(float64(report.Correct)/float64(report.Total)*100, 1)
	}
	report.Precision = ratioOf(report.Correct, report.Correct+report.FalsePositives)
	report.Recall = ratioOf(report.Correct, report.Correct+report.FalseNegatives)
	if report.Precision+report.Recall > 0 {
		report.F1 = 2 * report.Precision * report.Recall / (report.Precision + report.Recall)
	}

	return report
}

// OptimizeThreshold evaluates every threshold in [minThreshold,maxThreshold] by step and returns the one
// with the highest F1 (the lowest such threshold on ties) alongside all reports.
func (t *Tuner) OptimizeThreshold(algorithm string, scorer ScoreFunc, minThreshold, maxThreshold, step int) (AccuracyReport, []AccuracyReport, error) {
	if step <= 0 || minThreshold > maxThreshold || minThreshold < 0 || maxThreshold > 100 {
		return AccuracyReport{}, nil, fmt.Errorf("invalid threshold sweep %d..%d step %d", minThreshold, maxThreshold, step)
	}

	var reports []AccuracyReport
	best := -1
	for threshold := minThreshold; threshold <= maxThreshold; threshold += step {
		report := t.EvaluateAccuracy(algorithm, scorer, threshold)
		reports = append(reports, report)
		if best < 0 || report.F1 > reports[best].F1 {
			best = len(reports) - 1
		}

		t.logger.Info("threshold evaluated",
			zap.String("algorithm", algorithm),
			zap.Int("threshold", threshold),
			zap.Float64("f1", report.F1),
			zap.Float64("precision", report.Precision),
			zap.Float64("recall", report.Recall))
	}

	return reports[best], reports, nil
}

// CompareAlgorithms evaluates every named scorer at the same threshold
func (t *Tuner) CompareAlgorithms(threshold int) []AccuracyReport {
	names := ScorerNames()
	reports := make([]AccuracyReport, 0, len(names))
	for _, name := range names {
		scorer, err := ScorerByName(name)
		if err != nil {
			continue
		}
		reports = append(reports, t.EvaluateAccuracy(name, scorer, threshold))
	}
	return reports
}

func ratioOf(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}
