// Command tune measures matcher accuracy on labelled ingredient cases and
// sweeps thresholds or scoring algorithms to pick production settings.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pantryrank/backend/internal/domain"
	"github.com/pantryrank/backend/internal/infrastructure/inventory"
	"github.com/pantryrank/backend/internal/infrastructure/logging"
	"github.com/pantryrank/backend/internal/usecase"
)

func main() {
	var (
		algorithm      = flag.String("algorithm", usecase.ScorerRatio, "scoring algorithm: "+fmt.Sprint(usecase.ScorerNames()))
		threshold      = flag.Int("threshold", usecase.DefaultFuzzyThreshold, "fuzzy threshold 0-100")
		optimize       = flag.Bool("optimize", false, "sweep thresholds and report the best F1")
		compare        = flag.Bool("compare", false, "evaluate every algorithm at -threshold")
		minThreshold   = flag.Int("min", 60, "lowest threshold in the sweep")
		maxThreshold   = flag.Int("max", 95, "highest threshold in the sweep")
		step           = flag.Int("step", 5, "threshold sweep step")
		pantryPath     = flag.String("pantry", "", "pantry CSV or xlsx (defaults to the sample pantry)")
		commissaryPath = flag.String("commissary", "", "commissary CSV or xlsx (defaults to the sample commissary)")
		asJSON         = flag.Bool("json", false, "print reports as JSON")
		level          = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	logger, err := logging.New(*level, "development")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	pantry, err := loadList(*pantryPath, inventory.SamplePantry)
	if err != nil {
		logger.Fatal("failed to load pantry", zap.Error(err))
	}
	commissary, err := loadList(*commissaryPath, inventory.SampleCommissary)
	if err != nil {
		logger.Fatal("failed to load commissary", zap.Error(err))
	}

	tuner := usecase.NewTuner(pantry, commissary, usecase.DefaultTuningCases(), logger)

	var reports []usecase.AccuracyReport
	switch {
	case *compare:
		reports = tuner.CompareAlgorithms(*threshold)
	case *optimize:
		scorer, err := usecase.ScorerByName(*algorithm)
		if err != nil {
			logger.Fatal("invalid algorithm", zap.Error(err))
		}
		best, all, err := tuner.OptimizeThreshold(*algorithm, scorer, *minThreshold, *maxThreshold, *step)
		if err != nil {
			logger.Fatal("invalid sweep", zap.Error(err))
		}
		logger.Info("best threshold",
			zap.String("algorithm", best.Algorithm),
			zap.Int("threshold", best.Threshold),
			zap.Float64("f1", best.F1))
		reports = all
	default:
		scorer, err := usecase.ScorerByName(*algorithm)
		if err != nil {
			logger.Fatal("invalid algorithm", zap.Error(err))
		}
		reports = []usecase.AccuracyReport{tuner.EvaluateAccuracy(*algorithm, scorer, *threshold)}
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			logger.Fatal("failed to encode reports", zap.Error(err))
		}
		return
	}

	for _, report := range reports {
		logReport(logger, report)
	}
}

func loadList(path string, fallback func() []domain.InventoryItem) ([]domain.InventoryItem, error) {
	if path == "" {
		return fallback(), nil
	}
	format, err := inventory.DetectFormat(path, "")
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	items, _, err := inventory.Parse(format, f)
	return items, err
}

func logReport(logger *zap.Logger, report usecase.AccuracyReport) {
	logger.Info("accuracy report",
		zap.String("algorithm", report.Algorithm),
		zap.Int("threshold", report.Threshold),
		zap.Int("total", report.Total),
		zap.Int("correct", report.Correct),
		zap.Int("false_positives", report.FalsePositives),
		zap.Int("false_negatives", report.FalseNegatives),
		zap.Float64("accuracy", report.Accuracy),
		zap.Float64("precision", report.Precision),
		zap.Float64("recall", report.Recall),
		zap.Float64("f1", report.F1))

	for _, outcome := range report.Outcomes {
		if outcome.Status == usecase.StatusCorrect || outcome.Status == usecase.StatusCorrectNoMatch {
			continue
		}
		logger.Warn("mismatch",
			zap.String("ingredient", outcome.Ingredient),
			zap.String("expected", outcome.Expected),
			zap.String("actual", outcome.Actual),
			zap.Float64("score", outcome.Score),
			zap.String("status", outcome.Status))
	}
}
