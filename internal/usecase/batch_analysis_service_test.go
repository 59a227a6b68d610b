package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/riskibarqy/match-analysis/internal/domain/analysis"
	"github.com/riskibarqy/match-analysis/internal/platform/logging"
)

type analyzerFunc func(ctx context.Context, input AnalysisInput) (analysis.ComprehensiveMatchAnalysis, error)

func (f analyzerFunc) GenerateComprehensiveAnalysis(ctx context.Context, input AnalysisInput) (analysis.ComprehensiveMatchAnalysis, error) {
	return f(ctx, input)
}

func TestBatchAnalysisService_PreservesOrderAndIsolatesFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	svc := NewBatchAnalysisService(analyzerFunc(func(_ context.Context, input AnalysisInput) (analysis.ComprehensiveMatchAnalysis, error) {
		calls.Add(1)
		if input.HomeTeamID == 3 {
			return analysis.ComprehensiveMatchAnalysis{}, fmt.Errorf("%w: home team 3", ErrNotFound)
		}
		return analysis.ComprehensiveMatchAnalysis{Match: analysis.MatchIdentity{HomeTeamID: input.HomeTeamID, AwayTeamID: input.AwayTeamID}}, nil
	}), 3, logging.NewNop())

	inputs := make([]AnalysisInput, 0, 8)
	for i := int64(1); i <= 8; i++ {
		inputs = append(inputs, AnalysisInput{HomeTeamID: i, AwayTeamID: i + 100})
	}

	got, err := svc.AnalyzeFixtures(context.Background(), inputs)
	if err != nil {
		t.Fatalf("analyze fixtures: %v", err)
	}
	if calls.Load() != 8 {
		t.Fatalf("expected 8 analyzer calls, got %d", calls.Load())
	}
	if got.SucceededCount != 7 || got.FailedCount != 1 {
		t.Fatalf("unexpected counts %+v", got)
	}
	for i, item := range got.Items {
		if item.Index != i || item.Input.HomeTeamID != int64(i+1) {
			t.Fatalf("item %d out of order: %+v", i, item)
		}
		if item.Input.HomeTeamID == 3 {
			if item.Status != batchStatusFailed || !errors.Is(item.Err, ErrNotFound) || item.Analysis != nil {
				t.Fatalf("unexpected failed item %+v", item)
			}
			continue
		}
		if item.Status != batchStatusSucceeded || item.Analysis == nil || item.Analysis.Match.HomeTeamID != item.Input.HomeTeamID {
			t.Fatalf("unexpected item %+v", item)
		}
	}
}

func TestBatchAnalysisService_RejectsEmptyAndOversizedBatches(t *testing.T) {
	t.Parallel()

	svc := NewBatchAnalysisService(analyzerFunc(func(context.Context, AnalysisInput) (analysis.ComprehensiveMatchAnalysis, error) {
		t.Errorf("analyzer must not run for rejected batches")
		return analysis.ComprehensiveMatchAnalysis{}, nil
	}), 2, logging.NewNop())

	if _, err := svc.AnalyzeFixtures(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty batch, got %v", err)
	}
	if _, err := svc.AnalyzeFixtures(context.Background(), make([]AnalysisInput, MaxBatchFixtures+1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for oversized batch, got %v", err)
	}
}
