package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/match-analysis/internal/domain/analysis"
	"github.com/riskibarqy/match-analysis/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	MaxBatchFixtures     = 20
	DefaultBatchWorkers  = 4
	batchStatusSucceeded = "succeeded"
	batchStatusFailed    = "failed"
)

type fixtureAnalyzer interface {
	GenerateComprehensiveAnalysis(ctx context.Context, input AnalysisInput) (analysis.ComprehensiveMatchAnalysis, error)
}

// BatchItemResult is the outcome of one fixture in a batch. Err is kept for
// callers that map it to a status; Error is its printable form.
type BatchItemResult struct {
	Index    int
	Input    AnalysisInput
	Status   string
	Analysis *analysis.ComprehensiveMatchAnalysis
	Error    string
	Err      error
}

type BatchResult struct {
	Items          []BatchItemResult
	SucceededCount int
	FailedCount    int
}

type BatchAnalysisService struct {
	analyzer fixtureAnalyzer
	workers  int
	logger   *logging.Logger
}

func NewBatchAnalysisService(analyzer fixtureAnalyzer, workers int, logger *logging.Logger) *BatchAnalysisService {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BatchAnalysisService{analyzer: analyzer, workers: workers, logger: logger}
}

// AnalyzeFixtures analyzes up to MaxBatchFixtures fixtures on a bounded worker
// pool. A failing fixture does not fail the batch; items keep input order.
func (s *BatchAnalysisService) AnalyzeFixtures(ctx context.Context, inputs []AnalysisInput) (_ BatchResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatchAnalysisService.AnalyzeFixtures", attribute.Int("fixtures", len(inputs)))
	defer endSpan(span, &err)

	if len(inputs) == 0 {
		return BatchResult{}, fmt.Errorf("%w: at least one fixture is required", ErrInvalidInput)
	}
	if len(inputs) > MaxBatchFixtures {
		return BatchResult{}, fmt.Errorf("%w: at most %d fixtures per batch, got %d", ErrInvalidInput, MaxBatchFixtures, len(inputs))
	}

	workerCount := min(s.workers, len(inputs))
	p, err := ants.NewPool(workerCount)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer p.Release()

	items := make([]BatchItemResult, len(inputs))
	var workers sync.WaitGroup
	for i, input := range inputs {
		workers.Add(1)
		if err := p.Submit(func() {
			defer workers.Done()
			items[i] = s.analyzeOne(ctx, i, input)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return BatchResult{}, fmt.Errorf("submit fixture to worker pool: %w", err)
		}
	}
	workers.Wait()

	result := BatchResult{Items: items}
	for _, item := range items {
		if item.Status == batchStatusSucceeded {
			result.SucceededCount++
		} else {
			result.FailedCount++
		}
	}
	if result.FailedCount > 0 {
		s.logger.WarnContext(ctx, "batch analysis finished with failures",
			"fixtures", len(inputs),
			"failed", result.FailedCount,
		)
	}
	return result, nil
}

func (s *BatchAnalysisService) analyzeOne(ctx context.Context, index int, input AnalysisInput) BatchItemResult {
	item := BatchItemResult{Index: index, Input: input}
	out, err := s.analyzer.GenerateComprehensiveAnalysis(ctx, input)
	if err != nil {
		item.Status = batchStatusFailed
		item.Err = err
		item.Error = err.Error()
		return item
	}
	item.Status = batchStatusSucceeded
	item.Analysis = &out
	return item
}
