package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/match-analysis/internal/platform/cache"
	"github.com/riskibarqy/match-analysis/internal/platform/logging"
	"github.com/riskibarqy/match-analysis/internal/usecase"
)

type Handler struct {
	analysisService *usecase.MatchAnalysisService
	batchService    *usecase.BatchAnalysisService
	historyService  *usecase.HistoryService
	cache           cache.Cache
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	analysisService *usecase.MatchAnalysisService,
	batchService *usecase.BatchAnalysisService,
	historyService *usecase.HistoryService,
	store cache.Cache,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		analysisService: analysisService,
		batchService:    batchService,
		historyService:  historyService,
		cache:           store,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type analysisRequest struct {
	HomeTeamID           int64  `json:"homeTeamId" validate:"required,gt=0"`
	AwayTeamID           int64  `json:"awayTeamId" validate:"required,gt=0,nefield=HomeTeamID"`
	LeagueID             int64  `json:"leagueId" validate:"omitempty,gt=0"`
	MatchDate            string `json:"matchDate" validate:"omitempty,max=35"`
	IncludeExpectedStats *bool  `json:"includeExpectedStats"`
	CacheResults         *bool  `json:"cacheResults"`
}

func (r analysisRequest) toInput() usecase.AnalysisInput {
	return usecase.AnalysisInput{
		HomeTeamID:           r.HomeTeamID,
		AwayTeamID:           r.AwayTeamID,
		LeagueID:             r.LeagueID,
		MatchDate:            strings.TrimSpace(r.MatchDate),
		IncludeExpectedStats: r.IncludeExpectedStats,
		CacheResults:         r.CacheResults,
	}
}

// Items are validated by the analysis itself so one bad fixture only fails its
// own slot.
type batchAnalysisRequest struct {
	Fixtures []analysisRequest `json:"fixtures" validate:"required,min=1,max=20"`
}

func pathInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	value, err := queryInt64(r, name)
	if err != nil {
		return 0, err
	}
	return int(value), nil
}

// queryBool returns nil when the parameter is absent.
func queryBool(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a boolean, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return &value, nil
}
