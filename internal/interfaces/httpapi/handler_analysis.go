package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-analysis/internal/domain/analysis"
	"github.com/riskibarqy/match-analysis/internal/usecase"
)

type analysisMetaDTO struct {
	DataQuality analysis.DataQuality `json:"dataQuality"`
	GeneratedAt string               `json:"generatedAt"`
	Sources     analysis.Sources     `json:"sources"`
}

type batchItemDTO struct {
	Index      int                                  `json:"index"`
	HomeTeamID int64                                `json:"homeTeamId"`
	AwayTeamID int64                                `json:"awayTeamId"`
	LeagueID   int64                                `json:"leagueId,omitempty"`
	Status     string                               `json:"status"`
	Analysis   *analysis.ComprehensiveMatchAnalysis `json:"analysis,omitempty"`
	Error      *googleErrorItem                     `json:"error,omitempty"`
}

type batchResponseDTO struct {
	Items     []batchItemDTO `json:"items"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}

func (h *Handler) GetMatchAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchAnalysis")
	defer span.End()

	input, err := analysisInputFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	h.respondAnalysis(ctx, w, input)
}

func (h *Handler) CreateMatchAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatchAnalysis")
	defer span.End()

	var req analysisRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	h.respondAnalysis(ctx, w, req.toInput())
}

func (h *Handler) CreateBatchAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateBatchAnalysis")
	defer span.End()

	var req batchAnalysisRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inputs := make([]usecase.AnalysisInput, 0, len(req.Fixtures))
	for _, item := range req.Fixtures {
		inputs = append(inputs, item.toInput())
	}

	result, err := h.batchService.AnalyzeFixtures(ctx, inputs)
	if err != nil {
		h.logger.WarnContext(ctx, "batch analysis failed", "fixtures", len(inputs), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, batchToDTO(ctx, result))
}

func (h *Handler) respondAnalysis(ctx context.Context, w http.ResponseWriter, input usecase.AnalysisInput) {
	out, err := h.analysisService.GenerateComprehensiveAnalysis(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "generate analysis failed",
			"home_team_id", input.HomeTeamID,
			"away_team_id", input.AwayTeamID,
			"league_id", input.LeagueID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccessWithMeta(ctx, w, http.StatusOK, out, analysisMetaDTO{
		DataQuality: out.DataQuality,
		GeneratedAt: out.GeneratedAt.UTC().Format(time.RFC3339),
		Sources:     out.Sources,
	})
}

func analysisInputFromQuery(r *http.Request) (usecase.AnalysisInput, error) {
	homeTeamID, err := pathInt64(r, "homeTeamID")
	if err != nil {
		return usecase.AnalysisInput{}, err
	}
	awayTeamID, err := pathInt64(r, "awayTeamID")
	if err != nil {
		return usecase.AnalysisInput{}, err
	}
	leagueID, err := queryInt64(r, "leagueId")
	if err != nil {
		return usecase.AnalysisInput{}, err
	}
	includeExpected, err := queryBool(r, "includeExpectedStats")
	if err != nil {
		return usecase.AnalysisInput{}, err
	}
	cacheResults, err := queryBool(r, "cacheResults")
	if err != nil {
		return usecase.AnalysisInput{}, err
	}

	return usecase.AnalysisInput{
		HomeTeamID:           homeTeamID,
		AwayTeamID:           awayTeamID,
		LeagueID:             leagueID,
		MatchDate:            r.URL.Query().Get("matchDate"),
		IncludeExpectedStats: includeExpected,
		CacheResults:         cacheResults,
	}, nil
}

func batchToDTO(ctx context.Context, result usecase.BatchResult) batchResponseDTO {
	items := make([]batchItemDTO, 0, len(result.Items))
	for _, item := range result.Items {
		dto := batchItemDTO{
			Index:      item.Index,
			HomeTeamID: item.Input.HomeTeamID,
			AwayTeamID: item.Input.AwayTeamID,
			LeagueID:   item.Input.LeagueID,
			Status:     item.Status,
			Analysis:   item.Analysis,
		}
		if item.Err != nil {
			mapped := mapError(ctx, item.Err)
			message := item.Error
			if mapped == internalError {
				message = internalErrorMessage
			}
			dto.Error = &googleErrorItem{
				Domain:  errorDomain,
				Reason:  mapped.Reason,
				Message: message,
			}
		}
		items = append(items, dto)
	}

	return batchResponseDTO{
		Items:     items,
		Succeeded: result.SucceededCount,
		Failed:    result.FailedCount,
	}
}
