package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/match-analysis/internal/domain/match"
	"github.com/riskibarqy/match-analysis/internal/usecase"
)

type listMetaDTO struct {
	Count int `json:"count"`
}

func (h *Handler) ListTeamMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamMatches")
	defer span.End()

	teamID, err := pathInt64(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	leagueID, err := queryInt64(r, "leagueId")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	rawType := strings.TrimSpace(r.URL.Query().Get("type"))
	matchType, ok := match.ParseType(rawType)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: type must be one of home, away, all, got %q", usecase.ErrInvalidInput, rawType))
		return
	}

	items, err := h.historyService.TeamMatches(ctx, match.TeamMatchesQuery{
		TeamID:   teamID,
		Type:     matchType,
		Limit:    limit,
		LeagueID: leagueID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list team matches failed", "team_id", teamID, "type", matchType, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccessWithMeta(ctx, w, http.StatusOK, items, listMetaDTO{Count: len(items)})
}

func (h *Handler) ListHeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHeadToHead")
	defer span.End()

	teamA, err := pathInt64(r, "teamA")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamB, err := pathInt64(r, "teamB")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.historyService.HeadToHead(ctx, teamA, teamB, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list head to head failed", "team_a", teamA, "team_b", teamB, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccessWithMeta(ctx, w, http.StatusOK, items, listMetaDTO{Count: len(items)})
}

func (h *Handler) ListLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueStandings")
	defer span.End()

	leagueID, err := pathInt64(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.historyService.LeagueStandings(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list league standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccessWithMeta(ctx, w, http.StatusOK, items, listMetaDTO{Count: len(items)})
}
