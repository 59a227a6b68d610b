package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/match-analysis/internal/domain/leaguestanding"
	"github.com/riskibarqy/match-analysis/internal/domain/match"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 50
)

// HistoryService exposes the normalized provider data behind an analysis.
type HistoryService struct {
	repo match.Repository
}

func NewHistoryService(repo match.Repository) *HistoryService {
	return &HistoryService{repo: repo}
}

func (s *HistoryService) TeamMatches(ctx context.Context, query match.TeamMatchesQuery) (items []match.HistoricalMatch, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.TeamMatches")
	defer endSpan(span, &err)

	if query.TeamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}
	limit, err := normalizeHistoryLimit(query.Limit)
	if err != nil {
		return nil, err
	}
	query.Limit = limit
	if query.Type == "" {
		query.Type = match.TypeAll
	}

	items, err = s.repo.TeamMatches(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list team matches team_id=%d: %w", query.TeamID, err)
	}
	return items, nil
}

func (s *HistoryService) HeadToHead(ctx context.Context, teamA, teamB int64, limit int) (items []match.HistoricalMatch, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.HeadToHead")
	defer endSpan(span, &err)

	if teamA <= 0 || teamB <= 0 {
		return nil, fmt.Errorf("%w: team ids must be greater than zero", ErrInvalidInput)
	}
	if teamA == teamB {
		return nil, fmt.Errorf("%w: head-to-head needs two different teams", ErrInvalidInput)
	}
	limit, err = normalizeHistoryLimit(limit)
	if err != nil {
		return nil, err
	}

	items, err = s.repo.HeadToHead(ctx, teamA, teamB, limit)
	if err != nil {
		return nil, fmt.Errorf("list head-to-head %d vs %d: %w", teamA, teamB, err)
	}
	return items, nil
}

func (s *HistoryService) LeagueStandings(ctx context.Context, leagueID int64) (items []leaguestanding.Standing, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.LeagueStandings")
	defer endSpan(span, &err)

	if leagueID <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}
	items, err = s.repo.LeagueStandings(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league standings league_id=%d: %w", leagueID, err)
	}
	return items, nil
}

func normalizeHistoryLimit(limit int) (int, error) {
	switch {
	case limit == 0:
		return DefaultHistoryLimit, nil
	case limit < 0 || limit > MaxHistoryLimit:
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxHistoryLimit)
	default:
		return limit, nil
	}
}
