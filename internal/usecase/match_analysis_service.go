package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/match-analysis/internal/domain/analysis"
	"github.com/riskibarqy/match-analysis/internal/domain/leaguestanding"
	"github.com/riskibarqy/match-analysis/internal/domain/match"
	"github.com/riskibarqy/match-analysis/internal/platform/cache"
	"github.com/riskibarqy/match-analysis/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultAnalysisTTL = 30 * time.Minute

	formSampleSize   = analysis.LongWindow
	venueSampleSize  = analysis.ShortWindow
	meetingsSample   = analysis.LongWindow
	matchDateLayout  = "2006-01-02"
	analysisKeyScope = "analysis"
)

// AnalysisInput describes one fixture to analyze. Nil flags default to true.
type AnalysisInput struct {
	HomeTeamID           int64
	AwayTeamID           int64
	LeagueID             int64
	MatchDate            string
	IncludeExpectedStats *bool
	CacheResults         *bool
}

func (in AnalysisInput) includeExpectedStats() bool {
	return in.IncludeExpectedStats == nil || *in.IncludeExpectedStats
}

func (in AnalysisInput) cacheResults() bool {
	return in.CacheResults == nil || *in.CacheResults
}

type MatchAnalysisService struct {
	repo      match.Repository
	loader    *cache.Loader
	resultTTL time.Duration
	logger    *logging.Logger
	now       func() time.Time
}

func NewMatchAnalysisService(repo match.Repository, loader *cache.Loader, resultTTL time.Duration, logger *logging.Logger) *MatchAnalysisService {
	if logger == nil {
		logger = logging.Default()
	}
	if resultTTL <= 0 {
		resultTTL = DefaultAnalysisTTL
	}
	return &MatchAnalysisService{
		repo:      repo,
		loader:    loader,
		resultTTL: resultTTL,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// GenerateComprehensiveAnalysis builds the full analysis of one fixture. Only
// invalid input and a failed fetch of either team's history are errors; the
// other sections fall back to empty or default values recorded in Sources.
func (s *MatchAnalysisService) GenerateComprehensiveAnalysis(ctx context.Context, input AnalysisInput) (_ analysis.ComprehensiveMatchAnalysis, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchAnalysisService.GenerateComprehensiveAnalysis",
		attribute.Int64("home_team_id", input.HomeTeamID),
		attribute.Int64("away_team_id", input.AwayTeamID),
		attribute.Int64("league_id", input.LeagueID),
	)
	defer endSpan(span, &err)

	identity, err := validateAnalysisInput(input)
	if err != nil {
		return analysis.ComprehensiveMatchAnalysis{}, err
	}

	if !input.cacheResults() || s.loader == nil {
		return s.generate(ctx, identity, input.includeExpectedStats())
	}
	key := AnalysisCacheKey(identity, input.includeExpectedStats())
	return cache.Load(ctx, s.loader, key, s.resultTTL, func(ctx context.Context) (analysis.ComprehensiveMatchAnalysis, error) {
		return s.generate(ctx, identity, input.includeExpectedStats())
	})
}

// AnalysisCacheKey is analysis:{home}:{away}:{league|any}:{date|current}. A
// result computed without expected statistics is kept under a suffixed key.
func AnalysisCacheKey(identity analysis.MatchIdentity, includeExpected bool) string {
	date := identity.MatchDate
	if date == "" {
		date = "current"
	}
	parts := []string{
		analysisKeyScope,
		cache.IDPart(identity.HomeTeamID, "0"),
		cache.IDPart(identity.AwayTeamID, "0"),
		cache.IDPart(identity.LeagueID, "any"),
		date,
	}
	if !includeExpected {
		parts = append(parts, "no-expected")
	}
	return cache.Key(parts...)
}

func validateAnalysisInput(input AnalysisInput) (analysis.MatchIdentity, error) {
	switch {
	case input.HomeTeamID <= 0:
		return analysis.MatchIdentity{}, fmt.Errorf("%w: homeTeamId must be greater than zero", ErrInvalidInput)
	case input.AwayTeamID <= 0:
		return analysis.MatchIdentity{}, fmt.Errorf("%w: awayTeamId must be greater than zero", ErrInvalidInput)
	case input.HomeTeamID == input.AwayTeamID:
		return analysis.MatchIdentity{}, fmt.Errorf("%w: homeTeamId and awayTeamId must differ", ErrInvalidInput)
	case input.LeagueID < 0:
		return analysis.MatchIdentity{}, fmt.Errorf("%w: leagueId must not be negative", ErrInvalidInput)
	}

	identity := analysis.MatchIdentity{
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		LeagueID:   input.LeagueID,
	}
	if raw := strings.TrimSpace(input.MatchDate); raw != "" {
		date, err := parseMatchDate(raw)
		if err != nil {
			return analysis.MatchIdentity{}, fmt.Errorf("%w: matchDate %q must be YYYY-MM-DD or RFC3339", ErrInvalidInput, raw)
		}
		identity.MatchDate = date.Format(matchDateLayout)
	}
	return identity, nil
}

func parseMatchDate(raw string) (time.Time, error) {
	if parsed, err := time.Parse(matchDateLayout, raw); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

type analysisInputs struct {
	homeMatches  []match.HistoricalMatch
	awayMatches  []match.HistoricalMatch
	meetings     []match.HistoricalMatch
	meetingsErr  error
	homeVenue    []match.HistoricalMatch
	awayVenue    []match.HistoricalMatch
	venueErr     error
	standings    []leaguestanding.Standing
	averages     leaguestanding.Averages
	averagesErr  error
	standingsErr error
}

func (s *MatchAnalysisService) generate(ctx context.Context, identity analysis.MatchIdentity, includeExpected bool) (analysis.ComprehensiveMatchAnalysis, error) {
	in, err := s.fetch(ctx, identity)
	if err != nil {
		return analysis.ComprehensiveMatchAnalysis{}, err
	}

	homeTeam := analysis.NewTeamFormAnalysis(identity.HomeTeamID, in.homeMatches, true)
	awayTeam := analysis.NewTeamFormAnalysis(identity.AwayTeamID, in.awayMatches, false)

	out := analysis.ComprehensiveMatchAnalysis{
		Match:            identity,
		HomeTeamAnalysis: homeTeam,
		AwayTeamAnalysis: awayTeam,
		GeneratedAt:      s.now(),
	}

	out.HeadToHead, out.Sources.HeadToHead = analysis.EmptyHeadToHead(), analysis.SourceUnavailable
	if in.meetingsErr == nil {
		out.HeadToHead = analysis.AnalyzeHeadToHead(in.meetings, identity.HomeTeamID, identity.AwayTeamID)
		out.Sources.HeadToHead = analysis.SourceProvider
	} else {
		s.logger.WarnContext(ctx, "head-to-head unavailable, using empty summary",
			"home_team_id", identity.HomeTeamID,
			"away_team_id", identity.AwayTeamID,
			"error", in.meetingsErr,
		)
	}

	out.Sources.VenueRecords = analysis.SourceUnavailable
	if in.venueErr == nil {
		out.HeadToHead.HomeTeamHomeRecord = analysis.NewVenueRecord(identity.HomeTeamID, in.homeVenue)
		out.HeadToHead.AwayTeamAwayRecord = analysis.NewVenueRecord(identity.AwayTeamID, in.awayVenue)
		out.Sources.VenueRecords = analysis.SourceProvider
	} else {
		s.logger.WarnContext(ctx, "venue records unavailable", "error", in.venueErr)
	}

	out.LeagueContext, out.Sources.LeagueContext = s.leagueContext(ctx, identity, in)

	out.Sources.ExpectedStats = analysis.SourceNotRequested
	if includeExpected {
		expected := analysis.ComputeExpectedStatistics(*homeTeam.HomeForm, *awayTeam.AwayForm)
		out.ExpectedStatistics = &expected
		out.Sources.ExpectedStats = analysis.SourceProvider
	}

	out.DataQuality = analysis.AssessDataQuality(in.homeMatches, in.awayMatches, in.meetings, out.GeneratedAt)

	s.logger.DebugContext(ctx, "match analysis generated",
		"home_team_id", identity.HomeTeamID,
		"away_team_id", identity.AwayTeamID,
		"home_matches", len(in.homeMatches),
		"away_matches", len(in.awayMatches),
		"meetings", len(in.meetings),
		"completeness", out.DataQuality.Completeness,
	)
	return out, nil
}

func (s *MatchAnalysisService) leagueContext(ctx context.Context, identity analysis.MatchIdentity, in analysisInputs) (analysis.LeagueContextAnalysis, string) {
	if identity.LeagueID <= 0 {
		return analysis.NewLeagueContext(0, leaguestanding.DefaultAverages(0), nil, identity.HomeTeamID, identity.AwayTeamID), analysis.SourceNotRequested
	}
	if in.standingsErr != nil {
		s.logger.WarnContext(ctx, "league standings unavailable", "league_id", identity.LeagueID, "error", in.standingsErr)
	}
	if in.averagesErr != nil {
		s.logger.WarnContext(ctx, "league averages unavailable, using defaults", "league_id", identity.LeagueID, "error", in.averagesErr)
		return analysis.NewLeagueContext(identity.LeagueID, leaguestanding.DefaultAverages(identity.LeagueID), in.standings, identity.HomeTeamID, identity.AwayTeamID), analysis.SourceDefault
	}
	return analysis.NewLeagueContext(identity.LeagueID, in.averages, in.standings, identity.HomeTeamID, identity.AwayTeamID), analysis.SourceProvider
}

// fetch runs every provider call concurrently. The two team histories are
// required; a failure of either cancels the remaining calls.
func (s *MatchAnalysisService) fetch(ctx context.Context, identity analysis.MatchIdentity) (analysisInputs, error) {
	var in analysisInputs
	var homeVenueErr, awayVenueErr error

	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		items, err := s.repo.TeamMatches(ctx, match.TeamMatchesQuery{TeamID: identity.HomeTeamID, Type: match.TypeHome, Limit: formSampleSize})
		if err != nil {
			return fmt.Errorf("fetch home team matches team_id=%d: %w", identity.HomeTeamID, err)
		}
		in.homeMatches = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.repo.TeamMatches(ctx, match.TeamMatchesQuery{TeamID: identity.AwayTeamID, Type: match.TypeAway, Limit: formSampleSize})
		if err != nil {
			return fmt.Errorf("fetch away team matches team_id=%d: %w", identity.AwayTeamID, err)
		}
		in.awayMatches = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		in.meetings, in.meetingsErr = s.repo.HeadToHead(ctx, identity.HomeTeamID, identity.AwayTeamID, meetingsSample)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		in.homeVenue, homeVenueErr = s.repo.TeamMatches(ctx, match.TeamMatchesQuery{TeamID: identity.HomeTeamID, Type: match.TypeHome, Limit: venueSampleSize})
		return nil
	})
	p.Go(func(ctx context.Context) error {
		in.awayVenue, awayVenueErr = s.repo.TeamMatches(ctx, match.TeamMatchesQuery{TeamID: identity.AwayTeamID, Type: match.TypeAway, Limit: venueSampleSize})
		return nil
	})
	if identity.LeagueID > 0 {
		p.Go(func(ctx context.Context) error {
			in.standings, in.standingsErr = s.repo.LeagueStandings(ctx, identity.LeagueID)
			return nil
		})
		p.Go(func(ctx context.Context) error {
			in.averages, in.averagesErr = s.repo.LeagueAverages(ctx, identity.LeagueID)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return analysisInputs{}, err
	}

	if homeVenueErr != nil {
		in.venueErr = homeVenueErr
	} else if awayVenueErr != nil {
		in.venueErr = awayVenueErr
	}
	if in.meetingsErr != nil {
		in.meetings = nil
	}
	if in.standingsErr != nil {
		in.standings = nil
	}
	return in, nil
}
