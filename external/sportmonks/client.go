package sportmonks

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-analysis/internal/domain/leaguestanding"
	"github.com/riskibarqy/match-analysis/internal/domain/match"
	"github.com/riskibarqy/match-analysis/internal/platform/logging"
	"github.com/riskibarqy/match-analysis/internal/platform/resilience"
	"github.com/riskibarqy/match-analysis/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL         = "https://api.sportmonks.com/v3/football"
	defaultIncludeFixture  = "participants;scores;state;statistics.type;venue;league;season;referees.referee"
	defaultIncludeStanding = "participant;details.type;form"
	defaultLookbackDays    = 365
	defaultLeagueSample    = 60
	betweenMaxRangeDays    = 100
	pageSize               = 50
	maxPagesPerRange       = 4
	maxResponseBytes       = 6 << 20
	providerDateLayout     = "2006-01-02"
)

var apiTokenParamRegex = regexp.MustCompile(`api_token=[^&\s"']+`)
var errSportMonksTransient = crerr.New("sportmonks transient failure")

type ClientConfig struct {
	HTTPClient        *http.Client
	BaseURL           string
	Token             string
	Timeout           time.Duration
	RequestsPerMinute int
	LookbackDays      int
	LeagueSampleDays  int
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
	RateLimiter       resilience.RateLimiter
}

// Client reads historical football data from SportMonks v3 and normalizes it
// into the match model. All upstream calls share one rate limiter.
type Client struct {
	httpClient       *http.Client
	baseURL          string
	token            string
	lookbackDays     int
	leagueSampleDays int
	logger           *logging.Logger
	limiter          resilience.RateLimiter
	breaker          *resilience.CircuitBreaker
	now              func() time.Time
}

var _ match.Repository = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limiter := cfg.RateLimiter
	if limiter == nil {
		limiter = resilience.NewMinuteLimiter(cfg.RequestsPerMinute)
	}
	lookback := cfg.LookbackDays
	if lookback <= 0 {
		lookback = defaultLookbackDays
	}
	leagueSample := cfg.LeagueSampleDays
	if leagueSample <= 0 {
		leagueSample = defaultLeagueSample
	}

	return &Client{
		httpClient:       httpClient,
		baseURL:          baseURL,
		token:            strings.TrimSpace(cfg.Token),
		lookbackDays:     lookback,
		leagueSampleDays: min(leagueSample, betweenMaxRangeDays),
		logger:           logger,
		limiter:          limiter,
		breaker:          resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		now:              time.Now,
	}
}

// TeamMatches walks back from today in ranges the provider accepts until
// enough finished matches of the requested type are collected.
func (c *Client) TeamMatches(ctx context.Context, query match.TeamMatchesQuery) ([]match.HistoricalMatch, error) {
	if query.TeamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}
	if query.Limit <= 0 {
		return []match.HistoricalMatch{}, nil
	}

	params := map[string]string{"include": defaultIncludeFixture}
	if query.LeagueID > 0 {
		params["filters"] = fmt.Sprintf("fixtureLeagues:%d", query.LeagueID)
	}

	now := c.now().UTC()
	earliest := now.AddDate(0, 0, -c.lookbackDays)
	seen := make(map[int64]struct{}, query.Limit*2)
	out := make([]match.HistoricalMatch, 0, query.Limit)

	for end := now; end.After(earliest) && len(out) < query.Limit; {
		start := end.AddDate(0, 0, -(betweenMaxRangeDays - 1))
		if start.Before(earliest) {
			start = earliest
		}

		path := fmt.Sprintf("/fixtures/between/%s/%s/%d", start.Format(providerDateLayout), end.Format(providerDateLayout), query.TeamID)
		items, err := c.fetchFixturePages(ctx, path, params)
		if err != nil {
			return nil, fmt.Errorf("fetch team matches team_id=%d: %w", query.TeamID, err)
		}

		for _, item := range items {
			m, ok := normalizeFixture(item)
			if !ok || !m.IsFinished() || !matchesQuery(m, query) {
				continue
			}
			if _, dup := seen[m.ID]; dup {
				continue
			}
			seen[m.ID] = struct{}{}
			out = append(out, m)
		}
		end = start.AddDate(0, 0, -1)
	}

	sortMostRecentFirst(out)
	if len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

func (c *Client) HeadToHead(ctx context.Context, teamA, teamB int64, limit int) ([]match.HistoricalMatch, error) {
	if teamA <= 0 || teamB <= 0 {
		return nil, fmt.Errorf("%w: team ids must be greater than zero", usecase.ErrInvalidInput)
	}
	if limit <= 0 {
		return []match.HistoricalMatch{}, nil
	}

	path := fmt.Sprintf("/fixtures/head-to-head/%d/%d", teamA, teamB)
	items, err := c.fetchFixturePages(ctx, path, map[string]string{"include": defaultIncludeFixture})
	if err != nil {
		return nil, fmt.Errorf("fetch head-to-head team_a=%d team_b=%d: %w", teamA, teamB, err)
	}

	out := make([]match.HistoricalMatch, 0, len(items))
	for _, item := range items {
		m, ok := normalizeFixture(item)
		if !ok || !m.IsFinished() || !m.Involves(teamA) || !m.Involves(teamB) {
			continue
		}
		out = append(out, m)
	}

	sortMostRecentFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (c *Client) LeagueStandings(ctx context.Context, leagueID int64) ([]leaguestanding.Standing, error) {
	if leagueID <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", usecase.ErrInvalidInput)
	}

	seasonID, err := c.currentSeasonID(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/standings/seasons/%d", seasonID)
	var envelope listEnvelope
	if _, err := c.doJSON(ctx, path, map[string]string{"include": defaultIncludeStanding}, &envelope); err != nil {
		return nil, fmt.Errorf("fetch standings season_id=%d: %w", seasonID, err)
	}

	rows := parseStandings(envelope.Data)
	for i := range rows {
		rows[i].LeagueID = leagueID
		rows[i].SeasonID = seasonID
	}
	return rows, nil
}

// LeagueAverages samples the league's finished fixtures of the recent past.
func (c *Client) LeagueAverages(ctx context.Context, leagueID int64) (leaguestanding.Averages, error) {
	if leagueID <= 0 {
		return leaguestanding.Averages{}, fmt.Errorf("%w: league id must be greater than zero", usecase.ErrInvalidInput)
	}

	end := c.now().UTC()
	start := end.AddDate(0, 0, -c.leagueSampleDays)
	path := fmt.Sprintf("/fixtures/between/%s/%s", start.Format(providerDateLayout), end.Format(providerDateLayout))
	items, err := c.fetchFixturePages(ctx, path, map[string]string{
		"include": "participants;scores;state;statistics.type",
		"filters": fmt.Sprintf("fixtureLeagues:%d", leagueID),
	})
	if err != nil {
		return leaguestanding.Averages{}, fmt.Errorf("fetch league fixtures league_id=%d: %w", leagueID, err)
	}

	matches := make([]match.HistoricalMatch, 0, len(items))
	for _, item := range items {
		m, ok := normalizeFixture(item)
		if !ok || !m.IsFinished() {
			continue
		}
		if m.League.ID > 0 && m.League.ID != leagueID {
			continue
		}
		matches = append(matches, m)
	}
	if len(matches) == 0 {
		return leaguestanding.Averages{}, fmt.Errorf("%w: no finished fixtures for league_id=%d", usecase.ErrNotFound, leagueID)
	}
	return match.ComputeLeagueAverages(leagueID, matches), nil
}

func (c *Client) currentSeasonID(ctx context.Context, leagueID int64) (int64, error) {
	path := fmt.Sprintf("/leagues/%d", leagueID)
	var envelope objectEnvelope
	if _, err := c.doJSON(ctx, path, map[string]string{"include": "currentSeason"}, &envelope); err != nil {
		return 0, fmt.Errorf("fetch league league_id=%d: %w", leagueID, err)
	}

	season := relationDataMap(lookupAny(envelope.Data, "currentseason", "currentSeason", "current_season"))
	seasonID := getInt64(season, "id")
	if seasonID <= 0 {
		seasonID = getInt64Any(envelope.Data, "current_season_id", "currentSeasonId")
	}
	if seasonID <= 0 {
		return 0, fmt.Errorf("%w: league_id=%d has no current season", usecase.ErrNotFound, leagueID)
	}
	return seasonID, nil
}

// fetchFixturePages follows provider pagination for one listing.
func (c *Client) fetchFixturePages(ctx context.Context, path string, params map[string]string) ([]map[string]any, error) {
	out := make([]map[string]any, 0, pageSize)
	for page := 1; page <= maxPagesPerRange; page++ {
		query := make(map[string]string, len(params)+2)
		for key, value := range params {
			query[key] = value
		}
		query["per_page"] = strconv.Itoa(pageSize)
		query["page"] = strconv.Itoa(page)

		var envelope listEnvelope
		if _, err := c.doJSON(ctx, path, query, &envelope); err != nil {
			if page > 1 && stderrors.Is(err, usecase.ErrNotFound) {
				break
			}
			return nil, err
		}
		out = append(out, envelope.Data...)
		if !envelope.Pagination.HasMore {
			break
		}
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) ([]byte, error) {
	if c.breaker.Enabled() {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sportmonks circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: sport data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("api_token", c.token)
	fullURL := c.baseURL + path + "?" + values.Encode()

	raw, err := c.executeRequest(ctx, fullURL)
	if c.breaker.Enabled() {
		c.breaker.Record(isSportMonksCircuitFailure(err))
	}
	if isSportMonksCircuitFailure(err) {
		return nil, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
	}
	if err != nil {
		return nil, err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}
	return raw, nil
}

// executeRequest issues one GET after taking a rate limit slot. Failures are
// returned to the caller without retrying.
func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		err = fmt.Errorf("%w: send request: %s", errSportMonksTransient, sanitizeSensitiveText(err.Error(), c.token))
		c.logger.WarnContext(ctx, "sportmonks request failed", "url", redactAPIURL(fullURL), "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errSportMonksTransient, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		err = fmt.Errorf("%w: provider status=%d", usecase.ErrNotFound, resp.StatusCode)
	case isTransientStatus(resp.StatusCode):
		err = fmt.Errorf("%w: provider status=%d body=%s", errSportMonksTransient, resp.StatusCode, abbreviateBody(raw))
	default:
		err = fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}
	c.logger.WarnContext(ctx, "sportmonks request failed",
		"status", resp.StatusCode,
		"url", redactAPIURL(fullURL),
		"error", sanitizeSensitiveText(err.Error(), c.token),
	)
	return nil, err
}

func matchesQuery(m match.HistoricalMatch, query match.TeamMatchesQuery) bool {
	switch query.Type {
	case match.TypeHome:
		if m.HomeTeam.ID != query.TeamID {
			return false
		}
	case match.TypeAway:
		if m.AwayTeam.ID != query.TeamID {
			return false
		}
	default:
		if !m.Involves(query.TeamID) {
			return false
		}
	}
	return query.LeagueID <= 0 || m.League.ID == 0 || m.League.ID == query.LeagueID
}

func sortMostRecentFirst(matches []match.HistoricalMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		if !matches[i].Date.Equal(matches[j].Date) {
			return matches[i].Date.After(matches[j].Date)
		}
		return matches[i].ID > matches[j].ID
	})
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return apiTokenParamRegex.ReplaceAllString(value, "api_token=REDACTED")
}

func isSportMonksCircuitFailure(err error) bool {
	return err != nil && stderrors.Is(err, errSportMonksTransient)
}

func isTransientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return apiTokenParamRegex.ReplaceAllString(rawURL, "api_token=REDACTED")
	}
	query := parsed.Query()
	if query.Has("api_token") {
		query.Set("api_token", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
