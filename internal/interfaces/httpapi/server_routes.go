package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET "+openAPIPath, handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerAnalysisRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/analysis/{homeTeamID}/{awayTeamID}", handler.GetMatchAnalysis)
	mux.HandleFunc("POST /v1/analysis", handler.CreateMatchAnalysis)
	mux.HandleFunc("POST /v1/analysis/batch", handler.CreateBatchAnalysis)
}

func registerHistoryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams/{teamID}/matches", handler.ListTeamMatches)
	mux.HandleFunc("GET /v1/head-to-head/{teamA}/{teamB}", handler.ListHeadToHead)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListLeagueStandings)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalToken string) {
	mux.Handle("POST /internal/cache/clear", RequireInternalToken(internalToken, http.HandlerFunc(handler.ClearCache)))
}
