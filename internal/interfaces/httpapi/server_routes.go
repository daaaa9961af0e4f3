package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/matches", handler.ListTournamentMatches)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListTeamRoster)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/careers/openings", handler.ListOpenings)
	mux.HandleFunc("POST /v1/careers/openings/{slug}/applications", handler.Apply)
	mux.HandleFunc("POST /v1/contact", handler.SubmitContact)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("POST /v1/auth/sign-in", handler.SignIn)
	mux.HandleFunc("POST /v1/auth/sign-up", handler.SignUp)
	mux.HandleFunc("POST /v1/auth/magic-link", handler.SendMagicLink)
	mux.HandleFunc("GET /v1/auth/oauth/{provider}", handler.OAuthURL)
	mux.HandleFunc("POST /v1/auth/callback", handler.ExchangeCode)
	mux.Handle("GET /v1/me", RequireAuth(verifier, http.HandlerFunc(handler.Me)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAdminTeamRoutes(mux, handler, verifier)
	registerAdminTournamentRoutes(mux, handler, verifier)
	registerAdminMatchRoutes(mux, handler, verifier)
	registerAdminInquiryRoutes(mux, handler, verifier)
}

func registerAdminTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/admin/teams", RequireAdmin(verifier, http.HandlerFunc(handler.ListTeams)))
	mux.Handle("POST /v1/admin/teams", RequireAdmin(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("GET /v1/admin/teams/{teamID}", RequireAdmin(verifier, http.HandlerFunc(handler.GetTeam)))
	mux.Handle("PUT /v1/admin/teams/{teamID}", RequireAdmin(verifier, http.HandlerFunc(handler.UpdateTeam)))
	mux.Handle("DELETE /v1/admin/teams/{teamID}", RequireAdmin(verifier, http.HandlerFunc(handler.DeleteTeam)))
	mux.Handle("POST /v1/admin/teams/{teamID}/logo", RequireAdmin(verifier, http.HandlerFunc(handler.UploadTeamLogo)))

	mux.Handle("GET /v1/admin/players", RequireAdmin(verifier, http.HandlerFunc(handler.ListPlayers)))
	mux.Handle("POST /v1/admin/players", RequireAdmin(verifier, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("GET /v1/admin/players/{playerID}", RequireAdmin(verifier, http.HandlerFunc(handler.GetPlayer)))
	mux.Handle("PUT /v1/admin/players/{playerID}", RequireAdmin(verifier, http.HandlerFunc(handler.UpdatePlayer)))
	mux.Handle("DELETE /v1/admin/players/{playerID}", RequireAdmin(verifier, http.HandlerFunc(handler.DeletePlayer)))
	mux.Handle("POST /v1/admin/players/{playerID}/avatar", RequireAdmin(verifier, http.HandlerFunc(handler.UploadPlayerAvatar)))
}

func registerAdminTournamentRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/admin/tournaments", RequireAdmin(verifier, http.HandlerFunc(handler.ListTournaments)))
	mux.Handle("POST /v1/admin/tournaments", RequireAdmin(verifier, http.HandlerFunc(handler.CreateTournament)))
	mux.Handle("GET /v1/admin/tournaments/{tournamentID}", RequireAdmin(verifier, http.HandlerFunc(handler.GetTournament)))
	mux.Handle("PUT /v1/admin/tournaments/{tournamentID}", RequireAdmin(verifier, http.HandlerFunc(handler.UpdateTournament)))
	mux.Handle("DELETE /v1/admin/tournaments/{tournamentID}", RequireAdmin(verifier, http.HandlerFunc(handler.DeleteTournament)))
	// Recomputes stored series scores from map results.
	mux.Handle("POST /v1/admin/tournaments/{tournamentID}/series/rebuild", RequireAdmin(verifier, http.HandlerFunc(handler.RebuildSeries)))
}

func registerAdminMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/admin/matches", RequireAdmin(verifier, http.HandlerFunc(handler.ListMatches)))
	mux.Handle("POST /v1/admin/matches", RequireAdmin(verifier, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("GET /v1/admin/matches/{matchID}", RequireAdmin(verifier, http.HandlerFunc(handler.GetMatch)))
	mux.Handle("PUT /v1/admin/matches/{matchID}", RequireAdmin(verifier, http.HandlerFunc(handler.UpdateMatch)))
	mux.Handle("DELETE /v1/admin/matches/{matchID}", RequireAdmin(verifier, http.HandlerFunc(handler.DeleteMatch)))
	mux.Handle("GET /v1/admin/matches/{matchID}/stats", RequireAdmin(verifier, http.HandlerFunc(handler.OpenStats)))
	mux.Handle("PUT /v1/admin/matches/{matchID}/stats", RequireAdmin(verifier, http.HandlerFunc(handler.SaveStats)))
	mux.Handle("GET /v1/admin/matches/{matchID}/stats/export", RequireAdmin(verifier, http.HandlerFunc(handler.ExportStats)))
}

func registerAdminInquiryRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/admin/inquiries/contact", RequireAdmin(verifier, http.HandlerFunc(handler.ListContactMessages)))
	mux.Handle("GET /v1/admin/inquiries/applications", RequireAdmin(verifier, http.HandlerFunc(handler.ListApplications)))
}
