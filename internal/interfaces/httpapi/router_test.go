package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/esports-hub/internal/domain/user"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/report"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/esports-hub/internal/platform/id"
	"github.com/riskibarqy/esports-hub/internal/platform/logging"
	"github.com/riskibarqy/esports-hub/internal/usecase"
)

const (
	adminToken  = "admin-token"
	viewerToken = "viewer-token"
)

type staticVerifier map[string]user.Principal

func (v staticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := v[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return principal, nil
}

type stubIdentityProvider struct{}

func (stubIdentityProvider) SignInWithPassword(_ context.Context, email, _ string) (user.Session, error) {
	return user.Session{AccessToken: "jwt", TokenType: "bearer", ExpiresIn: 3600, User: user.Principal{UserID: "u-1", Email: email, Role: user.RoleUser}}, nil
}

func (stubIdentityProvider) SignUp(_ context.Context, email, _, _ string) (user.SignUpResult, error) {
	return user.SignUpResult{User: user.Principal{UserID: "u-2", Email: email, Role: user.RoleUser}, ConfirmationRequired: true}, nil
}

func (stubIdentityProvider) SendMagicLink(context.Context, string, string) error {
	return nil
}

func (stubIdentityProvider) AuthorizeURL(provider, redirectTo string) string {
	return "https://id.example.com/auth/v1/authorize?provider=" + provider
}

func (stubIdentityProvider) ExchangeCode(_ context.Context, authCode, _ string) (user.Session, error) {
	return user.Session{AccessToken: "jwt-" + authCode}, nil
}

type memoryStorage struct {
	objects map[string][]byte
}

func (s *memoryStorage) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.objects[key] = data
	return "https://cdn.example.com/" + key, nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *memoryStorage) KeyForURL(publicURL string) (string, bool) {
	key, ok := strings.CutPrefix(publicURL, "https://cdn.example.com/")
	return key, ok
}

type testAPI struct {
	router  http.Handler
	storage *memoryStorage
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db := memory.NewSeededDB(time.Now())
	teamRepo := memory.NewTeamRepository(db)
	playerRepo := memory.NewPlayerRepository(db)
	tournamentRepo := memory.NewTournamentRepository(db)
	matchRepo := memory.NewMatchRepository(db)
	mapRepo := memory.NewMapRepository(db)
	storage := &memoryStorage{objects: map[string][]byte{}}
	logger := logging.NewNop()

	handler := NewHandler(
		usecase.NewTeamService(teamRepo, playerRepo),
		usecase.NewPlayerService(playerRepo, teamRepo),
		usecase.NewTournamentService(tournamentRepo),
		usecase.NewMatchService(matchRepo, mapRepo, teamRepo, tournamentRepo),
		usecase.NewStatsService(matchRepo, mapRepo, memory.NewStatsRepository(db), playerRepo, report.NewStatsWorkbook(), logger),
		usecase.NewSeriesService(matchRepo, mapRepo, tournamentRepo, 2, logger),
		usecase.NewAuthService(stubIdentityProvider{}, "https://hub.example.com/auth/callback"),
		usecase.NewInquiryService(memory.NewInquiryRepository(db)),
		usecase.NewMediaService(storage, teamRepo, playerRepo, idgen.Static("logo"), 1<<20, logger),
		logger,
	)
	verifier := staticVerifier{
		adminToken:  {UserID: "admin-1", Email: "admin@example.com", Role: user.RoleAdmin},
		viewerToken: {UserID: "viewer-1", Email: "viewer@example.com", Role: user.RoleUser},
	}

	return &testAPI{
		router:  NewRouter(handler, verifier, logger, true, []string{"*"}),
		storage: storage,
	}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func errorItem(t *testing.T, body map[string]any) map[string]any {
	t.Helper()

	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", body)
	}
	items, _ := errObj["errors"].([]any)
	if len(items) == 0 {
		t.Fatalf("expected error items, got %v", errObj)
	}
	item, _ := items[0].(map[string]any)
	return item
}

func TestRouter_PublicTournaments(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/tournaments", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(t, rec)["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("expected one seeded tournament, got %v", data)
	}
	first, _ := data[0].(map[string]any)
	if first["prizePool"] != "5000.00" {
		t.Fatalf("unexpected prize pool: %v", first["prizePool"])
	}

	rec = api.do(t, http.MethodGet, "/v1/tournaments/1/matches", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	matches, _ := decodeEnvelope(t, rec)["data"].([]any)
	if len(matches) != 1 {
		t.Fatalf("expected one seeded match, got %v", matches)
	}
}

func TestRouter_AdminRequiresAdminRole(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{name: "anonymous", token: "", status: http.StatusUnauthorized},
		{name: "unknown token", token: "nope", status: http.StatusUnauthorized},
		{name: "viewer", token: viewerToken, status: http.StatusForbidden},
		{name: "admin", token: adminToken, status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodGet, "/v1/admin/teams", tt.token, nil)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_MeReturnsPrincipal(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/me", viewerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["email"] != "viewer@example.com" || data["isAdmin"] != false {
		t.Fatalf("unexpected principal: %v", data)
	}
}

func TestRouter_DeleteReferencedTeamSurfacesBackendMessage(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodDelete, fmt.Sprintf("/v1/admin/teams/%d", memory.TeamIDNightfall), adminToken, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	item := errorItem(t, decodeEnvelope(t, rec))
	if item["reason"] != "referenced" {
		t.Fatalf("unexpected reason: %v", item["reason"])
	}
	if msg, _ := item["message"].(string); !strings.Contains(msg, "violates foreign key constraint") {
		t.Fatalf("expected backend message, got %q", msg)
	}
}

func TestRouter_CreateMatchValidation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/v1/admin/matches", adminToken, map[string]any{
		"tournamentId": memory.TournamentIDWinterCup,
		"team1Id":      memory.TeamIDNightfall,
		"team2Id":      memory.TeamIDNightfall,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for identical teams, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodPost, "/v1/admin/matches", adminToken, map[string]any{
		"tournamentId": memory.TournamentIDWinterCup,
		"team1Id":      memory.TeamIDVanguard,
		"team2Id":      memory.TeamIDRedline,
		"seriesFormat": "BO5",
		"unexpected":   true,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodPost, "/v1/admin/matches", adminToken, map[string]any{
		"tournamentId": memory.TournamentIDWinterCup,
		"team1Id":      memory.TeamIDVanguard,
		"team2Id":      memory.TeamIDRedline,
		"seriesFormat": "BO5",
		"scheduledAt":  "2026-12-06",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	team1, _ := data["team1"].(map[string]any)
	if data["seriesFormat"] != "bo5" || team1["name"] != "Vanguard" {
		t.Fatalf("unexpected created match: %v", data)
	}
}

func TestRouter_StatsEditorRoundTrip(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/admin/matches/1/stats", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("open stats: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	sheet, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	maps, _ := sheet["maps"].([]any)
	if len(maps) != 3 {
		t.Fatalf("expected bo3 to open three maps, got %d", len(maps))
	}
	firstMap, _ := maps[0].(map[string]any)
	if firstMap["gameMode"] != "Hardpoint" {
		t.Fatalf("unexpected first mode: %v", firstMap["gameMode"])
	}
	mapID := int64(firstMap["id"].(float64))

	rec = api.do(t, http.MethodPut, "/v1/admin/matches/1/stats", adminToken, map[string]any{
		"expectedVersion": 1,
		"maps": []map[string]any{
			{"mapId": mapID, "team1Score": 250, "team2Score": 180, "winnerTeamId": memory.TeamIDNightfall},
		},
		"stats": []map[string]any{
			{"mapId": mapID, "playerId": 1, "kills": 21, "deaths": 12, "mvp": true},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save stats: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	saved, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	matchObj, _ := saved["match"].(map[string]any)
	if matchObj["team1Wins"] != float64(1) || matchObj["status"] != "live" || matchObj["version"] != float64(2) {
		t.Fatalf("unexpected series projection: %v", matchObj)
	}

	rec = api.do(t, http.MethodPut, "/v1/admin/matches/1/stats", adminToken, map[string]any{
		"expectedVersion": 1,
		"stats":           []map[string]any{{"mapId": mapID, "playerId": 2, "kills": 3}},
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("stale save: expected 409, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodPut, "/v1/admin/matches/1/stats", adminToken, map[string]any{
		"stats": []map[string]any{{"mapId": mapID, "playerId": 11, "kills": 3}},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("outsider stat: expected 400, got %d", rec.Code)
	}
}

func TestRouter_ExportStatsWorkbook(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/admin/matches/1/stats/export", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != xlsxContentType {
		t.Fatalf("unexpected content type: %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, `match-1-stats.xlsx`) {
		t.Fatalf("unexpected content disposition: %q", got)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Fatalf("expected a zip container")
	}

	rec = api.do(t, http.MethodGet, "/v1/admin/matches/99/stats/export", adminToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown match, got %d", rec.Code)
	}
}

func TestRouter_UploadTeamLogo(t *testing.T) {
	api := newTestAPI(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="logo.png"`)
	header.Set("Content-Type", "image/png")
	part, err := form.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	_, _ = part.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	_ = form.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/teams/2/logo", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["logoUrl"] != "https://cdn.example.com/teams/2/logo.png" {
		t.Fatalf("unexpected logo url: %v", data["logoUrl"])
	}
	if _, ok := api.storage.objects["teams/2/logo.png"]; !ok {
		t.Fatalf("expected object to be stored, got %v", api.storage.objects)
	}
}

func TestRouter_InquiriesAndAuth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/v1/contact", "", map[string]any{
		"name": "Rin", "email": "rin@example.com", "message": "Need a caster for finals",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("contact: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodPost, "/v1/careers/openings/janitor/applications", "", map[string]any{
		"name": "Rin", "email": "rin@example.com",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown opening: expected 404, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/v1/admin/inquiries/contact", adminToken, nil)
	messages, _ := decodeEnvelope(t, rec)["data"].([]any)
	if len(messages) != 1 {
		t.Fatalf("expected one contact message, got %v", messages)
	}

	rec = api.do(t, http.MethodPost, "/v1/auth/sign-in", "", map[string]any{"email": "not-an-email", "password": "x"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("sign in: expected 400, got %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/v1/auth/oauth/discord", "", nil)
	data, _ := decodeEnvelope(t, rec)["data"].(map[string]any)
	if url, _ := data["url"].(string); !strings.Contains(url, "provider=discord") {
		t.Fatalf("unexpected oauth url: %v", data)
	}
}
