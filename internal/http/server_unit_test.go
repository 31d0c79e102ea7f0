package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"vigil/monitoring/internal/auth"
	"vigil/monitoring/internal/clients"
	"vigil/monitoring/internal/config"
	"vigil/monitoring/internal/db"
)

func TestNormalizeCaptureType(t *testing.T) {
	cases := map[string]db.CaptureSource{
		"scheduled":     db.CaptureSourceScheduled,
		"desktop-agent": db.CaptureSourceDesktopAgent,
	}
	for input, expect := range cases {
		source, err := normalizeCaptureType(input)
		if err != nil {
			t.Fatalf("expected capture type %s to be valid", input)
		}
		if source != expect {
			t.Fatalf("expected %s, got %s", expect, source)
		}
	}
	if _, err := normalizeCaptureType("instant"); err == nil {
		t.Fatalf("expected instant to be rejected on the ingest path")
	}
	if _, err := normalizeCaptureType(""); err == nil {
		t.Fatalf("expected empty capture type to error")
	}
}

func TestBearerToken(t *testing.T) {
	if got := bearerToken("Bearer abc.def.ghi"); got != "abc.def.ghi" {
		t.Fatalf("expected token, got %q", got)
	}
	if got := bearerToken("bearer abc"); got != "abc" {
		t.Fatalf("expected case-insensitive scheme, got %q", got)
	}
	for _, header := range []string{"", "Basic abc", "Bearer"} {
		if got := bearerToken(header); got != "" {
			t.Fatalf("expected empty token for %q, got %q", header, got)
		}
	}
}

func TestParseDay(t *testing.T) {
	day, err := parseDay("2026-03-14")
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	if day.Year() != 2026 || day.Month() != time.March || day.Day() != 14 {
		t.Fatalf("unexpected day %v", day)
	}
	if day.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", day.Location())
	}
	if _, err := parseDay("14/03/2026"); err == nil {
		t.Fatalf("expected format error")
	}
	ptr, err := parseDayPtr("")
	if err != nil || ptr != nil {
		t.Fatalf("expected nil for empty date, got %v %v", ptr, err)
	}
}

func TestIsAdminRole(t *testing.T) {
	for _, role := range []string{"admin", "super-admin"} {
		if !isAdminRole(role) {
			t.Fatalf("expected %s to be admin", role)
		}
	}
	for _, role := range []string{"employee", "team-lead", "manager", "hr", ""} {
		if isAdminRole(role) {
			t.Fatalf("expected %s to not be admin", role)
		}
	}
}

func TestMapCaptureAnalysisVisibility(t *testing.T) {
	base := db.RawCapture{
		ID:         pgUUID(uuid.New()),
		UserID:     pgUUID(uuid.New()),
		CapturedAt: pgTime(time.Now()),
		Source:     db.CaptureSourceScheduled,
		Summary:    pgText("writing a report"),
		ErrorNote:  pgText("vision timeout"),
	}

	pending := base
	pending.Status = db.CaptureStatusPending
	if resp := mapCapture(pending); resp.Analysis != nil || resp.ErrorNote != "" {
		t.Fatalf("pending capture must expose neither analysis nor error")
	}

	analyzed := base
	analyzed.Status = db.CaptureStatusAnalyzed
	resp := mapCapture(analyzed)
	if resp.Analysis == nil || resp.Analysis.Summary != "writing a report" {
		t.Fatalf("analyzed capture must expose analysis")
	}
	if resp.ErrorNote != "" {
		t.Fatalf("analyzed capture must not expose error note")
	}

	failed := base
	failed.Status = db.CaptureStatusFailed
	resp = mapCapture(failed)
	if resp.Analysis != nil {
		t.Fatalf("failed capture must not expose analysis")
	}
	if resp.ErrorNote != "vision timeout" {
		t.Fatalf("failed capture must expose error note, got %q", resp.ErrorNote)
	}
}

func TestAuthMiddleware(t *testing.T) {
	cfg := config.Config{JWTSecret: "unit-secret", JWTIssuer: "vigil-identity"}
	server := &Server{cfg: cfg}

	var seen *auth.Claims
	handler := server.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = claimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/captures", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	userID := uuid.New()
	token, err := auth.NewAccessToken(cfg.JWTSecret, cfg.JWTIssuer, time.Minute, auth.Claims{
		UserID: userID.String(),
		Role:   "manager",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/captures", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}
	if seen == nil || seen.UserID != userID.String() || seen.Role != "manager" {
		t.Fatalf("claims not propagated: %+v", seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/captures", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}
}

type stubDirectory struct {
	employees map[uuid.UUID]clients.Employee
}

func (s *stubDirectory) GetEmployee(_ context.Context, id uuid.UUID) (clients.Employee, error) {
	employee, ok := s.employees[id]
	if !ok {
		return clients.Employee{}, clients.ErrNotFound
	}
	return employee, nil
}

func (s *stubDirectory) DepartmentHeads(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func TestRecompileUnknownUser(t *testing.T) {
	server := &Server{
		directory: &stubDirectory{employees: map[uuid.UUID]clients.Employee{}},
	}
	claims := &auth.Claims{UserID: uuid.NewString(), Role: "admin"}

	body := strings.NewReader(fmt.Sprintf(`{"userId":%q}`, uuid.NewString()))
	req := httptest.NewRequest(http.MethodPost, "/session/recompile", body)
	req = req.WithContext(context.WithValue(req.Context(), claimsKey{}, claims))
	rec := httptest.NewRecorder()
	server.handleRecompile(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error != "user_not_found" {
		t.Fatalf("expected user_not_found, got %q", resp.Error)
	}

	// Non-admin callers never reach the lookup.
	claims.Role = "manager"
	req = httptest.NewRequest(http.MethodPost, "/session/recompile", strings.NewReader(`{}`))
	req = req.WithContext(context.WithValue(req.Context(), claimsKey{}, claims))
	rec = httptest.NewRecorder()
	server.handleRecompile(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
}

func TestClaimsFromContextMissing(t *testing.T) {
	if claims := claimsFromContext(context.Background()); claims != nil {
		t.Fatalf("expected nil claims, got %+v", claims)
	}
}
