package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vigil/monitoring/internal/analysis"
	"vigil/monitoring/internal/auth"
	"vigil/monitoring/internal/authz"
	"vigil/monitoring/internal/blob"
	"vigil/monitoring/internal/clients"
	"vigil/monitoring/internal/config"
	"vigil/monitoring/internal/db"
	"vigil/monitoring/internal/metrics"
	"vigil/monitoring/internal/realtime"
	"vigil/monitoring/internal/sessions"
)

type Server struct {
	cfg        config.Config
	store      *db.Store
	blobs      blob.Store
	pipeline   *analysis.Pipeline
	gate       *authz.Gate
	directory  clients.Directory
	publisher  realtime.Publisher
	recompiler *sessions.Recompiler
}

func NewServer(cfg config.Config, store *db.Store, blobs blob.Store, pipeline *analysis.Pipeline, gate *authz.Gate, directory clients.Directory, publisher realtime.Publisher, recompiler *sessions.Recompiler) *Server {
	return &Server{
		cfg:        cfg,
		store:      store,
		blobs:      blobs,
		pipeline:   pipeline,
		gate:       gate,
		directory:  directory,
		publisher:  publisher,
		recompiler: recompiler,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.With(s.authMiddleware).Post("/capture/ingest", s.handleIngestCapture)
	r.With(s.authMiddleware).Post("/capture/checkout", s.handleCheckout)
	r.With(s.authMiddleware).Post("/capture/instant-request", s.handleInstantRequest)
	r.With(s.authMiddleware).Post("/capture/instant-upload", s.handleInstantUpload)
	r.With(s.authMiddleware).Get("/capture/instant-status", s.handleInstantStatus)
	r.With(s.authMiddleware).Get("/captures", s.handleListCaptures)
	r.With(s.authMiddleware).Get("/sessions", s.handleListSessions)
	r.With(s.authMiddleware).Post("/session/recompile", s.handleRecompile)

	return r
}

// Auth

type claimsKey struct{}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing_token")
			return
		}
		claims, err := auth.ParseToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFromContext(ctx context.Context) *auth.Claims {
	value := ctx.Value(claimsKey{})
	claims, _ := value.(*auth.Claims)
	return claims
}

func (s *Server) requireClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, uuid.UUID, bool) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing_token")
		return nil, uuid.Nil, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token")
		return nil, uuid.Nil, false
	}
	return claims, userID, true
}

// Models

type ingestCaptureRequest struct {
	Screenshot  string `json:"screenshot"`
	Timestamp   int64  `json:"timestamp"`
	CaptureType string `json:"captureType"`
}

type checkoutRequest struct {
	Timestamp int64 `json:"timestamp"`
}

type instantCaptureRequest struct {
	TargetUserID string `json:"targetUserId"`
	Reason       string `json:"reason"`
}

type instantUploadRequest struct {
	RequestID  string `json:"requestId"`
	Screenshot string `json:"screenshot"`
	Timestamp  int64  `json:"timestamp"`
}

type recompileRequest struct {
	UserID    string `json:"userId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type captureAnalysisResponse struct {
	Summary      string   `json:"summary"`
	Productivity string   `json:"productivity"`
	Applications []string `json:"applications"`
	ContentTypes []string `json:"contentTypes"`
}

type captureResponse struct {
	ID         string                   `json:"id"`
	UserID     string                   `json:"userId"`
	CapturedAt int64                    `json:"capturedAt"`
	Source     string                   `json:"source"`
	Status     string                   `json:"status"`
	SizeBytes  int64                    `json:"sizeBytes"`
	Analysis   *captureAnalysisResponse `json:"analysis,omitempty"`
	ErrorNote  string                   `json:"errorNote,omitempty"`
}

type sessionAnalysisResponse struct {
	IsAnalyzed bool     `json:"isAnalyzed"`
	Score      *float64 `json:"score,omitempty"`
	Summary    string   `json:"summary,omitempty"`
}

type sessionResponse struct {
	ID                 string                  `json:"id"`
	UserID             string                  `json:"userId"`
	Date               string                  `json:"date"`
	SessionNumber      int32                   `json:"sessionNumber"`
	CaptureRefs        []string                `json:"captureRefs"`
	StartTime          int64                   `json:"startTime"`
	EndTime            int64                   `json:"endTime"`
	ScreenshotCount    int32                   `json:"screenshotCount"`
	IsLastSessionOfDay bool                    `json:"isLastSessionOfDay"`
	CheckoutTriggered  bool                    `json:"checkoutTriggered"`
	Analysis           sessionAnalysisResponse `json:"analysis"`
}

type requestStatusResponse struct {
	RequestID   string           `json:"requestId"`
	Status      string           `json:"status"`
	RequestedBy string           `json:"requestedBy"`
	TargetUser  string           `json:"targetUser"`
	Reason      string           `json:"reason,omitempty"`
	CreatedAt   int64            `json:"createdAt"`
	UpdatedAt   int64            `json:"updatedAt"`
	Capture     *captureResponse `json:"capture,omitempty"`
}

// Handlers

func (s *Server) handleIngestCapture(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := s.requireClaims(w, r)
	if !ok {
		return
	}

	var req ingestCaptureRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Screenshot == "" || req.Timestamp == 0 {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}
	source, err := normalizeCaptureType(req.CaptureType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_capture_type")
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.Screenshot)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_screenshot")
		return
	}
	if int64(len(image)) > s.cfg.MaxCaptureBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large")
		return
	}

	captureID, err := s.storeCapture(r.Context(), userID, image, req.Timestamp, source)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	s.pipeline.ProcessAsync(captureID, nil)
	s.publishCaptureReceived(r.Context(), userID, captureID, req.Timestamp)
	metrics.CapturesIngested.WithLabelValues(string(source)).Inc()

	writeJSON(w, http.StatusOK, map[string]string{
		"captureId": captureID.String(),
		"status":    string(db.CaptureStatusPending),
	})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := s.requireClaims(w, r)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	checkoutAt := time.Now().UTC()
	if req.Timestamp != 0 {
		checkoutAt = time.Unix(req.Timestamp, 0).UTC()
	}

	err := s.store.Queries.UpsertCheckout(r.Context(), db.UpsertCheckoutParams{
		UserID:     pgUUID(userID),
		Day:        pgtype.Date{Time: dayOf(checkoutAt), Valid: true},
		CheckoutAt: pgTime(checkoutAt),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInstantRequest(w http.ResponseWriter, r *http.Request) {
	claims, userID, ok := s.requireClaims(w, r)
	if !ok {
		return
	}

	var req instantCaptureRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	targetID, err := uuid.Parse(req.TargetUserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_target")
		return
	}

	decision, err := s.gate.CanRequestCapture(r.Context(), authz.Actor{ID: userID, Role: claims.Role}, targetID)
	if err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if !decision.Allowed {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	requestID := uuid.New()
	now := time.Now().UTC()
	err = s.store.Queries.CreateMonitoringRequest(r.Context(), db.CreateMonitoringRequestParams{
		ID:              pgUUID(requestID),
		RequestedBy:     pgUUID(userID),
		RequestedByRole: claims.Role,
		TargetUser:      pgUUID(targetID),
		Reason:          pgText(req.Reason),
		ConsentGiven:    false,
		CreatedAt:       pgTime(now),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	_ = s.publisher.Publish(r.Context(), targetID, realtime.EventInstantCaptureRequest, map[string]any{
		"requestId":   requestID.String(),
		"requestedBy": userID.String(),
		"timestamp":   now.Unix(),
	})

	writeJSON(w, http.StatusOK, map[string]string{
		"requestId": requestID.String(),
		"status":    string(db.RequestStatusPending),
	})
}

func (s *Server) handleInstantUpload(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := s.requireClaims(w, r)
	if !ok {
		return
	}

	var req instantUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	requestUUID, err := parseUUID(req.RequestID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_id")
		return
	}
	if req.Screenshot == "" || req.Timestamp == 0 {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	request, err := s.store.Queries.GetMonitoringRequest(r.Context(), requestUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "request_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if uuidString(request.TargetUser) != userID.String() {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	if request.Status != db.RequestStatusPending {
		writeError(w, http.StatusConflict, "request_not_pending")
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Screenshot)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_screenshot")
		return
	}
	if int64(len(image)) > s.cfg.MaxCaptureBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large")
		return
	}

	captureID, err := s.storeCapture(r.Context(), userID, image, req.Timestamp, db.CaptureSourceInstant)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	updated, err := s.store.Queries.MarkRequestCaptured(r.Context(), db.MarkRequestCapturedParams{
		ID:        request.ID,
		CaptureID: pgUUID(captureID),
		UpdatedAt: nowPgTime(),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if updated == 0 {
		// A concurrent upload claimed the request between our status read
		// and the update.
		writeError(w, http.StatusConflict, "request_not_pending")
		return
	}

	s.pipeline.ProcessAsync(captureID, &analysis.RequestRef{
		ID:          uuid.UUID(request.ID.Bytes),
		RequestedBy: uuid.UUID(request.RequestedBy.Bytes),
	})
	metrics.CapturesIngested.WithLabelValues(string(db.CaptureSourceInstant)).Inc()

	writeJSON(w, http.StatusOK, map[string]string{
		"requestId": req.RequestID,
		"status":    "synced",
	})
}

func (s *Server) handleInstantStatus(w http.ResponseWriter, r *http.Request) {
	claims, userID, ok := s.requireClaims(w, r)
	if !ok {
		return
	}

	requestUUID, err := parseUUID(r.URL.Query().Get("requestId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_id")
		return
	}
	request, err := s.store.Queries.GetMonitoringRequest(r.Context(), requestUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "request_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	isParty := uuidString(request.RequestedBy) == userID.String() || uuidString(request.TargetUser) == userID.String()
	if !isParty && !isAdminRole(claims.Role) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	resp := requestStatusResponse{
		RequestID:   uuidString(request.ID),
		Status:      string(request.Status),
		RequestedBy: uuidString(request.RequestedBy),
		TargetUser:  uuidString(request.TargetUser),
		Reason:      request.Reason.String,
		CreatedAt:   request.CreatedAt.Time.Unix(),
		UpdatedAt:   request.UpdatedAt.Time.Unix(),
	}
	if request.CaptureID.Valid {
		capture, err := s.store.Queries.GetRawCapture(r.Context(), request.CaptureID)
		if err == nil {
			mapped := mapCapture(capture)
			resp.Capture = &mapped
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCaptures(w http.ResponseWriter, r *http.Request) {
	target, day, ok := s.gateViewScope(w, r)
	if !ok {
		return
	}

	captures, err := s.store.Queries.ListCapturesByUserDay(r.Context(), db.ListCapturesByUserDayParams{
		UserID: pgUUID(target),
		Day:    pgtype.Date{Time: day, Valid: true},
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	resp := make([]captureResponse, 0, len(captures))
	for _, capture := range captures {
		resp = append(resp, mapCapture(capture))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	target, day, ok := s.gateViewScope(w, r)
	if !ok {
		return
	}

	rows, err := s.store.Queries.ListSessionsByUserDay(r.Context(), db.ListSessionsByUserDayParams{
		UserID: pgUUID(target),
		Day:    pgtype.Date{Time: day, Valid: true},
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	resp := make([]sessionResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, mapSession(row))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecompile(w http.ResponseWriter, r *http.Request) {
	claims, _, ok := s.requireClaims(w, r)
	if !ok {
		return
	}
	if !isAdminRole(claims.Role) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	var req recompileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	start, err := parseDayPtr(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_start_date")
		return
	}
	end, err := parseDayPtr(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_end_date")
		return
	}
	if start != nil && end != nil && end.Before(*start) {
		writeError(w, http.StatusBadRequest, "invalid_date_range")
		return
	}

	if req.UserID != "" {
		targetID, err := uuid.Parse(req.UserID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_user_id")
			return
		}
		if _, err := s.directory.GetEmployee(r.Context(), targetID); err != nil {
			if errors.Is(err, clients.ErrNotFound) {
				writeError(w, http.StatusNotFound, "user_not_found")
				return
			}
			writeError(w, http.StatusInternalServerError, "server_error")
			return
		}
		result, err := s.recompiler.RecompileUser(r.Context(), targetID, start, end)
		if err != nil {
			metrics.RecompileRuns.WithLabelValues("error").Inc()
			writeError(w, http.StatusInternalServerError, "recompile_failed")
			return
		}
		metrics.RecompileRuns.WithLabelValues("ok").Inc()
		writeJSON(w, http.StatusOK, result)
		return
	}

	batch, err := s.recompiler.RecompileAll(r.Context(), start, end)
	if err != nil {
		metrics.RecompileRuns.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, "recompile_failed")
		return
	}
	metrics.RecompileRuns.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, batch)
}

// Capture helpers

func (s *Server) storeCapture(ctx context.Context, userID uuid.UUID, image []byte, timestamp int64, source db.CaptureSource) (uuid.UUID, error) {
	captureID := uuid.New()
	ref, err := s.blobs.Put(captureID, image)
	if err != nil {
		return uuid.Nil, err
	}
	err = s.store.Queries.CreateRawCapture(ctx, db.CreateRawCaptureParams{
		ID:         pgUUID(captureID),
		UserID:     pgUUID(userID),
		CapturedAt: pgTime(time.Unix(timestamp, 0)),
		Source:     source,
		ImageRef:   ref,
		SizeBytes:  int64(len(image)),
		CreatedAt:  nowPgTime(),
	})
	if err != nil {
		return uuid.Nil, err
	}
	return captureID, nil
}

func (s *Server) publishCaptureReceived(ctx context.Context, userID, captureID uuid.UUID, timestamp int64) {
	_ = s.publisher.Publish(ctx, userID, realtime.EventCaptureReceived, map[string]any{
		"captureId": captureID.String(),
		"timestamp": timestamp,
	})
}

// gateViewScope resolves and authorizes the (userId, date) pair shared by the
// capture and session listings.
func (s *Server) gateViewScope(w http.ResponseWriter, r *http.Request) (uuid.UUID, time.Time, bool) {
	claims, userID, ok := s.requireClaims(w, r)
	if !ok {
		return uuid.Nil, time.Time{}, false
	}
	target, err := uuid.Parse(r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_user_id")
		return uuid.Nil, time.Time{}, false
	}
	day, err := parseDay(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date")
		return uuid.Nil, time.Time{}, false
	}

	decision, err := s.gate.CanViewUser(r.Context(), authz.Actor{ID: userID, Role: claims.Role}, target)
	if err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found")
			return uuid.Nil, time.Time{}, false
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return uuid.Nil, time.Time{}, false
	}
	if !decision.Allowed {
		writeError(w, http.StatusForbidden, "forbidden")
		return uuid.Nil, time.Time{}, false
	}
	return target, day, true
}

// Mapping helpers

func mapCapture(capture db.RawCapture) captureResponse {
	resp := captureResponse{
		ID:         uuidString(capture.ID),
		UserID:     uuidString(capture.UserID),
		CapturedAt: capture.CapturedAt.Time.Unix(),
		Source:     string(capture.Source),
		Status:     string(capture.Status),
		SizeBytes:  capture.SizeBytes,
	}
	if capture.Status == db.CaptureStatusAnalyzed {
		resp.Analysis = &captureAnalysisResponse{
			Summary:      capture.Summary.String,
			Productivity: capture.Productivity.String,
			Applications: capture.Applications,
			ContentTypes: capture.ContentTypes,
		}
	}
	if capture.Status == db.CaptureStatusFailed {
		resp.ErrorNote = capture.ErrorNote.String
	}
	return resp
}

func mapSession(session db.Session) sessionResponse {
	refs := make([]string, len(session.CaptureRefs))
	for i, ref := range session.CaptureRefs {
		refs[i] = uuidString(ref)
	}
	resp := sessionResponse{
		ID:                 uuidString(session.ID),
		UserID:             uuidString(session.UserID),
		Date:               session.Day.Time.UTC().Format("2006-01-02"),
		SessionNumber:      session.SessionNumber,
		CaptureRefs:        refs,
		StartTime:          session.StartTime.Time.Unix(),
		EndTime:            session.EndTime.Time.Unix(),
		ScreenshotCount:    session.ScreenshotCount,
		IsLastSessionOfDay: session.IsLastOfDay,
		CheckoutTriggered:  session.CheckoutTriggered,
		Analysis: sessionAnalysisResponse{
			IsAnalyzed: session.IsAnalyzed,
			Summary:    session.Summary.String,
		},
	}
	if session.Score.Valid {
		score := session.Score.Float64
		resp.Analysis.Score = &score
	}
	return resp
}

// Validation helpers

func normalizeCaptureType(value string) (db.CaptureSource, error) {
	switch value {
	case "scheduled":
		return db.CaptureSourceScheduled, nil
	case "desktop-agent":
		return db.CaptureSourceDesktopAgent, nil
	default:
		return "", errInvalid
	}
}

func isAdminRole(role string) bool {
	return role == authz.RoleAdmin || role == authz.RoleSuperAdmin
}

func parseDay(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.UTC)
}

func parseDayPtr(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	day, err := parseDay(value)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Utilities

var errInvalid = errors.New("invalid value")

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func parseUUID(id string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

func uuidString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func pgTime(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

func nowPgTime() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
}

func pgText(value string) pgtype.Text {
	return pgtype.Text{String: value, Valid: value != ""}
}
