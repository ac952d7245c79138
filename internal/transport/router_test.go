package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/oselo/compass/internal/config"
	"github.com/oselo/compass/internal/dashboard"
	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/internal/tracker"
)

// fakeAuth injects verified claims without a real token, standing in for
// the JWT middleware in router tests.
func fakeAuth(claims map[string]any) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func editorClaims() map[string]any {
	return map[string]any{
		"sub":       "user-1",
		"tenant_id": "tenant-1",
		"email":     "user@example.com",
		"roles":     []any{"okr-editor"},
	}
}

func adminClaims() map[string]any {
	c := editorClaims()
	c["roles"] = []any{"okr-editor", "okr-admin"}
	return c
}

func newTestRouter(t *testing.T, claims map[string]any) http.Handler {
	t.Helper()
	cfg := config.Defaults()
	mem := store.NewMemory()
	svcs := tracker.NewServices(mem, zap.NewNop())
	return NewRouter(Dependencies{
		Config:       cfg,
		Logger:       zap.NewNop(),
		Services:     svcs,
		Dashboard:    dashboard.NewProvider(mem, cfg.Dashboard),
		Authenticate: fakeAuth(claims),
	})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createdID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode created body: %v", err)
	}
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("created entity has no id: %v", body)
	}
	return id
}

func TestRouter_healthEndpointsArePublic(t *testing.T) {
	// No claims: auth middleware would normally reject, but health bypasses it.
	h := newTestRouter(t, nil)

	for _, path := range []string{"/healthz", "/metrics"} {
		rec := doJSON(t, h, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestRouter_missingTenantClaimRejected(t *testing.T) {
	claims := editorClaims()
	delete(claims, "tenant_id")
	h := newTestRouter(t, claims)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/cycles", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRouter_cycleLifecycleFlow(t *testing.T) {
	h := newTestRouter(t, editorClaims())

	rec := doJSON(t, h, http.MethodPost, "/api/v1/cycles", map[string]any{
		"name":       "2026 Q4",
		"start_date": "2026-10-01T00:00:00Z",
		"end_date":   "2026-12-31T00:00:00Z",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create cycle = %d; body = %s", rec.Code, rec.Body.String())
	}
	cycleID := createdID(t, rec)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/cycles/"+cycleID+"/activate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("activate = %d; body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/cycles/"+cycleID+"/complete", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete = %d", rec.Code)
	}

	// Reactivating a completed cycle is an invalid transition.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/cycles/"+cycleID+"/activate", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("reactivate completed = %d, want 422; body = %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_checkInFlow(t *testing.T) {
	h := newTestRouter(t, editorClaims())

	rec := doJSON(t, h, http.MethodPost, "/api/v1/cycles", map[string]any{
		"name":       "2026 Q4",
		"start_date": "2026-10-01T00:00:00Z",
		"end_date":   "2026-12-31T00:00:00Z",
	})
	cycleID := createdID(t, rec)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/objectives", map[string]any{
		"cycle_id": cycleID,
		"title":    "Improve onboarding conversion",
		"type":     "tactical",
		"status":   "on_track",
		"priority": "high",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create objective = %d; body = %s", rec.Code, rec.Body.String())
	}
	objectiveID := createdID(t, rec)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/key-results", map[string]any{
		"objective_id":   objectiveID,
		"title":          "Raise activation rate",
		"baseline_value": "20",
		"target_value":   "40",
		"scoring_method": "percentage",
		"status":         "on_track",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create key result = %d; body = %s", rec.Code, rec.Body.String())
	}
	krID := createdID(t, rec)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/key-results/"+krID+"/check-ins", map[string]any{
		"value":   "30",
		"comment": "mid-quarter update",
		"evidence": []map[string]string{
			{"name": "Funnel report", "url": "https://metrics.example.com/funnel"},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("check-in = %d; body = %s", rec.Code, rec.Body.String())
	}
	var ci map[string]any
	json.NewDecoder(rec.Body).Decode(&ci)
	if ci["previous_value"] != "20" {
		t.Errorf("previous_value = %v, want 20", ci["previous_value"])
	}

	// The check-in's evidence is attached to the key result.
	rec = doJSON(t, h, http.MethodGet,
		fmt.Sprintf("/api/v1/evidence?entity_type=key_result&entity_id=%s", krID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list evidence = %d", rec.Code)
	}
	var list struct {
		Count int `json:"count"`
	}
	json.NewDecoder(rec.Body).Decode(&list)
	if list.Count != 1 {
		t.Errorf("evidence count = %d, want 1", list.Count)
	}
}

func TestRouter_validationErrorEnvelope(t *testing.T) {
	h := newTestRouter(t, editorClaims())

	rec := doJSON(t, h, http.MethodPost, "/api/v1/cycles", map[string]any{
		"name": "",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body = %s", rec.Code, rec.Body.String())
	}
	got := decodeErrorBody(t, rec)
	if len(got.Details) == 0 {
		t.Error("expected field-level details")
	}
}

func TestRouter_unknownFieldRejected(t *testing.T) {
	h := newTestRouter(t, editorClaims())

	rec := doJSON(t, h, http.MethodPost, "/api/v1/cycles", map[string]any{
		"name":       "Q4",
		"start_date": "2026-10-01T00:00:00Z",
		"end_date":   "2026-12-31T00:00:00Z",
		"bogus":      true,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRouter_notFoundEnvelope(t *testing.T) {
	h := newTestRouter(t, editorClaims())

	rec := doJSON(t, h, http.MethodGet, "/api/v1/objectives/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRouter_adminRoutesRequireRole(t *testing.T) {
	editor := newTestRouter(t, editorClaims())
	admin := newTestRouter(t, adminClaims())

	rec := doJSON(t, editor, http.MethodGet, "/api/v1/admin/areas", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("editor on admin route = %d, want 403", rec.Code)
	}

	rec = doJSON(t, admin, http.MethodPost, "/api/v1/admin/areas", map[string]any{
		"name": "Growth",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin create area = %d; body = %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_navigationReflectsRoles(t *testing.T) {
	countItems := func(h http.Handler) (int, bool) {
		rec := doJSON(t, h, http.MethodGet, "/api/v1/navigation", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("navigation = %d", rec.Code)
		}
		var resp struct {
			Items []NavItem `json:"items"`
		}
		json.NewDecoder(rec.Body).Decode(&resp)
		hasAdmin := false
		for _, item := range resp.Items {
			if item.ID == "admin" {
				hasAdmin = true
			}
		}
		return len(resp.Items), hasAdmin
	}

	_, editorHasAdmin := countItems(newTestRouter(t, editorClaims()))
	if editorHasAdmin {
		t.Error("editor navigation should not include admin section")
	}
	_, adminHasAdmin := countItems(newTestRouter(t, adminClaims()))
	if !adminHasAdmin {
		t.Error("admin navigation should include admin section")
	}
}

func TestRouter_dashboardEmptyCycle(t *testing.T) {
	h := newTestRouter(t, editorClaims())

	rec := doJSON(t, h, http.MethodPost, "/api/v1/cycles", map[string]any{
		"name":       "2026 Q4",
		"start_date": "2026-10-01T00:00:00Z",
		"end_date":   "2026-12-31T00:00:00Z",
	})
	cycleID := createdID(t, rec)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/dashboard/"+cycleID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard = %d; body = %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_resolveRef(t *testing.T) {
	h := newTestRouter(t, editorClaims())

	rec := doJSON(t, h, http.MethodPost, "/api/v1/cycles", map[string]any{
		"name":       "2026 Q4",
		"start_date": "2026-10-01T00:00:00Z",
		"end_date":   "2026-12-31T00:00:00Z",
	})
	cycleID := createdID(t, rec)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/objectives", map[string]any{
		"cycle_id": cycleID,
		"title":    "Reduce churn",
		"type":     "strategic",
		"status":   "on_track",
		"priority": "medium",
	})
	objectiveID := createdID(t, rec)

	rec = doJSON(t, h, http.MethodGet,
		fmt.Sprintf("/api/v1/resolve?entity_type=objective&entity_id=%s", objectiveID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("resolve = %d", rec.Code)
	}
	var resolved map[string]any
	json.NewDecoder(rec.Body).Decode(&resolved)
	if resolved["label"] != "Reduce churn" {
		t.Errorf("label = %v, want Reduce churn", resolved["label"])
	}

	// Missing params are a bad request.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/resolve", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("resolve without params = %d, want 400", rec.Code)
	}
}

func TestRouter_listPagination(t *testing.T) {
	h := newTestRouter(t, editorClaims())

	rec := doJSON(t, h, http.MethodPost, "/api/v1/cycles", map[string]any{
		"name":       "2026 Q4",
		"start_date": "2026-10-01T00:00:00Z",
		"end_date":   "2026-12-31T00:00:00Z",
	})
	cycleID := createdID(t, rec)

	for i := 0; i < 5; i++ {
		doJSON(t, h, http.MethodPost, "/api/v1/objectives", map[string]any{
			"cycle_id": cycleID,
			"title":    fmt.Sprintf("Objective %d", i),
			"type":     "tactical",
			"status":   "not_started",
			"priority": "medium",
		})
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/objectives?page_size=2&page=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list = %d", rec.Code)
	}
	var list struct {
		Count int `json:"count"`
	}
	json.NewDecoder(rec.Body).Decode(&list)
	if list.Count != 2 {
		t.Errorf("count = %d, want 2", list.Count)
	}
}
