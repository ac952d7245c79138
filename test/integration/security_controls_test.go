package integration

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

// ==========================================================================
// Authentication Tests
// ==========================================================================

func TestSecurity_NoAuthHeader_Returns401(t *testing.T) {
	h := NewTestHarness(t)

	endpoints := []string{
		"/api/v1/navigation",
		"/api/v1/cycles",
		"/api/v1/objectives",
		"/api/v1/key-results",
		"/api/v1/admin/areas",
	}

	for _, ep := range endpoints {
		t.Run(ep, func(t *testing.T) {
			resp := h.GET(ep, "")
			h.AssertStatus(t, resp, http.StatusUnauthorized)
		})
	}
}

func TestSecurity_HealthEndpointsArePublic(t *testing.T) {
	h := NewTestHarness(t)

	for _, ep := range []string{"/healthz", "/readyz"} {
		t.Run(ep, func(t *testing.T) {
			resp := h.GET(ep, "")
			h.AssertStatus(t, resp, http.StatusOK)
		})
	}
}

func TestSecurity_ExpiredJWT_Returns401(t *testing.T) {
	h := NewTestHarness(t)
	token := h.GenerateExpiredToken(EditorClaims())

	resp := h.GET("/api/v1/navigation", token)
	h.AssertStatus(t, resp, http.StatusUnauthorized)
}

func TestSecurity_InvalidSignature_Returns401(t *testing.T) {
	h := NewTestHarness(t)

	// Generate a token signed with a different RSA key (not in JWKS).
	differentKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	claims := jwt.MapClaims{
		"iss":       "https://auth.test.compass.dev",
		"aud":       "compass-api-test",
		"sub":       "user-1",
		"tenant_id": "acme-corp",
		"email":     "user@acme.com",
		"roles":     []any{"okr-editor"},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKeyID
	signed, err := token.SignedString(differentKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	resp := h.GET("/api/v1/navigation", signed)
	h.AssertStatus(t, resp, http.StatusUnauthorized)
}

func TestSecurity_NoneAlgorithm_Returns401(t *testing.T) {
	h := NewTestHarness(t)

	// Craft a "none" algorithm token manually.
	// Header: {"alg":"none","typ":"JWT"}
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"admin","tenant_id":"acme-corp","iss":"https://auth.test.compass.dev","aud":"compass-api-test","roles":["okr-admin"]}`))
	noneToken := header + "." + payload + "."

	resp := h.GET("/api/v1/navigation", noneToken)
	h.AssertStatus(t, resp, http.StatusUnauthorized)
}

func TestSecurity_ValidJWT_Returns200(t *testing.T) {
	h := NewTestHarness(t)
	token := h.GenerateToken(EditorClaims())

	resp := h.GET("/api/v1/navigation", token)
	h.AssertStatus(t, resp, http.StatusOK)
}

func TestSecurity_MalformedToken_Returns401(t *testing.T) {
	h := NewTestHarness(t)

	resp := h.GET("/api/v1/navigation", "not.a.valid.jwt.token")
	h.AssertStatus(t, resp, http.StatusUnauthorized)
}

func TestSecurity_MissingTenantClaim_Returns401(t *testing.T) {
	h := NewTestHarness(t)
	token := h.GenerateToken(TestClaims{
		SubjectID: "user-no-tenant",
		Email:     "nobody@example.com",
		Roles:     []string{"okr-editor"},
	})

	resp := h.GET("/api/v1/cycles", token)
	h.AssertStatus(t, resp, http.StatusUnauthorized)
}

// ==========================================================================
// Authorization Tests
// ==========================================================================

func TestSecurity_AdminRoutes_RequireAdminRole(t *testing.T) {
	h := NewTestHarness(t)

	editor := h.GenerateToken(EditorClaims())
	resp := h.GET("/api/v1/admin/areas", editor)
	h.AssertStatus(t, resp, http.StatusForbidden)

	admin := h.GenerateToken(AdminClaims())
	resp = h.GET("/api/v1/admin/areas", admin)
	h.AssertStatus(t, resp, http.StatusOK)
}

// ==========================================================================
// Cross-Tenant Isolation Tests
// ==========================================================================

func TestSecurity_TenantIsolation_EntityAccessDenied(t *testing.T) {
	h := NewTestHarness(t)

	tenantA := h.GenerateToken(TestClaims{
		SubjectID: "user-a",
		TenantID:  "tenant-alpha",
		Email:     "a@alpha.com",
		Roles:     []string{"okr-editor"},
	})
	tenantB := h.GenerateToken(TestClaims{
		SubjectID: "user-b",
		TenantID:  "tenant-beta",
		Email:     "b@beta.com",
		Roles:     []string{"okr-editor"},
	})

	var cycle struct {
		ID string `json:"id"`
	}
	resp := h.POST("/api/v1/cycles", map[string]any{
		"name":       "Alpha Q4",
		"start_date": "2026-10-01T00:00:00Z",
		"end_date":   "2026-12-31T00:00:00Z",
	}, tenantA)
	h.AssertJSON(t, resp, http.StatusCreated, &cycle)

	// Tenant B cannot see tenant A's cycle.
	resp = h.GET("/api/v1/cycles/"+cycle.ID, tenantB)
	h.AssertStatus(t, resp, http.StatusNotFound)

	// Nor delete it.
	resp = h.DELETE("/api/v1/cycles/"+cycle.ID, tenantB)
	h.AssertStatus(t, resp, http.StatusNotFound)

	// Tenant A still sees it.
	resp = h.GET("/api/v1/cycles/"+cycle.ID, tenantA)
	h.AssertStatus(t, resp, http.StatusOK)
}

func TestSecurity_TenantIsolation_ListsAreScoped(t *testing.T) {
	h := NewTestHarness(t)

	tenantA := h.GenerateToken(TestClaims{
		SubjectID: "user-a", TenantID: "tenant-alpha",
		Email: "a@alpha.com", Roles: []string{"okr-editor"},
	})
	tenantB := h.GenerateToken(TestClaims{
		SubjectID: "user-b", TenantID: "tenant-beta",
		Email: "b@beta.com", Roles: []string{"okr-editor"},
	})

	resp := h.POST("/api/v1/cycles", map[string]any{
		"name":       "Alpha Q4",
		"start_date": "2026-10-01T00:00:00Z",
		"end_date":   "2026-12-31T00:00:00Z",
	}, tenantA)
	h.AssertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	var list struct {
		Count int `json:"count"`
	}
	resp = h.GET("/api/v1/cycles", tenantB)
	h.AssertJSON(t, resp, http.StatusOK, &list)
	if list.Count != 0 {
		t.Errorf("tenant B sees %d cycles, want 0", list.Count)
	}
}

// ==========================================================================
// Response Header Tests
// ==========================================================================

func TestSecurity_ResponseHeaders(t *testing.T) {
	h := NewTestHarness(t)
	token := h.GenerateToken(EditorClaims())

	resp := h.GET("/api/v1/navigation", token)
	defer resp.Body.Close()

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	} {
		if got := resp.Header.Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if resp.Header.Get("X-Correlation-Id") == "" {
		t.Error("missing X-Correlation-Id header")
	}
}
