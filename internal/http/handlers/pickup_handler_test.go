// README: Integration tests for pickup handler auth and validation checks.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ayishathul-rinsha/Binnit/internal/http/handlers"
	httpmiddleware "github.com/ayishathul-rinsha/Binnit/internal/http/middleware"
	"github.com/ayishathul-rinsha/Binnit/internal/infra"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/identity"
	"github.com/ayishathul-rinsha/Binnit/internal/modules/pickup"
	"github.com/ayishathul-rinsha/Binnit/internal/types"
)

// stubTokenVerifier is a test double for infra.TokenVerifier.
type stubTokenVerifier struct {
	token *infra.Token
	err   error
}

func (s *stubTokenVerifier) VerifyIDToken(_ context.Context, _ string) (*infra.Token, error) {
	return s.token, s.err
}

type fixedRoles struct {
	role identity.Role
}

func (f *fixedRoles) Role(context.Context, types.ID) (identity.Role, error) {
	return f.role, nil
}

// buildTestRouter wires a minimal Gin engine with the auth middleware and the
// pickup handler. pickup.NewService(nil, nil, nil, nil) is safe here because
// all auth and body validation happens before any store method is called.
func buildTestRouter(verifier infra.TokenVerifier, role identity.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := pickup.NewService(nil, nil, nil, nil)
	r := gin.New()
	r.Use(httpmiddleware.Auth(verifier, &fixedRoles{role: role}))
	h := handlers.NewPickupHandler(svc)
	r.POST("/api/pickups/schedule", h.Schedule)
	r.POST("/api/pickups/:id/rate", h.Rate)
	r.PUT("/api/pickups/:id/cancel", h.Cancel)
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}, authHeader string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSchedule_NoToken(t *testing.T) {
	r := buildTestRouter(&stubTokenVerifier{token: &infra.Token{UID: "user1"}}, identity.RoleUser)
	w := doRequest(r, http.MethodPost, "/api/pickups/schedule", map[string]any{"address": "x"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestSchedule_InvalidBody(t *testing.T) {
	r := buildTestRouter(&stubTokenVerifier{token: &infra.Token{UID: "user1"}}, identity.RoleUser)
	req := httptest.NewRequest(http.MethodPost, "/api/pickups/schedule", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer t")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	success, ok := body["success"].(bool)
	if !ok {
		t.Fatalf("response %s has no success flag", w.Body.String())
	}
	if success {
		t.Errorf("error response reported success=true")
	}
	if body["error"] == "" {
		t.Errorf("error response missing message: %s", w.Body.String())
	}
}

func TestRate_OutOfRangeBeforeStore(t *testing.T) {
	r := buildTestRouter(&stubTokenVerifier{token: &infra.Token{UID: "user1"}}, identity.RoleUser)
	w := doRequest(r, http.MethodPost, "/api/pickups/p1/rate", map[string]any{"rating": 9}, "Bearer t")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCancel_MissingID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := pickup.NewService(nil, nil, nil, nil)
	r := gin.New()
	r.Use(httpmiddleware.Auth(&stubTokenVerifier{token: &infra.Token{UID: "user1"}}, &fixedRoles{role: identity.RoleUser}))
	h := handlers.NewPickupHandler(svc)
	// route with an empty-able param to exercise the guard directly
	r.PUT("/api/pickups/cancel", func(c *gin.Context) { h.Cancel(c) })

	w := doRequest(r, http.MethodPut, "/api/pickups/cancel", nil, "Bearer t")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
