package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campaign-server/internal/authz"
	"campaign-server/internal/observability"
	"campaign-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedResolver struct {
	actor authz.Actor
}

func (r fixedResolver) Resolve(_ context.Context, p authz.Principal) authz.Actor {
	a := r.actor
	a.ID = p.ID
	return a
}

func (r fixedResolver) ResolveCompanyID(_ context.Context, _ uuid.UUID) *uuid.UUID {
	return r.actor.CompanyID
}

func (r fixedResolver) IsCompanyAdmin(_ context.Context, _ uuid.UUID) bool {
	return r.actor.IsCompanyAdmin()
}

var (
	company    = uuid.New()
	superAdmin = authz.Actor{ID: uuid.New(), Email: "ops@boostdata.io", Role: store.UserRoleUser, SuperAdmin: true, ProfileFound: true}
	member     = authz.Actor{ID: uuid.New(), Email: "ann@acme.com", Role: store.UserRoleUser, CompanyID: &company, ProfileFound: true}
)

func newRouter(caller *authz.Actor, resolved authz.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := observability.NewNopLogger()
	h := New(authz.NewEngine(logger, nil), fixedResolver{actor: resolved}, logger)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if caller != nil {
			c.Request = c.Request.WithContext(authz.WithActor(c.Request.Context(), *caller))
		}
		c.Next()
	})
	r.GET("/debug/whoami", h.HandleWhoAmI)
	r.POST("/debug/explain", h.HandleExplain)
	return r
}

func explain(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/debug/explain", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleWhoAmI(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(&member, authz.Actor{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/whoami", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got authz.Actor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, member.ID, got.ID)
	assert.Equal(t, store.UserRoleUser, got.Role)
	require.NotNil(t, got.CompanyID)
	assert.Equal(t, company, *got.CompanyID)
}

func TestHandleWhoAmI_StoredProfile(t *testing.T) {
	promoted := member
	promoted.Role = store.UserRoleAdmin

	w := httptest.NewRecorder()
	newRouter(&member, promoted).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/whoami", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got WhoAmIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, store.UserRoleUser, got.Role)
	assert.True(t, got.StoredCompanyAdmin)
	require.NotNil(t, got.StoredCompanyID)
	assert.Equal(t, company, *got.StoredCompanyID)
}

func TestHandleWhoAmI_NoActor(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(nil, authz.Actor{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/whoami", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleExplain_OtherPrincipal(t *testing.T) {
	admin := authz.Actor{Role: store.UserRoleAdmin, CompanyID: &company, ProfileFound: true}
	principal := uuid.New()
	body := `{
		"principal_id": "` + principal.String() + `",
		"entity": "company",
		"operation": "update",
		"resource": {"id": "` + company.String() + `", "company_id": "` + company.String() + `", "account_id_changed": true}
	}`

	w := explain(newRouter(&superAdmin, admin), body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExplainResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, principal, resp.Actor.ID)
	assert.False(t, resp.Decision.Allowed)
	assert.Equal(t, authz.ReasonDenyAccountIDImmutable, resp.Decision.Reason)
	require.Len(t, resp.Rules, 2)
	assert.Equal(t, "super_admin", resp.Rules[0].Rule)
	assert.False(t, resp.Rules[1].Matched)
}

func TestHandleExplain_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		caller   authz.Actor
		body     string
		wantCode int
	}{
		{
			name:     "not a super admin",
			caller:   member,
			body:     `{"entity":"company","operation":"read"}`,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "unknown entity",
			caller:   superAdmin,
			body:     `{"entity":"invoice","operation":"read"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown operation",
			caller:   superAdmin,
			body:     `{"entity":"company","operation":"truncate"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed resource id",
			caller:   superAdmin,
			body:     `{"entity":"company","operation":"read","resource":{"company_id":"acme"}}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller := tt.caller
			w := explain(newRouter(&caller, authz.Actor{}), tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
