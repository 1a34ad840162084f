package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	apikeydomain "github.com/medcouncil/registry/internal/apikey/domain"
	apikeyrepository "github.com/medcouncil/registry/internal/apikey/repository"
	apikeyservice "github.com/medcouncil/registry/internal/apikey/service"
	"github.com/medcouncil/registry/internal/authorization"
	"github.com/medcouncil/registry/internal/config"
	licensedomain "github.com/medcouncil/registry/internal/license/domain"
	licenserepository "github.com/medcouncil/registry/internal/license/repository"
	licenseservice "github.com/medcouncil/registry/internal/license/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&apikeydomain.APIKey{}, &licensedomain.License{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	apiKeyRepo := apikeyrepository.Provide()
	apiKeySvc := apikeyservice.New(apikeyservice.Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  apiKeyRepo,
	})
	licenseSvc := licenseservice.New(licenseservice.Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  licenserepository.Provide(),
	})

	enforcer, err := authorization.NewEnforcer(gdb)
	require.NoError(t, err)
	authzSvc := authorization.NewService(authorization.Params{
		Log:      zap.NewNop(),
		Enforcer: enforcer,
	})

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	s := &Server{
		engine:      engine,
		cfg:         config.Config{Environment: "test"},
		db:          gdb,
		log:         zap.NewNop(),
		councilName: "Medical and Dental Council",
		licenseSvc:  licenseSvc,
		apiKeySvc:   apiKeySvc,
		apiKeyRepo:  apiKeyRepo,
		authzSvc:    authzSvc,
	}
	s.registerAPIRoutes()

	return s, gdb
}

func issueKey(t *testing.T, s *Server, scopes []string, role string) string {
	t.Helper()
	secret, err := s.apiKeySvc.Create(t.Context(), apikeydomain.CreateRequest{
		Name:   "test key",
		Scopes: scopes,
		Role:   role,
	})
	require.NoError(t, err)
	return secret.APIKey
}

func doRequest(s *Server, method, path, bearer string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func TestAPIKeyRequired_RejectsMissingAndUnknownKeys(t *testing.T) {
	s, _ := setupServer(t)

	rec := doRequest(s, http.MethodGet, "/api/licenses", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/licenses", "rg_live_key_bogus_secret", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireScope_BlocksWritesWithReadOnlyKey(t *testing.T) {
	s, _ := setupServer(t)

	readOnly := issueKey(t, s, []string{apikeydomain.ScopeRead}, authorization.RoleViewer)
	writer := issueKey(t, s, []string{apikeydomain.ScopeRead, apikeydomain.ScopeWrite}, authorization.RoleRegistrar)

	body := map[string]string{"license_number": "MDC-PN-1001", "type": "practitioner"}

	rec := doRequest(s, http.MethodPost, "/api/licenses", readOnly, body)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(s, http.MethodPost, "/api/licenses", writer, body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/licenses/MDC-PN-1001", readOnly, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthorizeAction_EnforcesRolePolicy(t *testing.T) {
	s, _ := setupServer(t)

	registrar := issueKey(t, s, []string{apikeydomain.ScopeRead, apikeydomain.ScopeWrite}, authorization.RoleRegistrar)
	finance := issueKey(t, s, []string{apikeydomain.ScopeRead, apikeydomain.ScopeWrite}, authorization.RoleFinance)

	body := map[string]string{"license_number": "MDC-PN-2002", "type": "practitioner"}
	rec := doRequest(s, http.MethodPost, "/api/licenses", registrar, body)
	require.Equal(t, http.StatusOK, rec.Code)

	status := map[string]string{"status": "suspended"}

	// Finance carries the write scope but not the registrar policy.
	rec = doRequest(s, http.MethodPost, "/api/licenses/MDC-PN-2002/status", finance, status)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(s, http.MethodPost, "/api/licenses/MDC-PN-2002/status", registrar, status)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyRequired_StampsLastUsed(t *testing.T) {
	s, gdb := setupServer(t)

	key := issueKey(t, s, []string{apikeydomain.ScopeRead}, authorization.RoleViewer)
	rec := doRequest(s, http.MethodGet, "/api/licenses", key, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stored apikeydomain.APIKey
	require.NoError(t, gdb.First(&stored).Error)
	require.NotNil(t, stored.LastUsedAt)
}

func TestErrorMapping_UnknownLicenseIsNotFound(t *testing.T) {
	s, _ := setupServer(t)

	key := issueKey(t, s, []string{apikeydomain.ScopeRead}, authorization.RoleViewer)
	rec := doRequest(s, http.MethodGet, "/api/licenses/MDC-PN-9999", key, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var payload errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "not_found", payload.Error.Type)
}
