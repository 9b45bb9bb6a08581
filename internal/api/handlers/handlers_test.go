package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"source-manager-backend/internal/api/routes"
	"source-manager-backend/internal/testutils"
)

type env struct {
	router *gin.Engine
	token  string
}

func setupEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testutils.SetupLibrary(t)
	db := testutils.SetupTestDB(t)
	router := routes.SetupRoutes(db, cfg)

	// obtain an admin token for protected endpoints
	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"passcode": "test-passcode"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)

	return &env{router: router, token: resp.AccessToken}
}

func (e *env) do(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)
	e.router.ServeHTTP(w, req)
	return w
}

func ccrPayload() map[string]any {
	return map[string]any{
		"project_type": "CCR",
		"fields": map[string]string{
			"project_title":   "Harbor Facility Review",
			"document_title":  "Harbor Facility Review",
			"facility_number": "1234567890",
			"building_number": "DC123",
			"facility_name":   "Harbor Complex",
			"request_year":    "2024",
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := setupEnv(t)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
}

func TestCreateProjectEndToEnd(t *testing.T) {
	e := setupEnv(t)

	w := e.do(t, http.MethodPost, "/api/v1/projects", ccrPayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Path  string `json:"path"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "1234567890 - DC123 - CCR - 2024.json", created.Path)

	// duplicate create is a conflict
	w = e.do(t, http.MethodPost, "/api/v1/projects", ccrPayload())
	assert.Equal(t, http.StatusConflict, w.Code)

	// the new project shows up in the listing
	w = e.do(t, http.MethodGet, "/api/v1/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.Path)

	// and loads in full via the detail endpoint
	w = e.do(t, http.MethodGet, "/api/v1/projects/detail?path="+url.QueryEscape(created.Path), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Harbor Facility Review")
}

func TestCreateProjectValidationFailure(t *testing.T) {
	e := setupEnv(t)

	payload := ccrPayload()
	payload["fields"].(map[string]string)["facility_number"] = "12"

	w := e.do(t, http.MethodPost, "/api/v1/projects", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Facility Number")
}

func TestProjectMutationsRequireAuth(t *testing.T) {
	e := setupEnv(t)

	data, err := json.Marshal(ccrPayload())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSourceLifecycleOverHTTP(t *testing.T) {
	e := setupEnv(t)

	// create a source
	w := e.do(t, http.MethodPost, "/api/v1/sources", map[string]any{
		"region":      "General",
		"source_type": "book",
		"fields":      map[string]string{"title": "Harbor Histories", "authors": "Lin, P."},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var source struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &source))
	require.NotEmpty(t, source.ID)

	// fetch it back
	w = e.do(t, http.MethodGet, "/api/v1/sources/"+source.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Harbor Histories")

	// attach it to a project
	w = e.do(t, http.MethodPost, "/api/v1/projects", ccrPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Path string `json:"path"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	attachURL := fmt.Sprintf("/api/v1/projects/sources/attach?path=%s", url.QueryEscape(created.Path))
	w = e.do(t, http.MethodPost, attachURL, map[string]any{"source_id": source.ID, "notes": "intro"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the backlink is visible on the source
	w = e.do(t, http.MethodGet, "/api/v1/sources/"+source.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"used_in"`)
	assert.Contains(t, w.Body.String(), "intro")

	// search finds it through the index
	w = e.do(t, http.MethodGet, "/api/v1/search?q=Harbor+Histories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), source.ID)

	// unknown source id maps to 404
	w = e.do(t, http.MethodGet, "/api/v1/sources/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSchemaEndpoints(t *testing.T) {
	e := setupEnv(t)

	w := e.do(t, http.MethodGet, "/api/v1/project-types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"CCR"`)

	w = e.do(t, http.MethodGet, "/api/v1/project-types/CCR", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "facility_number")
	assert.Contains(t, w.Body.String(), `"filename_pattern"`)

	w = e.do(t, http.MethodGet, "/api/v1/project-types/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(t, http.MethodGet, "/api/v1/source-types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"book"`)
}

func TestSearchRebuildEndpoint(t *testing.T) {
	e := setupEnv(t)

	w := e.do(t, http.MethodPost, "/api/v1/sources", map[string]any{
		"region":      "ROW",
		"source_type": "report",
		"fields":      map[string]string{"title": "Corridor Survey"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodPost, "/api/v1/search/rebuild", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"indexed":1`)
}
