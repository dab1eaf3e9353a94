// internal/api/handlers_test.go
package api

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerforge/offerforge/internal/config"
	"github.com/offerforge/offerforge/internal/di"
	"github.com/offerforge/offerforge/internal/llm"
	"github.com/offerforge/offerforge/internal/services"
	"github.com/offerforge/offerforge/internal/storage"
)

type cannedProvider struct{}

func (p *cannedProvider) Initialize(config map[string]string) error { return nil }
func (p *cannedProvider) GetName() string                           { return "canned" }
func (p *cannedProvider) GetSupportedModels() []string              { return []string{"test-model"} }

func (p *cannedProvider) CompleteText(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{
		Text:         "generated content",
		TokensUsed:   10,
		ModelName:    "test-model",
		ProviderName: "canned",
	}, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewDocumentStore(t.TempDir())
	require.NoError(t, err)

	statsService := services.NewStatsService(store)
	llmService := services.NewLLMService("openai", map[string]string{}, statsService)
	llmService.SetProvider(&cannedProvider{})

	contentService := services.NewContentService(llmService, services.NewPromptStore())
	landingService := services.NewLandingService()

	container := di.NewContainer()
	container.Register("store", store)
	container.Register("stats", statsService)
	container.Register("llm", llmService)
	container.Register("landing", landingService)
	container.Register("projects", services.NewProjectService(store, contentService, landingService))
	container.Register("avatars", services.NewAvatarService(store))
	container.Register("exports", services.NewExportService())
	container.Register("pricing", services.NewPricingService(false))

	router, err := SetupRouter(container, &config.Config{DebugMode: true})
	require.NoError(t, err)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func createProjectViaAPI(t *testing.T, router *gin.Engine) string {
	t.Helper()

	recorder := doRequest(router, http.MethodPost, "/api/projects",
		`{"name": "Projeto Fitness", "user_id": "u1"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func completeProjectViaAPI(t *testing.T, router *gin.Engine, id string) {
	t.Helper()

	update := `{
		"brief": {"niche": "fitness", "promise": "Perca 10kg", "target_price": 297, "currency": "BRL"},
		"pain_research": {"pain_points": [{"description": "sem tempo para treinar", "frequency": 2}]}
	}`
	recorder := doRequest(router, http.MethodPut, "/api/projects/"+id, update)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(router, http.MethodPost, "/api/generate/offer/"+id, "")
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRootBanner(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/api/", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "OfferForge API is running", body["message"])
	assert.Equal(t, "2.0.0", body["version"])
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "healthy", body["status"])

	servicesBlock, ok := body["services"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "connected", servicesBlock["storage"])
	assert.Equal(t, "configured", servicesBlock["llm"])
	assert.Equal(t, "not configured", servicesBlock["stripe"])
}

func TestCreateProjectValidation(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodPost, "/api/projects", `{"name": "sem usuário"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Contains(t, body["detail"], "Invalid project payload")
}

func TestGetProjectNotFoundDetail(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/api/projects/unknown", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Project not found", body["detail"])
}

func TestGenerateOfferPreconditionDetail(t *testing.T) {
	router := newTestRouter(t)
	id := createProjectViaAPI(t, router)

	recorder := doRequest(router, http.MethodPost, "/api/generate/offer/"+id, "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Project must have brief and pain research completed", body["detail"])
}

func TestGenerateOfferAndMaterials(t *testing.T) {
	router := newTestRouter(t)
	id := createProjectViaAPI(t, router)
	completeProjectViaAPI(t, router, id)

	recorder := doRequest(router, http.MethodPost, "/api/generate/materials/"+id,
		`{"material_types": ["vsl"]}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])

	materials, ok := body["materials"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, materials, "vsl_script")
	assert.NotContains(t, materials, "email_sequence")
}

func TestExportInvalidType(t *testing.T) {
	router := newTestRouter(t)
	id := createProjectViaAPI(t, router)

	recorder := doRequest(router, http.MethodPost, "/api/export/"+id, `{"export_type": "docx"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Invalid export type. Supported: zip, pdf, html, json", body["detail"])
}

func TestExportHTMLWithoutLandingPage(t *testing.T) {
	router := newTestRouter(t)
	id := createProjectViaAPI(t, router)

	recorder := doRequest(router, http.MethodPost, "/api/export/"+id, `{"export_type": "html"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Landing page not generated yet", body["detail"])
}

func TestExportZIPEndToEnd(t *testing.T) {
	router := newTestRouter(t)
	id := createProjectViaAPI(t, router)
	completeProjectViaAPI(t, router, id)

	recorder := doRequest(router, http.MethodPost, "/api/export/"+id, `{"export_type": "zip"}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])

	fileData, _ := body["file_data"].(string)
	raw, err := base64.StdEncoding.DecodeString(fileData)
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	assert.NotEmpty(t, reader.File)

	// Export history is recorded on the project.
	recorder = doRequest(router, http.MethodGet, "/api/projects/"+id, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	project := decodeBody(t, recorder)
	exports, ok := project["exports"].([]any)
	require.True(t, ok)
	require.Len(t, exports, 1)
}

func TestPriceSuggestionEndpoint(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/api/stripe/price-suggestion?niche=fitness&target_price=100", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, 90.0, body["suggested_price"])
	assert.Equal(t, "BRL", body["currency"])
}

func TestPriceSuggestionRequiresNiche(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/api/stripe/price-suggestion?target_price=100", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Query parameter 'niche' is required", body["detail"])
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	createProjectViaAPI(t, router)

	recorder := doRequest(router, http.MethodGet, "/api/metrics", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, 1.0, body["total_projects"])
	assert.Equal(t, 0.0, body["completed_projects"])
}

func TestUsageStatsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodGet, "/api/stats", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Contains(t, body, "total_requests")
	assert.Contains(t, body, "total_tokens")
}

func TestCreateAndListAvatars(t *testing.T) {
	router := newTestRouter(t)

	recorder := doRequest(router, http.MethodPost, "/api/avatars",
		`{"name": "Mulheres 30-40", "age_range": "30-40", "interests": ["fitness"]}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/api/avatars", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var avatars []map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &avatars))
	require.Len(t, avatars, 1)
	assert.Equal(t, "Mulheres 30-40", avatars[0]["name"])
}
