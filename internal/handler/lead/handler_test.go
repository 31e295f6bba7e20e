package lead

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadtrackhq/leadtrack-api/internal/handler"
	"github.com/leadtrackhq/leadtrack-api/internal/repository/memory"
	leadservice "github.com/leadtrackhq/leadtrack-api/internal/service/lead"
	"github.com/leadtrackhq/leadtrack-api/pkg/logger"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := leadservice.NewService(memory.NewLeadRepository(memory.NewStore()), logger.NewLogger(nil))

	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, *handler.Response) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, &resp
}

func createLeadPayload(name string) map[string]interface{} {
	return map[string]interface{}{
		"full_name":             name,
		"email":                 "lead@example.com",
		"lead_source":           "Website",
		"service_interested_in": "Software Development",
		"priority":              "High",
		"status":                "New",
		"assigned_to":           "Sarah Johnson",
	}
}

func createdLeadID(t *testing.T, resp *handler.Response) string {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "unexpected response data: %v", resp.Data)
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestCreateLead(t *testing.T) {
	r := setupRouter()

	w, resp := doRequest(r, http.MethodPost, "/api/v1/leads", createLeadPayload("John Smith"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "success", resp.Status)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "John Smith", data["full_name"])
	assert.Equal(t, "New", data["status"])
	assert.Len(t, data["timeline"], 1)
}

func TestCreateLeadValidation(t *testing.T) {
	r := setupRouter()

	payload := createLeadPayload("John Smith")
	payload["status"] = "Imaginary"
	w, resp := doRequest(r, http.MethodPost, "/api/v1/leads", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", resp.Status)

	payload = createLeadPayload("John Smith")
	payload["email"] = "not-an-email"
	w, _ = doRequest(r, http.MethodPost, "/api/v1/leads", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	payload = createLeadPayload("John Smith")
	delete(payload, "assigned_to")
	w, _ = doRequest(r, http.MethodPost, "/api/v1/leads", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLead(t *testing.T) {
	r := setupRouter()

	_, created := doRequest(r, http.MethodPost, "/api/v1/leads", createLeadPayload("John Smith"))
	id := createdLeadID(t, created)

	w, resp := doRequest(r, http.MethodGet, "/api/v1/leads/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "John Smith", data["full_name"])
}

func TestGetLeadNotFound(t *testing.T) {
	r := setupRouter()

	w, resp := doRequest(r, http.MethodGet, "/api/v1/leads/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", resp.Status)

	w, _ = doRequest(r, http.MethodGet, "/api/v1/leads/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateLeadPartial(t *testing.T) {
	r := setupRouter()

	_, created := doRequest(r, http.MethodPost, "/api/v1/leads", createLeadPayload("John Smith"))
	id := createdLeadID(t, created)

	w, resp := doRequest(r, http.MethodPatch, "/api/v1/leads/"+id, map[string]interface{}{
		"company": "Tech Solutions Inc.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Tech Solutions Inc.", data["company"])
	// Fields absent from the patch keep their values.
	assert.Equal(t, "John Smith", data["full_name"])
}

func TestUpdateStatus(t *testing.T) {
	r := setupRouter()

	_, created := doRequest(r, http.MethodPost, "/api/v1/leads", createLeadPayload("John Smith"))
	id := createdLeadID(t, created)

	w, resp := doRequest(r, http.MethodPut, fmt.Sprintf("/api/v1/leads/%s/status", id), map[string]interface{}{
		"status": "Contacted",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Contacted", data["status"])
	assert.Len(t, data["timeline"], 2)

	w, _ = doRequest(r, http.MethodPut, fmt.Sprintf("/api/v1/leads/%s/status", id), map[string]interface{}{
		"status": "Imaginary",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteLead(t *testing.T) {
	r := setupRouter()

	_, created := doRequest(r, http.MethodPost, "/api/v1/leads", createLeadPayload("John Smith"))
	id := createdLeadID(t, created)

	w, _ := doRequest(r, http.MethodDelete, "/api/v1/leads/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(r, http.MethodGet, "/api/v1/leads/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doRequest(r, http.MethodDelete, "/api/v1/leads/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListLeadsWithFilters(t *testing.T) {
	r := setupRouter()

	doRequest(r, http.MethodPost, "/api/v1/leads", createLeadPayload("John Smith"))
	payload := createLeadPayload("Emily Davis")
	payload["company"] = "Business Corp"
	doRequest(r, http.MethodPost, "/api/v1/leads", payload)

	w, resp := doRequest(r, http.MethodGet, "/api/v1/leads", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data, 2)

	w, resp = doRequest(r, http.MethodGet, "/api/v1/leads?search=business", nil)
	require.Equal(t, http.StatusOK, w.Code)
	leads := resp.Data.([]interface{})
	require.Len(t, leads, 1)
	assert.Equal(t, "Emily Davis", leads[0].(map[string]interface{})["full_name"])
}

func TestTimelineEndpoints(t *testing.T) {
	r := setupRouter()

	_, created := doRequest(r, http.MethodPost, "/api/v1/leads", createLeadPayload("John Smith"))
	id := createdLeadID(t, created)

	w, _ := doRequest(r, http.MethodPost, fmt.Sprintf("/api/v1/leads/%s/timeline", id), map[string]interface{}{
		"type":        "note",
		"title":       "Pricing discussion",
		"description": "Walked through the enterprise tier.",
		"user":        "Mike Wilson",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, resp := doRequest(r, http.MethodGet, fmt.Sprintf("/api/v1/leads/%s/timeline", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := resp.Data.([]interface{})
	require.Len(t, entries, 2)
	assert.Equal(t, "Pricing discussion", entries[1].(map[string]interface{})["title"])

	// Unknown entry types are rejected at the binding layer.
	w, _ = doRequest(r, http.MethodPost, fmt.Sprintf("/api/v1/leads/%s/timeline", id), map[string]interface{}{
		"type":  "telepathy",
		"title": "Impossible",
		"user":  "Mike Wilson",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
