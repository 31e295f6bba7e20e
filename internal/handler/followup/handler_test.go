package followup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadtrackhq/leadtrack-api/internal/handler"
	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/internal/repository/memory"
	leadservice "github.com/leadtrackhq/leadtrack-api/internal/service/lead"
	"github.com/leadtrackhq/leadtrack-api/pkg/logger"
)

func setupRouter(t *testing.T) (*gin.Engine, *model.Lead) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.NewLeadRepository(memory.NewStore())
	svc := leadservice.NewService(repo, logger.NewLogger(nil))

	followUp := model.DateOf(time.Now().AddDate(0, 0, 3))
	lead, err := svc.CreateLead(context.Background(), &model.CreateLeadRequest{
		FullName:            "John Smith",
		Email:               "john@techsolutions.com",
		LeadSource:          "Website",
		ServiceInterestedIn: "Software Development",
		Priority:            "High",
		Status:              "Contacted",
		AssignedTo:          "Sarah Johnson",
		NextFollowUpDate:    &followUp,
	})
	require.NoError(t, err)

	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r, lead
}

func doRequest(r *gin.Engine, method, path string, body []byte) (*httptest.ResponseRecorder, *handler.Response) {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, &resp
}

func TestListFollowUps(t *testing.T) {
	r, _ := setupRouter(t)

	w, resp := doRequest(r, http.MethodGet, "/api/v1/followups", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data, 1)

	w, resp = doRequest(r, http.MethodGet, "/api/v1/followups?due=upcoming", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data, 1)

	w, resp = doRequest(r, http.MethodGet, "/api/v1/followups?due=overdue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Data)

	w, _ = doRequest(r, http.MethodGet, "/api/v1/followups?due=someday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReschedule(t *testing.T) {
	r, lead := setupRouter(t)

	body, _ := json.Marshal(map[string]string{"date": "2026-09-10", "user": "Sarah Johnson"})
	w, resp := doRequest(r, http.MethodPut, fmt.Sprintf("/api/v1/followups/%s", lead.ID), body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "2026-09-10", data["next_follow_up_date"])
}

func TestCompleteWithEmptyBody(t *testing.T) {
	r, lead := setupRouter(t)

	w, resp := doRequest(r, http.MethodPost, fmt.Sprintf("/api/v1/followups/%s/complete", lead.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := resp.Data.(map[string]interface{})
	next := model.DateOf(time.Now().AddDate(0, 0, 7))
	assert.Equal(t, next.String(), data["next_follow_up_date"])

	timeline := data["timeline"].([]interface{})
	last := timeline[len(timeline)-1].(map[string]interface{})
	assert.Equal(t, "Follow-up Completed", last["title"])
	assert.Equal(t, "Follow-up call completed", last["description"])

	// Only a missing body gets a pass; malformed JSON is still rejected.
	w, _ = doRequest(r, http.MethodPost, fmt.Sprintf("/api/v1/followups/%s/complete", lead.ID), []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
