package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"

	"github.com/redrock-labs/compass/internal/config"
	"github.com/redrock-labs/compass/internal/core/iap"
	"github.com/redrock-labs/compass/internal/core/planner"
	"github.com/redrock-labs/compass/internal/logger"
)

// emptyGraph answers every query with no records; planner endpoints degrade
// to empty results instead of failing.
type emptyGraph struct{}

func (emptyGraph) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	return neo4j.EagerResult{}, nil
}

func (emptyGraph) BuildSchema(ctx context.Context) error { return nil }

func (emptyGraph) Close(ctx context.Context) error { return nil }

func testServer() *Server {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	pl := planner.NewPlanner(emptyGraph{}, cfg.Requirements)
	return NewServer(nil, pl, iap.NewManager(cfg.Requirements, pl), cfg.Limits, logger.Nop())
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIAPLifecycle(t *testing.T) {
	router := testServer().SetupRouter()

	w := doRequest(t, router, http.MethodPost, "/iap",
		`{"student_name": "Dana Rivera", "student_id": "D00123456", "degree_emphasis": "Digital Media Production"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, router, http.MethodGet, "/iap/D00123456", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var plan map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.Equal(t, "Dana Rivera", plan["student_name"])

	w = doRequest(t, router, http.MethodPatch, "/iap/D00123456/section",
		`{"section": "mission_statement", "payload": {"text": "Bridge media and computing."}}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/iap/D00123456/validate", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var report map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, false, report["valid"])
}

func TestCreateIAPMissingFields(t *testing.T) {
	router := testServer().SetupRouter()

	w := doRequest(t, router, http.MethodPost, "/iap", `{"student_name": "Dana Rivera"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateIAPSectionRejectsUnknownSection(t *testing.T) {
	router := testServer().SetupRouter()

	doRequest(t, router, http.MethodPost, "/iap",
		`{"student_name": "Dana Rivera", "student_id": "D00123456", "degree_emphasis": "Digital Media Production"}`)

	w := doRequest(t, router, http.MethodPatch, "/iap/D00123456/section",
		`{"section": "favorite_color", "payload": {"text": "blue"}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown IAP section")
}

func TestGetIAPNotFound(t *testing.T) {
	router := testServer().SetupRouter()

	w := doRequest(t, router, http.MethodGet, "/iap/D00999999", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidateSequenceUnknownCoursesAreClean(t *testing.T) {
	router := testServer().SetupRouter()

	w := doRequest(t, router, http.MethodPost, "/sequence/validate", `{"courses": ["CS 1400", "CS 1410"]}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var report map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, true, report["valid"])
}

func TestValidateSequenceBadRequest(t *testing.T) {
	router := testServer().SetupRouter()

	w := doRequest(t, router, http.MethodPost, "/sequence/validate", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCoursesByLevel(t *testing.T) {
	router := testServer().SetupRouter()

	w := doRequest(t, router, http.MethodGet, "/courses?level=upper_division&department=CS", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "upper_division")
}

func TestCoursesByLevelRequiresLevel(t *testing.T) {
	router := testServer().SetupRouter()

	w := doRequest(t, router, http.MethodGet, "/courses", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrerequisiteChainEmptyGraph(t *testing.T) {
	router := testServer().SetupRouter()

	w := doRequest(t, router, http.MethodGet, "/courses/CS%202420/chain", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CS 2420")
}
