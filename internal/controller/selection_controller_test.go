package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"course_admin_gateway/internal/config"
	"course_admin_gateway/internal/service"
	"course_admin_gateway/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSelectionRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mux := http.NewServeMux()
	mux.HandleFunc("/courses", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[{"id":"course-1","title":"Anatomy"}]}`))
	})
	mux.HandleFunc("/instructors", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[{"id":"inst-1","name":"Dr. Salem","levelIds":["lvl-1"]}]}`))
	})
	mux.HandleFunc("/course-levels", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[{"id":"lvl-1","name":"Level One"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := upstream.NewClient(&config.UpstreamConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	catalog := service.NewCatalogService(client, nil, service.NewLinkService(&config.ProbeConfig{}), nil, &config.Config{})
	ctrl := NewSelectionController(service.NewSelectionService(catalog))

	router := gin.New()
	router.GET("/selection", ctrl.Get)
	router.DELETE("/selection", ctrl.Reset)
	router.POST("/selection/specialization", ctrl.ChooseSpecialization)
	router.POST("/selection/course", ctrl.ChooseCourse)
	router.POST("/selection/instructor", ctrl.ChooseInstructor)
	router.POST("/selection/level", ctrl.ChooseLevel)
	return router
}

func doJSON(router *gin.Engine, method, path, body, sessionKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionKey != "" {
		req.Header.Set("X-Session-Key", sessionKey)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSelectionEndpointsFullFlow(t *testing.T) {
	router := newSelectionRouter(t)

	w := doJSON(router, http.MethodPost, "/selection/specialization", `{"id":"spec-1"}`, "tab-1")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			State   string `json:"state"`
			Courses []struct {
				ID string `json:"id"`
			} `json:"courses"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "specialization_chosen", resp.Data.State)
	require.Len(t, resp.Data.Courses, 1)

	w = doJSON(router, http.MethodPost, "/selection/course", `{"id":"course-1"}`, "tab-1")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/selection/instructor", `{"id":"inst-1"}`, "tab-1")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/selection/level", `{"id":"lvl-1"}`, "tab-1")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSelectionEndpointOrderViolationIs400(t *testing.T) {
	router := newSelectionRouter(t)

	w := doJSON(router, http.MethodPost, "/selection/course", `{"id":"course-1"}`, "tab-1")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectionEndpointMissingIDIs400(t *testing.T) {
	router := newSelectionRouter(t)

	w := doJSON(router, http.MethodPost, "/selection/specialization", `{}`, "tab-1")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectionTabsAreIndependent(t *testing.T) {
	router := newSelectionRouter(t)

	w := doJSON(router, http.MethodPost, "/selection/specialization", `{"id":"spec-1"}`, "tab-1")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/selection", "", "tab-2")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			State string `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "empty", resp.Data.State)
}

func TestSelectionResetEndpoint(t *testing.T) {
	router := newSelectionRouter(t)

	doJSON(router, http.MethodPost, "/selection/specialization", `{"id":"spec-1"}`, "tab-1")
	w := doJSON(router, http.MethodDelete, "/selection", "", "tab-1")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			State string `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "empty", resp.Data.State)
}
