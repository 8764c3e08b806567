package record

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evodex/internal/metrics"
	"evodex/pkg/models"
)

func newTestRouter(st Store, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(st, nil, nil), m).RegisterRoutes(r.Group("/users"))
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerGetNotFound(t *testing.T) {
	r := newTestRouter(newMemStore(), nil)
	w := doRequest(r, http.MethodGet, "/users/nobody", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())
}

func TestHandlerPutThenGet(t *testing.T) {
	m := metrics.New()
	r := newTestRouter(newMemStore(), m)

	w := doRequest(r, http.MethodPut, "/users/ash%20ketchum", `{"caughtFamilyIDs":["K 001","K 001","K 002"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var u models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.Equal(t, "ash ketchum", u.NameSlug)
	assert.Equal(t, 1, u.Version)
	assert.Equal(t, []string{"K 001", "K 002"}, u.CaughtFamilyIDs)

	w = doRequest(r, http.MethodGet, "/users/ash%20ketchum", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, u, got)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordOps.WithLabelValues("put", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordOps.WithLabelValues("get", "ok")))
}

func TestHandlerPutValidation(t *testing.T) {
	r := newTestRouter(newMemStore(), nil)

	w := doRequest(r, http.MethodPut, "/users/ab", `{"caughtFamilyIDs":[]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"nameSlug"`)

	w = doRequest(r, http.MethodPut, "/users/abcdef", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"caughtFamilyIDs"`)

	w = doRequest(r, http.MethodPut, "/users/abcdef", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerPutRejectsBadIDs(t *testing.T) {
	st := newMemStore()
	r := newTestRouter(st, nil)

	w := doRequest(r, http.MethodPut, "/users/abcdef", `{"caughtFamilyIDs":[1]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"caughtFamilyIDs"`)

	w = doRequest(r, http.MethodPut, "/users/abcdef", `{"caughtFamilyIDs":"K 001"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(r, http.MethodPut, "/users/abcdef", `{"caughtFamilyIDs":["K 001",""]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "must not contain empty IDs")

	w = doRequest(r, http.MethodGet, "/users/abcdef", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerPutStoreFailure(t *testing.T) {
	st := newMemStore()
	st.putErr = errors.New("boom")
	r := newTestRouter(st, nil)

	w := doRequest(r, http.MethodPut, "/users/abcdef", `{"caughtFamilyIDs":["K 001"]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"save failed"}`, w.Body.String())
}
