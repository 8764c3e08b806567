package dex

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evodex/internal/metrics"
	"evodex/pkg/models"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(fixture(), metrics.New()).RegisterRoutes(r.Group("/dex"))
	return r
}

func get(t *testing.T, r http.Handler, path string, out any) int {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w.Code
}

func TestHandler_Regions(t *testing.T) {
	var resp struct {
		Items []regionItem `json:"items"`
	}
	require.Equal(t, http.StatusOK, get(t, newRouter(t), "/dex/regions", &resp))
	assert.Equal(t, []regionItem{{Name: "Kanto", Code: "K"}, {Name: "Johto", Code: "J"}}, resp.Items)
}

func TestHandler_Region(t *testing.T) {
	var resp struct {
		Region string          `json:"region"`
		Code   string          `json:"code"`
		Total  int             `json:"total"`
		Items  []models.DexMon `json:"items"`
	}
	require.Equal(t, http.StatusOK, get(t, newRouter(t), "/dex/regions/kanto", &resp))
	assert.Equal(t, "Kanto", resp.Region)
	assert.Equal(t, "K", resp.Code)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, "K 003", resp.Items[2].FamilyID)
	assert.Equal(t, "bulbasaur", resp.Items[2].Slug)
}

func TestHandler_UnknownRegionIsEmpty(t *testing.T) {
	var resp struct {
		Code  string          `json:"code"`
		Items []models.DexMon `json:"items"`
	}
	require.Equal(t, http.StatusOK, get(t, newRouter(t), "/dex/regions/paldea", &resp))
	assert.Equal(t, "O", resp.Code)
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
}

func TestHandler_Boxes(t *testing.T) {
	var resp struct {
		Boxes [][]models.DexMon `json:"boxes"`
	}
	require.Equal(t, http.StatusOK, get(t, newRouter(t), "/dex/regions/Kanto/boxes?size=2", &resp))
	require.Len(t, resp.Boxes, 2)
	assert.Len(t, resp.Boxes[1], 1)

	assert.Equal(t, http.StatusBadRequest, get(t, newRouter(t), "/dex/regions/Kanto/boxes?size=500", nil))
}

func TestHandler_Family(t *testing.T) {
	var f models.Family
	require.Equal(t, http.StatusOK, get(t, newRouter(t), "/dex/families/Chikorita%20family", &f))
	assert.Equal(t, "Johto", f.RegionName)

	assert.Equal(t, http.StatusNotFound, get(t, newRouter(t), "/dex/families/nope", nil))
}

func TestHandler_Search(t *testing.T) {
	type searchResp struct {
		Term  string   `json:"term"`
		Total int      `json:"total"`
		Slugs []string `json:"slugs"`
	}
	r := newRouter(t)

	var resp searchResp
	require.Equal(t, http.StatusOK, get(t, r, "/dex/search?q=CHAR", &resp))
	assert.Equal(t, []string{"charmander", "charizard"}, resp.Slugs)
	assert.Equal(t, 2, resp.Total)

	var short searchResp
	require.Equal(t, http.StatusOK, get(t, r, "/dex/search?q=%20ch%20", &short))
	assert.Equal(t, "ch", short.Term)
	assert.Empty(t, short.Slugs, "terms under the minimum length never reach the index")
}
