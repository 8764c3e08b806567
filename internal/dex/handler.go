package dex

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"evodex/internal/metrics"
)

// MinSearchLen is the shortest term the API forwards to the index.
const MinSearchLen = 3

type Handler struct {
	Index   *Index
	Metrics *metrics.Metrics
}

func NewHandler(index *Index, m *metrics.Metrics) *Handler {
	return &Handler{Index: index, Metrics: m}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/regions", h.regions)             // GET /dex/regions
	rg.GET("/regions/:region", h.region)      // GET /dex/regions/:region
	rg.GET("/regions/:region/boxes", h.boxes) // GET /dex/regions/:region/boxes?size=30
	rg.GET("/families/:name", h.family)       // GET /dex/families/:name
	rg.GET("/search", h.search)               // GET /dex/search?q=char
}

type regionItem struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (h *Handler) regions(c *gin.Context) {
	names := h.Index.RegionNames()
	items := make([]regionItem, 0, len(names))
	for _, n := range names {
		items = append(items, regionItem{Name: n, Code: h.Index.RegionCode(n)})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) region(c *gin.Context) {
	region := h.resolve(c.Param("region"))
	items := h.Index.InRegion(region)
	c.JSON(http.StatusOK, gin.H{
		"region": region,
		"code":   h.Index.RegionCode(region),
		"total":  len(items),
		"items":  items,
	})
}

func (h *Handler) boxes(c *gin.Context) {
	region := h.resolve(c.Param("region"))
	size := parseInt(c.Query("size"), DefaultBoxSize)
	if size <= 0 || size > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be 1-100"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"region": region,
		"size":   size,
		"boxes":  h.Index.Boxes(region, size),
	})
}

func (h *Handler) family(c *gin.Context) {
	f, ok := h.Index.Family(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "family not found"})
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *Handler) search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	slugs := []string{}
	if len([]rune(term)) >= MinSearchLen {
		slugs = h.Index.Search(term)
	}
	if h.Metrics != nil {
		h.Metrics.ObserveSearch(len(slugs))
	}
	c.JSON(http.StatusOK, gin.H{
		"term":  term,
		"total": len(slugs),
		"slugs": slugs,
	})
}

// resolve maps a case-insensitive path segment onto the dataset's region
// spelling; unknown names pass through and produce empty listings.
func (h *Handler) resolve(raw string) string {
	if r, ok := h.Index.ResolveRegion(raw); ok {
		return r
	}
	return raw
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
