package record

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"evodex/internal/metrics"
)

type Handler struct {
	Service *Service
	Metrics *metrics.Metrics
}

func NewHandler(svc *Service, m *metrics.Metrics) *Handler {
	return &Handler{Service: svc, Metrics: m}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:slug", h.get) // GET /users/:slug
	rg.PUT("/:slug", h.put) // PUT /users/:slug
}

type putRequest struct {
	CaughtFamilyIDs []string `json:"caughtFamilyIDs"`
}

func (h *Handler) get(c *gin.Context) {
	u, err := h.Service.Get(c.Request.Context(), c.Param("slug"))
	switch {
	case err == nil:
		h.observe("get", "ok")
		c.JSON(http.StatusOK, u)
	case errors.Is(err, ErrNotFound):
		h.observe("get", "not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		h.observe("get", "error")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
	}
}

func (h *Handler) put(c *gin.Context) {
	var req putRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.observe("put", "invalid")
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) {
			h.validationFailed(c, &ValidationError{Field: typeErrorField(ute), Reason: "has the wrong type"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	u, err := h.Service.Put(c.Request.Context(), c.Param("slug"), req.CaughtFamilyIDs)
	switch {
	case err == nil:
		h.observe("put", "ok")
		c.JSON(http.StatusOK, u)
	case IsValidation(err):
		h.observe("put", "invalid")
		h.validationFailed(c, err)
	default:
		h.observe("put", "error")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
	}
}

func (h *Handler) validationFailed(c *gin.Context, err error) {
	var ve *ValidationError
	errors.As(err, &ve)
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "validation failed",
		"details": []*ValidationError{ve},
	})
}

func typeErrorField(ute *json.UnmarshalTypeError) string {
	if ute.Field == "" {
		return "body"
	}
	return ute.Field
}

func (h *Handler) observe(op, outcome string) {
	if h.Metrics != nil {
		h.Metrics.IncRecordOp(op, outcome)
	}
}
