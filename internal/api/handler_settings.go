package api

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

type endpointRequest struct {
	URL string `json:"url" binding:"required"`
}

// GetEndpoint returns the configured sheet endpoint URL.
func (h *Handler) GetEndpoint(c *gin.Context) {
	endpoint, err := h.store.EndpointURL(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": endpoint})
}

// PutEndpoint stores a new sheet endpoint URL and refetches in the
// background so the collection reflects the new source without another call.
func (h *Handler) PutEndpoint(c *gin.Context) {
	var req endpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url must be http or https"})
		return
	}

	if err := h.store.SetEndpointURL(c.Request.Context(), req.URL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.refetchInBackground()
	c.JSON(http.StatusAccepted, gin.H{"url": req.URL})
}
