package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"pm-dashboard-backend/internal/mw"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PostLogin checks the shared dashboard credentials and marks the caller's
// session as admin.
func (h *Handler) PostLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.Security.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.Security.AdminPassword)) == 1
	if !userOK || !passOK {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	h.setAdmin(mw.SessionID(c), true)
	c.JSON(http.StatusOK, gin.H{"role": "admin"})
}

// PostLogout drops the caller's admin session.
func (h *Handler) PostLogout(c *gin.Context) {
	h.setAdmin(mw.SessionID(c), false)
	c.Status(http.StatusNoContent)
}

// requireAdmin guards mutating endpoints behind a logged-in session.
func (h *Handler) requireAdmin(c *gin.Context) {
	if !h.isAdmin(mw.SessionID(c)) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin login required"})
		return
	}
	c.Next()
}
