package mw

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie names the cookie carrying the anonymous session id used by
// the disclosure gate and the admin login. The id itself grants nothing; it
// only keys the server-side session state.
const SessionCookie = "pm_session"

// sessionKey is the gin context key holding the resolved session id.
const sessionKey = "session_id"

// Session ensures every request carries a session id, minting a new one for
// first-time visitors.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

// SessionID returns the request's session id.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
