package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mkraev/aeroticket/internal/domain"
	"github.com/mkraev/aeroticket/internal/service/auth"
)

const (
	sessionCookie = "session_id"
	userIDKey     = "userID"
)

type Middleware struct {
	auth auth.AuthUseCase
}

func NewMiddleware(authSvc auth.AuthUseCase) *Middleware {
	return &Middleware{auth: authSvc}
}

// RequireAuth resolves the session cookie and stores the user id in the
// request context. Missing or expired sessions abort with 401.
func (m *Middleware) RequireAuth(c *gin.Context) {
	sessionID, err := c.Cookie(sessionCookie)
	if err != nil {
		sessionID = ""
	}

	userID, err := m.auth.Authenticate(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		c.Abort()
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

// RequireRole loads the session user and compares the role. It must run
// after RequireAuth.
func (m *Middleware) RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.auth.Profile(c.Request.Context(), currentUserID(c))
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		if user.Role != role {
			respondError(c, domain.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) int64 {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(int64)
	return userID
}
