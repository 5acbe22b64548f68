package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/amezghal/careergate/internal/guard"
	"github.com/amezghal/careergate/internal/session"
	apperrors "github.com/amezghal/careergate/pkg/errors"
	"github.com/amezghal/careergate/pkg/response"
)

// RequireSession enforces a valid session cookie on API endpoints. Unlike
// the page guard it answers JSON, never redirects; a corrupted cookie is
// evicted and reported as such.
func RequireSession(codec *session.Codec, manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := codec.FromRequest(c.Request)
		if err != nil {
			if errors.Is(err, session.ErrCorrupted) {
				codec.Clear(c)
				if manager != nil {
					manager.NoteForcedLogout(c.Request.Context(), c.ClientIP(), c.Request.UserAgent())
				}
				response.Error(c, apperrors.ErrSessionCorrupted)
			} else {
				response.Error(c, apperrors.ErrUnauthorized)
			}
			c.Abort()
			return
		}

		c.Set(guard.CtxSessionKey, sess)
		c.Next()
	}
}

// RequireRole restricts an endpoint to one role. It runs after
// RequireSession.
func RequireRole(role session.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := guard.SessionFrom(c)
		if !ok {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if sess.User.Role != role {
			response.Error(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
