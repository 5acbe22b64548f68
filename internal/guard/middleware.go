package guard

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/amezghal/careergate/internal/session"
	"github.com/amezghal/careergate/pkg/metrics"
	"github.com/amezghal/careergate/pkg/response"
)

// CtxSessionKey is where the middleware stashes the decoded session for
// downstream handlers.
const CtxSessionKey = "portalSession"

// Middleware applies the route guard decision table ahead of portal page
// rendering. A corrupted cookie is evicted on the spot (fail closed) and the
// request proceeds as logged out.
func Middleware(codec *session.Codec, manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := codec.FromRequest(c.Request)
		loggedIn := err == nil

		if errors.Is(err, session.ErrCorrupted) {
			codec.Clear(c)
			if manager != nil {
				manager.NoteForcedLogout(c.Request.Context(), c.ClientIP(), c.Request.UserAgent())
			}
		}

		decision := Decide(loggedIn, sess.User.Role, c.Request.URL.Path)
		if !decision.Allow {
			metrics.GuardDecisions.WithLabelValues("redirect").Inc()
			response.Redirect(c, decision.Location)
			c.Abort()
			return
		}

		metrics.GuardDecisions.WithLabelValues("allow").Inc()
		if loggedIn {
			c.Set(CtxSessionKey, sess)
		}
		c.Next()
	}
}

// SessionFrom extracts the session placed in the context by the guard or the
// session-required middleware.
func SessionFrom(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(CtxSessionKey)
	if !ok {
		return session.Session{}, false
	}
	sess, ok := v.(session.Session)
	return sess, ok
}
