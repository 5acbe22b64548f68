package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amezghal/careergate/internal/guard"
	"github.com/amezghal/careergate/internal/notifications"
	"github.com/amezghal/careergate/internal/session"
	"github.com/amezghal/careergate/pkg/response"
)

// PortalHandler renders portal page payloads. Pages are JSON view models; the
// browser shell turns them into markup. Each payload carries the viewer state
// so a page render never needs a second round trip for "who am I".
type PortalHandler struct {
	notifications *notifications.Service
}

// NewPortalHandler constructs a portal page handler.
func NewPortalHandler(service *notifications.Service) *PortalHandler {
	return &PortalHandler{notifications: service}
}

type viewer struct {
	LoggedIn      bool                         `json:"logged_in"`
	User          *session.User                `json:"user,omitempty"`
	LandingPath   string                       `json:"landing_path,omitempty"`
	Notifications []notifications.Notification `json:"notifications,omitempty"`
}

func (h *PortalHandler) viewerFor(c *gin.Context) viewer {
	sess, ok := guard.SessionFrom(c)
	if !ok {
		return viewer{LoggedIn: false}
	}

	v := viewer{
		LoggedIn:    true,
		User:        &sess.User,
		LandingPath: sess.User.Role.LandingPath(),
	}
	if h.notifications != nil {
		v.Notifications = h.notifications.List(c.Request.Context(), sess.ID, sess.Token)
	}
	return v
}

// GET / serves the public home page, visible logged in or out.
func (h *PortalHandler) Home(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"page":   "home",
		"viewer": h.viewerFor(c),
	})
}

// GET /auth/login and GET /auth/register stay reachable while logged out;
// the guard redirects authenticated visitors away before they get here.
func (h *PortalHandler) LoginPage(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"page":   "auth.login",
		"viewer": h.viewerFor(c),
	})
}

func (h *PortalHandler) RegisterPage(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"page":   "auth.register",
		"viewer": h.viewerFor(c),
	})
}

// Section serves a role section page. The guard has already rejected callers
// whose role does not match, so the handler only describes the page.
func (h *PortalHandler) Section(page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"page":   page,
			"path":   c.Request.URL.Path,
			"viewer": h.viewerFor(c),
		})
	}
}
