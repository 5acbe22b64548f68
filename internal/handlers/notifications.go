package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amezghal/careergate/internal/guard"
	"github.com/amezghal/careergate/internal/notifications"
	"github.com/amezghal/careergate/pkg/errors"
	"github.com/amezghal/careergate/pkg/response"
)

// NotificationHandler exposes the per-session notification list.
type NotificationHandler struct {
	service *notifications.Service
	hub     *notifications.Hub
}

// NewNotificationHandler constructs a notification handler.
func NewNotificationHandler(service *notifications.Service, hub *notifications.Hub) *NotificationHandler {
	return &NotificationHandler{service: service, hub: hub}
}

// GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	sess, ok := guard.SessionFrom(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	items := h.service.List(c.Request.Context(), sess.ID, sess.Token)
	response.Success(c, http.StatusOK, gin.H{"notifications": items})
}

// POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	sess, ok := guard.SessionFrom(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	id := c.Param("id")
	if id == "" {
		response.Error(c, errors.NewBadRequest("notification id is required"))
		return
	}

	items := h.service.MarkRead(c.Request.Context(), sess.ID, sess.Token, id)
	response.Success(c, http.StatusOK, gin.H{"notifications": items})
}

// DELETE /notifications/clear-read
func (h *NotificationHandler) ClearRead(c *gin.Context) {
	sess, ok := guard.SessionFrom(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	items := h.service.ClearRead(c.Request.Context(), sess.ID, sess.Token)
	response.Success(c, http.StatusOK, gin.H{"notifications": items})
}

// GET /notifications/stream upgrades to a websocket that pushes read and
// clear events for the caller's session.
func (h *NotificationHandler) Stream(c *gin.Context) {
	if h.hub == nil {
		response.Error(c, errors.ErrNotFound)
		return
	}

	sess, ok := guard.SessionFrom(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.hub.Serve(sess.ID, c.Writer, c.Request); err != nil {
		// The upgrader already wrote the handshake failure to the client.
		c.Abort()
	}
}
