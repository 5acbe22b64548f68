package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amezghal/careergate/internal/audit"
	"github.com/amezghal/careergate/pkg/errors"
	"github.com/amezghal/careergate/pkg/response"
)

// AuditHandler exposes the auth audit trail to administrators.
type AuditHandler struct {
	service *audit.Service
}

// NewAuditHandler constructs an audit handler.
func NewAuditHandler(service *audit.Service) *AuditHandler {
	return &AuditHandler{service: service}
}

// GET /admin/audit
func (h *AuditHandler) List(c *gin.Context) {
	if h.service == nil {
		response.Error(c, errors.ErrNotFound)
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	events, err := h.service.List(c.Request.Context(), audit.Query{
		Action: c.Query("action"),
		Email:  c.Query("email"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		response.Error(c, errors.ErrInternalServer.WithInternal(err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"events": events})
}
