package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amezghal/careergate/internal/guard"
	"github.com/amezghal/careergate/internal/session"
	"github.com/amezghal/careergate/pkg/errors"
	"github.com/amezghal/careergate/pkg/response"
)

// AuthHandler manages the session lifecycle: login, register, logout, me.
type AuthHandler struct {
	manager *session.Manager
	codec   *session.Codec
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(manager *session.Manager, codec *session.Codec) *AuthHandler {
	return &AuthHandler{manager: manager, codec: codec}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /auth/login
//
// On success the session cookie is written and the client is redirected
// exactly once to the role landing path. On failure no cookie is written and
// no redirect happens, so the form stays populated for retry.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	sess, landing, err := h.manager.Login(c.Request.Context(), session.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.codec.Write(c, sess); err != nil {
		response.Error(c, errors.ErrInternalServer.WithInternal(err))
		return
	}

	response.Redirect(c, landing)
}

type registerRequest struct {
	Role                 string `json:"role" validate:"required"`
	FirstName            string `json:"first_name" validate:"required"`
	LastName             string `json:"last_name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	CompanyName          string `json:"company_name"`
}

// POST /auth/register
//
// Success redirects to the login entry point and never auto-authenticates.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	err := h.manager.Register(c.Request.Context(), session.RegisterInput{
		Role:                 req.Role,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		CompanyName:          req.CompanyName,
		IPAddress:            c.ClientIP(),
		UserAgent:            c.Request.UserAgent(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Redirect(c, "/auth/login")
}

// POST /auth/logout
//
// Logout succeeds unconditionally: whatever the cookie held, the client
// leaves with an expired cookie and lands on the home page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess, err := h.codec.FromRequest(c.Request); err == nil {
		h.manager.Logout(c.Request.Context(), sess, c.ClientIP(), c.Request.UserAgent())
	}

	h.codec.Clear(c)
	response.Redirect(c, "/")
}

// GET /session/me
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := guard.SessionFrom(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":         sess.User,
		"landing_path": sess.User.Role.LandingPath(),
	})
}
