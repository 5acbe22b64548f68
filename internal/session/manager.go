package session

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amezghal/careergate/internal/audit"
	"github.com/amezghal/careergate/internal/models"
	"github.com/amezghal/careergate/internal/notifications"
	"github.com/amezghal/careergate/internal/upstream"
	apperrors "github.com/amezghal/careergate/pkg/errors"
	"github.com/amezghal/careergate/pkg/logger"
	"github.com/amezghal/careergate/pkg/metrics"
)

// AuthBackend is the slice of the upstream API the manager needs.
type AuthBackend interface {
	Login(ctx context.Context, creds upstream.Credentials) (*upstream.AuthResult, error)
	Register(ctx context.Context, input upstream.RegisterInput) (*upstream.RegisterResult, error)
}

// LoginInput carries one login attempt.
type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

// RegisterInput carries one registration attempt.
type RegisterInput struct {
	Role                 string
	FirstName            string
	LastName             string
	Email                string
	Password             string
	PasswordConfirmation string
	CompanyName          string
	IPAddress            string
	UserAgent            string
}

// Manager is the single mutation path for session state. Login, Register and
// Logout are the only operations that change what the cookie holds, so the
// "token and user change together" invariant is enforced in one place.
type Manager struct {
	backend       AuthBackend
	notifications *notifications.Service
	audit         *audit.Service
	log           *zap.Logger
}

// NewManager constructs a Manager. The audit service is optional; a nil
// value disables the trail without touching the auth flow.
func NewManager(backend AuthBackend, notifSvc *notifications.Service, auditSvc *audit.Service) (*Manager, error) {
	if backend == nil {
		return nil, errors.New("session: auth backend is required")
	}
	if notifSvc == nil {
		return nil, errors.New("session: notification service is required")
	}
	return &Manager{
		backend:       backend,
		notifications: notifSvc,
		audit:         auditSvc,
		log:           logger.WithModule("session"),
	}, nil
}

// Login authenticates against the backend. On success it returns the new
// session and the role landing path for the single post-login navigation; on
// failure prior state is untouched and the error carries the message to show.
func (m *Manager) Login(ctx context.Context, input LoginInput) (Session, string, error) {
	email := strings.TrimSpace(input.Email)

	result, err := m.backend.Login(ctx, upstream.Credentials{
		Email:    email,
		Password: input.Password,
	})
	if err != nil {
		m.recordAuth(ctx, models.AuditActionLogin, models.AuditResultFailure, email, "", input,
			map[string]any{"reason": "upstream_unreachable"})
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return Session{}, "", apperrors.ErrUpstreamUnavailable.WithInternal(err)
	}

	if !result.Status {
		m.recordAuth(ctx, models.AuditActionLogin, models.AuditResultFailure, email, "", input,
			map[string]any{"reason": "rejected"})
		metrics.AuthAttempts.WithLabelValues("failure").Inc()

		appErr := apperrors.ErrInvalidCredentials
		if msg := strings.TrimSpace(result.Message); msg != "" {
			appErr = appErr.WithMessage(msg)
		}
		return Session{}, "", appErr
	}

	// Fail closed on a half-formed response: a token without a user record
	// (or the reverse) must never become a session.
	if strings.TrimSpace(result.Token) == "" || strings.TrimSpace(result.User.Email) == "" {
		m.recordAuth(ctx, models.AuditActionLogin, models.AuditResultFailure, email, "", input,
			map[string]any{"reason": "incomplete_response"})
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return Session{}, "", apperrors.ErrUpstreamUnavailable.WithInternal(
			errors.New("session: upstream returned a partial session"))
	}

	sess := Session{
		ID:    uuid.NewString(),
		Token: result.Token,
		User: User{
			FirstName: result.User.FirstName,
			LastName:  result.User.LastName,
			Email:     result.User.Email,
			Role:      ParseRole(result.User.Role),
		},
	}

	m.notifications.Prime(ctx, sess.ID, sess.Token)

	m.recordAuth(ctx, models.AuditActionLogin, models.AuditResultSuccess, sess.User.Email, string(sess.User.Role), input, nil)
	metrics.AuthAttempts.WithLabelValues("success").Inc()

	return sess, sess.User.Role.LandingPath(), nil
}

// Register forwards a registration to the backend. Success never
// auto-authenticates; the caller redirects to the login entry point.
func (m *Manager) Register(ctx context.Context, input RegisterInput) error {
	email := strings.TrimSpace(input.Email)
	role := string(ParseRole(input.Role))

	result, err := m.backend.Register(ctx, upstream.RegisterInput{
		Role:                 role,
		FirstName:            strings.TrimSpace(input.FirstName),
		LastName:             strings.TrimSpace(input.LastName),
		Email:                email,
		Password:             input.Password,
		PasswordConfirmation: input.PasswordConfirmation,
		CompanyName:          strings.TrimSpace(input.CompanyName),
	})
	if err != nil {
		m.record(ctx, audit.Entry{
			Action: models.AuditActionRegister, Result: models.AuditResultFailure,
			Email: email, Role: role, IPAddress: input.IPAddress, UserAgent: input.UserAgent,
			Metadata: map[string]any{"reason": "upstream_unreachable"},
		})
		return apperrors.ErrUpstreamUnavailable.WithInternal(err)
	}

	if !result.Status {
		m.record(ctx, audit.Entry{
			Action: models.AuditActionRegister, Result: models.AuditResultFailure,
			Email: email, Role: role, IPAddress: input.IPAddress, UserAgent: input.UserAgent,
			Metadata: map[string]any{"reason": "rejected"},
		})

		msg := strings.TrimSpace(result.Message)
		if msg == "" {
			msg = "Registration failed"
		}
		return apperrors.NewBadRequest(msg)
	}

	m.record(ctx, audit.Entry{
		Action: models.AuditActionRegister, Result: models.AuditResultSuccess,
		Email: email, Role: role, IPAddress: input.IPAddress, UserAgent: input.UserAgent,
	})
	return nil
}

// Logout tears the session down locally: the cached notification list is
// dropped and the action audited. It never touches the network, so it
// cannot fail from the caller's perspective.
func (m *Manager) Logout(ctx context.Context, sess Session, ipAddress, userAgent string) {
	m.notifications.Forget(ctx, sess.ID)
	m.record(ctx, audit.Entry{
		Action: models.AuditActionLogout, Result: models.AuditResultSuccess,
		Email: sess.User.Email, Role: string(sess.User.Role),
		IPAddress: ipAddress, UserAgent: userAgent,
	})
}

// NoteForcedLogout audits a corrupted-cookie eviction performed by the guard.
func (m *Manager) NoteForcedLogout(ctx context.Context, ipAddress, userAgent string) {
	m.record(ctx, audit.Entry{
		Action: models.AuditActionForcedLogout, Result: models.AuditResultSuccess,
		IPAddress: ipAddress, UserAgent: userAgent,
		Metadata: map[string]any{"reason": "corrupted_session"},
	})
}

func (m *Manager) recordAuth(ctx context.Context, action, result, email, role string, input LoginInput, meta map[string]any) {
	m.record(ctx, audit.Entry{
		Action: action, Result: result, Email: email, Role: role,
		IPAddress: input.IPAddress, UserAgent: input.UserAgent, Metadata: meta,
	})
}

func (m *Manager) record(ctx context.Context, entry audit.Entry) {
	if m.audit == nil {
		return
	}
	if err := m.audit.Record(ctx, entry); err != nil {
		m.log.Warn("audit record failed", zap.String("action", entry.Action), zap.Error(err))
	}
}
