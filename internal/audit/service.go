package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/amezghal/careergate/internal/models"
)

// Entry describes one auth-related action to record.
type Entry struct {
	Action    string
	Result    string
	Email     string
	Role      string
	IPAddress string
	UserAgent string
	Metadata  map[string]any
}

// Query filters the audit listing.
type Query struct {
	Action string
	Email  string
	Limit  int
	Offset int
}

// Service persists the gateway's auth audit trail: logins, registrations,
// logouts and forced logouts on corrupted sessions.
type Service struct {
	db *gorm.DB
}

// NewService constructs an audit service.
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, errors.New("audit: db is required")
	}
	return &Service{db: db}, nil
}

// Record writes one audit event.
func (s *Service) Record(ctx context.Context, entry Entry) error {
	action := strings.TrimSpace(entry.Action)
	if action == "" {
		return errors.New("audit: action is required")
	}

	event := models.AuditEvent{
		Action:    action,
		Result:    strings.TrimSpace(entry.Result),
		Email:     strings.TrimSpace(entry.Email),
		Role:      strings.TrimSpace(entry.Role),
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
	}
	if event.Result == "" {
		event.Result = models.AuditResultSuccess
	}

	if entry.Metadata != nil {
		data, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("audit: marshal metadata: %w", err)
		}
		event.Metadata = datatypes.JSON(data)
	}

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("audit: record event: %w", err)
	}
	return nil
}

// List returns audit events ordered by recency.
func (s *Service) List(ctx context.Context, q Query) ([]models.AuditEvent, error) {
	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.AuditEvent{})
	if action := strings.TrimSpace(q.Action); action != "" {
		tx = tx.Where("action = ?", action)
	}
	if email := strings.TrimSpace(q.Email); email != "" {
		tx = tx.Where("email = ?", email)
	}

	var events []models.AuditEvent
	if err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("audit: list events: %w", err)
	}
	return events, nil
}

// CleanupOlderThan deletes events older than the retention window and
// reports how many rows were removed.
func (s *Service) CleanupOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	result := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.AuditEvent{})
	if result.Error != nil {
		return 0, fmt.Errorf("audit: cleanup: %w", result.Error)
	}
	return result.RowsAffected, nil
}
