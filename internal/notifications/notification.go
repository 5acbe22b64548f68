package notifications

import (
	"encoding/json"
	"time"
)

// Notification is a server-issued event shown to the portal user (interview
// update, application status change). Data is an opaque structured payload
// owned by the backend; the gateway never interprets it.
type Notification struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Read      bool            `json:"read"`
	CreatedAt time.Time       `json:"created_at"`
}
