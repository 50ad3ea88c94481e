package audit

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/2beens/healthtrack/internal/auth"
	"github.com/2beens/healthtrack/pkg"
)

const maxUserAgentLen = 255

// Details is the free form payload of an audit entry, stored as JSON.
type Details map[string]any

type Entry struct {
	ID        int64           `json:"id"`
	UserID    *int            `json:"user_id"`
	Username  *string         `json:"username"`
	Action    string          `json:"action"`
	Details   json.RawMessage `json:"details"`
	IP        *string         `json:"ip"`
	UserAgent *string         `json:"user_agent"`
	RequestID *string         `json:"request_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewEntry describes the request r performing action.
// Details that cannot be marshaled are dropped.
func NewEntry(r *http.Request, action string, details Details) *Entry {
	entry := &Entry{
		Action: action,
	}

	if session := auth.SessionFromContext(r.Context()); session != nil {
		userID, username := session.UserID, session.Username
		entry.UserID = &userID
		entry.Username = &username
	}

	if ip, err := pkg.ReadUserIP(r); err == nil && ip != "" {
		entry.IP = &ip
	}
	if ua := r.Header.Get("User-Agent"); ua != "" {
		if runes := []rune(ua); len(runes) > maxUserAgentLen {
			ua = string(runes[:maxUserAgentLen])
		}
		entry.UserAgent = &ua
	}
	if reqID := RequestIDFromContext(r.Context()); reqID != "" {
		entry.RequestID = &reqID
	}

	if len(details) > 0 {
		if detailsJson, err := json.Marshal(details); err == nil {
			entry.Details = detailsJson
		}
	}

	return entry
}
