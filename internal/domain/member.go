package domain

import (
	"strings"
	"time"
)

type NotificationStatus string

const (
	NotificationNone    NotificationStatus = "none"
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// Notification is the outcome of the welcome e-mail sent on registration.
type Notification struct {
	Status NotificationStatus `json:"status"`
	Error  string             `json:"error,omitempty"`
}

type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
	// Discount is a percentage between 0 and 100.
	Discount     int          `json:"discount"`
	Notification Notification `json:"notification"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Matches reports whether the member's name contains q (case-insensitive)
// or the phone number contains q.
func (m Member) Matches(q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Name), strings.ToLower(q)) ||
		strings.Contains(m.Phone, q)
}
