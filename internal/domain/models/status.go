// internal/domain/models/status.go
package models

// Shared status values. Not every entity uses every value.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusRetired   = "retired"
	StatusOnLeave   = "on-leave"
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusPast      = "completed"
	StatusDraft     = "draft"
	StatusSent      = "sent"
)

// DefaultSiteName is shown in the sidebar when no site name is configured.
const DefaultSiteName = "Church Management"
