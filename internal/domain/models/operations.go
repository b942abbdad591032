// internal/domain/models/operations.go
package models

import "time"

// Event is a scheduled church event. The calendar keys off StartDate.
type Event struct {
	Meta        `yaml:",inline"`
	Title       string    `yaml:"title"`
	StartDate   time.Time `yaml:"start_date"`
	EndDate     time.Time `yaml:"end_date"`
	Location    string    `yaml:"location"`
	Type        string    `yaml:"type"`
	Attendees   int       `yaml:"attendees"`
	Status      string    `yaml:"status"`
	Description string    `yaml:"description"`
}

// DateLabel renders the event's date range the way the calendar cards show it,
// e.g. "Mar 15-18, 2024" or "May 12, 2024".
func (e Event) DateLabel() string {
	start, end := e.StartDate, e.EndDate
	if end.IsZero() || !end.After(start) {
		return start.Format("Jan 2, 2006")
	}
	if start.Year() == end.Year() && start.Month() == end.Month() {
		return start.Format("Jan 2") + "-" + end.Format("2, 2006")
	}
	if start.Year() == end.Year() {
		return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
	}
	return start.Format("Jan 2, 2006") + " - " + end.Format("Jan 2, 2006")
}

// Memo is an internal circular.
type Memo struct {
	Meta     `yaml:",inline"`
	Subject  string    `yaml:"subject"`
	From     string    `yaml:"from"`
	To       string    `yaml:"to"`
	Date     time.Time `yaml:"date"`
	Priority string    `yaml:"priority"`
	Status   string    `yaml:"status"`
	Read     int       `yaml:"read"`
	Body     string    `yaml:"body"`
}

// Document is an entry in the document library. Only metadata is kept.
type Document struct {
	Meta        `yaml:",inline"`
	Name        string    `yaml:"name"`
	FileType    string    `yaml:"file_type"`
	Category    string    `yaml:"category"`
	Size        string    `yaml:"size"`
	UploadedBy  string    `yaml:"uploaded_by"`
	Date        time.Time `yaml:"date"`
	Downloads   int       `yaml:"downloads"`
	Description string    `yaml:"description"`
}

// SMSTemplate is a reusable bulk SMS body.
type SMSTemplate struct {
	Meta    `yaml:",inline"`
	Slug    string `yaml:"slug"`
	Name    string `yaml:"name"`
	Content string `yaml:"content"`
}

// SMSMessage is an entry in the bulk SMS outbox history.
type SMSMessage struct {
	Meta       `yaml:",inline"`
	BatchID    string    `yaml:"batch_id"`
	Recipients string    `yaml:"recipients"`
	Message    string    `yaml:"message"`
	SentAt     time.Time `yaml:"sent_at"`
	Status     string    `yaml:"status"`
}

// Notification is shown in the header bell modal.
type Notification struct {
	Meta    `yaml:",inline"`
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
	Type    string `yaml:"type"`
	Time    string `yaml:"time"`
	Read    bool   `yaml:"read"`
}

// Activity is an entry in the dashboard's recent activity feed.
type Activity struct {
	Meta    `yaml:",inline"`
	Message string `yaml:"message"`
	Badge   string `yaml:"badge"`
	Time    string `yaml:"time"`
}
