// Package feedback defines the meetup feedback domain: attendees, feedback
// submissions and records, field validation, and list filtering.
//
// The remote feedback API owns every record. This package only describes the
// shapes exchanged with it and the pure rules applied on this side of the
// boundary.
package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	// ErrValidation classifies a request the remote API rejected as invalid.
	ErrValidation = errors.New("feedback: validation failed")
	// ErrNetwork classifies a remote call that failed in transport or on the
	// server side.
	ErrNetwork = errors.New("feedback: network failure")
	// ErrNotFound classifies a lookup for a record that does not exist.
	ErrNotFound = errors.New("feedback: not found")
)

// Experience is the fixed rating an attendee gives the event.
type Experience string

const (
	ExperienceExcellent Experience = "Excellent"
	ExperienceGood      Experience = "Good"
	ExperienceFair      Experience = "Fair"
	ExperiencePoor      Experience = "Poor"
)

// Experiences lists the ratings in display order.
func Experiences() []Experience {
	return []Experience{ExperienceExcellent, ExperienceGood, ExperienceFair, ExperiencePoor}
}

// ParseExperience matches a rating exactly; ratings are case sensitive on
// the wire.
func ParseExperience(value string) (Experience, bool) {
	for _, exp := range Experiences() {
		if string(exp) == value {
			return exp, true
		}
	}
	return "", false
}

// Attendee is the identity record a feedback submission refers to.
type Attendee struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UnmarshalJSON accepts both `_id` and `id` for the identifier.
func (a *Attendee) UnmarshalJSON(data []byte) error {
	var raw struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.ID = firstNonEmpty(raw.MongoID, raw.ID)
	a.Name = raw.Name
	a.Email = raw.Email
	return nil
}

// HasID reports whether the attendee already exists remotely.
func (a Attendee) HasID() bool {
	return strings.TrimSpace(a.ID) != ""
}

// Submission is the payload sent once per successful wizard submission.
type Submission struct {
	AttendeeID   string     `json:"attendeeId"`
	Expectations string     `json:"expectations"`
	Experience   Experience `json:"experience"`
	KeyTakeaways string     `json:"keyTakeaways"`
	Improvements string     `json:"improvements"`
}

// RecordAttendee is the attendee summary embedded in a feedback record.
type RecordAttendee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Record is a feedback entry as returned by the remote API.
type Record struct {
	ID           string         `json:"_id"`
	Attendee     RecordAttendee `json:"attendee"`
	Expectations string         `json:"expectations"`
	Experience   Experience     `json:"experience"`
	KeyTakeaways string         `json:"keyTakeaways"`
	Improvements string         `json:"improvements"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// UnmarshalJSON accepts both `_id` and `id` for the identifier and tolerates
// a missing createdAt.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var raw struct {
		plain
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Record(raw.plain)
	r.ID = firstNonEmpty(r.ID, raw.ID)
	return nil
}

// Client is the remote feedback API capability. Implementations perform no
// retries and no caching; every failure is returned to the caller.
type Client interface {
	CreateAttendee(ctx context.Context, name, email string) (Attendee, error)
	GetAttendeeByCode(ctx context.Context, code string) (Attendee, error)
	SubmitFeedback(ctx context.Context, submission Submission) (Record, error)
	ListFeedback(ctx context.Context) ([]Record, error)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
