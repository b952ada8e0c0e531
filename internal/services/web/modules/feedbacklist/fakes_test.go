package feedbacklist

import (
	"context"
	"sync"
	"time"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
)

type fakeGateway struct {
	mu      sync.Mutex
	records []feedback.Record
	err     error
	calls   int
}

func (f *fakeGateway) ListFeedback(context.Context) ([]feedback.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]feedback.Record(nil), f.records...), nil
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func sampleRecords() []feedback.Record {
	return []feedback.Record{
		{
			ID:           "r1",
			Attendee:     feedback.RecordAttendee{Name: "Jo Doe"},
			Expectations: "Learn about systems design",
			Experience:   feedback.ExperienceGood,
			KeyTakeaways: "Great talks on scaling",
			Improvements: "More networking time",
			CreatedAt:    time.Date(2025, 3, 15, 18, 30, 0, 0, time.UTC),
		},
		{
			ID:           "r2",
			Attendee:     feedback.RecordAttendee{Name: "Ama Mensah"},
			Expectations: "Meet other Go developers",
			Experience:   feedback.ExperienceExcellent,
			KeyTakeaways: "Observability matters",
			Improvements: "Bigger venue please",
			CreatedAt:    time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:           "r3",
			Attendee:     feedback.RecordAttendee{Name: "Kofi"},
			Expectations: "Hear about scaling startups",
			Experience:   feedback.ExperienceGood,
			KeyTakeaways: "Hiring advice was useful",
			Improvements: "Start on time",
		},
	}
}
