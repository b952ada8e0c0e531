package wizard

import (
	"context"
	"sync"
	"testing"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
)

type fakeClient struct {
	mu sync.Mutex

	createResp  feedback.Attendee
	createErr   error
	submitResp  feedback.Record
	submitErr   error
	calls       []string
	submissions []feedback.Submission
}

func (f *fakeClient) CreateAttendee(_ context.Context, name, email string) (feedback.Attendee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "create:"+name+":"+email)
	if f.createErr != nil {
		return feedback.Attendee{}, f.createErr
	}
	return f.createResp, nil
}

func (f *fakeClient) GetAttendeeByCode(context.Context, string) (feedback.Attendee, error) {
	return feedback.Attendee{}, feedback.ErrNotFound
}

func (f *fakeClient) SubmitFeedback(_ context.Context, submission feedback.Submission) (feedback.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "submit:"+submission.AttendeeID)
	f.submissions = append(f.submissions, submission)
	if f.submitErr != nil {
		return feedback.Record{}, f.submitErr
	}
	return f.submitResp, nil
}

func (f *fakeClient) ListFeedback(context.Context) ([]feedback.Record, error) {
	return nil, nil
}

func joDoeValues() feedback.Values {
	return feedback.Values{
		feedback.FieldName:         "Jo Doe",
		feedback.FieldEmail:        "jo@x.com",
		feedback.FieldExpectations: "Learn about systems design",
		feedback.FieldExperience:   "Good",
		feedback.FieldKeyTakeaways: "Great talks on scaling",
		feedback.FieldImprovements: "More networking time",
	}
}

// filledWizard walks a fresh wizard to the detailed step with valid values.
func filledWizard(t testing.TB, attendee feedback.Attendee) *Wizard {
	t.Helper()
	w := New(attendee)
	values := joDoeValues()
	for step := 1; step <= StepCount; step++ {
		for _, field := range StepFields(step) {
			if w.IdentityLocked() && isIdentityField(field) {
				continue
			}
			if err := w.Set(field, values[field]); err != nil {
				t.Fatalf("Set(%s) error = %v", field, err)
			}
		}
		if step < StepCount {
			if err := w.Next(); err != nil {
				t.Fatalf("Next() at step %d error = %v", step, err)
			}
		}
	}
	return w
}
