package wizard

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
)

const tracerName = "github.com/techhubafrica/meetup-feedback/internal/feedback/wizard"

// OutcomeKind tags how a submission ended.
type OutcomeKind string

const (
	OutcomeSuccess        OutcomeKind = "success"
	OutcomeAttendeeFailed OutcomeKind = "attendee_failed"
	OutcomeFeedbackFailed OutcomeKind = "feedback_failed"
)

// Outcome is the result of Submit.
//
// For OutcomeFeedbackFailed, Attendee carries the attendee used for the
// feedback call, including one created during this attempt.
type Outcome struct {
	Kind     OutcomeKind
	Attendee feedback.Attendee
	Record   feedback.Record
	Err      error
}

// Failed reports whether the submission did not complete.
func (o Outcome) Failed() bool { return o.Kind != OutcomeSuccess }

// Progress is reported as Submit moves through its phases. Created is set
// once, right after the attendee was created.
type Progress struct {
	Phase    Phase
	Created  bool
	Attendee feedback.Attendee
}

// ProgressFunc receives progress reports. It may be nil.
type ProgressFunc func(Progress)

// Submit runs the two-phase submission: create the attendee when it has no
// id, then submit the feedback for it. The calls are sequential and the
// feedback call is skipped when creation fails.
func Submit(ctx context.Context, client feedback.Client, attendee feedback.Attendee, values feedback.Values, progress ProgressFunc) Outcome {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "wizard.Submit")
	defer span.End()

	report := func(p Progress) {
		if progress != nil {
			progress(p)
		}
	}
	finish := func(out Outcome) Outcome {
		span.SetAttributes(attribute.String("feedback.outcome", string(out.Kind)))
		if out.Err != nil {
			span.RecordError(out.Err)
			span.SetStatus(codes.Error, string(out.Kind))
		}
		return out
	}

	if !attendee.HasID() {
		report(Progress{Phase: PhaseCreatingProfile})
		created, err := client.CreateAttendee(ctx, values[feedback.FieldName], values[feedback.FieldEmail])
		if err != nil {
			return finish(Outcome{Kind: OutcomeAttendeeFailed, Err: fmt.Errorf("create attendee: %w", err)})
		}
		if !created.HasID() {
			return finish(Outcome{Kind: OutcomeAttendeeFailed, Err: fmt.Errorf("create attendee: %w: response has no id", feedback.ErrNetwork)})
		}
		attendee = created
		span.SetAttributes(attribute.Bool("feedback.attendee_created", true))
		report(Progress{Phase: PhaseCreatingProfile, Created: true, Attendee: attendee})
	}

	report(Progress{Phase: PhaseSubmittingFeedback, Attendee: attendee})
	record, err := client.SubmitFeedback(ctx, buildSubmission(attendee.ID, values))
	if err != nil {
		return finish(Outcome{Kind: OutcomeFeedbackFailed, Attendee: attendee, Err: fmt.Errorf("submit feedback: %w", err)})
	}
	return finish(Outcome{Kind: OutcomeSuccess, Attendee: attendee, Record: record})
}
