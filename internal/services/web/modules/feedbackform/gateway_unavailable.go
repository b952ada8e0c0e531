package feedbackform

import (
	"context"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
	apperrors "github.com/techhubafrica/meetup-feedback/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func errUnavailable() error {
	return apperrors.EK(apperrors.KindUnavailable, "web.error.unavailable", "feedback api is not configured")
}

func (unavailableGateway) CreateAttendee(context.Context, string, string) (feedback.Attendee, error) {
	return feedback.Attendee{}, errUnavailable()
}

func (unavailableGateway) GetAttendeeByCode(context.Context, string) (feedback.Attendee, error) {
	return feedback.Attendee{}, errUnavailable()
}

func (unavailableGateway) SubmitFeedback(context.Context, feedback.Submission) (feedback.Record, error) {
	return feedback.Record{}, errUnavailable()
}

func (unavailableGateway) ListFeedback(context.Context) ([]feedback.Record, error) {
	return nil, errUnavailable()
}
