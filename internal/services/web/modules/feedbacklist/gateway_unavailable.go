package feedbacklist

import (
	"context"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
	apperrors "github.com/techhubafrica/meetup-feedback/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) ListFeedback(context.Context) ([]feedback.Record, error) {
	return nil, apperrors.EK(apperrors.KindUnavailable, "web.error.unavailable", "feedback api is not configured")
}
