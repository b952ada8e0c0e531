package feedbackform

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
	"github.com/techhubafrica/meetup-feedback/internal/feedback/wizard"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/storage"
)

// submitCalls is the number of sequential remote calls a submission makes at
// most; the saga budget is that many API timeouts.
const submitCalls = 2

type service struct {
	gateway    feedback.Client
	store      storage.WizardStore
	apiTimeout time.Duration
}

func newService(gateway feedback.Client, store storage.WizardStore, apiTimeout time.Duration) service {
	return service{gateway: gateway, store: store, apiTimeout: apiTimeout}
}

// session is a loaded wizard with its store id.
type session struct {
	ID     string
	Wizard *wizard.Wizard
}

// submitResult reports a finished submission. CreatedAttendee is set when
// this attempt created the attendee.
type submitResult struct {
	Wizard          *wizard.Wizard
	Outcome         wizard.Outcome
	CreatedAttendee bool
}

// detached returns a context that survives the browser disconnecting, so a
// remote call whose side effect may already have happened is not aborted.
func (s service) detached(ctx context.Context, calls int) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), time.Duration(calls)*s.apiTimeout)
}

func (s service) load(ctx context.Context, id string) (session, error) {
	snap, err := s.store.Get(ctx, id)
	if err != nil {
		return session{}, err
	}
	w, err := wizard.Restore(snap)
	if err != nil {
		return session{}, fmt.Errorf("restore wizard session: %w", err)
	}
	return session{ID: id, Wizard: w}, nil
}

// start stores a fresh wizard, replacing previousID when set.
func (s service) start(ctx context.Context, attendee feedback.Attendee, previousID string) (session, error) {
	w := wizard.New(attendee)
	id, err := s.store.Create(ctx, w.Snapshot())
	if err != nil {
		return session{}, fmt.Errorf("create wizard session: %w", err)
	}
	if previousID != "" {
		if err := s.store.Delete(ctx, previousID); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("session", previousID).Msg("drop replaced wizard session")
		}
	}
	return session{ID: id, Wizard: w}, nil
}

// lookupAttendee resolves a returning attendee code.
func (s service) lookupAttendee(ctx context.Context, code string) (feedback.Attendee, error) {
	ctx, cancel := s.detached(ctx, 1)
	defer cancel()
	attendee, err := s.gateway.GetAttendeeByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return feedback.Attendee{}, fmt.Errorf("lookup attendee: %w", err)
	}
	if !attendee.HasID() {
		return feedback.Attendee{}, fmt.Errorf("lookup attendee: %w", feedback.ErrNotFound)
	}
	return attendee, nil
}

// update applies fn to the stored wizard and returns the saved state, which
// is kept even when fn fails.
func (s service) update(ctx context.Context, id string, fn func(*wizard.Wizard) error) (*wizard.Wizard, error) {
	snap, fnErr := s.store.Update(ctx, id, fn)
	if snap.State == "" {
		return nil, fnErr
	}
	w, err := wizard.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("restore wizard session: %w", err)
	}
	return w, fnErr
}

// submit locks the session, runs the submission saga and records its
// outcome. It returns an error only when the submission could not start or
// its outcome could not be stored, in which case the session is dropped; a
// failed saga is reported in the result.
func (s service) submit(ctx context.Context, id string, form url.Values) (submitResult, error) {
	var attendee feedback.Attendee
	var values feedback.Values
	w, err := s.update(ctx, id, func(w *wizard.Wizard) error {
		if err := applyStepValues(w, form); err != nil {
			return err
		}
		if err := w.BeginSubmit(); err != nil {
			return err
		}
		attendee = w.Attendee()
		values = w.Values()
		return nil
	})
	if err != nil {
		return submitResult{Wizard: w}, err
	}

	callCtx, cancel := s.detached(ctx, submitCalls)
	defer cancel()
	logger := zerolog.Ctx(ctx)
	out := wizard.Submit(callCtx, s.gateway, attendee, values, func(p wizard.Progress) {
		if _, err := s.store.Update(callCtx, id, func(w *wizard.Wizard) error { return w.Progress(p) }); err != nil {
			logger.Warn().Err(err).Str("session", id).Str("phase", string(p.Phase)).Msg("record submission progress")
		}
	})

	w, err = s.update(callCtx, id, func(w *wizard.Wizard) error { return w.Finish(out) })
	if err != nil {
		// The session would stay locked in submitting until it expires.
		logger.Error().Err(err).Str("session", id).Str("outcome", string(out.Kind)).Msg("record submission outcome")
		if delErr := s.store.Delete(callCtx, id); delErr != nil {
			logger.Warn().Err(delErr).Str("session", id).Msg("drop wizard session stuck in submitting")
		}
		return submitResult{Outcome: out}, fmt.Errorf("finish submission: %w", err)
	}
	result := submitResult{
		Wizard:          w,
		Outcome:         out,
		CreatedAttendee: !attendee.HasID() && out.Attendee.HasID(),
	}
	if out.Kind == wizard.OutcomeSuccess {
		if err := s.store.Delete(callCtx, id); err != nil {
			logger.Warn().Err(err).Str("session", id).Msg("delete submitted wizard session")
		}
	}
	return result, nil
}

// applyStepValues sets every editable field of the current step from form.
// Locked identity fields keep their prefilled values.
func applyStepValues(w *wizard.Wizard, form url.Values) error {
	for _, field := range wizard.StepFields(w.Step()) {
		if w.IdentityLocked() && isIdentityField(field) {
			continue
		}
		if err := w.Set(field, form.Get(string(field))); err != nil {
			return err
		}
	}
	return nil
}

// keepStepValues stores the current step's values posted with a Back
// request. Fields the form did not carry, or whose value did not change, are
// left alone, so going back never clears a value or flags an untouched
// field.
func keepStepValues(w *wizard.Wizard, form url.Values) error {
	for _, field := range wizard.StepFields(w.Step()) {
		if w.IdentityLocked() && isIdentityField(field) {
			continue
		}
		if !form.Has(string(field)) {
			continue
		}
		value := form.Get(string(field))
		if strings.TrimSpace(value) == w.Value(field) {
			continue
		}
		if err := w.Set(field, value); err != nil {
			return err
		}
	}
	return nil
}

func isIdentityField(field feedback.Field) bool {
	return field == feedback.FieldName || field == feedback.FieldEmail
}

func isSessionGone(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
