package feedbackform

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
	"github.com/techhubafrica/meetup-feedback/internal/feedback/wizard"
	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	apperrors "github.com/techhubafrica/meetup-feedback/internal/services/web/platform/errors"
	flashnotice "github.com/techhubafrica/meetup-feedback/internal/services/web/platform/flash"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/httpx"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/modulehandler"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/pagerender"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/requestmeta"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/weberror"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/wizardcookie"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
	webtemplates "github.com/techhubafrica/meetup-feedback/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service       service
	policy        requestmeta.SchemePolicy
	sessionTTL    time.Duration
	redirectDelay time.Duration
}

func newHandlers(s service, cfg Config, deps module.Dependencies) handlers {
	return handlers{
		Base:          modulehandler.NewBase(deps),
		service:       s,
		policy:        deps.SchemePolicy,
		sessionTTL:    cfg.SessionTTL,
		redirectDelay: cfg.SuccessRedirectDelay,
	}
}

// handleWizard renders the visitor's current step, starting a session when
// there is none. A lookup code that resolves replaces an idle session with
// one prefilled for the returning attendee; a failed lookup keeps it.
func (h handlers) handleWizard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	loc := h.Localizer(r)
	code := strings.TrimSpace(r.URL.Query().Get(routepath.FeedbackCodeParam))

	existingID, hasCookie := wizardcookie.Read(r)
	var current session
	var err error
	if hasCookie {
		current, err = h.service.load(ctx, existingID)
		switch {
		case err == nil:
		case isSessionGone(err):
			existingID = ""
		default:
			h.WriteError(w, r, err)
			return
		}
	}
	if current.Wizard != nil && current.Wizard.State() == wizard.StateSubmitted {
		current = session{}
	}

	var toast *webtemplates.Toast
	var attendee feedback.Attendee
	if code != "" && (current.Wizard == nil || !current.Wizard.Locked()) {
		attendee, err = h.service.lookupAttendee(ctx, code)
		if err != nil {
			toast = h.lookupFailureToast(r, loc, err)
		}
	}
	if current.Wizard == nil || attendee.HasID() {
		current, err = h.service.start(ctx, attendee, existingID)
		if err != nil {
			h.WriteError(w, r, err)
			return
		}
		wizardcookie.WriteWithPolicy(w, r, current.ID, h.sessionTTL, h.policy)
	}
	h.renderWizard(w, r, loc, http.StatusOK, current.Wizard, toast)
}

func (h handlers) lookupFailureToast(r *http.Request, loc webtemplates.Localizer, err error) *webtemplates.Toast {
	if errors.Is(err, feedback.ErrNotFound) {
		return errorToast(webtemplates.T(loc, "web.feedback.code_not_found"))
	}
	hlog.FromRequest(r).Warn().Err(err).Msg("attendee lookup failed")
	if apperrors.LocalizationKey(err) == "" {
		err = apperrors.Wrap(apperrors.KindBadGateway, "web.error.bad_gateway", err)
	}
	return errorToast(weberror.PublicMessage(loc, err))
}

// handleValidate re-validates one field and returns its error slot. Without
// a usable session the value is checked but not stored.
func (h handlers) handleValidate(w http.ResponseWriter, r *http.Request) {
	field, ok := feedback.ParseField(r.PostFormValue("field"))
	if !ok {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "web.error.invalid_input", "unknown field"))
		return
	}
	value := r.PostFormValue(string(field))
	message := feedback.ValidateField(field, value)

	if id, ok := wizardcookie.Read(r); ok {
		updated, err := h.service.update(r.Context(), id, func(w *wizard.Wizard) error {
			return w.Set(field, value)
		})
		switch {
		case err == nil:
			message = updated.Errors()[field]
		case isSessionGone(err), errors.Is(err, wizard.ErrLocked), errors.Is(err, wizard.ErrFieldNotEditable):
		default:
			h.WriteError(w, r, err)
			return
		}
	}

	var buf bytes.Buffer
	if err := webtemplates.FieldError(string(field), message).Render(r.Context(), &buf); err != nil {
		h.WriteError(w, r, err)
		return
	}
	_ = httpx.WriteHTML(w, http.StatusOK, buf.String())
}

func (h handlers) handleNext(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	completed := 0
	updated, err := h.service.update(r.Context(), id, func(w *wizard.Wizard) error {
		if err := applyStepValues(w, r.PostForm); err != nil {
			return err
		}
		if err := w.Next(); err != nil {
			return err
		}
		completed = w.TakeStepCompleted()
		return nil
	})
	if err != nil {
		h.writeStepError(w, r, updated, err)
		return
	}
	notice := flashnotice.NoticeSuccess("web.feedback.step_completed", strconv.Itoa(completed))
	h.writeStep(w, r, updated, &notice)
}

// handleBack stores the values posted with the current step and moves one
// step back whether or not they are valid.
func (h handlers) handleBack(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	updated, err := h.service.update(r.Context(), id, func(w *wizard.Wizard) error {
		if err := keepStepValues(w, r.PostForm); err != nil {
			return err
		}
		return w.Back()
	})
	if err != nil {
		h.writeStepError(w, r, updated, err)
		return
	}
	h.writeStep(w, r, updated, nil)
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	result, err := h.service.submit(r.Context(), id, r.PostForm)
	if err != nil {
		h.writeStepError(w, r, result.Wizard, err)
		return
	}
	loc := h.Localizer(r)
	out := result.Outcome
	logger := hlog.FromRequest(r)

	if out.Failed() {
		event := logger.Warn().Err(out.Err).Str("outcome", string(out.Kind))
		if out.Kind == wizard.OutcomeFeedbackFailed && result.CreatedAttendee {
			event = event.Str("orphaned_attendee_id", out.Attendee.ID)
		}
		event.Msg("feedback submission failed")
		status := apperrors.HTTPStatus(out.Err)
		if status < http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		h.renderWizard(w, r, loc, status, result.Wizard, errorToast(webtemplates.T(loc, "web.feedback.submit_failed")))
		return
	}

	logger.Info().Str("feedback_id", out.Record.ID).Str("attendee_id", out.Attendee.ID).Msg("feedback submitted")
	wizardcookie.ClearWithPolicy(w, r, h.policy)
	httpx.SetDeferredNavigation(w, routepath.FeedbackList, h.redirectDelay)
	h.WritePage(w, r, pagerender.Page{
		Title: webtemplates.T(loc, "web.feedback.success.title"),
		Fragment: webtemplates.FeedbackSuccess(webtemplates.SuccessView{
			ListURL:         routepath.FeedbackList,
			RedirectSeconds: int(h.redirectDelay.Round(time.Second) / time.Second),
		}, loc),
		Toast: successToast(webtemplates.T(loc, "web.feedback.submit_succeeded")),
	})
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

// requireSession parses the posted form and returns the wizard session id.
// Without a cookie the visitor is sent back to the wizard entry.
func (h handlers) requireSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "web.error.invalid_input", err))
		return "", false
	}
	id, ok := wizardcookie.Read(r)
	if !ok {
		httpx.WriteRedirect(w, r, routepath.Feedback)
		return "", false
	}
	return id, true
}

// writeStep answers a successful step change. HTMX swaps the new step in
// place; full form posts redirect so a reload does not repeat the POST.
func (h handlers) writeStep(w http.ResponseWriter, r *http.Request, wz *wizard.Wizard, notice *flashnotice.Notice) {
	if !httpx.IsHTMXRequest(r) {
		if notice != nil {
			flashnotice.Write(w, r, *notice, h.policy)
		}
		httpx.WriteRedirect(w, r, routepath.Feedback)
		return
	}
	loc := h.Localizer(r)
	var toast *webtemplates.Toast
	if notice != nil {
		toast = pagerender.ToastFromNotice(loc, *notice)
	}
	h.renderWizard(w, r, loc, http.StatusOK, wz, toast)
}

// writeStepError maps wizard failures onto the re-rendered step.
func (h handlers) writeStepError(w http.ResponseWriter, r *http.Request, wz *wizard.Wizard, err error) {
	if isSessionGone(err) {
		httpx.WriteRedirect(w, r, routepath.Feedback)
		return
	}
	if wz == nil {
		h.WriteError(w, r, err)
		return
	}
	loc := h.Localizer(r)
	switch {
	case errors.Is(err, wizard.ErrStepInvalid):
		status := http.StatusOK
		if httpx.IsHTMXRequest(r) {
			status = http.StatusUnprocessableEntity
		}
		h.renderWizard(w, r, loc, status, wz, errorToast(webtemplates.T(loc, "web.feedback.step_invalid")))
	case errors.Is(err, wizard.ErrLocked):
		h.renderWizard(w, r, loc, http.StatusConflict, wz, errorToast(webtemplates.T(loc, "web.feedback.locked")))
	case errors.Is(err, wizard.ErrInvalidTransition), errors.Is(err, wizard.ErrFieldNotEditable):
		h.renderWizard(w, r, loc, http.StatusConflict, wz, nil)
	default:
		h.WriteError(w, r, err)
	}
}

func (h handlers) renderWizard(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, status int, wz *wizard.Wizard, toast *webtemplates.Toast) {
	h.WritePage(w, r, pagerender.Page{
		Title:      webtemplates.T(loc, "web.feedback.title"),
		StatusCode: status,
		Fragment:   webtemplates.FeedbackWizard(wizardView(wz, loc, h.CSRFToken(r)), loc),
		Toast:      toast,
	})
}

func successToast(message string) *webtemplates.Toast {
	return &webtemplates.Toast{Kind: string(flashnotice.KindSuccess), Message: message}
}

func errorToast(message string) *webtemplates.Toast {
	return &webtemplates.Toast{Kind: string(flashnotice.KindError), Message: message}
}
