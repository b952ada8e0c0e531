// Package wizard implements the three-step feedback form as an explicit
// state machine, plus the submission workflow that creates the attendee (when
// needed) and then sends the feedback.
//
// A Wizard is not safe for concurrent use. Callers serialize access per
// visitor, normally through the wizard session store.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/techhubafrica/meetup-feedback/internal/feedback"
)

var (
	// ErrLocked is returned while a submission is in flight or already done,
	// and when editing identity fields of a pre-identified attendee.
	ErrLocked = errors.New("wizard: locked")
	// ErrStepInvalid is returned when the current step's fields fail
	// validation. Field errors are available through Errors.
	ErrStepInvalid = errors.New("wizard: step has invalid fields")
	// ErrInvalidTransition is returned when an event has no transition from
	// the current state.
	ErrInvalidTransition = errors.New("wizard: invalid transition")
	// ErrFieldNotEditable is returned when a field does not belong to the
	// current step.
	ErrFieldNotEditable = errors.New("wizard: field not editable in this step")
)

// State is a wizard state.
type State string

const (
	StateIdentity         State = "identity"
	StateInitialFeedback  State = "initial_feedback"
	StateDetailedFeedback State = "detailed_feedback"
	StateSubmitting       State = "submitting"
	StateSubmitted        State = "submitted"
	StateSubmitError      State = "submit_error"
)

// Event drives a transition.
type Event string

const (
	EventNext            Event = "next"
	EventBack            Event = "back"
	EventSubmit          Event = "submit"
	EventSubmitFailed    Event = "submit_failed"
	EventSubmitSucceeded Event = "submit_succeeded"
	EventEdit            Event = "edit"
)

// Phase reports how far a submission got.
type Phase string

const (
	PhaseIdle               Phase = "idle"
	PhaseCreatingProfile    Phase = "creating-profile"
	PhaseSubmittingFeedback Phase = "submitting-feedback"
	PhaseSuccess            Phase = "success"
	PhaseError              Phase = "error"
)

// StepCount is the number of visible form steps.
const StepCount = 3

type transitionKey struct {
	from  State
	event Event
}

// transitions is the complete table. Guards live in the Wizard methods.
var transitions = map[transitionKey]State{
	{StateIdentity, EventNext}:              StateInitialFeedback,
	{StateInitialFeedback, EventNext}:       StateDetailedFeedback,
	{StateInitialFeedback, EventBack}:       StateIdentity,
	{StateDetailedFeedback, EventBack}:      StateInitialFeedback,
	{StateDetailedFeedback, EventSubmit}:    StateSubmitting,
	{StateSubmitting, EventSubmitFailed}:    StateSubmitError,
	{StateSubmitting, EventSubmitSucceeded}: StateSubmitted,
	{StateSubmitError, EventSubmit}:         StateSubmitting,
	{StateSubmitError, EventBack}:           StateInitialFeedback,
	{StateSubmitError, EventEdit}:           StateDetailedFeedback,
}

// Transition looks up the target state for event from state.
func Transition(from State, event Event) (State, bool) {
	to, ok := transitions[transitionKey{from: from, event: event}]
	return to, ok
}

// StepOf maps a state to its visible step number, 1 through 3.
func StepOf(state State) int {
	switch state {
	case StateIdentity:
		return 1
	case StateInitialFeedback:
		return 2
	default:
		return 3
	}
}

// StepFields lists the inputs shown on a step.
func StepFields(step int) []feedback.Field {
	switch step {
	case 1:
		return []feedback.Field{feedback.FieldName, feedback.FieldEmail}
	case 2:
		return []feedback.Field{feedback.FieldExpectations, feedback.FieldExperience}
	case 3:
		return []feedback.Field{feedback.FieldKeyTakeaways, feedback.FieldImprovements}
	default:
		return nil
	}
}

// StepTitle is the heading shown for a step.
func StepTitle(step int) string {
	switch step {
	case 1:
		return "Personal Information"
	case 2:
		return "Initial Feedback"
	case 3:
		return "Detailed Feedback"
	default:
		return ""
	}
}

// Wizard holds one visitor's form progress.
type Wizard struct {
	state          State
	values         feedback.Values
	errors         feedback.FieldErrors
	stepCompleted  int
	phase          Phase
	attendee       feedback.Attendee
	identityLocked bool
}

// New starts a wizard at the identity step. An attendee with an id
// pre-fills and locks the identity fields.
func New(attendee feedback.Attendee) *Wizard {
	w := &Wizard{
		state:  StateIdentity,
		values: feedback.Values{},
		errors: feedback.FieldErrors{},
		phase:  PhaseIdle,
	}
	if attendee.HasID() {
		w.attendee = attendee
		w.identityLocked = true
		w.values[feedback.FieldName] = strings.TrimSpace(attendee.Name)
		w.values[feedback.FieldEmail] = strings.TrimSpace(attendee.Email)
	}
	return w
}

// Snapshot is the serializable form of a Wizard.
type Snapshot struct {
	State          State                `json:"state"`
	Values         feedback.Values      `json:"values,omitempty"`
	Errors         feedback.FieldErrors `json:"errors,omitempty"`
	StepCompleted  int                  `json:"stepCompleted,omitempty"`
	Phase          Phase                `json:"phase"`
	Attendee       feedback.Attendee    `json:"attendee"`
	IdentityLocked bool                 `json:"identityLocked,omitempty"`
}

// Restore rebuilds a Wizard from a snapshot.
func Restore(s Snapshot) (*Wizard, error) {
	switch s.State {
	case StateIdentity, StateInitialFeedback, StateDetailedFeedback, StateSubmitting, StateSubmitted, StateSubmitError:
	default:
		return nil, fmt.Errorf("restore wizard: unknown state %q", s.State)
	}
	phase := s.Phase
	if phase == "" {
		phase = PhaseIdle
	}
	w := &Wizard{
		state:          s.State,
		values:         s.Values.Clone(),
		errors:         feedback.FieldErrors{},
		stepCompleted:  s.StepCompleted,
		phase:          phase,
		attendee:       s.Attendee,
		identityLocked: s.IdentityLocked,
	}
	for field, msg := range s.Errors {
		w.errors[field] = msg
	}
	return w, nil
}

// Snapshot captures the wizard for storage.
func (w *Wizard) Snapshot() Snapshot {
	return Snapshot{
		State:          w.state,
		Values:         w.values.Clone(),
		Errors:         w.Errors(),
		StepCompleted:  w.stepCompleted,
		Phase:          w.phase,
		Attendee:       w.attendee,
		IdentityLocked: w.identityLocked,
	}
}

func (w *Wizard) State() State { return w.state }

// Step reports the visible step. Submission states stay on the last step.
func (w *Wizard) Step() int { return StepOf(w.state) }

func (w *Wizard) Phase() Phase { return w.phase }

func (w *Wizard) Attendee() feedback.Attendee { return w.attendee }

// IdentityLocked reports whether name and email came from a known attendee.
func (w *Wizard) IdentityLocked() bool { return w.identityLocked }

// Locked reports whether the wizard rejects edits and navigation.
func (w *Wizard) Locked() bool {
	return w.state == StateSubmitting || w.state == StateSubmitted
}

// Value returns the current value of field.
func (w *Wizard) Value(field feedback.Field) string { return w.values[field] }

// Values returns a copy of every entered value.
func (w *Wizard) Values() feedback.Values { return w.values.Clone() }

// Errors returns a copy of the current field errors.
func (w *Wizard) Errors() feedback.FieldErrors {
	out := make(feedback.FieldErrors, len(w.errors))
	for field, msg := range w.errors {
		out[field] = msg
	}
	return out
}

// TakeStepCompleted returns the step that was just completed and clears it,
// so the notice renders once. Zero means no notice.
func (w *Wizard) TakeStepCompleted() int {
	step := w.stepCompleted
	w.stepCompleted = 0
	return step
}

// Set stores a trimmed value for a field on the current step and
// re-validates it. Editing a step 3 field after a failed submit moves the
// wizard back to the detailed step.
func (w *Wizard) Set(field feedback.Field, value string) error {
	if w.Locked() {
		return ErrLocked
	}
	if !w.editable(field) {
		return fmt.Errorf("set %s: %w", field, ErrFieldNotEditable)
	}
	if w.identityLocked && isIdentityField(field) {
		return fmt.Errorf("set %s: %w", field, ErrLocked)
	}
	value = strings.TrimSpace(value)
	if isIdentityField(field) && value != w.values[field] {
		// A different person; the attendee captured by a previous attempt no
		// longer applies.
		w.attendee = feedback.Attendee{}
	}
	w.values[field] = value
	if msg := feedback.ValidateField(field, value); msg != "" {
		w.errors[field] = msg
	} else {
		delete(w.errors, field)
	}
	if w.state == StateSubmitError {
		if to, ok := Transition(w.state, EventEdit); ok {
			w.state = to
			w.phase = PhaseIdle
		}
	}
	return nil
}

// Next validates the current step and advances when every field passes.
// On failure the step and values are unchanged and ErrStepInvalid is
// returned.
func (w *Wizard) Next() error {
	if w.Locked() {
		return ErrLocked
	}
	to, ok := Transition(w.state, EventNext)
	if !ok {
		return fmt.Errorf("next from %s: %w", w.state, ErrInvalidTransition)
	}
	step := w.Step()
	if !w.validate(StepFields(step)...) {
		return ErrStepInvalid
	}
	w.state = to
	w.stepCompleted = step
	return nil
}

// Back returns to the previous step without validating.
func (w *Wizard) Back() error {
	if w.Locked() {
		return ErrLocked
	}
	to, ok := Transition(w.state, EventBack)
	if !ok {
		return fmt.Errorf("back from %s: %w", w.state, ErrInvalidTransition)
	}
	w.state = to
	w.phase = PhaseIdle
	return nil
}

// BeginSubmit validates every field and moves to submitting. The caller
// persists the wizard before running Submit so concurrent requests see the
// lock.
func (w *Wizard) BeginSubmit() error {
	if w.Locked() {
		return ErrLocked
	}
	to, ok := Transition(w.state, EventSubmit)
	if !ok {
		return fmt.Errorf("submit from %s: %w", w.state, ErrInvalidTransition)
	}
	if !w.validate(feedback.Fields()...) {
		return ErrStepInvalid
	}
	w.state = to
	if w.attendee.HasID() {
		w.phase = PhaseSubmittingFeedback
	} else {
		w.phase = PhaseCreatingProfile
	}
	return nil
}

// Progress records an in-flight submission phase. A created attendee is
// captured so a later retry does not create it again.
func (w *Wizard) Progress(p Progress) error {
	if w.state != StateSubmitting {
		return fmt.Errorf("progress in %s: %w", w.state, ErrInvalidTransition)
	}
	if p.Phase != "" {
		w.phase = p.Phase
	}
	if p.Created && p.Attendee.HasID() {
		w.attendee.ID = p.Attendee.ID
	}
	return nil
}

// Finish applies a submission outcome.
func (w *Wizard) Finish(outcome Outcome) error {
	event := EventSubmitFailed
	if outcome.Kind == OutcomeSuccess {
		event = EventSubmitSucceeded
	}
	to, ok := Transition(w.state, event)
	if !ok {
		return fmt.Errorf("finish from %s: %w", w.state, ErrInvalidTransition)
	}
	w.state = to
	switch outcome.Kind {
	case OutcomeSuccess:
		w.phase = PhaseSuccess
	case OutcomeFeedbackFailed:
		w.phase = PhaseError
		if outcome.Attendee.HasID() {
			w.attendee.ID = outcome.Attendee.ID
		}
	default:
		w.phase = PhaseError
	}
	return nil
}

// Submission builds the feedback payload for attendeeID from the entered
// values. The experience value is sent verbatim.
func (w *Wizard) Submission(attendeeID string) feedback.Submission {
	return buildSubmission(attendeeID, w.values)
}

func buildSubmission(attendeeID string, values feedback.Values) feedback.Submission {
	return feedback.Submission{
		AttendeeID:   attendeeID,
		Expectations: values[feedback.FieldExpectations],
		Experience:   feedback.Experience(values[feedback.FieldExperience]),
		KeyTakeaways: values[feedback.FieldKeyTakeaways],
		Improvements: values[feedback.FieldImprovements],
	}
}

func (w *Wizard) validate(fields ...feedback.Field) bool {
	errs := feedback.ValidateFields(w.values, fields...)
	for _, field := range fields {
		if msg, ok := errs[field]; ok {
			w.errors[field] = msg
		} else {
			delete(w.errors, field)
		}
	}
	return !errs.Any()
}

func (w *Wizard) editable(field feedback.Field) bool {
	for _, f := range StepFields(w.Step()) {
		if f == field {
			return true
		}
	}
	return false
}

func isIdentityField(field feedback.Field) bool {
	return field == feedback.FieldName || field == feedback.FieldEmail
}
