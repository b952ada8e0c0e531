package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// CSRFFieldName is the hidden form field carrying the CSRF token.
const CSRFFieldName = "gorilla.csrf.Token"

// FieldKind selects the input control for a wizard field.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindEmail    FieldKind = "email"
	FieldKindTextarea FieldKind = "textarea"
	FieldKindChoice   FieldKind = "choice"
)

// FieldView is one rendered wizard input.
type FieldView struct {
	Name    string
	Kind    FieldKind
	Value   string
	Error   string
	Options []string
	Locked  bool
}

// StepStatus is the progress state of one step dot.
type StepStatus string

const (
	StepComplete StepStatus = "complete"
	StepCurrent  StepStatus = "current"
	StepPending  StepStatus = "pending"
)

// WizardView is the rendered state of the feedback wizard.
type WizardView struct {
	Step           int
	StepCount      int
	StepTitle      string
	Steps          []StepStatus
	Fields         []FieldView
	CSRFToken      string
	Locked         bool
	PhaseMessage   string
	CanGoBack      bool
	IsLastStep     bool
	IdentityLocked bool
	ValidateURL    string
	NextURL        string
	BackURL        string
	SubmitURL      string
}

type fieldCopy struct {
	label       string
	placeholder string
	description string
}

var fieldCopies = map[string]fieldCopy{
	"name":         {label: "web.feedback.field.name.label", placeholder: "web.feedback.field.name.placeholder"},
	"email":        {label: "web.feedback.field.email.label", placeholder: "web.feedback.field.email.placeholder"},
	"expectations": {label: "web.feedback.field.expectations.label", placeholder: "web.feedback.field.expectations.placeholder", description: "web.feedback.field.expectations.description"},
	"experience":   {label: "web.feedback.field.experience.label"},
	"keyTakeaways": {label: "web.feedback.field.keyTakeaways.label", placeholder: "web.feedback.field.keyTakeaways.placeholder", description: "web.feedback.field.keyTakeaways.description"},
	"improvements": {label: "web.feedback.field.improvements.label", placeholder: "web.feedback.field.improvements.placeholder", description: "web.feedback.field.improvements.description"},
}

// FeedbackWizard renders the current wizard step as a swappable card.
func FeedbackWizard(view WizardView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.open("section", "id", "feedback-wizard", "class", "card wizard", "data-step", itoa(view.Step))
		if view.Locked {
			m.raw(`<div class="loading-overlay" role="status">`)
			m.raw(`<div class="spinner" aria-hidden="true"></div>`)
			m.element("p", view.PhaseMessage, "class", "phase-message")
			m.raw(`</div>`)
		}
		m.element("h2", T(loc, "web.feedback.title"), "class", "card-title")
		m.element("p", T(loc, "web.feedback.step_heading", view.Step, view.StepCount, view.StepTitle), "class", "step-heading")
		writeStepIndicator(m, view, loc)

		action := view.NextURL
		if view.IsLastStep {
			action = view.SubmitURL
		}
		m.open("form", "method", "post", "action", action,
			"hx-post", action, "hx-target", "#feedback-wizard", "hx-swap", "outerHTML", "hx-disabled-elt", "find button")
		m.raw("<input type=\"hidden\"")
		m.attr("name", CSRFFieldName)
		m.attr("value", view.CSRFToken)
		m.raw(">")
		m.raw("<fieldset")
		m.attrIf(view.Locked, "disabled")
		m.raw(">")
		if view.IdentityLocked && view.Step == 1 {
			m.element("p", T(loc, "web.feedback.field.identity_locked"), "class", "notice")
		}
		for _, field := range view.Fields {
			m.component(ctx, FieldInput(field, view.ValidateURL, loc))
		}
		m.raw(`<div class="wizard-actions">`)
		if view.CanGoBack {
			m.open("button", "type", "submit", "class", "button secondary", "formaction", view.BackURL, "formnovalidate", "formnovalidate", "hx-post", view.BackURL)
			m.text(T(loc, "web.feedback.action.previous"))
			m.close("button")
		} else {
			m.raw(`<span></span>`)
		}
		if view.IsLastStep {
			m.raw(`<button type="submit" class="button primary" data-action="submit">`)
			m.element("span", T(loc, "web.feedback.action.submit"), "class", "idle-label")
			m.element("span", T(loc, "web.feedback.action.submitting"), "class", "busy-label htmx-indicator")
			m.raw(`</button>`)
		} else {
			m.open("button", "type", "submit", "class", "button primary", "data-action", "next")
			m.text(T(loc, "web.feedback.action.next"))
			m.close("button")
		}
		m.raw(`</div>`)
		m.raw("</fieldset></form>")
		m.close("section")
		return m.err
	})
}

func writeStepIndicator(m *markup, view WizardView, loc Localizer) {
	m.raw(`<ol class="step-indicator">`)
	for i, status := range view.Steps {
		number := i + 1
		var label string
		switch status {
		case StepComplete:
			label = T(loc, "web.feedback.step_status.complete", number)
		case StepCurrent:
			label = T(loc, "web.feedback.step_status.current", number)
		default:
			label = T(loc, "web.feedback.step_status.pending", number)
		}
		m.start("li", "class", "step-dot step-"+string(status), "data-status", string(status), "aria-label", label)
		if status == StepCurrent {
			m.attr("aria-current", "step")
		}
		m.raw("></li>")
	}
	m.raw(`</ol>`)
}

// FieldInput renders one labeled control with its error slot.
func FieldInput(field FieldView, validateURL string, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(w)
		fc := fieldCopies[field.Name]
		inputID := "input-" + field.Name
		errorID := "error-" + field.Name
		m.open("div", "id", "field-"+field.Name, "class", "field")
		if field.Kind == FieldKindChoice {
			writeChoiceField(m, field, validateURL, fc, loc)
		} else {
			m.element("label", T(loc, fc.label), "for", inputID)
			writeTextControl(m, field, validateURL, inputID, errorID, fc, loc)
		}
		if fc.description != "" {
			m.element("p", T(loc, fc.description), "class", "field-description")
		}
		m.component(ctx, FieldError(field.Name, field.Error))
		m.close("div")
		return m.err
	})
}

func writeTextControl(m *markup, field FieldView, validateURL, inputID, errorID string, fc fieldCopy, loc Localizer) {
	tag := "input"
	if field.Kind == FieldKindTextarea {
		tag = "textarea"
	}
	m.raw("<" + tag)
	m.attr("id", inputID)
	m.attr("name", field.Name)
	if tag == "input" {
		kind := string(field.Kind)
		if kind == "" {
			kind = string(FieldKindText)
		}
		m.attr("type", kind)
		m.attr("value", field.Value)
	}
	if fc.placeholder != "" {
		m.attr("placeholder", T(loc, fc.placeholder))
	}
	m.attr("aria-describedby", errorID)
	if field.Error != "" {
		m.attr("aria-invalid", "true")
	}
	if field.Locked {
		m.raw(" readonly")
	} else if validateURL != "" {
		writeValidateAttrs(m, field.Name, validateURL, "blur changed, keyup changed delay:500ms")
	}
	m.raw(">")
	if tag == "textarea" {
		m.text(field.Value)
		m.close("textarea")
	}
}

func writeChoiceField(m *markup, field FieldView, validateURL string, fc fieldCopy, loc Localizer) {
	m.raw(`<fieldset class="choice-group">`)
	m.element("legend", T(loc, fc.label))
	for _, option := range field.Options {
		m.open("label", "class", "choice choice-"+option)
		m.raw(`<input type="radio"`)
		m.attr("name", field.Name)
		m.attr("value", option)
		m.attr("aria-describedby", "error-"+field.Name)
		m.attrIf(option == field.Value, "checked")
		if validateURL != "" {
			writeValidateAttrs(m, field.Name, validateURL, "change")
		}
		m.raw(">")
		m.element("span", experienceLabel(loc, option))
		m.close("label")
	}
	m.raw(`</fieldset>`)
}

func writeValidateAttrs(m *markup, name, validateURL, trigger string) {
	m.attr("hx-post", validateURL)
	m.attr("hx-trigger", trigger)
	m.attr("hx-target", "#error-"+name)
	m.attr("hx-swap", "outerHTML")
	m.attr("hx-vals", `{"field":"`+name+`"}`)
}

// FieldError renders the error slot for a field. The slot is always present
// so validation responses can replace it.
func FieldError(name, message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.start("p", "id", "error-"+name, "class", "field-error", "data-field", name)
		if message != "" {
			m.attr("role", "alert")
		}
		m.end()
		m.text(message)
		m.close("p")
		return m.err
	})
}

// SuccessView is the thank-you page model.
type SuccessView struct {
	ListURL         string
	RedirectSeconds int
}

// FeedbackSuccess renders the confirmation shown after a submission.
func FeedbackSuccess(view SuccessView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := newMarkup(w)
		m.open("section", "id", "feedback-wizard", "class", "card success", "data-redirect-url", view.ListURL, "data-redirect-seconds", itoa(view.RedirectSeconds))
		m.element("h2", T(loc, "web.feedback.success.title"), "class", "success-title")
		m.element("p", T(loc, "web.feedback.success.subtitle"), "class", "success-subtitle")
		m.element("p", T(loc, "web.feedback.success.body"), "class", "muted")
		m.raw(`<p class="signoff">`)
		m.text(T(loc, "web.feedback.success.signoff"))
		m.raw("<br>")
		m.text(T(loc, "web.feedback.success.team"))
		m.raw(`</p>`)
		m.element("p", T(loc, "web.feedback.success.redirect"), "class", "muted")
		m.element("a", T(loc, "web.feedback.success.view_all"), "href", view.ListURL, "class", "button")
		m.close("section")
		return m.err
	})
}
