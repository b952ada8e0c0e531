package feedbackform

import (
	"github.com/techhubafrica/meetup-feedback/internal/feedback"
	"github.com/techhubafrica/meetup-feedback/internal/feedback/wizard"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
	webtemplates "github.com/techhubafrica/meetup-feedback/internal/services/web/templates"
)

var stepTitleKeys = map[int]string{
	1: "web.feedback.step.identity",
	2: "web.feedback.step.initial",
	3: "web.feedback.step.detailed",
}

var phaseMessageKeys = map[wizard.Phase]string{
	wizard.PhaseCreatingProfile:    "web.feedback.phase.creating_profile",
	wizard.PhaseSubmittingFeedback: "web.feedback.phase.submitting_feedback",
}

var fieldKinds = map[feedback.Field]webtemplates.FieldKind{
	feedback.FieldName:         webtemplates.FieldKindText,
	feedback.FieldEmail:        webtemplates.FieldKindEmail,
	feedback.FieldExpectations: webtemplates.FieldKindTextarea,
	feedback.FieldExperience:   webtemplates.FieldKindChoice,
	feedback.FieldKeyTakeaways: webtemplates.FieldKindTextarea,
	feedback.FieldImprovements: webtemplates.FieldKindTextarea,
}

func experienceOptions() []string {
	out := make([]string, 0, len(feedback.Experiences()))
	for _, exp := range feedback.Experiences() {
		out = append(out, string(exp))
	}
	return out
}

// wizardView maps the wizard state onto the step template.
func wizardView(w *wizard.Wizard, loc webtemplates.Localizer, csrfToken string) webtemplates.WizardView {
	step := w.Step()
	errs := w.Errors()
	locked := w.Locked()

	fields := make([]webtemplates.FieldView, 0, 2)
	for _, field := range wizard.StepFields(step) {
		view := webtemplates.FieldView{
			Name:   string(field),
			Kind:   fieldKinds[field],
			Value:  w.Value(field),
			Error:  errs[field],
			Locked: locked || (w.IdentityLocked() && isIdentityField(field)),
		}
		if field == feedback.FieldExperience {
			view.Options = experienceOptions()
		}
		fields = append(fields, view)
	}

	steps := make([]webtemplates.StepStatus, wizard.StepCount)
	for i := range steps {
		switch n := i + 1; {
		case n < step:
			steps[i] = webtemplates.StepComplete
		case n == step:
			steps[i] = webtemplates.StepCurrent
		default:
			steps[i] = webtemplates.StepPending
		}
	}

	view := webtemplates.WizardView{
		Step:           step,
		StepCount:      wizard.StepCount,
		StepTitle:      webtemplates.T(loc, stepTitleKeys[step]),
		Steps:          steps,
		Fields:         fields,
		CSRFToken:      csrfToken,
		Locked:         locked,
		CanGoBack:      step > 1 && !locked,
		IsLastStep:     step == wizard.StepCount,
		IdentityLocked: w.IdentityLocked(),
		ValidateURL:    routepath.FeedbackValidate,
		NextURL:        routepath.FeedbackNext,
		BackURL:        routepath.FeedbackBack,
		SubmitURL:      routepath.FeedbackSubmit,
	}
	if locked {
		if key, ok := phaseMessageKeys[w.Phase()]; ok {
			view.PhaseMessage = webtemplates.T(loc, key)
		}
	}
	return view
}
