package feedbackform

import (
	"net/http"

	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Feedback, h.handleWizard)
	mux.HandleFunc(http.MethodGet+" "+routepath.FeedbackPrefix+"{$}", h.handleWizard)
	mux.HandleFunc(http.MethodPost+" "+routepath.FeedbackValidate, h.handleValidate)
	mux.HandleFunc(http.MethodPost+" "+routepath.FeedbackNext, h.handleNext)
	mux.HandleFunc(http.MethodPost+" "+routepath.FeedbackBack, h.handleBack)
	mux.HandleFunc(http.MethodPost+" "+routepath.FeedbackSubmit, h.handleSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.FeedbackPrefix+"{rest...}", h.handleNotFound)
}
