package feedbacklist

import (
	"net/http"

	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.FeedbackList, h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.FeedbackList+"/{rest...}", h.handleNotFound)
	mux.HandleFunc(routepath.FeedbackList, h.handleMethodNotAllowed)
}
