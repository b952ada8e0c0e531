// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root   = "/"
	Health = "/up"
	Static = "/static/"
	QRCode = "/qr.png"
	Scan   = "/scan"

	EventPrefix      = "/tech-guru-meetup-2025/"
	Feedback         = EventPrefix + "feedback"
	FeedbackPrefix   = Feedback + "/"
	FeedbackValidate = FeedbackPrefix + "validate"
	FeedbackNext     = FeedbackPrefix + "next"
	FeedbackBack     = FeedbackPrefix + "back"
	FeedbackSubmit   = FeedbackPrefix + "submit"
	FeedbackList     = EventPrefix + "all-feed-backs"
)

// List query parameters.
const (
	ListSearchParam     = "q"
	ListExperienceParam = "experience"
	ListViewParam       = "view"
)

// FeedbackCodeParam carries a returning attendee's lookup code.
const FeedbackCodeParam = "code"

// FeedbackListWith builds the list URL for a search term, experience filter
// and view id. Empty values are left out.
func FeedbackListWith(term, experience, viewID string) string {
	query := url.Values{}
	if term = strings.TrimSpace(term); term != "" {
		query.Set(ListSearchParam, term)
	}
	if experience = strings.TrimSpace(experience); experience != "" {
		query.Set(ListExperienceParam, experience)
	}
	if viewID = strings.TrimSpace(viewID); viewID != "" {
		query.Set(ListViewParam, viewID)
	}
	if len(query) == 0 {
		return FeedbackList
	}
	return FeedbackList + "?" + query.Encode()
}

// FeedbackWithCode builds the wizard URL for a returning attendee.
func FeedbackWithCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return Feedback
	}
	return Feedback + "?" + url.Values{FeedbackCodeParam: {code}}.Encode()
}

// PublicURL joins a path onto a public base URL such as
// "https://meetup.example.org".
func PublicURL(base, path string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return path
	}
	return base + path
}
