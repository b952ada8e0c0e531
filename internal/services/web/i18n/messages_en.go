package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Layout
	message.SetString(lang, "web.app.name", "Tech Guru Meetup 2025")
	message.SetString(lang, "web.app.tagline", "Where Innovation Meets Community")
	message.SetString(lang, "web.app.meta_description", "Share your experience at Tech Guru Meetup 2025 and see what the community thought.")
	message.SetString(lang, "web.nav.home", "Home")
	message.SetString(lang, "web.nav.feedback", "Give feedback")
	message.SetString(lang, "web.nav.insights", "Community insights")

	// Landing
	message.SetString(lang, "web.landing.title", "Tech Guru Meetup 2025")
	message.SetString(lang, "web.landing.detail.date_label", "Date")
	message.SetString(lang, "web.landing.detail.date_value", "March 15-17, 2025")
	message.SetString(lang, "web.landing.detail.location_label", "Location")
	message.SetString(lang, "web.landing.detail.location_value", "Tech Hub Convention Center")
	message.SetString(lang, "web.landing.detail.attendees_label", "Attendees")
	message.SetString(lang, "web.landing.detail.attendees_value", "500+ Tech Enthusiasts")
	message.SetString(lang, "web.landing.detail.sessions_label", "Sessions")
	message.SetString(lang, "web.landing.detail.sessions_value", "40+ Tech Talks")
	message.SetString(lang, "web.landing.qr.title", "Share Your Experience")
	message.SetString(lang, "web.landing.qr.alt", "QR code linking to the feedback form")
	message.SetString(lang, "web.landing.qr.instructions", "Scan the QR code to share your feedback and help us improve future events")
	message.SetString(lang, "web.landing.qr.motto", "Your insights shape the future of tech communities")
	message.SetString(lang, "web.landing.qr.scan_action", "Open the feedback form")

	// Simulated scan
	message.SetString(lang, "web.scan.title", "Redirecting to Feedback Form...")
	message.SetString(lang, "web.scan.processing", "Processing QR Code...")
	message.SetString(lang, "web.scan.wait", "Please wait while we direct you to the feedback form...")
	message.SetString(lang, "web.scan.continue", "Continue to the feedback form")

	// Wizard
	message.SetString(lang, "web.feedback.title", "Share Your Experience")
	message.SetString(lang, "web.feedback.step_heading", "Step %d of %d: %s")
	message.SetString(lang, "web.feedback.step.identity", "Personal Information")
	message.SetString(lang, "web.feedback.step.initial", "Initial Feedback")
	message.SetString(lang, "web.feedback.step.detailed", "Detailed Feedback")
	message.SetString(lang, "web.feedback.step_status.complete", "Step %d complete")
	message.SetString(lang, "web.feedback.step_status.current", "Step %d current")
	message.SetString(lang, "web.feedback.step_status.pending", "Step %d pending")
	message.SetString(lang, "web.feedback.field.name.label", "Name")
	message.SetString(lang, "web.feedback.field.name.placeholder", "Your name")
	message.SetString(lang, "web.feedback.field.email.label", "Email")
	message.SetString(lang, "web.feedback.field.email.placeholder", "Your email")
	message.SetString(lang, "web.feedback.field.identity_locked", "Welcome back! Your details are already on file.")
	message.SetString(lang, "web.feedback.field.expectations.label", "What were your expectations?")
	message.SetString(lang, "web.feedback.field.expectations.placeholder", "What motivated you to attend the Tech Guru Meetup?")
	message.SetString(lang, "web.feedback.field.expectations.description", "Tell us about your motivations and expectations for the event.")
	message.SetString(lang, "web.feedback.field.experience.label", "Rate your experience")
	message.SetString(lang, "web.feedback.field.keyTakeaways.label", "Key Takeaways")
	message.SetString(lang, "web.feedback.field.keyTakeaways.placeholder", "What insights or learnings will you take away?")
	message.SetString(lang, "web.feedback.field.keyTakeaways.description", "Share the most valuable things you've learned from the event.")
	message.SetString(lang, "web.feedback.field.improvements.label", "Suggestions for Improvement")
	message.SetString(lang, "web.feedback.field.improvements.placeholder", "What would make future events even better?")
	message.SetString(lang, "web.feedback.field.improvements.description", "Your suggestions will help us improve future events.")
	message.SetString(lang, "web.feedback.action.previous", "Previous")
	message.SetString(lang, "web.feedback.action.next", "Next")
	message.SetString(lang, "web.feedback.action.submit", "Submit Feedback")
	message.SetString(lang, "web.feedback.action.submitting", "Submitting...")
	message.SetString(lang, "web.feedback.phase.creating_profile", "Preparing submission...")
	message.SetString(lang, "web.feedback.phase.submitting_feedback", "Submitting your feedback...")
	message.SetString(lang, "web.feedback.step_completed", "Step %s completed!")
	message.SetString(lang, "web.feedback.step_invalid", "Please fill in all required fields correctly")
	message.SetString(lang, "web.feedback.submit_failed", "Something went wrong. Please try again later.")
	message.SetString(lang, "web.feedback.submit_succeeded", "Thank you for your feedback! Your insights will help us improve.")
	message.SetString(lang, "web.feedback.locked", "Your feedback is being submitted. Please wait.")
	message.SetString(lang, "web.feedback.code_not_found", "We could not find that attendee code. Please fill in your details.")

	// Success
	message.SetString(lang, "web.feedback.success.title", "Thank You!")
	message.SetString(lang, "web.feedback.success.subtitle", "Your feedback has been successfully submitted")
	message.SetString(lang, "web.feedback.success.body", "Your input will help us create better experiences for you and our community.")
	message.SetString(lang, "web.feedback.success.signoff", "Cheers,")
	message.SetString(lang, "web.feedback.success.team", "Team Tech Hub Africa")
	message.SetString(lang, "web.feedback.success.redirect", "Taking you to the community insights...")
	message.SetString(lang, "web.feedback.success.view_all", "See all feedback")

	// List
	message.SetString(lang, "web.list.title", "Community Insights")
	message.SetString(lang, "web.list.count", "Discover feedback from %d tech enthusiasts")
	message.SetString(lang, "web.list.showing", "Showing %d of %d")
	message.SetString(lang, "web.list.search_placeholder", "Search feedback...")
	message.SetString(lang, "web.list.search_action", "Search")
	message.SetString(lang, "web.list.loading", "Loading insights...")
	message.SetString(lang, "web.list.error", "Error fetching feedback")
	message.SetString(lang, "web.list.empty", "No feedback matches your search.")
	message.SetString(lang, "web.list.section.expectations", "Expectations")
	message.SetString(lang, "web.list.section.key_takeaways", "Key Takeaways")
	message.SetString(lang, "web.list.section.improvements", "Improvements")
	message.SetString(lang, "web.list.experience.All", "All")
	message.SetString(lang, "web.list.experience.Excellent", "Excellent")
	message.SetString(lang, "web.list.experience.Good", "Good")
	message.SetString(lang, "web.list.experience.Fair", "Fair")
	message.SetString(lang, "web.list.experience.Poor", "Poor")

	// Errors
	message.SetString(lang, "web.error.page_title_not_found", "Page not found")
	message.SetString(lang, "web.error.page_title_server_error", "Something went wrong")
	message.SetString(lang, "web.error.title_not_found", "We could not find that page")
	message.SetString(lang, "web.error.title_server_error", "Something went wrong")
	message.SetString(lang, "web.error.message_not_found", "The page you are looking for does not exist.")
	message.SetString(lang, "web.error.message_server_error", "Please try again in a moment.")
	message.SetString(lang, "web.error.action_back_home", "Back to the event page")
	message.SetString(lang, "web.error.invalid_input", "That request was not valid.")
	message.SetString(lang, "web.error.conflict", "Your feedback is already being submitted.")
	message.SetString(lang, "web.error.unavailable", "The feedback service is not available right now.")
	message.SetString(lang, "web.error.bad_gateway", "We could not reach the feedback service.")
}
