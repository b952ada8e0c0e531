package landing

import (
	"net/http"
	"strconv"
	"time"

	module "github.com/techhubafrica/meetup-feedback/internal/services/web/module"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/modulehandler"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/pagerender"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/platform/requestmeta"
	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
	webtemplates "github.com/techhubafrica/meetup-feedback/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service   *service
	scanDelay time.Duration
}

func newHandlers(s *service, cfg Config, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps), service: s, scanDelay: cfg.ScanDelay}
}

func (h handlers) handleLanding(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(r)
	h.WritePage(w, r, pagerender.Page{
		Title: webtemplates.T(loc, "web.landing.title"),
		Fragment: webtemplates.LandingPage(webtemplates.LandingView{
			QRImageURL:  routepath.QRCode,
			ScanURL:     routepath.Scan,
			FeedbackURL: routepath.Feedback,
		}, loc),
	})
}

// handleQRCode encodes the public feedback URL. Without a configured base
// URL it falls back to the URL the request arrived on.
func (h handlers) handleQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.service.qrPNG(h.feedbackURL(r))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h handlers) handleScan(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(r)
	seconds := int(h.scanDelay.Round(time.Second) / time.Second)
	w.Header().Set("Refresh", strconv.Itoa(seconds)+"; url="+routepath.Feedback)
	h.WritePage(w, r, pagerender.Page{
		Title: webtemplates.T(loc, "web.scan.title"),
		Fragment: webtemplates.ScanPage(webtemplates.ScanView{
			TargetURL:    routepath.Feedback,
			DelaySeconds: seconds,
		}, loc),
	})
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) feedbackURL(r *http.Request) string {
	deps := h.Dependencies()
	base := deps.PublicBaseURL
	if base == "" {
		base = requestmeta.BaseURL(r, deps.SchemePolicy)
	}
	return routepath.PublicURL(base, routepath.Feedback)
}
