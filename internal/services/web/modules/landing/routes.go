package landing

import (
	"net/http"

	"github.com/techhubafrica/meetup-feedback/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleLanding)
	mux.HandleFunc(http.MethodGet+" "+routepath.QRCode, h.handleQRCode)
	mux.HandleFunc(http.MethodGet+" "+routepath.Scan, h.handleScan)
	mux.HandleFunc(routepath.Root, h.handleNotFound)
}
