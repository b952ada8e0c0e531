// Package web serves the event feedback site: the landing page with its QR
// code, the feedback wizard and the community feedback list.
//
// The server composes feature modules behind a shared middleware chain
// (tracing, request logging, panic recovery and CSRF protection) and owns the
// lifetime of the wizard session store.
package web
