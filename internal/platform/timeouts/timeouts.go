// Package timeouts defines shared timeout constants used by the web service
// and its outbound API client.
package timeouts

import "time"

// APIRequest is the default cap on one call to the remote feedback API.
const APIRequest = 10 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Idle limits how long an HTTP server keeps an idle keep-alive connection.
const Idle = 60 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
