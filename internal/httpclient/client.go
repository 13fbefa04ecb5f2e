package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"httpchain/internal/logging"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Options controls transport-level behavior of constructed clients.
type Options struct {
	// Timeout bounds one whole request/response exchange. Zero means
	// DefaultTimeout.
	Timeout time.Duration
	// TLSSkipVerify disables certificate verification.
	TLSSkipVerify bool
}

// NewClient creates an *http.Client with the shared transport defaults.
// There is no retry or auth layer here: callers issue each request
// exactly once and supply credentials as literal headers.
func NewClient(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: opts.TLSSkipVerify,
		},
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if opts.TLSSkipVerify {
		logging.Logf(logging.Info, "TLS certificate verification is DISABLED")
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
