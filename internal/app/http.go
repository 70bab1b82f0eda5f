package app

import (
	"net"
	"net/http"
	"time"
)

// newHTTPClient returns a client tuned for parallel requests without
// client-side throttling. An overall timeout of zero leaves deadline
// control to per-request contexts; model completions pass a generous cap
// because a slow backend is not a hang.
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          0,    // no global limit
		MaxIdleConnsPerHost:   1024, // large per-host pool
		MaxConnsPerHost:       0,    // unlimited
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
