package httputil

import (
	"net/http"
	"time"
)

type Clients struct {
	API     *http.Client // general REST calls
	Routing *http.Client // geocoding and travel-time matrix, noticeably slower
}

// NewClients builds the two HTTP clients the app uses. Both share one
// connection pool; only the deadlines differ, since routing requests can run
// well past a normal API call.
func NewClients(timeout time.Duration) *Clients {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:      10,
		IdleConnTimeout:   90 * time.Second,
		ForceAttemptHTTP2: true,
	}

	return &Clients{
		API: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		Routing: &http.Client{
			Timeout:   2 * timeout,
			Transport: transport,
		},
	}
}
