package validation

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/bhavyasri23-dev/ai-image-generator/core"
)

// ConnectivityResult represents the result of an endpoint reachability check.
type ConnectivityResult struct {
	Reachable bool
	Message   string
	Latency   time.Duration
	Error     error
}

// ConnectivityChecker verifies that the inference endpoint host is
// reachable before the server starts. It issues a lightweight HEAD
// request; any HTTP response counts as reachable since the endpoint
// rejects unauthenticated requests with a status rather than silence.
type ConnectivityChecker struct {
	timeout              time.Duration
	allowSelfSignedCerts bool
}

// NewConnectivityChecker creates a checker with a 10 second timeout.
func NewConnectivityChecker() *ConnectivityChecker {
	return &ConnectivityChecker{
		timeout: 10 * time.Second,
	}
}

// WithTimeout sets the timeout for the reachability probe.
func (c *ConnectivityChecker) WithTimeout(timeout time.Duration) *ConnectivityChecker {
	c.timeout = timeout
	return c
}

// WithAllowSelfSignedCerts configures whether to allow self-signed certificates.
func (c *ConnectivityChecker) WithAllowSelfSignedCerts(allow bool) *ConnectivityChecker {
	c.allowSelfSignedCerts = allow
	return c
}

// CheckEndpoint probes the configured inference endpoint.
func (c *ConnectivityChecker) CheckEndpoint() ConnectivityResult {
	endpoint := core.GetEnvOrDefault("IMAGE_API_URL", core.DefaultInferenceBaseURL)

	client := &http.Client{Timeout: c.timeout}
	if c.allowSelfSignedCerts {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	start := time.Now()
	req, err := http.NewRequest(http.MethodHead, endpoint, nil)
	if err != nil {
		return ConnectivityResult{
			Reachable: false,
			Message:   "Could not build probe request",
			Error:     core.ErrInvalidEndpoint(endpoint, err.Error()),
		}
	}

	resp, err := client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return ConnectivityResult{
			Reachable: false,
			Message:   fmt.Sprintf("Endpoint unreachable: %s", endpoint),
			Latency:   latency,
			Error:     core.ErrEndpointUnreachable(endpoint, err.Error()),
		}
	}
	defer resp.Body.Close()

	return ConnectivityResult{
		Reachable: true,
		Message:   fmt.Sprintf("Endpoint reachable (HTTP %d)", resp.StatusCode),
		Latency:   latency,
	}
}
