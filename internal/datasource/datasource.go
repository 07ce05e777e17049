// Package datasource fetches market data and news headlines from upstream
// HTTP providers. Every provider shares one request path: a token-bucket
// rate limiter, a circuit breaker and per-request latency metrics.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/seenimoa/marketmind/internal/observability"
)

// --- Sentinel errors ---

// ErrTickerNotFound is returned when a ticker cannot be resolved.
var ErrTickerNotFound = errors.New("ticker not found")

// ErrHTTP wraps an HTTP error with status code.
type ErrHTTP struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// DefaultUserAgent is the user agent string used for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// ClientOptions configure the shared request path of a provider.
type ClientOptions struct {
	Timeout            time.Duration
	RequestsPerSec     float64
	Burst              int
	BreakerMaxRequests uint32
	BreakerTimeout     time.Duration
	UserAgent          string
}

func (o ClientOptions) withDefaults() ClientOptions {
	if o.Timeout <= 0 {
		o.Timeout = 15 * time.Second
	}
	if o.RequestsPerSec <= 0 {
		o.RequestsPerSec = 5
	}
	if o.Burst <= 0 {
		o.Burst = 1
	}
	if o.BreakerMaxRequests == 0 {
		o.BreakerMaxRequests = 1
	}
	if o.BreakerTimeout <= 0 {
		o.BreakerTimeout = 30 * time.Second
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	return o
}

// consecutiveFailuresToTrip opens a breaker after this many failures in a row.
const consecutiveFailuresToTrip = 5

// client is the rate-limited, breaker-protected HTTP path used by every
// provider in this package.
type client struct {
	name      string
	http      *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker[[]byte]
	metrics   *observability.Metrics
	userAgent string
}

func newClient(name string, opts ClientOptions, metrics *observability.Metrics) *client {
	opts = opts.withDefaults()

	c := &client{
		name:      name,
		http:      &http.Client{Timeout: opts.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(opts.RequestsPerSec), opts.Burst),
		metrics:   metrics,
		userAgent: opts.UserAgent,
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: opts.BreakerMaxRequests,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= consecutiveFailuresToTrip
		},
		// A ticker the upstream does not know is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrTickerNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
			metrics.SetCircuitBreakerState(name, stateToInt(to))
		},
	})
	metrics.SetCircuitBreakerState(name, stateToInt(gobreaker.StateClosed))
	return c
}

// get performs a GET request through the limiter and breaker and returns the
// full response body. A 404 is reported as ErrTickerNotFound.
func (c *client) get(ctx context.Context, op, url string, headers map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s rate limit: %w", c.name, err)
	}

	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return c.doGet(ctx, url, headers)
	})
	elapsed := time.Since(start)
	c.metrics.RecordProviderRequest(c.name, op, err, elapsed)

	log.Debug().
		Str("provider", c.name).
		Str("op", op).
		Dur("elapsed", elapsed).
		Err(err).
		Msg("provider request")

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s unavailable: %w", c.name, err)
		}
		return nil, err
	}
	return body, nil
}

// doGet performs one GET request and reads the body.
func (c *client) doGet(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/html, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		httpErr := &ErrHTTP{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %w", ErrTickerNotFound, httpErr)
		}
		return nil, httpErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

// stateToInt converts a breaker state for the state gauge:
// 0=closed, 1=half-open, 2=open.
func stateToInt(state gobreaker.State) int {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
