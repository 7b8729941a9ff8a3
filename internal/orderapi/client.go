package orderapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/mesa-pos/mesa/internal/domain"
)

// Config holds order backend connection settings.
type Config struct {
	// BaseURL is the root of the kitchen/order backend API.
	BaseURL string

	// Timeout applies per request.
	Timeout time.Duration
}

// Client submits orders to the external order-creation endpoint. Calls run
// through a circuit breaker so a dead backend fails fast instead of tying up
// every waiter's device on timeouts.
type Client struct {
	rest    *resty.Client
	breaker *gobreaker.CircuitBreaker
}

// Compile-time check that Client implements Submitter.
var _ Submitter = (*Client)(nil)

// Submitter is the narrow interface the order service depends on.
type Submitter interface {
	CreateOrder(ctx context.Context, req *domain.OrderRequest) (*domain.OrderConfirmation, error)
}

// NewClient creates an order backend client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	rest := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "order-backend",
		MaxRequests: 3,                // max requests allowed in half-open state
		Interval:    15 * time.Second, // window to track failures
		Timeout:     30 * time.Second, // time to wait before half-open
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	})

	return &Client{rest: rest, breaker: breaker}
}

// apiError is the backend's error envelope. The message travels back to the
// caller unmodified.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e *apiError) text() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return "Order could not be created"
}

// CreateOrder posts the order to the backend. Backend failures are returned
// as coded domain errors carrying the backend's own message; an open breaker
// reports the backend as unavailable without attempting the call.
func (c *Client) CreateOrder(ctx context.Context, req *domain.OrderRequest) (*domain.OrderConfirmation, error) {
	const op = "orderapi.create"

	result, err := c.breaker.Execute(func() (interface{}, error) {
		var confirmation domain.OrderConfirmation
		var backendErr apiError

		resp, err := c.rest.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&confirmation).
			SetError(&backendErr).
			Post("/api/orders")
		if err != nil {
			return nil, domain.WrapError(err, domain.EUNAVAILABLE, op, "Order service is unreachable")
		}
		if resp.IsError() {
			return nil, domain.Errorf(codeForStatus(resp.StatusCode()), op, "%s", backendErr.text())
		}
		return &confirmation, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, domain.ErrOrderBackend
		}
		return nil, err
	}

	return result.(*domain.OrderConfirmation), nil
}

// codeForStatus maps backend HTTP statuses to domain error codes.
func codeForStatus(status int) string {
	switch {
	case status == http.StatusNotFound:
		return domain.ENOTFOUND
	case status == http.StatusConflict:
		return domain.ECONFLICT
	case status >= 400 && status < 500:
		return domain.EINVALID
	default:
		return domain.EUNAVAILABLE
	}
}
