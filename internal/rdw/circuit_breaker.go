// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

package rdw

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/TheOnly3aq/z3radar/internal/logging"
	"github.com/TheOnly3aq/z3radar/internal/metrics"
)

// BreakerClient wraps Client with a circuit breaker on the derived-data
// path. When the upstream is down or slow, chart and vehicle-table requests
// fail fast instead of piling up behind the upstream timeout.
//
// The gateway's Forward path deliberately bypasses the breaker: the gateway
// relays upstream errors verbatim, and a breaker rejection would replace the
// upstream's own status with a synthetic one.
type BreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[[]Record]
	name   string
}

// NewBreakerClient wraps an upstream client with circuit breaker protection.
// The circuit opens after a 60% failure rate across at least 10 requests,
// allows 3 probes in half-open state, and waits 2 minutes before probing.
func NewBreakerClient(client *Client) *BreakerClient {
	cbName := "registration-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[[]Record](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// Forward passes through to the underlying client without breaker
// protection. See the type comment for why.
func (bc *BreakerClient) Forward(ctx context.Context, car, endpoint string) (*Response, error) {
	return bc.client.Forward(ctx, car, endpoint)
}

// FetchRecords fetches rows with circuit breaker protection.
func (bc *BreakerClient) FetchRecords(ctx context.Context, car, endpoint string) ([]Record, error) {
	records, err := bc.cb.Execute(func() ([]Record, error) {
		return bc.client.FetchRecords(ctx, car, endpoint)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "rejected").Inc()
			logging.Ctx(ctx).Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("upstream temporarily unavailable: %w", err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "success").Inc()
	return records, nil
}

// stateToFloat converts circuit breaker state to a numeric value for metrics.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to a string for logging.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
