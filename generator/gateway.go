package generator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeTransport
	outcomeRateLimit
	outcomeTerminal
)

// Gateway mediates every call to the completion backend. It spaces outbound
// attempts at least MinInterval apart across all callers, retries transport
// failures with a fixed wait, retries rate limits with a linearly growing
// wait, and surfaces everything else immediately as a terminal error.
// Callers always get either a completion or a typed failure; nothing panics
// past this boundary.
type Gateway struct {
	options  GatewayOptions
	backend  Generator
	mtx      sync.Mutex
	lastCall time.Time
}

func (g *Gateway) Generate(ctx context.Context, messages []Message) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= g.options.MaxRetries; attempt++ {
		g.throttle()

		rsp, err := g.backend.Generate(ctx, messages)

		switch classify(err) {
		case outcomeSuccess:
			return rsp, nil

		case outcomeTerminal:
			var se *StatusError
			errors.As(err, &se)
			log.Error().Int("status", se.Code).Str("detail", se.Message).Msg("completion api returned terminal error")
			return "", &TerminalAPIError{Status: se.Code, Detail: se.Message}

		case outcomeRateLimit:
			lastErr = err
			if attempt < g.options.MaxRetries {
				wait := g.options.InitialWait * time.Duration(attempt)
				log.Warn().Dur("wait", wait).Int("attempt", attempt).Msg("rate limited, backing off")
				g.options.Sleep(wait)
				continue
			}
			return "", &RateLimited{Attempts: attempt, Last: lastErr}

		case outcomeTransport:
			lastErr = err
			if attempt < g.options.MaxRetries {
				log.Warn().Err(err).Int("attempt", attempt).Msg("completion call failed, retrying")
				g.options.Sleep(g.options.InitialWait)
				continue
			}
			return "", &TransportFailure{Attempts: attempt, Last: lastErr}
		}
	}

	// MaxRetries < 1
	return "", &TransportFailure{Attempts: 0, Last: lastErr}
}

// throttle blocks until at least MinInterval has passed since the previous
// outbound attempt by any caller, then records this attempt's issue time.
// The timestamp is shared mutable state, so check and update stay under one
// mutex.
func (g *Gateway) throttle() {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	now := g.options.Now()
	if !g.lastCall.IsZero() {
		if since := now.Sub(g.lastCall); since < g.options.MinInterval {
			g.options.Sleep(g.options.MinInterval - since)
			now = g.options.Now()
		}
	}

	g.lastCall = now
}

func classify(err error) outcome {
	if err == nil {
		return outcomeSuccess
	}

	var se *StatusError
	if errors.As(err, &se) {
		if se.rateLimited() {
			return outcomeRateLimit
		}
		return outcomeTerminal
	}

	return outcomeTransport
}

func NewGateway(backend Generator, opts ...GatewayOption) *Gateway {
	if backend == nil {
		panic("backend is required")
	}

	return &Gateway{
		options: NewGatewayOptions(opts...),
		backend: backend,
	}
}
