package generator

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeClock drives the gateway without real waiting. Sleep advances time and
// records every requested duration.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

type scriptedBackend struct {
	errs  []error
	calls int
}

func (b *scriptedBackend) Generate(ctx context.Context, messages []Message) (string, error) {
	defer func() { b.calls++ }()
	if b.calls < len(b.errs) && b.errs[b.calls] != nil {
		return "", b.errs[b.calls]
	}
	return "ok", nil
}

func newTestGateway(backend Generator, clock *fakeClock) *Gateway {
	return NewGateway(
		backend,
		WithMinInterval(time.Second),
		WithInitialWait(30*time.Second),
		WithClock(clock.Now, clock.Sleep),
	)
}

func TestGatewayThrottlesBackToBackCalls(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	gw := newTestGateway(&scriptedBackend{}, clock)

	if _, err := gw.Generate(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	if len(clock.sleeps) != 0 {
		t.Fatalf("first call must not sleep, got %v", clock.sleeps)
	}

	if _, err := gw.Generate(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	if len(clock.sleeps) != 1 || clock.sleeps[0] != time.Second {
		t.Fatalf("expected a one second throttle sleep, got %v", clock.sleeps)
	}
}

func TestGatewayRetriesTransportFailures(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	backend := &scriptedBackend{errs: []error{
		errors.New("connection reset"),
		errors.New("connection reset"),
		nil,
	}}
	gw := newTestGateway(backend, clock)

	rsp, err := gw.Generate(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if rsp != "ok" {
		t.Fatalf("unexpected response %q", rsp)
	}

	if backend.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", backend.calls)
	}
}

func TestGatewayTransportExhaustion(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	backend := &scriptedBackend{errs: []error{
		errors.New("timeout"),
		errors.New("timeout"),
		errors.New("timeout"),
	}}
	gw := newTestGateway(backend, clock)

	_, err := gw.Generate(context.Background(), nil)

	var failure *TransportFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected TransportFailure, got %v", err)
	}

	if failure.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", failure.Attempts)
	}
}

func TestGatewayRateLimitBackoffGrowsLinearly(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	backend := &scriptedBackend{errs: []error{
		NewStatusError(429, "slow down"),
		NewStatusError(429, "slow down"),
		nil,
	}}
	gw := newTestGateway(backend, clock)

	if _, err := gw.Generate(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	var waits []time.Duration
	for _, d := range clock.sleeps {
		if d >= 30*time.Second {
			waits = append(waits, d)
		}
	}

	if len(waits) != 2 || waits[0] != 30*time.Second || waits[1] != 60*time.Second {
		t.Fatalf("expected 30s then 60s backoff, got %v", waits)
	}
}

func TestGatewayRateLimitExhaustion(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	backend := &scriptedBackend{errs: []error{
		NewStatusError(429, "slow down"),
		NewStatusError(429, "slow down"),
		NewStatusError(429, "slow down"),
	}}
	gw := newTestGateway(backend, clock)

	_, err := gw.Generate(context.Background(), nil)

	var limited *RateLimited
	if !errors.As(err, &limited) {
		t.Fatalf("expected RateLimited, got %v", err)
	}

	if limited.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", limited.Attempts)
	}
}

func TestGatewayTerminalErrorShortCircuits(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	backend := &scriptedBackend{errs: []error{
		NewStatusError(500, "internal"),
	}}
	gw := newTestGateway(backend, clock)

	_, err := gw.Generate(context.Background(), nil)

	var terminal *TerminalAPIError
	if !errors.As(err, &terminal) {
		t.Fatalf("expected TerminalAPIError, got %v", err)
	}

	if terminal.Status != 500 {
		t.Fatalf("expected status 500, got %d", terminal.Status)
	}

	if backend.calls != 1 {
		t.Fatalf("terminal error must not retry, got %d attempts", backend.calls)
	}
}
