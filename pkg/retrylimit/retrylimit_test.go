package retrylimit

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/time/rate"
)

func TestLimiterClampsToBounds(t *testing.T) {
	lim := NewAdaptiveLimiter(5, 2, 8, 1, 0.5)

	for i := 0; i < 10; i++ {
		lim.RateLimited()
	}
	if got := lim.CurrentLimit(); got != 2 {
		t.Fatalf("CurrentLimit() after overloads = %v, want 2", got)
	}
}

func TestLimiterRecoversAfterQuietPeriod(t *testing.T) {
	lim := NewAdaptiveLimiter(4, 1, 10, 1, 0.5)

	// No recent errors: each success should step the rate up to the cap.
	for i := 0; i < 20; i++ {
		lim.Success()
	}
	if got := lim.CurrentLimit(); got != 10 {
		t.Fatalf("CurrentLimit() after successes = %v, want 10", got)
	}

	// A fresh error freezes recovery.
	lim.RateLimited()
	before := lim.CurrentLimit()
	lim.Success()
	if got := lim.CurrentLimit(); got != before {
		t.Fatalf("CurrentLimit() recovered too early: %v, want %v", got, before)
	}
}

func TestWithRetryMaxStopsOnFatal(t *testing.T) {
	calls := 0
	err := WithRetryMax(context.Background(), func() error {
		calls++
		return &FatalError{Err: errors.New("bad request")}
	}, nil, 5)

	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("WithRetryMax() error = %v, want FatalError", err)
	}
	if calls != 1 {
		t.Fatalf("fn called %d times, want 1", calls)
	}
}

func TestWithRetryMaxStopsOnSuccess(t *testing.T) {
	calls := 0
	err := WithRetryMax(context.Background(), func() error {
		calls++
		return nil
	}, nil, 3)
	if err != nil {
		t.Fatalf("WithRetryMax() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("fn called %d times, want 1", calls)
	}
}

func TestWithRetryMaxHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetryMax(ctx, func() error {
		t.Fatal("fn should not run with canceled context")
		return nil
	}, nil, 3)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("WithRetryMax() error = %v, want context.Canceled", err)
	}
}

func TestWithRetryMaxShrinksLimiterOnRateLimit(t *testing.T) {
	lim := NewAdaptiveLimiter(8, 1, 10, 1, 0.5)

	calls := 0
	err := WithRetryMax(context.Background(), func() error {
		calls++
		if calls == 1 {
			return &StatusError{Code: 429}
		}
		return nil
	}, lim, 3)
	if err != nil {
		t.Fatalf("WithRetryMax() error = %v", err)
	}
	if calls != 2 {
		t.Fatalf("fn called %d times, want 2", calls)
	}
	if got := lim.CurrentLimit(); got >= 8 {
		t.Fatalf("CurrentLimit() = %v, want < 8 after a 429", got)
	}
}

func TestStatusErrorMessage(t *testing.T) {
	e := &StatusError{Code: 503, Body: "upstream down"}
	if got := e.Error(); got != "http 503: upstream down" {
		t.Fatalf("Error() = %q", got)
	}
	if got := (&StatusError{Code: 404}).Error(); got != "http 404" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestBurstTracksLimit(t *testing.T) {
	lim := NewAdaptiveLimiter(6, 1, 10, 1, 0.5)
	lim.RateLimited()
	if got, want := lim.limiter.Burst(), 3; got != want {
		t.Fatalf("Burst() = %d, want %d", got, want)
	}
	if got := lim.CurrentLimit(); got != float64(rate.Limit(3)) {
		t.Fatalf("CurrentLimit() = %v, want 3", got)
	}
}
