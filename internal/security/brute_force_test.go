package security

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestGuard(t *testing.T) (*BruteForceGuard, *time.Time) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	g := NewBruteForceGuard(ctx, log)
	clock := time.Now()
	g.now = func() time.Time { return clock }

	return g, &clock
}

func TestBruteForce_SuccessfulLoginResetsCount(t *testing.T) {
	guard, _ := newTestGuard(t)

	guard.RecordFailure("alice")
	guard.RecordFailure("alice")
	guard.Reset("alice")

	if guard.IsBlocked("alice") {
		t.Fatal("username should not be blocked after reset")
	}
}

func TestBruteForce_FailureIncrementsAndBlocks(t *testing.T) {
	guard, _ := newTestGuard(t)

	for range BruteForceMaxAttempts {
		guard.RecordFailure("mallory")
	}

	if !guard.IsBlocked("mallory") {
		t.Fatal("username should be blocked after max failures")
	}

	if got := guard.RetryAfter("mallory"); got != BruteForceLockout {
		t.Errorf("RetryAfter = %s, want %s", got, BruteForceLockout)
	}
}

func TestBruteForce_NotBlockedBeforeMax(t *testing.T) {
	guard, _ := newTestGuard(t)

	for range BruteForceMaxAttempts - 1 {
		guard.RecordFailure("almost")
	}

	if guard.IsBlocked("almost") {
		t.Fatal("username should not be blocked before max failures")
	}
}

func TestBruteForce_UsernameNormalized(t *testing.T) {
	guard, _ := newTestGuard(t)

	for range BruteForceMaxAttempts {
		guard.RecordFailure(" Bob ")
	}

	if !guard.IsBlocked("bob") {
		t.Fatal("lockout should apply regardless of case and spacing")
	}
}

func TestBruteForce_LockoutExpires(t *testing.T) {
	guard, clock := newTestGuard(t)

	for range BruteForceMaxAttempts {
		guard.RecordFailure("eve")
	}

	*clock = clock.Add(BruteForceLockout + time.Second)

	if guard.IsBlocked("eve") {
		t.Fatal("lockout should expire")
	}

	guard.sweep()
	if len(guard.records) != 0 {
		t.Errorf("expected sweep to drop expired record, have %d", len(guard.records))
	}
}

func TestBruteForce_WindowResets(t *testing.T) {
	guard, clock := newTestGuard(t)

	for range BruteForceMaxAttempts - 1 {
		guard.RecordFailure("slow")
	}

	*clock = clock.Add(BruteForceWindow + time.Second)
	guard.RecordFailure("slow")

	if guard.IsBlocked("slow") {
		t.Fatal("failures outside the window should not accumulate")
	}
}
