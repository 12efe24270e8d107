package platform

import (
	"errors"
	"testing"
)

func TestSingleInstanceLock(t *testing.T) {
	guard, err := AcquireSingleInstance("tomatillo-test")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	if _, err := AcquireSingleInstance("tomatillo-test"); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second acquire error = %v, want ErrAlreadyRunning", err)
	}

	if err := guard.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}

	reacquired, err := AcquireSingleInstance("tomatillo-test")
	if err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
	_ = reacquired.Release()
}

func TestReleaseNilGuardIsSafe(t *testing.T) {
	var guard *InstanceGuard
	if err := guard.Release(); err != nil {
		t.Errorf("release nil guard: %v", err)
	}
	if guard.Address() != "" {
		t.Error("nil guard address should be empty")
	}
}
