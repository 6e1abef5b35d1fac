package numa

import (
	"path/filepath"
	"testing"
	"time"
)

func TestFlockLockerSerializes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.lock")

	first := NewFlockLocker(path, 100*time.Millisecond)
	if err := first.Lock(); err != nil {
		t.Fatalf("first Lock: %v", err)
	}

	second := NewFlockLocker(path, 50*time.Millisecond)
	if err := second.Lock(); err != ErrLockBusy {
		t.Fatalf("expected ErrLockBusy while lock is held, got %v", err)
	}

	first.Unlock()
	if err := second.Lock(); err != nil {
		t.Fatalf("Lock after release: %v", err)
	}
	second.Unlock()
}

func TestFlockLockerBoundedWait(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.lock")

	holder := NewFlockLocker(path, 100*time.Millisecond)
	if err := holder.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	defer holder.Unlock()

	start := time.Now()
	waiter := NewFlockLocker(path, 50*time.Millisecond)
	if err := waiter.Lock(); err != ErrLockBusy {
		t.Fatalf("expected ErrLockBusy, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("lock wait was not bounded: %v", elapsed)
	}
}

func TestFlockLockerUnlockWithoutLock(t *testing.T) {
	locker := NewFlockLocker(filepath.Join(t.TempDir(), "ledger.lock"), time.Millisecond)
	// Unlock on an unheld lock must be a no-op on every exit path.
	locker.Unlock()
	locker.Unlock()
}

func TestFlockLockerBadPath(t *testing.T) {
	locker := NewFlockLocker("/nonexistent/dir/ledger.lock", time.Millisecond)
	if err := locker.Lock(); err == nil {
		t.Fatalf("expected error locking an uncreatable path")
	}
}
