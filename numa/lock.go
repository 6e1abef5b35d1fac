package numa

import (
	"os"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ErrLockBusy reports that the ledger lock could not be acquired within the
// bounded wait. Callers skip pinning rather than block the container launch.
var ErrLockBusy = errors.New("placement ledger lock is busy")

// Locker serializes the load-reclaim-place-store critical section across the
// independent wrapper processes racing on one host.
type Locker interface {
	Lock() error
	Unlock()
}

// NewFlockLocker locks via flock on a sidecar lock file. The lock file is
// separate from the ledger itself so the ledger can live behind any afs
// scheme while the lock stays a plain local file.
func NewFlockLocker(path string, maxWait time.Duration) Locker {
	return &flockLocker{path: path, maxWait: maxWait}
}

type flockLocker struct {
	path    string
	maxWait time.Duration
	f       *os.File
}

func (l *flockLocker) Lock() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return errors.Wrapf(err, "opening lock file %s", l.path)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxElapsedTime = l.maxWait
	err = backoff.Retry(func() error {
		return unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	}, b)
	if err != nil {
		f.Close()
		return ErrLockBusy
	}
	l.f = f
	return nil
}

func (l *flockLocker) Unlock() {
	if l.f == nil {
		return
	}
	unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	l.f.Close()
	l.f = nil
}

// InMemoryLocker is a test Locker backed by a buffered channel.
type InMemoryLocker struct {
	ch   chan struct{}
	Busy bool
}

func NewInMemoryLocker() *InMemoryLocker {
	return &InMemoryLocker{ch: make(chan struct{}, 1)}
}

func (l *InMemoryLocker) Lock() error {
	if l.Busy {
		return ErrLockBusy
	}
	l.ch <- struct{}{}
	return nil
}

func (l *InMemoryLocker) Unlock() {
	select {
	case <-l.ch:
	default:
	}
}
