package cipherwatch_test

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch"
)

func TestRequestLedgerRegisterDuplicate(t *testing.T) {
	l := cipherwatch.NewRequestLedger()

	if err := l.Register("req-1", 1, cipherwatch.KindRiskEvaluation); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := l.Register("req-1", 2, cipherwatch.KindContentReveal)
	if !errors.Is(err, cipherwatch.ErrDuplicateRequest) {
		t.Fatalf("duplicate Register error = %v, want ErrDuplicateRequest", err)
	}

	// The original entry must be intact.
	recordID, err := l.Resolve("req-1", cipherwatch.KindRiskEvaluation)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if recordID != 1 {
		t.Fatalf("Resolve = %d, want 1", recordID)
	}
}

// A resolution attempt with the wrong kind must not consume the entry; the
// correctly routed resolution afterwards still succeeds.
func TestRequestLedgerResolveWrongKindKeepsEntry(t *testing.T) {
	l := cipherwatch.NewRequestLedger()
	if err := l.Register("req-1", 3, cipherwatch.KindRiskEvaluation); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := l.Resolve("req-1", cipherwatch.KindContentReveal); !errors.Is(err, cipherwatch.ErrUnknownRequest) {
		t.Fatalf("wrong-kind Resolve error = %v, want ErrUnknownRequest", err)
	}
	recordID, err := l.Resolve("req-1", cipherwatch.KindRiskEvaluation)
	if err != nil {
		t.Fatalf("Resolve after wrong-kind attempt: %v", err)
	}
	if recordID != 3 {
		t.Fatalf("Resolve = %d, want 3", recordID)
	}
}

func TestRequestLedgerResolveConsumes(t *testing.T) {
	l := cipherwatch.NewRequestLedger()
	if err := l.Register("req-1", 7, cipherwatch.KindContentReveal); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := l.Resolve("req-1", cipherwatch.KindContentReveal); err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	if _, err := l.Resolve("req-1", cipherwatch.KindContentReveal); !errors.Is(err, cipherwatch.ErrUnknownRequest) {
		t.Fatalf("second Resolve error = %v, want ErrUnknownRequest", err)
	}
}

func TestRequestLedgerResolveUnknown(t *testing.T) {
	l := cipherwatch.NewRequestLedger()
	if _, err := l.Resolve("never-registered", cipherwatch.KindRiskEvaluation); !errors.Is(err, cipherwatch.ErrUnknownRequest) {
		t.Fatalf("Resolve error = %v, want ErrUnknownRequest", err)
	}
}

// Racing resolutions of one identifier: exactly one wins regardless of
// scheduling.
func TestRequestLedgerResolveRace(t *testing.T) {
	l := cipherwatch.NewRequestLedger()
	const goroutines = 16

	if err := l.Register("contested", 1, cipherwatch.KindRiskEvaluation); err != nil {
		t.Fatalf("Register: %v", err)
	}

	var wins, losses atomic.Int32
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, err := l.Resolve("contested", cipherwatch.KindRiskEvaluation)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, cipherwatch.ErrUnknownRequest):
				losses.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Fatalf("got %d successful resolutions, want exactly 1", wins.Load())
	}
	if losses.Load() != goroutines-1 {
		t.Fatalf("got %d rejections, want %d", losses.Load(), goroutines-1)
	}
}

func TestRequestLedgerConcurrentRegisterDisjointIDs(t *testing.T) {
	l := cipherwatch.NewRequestLedger()
	const n = 64

	var wg sync.WaitGroup
	wg.Add(n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = l.Register(cipherwatch.RequestID(fmt.Sprintf("req-%d", i)), int64(i+1), cipherwatch.KindRiskEvaluation)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("Register %d: %v", i, err)
		}
	}
}
