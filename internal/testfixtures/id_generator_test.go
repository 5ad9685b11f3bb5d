package testfixtures

import (
	"sync"
	"testing"
)

func TestIDGenerator_Sequence(t *testing.T) {
	gen := NewIDGenerator("booking")

	if got := gen.Next(); got != "booking-1" {
		t.Errorf("Expected booking-1, got %s", got)
	}
	if got := gen.Next(); got != "booking-2" {
		t.Errorf("Expected booking-2, got %s", got)
	}
}

func TestIDGenerator_DefaultPrefix(t *testing.T) {
	gen := NewIDGenerator("")
	if got := gen.Next(); got != "id-1" {
		t.Errorf("Expected id-1, got %s", got)
	}
}

func TestIDGenerator_NextFunc_NilReceiver(t *testing.T) {
	var gen *IDGenerator
	next := gen.NextFunc()
	if got := next(); got != "" {
		t.Errorf("Expected empty identifier from nil generator, got %q", got)
	}
}

func TestIDGenerator_ConcurrentUse(t *testing.T) {
	gen := NewIDGenerator("c")
	const workers = 32

	seen := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- gen.Next()
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[string]struct{}, workers)
	for id := range seen {
		if _, dup := unique[id]; dup {
			t.Fatalf("Duplicate identifier %s", id)
		}
		unique[id] = struct{}{}
	}
}
