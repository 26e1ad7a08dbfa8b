package utils

import (
	"strings"
	"sync"
	"testing"
)

func TestBookingCodesAreUnique(t *testing.T) {
	codes, err := NewBookingCodes(3)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
		wg   sync.WaitGroup
	)
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				code := codes.NextCode()
				mu.Lock()
				seen[code] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != 1000 {
		t.Fatalf("expected 1000 distinct codes, got %d", len(seen))
	}
	for code := range seen {
		if len(code) < 3 || !strings.HasPrefix(code, "BK") || code[2:] != strings.ToLower(code[2:]) {
			t.Fatalf("unexpected code %q", code)
		}
	}
}

func TestBookingCodesRejectBadNode(t *testing.T) {
	if _, err := NewBookingCodes(5000); err == nil {
		t.Fatalf("expected an error for a node outside the snowflake range")
	}
}
