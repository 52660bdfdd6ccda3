package usecase

import "testing"

func TestNewOrderCode_Format(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := NewOrderCode()
		if !orderCodeRe.MatchString(code) {
			t.Fatalf("bad format: %q", code)
		}
		seen[code] = true
	}
	// 1000 draws from a 2^32 space should essentially never collide.
	if len(seen) < 999 {
		t.Errorf("suspicious collision rate: %d unique of 1000", len(seen))
	}
}
