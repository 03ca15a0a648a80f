package secureconn

import "testing"

func TestNonceIncrMonotonic(t *testing.T) {
	var n Nonce
	for k := 1; k <= 300; k++ {
		if err := n.Incr(); err != nil {
			t.Fatalf("unexpected error at k=%d: %v", k, err)
		}
		want := uint64(k)
		got := uint64(0)
		for _, b := range n[NonceSize-8:] {
			got = got<<8 | uint64(b)
		}
		if got != want {
			t.Fatalf("after %d increments, nonce = %x, want low 8 bytes = %d", k, n, want)
		}
	}
}

// S5 analog for the nonce itself: incr(0xFF...FF) wraps to all-zero and
// signals exhaustion.
func TestNonceIncrOverflow(t *testing.T) {
	var n Nonce
	for i := range n {
		n[i] = 0xFF
	}
	err := n.Incr()
	if err != ErrNonceExhausted {
		t.Fatalf("expected ErrNonceExhausted, got %v", err)
	}
	var zero Nonce
	if n != zero {
		t.Fatalf("expected all-zero nonce after overflow, got %x", n)
	}
}
