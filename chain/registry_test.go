package chain

import (
	"errors"
	"sync"
	"testing"
)

// TestRegisterDuplicateRejected checks that registering the same chain ID
// twice fails the second time with ConfigError, leaving the first
// registration untouched.
func TestRegisterDuplicateRejected(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("foo"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := r.Register("foo")
	if err == nil {
		t.Fatal("expected second register to fail")
	}
	var ce *Error
	if !errors.As(err, &ce) || ce.Kind != ConfigError {
		t.Fatalf("expected ConfigError, got %v", err)
	}

	g := r.Get("foo")
	if !g.Found() {
		t.Fatal("first registration should remain present")
	}
}

func TestGetUnregistered(t *testing.T) {
	r := NewRegistry()
	g := r.Get("nope")
	if g.Found() {
		t.Fatal("expected Found() false for unregistered chain")
	}
}

func TestAttachSignerUnregisteredFails(t *testing.T) {
	r := NewRegistry()
	err := r.AttachSigner("nope", SignerBinding{Provider: "softsign"})
	var ce *Error
	if !errors.As(err, &ce) || ce.Kind != InvalidKey {
		t.Fatalf("expected InvalidKey, got %v", err)
	}
}

func TestAttachSignerThenGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("foo"); err != nil {
		t.Fatal(err)
	}
	binding := SignerBinding{Provider: "softsign", PubKey: []byte{1, 2, 3}}
	if err := r.AttachSigner("foo", binding); err != nil {
		t.Fatal(err)
	}

	g := r.Get("foo")
	got, ok := g.Chain().SignerBinding("softsign")
	if !ok {
		t.Fatal("expected softsign binding to be present")
	}
	if got.Provider != binding.Provider || string(got.PubKey) != string(binding.PubKey) {
		t.Fatalf("got %+v, want %+v", got, binding)
	}
}

func TestIDsPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []ID{"c", "a", "b"} {
		if err := r.Register(id); err != nil {
			t.Fatal(err)
		}
	}
	got := r.IDs()
	want := []ID{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

// TestGuardUnaffectedByLaterAttachSigner checks that a Guard obtained
// before an AttachSigner call doesn't observe the new binding: Get must
// hand back an independent copy of the signers map, not a reference to
// the one AttachSigner goes on to replace.
func TestGuardUnaffectedByLaterAttachSigner(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("foo"); err != nil {
		t.Fatal(err)
	}

	before := r.Get("foo")
	if err := r.AttachSigner("foo", SignerBinding{Provider: "softsign", PubKey: []byte{9}}); err != nil {
		t.Fatal(err)
	}

	if _, ok := before.Chain().SignerBinding("softsign"); ok {
		t.Fatal("Guard taken before AttachSigner should not see the new binding")
	}
	after := r.Get("foo")
	if _, ok := after.Chain().SignerBinding("softsign"); !ok {
		t.Fatal("Guard taken after AttachSigner should see the new binding")
	}
}

// TestConcurrentAttachSignerAgainstLiveGuard holds a Guard from Get and
// concurrently calls AttachSigner many times on the same chain, then
// reads through the held Guard. AttachSigner must never mutate the map
// the Guard is holding in place — it replaces it wholesale — so this
// must run clean under the race detector even though it isn't run here.
func TestConcurrentAttachSignerAgainstLiveGuard(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("foo"); err != nil {
		t.Fatal(err)
	}
	held := r.Get("foo")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = r.AttachSigner("foo", SignerBinding{Provider: "p", PubKey: []byte{byte(i)}})
		}(i)
	}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = held.Chain().SignerBinding("p")
		}()
	}
	wg.Wait()
}

// TestConcurrentReadersWriters exercises the readers-writer discipline
// directly: many concurrent readers of distinct (and the same) chain IDs
// must never observe a torn Chain value while a writer registers more
// chains concurrently.
func TestConcurrentReadersWriters(t *testing.T) {
	r := NewRegistry()
	const chains = 50

	var wg sync.WaitGroup
	for i := 0; i < chains; i++ {
		id := ID(rune('a' + i%26))
		wg.Add(1)
		go func(id ID) {
			defer wg.Done()
			_ = r.Register(id) // duplicates across the 'a'-'z' wrap are expected and ignored
		}(id)
	}
	for i := 0; i < chains*4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := ID(rune('a' + i%26))
			_ = r.Get(id)
		}(i)
	}
	wg.Wait()
}
