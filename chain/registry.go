// Package chain implements the process-wide registry mapping a chain
// identifier to the signer bindings resolvable for it. The registry is
// read-mostly: entries are registered once at configuration time, and the
// RWMutex discipline exists to support a future reload path without
// widening the registry to an upsert API (see Registry.Register).
package chain

import "sync"

// ID is an opaque chain identifier, e.g. a Tendermint chain-id string.
type ID string

// SignerBinding associates a provider identifier (e.g. "softsign",
// "yubihsm") with the public key of the signer resolved for this chain. The core
// only consumes the Signer interface secureconn.Handshake already
// defines; Registry stores bindings keyed by provider so a caller can look
// up "the signer this chain uses for provider X" without the core needing
// to know anything about provider selection policy.
type SignerBinding struct {
	Provider string
	PubKey   []byte
}

// Chain is an immutable-after-registration chain entry: its ID plus
// whatever signer bindings configuration time attached to it.
type Chain struct {
	ID      ID
	signers map[string]SignerBinding
}

// Registry is a mutex-guarded map from chain ID to Chain. Construct one
// with NewRegistry.
type Registry struct {
	mu     sync.RWMutex
	order  []ID // insertion order, since Go maps have none and a BTreeMap-equivalent key order isn't needed here
	chains map[ID]Chain
}

// NewRegistry returns an empty, ready-to-use Registry.
func NewRegistry() *Registry {
	return &Registry{chains: make(map[ID]Chain)}
}

// Register inserts chain into the registry. It fails with a ConfigError if
// the chain's ID is already present — there is no upsert path, by design:
// widening this to update-in-place needs a migration story first.
func (r *Registry) Register(id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.chains[id]; exists {
		return newErr(ConfigError, "register", id, nil)
	}
	r.chains[id] = Chain{ID: id, signers: make(map[string]SignerBinding)}
	r.order = append(r.order, id)
	return nil
}

// Guard is a read-only snapshot of one registry entry, taken under the
// read lock by Get. It holds no lock itself, so a caller may keep it
// across Register or AttachSigner calls on the same goroutine without
// deadlock; it does not reflect changes made after Get returned.
type Guard struct {
	chain Chain
	ok    bool
}

// Get acquires the read lock and returns a Guard exposing read-only
// lookups for id. The lock is released before Get returns; Guard does not
// hold it open past the call that produced it — it snapshots the chain's
// state under the lock instead. The snapshot
// copies the signers map itself, not just its header: AttachSigner never
// mutates a map a Guard might already be holding, but copying here as
// well means Get's result is safe to read even against a past version of
// AttachSigner, and costs nothing extra when there are no signers.
func (r *Registry) Get(id ID) Guard {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.chains[id]
	if ok {
		c.signers = cloneSigners(c.signers)
	}
	return Guard{chain: c, ok: ok}
}

func cloneSigners(m map[string]SignerBinding) map[string]SignerBinding {
	out := make(map[string]SignerBinding, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Found reports whether the chain was registered.
func (g Guard) Found() bool { return g.ok }

// Chain returns the registered chain entry, or the zero value if Found is
// false.
func (g Guard) Chain() Chain { return g.chain }

// SignerBinding looks up the binding for provider on this chain.
func (c Chain) SignerBinding(provider string) (SignerBinding, bool) {
	b, ok := c.signers[provider]
	return b, ok
}

// AttachSigner records a signer binding for an already-registered chain.
// It builds a new signers map holding the existing bindings plus binding
// and stores that back into r.chains, rather than writing into the
// existing map in place: a Guard obtained from an earlier Get may be
// holding that same map, and mutating it post-hoc would be an
// unsynchronized concurrent read/write on it from the Guard holder's
// point of view. Fails with InvalidKey if the chain was never registered.
func (r *Registry) AttachSigner(id ID, binding SignerBinding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.chains[id]
	if !ok {
		return newErr(InvalidKey, "attach_signer", id, nil)
	}
	next := cloneSigners(c.signers)
	next[binding.Provider] = binding
	c.signers = next
	r.chains[id] = c
	return nil
}

// IDs returns the registered chain IDs in registration order.
func (r *Registry) IDs() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ID, len(r.order))
	copy(out, r.order)
	return out
}
