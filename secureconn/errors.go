package secureconn

import "fmt"

// Kind disjointly categorizes every failure this package can surface. None
// of them are recovered internally: once returned, the connection that
// produced them must be dropped by the caller.
type Kind int

const (
	// TransportError covers short reads, disconnects, and other
	// underlying transport failures.
	TransportError Kind = iota
	// ProtocolError covers malformed length prefixes, oversized frames,
	// truncated handshake messages, and unexpected field numbers.
	ProtocolError
	// CryptoError covers AEAD authentication failures and HKDF/X25519
	// misuse.
	CryptoError
	// ChallengeVerification covers a peer signature over the derived
	// challenge that fails to verify.
	ChallengeVerification
	// NonceExhausted covers a 96-bit nonce counter that has wrapped.
	NonceExhausted
	// SigningError covers a failure of the local signing capability.
	SigningError
	// ConfigError is reserved for parity with chain.Kind; unused
	// directly by this package.
	ConfigError
	// InvalidKey is reserved for parity with chain.Kind; unused
	// directly by this package.
	InvalidKey
)

func (k Kind) String() string {
	switch k {
	case TransportError:
		return "TransportError"
	case ProtocolError:
		return "ProtocolError"
	case CryptoError:
		return "CryptoError"
	case ChallengeVerification:
		return "ChallengeVerification"
	case NonceExhausted:
		return "NonceExhausted"
	case SigningError:
		return "SigningError"
	case ConfigError:
		return "ConfigError"
	case InvalidKey:
		return "InvalidKey"
	default:
		return "UnknownError"
	}
}

// Error is the single error type this package returns. Callers that need
// to branch on category should use errors.As and inspect Kind, rather than
// comparing against sentinel values, since the wrapped cause varies.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("secureconn: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("secureconn: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// ErrNonceExhausted is returned by Nonce.Incr once the 96-bit counter has
// wrapped to all-zero; the session must not send or receive another frame.
var ErrNonceExhausted = newErr(NonceExhausted, "nonce.incr", nil)
