package secureconn

import (
	"bytes"
	"crypto/rand"
	"errors"
	"io"
	"net"
	"testing"
)

// pipeCodecs returns two frameCodecs sharing a net.Pipe loopback, keyed so
// that writes from one side decrypt correctly on the other — mirroring
// the orientation deriveSessionKeys would produce for a real handshake,
// without running the handshake itself.
func pipeCodecs(t *testing.T) (a, b *frameCodec) {
	t.Helper()
	p1, p2 := net.Pipe()

	var k1, k2 [keyLen]byte
	if _, err := io.ReadFull(rand.Reader, k1[:]); err != nil {
		t.Fatal(err)
	}
	if _, err := io.ReadFull(rand.Reader, k2[:]); err != nil {
		t.Fatal(err)
	}

	ca, err := newFrameCodec(p1, k1, k2) // a sends with k1, receives with k2
	if err != nil {
		t.Fatal(err)
	}
	cb, err := newFrameCodec(p2, k2, k1) // b sends with k2, receives with k1
	if err != nil {
		t.Fatal(err)
	}
	return ca, cb
}

// TestFrameRoundTrip checks that writing through one side and reading the
// same count back through the other yields the bytes back exactly, for
// payloads both within and well beyond the 1024-byte frame size.
func TestFrameRoundTrip(t *testing.T) {
	sizes := []int{0, 1, 1023, 1024, 1025, 4096, 10000}
	for _, n := range sizes {
		n := n
		t.Run("", func(t *testing.T) {
			t.Parallel()
			a, b := pipeCodecs(t)
			want := make([]byte, n)
			if _, err := io.ReadFull(rand.Reader, want); err != nil {
				t.Fatal(err)
			}

			done := make(chan error, 1)
			go func() {
				_, err := a.write(want)
				done <- err
			}()

			got := make([]byte, n)
			if n > 0 {
				if _, err := io.ReadFull(readerFunc(b.read), got); err != nil {
					t.Fatalf("read: %v", err)
				}
			}
			if err := <-done; err != nil {
				t.Fatalf("write: %v", err)
			}
			if !bytes.Equal(got, want) {
				t.Fatalf("round trip mismatch for n=%d", n)
			}
		})
	}
}

type readerFunc func([]byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }

// TestFrameRejectsOversizedLength checks that a frame whose decrypted
// length field exceeds 1024 is rejected with ProtocolError rather than
// silently truncated or panicked on.
func TestFrameRejectsOversizedLength(t *testing.T) {
	a, b := pipeCodecs(t)

	// Forge a frame with L = 1025 by sealing it directly with a's send
	// key, bypassing writeFrame's own bound check.
	var plain [plaintextSize]byte
	plain[0], plain[1], plain[2], plain[3] = 0, 0, 4, 1 // big-endian 1025
	sealed := a.sendAEAD.Seal(nil, a.sendNonce.Bytes(), plain[:], nil)

	done := make(chan error, 1)
	go func() { done <- writeAll(a.rw, sealed) }()

	_, err := b.read(make([]byte, 1))
	if err := <-done; err != nil {
		t.Fatalf("write: %v", err)
	}

	var e *Error
	if !errors.As(err, &e) || e.Kind != ProtocolError {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
}

// TestFrameNonceMismatchFailsAuthentication checks that if a frame is
// dropped in flight, the receiver's next read uses a recvNonce that no
// longer matches the sender's sendNonce for the frame actually
// delivered, so authentication fails with CryptoError.
func TestFrameNonceMismatchFailsAuthentication(t *testing.T) {
	a, b := pipeCodecs(t)

	// Send three frames but advance a's nonce an extra time in between,
	// simulating a dropped frame the receiver never saw.
	done := make(chan error, 1)
	go func() {
		if _, err := a.write([]byte("first")); err != nil {
			done <- err
			return
		}
		if err := a.sendNonce.Incr(); err != nil { // pretend a second frame was sent and lost
			done <- err
			return
		}
		_, err := a.write([]byte("third"))
		done <- err
	}()

	buf := make([]byte, 5)
	if _, err := io.ReadFull(readerFunc(b.read), buf); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if string(buf) != "first" {
		t.Fatalf("got %q, want %q", buf, "first")
	}

	_, err := b.read(make([]byte, 5))
	if err == nil {
		t.Fatal("expected authentication failure on nonce-mismatched frame")
	}
	var e *Error
	if !errors.As(err, &e) || e.Kind != CryptoError {
		t.Fatalf("expected CryptoError, got %v", err)
	}
	if werr := <-done; werr != nil {
		t.Fatalf("write: %v", werr)
	}
}
