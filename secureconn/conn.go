package secureconn

import "crypto/ed25519"

// Conn is an established SecretConnection: an authenticated, encrypted
// duplex byte stream. Construct one with Handshake. Conn itself implements
// io.Reader and io.Writer for callers that only need one goroutine driving
// both directions; callers that want a reader goroutine and a writer
// goroutine running concurrently should call Split instead, since the read
// and write paths are independent resources (distinct nonce counters and
// buffers) but Conn does not itself serialize access between them.
type Conn struct {
	codec        *frameCodec
	remotePubKey ed25519.PublicKey
}

// RemotePublicKey returns the authenticated long-term Ed25519 public key of
// the peer, valid once Handshake has returned successfully.
func (c *Conn) RemotePublicKey() ed25519.PublicKey { return c.remotePubKey }

// Read implements io.Reader.
func (c *Conn) Read(p []byte) (int, error) { return c.codec.read(p) }

// Write implements io.Writer.
func (c *Conn) Write(p []byte) (int, error) { return c.codec.write(p) }

// Split partitions the connection into an independent Reader and Writer
// sharing the same underlying transport and AEAD state but touching
// disjoint fields, so one goroutine may safely read while another writes.
// Two goroutines must never share the same half: concurrent readers (or
// concurrent writers) would race the shared nonce counter and read buffer.
func (c *Conn) Split() (*Reader, *Writer) {
	return &Reader{codec: c.codec}, &Writer{codec: c.codec}
}

// Reader is the read half of a split Conn.
type Reader struct{ codec *frameCodec }

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) { return r.codec.read(p) }

// Writer is the write half of a split Conn.
type Writer struct{ codec *frameCodec }

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) { return w.codec.write(p) }
