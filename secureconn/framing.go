package secureconn

import (
	"encoding/binary"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// DataMaxSize is the largest plaintext chunk carried by one frame.
	DataMaxSize = 1024
	// dataLenSize is the width of the big-endian chunk-length prefix.
	dataLenSize = 4
	// plaintextSize is the full 1028-byte plaintext sealed per frame.
	plaintextSize = dataLenSize + DataMaxSize
	// TagSize is the Poly1305 authentication tag width.
	TagSize = chacha20poly1305.Overhead // 16
	// FrameSize is the full sealed wire size of one frame.
	FrameSize = plaintextSize + TagSize // 1044
)

// frameCodec implements the fixed-size AEAD framing protocol over a raw
// duplex byte stream. The read half and write half touch disjoint state
// (recvAEAD/recvNonce/recvBuffer/openBuf vs sendAEAD/sendNonce/sealBuf) so a codec may be
// split into independent reader/writer values; see Conn.Split.
type frameCodec struct {
	rw io.ReadWriter

	sendAEAD  cipherAEAD
	sendNonce Nonce

	recvAEAD   cipherAEAD
	recvNonce  Nonce
	recvBuffer []byte // plaintext bytes decoded but not yet delivered

	sealBuf   [plaintextSize + TagSize]byte
	openBuf   [FrameSize]byte
}

// cipherAEAD is the minimal surface this package needs from an AEAD;
// satisfied by chacha20poly1305.New's return value.
type cipherAEAD interface {
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
}

func newFrameCodec(rw io.ReadWriter, sendKey, recvKey [keyLen]byte) (*frameCodec, error) {
	sendAEAD, err := chacha20poly1305.New(sendKey[:])
	if err != nil {
		return nil, newErr(CryptoError, "new_frame_codec", err)
	}
	recvAEAD, err := chacha20poly1305.New(recvKey[:])
	if err != nil {
		return nil, newErr(CryptoError, "new_frame_codec", err)
	}
	return &frameCodec{rw: rw, sendAEAD: sendAEAD, recvAEAD: recvAEAD}, nil
}

// writeFrame seals exactly one frame carrying up to DataMaxSize bytes of
// chunk and writes it to the transport atomically. It advances sendNonce on
// success.
func (c *frameCodec) writeFrame(chunk []byte) error {
	if len(chunk) > DataMaxSize {
		panic("secureconn: internal: chunk exceeds DataMaxSize")
	}

	var plain [plaintextSize]byte
	binary.BigEndian.PutUint32(plain[0:dataLenSize], uint32(len(chunk)))
	copy(plain[dataLenSize:], chunk)
	// remainder is already zero-valued padding

	sealed := c.sealBuf[:0]
	sealed = c.sendAEAD.Seal(sealed, c.sendNonce.Bytes(), plain[:], nil)

	if err := writeAll(c.rw, sealed); err != nil {
		return newErr(TransportError, "frame_codec.write", err)
	}
	if err := c.sendNonce.Incr(); err != nil {
		return err
	}
	return nil
}

// write fragments data into ceil(len(data)/DataMaxSize) frames and writes
// each in turn, returning the number of plaintext bytes consumed.
func (c *frameCodec) write(data []byte) (int, error) {
	total := 0
	for len(data) > 0 {
		n := len(data)
		if n > DataMaxSize {
			n = DataMaxSize
		}
		if err := c.writeFrame(data[:n]); err != nil {
			return total, err
		}
		total += n
		data = data[n:]
	}
	return total, nil
}

// read satisfies one Read call: it first drains recvBuffer (the only
// source of short reads besides end-of-stream), otherwise it blocks for
// exactly one frame, authenticates it, validates L, and delivers as much
// as fits in out while buffering the remainder.
func (c *frameCodec) read(out []byte) (int, error) {
	if len(c.recvBuffer) > 0 {
		n := copy(out, c.recvBuffer)
		c.recvBuffer = c.recvBuffer[n:]
		return n, nil
	}

	sealed := c.openBuf[:]
	if _, err := io.ReadFull(c.rw, sealed); err != nil {
		return 0, newErr(TransportError, "frame_codec.read", err)
	}

	plain, err := c.recvAEAD.Open(sealed[:0], c.recvNonce.Bytes(), sealed, nil)
	if err != nil {
		return 0, newErr(CryptoError, "frame_codec.read", err)
	}
	if err := c.recvNonce.Incr(); err != nil {
		return 0, err
	}

	l := binary.BigEndian.Uint32(plain[0:dataLenSize])
	if l > DataMaxSize {
		return 0, newErr(ProtocolError, "frame_codec.read", errFrameTooLarge)
	}

	chunk := plain[dataLenSize : dataLenSize+l]
	n := copy(out, chunk)
	if uint32(n) < l {
		leftover := make([]byte, l-uint32(n))
		copy(leftover, chunk[n:])
		c.recvBuffer = leftover
	}
	return n, nil
}

var errFrameTooLarge = errors.New("frame length exceeds 1024 bytes")

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
