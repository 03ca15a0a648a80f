package secureconn

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"

	"golang.org/x/crypto/curve25519"
)

// Signer is the external collaborator that owns the long-term Ed25519
// signing key. The core only ever asks it to sign the derived challenge
// and to report its public key; key custody, hardware integration, and
// provider selection are all out of scope here.
type Signer interface {
	PublicKey() ed25519.PublicKey
	Sign(msg []byte) ([]byte, error)
}

// ephemeralKeyLen is the length of the X25519 public key wire element,
// framed as a length-delimited field whose length byte is always 0x20.
const ephemeralKeyLen = 32

// authSigFieldKey, authSigFieldSig are the Amino-style field tags used by
// the AuthSigMessage length-delimited encoding (field 1 = key, field 2 =
// sig, both typ3 = ByteLength).
const (
	authSigFieldKey = 1
	authSigFieldSig = 2
)

// Handshake runs the SecretConnection handshake over rw using the local
// signer, returning a ready-to-use Conn or a fatal error. Neither side
// retries; a short read or a decode error at any step aborts the session.
func Handshake(rw io.ReadWriter, signer Signer) (*Conn, error) {
	ephPub, ephPriv, err := genEphemeralKeypair()
	if err != nil {
		return nil, newErr(CryptoError, "handshake.gen_ephemeral", err)
	}

	remoteEphPub, err := exchangeEphemeralPubKey(rw, ephPub)
	if err != nil {
		return nil, err
	}

	shared, err := curve25519.X25519(ephPriv[:], remoteEphPub[:])
	if err != nil {
		return nil, newErr(CryptoError, "handshake.x25519", err)
	}
	var sharedArr [32]byte
	copy(sharedArr[:], shared)

	_, _, locIsLo := sort32(ephPub, remoteEphPub)

	keys, err := deriveSessionKeys(sharedArr, locIsLo)
	if err != nil {
		return nil, err
	}

	codec, err := newFrameCodec(rw, keys.sendKey, keys.recvKey)
	if err != nil {
		return nil, err
	}

	localSig, err := signer.Sign(keys.challenge[:])
	if err != nil {
		return nil, newErr(SigningError, "handshake.sign_challenge", err)
	}

	localMsg := encodeAuthSigMessage(signer.PublicKey(), localSig)
	writeErr := make(chan error, 1)
	go func() {
		_, err := codec.write(localMsg)
		writeErr <- err
	}()

	remotePub, remoteSig, err := readAuthSigMessage(codec)
	if err != nil {
		return nil, err
	}
	if err := <-writeErr; err != nil {
		return nil, err
	}

	if !ed25519.Verify(remotePub, keys.challenge[:], remoteSig) {
		return nil, newErr(ChallengeVerification, "handshake.verify_challenge", errors.New("signature does not verify"))
	}

	return &Conn{codec: codec, remotePubKey: remotePub}, nil
}

func genEphemeralKeypair() (pub, priv [32]byte, err error) {
	if _, err = io.ReadFull(rand.Reader, priv[:]); err != nil {
		return pub, priv, err
	}
	pubSlice, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return pub, priv, err
	}
	copy(pub[:], pubSlice)
	return pub, priv, nil
}

// exchangeEphemeralPubKey writes the local ephemeral key as a 33-byte
// length-delimited element (varint length 32, then the key) and reads the
// peer's element of the same exact shape. The write runs concurrently with
// the read, so two peers on an unbuffered transport do not block each
// other. This is a hand-encoded field, not a general framing format: a
// leading byte other than 0x20 is a fatal ProtocolError, and a read that
// ends before 33 bytes is a fatal TransportError.
func exchangeEphemeralPubKey(rw io.ReadWriter, local [32]byte) ([32]byte, error) {
	var wire [1 + ephemeralKeyLen]byte
	wire[0] = ephemeralKeyLen
	copy(wire[1:], local[:])
	writeErr := make(chan error, 1)
	go func() { writeErr <- writeAll(rw, wire[:]) }()

	var remoteWire [1 + ephemeralKeyLen]byte
	if _, err := io.ReadFull(rw, remoteWire[:]); err != nil {
		return [32]byte{}, newErr(TransportError, "handshake.read_ephemeral_key", err)
	}
	if err := <-writeErr; err != nil {
		return [32]byte{}, newErr(TransportError, "handshake.write_ephemeral_key", err)
	}
	if remoteWire[0] != ephemeralKeyLen {
		return [32]byte{}, newErr(ProtocolError, "handshake.read_ephemeral_key", errors.New("expected varint length 32"))
	}
	var remote [32]byte
	copy(remote[:], remoteWire[1:])
	return remote, nil
}

// encodeAuthSigMessage builds the length-delimited AuthSigMessage wire
// form: field 1 (key, 32 bytes) then field 2 (sig, 64 bytes), each tagged
// (fieldNum<<3 | ByteLength) and length-prefixed with a uvarint.
func encodeAuthSigMessage(pub ed25519.PublicKey, sig []byte) []byte {
	out := make([]byte, 0, 2+len(pub)+2+len(sig))
	out = appendTaggedBytes(out, authSigFieldKey, pub)
	out = appendTaggedBytes(out, authSigFieldSig, sig)
	return out
}

func appendTaggedBytes(dst []byte, fieldNum int, v []byte) []byte {
	dst = append(dst, byte(fieldNum<<3)|byteLengthTag)
	dst = appendUvarint(dst, uint64(len(v)))
	return append(dst, v...)
}

const byteLengthTag = 2 // typ3 = ByteLength

func appendUvarint(dst []byte, v uint64) []byte {
	var buf [10]byte
	n := binary.PutUvarint(buf[:], v)
	return append(dst, buf[:n]...)
}

// readAuthSigMessage decodes the length-delimited AuthSigMessage sent
// through the already-established encrypted channel. It deliberately does
// not use a fixed-size read buffer (a known defect of the reference
// source); field lengths are read exactly as encoded.
func readAuthSigMessage(codec *frameCodec) (pub ed25519.PublicKey, sig []byte, err error) {
	r := &codecReader{codec: codec}

	gotKey, gotSig := false, false
	for i := 0; i < 2; i++ {
		tag, err := readByte(r)
		if err != nil {
			return nil, nil, newErr(ProtocolError, "handshake.read_auth_sig", err)
		}
		fieldNum := int(tag >> 3)
		typ3 := tag & 0x07
		if typ3 != byteLengthTag {
			return nil, nil, newErr(ProtocolError, "handshake.read_auth_sig", errors.New("unexpected field type"))
		}
		length, err := readUvarint(r)
		if err != nil {
			return nil, nil, newErr(ProtocolError, "handshake.read_auth_sig", err)
		}
		body := make([]byte, length)
		if _, err := io.ReadFull(r, body); err != nil {
			return nil, nil, newErr(ProtocolError, "handshake.read_auth_sig", err)
		}
		switch fieldNum {
		case authSigFieldKey:
			if len(body) != ed25519.PublicKeySize {
				return nil, nil, newErr(ProtocolError, "handshake.read_auth_sig", errors.New("bad public key length"))
			}
			pub = ed25519.PublicKey(body)
			gotKey = true
		case authSigFieldSig:
			if len(body) != ed25519.SignatureSize {
				return nil, nil, newErr(ProtocolError, "handshake.read_auth_sig", errors.New("bad signature length"))
			}
			sig = body
			gotSig = true
		default:
			return nil, nil, newErr(ProtocolError, "handshake.read_auth_sig", errors.New("unexpected field number"))
		}
	}
	if !gotKey || !gotSig {
		return nil, nil, newErr(ProtocolError, "handshake.read_auth_sig", errors.New("missing field"))
	}
	return pub, sig, nil
}

// codecReader adapts frameCodec.read to io.Reader so the handshake can
// reuse stdlib varint/byte helpers over the encrypted channel.
type codecReader struct {
	codec *frameCodec
}

func (r *codecReader) Read(p []byte) (int, error) {
	n, err := r.codec.read(p)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, io.ErrNoProgress
	}
	return n, nil
}

func readByte(r io.Reader) (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func readUvarint(r io.Reader) (uint64, error) {
	return binary.ReadUvarint(&byteReader{r: r})
}

// byteReader adapts io.Reader to io.ByteReader for binary.ReadUvarint.
type byteReader struct{ r io.Reader }

func (b *byteReader) ReadByte() (byte, error) { return readByte(b.r) }
