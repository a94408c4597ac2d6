package treefmt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

const (
	// Magic is the snapshot file magic number (4 bytes).
	Magic = "MRPH"

	// Version is the format version (uint16, little-endian). Breaking
	// changes increment major, additions increment minor.
	Version uint16 = 0x0001
)

// maxBodyLen bounds the body allocation so a corrupted or hostile length
// field cannot OOM the reader. Even deeply nested trees stay far below this.
const maxBodyLen = 32 * 1024 * 1024

// Format: MAGIC(4) | VERSION(2) | FLAGS(2) | BODY_LEN(8) | BODY | DIGEST(32)
//
// BODY is the canonical CBOR encoding of Tree; DIGEST is BLAKE2b-256 over
// BODY. Flags are reserved.

// FormatError reports a snapshot that cannot be parsed.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed snapshot: %s", e.Reason)
}

// DigestError reports a snapshot whose body does not match its digest.
type DigestError struct {
	Want, Got [32]byte
}

func (e *DigestError) Error() string {
	return fmt.Sprintf("snapshot digest mismatch: header %x, body hashes to %x", e.Want, e.Got)
}

// Write serializes a tree to w and returns the body digest. Canonical CBOR
// keeps the output deterministic for a given tree.
func Write(w io.Writer, t Tree) ([32]byte, error) {
	var digest [32]byte

	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return digest, err
	}
	body, err := em.Marshal(t)
	if err != nil {
		return digest, err
	}

	hasher, err := blake2b.New256(nil)
	if err != nil {
		return digest, err
	}
	if _, err := hasher.Write(body); err != nil {
		return digest, err
	}
	copy(digest[:], hasher.Sum(nil))

	var buf bytes.Buffer
	buf.WriteString(Magic)
	if err := binary.Write(&buf, binary.LittleEndian, Version); err != nil {
		return digest, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint16(0)); err != nil {
		return digest, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint64(len(body))); err != nil {
		return digest, err
	}
	buf.Write(body)
	buf.Write(digest[:])

	_, err = w.Write(buf.Bytes())
	return digest, err
}

// Read parses a snapshot, verifying magic, version, and body digest.
func Read(r io.Reader) (Tree, [32]byte, error) {
	var tree Tree
	var digest [32]byte

	preamble := make([]byte, 16)
	if _, err := io.ReadFull(r, preamble); err != nil {
		return tree, digest, &FormatError{Reason: "truncated preamble"}
	}
	if string(preamble[:4]) != Magic {
		return tree, digest, &FormatError{Reason: fmt.Sprintf("bad magic %q", preamble[:4])}
	}
	version := binary.LittleEndian.Uint16(preamble[4:6])
	if version != Version {
		return tree, digest, &FormatError{Reason: fmt.Sprintf("unsupported version 0x%04x", version)}
	}
	bodyLen := binary.LittleEndian.Uint64(preamble[8:16])
	if bodyLen > maxBodyLen {
		return tree, digest, &FormatError{Reason: fmt.Sprintf("body length %d exceeds maximum %d", bodyLen, maxBodyLen)}
	}

	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return tree, digest, &FormatError{Reason: "truncated body"}
	}
	if _, err := io.ReadFull(r, digest[:]); err != nil {
		return tree, digest, &FormatError{Reason: "truncated digest"}
	}

	hasher, err := blake2b.New256(nil)
	if err != nil {
		return tree, digest, err
	}
	if _, err := hasher.Write(body); err != nil {
		return tree, digest, err
	}
	var got [32]byte
	copy(got[:], hasher.Sum(nil))
	if got != digest {
		return tree, digest, &DigestError{Want: digest, Got: got}
	}

	if err := cbor.Unmarshal(body, &tree); err != nil {
		return tree, digest, &FormatError{Reason: err.Error()}
	}
	return tree, digest, nil
}
