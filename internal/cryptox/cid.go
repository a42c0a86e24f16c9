// Package cryptox derives content identifiers for staged data.
//
// A CID is a CIDv1 (raw codec) over a BLAKE2b-256 multihash, rendered in
// lowercase base32 with the "b" multibase prefix, e.g. "bafk2bzace…".
package cryptox

import (
	"encoding/base32"
	"hash"
	"io"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// cidv1, raw codec (0x55), multihash blake2b-256 (0xb220 as varint), 32 bytes.
var cidPrefix = []byte{0x01, 0x55, 0xa0, 0xe4, 0x02, 0x20}

var cidEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// CIDHasher computes a CID incrementally. It implements io.Writer.
type CIDHasher struct {
	h    hash.Hash
	size int64
}

func NewCIDHasher() *CIDHasher {
	h, _ := blake2b.New256(nil)
	return &CIDHasher{h: h}
}

func (c *CIDHasher) Write(p []byte) (int, error) {
	n, err := c.h.Write(p)
	c.size += int64(n)
	return n, err
}

// Size is the number of bytes written so far.
func (c *CIDHasher) Size() int64 {
	return c.size
}

// CID returns the identifier of everything written so far.
func (c *CIDHasher) CID() string {
	b := append(append([]byte{}, cidPrefix...), c.h.Sum(nil)...)
	return "b" + strings.ToLower(cidEncoding.EncodeToString(b))
}

// ComputeCID returns the CID of data.
func ComputeCID(data []byte) string {
	h := NewCIDHasher()
	_, _ = h.Write(data)
	return h.CID()
}

// ReaderCID returns the CID and size of everything read from r.
func ReaderCID(r io.Reader) (string, int64, error) {
	h := NewCIDHasher()
	if _, err := io.Copy(h, r); err != nil {
		return "", 0, err
	}
	return h.CID(), h.Size(), nil
}
