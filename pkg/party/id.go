package party

import (
	"encoding/binary"
	"io"
	"strconv"

	"github.com/cronokirby/saferith"
	"github.com/quorumsig/gg20/pkg/math/curve"
)

// ByteSize is the number of bytes required to store an ID.
const ByteSize = 2

// ID identifies a protocol participant by its index in [1, n].
// The index doubles as the party's evaluation point for secret sharing.
// The zero value is reserved: a message addressed to 0 is a broadcast.
type ID uint16

// Broadcast is the receiver ID used for messages addressed to all parties.
const Broadcast ID = 0

// Scalar returns the ID as a scalar of the given group.
// It panics on the reserved zero ID, which would leak the shared secret
// if used as an evaluation point.
func (id ID) Scalar(group curve.Curve) curve.Scalar {
	if id == 0 {
		panic("party.ID: the zero ID has no evaluation point")
	}
	return group.NewScalar().SetNat(new(saferith.Nat).SetUint64(uint64(id)))
}

// Bytes returns a big-endian []byte slice of length party.ByteSize.
func (id ID) Bytes() []byte {
	bytes := make([]byte, ByteSize)
	binary.BigEndian.PutUint16(bytes, uint16(id))
	return bytes
}

// String returns a base 10 representation of the ID.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (id ID) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(id.Bytes())
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (ID) Domain() string {
	return "Party ID"
}

// FromBytes reads the first party.ByteSize bytes from b and creates an ID from it.
func FromBytes(b []byte) ID {
	return ID(binary.BigEndian.Uint16(b))
}
