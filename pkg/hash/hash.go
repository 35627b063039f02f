package hash

import (
	"encoding"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/quorumsig/gg20/internal/params"
	"github.com/zeebo/blake3"
)

// DigestLengthBytes is the length of a full hash output, which provides
// collision resistance at the level of params.SecParam.
const DigestLengthBytes = params.SecBytes * 2 // 64

// Hash is the hash function used for commitments, challenges, and domain
// separated transcripts.
//
// Internally, this is a wrapper around blake3.Hasher, but any hash function
// with an easily extendable output would work as well.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash struct with a fresh internal state.
func New() *Hash {
	return &Hash{h: blake3.New()}
}

// Digest returns a reader for the current output of the function.
//
// This finalizes the current state of the hash, and returns what's
// essentially a stream of random bytes.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a slice of length DigestLengthBytes resulting from the current hash state.
// If a different length is required, use io.ReadFull(hash.Digest(), out) instead.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny takes many different data types and writes them to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - *big.Int
//   - *saferith.Nat
//   - *saferith.Int
//   - *saferith.Modulus
//   - curve.Point and curve.Scalar, via encoding.BinaryMarshaler
//   - hash.WriterToWithDomain
//
// This function applies its own domain separation, so that writing the same
// bytes as two different types yields different hash states.
func (hash *Hash) WriteAny(data ...interface{}) error {
	var err error
	for _, d := range data {
		switch t := d.(type) {
		case []byte:
			if t == nil {
				return errors.New("hash.Hash: write []byte: nil")
			}
			err = writeWithDomain(hash.h, BytesWithDomain{
				TheDomain: "[]byte",
				Bytes:     t,
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write []byte: %w", err)
			}
		case *big.Int:
			if t == nil {
				return errors.New("hash.Hash: write *big.Int: nil")
			}
			var bytes []byte
			if t.BitLen() <= params.BitsIntModN && t.Sign() == 1 {
				bytes = make([]byte, params.BytesIntModN)
				t.FillBytes(bytes)
			} else {
				bytes, err = t.GobEncode()
				if err != nil {
					return fmt.Errorf("hash.Hash: GobEncode: %w", err)
				}
			}
			err = writeWithDomain(hash.h, BytesWithDomain{
				TheDomain: "big.Int",
				Bytes:     bytes,
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write *big.Int: %w", err)
			}
		case *saferith.Nat:
			if t == nil {
				return errors.New("hash.Hash: write *saferith.Nat: nil")
			}
			err = writeWithDomain(hash.h, BytesWithDomain{
				TheDomain: "saferith.Nat",
				Bytes:     t.Bytes(),
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write *saferith.Nat: %w", err)
			}
		case *saferith.Int:
			if t == nil {
				return errors.New("hash.Hash: write *saferith.Int: nil")
			}
			bytes := append([]byte{byte(t.IsNegative())}, t.Abs().Bytes()...)
			err = writeWithDomain(hash.h, BytesWithDomain{
				TheDomain: "saferith.Int",
				Bytes:     bytes,
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write *saferith.Int: %w", err)
			}
		case *saferith.Modulus:
			if t == nil {
				return errors.New("hash.Hash: write *saferith.Modulus: nil")
			}
			err = writeWithDomain(hash.h, BytesWithDomain{
				TheDomain: "saferith.Modulus",
				Bytes:     t.Nat().Bytes(),
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write *saferith.Modulus: %w", err)
			}
		case WriterToWithDomain:
			if err = writeWithDomain(hash.h, t); err != nil {
				return fmt.Errorf("hash.Hash: write %s: %w", t.Domain(), err)
			}
		case encoding.BinaryMarshaler:
			bytes, err := t.MarshalBinary()
			if err != nil {
				return fmt.Errorf("hash.Hash: marshal: %w", err)
			}
			err = writeWithDomain(hash.h, BytesWithDomain{
				TheDomain: "BinaryMarshaler",
				Bytes:     bytes,
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write BinaryMarshaler: %w", err)
			}
		default:
			panic(fmt.Sprintf("hash.Hash: unsupported type: %T", d))
		}
	}
	return nil
}

// Clone returns a copy of the Hash in its current state.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}

// writeWithDomain writes out a piece of data, using its domain.
func writeWithDomain(w io.Writer, object WriterToWithDomain) error {
	// Write out `(<domain><data>)`, so that each domain separated piece of data
	// is distinguished from others.
	if _, err := w.Write([]byte("(")); err != nil {
		return err
	}
	if _, err := w.Write([]byte(object.Domain())); err != nil {
		return err
	}
	if _, err := object.WriteTo(w); err != nil {
		return err
	}
	if _, err := w.Write([]byte(")")); err != nil {
		return err
	}
	return nil
}
