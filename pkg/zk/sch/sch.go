// Package zksch implements a Schnorr proof of knowledge of the discrete
// logarithm of a public point X = x⋅G.
//
// The challenge is derived with Fiat-Shamir over SHA-256.
package zksch

import (
	"crypto/rand"
	"crypto/sha256"

	"github.com/quorumsig/gg20/pkg/math/curve"
	"github.com/quorumsig/gg20/pkg/math/sample"
)

// domain separates this proof's transcript from other uses of SHA-256.
const domain = "DLogProof"

type Proof struct {
	// A = a⋅G commits to the prover's randomness a.
	A curve.Point
	// Z = a + e⋅x (mod q).
	Z curve.Scalar
}

// challenge returns e = H(domain ∥ A ∥ G ∥ X) reduced to a scalar.
func challenge(group curve.Curve, A, X curve.Point) (curve.Scalar, error) {
	h := sha256.New()
	h.Write([]byte(domain))
	for _, p := range []curve.Point{A, group.NewBasePoint(), X} {
		data, err := p.MarshalBinary()
		if err != nil {
			return nil, err
		}
		h.Write(data)
	}
	return curve.FromHash(group, h.Sum(nil)), nil
}

// NewProof proves knowledge of x such that X = x⋅G.
func NewProof(group curve.Curve, X curve.Point, x curve.Scalar) (*Proof, error) {
	a := sample.Scalar(rand.Reader, group)
	A := a.ActOnBase()

	e, err := challenge(group, A, X)
	if err != nil {
		return nil, err
	}
	// z = a + e⋅x
	z := e.Mul(x).Add(a)
	return &Proof{A: A, Z: z}, nil
}

// Verify checks that z⋅G = A + e⋅X.
func (p *Proof) Verify(group curve.Curve, X curve.Point) bool {
	if !p.IsValid() || X == nil || X.IsIdentity() {
		return false
	}

	e, err := challenge(group, p.A, X)
	if err != nil {
		return false
	}

	lhs := p.Z.ActOnBase()
	rhs := e.Act(X).Add(p.A)

	return lhs.Equal(rhs)
}

// IsValid rejects proofs with missing fields, an identity commitment,
// or a zero response.
func (p *Proof) IsValid() bool {
	if p == nil || p.A == nil || p.Z == nil {
		return false
	}
	if p.A.IsIdentity() || p.Z.IsZero() {
		return false
	}
	return true
}

// EmptyProof returns a Proof with group initialized fields,
// ready to be unmarshalled into.
func EmptyProof(group curve.Curve) *Proof {
	return &Proof{A: group.NewPoint(), Z: group.NewScalar()}
}
