package keygen

import (
	"github.com/cronokirby/saferith"

	"github.com/quorumsig/gg20/pkg/hash"
	"github.com/quorumsig/gg20/pkg/math/curve"
	"github.com/quorumsig/gg20/pkg/math/polynomial"
	"github.com/quorumsig/gg20/pkg/paillier"
	"github.com/quorumsig/gg20/pkg/round"
	zkmod "github.com/quorumsig/gg20/pkg/zk/mod"
	zkprm "github.com/quorumsig/gg20/pkg/zk/prm"
	zksch "github.com/quorumsig/gg20/pkg/zk/sch"
)

// Broadcast1 carries a hash commitment to the sender's ECDSA contribution
// together with its Paillier and ring-Pedersen parameters and the proofs
// of their well-formedness.
type Broadcast1 struct {
	// Commitment = H(yᵢ, ρᵢ) for a random blinding ρᵢ.
	Commitment hash.Commitment
	// N = pᵢ⋅qᵢ is the Paillier modulus.
	N *saferith.Modulus
	// S, T are the ring-Pedersen generators, with S = T^λ (mod N).
	S, T *saferith.Nat
	// Mod proves that N is a Paillier-Blum modulus.
	Mod *zkmod.Proof
	// Prm proves that S lies in the subgroup generated by T.
	Prm *zkprm.Proof
}

func (Broadcast1) RoundNumber() round.Number { return 1 }

// Broadcast2 reveals the contribution committed to in the previous round.
type Broadcast2 struct {
	// Y = uᵢ•G.
	Y curve.Point
	// Decommitment is the blinding of the round 1 commitment.
	Decommitment hash.Decommitment
}

func (Broadcast2) RoundNumber() round.Number { return 2 }

// EmptyBroadcast2 returns a Broadcast2 with a group initialized point,
// ready to be unmarshalled into.
func EmptyBroadcast2(group curve.Curve) *Broadcast2 {
	return &Broadcast2{Y: group.NewPoint()}
}

// Message3 is the only point-to-point message of the protocol. It delivers
// the receiver's Feldman share, encrypted under its Paillier key.
type Message3 struct {
	// VSS = Fᵢ(X) = fᵢ(X)•G is the sender's exponent polynomial.
	VSS *polynomial.Exponent
	// Share = Encⱼ(fᵢ(j)) for the receiving party j.
	Share *paillier.Ciphertext
}

func (Message3) RoundNumber() round.Number { return 3 }

// EmptyMessage3 returns a Message3 with a group initialized polynomial,
// ready to be unmarshalled into.
func EmptyMessage3(group curve.Curve) *Message3 {
	return &Message3{VSS: polynomial.EmptyExponent(group)}
}

// Broadcast4 announces the sender's public share with a proof of knowledge
// of the underlying secret.
type Broadcast4 struct {
	// X = xᵢ•G, where xᵢ = Σⱼ fⱼ(i).
	X curve.Point
	// Proof is a Schnorr proof of knowledge of xᵢ.
	Proof *zksch.Proof
}

func (Broadcast4) RoundNumber() round.Number { return 4 }

// EmptyBroadcast4 returns a Broadcast4 with group initialized fields,
// ready to be unmarshalled into.
func EmptyBroadcast4(group curve.Curve) *Broadcast4 {
	return &Broadcast4{X: group.NewPoint(), Proof: zksch.EmptyProof(group)}
}
