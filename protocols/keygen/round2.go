package keygen

import (
	"github.com/quorumsig/gg20/pkg/hash"
	"github.com/quorumsig/gg20/pkg/math/curve"
	"github.com/quorumsig/gg20/pkg/math/polynomial"
	"github.com/quorumsig/gg20/pkg/paillier"
	"github.com/quorumsig/gg20/pkg/party"
	"github.com/quorumsig/gg20/pkg/pedersen"
	"github.com/quorumsig/gg20/pkg/round"
	zkmod "github.com/quorumsig/gg20/pkg/zk/mod"
	zkprm "github.com/quorumsig/gg20/pkg/zk/prm"
)

// Round2 waits for the decommitments to every party's contribution.
type Round2 struct {
	*Round1
	// commitments[j-1] is the round 1 broadcast of party j.
	commitments []*Broadcast1
}

// ExpectsMessages returns the store collecting the round 2 broadcasts of
// the other parties.
func (r *Round2) ExpectsMessages() *round.BroadcastMsgs[*Broadcast2] {
	return round.NewBroadcastMsgs[*Broadcast2](r.selfID, r.n)
}

// Proceed verifies the key material of every peer and distributes the
// Feldman shares:
//
// - check the decommitment of yⱼ against the round 1 commitment.
// - validate Nⱼ and the Pedersen parameters (sⱼ, tⱼ).
// - verify the Paillier-Blum and ring-Pedersen proofs.
// - share uᵢ with a degree t polynomial fᵢ, sending Encⱼ(fᵢ(j)) together
//   with the exponent polynomial Fᵢ to every party j.
//
// Any failed check is fatal. The error lists all parties whose key
// material was rejected.
func (r *Round2) Proceed(input *round.BroadcastMsgs[*Broadcast2], out chan<- *round.Message) (*Round3, error) {
	decommitments := input.IncludingSelf(&Broadcast2{Y: r.keys.y, Decommitment: r.decommitment})

	ys := make([]curve.Point, r.n)
	paillierPublic := make([]*paillier.PublicKey, r.n)
	pedersens := make([]*pedersen.Parameters, r.n)
	var culprits []party.ID
	for j := 1; j <= r.n; j++ {
		if party.ID(j) == r.selfID {
			ys[j-1] = r.keys.y
			paillierPublic[j-1] = r.keys.paillierSecret.PublicKey
			pedersens[j-1] = r.keys.pedersen
			continue
		}
		bc, dec := r.commitments[j-1], decommitments[j-1]
		if !r.validKeyMaterial(bc, dec) {
			culprits = append(culprits, party.ID(j))
			continue
		}
		ys[j-1] = dec.Y
		paillierPublic[j-1] = paillier.NewPublicKey(bc.N)
		pedersens[j-1] = pedersen.New(paillierPublic[j-1].Modulus(), bc.S, bc.T)
	}
	if len(culprits) > 0 {
		r.keys.wipe(r.group)
		return nil, &Error{Err: ErrRound2, Culprits: party.NewIDSlice(culprits)}
	}

	vss := polynomial.NewPolynomial(r.group, r.threshold, r.keys.u)
	defer vss.Wipe()
	vssExp := polynomial.NewPolynomialExponent(vss)
	ownShare := vss.Evaluate(r.selfID.Scalar(r.group))
	for j := 1; j <= r.n; j++ {
		id := party.ID(j)
		if id == r.selfID {
			continue
		}
		share := vss.Evaluate(id.Scalar(r.group))
		ciphertext, _ := paillierPublic[j-1].Enc(curve.MakeInt(share))
		share.Set(r.group.NewScalar())
		if err := round.SendTo(out, r.selfID, id, &Message3{VSS: vssExp, Share: ciphertext}); err != nil {
			return nil, err
		}
	}

	return &Round3{
		Round2:         r,
		ys:             ys,
		paillierPublic: paillierPublic,
		pedersen:       pedersens,
		ownVSS:         vssExp,
		ownShare:       ownShare,
	}, nil
}

// validKeyMaterial runs all round 2 checks for a single peer.
func (r *Round2) validKeyMaterial(bc *Broadcast1, dec *Broadcast2) bool {
	if bc.N == nil || bc.S == nil || bc.T == nil || dec.Y == nil {
		return false
	}
	if !hash.New().Decommit(bc.Commitment, dec.Decommitment, dec.Y) {
		return false
	}
	if paillier.ValidateN(bc.N) != nil {
		return false
	}
	if pedersen.ValidateParameters(bc.N, bc.S, bc.T) != nil {
		return false
	}
	if !bc.Mod.Verify(zkmod.Public{N: bc.N}, hash.New(), r.pool) {
		return false
	}
	if !bc.Prm.Verify(zkprm.Public{N: bc.N, S: bc.S, T: bc.T}, hash.New(), r.pool) {
		return false
	}
	return true
}

// Number returns 2.
func (*Round2) Number() round.Number { return 2 }

// IsExpensive is true: 2(n-1) proof verifications and n-1 Paillier
// encryptions.
func (*Round2) IsExpensive() bool { return true }
