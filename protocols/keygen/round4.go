package keygen

import (
	"fmt"

	"github.com/quorumsig/gg20/pkg/math/curve"
	"github.com/quorumsig/gg20/pkg/math/polynomial"
	"github.com/quorumsig/gg20/pkg/party"
	"github.com/quorumsig/gg20/pkg/round"
)

// Round4 waits for every party's public share and proof of knowledge.
type Round4 struct {
	*Round3
	// vss[j-1] = Fⱼ(X), the exponent polynomial of party j.
	vss []*polynomial.Exponent
	// secretShare = xᵢ.
	secretShare curve.Scalar
	own         *Broadcast4
}

// ExpectsMessages returns the store collecting the final broadcasts of the
// other parties.
func (r *Round4) ExpectsMessages() *round.BroadcastMsgs[*Broadcast4] {
	return round.NewBroadcastMsgs[*Broadcast4](r.selfID, r.n)
}

// Proceed performs the final consistency check and assembles the key:
//
// - every claimed Xⱼ must equal F(j) for the joint polynomial F = Σₘ Fₘ,
//   so that all parties hold points on a single degree t polynomial.
// - every Schnorr proof must verify against Xⱼ.
//
// On success the returned LocalKey contains everything this party needs
// to take part in signing.
func (r *Round4) Proceed(input *round.BroadcastMsgs[*Broadcast4]) (*LocalKey, error) {
	proofs := input.IncludingSelf(r.own)

	joint, err := polynomial.Sum(r.vss)
	if err != nil {
		return nil, fmt.Errorf("keygen: joint polynomial: %w", err)
	}

	publicShares := make([]curve.Point, r.n)
	var culprits []party.ID
	for j := 1; j <= r.n; j++ {
		body := proofs[j-1]
		if body.X == nil ||
			!body.X.Equal(joint.Evaluate(party.ID(j).Scalar(r.group))) ||
			!body.Proof.Verify(r.group, body.X) {
			culprits = append(culprits, party.ID(j))
			continue
		}
		publicShares[j-1] = body.X
	}
	if len(culprits) > 0 {
		r.keys.wipe(r.group)
		r.secretShare.Set(r.group.NewScalar())
		return nil, &Error{Err: ErrRound4, Culprits: party.NewIDSlice(culprits)}
	}

	publicKey := r.group.NewPoint()
	for _, y := range r.ys {
		publicKey = publicKey.Add(y)
	}

	key := &LocalKey{
		Group:          r.group,
		ID:             r.selfID,
		Threshold:      r.threshold,
		PaillierSecret: r.keys.paillierSecret,
		SecretShare:    r.secretShare,
		PublicShares:   publicShares,
		PaillierPublic: r.paillierPublic,
		Pedersen:       r.pedersen,
		VSSPolynomial:  r.ownVSS,
		PublicKey:      publicKey,
	}
	r.keys.wipe(r.group)
	return key, nil
}

// Number returns 4.
func (*Round4) Number() round.Number { return 4 }

// IsExpensive is true: n Schnorr verifications against a joint polynomial
// evaluation.
func (*Round4) IsExpensive() bool { return true }
