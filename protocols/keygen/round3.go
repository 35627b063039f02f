package keygen

import (
	"fmt"

	"github.com/cronokirby/saferith"

	"github.com/quorumsig/gg20/pkg/math/curve"
	"github.com/quorumsig/gg20/pkg/math/polynomial"
	"github.com/quorumsig/gg20/pkg/paillier"
	"github.com/quorumsig/gg20/pkg/party"
	"github.com/quorumsig/gg20/pkg/pedersen"
	"github.com/quorumsig/gg20/pkg/round"
	zksch "github.com/quorumsig/gg20/pkg/zk/sch"
)

// Round3 waits for the exponent polynomials and the encrypted shares.
type Round3 struct {
	*Round2
	// ys[j-1] = yⱼ, the decommitted contribution of party j.
	ys []curve.Point
	// paillierPublic[j-1] is the validated encryption key of party j.
	paillierPublic []*paillier.PublicKey
	// pedersen[j-1] are the validated ring-Pedersen parameters of party j.
	pedersen []*pedersen.Parameters
	// ownVSS = Fᵢ(X) = fᵢ(X)•G.
	ownVSS *polynomial.Exponent
	// ownShare = fᵢ(i).
	ownShare curve.Scalar
}

// ExpectsMessages returns the store collecting the n-1 direct messages of
// round 3.
func (r *Round3) ExpectsMessages() *round.P2PMsgs[*Message3] {
	return round.NewP2PMsgs[*Message3](r.selfID, r.n)
}

// Proceed decrypts the received shares and checks them against the
// senders' exponent polynomials:
//
// - decrypt cⱼ and reduce the plaintext mod the group order.
// - require deg Fⱼ = t, Fⱼ(0) = yⱼ, and fⱼ(i)•G = Fⱼ(i).
// - compute the secret share xᵢ = Σⱼ fⱼ(i), and broadcast Xᵢ = xᵢ•G with
//   a Schnorr proof of knowledge of xᵢ.
//
// A party whose share fails any of these checks is reported in the fatal
// error.
func (r *Round3) Proceed(input *round.P2PMsgs[*Message3], out chan<- *round.Message) (*Round4, error) {
	vss := make([]*polynomial.Exponent, r.n)
	shares := make([]curve.Scalar, r.n)
	vss[r.selfID-1] = r.ownVSS
	shares[r.selfID-1] = r.ownShare

	bad := make([]bool, r.n+1)
	for _, m := range input.Indexed() {
		j := m.From
		if m.Content.VSS == nil {
			bad[j] = true
			continue
		}
		plain, err := r.keys.paillierSecret.Dec(m.Content.Share)
		if err != nil {
			bad[j] = true
			continue
		}
		vss[j-1] = m.Content.VSS
		shares[j-1] = r.shareScalar(plain)
	}

	selfScalar := r.selfID.Scalar(r.group)
	for j := 1; j <= r.n; j++ {
		if bad[j] {
			continue
		}
		F := vss[j-1]
		if F.Degree() != r.threshold ||
			!F.Constant().Equal(r.ys[j-1]) ||
			!shares[j-1].ActOnBase().Equal(F.Evaluate(selfScalar)) {
			bad[j] = true
		}
	}

	var culprits []party.ID
	for j := 1; j <= r.n; j++ {
		if bad[j] {
			culprits = append(culprits, party.ID(j))
		}
	}
	if len(culprits) > 0 {
		r.keys.wipe(r.group)
		zero := r.group.NewScalar()
		for _, s := range shares {
			if s != nil {
				s.Set(zero)
			}
		}
		return nil, &Error{Err: ErrRound3, Culprits: party.NewIDSlice(culprits)}
	}

	// The individual shares are no longer needed once summed.
	secretShare := r.group.NewScalar()
	zero := r.group.NewScalar()
	for _, s := range shares {
		secretShare.Add(s)
		s.Set(zero)
	}
	publicShare := secretShare.ActOnBase()
	proof, err := zksch.NewProof(r.group, publicShare, secretShare)
	if err != nil {
		return nil, fmt.Errorf("keygen: schnorr proof: %w", err)
	}
	own := &Broadcast4{X: publicShare, Proof: proof}
	if err := round.Broadcast(out, r.selfID, own); err != nil {
		return nil, err
	}

	return &Round4{
		Round3:      r,
		vss:         vss,
		secretShare: secretShare,
		own:         own,
	}, nil
}

// shareScalar maps a Paillier plaintext in ±N/2 to its non-negative
// residue mod N, then reduces mod the group order.
func (r *Round3) shareScalar(plain *saferith.Int) curve.Scalar {
	nat := plain.Abs()
	if plain.IsNegative() == 1 {
		nat = new(saferith.Nat).ModNeg(nat, r.keys.paillierSecret.N())
	}
	return r.group.NewScalar().SetNat(nat)
}

// Number returns 3.
func (*Round3) Number() round.Number { return 3 }

// IsExpensive is true: n-1 Paillier decryptions and n polynomial
// evaluations in the exponent.
func (*Round3) IsExpensive() bool { return true }
