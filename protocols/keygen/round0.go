package keygen

import (
	"fmt"

	"github.com/quorumsig/gg20/pkg/hash"
	"github.com/quorumsig/gg20/pkg/math/curve"
	"github.com/quorumsig/gg20/pkg/party"
	"github.com/quorumsig/gg20/pkg/pool"
	"github.com/quorumsig/gg20/pkg/round"
	zkmod "github.com/quorumsig/gg20/pkg/zk/mod"
	zkprm "github.com/quorumsig/gg20/pkg/zk/prm"
)

// Round0 is the state of a party before any message has been exchanged.
type Round0 struct {
	group     curve.Curve
	selfID    party.ID
	threshold int
	n         int
	pool      *pool.Pool
}

// Proceed samples all long term key material:
//
// - the contribution uᵢ to the joint secret, with a hash commitment to
//   yᵢ = uᵢ•G.
// - the Paillier key pair, with a proof that Nᵢ is a Paillier-Blum modulus.
// - ring-Pedersen parameters (sᵢ, tᵢ) over ℤNᵢˣ, with a proof of
//   well-formedness.
//
// The public parts are broadcast. The commitment keeps yᵢ hidden until
// every party is bound to its own contribution.
func (r *Round0) Proceed(out chan<- *round.Message) (*Round1, error) {
	k := newKeys(r.group, r.pool)

	commitment, decommitment, err := hash.New().Commit(k.y)
	if err != nil {
		return nil, fmt.Errorf("keygen: commit: %w", err)
	}

	mod := zkmod.NewProof(hash.New(), zkmod.Private{
		P:   k.paillierSecret.P(),
		Q:   k.paillierSecret.Q(),
		Phi: k.paillierSecret.Phi(),
	}, zkmod.Public{N: k.paillierSecret.N()}, r.pool)

	prm := zkprm.NewProof(zkprm.Private{
		Lambda: k.lambda,
		Phi:    k.paillierSecret.Phi(),
		P:      k.paillierSecret.P(),
		Q:      k.paillierSecret.Q(),
	}, hash.New(), zkprm.Public{
		N: k.pedersen.N(),
		S: k.pedersen.S(),
		T: k.pedersen.T(),
	}, r.pool)

	own := &Broadcast1{
		Commitment: commitment,
		N:          k.paillierSecret.N(),
		S:          k.pedersen.S(),
		T:          k.pedersen.T(),
		Mod:        mod,
		Prm:        prm,
	}
	if err := round.Broadcast(out, r.selfID, own); err != nil {
		return nil, err
	}

	return &Round1{
		Round0:       r,
		keys:         k,
		decommitment: decommitment,
		own:          own,
	}, nil
}

// Number returns 0.
func (*Round0) Number() round.Number { return 0 }

// IsExpensive is true: two safe primes are sampled and two large proofs
// computed.
func (*Round0) IsExpensive() bool { return true }
