package keygen

import (
	"crypto/rand"

	"github.com/cronokirby/saferith"

	"github.com/quorumsig/gg20/pkg/math/curve"
	"github.com/quorumsig/gg20/pkg/math/sample"
	"github.com/quorumsig/gg20/pkg/paillier"
	"github.com/quorumsig/gg20/pkg/pedersen"
	"github.com/quorumsig/gg20/pkg/pool"
)

// keys is the long term key material a party samples at the start of the
// protocol.
type keys struct {
	// u is the additive contribution to the joint secret key.
	u curve.Scalar
	// y = u•G.
	y curve.Point
	// paillierSecret decrypts the shares sent to this party.
	paillierSecret *paillier.SecretKey
	// pedersen are the ring-Pedersen parameters over the same modulus.
	pedersen *pedersen.Parameters
	// lambda is the discrete log of s with respect to t.
	lambda *saferith.Nat
}

func newKeys(group curve.Curve, pl *pool.Pool) *keys {
	sk := paillier.NewSecretKey(pl)
	ped, lambda := sk.GeneratePedersen()
	u := sample.Scalar(rand.Reader, group)
	return &keys{
		u:              u,
		y:              u.ActOnBase(),
		paillierSecret: sk,
		pedersen:       ped,
		lambda:         lambda,
	}
}

// wipe clears the additive secret contribution. The Paillier key is part
// of the final output and is left untouched.
func (k *keys) wipe(group curve.Curve) {
	k.u.Set(group.NewScalar())
}
