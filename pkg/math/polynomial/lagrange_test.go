package polynomial

import (
	"crypto/rand"
	"testing"

	"github.com/quorumsig/gg20/pkg/math/curve"
	"github.com/quorumsig/gg20/pkg/math/sample"
	"github.com/quorumsig/gg20/pkg/party"
	"github.com/stretchr/testify/assert"
)

func TestLagrange(t *testing.T) {
	group := curve.Secp256k1{}
	N := 10
	allIDs := party.RangeN(N)
	coefsEven := Lagrange(group, allIDs)
	coefsOdd := Lagrange(group, allIDs[:N-1])

	one := scalarFromUint64(group, 1)
	sumEven := group.NewScalar()
	sumOdd := group.NewScalar()
	for _, c := range coefsEven {
		sumEven.Add(c)
	}
	for _, c := range coefsOdd {
		sumOdd.Add(c)
	}
	assert.True(t, sumEven.Equal(one))
	assert.True(t, sumOdd.Equal(one))
}

func TestLagrange_Interpolate(t *testing.T) {
	group := curve.Secp256k1{}
	threshold := 4
	ids := party.RangeN(7)
	secret := sample.Scalar(rand.Reader, group)
	poly := NewPolynomial(group, threshold, secret)

	// any t+1 shares determine f(0)
	subset := []party.ID{ids[0], ids[2], ids[3], ids[5], ids[6]}
	coefs := Lagrange(group, subset)
	reconstructed := group.NewScalar()
	for _, j := range subset {
		share := poly.Evaluate(j.Scalar(group))
		reconstructed.Add(coefs[j].Mul(share))
	}
	assert.True(t, reconstructed.Equal(secret))
}
