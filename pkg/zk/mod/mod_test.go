package zkmod

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/quorumsig/gg20/internal/test"
	"github.com/quorumsig/gg20/pkg/hash"
	"github.com/quorumsig/gg20/pkg/math/sample"
	"github.com/quorumsig/gg20/pkg/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMod(t *testing.T) {
	pl := pool.NewPool(0)
	defer pl.TearDown()

	sk := test.PaillierKey(0)
	public := Public{N: sk.N()}
	proof := NewProof(hash.New(), Private{
		P:   sk.P(),
		Q:   sk.Q(),
		Phi: sk.Phi(),
	}, public, pl)
	assert.True(t, proof.Verify(public, hash.New(), pl), "failed to verify proof")

	out, err := cbor.Marshal(proof)
	require.NoError(t, err, "failed to marshal proof")
	proof2 := &Proof{}
	require.NoError(t, cbor.Unmarshal(out, proof2), "failed to unmarshal proof")
	assert.True(t, proof2.Verify(public, hash.New(), pl), "failed to verify unmarshalled proof")

	proof.W = big.NewInt(0)
	for idx := range proof.Responses {
		proof.Responses[idx].X = big.NewInt(0)
	}
	assert.False(t, proof.IsValid(public), "proof should have been invalid")
	assert.False(t, proof.Verify(public, hash.New(), pl), "proof should have failed")

	var empty *Proof
	assert.False(t, empty.Verify(public, hash.New(), pl), "nil proof should fail")
}

// TestModWrongModulus checks that a proof for one modulus does not verify
// against a different one.
func TestModWrongModulus(t *testing.T) {
	pl := pool.NewPool(0)
	defer pl.TearDown()

	sk := test.PaillierKey(0)
	other := test.PaillierKey(1)
	proof := NewProof(hash.New(), Private{
		P:   sk.P(),
		Q:   sk.Q(),
		Phi: sk.Phi(),
	}, Public{N: sk.N()}, pl)
	assert.False(t, proof.Verify(Public{N: other.N()}, hash.New(), pl), "proof should not verify for another modulus")
}

func Test_set4thRoot(t *testing.T) {
	var pInt, qInt uint64 = 311, 331
	p := new(saferith.Nat).SetUint64(pInt)
	q := new(saferith.Nat).SetUint64(qInt)
	n := saferith.ModulusFromUint64(pInt * qInt)
	pMod := saferith.ModulusFromNat(p)
	qMod := saferith.ModulusFromNat(q)
	pHalf := new(saferith.Nat).SetUint64((pInt - 1) / 2)
	qHalf := new(saferith.Nat).SetUint64((qInt - 1) / 2)
	phi := new(saferith.Nat).SetUint64((pInt - 1) * (qInt - 1))
	y := new(saferith.Nat).SetUint64(502)
	w := sample.QNR(rand.Reader, n.Big())
	wNat := new(saferith.Nat).SetBig(w, w.BitLen())

	a, b, x := makeQuadraticResidue(y, wNat, pHalf, qHalf, n, pMod, qMod)

	e := fourthRootExponent(phi)
	root := new(saferith.Nat).Exp(x, e, n)

	yBig := y.Big()
	nBig := n.Big()
	if b {
		yBig.Mul(yBig, w)
		yBig.Mod(yBig, nBig)
	}
	if a {
		yBig.Neg(yBig)
		yBig.Mod(yBig, nBig)
	}

	rootBig := root.Big()
	assert.NotEqual(t, 0, rootBig.Cmp(big.NewInt(1)), "root cannot be 1")
	rootBig.Exp(rootBig, big.NewInt(4), nBig)
	assert.Equal(t, 0, rootBig.Cmp(yBig), "root⁴ should be equal to y")
}
