package arith

import (
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
)

var (
	p, q  *saferith.Nat
	n     *saferith.Modulus
	mFast *Modulus
	mSlow *Modulus
)

func init() {
	p, _ = new(saferith.Nat).SetHex("D08769E92F80F7FDFB85EC02AFFDAED0FDE2782070757F191DCDC4D108110AC1E31C07FC253B5F7B91C5D9F203AA0572D3F2062A3D2904C535C6ACCA7D5674E1C2640720E762C72B66931F483C2D910908CF02EA6723A0CBBB1016CA696C38FEAC59B31E40584C8141889A11F7A38F5B17811D11F42CD15B8470F11C6183802B")
	q, _ = new(saferith.Nat).SetHex("C21239C3484FC3C8409F40A9A22FABFFE26CA10C27506E3E017C2EC8C4B98D7A6D30DED0686869884BE9BAD27F5241B7313F73D19E9E4B384FABF9554B5BB4D517CBAC0268420C63D545612C9ADABEEDF20F94244E7F8F2080B0C675AC98D97C580D43375F999B1AC127EC580B89B2D302EF33DD5FD8474A241B0398F6088CA7")
	nNat := new(saferith.Nat).Mul(p, q, -1)
	n = saferith.ModulusFromNat(nNat)
	mFast = ModulusFromFactors(p, q)
	mSlow = ModulusFromN(n)
}

func sampleNat(r *mrand.Rand, bytes int) *saferith.Nat {
	buf := make([]byte, bytes)
	r.Read(buf)
	return new(saferith.Nat).SetBytes(buf)
}

func TestModulusExp(t *testing.T) {
	r := mrand.New(mrand.NewSource(0))
	assert.True(t, mFast.Nat().Eq(mSlow.Nat()) == 1, "moduli should be the same")

	x := new(saferith.Nat).Mod(sampleNat(r, 256), n)
	e := sampleNat(r, 64)
	eNeg := new(saferith.Int).SetNat(e).Neg(1)

	yExpected := new(saferith.Nat).Exp(x, e, n)
	assert.True(t, yExpected.Eq(mFast.Exp(x, e)) == 1, "CRT exponentiation should match the plain one")
	assert.True(t, yExpected.Eq(mSlow.Exp(x, e)) == 1, "wrapped exponentiation should match the plain one")

	yExpected.ExpI(x, eNeg, n)
	assert.True(t, yExpected.Eq(mFast.ExpI(x, eNeg)) == 1, "negative CRT exponentiation should match the plain one")
	assert.True(t, yExpected.Eq(mSlow.ExpI(x, eNeg)) == 1, "negative wrapped exponentiation should match the plain one")
}

func TestIsValidNatModN(t *testing.T) {
	r := mrand.New(mrand.NewSource(1))
	x := new(saferith.Nat).Mod(sampleNat(r, 256), n)

	assert.True(t, IsValidNatModN(n, x))
	assert.False(t, IsValidNatModN(n, nil), "nil is not a valid element")
	assert.False(t, IsValidNatModN(n, n.Nat()), "n is not in [1, n-1]")
	assert.False(t, IsValidNatModN(n, p), "a factor of n is not a unit")
}

func TestIsValidBigModN(t *testing.T) {
	nBig := n.Big()
	assert.True(t, IsValidBigModN(nBig, big.NewInt(17)))
	assert.False(t, IsValidBigModN(nBig, nil))
	assert.False(t, IsValidBigModN(nBig, big.NewInt(0)))
	assert.False(t, IsValidBigModN(nBig, nBig))
}
