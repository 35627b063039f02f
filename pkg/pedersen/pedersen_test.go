package pedersen

import (
	"crypto/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/quorumsig/gg20/pkg/math/arith"
	"github.com/quorumsig/gg20/pkg/math/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testModulus *arith.Modulus
	testPhi     *saferith.Nat
	testParams  *Parameters
)

func init() {
	p, _ := new(saferith.Nat).SetHex("C40AB1CAD0C0E1EE3452CDB00E3CC19BE58C6711009191B79D56D2E2EA9C1FACF998D02A6F122384F00ACCA00A2BBCD17A09F33C367B56FECA64C77642DBDC86F282B9B5B0B77B13D92511FCC7F743B380D87A7D5FDCA644BE7892A97CA28AC0296515B905570C578D2A4CDCA0B0D95ECEEA8BBEE320DF4A1DB184C72702F967")
	q, _ := new(saferith.Nat).SetHex("C9A903CEE761BDDC1D4D273114320AE693F9AD4956FED39419FEEBD8B5E186D3566CCF8EA42315EA9E512FBB55939BA450242D8C8DBEE9F6BBFD29323FE9E66CD4F9BE293A056F38F6735974EBB7085D4D5324F1F14094A11E87EE748839E1DD28A05D32628ED98329233C3210849205BBBB91567E2C4507DB37BDCF214D6267")
	one := new(saferith.Nat).SetUint64(1)
	pMinus1 := new(saferith.Nat).Sub(p, one, -1)
	qMinus1 := new(saferith.Nat).Sub(q, one, -1)
	testPhi = new(saferith.Nat).Mul(pMinus1, qMinus1, -1)
	testModulus = arith.ModulusFromFactors(p, q)

	s, t, _ := sample.Pedersen(rand.Reader, testPhi, testModulus.Modulus)
	testParams = New(testModulus, s, t)
}

func randomExponent() *saferith.Int {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return new(saferith.Int).SetNat(new(saferith.Nat).SetBytes(buf))
}

func TestValidateParameters(t *testing.T) {
	require.NoError(t, ValidateParameters(testParams.N(), testParams.S(), testParams.T()))

	assert.ErrorIs(t, ValidateParameters(nil, testParams.S(), testParams.T()), ErrNilFields)
	assert.ErrorIs(t, ValidateParameters(testParams.N(), testParams.S(), testParams.S()), ErrSEqualT)

	// s ≡ 0 (mod N) is not a unit
	zero := new(saferith.Nat)
	assert.ErrorIs(t, ValidateParameters(testParams.N(), zero, testParams.T()), ErrNotValidModN)
}

// TestCommitVerify exercises the Σ-protocol equation the commitment
// parameters are used for: given X = sˣtᵖ and A = sᵅtᵞ, the response
// z = α+e⋅x, w = γ+e⋅ρ satisfies sᶻtʷ ≡ A⋅Xᵉ.
func TestCommitVerify(t *testing.T) {
	x, rho := randomExponent(), randomExponent()
	alpha, gamma := randomExponent(), randomExponent()
	e := randomExponent()

	X := testParams.Commit(x, rho)
	A := testParams.Commit(alpha, gamma)

	z := new(saferith.Int).Mul(e, x, -1)
	z.Add(z, alpha, -1)
	w := new(saferith.Int).Mul(e, rho, -1)
	w.Add(w, gamma, -1)

	assert.True(t, testParams.Verify(z, w, e, A, X))

	one := new(saferith.Int).SetNat(new(saferith.Nat).SetUint64(1))
	zBad := new(saferith.Int).Add(z, one, -1)
	assert.False(t, testParams.Verify(zBad, w, e, A, X))

	assert.False(t, testParams.Verify(nil, w, e, A, X))
}
