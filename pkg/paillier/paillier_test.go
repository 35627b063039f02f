package paillier

import (
	"crypto/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	paillierPublic *PublicKey
	paillierSecret *SecretKey
)

func init() {
	p, _ := new(saferith.Nat).SetHex("E39D1E2D24341FF8E4BD9A23DB51CD3C2E70B23B150CCD62A01BE5E3D75FCC8CAEAEB1D95D193A9E54720F29C7DEDEE499025A3C425CE0A363A32B5007A2AA38D1A0EA1F0284B99976C6953A6FEF375B9C6F3EB97EB8BB12EF94C28243CCC8E0744657E79F8540FF39B1DDC250C6927FC2DF11A98D04C4376E33D2E37A1B2CFB")
	q, _ := new(saferith.Nat).SetHex("F767FE6C3347971A477A2497E5E8EF1CD331680DB2CF50C8456E04F88BFD78772F8F3C10F887FD001DA165589264C4CE139853C37406D3CC21F19072D31B82FBEA785C9FE47F02ADDD8B4E22C6AE0004F854416B78A559331FD2344B4E5F6BBCB3D9896CA77F38989280F0CC967CDE65E724562758C96014D2F10FA719ABD39B")
	paillierSecret = NewSecretKeyFromPrimes(p, q)
	paillierPublic = paillierSecret.PublicKey
}

func intEqual(a, b *saferith.Int) bool {
	return a.Abs().Eq(b.Abs()) == 1 && a.IsNegative() == b.IsNegative()
}

// randomPlaintext samples a signed message well within ±(N-1)/2.
func randomPlaintext() *saferith.Int {
	buf := make([]byte, 64)
	_, _ = rand.Read(buf)
	neg := buf[0]&1 == 1
	m := new(saferith.Int).SetNat(new(saferith.Nat).SetBytes(buf[1:]))
	if neg {
		m.Neg(1)
	}
	return m
}

func TestValidatePrime(t *testing.T) {
	require.NoError(t, ValidatePrime(paillierSecret.P()))
	require.NoError(t, ValidatePrime(paillierSecret.Q()))

	assert.ErrorIs(t, ValidatePrime(nil), ErrPrimeNil)
	assert.Error(t, ValidatePrime(new(saferith.Nat).SetUint64(13)))
}

func TestValidateN(t *testing.T) {
	require.NoError(t, ValidateN(paillierPublic.N()))

	assert.ErrorIs(t, ValidateN(nil), ErrPaillierNil)
	small := saferith.ModulusFromNat(new(saferith.Nat).SetUint64(35))
	assert.ErrorIs(t, ValidateN(small), ErrPaillierLength)
}

func TestEncDecRoundTrip(t *testing.T) {
	m := randomPlaintext()
	ct, _ := paillierPublic.Enc(m)
	decrypted, err := paillierSecret.Dec(ct)
	require.NoError(t, err)
	assert.True(t, intEqual(m, decrypted), "decrypted plaintext differs")
}

func TestEncDecHomomorphic(t *testing.T) {
	m1 := randomPlaintext()
	m2 := randomPlaintext()
	ct1, _ := paillierPublic.Enc(m1)
	ct2, _ := paillierPublic.Enc(m2)

	sum := ct1.Clone().Add(paillierPublic, ct2)
	decrypted, err := paillierSecret.Dec(sum)
	require.NoError(t, err)
	expected := new(saferith.Int).Add(m1, m2, -1)
	assert.True(t, intEqual(expected, decrypted), "decrypted sum differs")

	factor := new(saferith.Int).SetNat(new(saferith.Nat).SetUint64(42))
	scaled := ct1.Clone().Mul(paillierPublic, factor)
	decrypted, err = paillierSecret.Dec(scaled)
	require.NoError(t, err)
	expected = new(saferith.Int).Mul(m1, factor, -1)
	assert.True(t, intEqual(expected, decrypted), "decrypted product differs")
}

func TestCiphertextRandomize(t *testing.T) {
	m := randomPlaintext()
	ct, _ := paillierPublic.Enc(m)
	before := ct.Nat()

	ct.Randomize(paillierPublic, nil)
	assert.True(t, before.Eq(ct.Nat()) != 1, "randomization should change the ciphertext")

	decrypted, err := paillierSecret.Dec(ct)
	require.NoError(t, err)
	assert.True(t, intEqual(m, decrypted), "randomization should preserve the plaintext")
}

func TestCiphertextValidate(t *testing.T) {
	// 0 is never a valid ciphertext
	ct := &Ciphertext{c: new(saferith.Nat)}
	_, err := paillierSecret.Dec(ct)
	assert.Error(t, err, "decrypting 0 should fail")

	// c ≡ 0 (mod N) shares a factor with N²
	n := paillierPublic.N().Nat()
	ct.c.SetNat(n)
	_, err = paillierSecret.Dec(ct)
	assert.Error(t, err, "decrypting N should fail")

	ct.c.Add(n, n, -1)
	_, err = paillierSecret.Dec(ct)
	assert.Error(t, err, "decrypting 2N should fail")

	assert.False(t, paillierPublic.ValidateCiphertexts(nil))
}

func TestDecWithRandomness(t *testing.T) {
	m := randomPlaintext()
	nonce := paillierPublic.Nonce(rand.Reader)
	ct := paillierPublic.EncWithNonce(m, nonce)

	mDec, nonceDec, err := paillierSecret.DecWithRandomness(ct)
	require.NoError(t, err)
	assert.True(t, intEqual(m, mDec), "decrypted plaintext differs")
	assert.True(t, nonce.Eq(nonceDec) == 1, "recovered nonce differs")
}

func TestEncRange(t *testing.T) {
	tooBig := new(saferith.Int).SetNat(paillierPublic.N().Nat())
	assert.Panics(t, func() { paillierPublic.Enc(tooBig) })
}
