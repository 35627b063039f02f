package keygen_test

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/quorumsig/gg20/internal/test"
	"github.com/quorumsig/gg20/pkg/math/curve"
	"github.com/quorumsig/gg20/pkg/math/polynomial"
	"github.com/quorumsig/gg20/pkg/party"
	"github.com/quorumsig/gg20/pkg/round"
	"github.com/quorumsig/gg20/protocols/keygen"
)

// reconstruct interpolates the shares of subset at 0.
func reconstruct(group curve.Curve, keys []*keygen.LocalKey, subset []party.ID) curve.Scalar {
	coefficients := polynomial.Lagrange(group, subset)
	secret := group.NewScalar()
	for _, id := range subset {
		share := group.NewScalar().Set(keys[id-1].SecretShare)
		secret.Add(share.Mul(coefficients[id]))
	}
	return secret
}

func checkReconstruction(t *testing.T, group curve.Curve, keys []*keygen.LocalKey, subset []party.ID) {
	t.Helper()
	secret := reconstruct(group, keys, subset)
	assert.True(t, secret.ActOnBase().Equal(keys[0].PublicKey), "subset %v should reconstruct the secret", subset)
}

func TestKeygen(t *testing.T) {
	group := curve.Secp256k1{}
	keys, err := test.Keygen(group, 3, 1, nil)
	require.NoError(t, err)
	require.Len(t, keys, 3)

	for _, k := range keys {
		require.NoError(t, k.Validate())
		assert.True(t, k.PublicKey.Equal(keys[0].PublicKey))
		require.Equal(t, 3, k.Count())
		for j, X := range k.PublicShares {
			assert.True(t, X.Equal(keys[0].PublicShares[j]))
		}
	}

	checkReconstruction(t, group, keys, []party.ID{1, 2})
	checkReconstruction(t, group, keys, []party.ID{2, 3})
	checkReconstruction(t, group, keys, []party.ID{1, 2, 3})
}

func TestKeygenThresholdBoundary(t *testing.T) {
	group := curve.Secp256k1{}
	keys, err := test.Keygen(group, 3, 2, nil)
	require.NoError(t, err)
	for _, k := range keys {
		require.NoError(t, k.Validate())
	}

	checkReconstruction(t, group, keys, []party.ID{1, 2, 3})

	// Two shares are one short of the threshold.
	insufficient := reconstruct(group, keys, []party.ID{1, 2})
	assert.False(t, insufficient.ActOnBase().Equal(keys[0].PublicKey))
}

func TestKeygenFiveParties(t *testing.T) {
	group := curve.Secp256k1{}
	keys, err := test.Keygen(group, 5, 2, nil)
	require.NoError(t, err)
	for _, k := range keys {
		require.NoError(t, k.Validate())
	}

	checkReconstruction(t, group, keys, []party.ID{1, 3, 5})
	checkReconstruction(t, group, keys, []party.ID{2, 3, 4, 5})

	insufficient := reconstruct(group, keys, []party.ID{4, 5})
	assert.False(t, insufficient.ActOnBase().Equal(keys[0].PublicKey))
}

func TestKeygenRejectsBadModulusProof(t *testing.T) {
	group := curve.Secp256k1{}
	rule := func(m *round.Message) {
		if bc, ok := m.Content.(*keygen.Broadcast1); ok && m.From == 3 {
			bc.Mod = nil
		}
	}
	_, err := test.Keygen(group, 3, 1, rule)
	require.Error(t, err)
	require.ErrorIs(t, err, keygen.ErrRound2)

	var protocolErr *keygen.Error
	require.ErrorAs(t, err, &protocolErr)
	assert.Equal(t, party.IDSlice{3}, protocolErr.Culprits)
}

func TestKeygenRejectsTamperedShare(t *testing.T) {
	group := curve.Secp256k1{}
	rule := func(m *round.Message) {
		msg, ok := m.Content.(*keygen.Message3)
		if !ok || m.From != 2 || m.To != 4 {
			return
		}
		data, err := msg.Share.MarshalBinary()
		require.NoError(t, err)
		data[len(data)/2] ^= 1
		require.NoError(t, msg.Share.UnmarshalBinary(data))
	}
	_, err := test.Keygen(group, 4, 2, rule)
	require.Error(t, err)
	require.ErrorIs(t, err, keygen.ErrRound3)

	var protocolErr *keygen.Error
	require.ErrorAs(t, err, &protocolErr)
	assert.Equal(t, party.IDSlice{2}, protocolErr.Culprits)
}

func TestKeygenRejectsBadSchnorrProof(t *testing.T) {
	group := curve.Secp256k1{}
	rule := func(m *round.Message) {
		if bc, ok := m.Content.(*keygen.Broadcast4); ok && m.From == 1 {
			bc.X = group.NewPoint()
		}
	}
	_, err := test.Keygen(group, 3, 1, rule)
	require.Error(t, err)
	require.ErrorIs(t, err, keygen.ErrRound4)

	var protocolErr *keygen.Error
	require.ErrorAs(t, err, &protocolErr)
	assert.Equal(t, party.IDSlice{1}, protocolErr.Culprits)
}

// TestSign checks that a reconstructed share set behaves like an ordinary
// ECDSA key.
func TestSign(t *testing.T) {
	group := curve.Secp256k1{}
	keys, err := test.Keygen(group, 3, 1, nil)
	require.NoError(t, err)

	secret := reconstruct(group, keys, []party.ID{1, 3})
	require.True(t, secret.ActOnBase().Equal(keys[0].PublicKey))

	secretBytes, err := secret.MarshalBinary()
	require.NoError(t, err)
	priv := secp256k1.PrivKeyFromBytes(secretBytes)

	digest := sha3.Sum256([]byte("threshold keys sign like ordinary keys"))
	sig := ecdsa.Sign(priv, digest[:])

	publicBytes, err := keys[0].PublicKey.MarshalBinary()
	require.NoError(t, err)
	pub, err := secp256k1.ParsePubKey(publicBytes)
	require.NoError(t, err)
	assert.True(t, sig.Verify(digest[:], pub))
}

func TestNewRound0(t *testing.T) {
	group := curve.Secp256k1{}
	tests := []struct {
		name      string
		self      party.ID
		threshold int
		count     int
	}{
		{"zero party", 0, 1, 3},
		{"party beyond count", 4, 1, 3},
		{"zero threshold", 1, 0, 3},
		{"threshold too large", 1, 3, 3},
		{"single party", 1, 1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := keygen.NewRound0(group, tc.self, tc.threshold, tc.count, nil)
			assert.Error(t, err)
		})
	}

	r, err := keygen.NewRound0(group, 1, 1, 3, nil)
	require.NoError(t, err)
	assert.True(t, r.IsExpensive())
}
