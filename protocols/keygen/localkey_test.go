package keygen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumsig/gg20/internal/test"
	"github.com/quorumsig/gg20/pkg/math/curve"
	"github.com/quorumsig/gg20/protocols/keygen"
)

func TestLocalKey(t *testing.T) {
	group := curve.Secp256k1{}
	keys, err := test.Keygen(group, 2, 1, nil)
	require.NoError(t, err)
	k := keys[0]
	require.NoError(t, k.Validate())

	data, err := k.MarshalBinary()
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		restored := keygen.EmptyLocalKey(group)
		require.NoError(t, restored.UnmarshalBinary(data))
		require.NoError(t, restored.Validate())

		assert.Equal(t, k.ID, restored.ID)
		assert.Equal(t, k.Threshold, restored.Threshold)
		assert.True(t, k.SecretShare.Equal(restored.SecretShare))
		assert.True(t, k.PublicKey.Equal(restored.PublicKey))
		for j := range k.PublicShares {
			assert.True(t, k.PublicShares[j].Equal(restored.PublicShares[j]))
			assert.True(t, k.PaillierPublic[j].Equal(restored.PaillierPublic[j]))
		}

		again, err := restored.MarshalBinary()
		require.NoError(t, err)
		assert.Equal(t, data, again)
	})

	t.Run("rejects bad threshold", func(t *testing.T) {
		bad := *k
		bad.Threshold = 0
		assert.Error(t, bad.Validate())
	})

	t.Run("rejects truncated party data", func(t *testing.T) {
		bad := *k
		bad.PublicShares = bad.PublicShares[:1]
		assert.Error(t, bad.Validate())
	})

	t.Run("rejects mismatched share", func(t *testing.T) {
		bad := *k
		bad.SecretShare = group.NewScalar()
		assert.Error(t, bad.Validate())
	})

	t.Run("rejects unmarshal without group", func(t *testing.T) {
		var bare keygen.LocalKey
		assert.Error(t, bare.UnmarshalBinary(data))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		assert.Error(t, keygen.EmptyLocalKey(group).UnmarshalBinary([]byte("garbage")))
	})
}
