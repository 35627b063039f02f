package curve

import (
	"crypto/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomScalar(t *testing.T, group Curve) Scalar {
	buf := make([]byte, group.SafeScalarBytes())
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return group.NewScalar().SetNat(new(saferith.Nat).SetBytes(buf))
}

func TestScalarMarshal(t *testing.T) {
	group := Secp256k1{}
	x := randomScalar(t, group)

	data, err := x.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, 32)

	y := group.NewScalar()
	require.NoError(t, y.UnmarshalBinary(data))
	assert.True(t, x.Equal(y))
}

func TestScalarArithmetic(t *testing.T) {
	group := Secp256k1{}
	x := randomScalar(t, group)
	y := randomScalar(t, group)

	sum := group.NewScalar().Set(x).Add(y)
	back := group.NewScalar().Set(sum).Sub(y)
	assert.True(t, back.Equal(x), "x + y - y should equal x")

	one := group.NewScalar().SetNat(new(saferith.Nat).SetUint64(1))
	inv := group.NewScalar().Set(x).Invert()
	assert.True(t, group.NewScalar().Set(x).Mul(inv).Equal(one), "x (x⁻¹) should equal 1")

	neg := group.NewScalar().Set(x).Negate()
	assert.True(t, group.NewScalar().Set(x).Add(neg).IsZero(), "x + (-x) should equal 0")
}

func TestPointMarshal(t *testing.T) {
	group := Secp256k1{}
	X := randomScalar(t, group).ActOnBase()

	data, err := X.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, 33)

	Y := group.NewPoint()
	require.NoError(t, Y.UnmarshalBinary(data))
	assert.True(t, X.Equal(Y))

	require.Error(t, group.NewPoint().UnmarshalBinary(data[:32]))
}

func TestPointArithmetic(t *testing.T) {
	group := Secp256k1{}
	x := randomScalar(t, group)
	y := randomScalar(t, group)

	lhs := group.NewScalar().Set(x).Add(y).ActOnBase()
	rhs := x.ActOnBase().Add(y.ActOnBase())
	assert.True(t, lhs.Equal(rhs), "(x+y)G should equal xG + yG")

	assert.True(t, group.NewPoint().IsIdentity())
	X := x.ActOnBase()
	assert.True(t, X.Sub(X).IsIdentity(), "X - X should be the identity")

	assert.True(t, x.Act(group.NewBasePoint()).Equal(x.ActOnBase()))
}

func TestFromHash(t *testing.T) {
	group := Secp256k1{}
	digest := make([]byte, 64)
	_, err := rand.Read(digest)
	require.NoError(t, err)

	s := FromHash(group, digest)
	data, err := s.MarshalBinary()
	require.NoError(t, err)

	reduced := new(saferith.Nat).SetBytes(data)
	_, _, lt := reduced.CmpMod(group.Order())
	assert.Equal(t, saferith.Choice(1), lt, "result should be reduced below the group order")
}
