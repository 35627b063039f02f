package party

import (
	"testing"

	"github.com/quorumsig/gg20/pkg/math/curve"
	"github.com/stretchr/testify/assert"
)

func TestIDBytes(t *testing.T) {
	for _, id := range []ID{1, 2, 255, 256, 65535} {
		assert.Equal(t, id, FromBytes(id.Bytes()))
	}
}

func TestIDScalar(t *testing.T) {
	group := curve.Secp256k1{}
	two := ID(1).Scalar(group).Add(ID(1).Scalar(group))
	assert.True(t, two.Equal(ID(2).Scalar(group)))
	assert.Panics(t, func() { Broadcast.Scalar(group) })
}

func TestIDSlice(t *testing.T) {
	ids := NewIDSlice([]ID{5, 2, 9})
	assert.True(t, ids.Valid())
	assert.Equal(t, IDSlice{2, 5, 9}, ids)
	assert.True(t, ids.Contains(5))
	assert.False(t, ids.Contains(3))
	assert.Equal(t, 2, ids.GetIndex(9))
	assert.Equal(t, -1, ids.GetIndex(1))

	assert.Equal(t, IDSlice{2, 9}, ids.Remove(5))
	assert.False(t, IDSlice{1, 1, 2}.Valid(), "duplicates are invalid")
	assert.False(t, IDSlice{0, 1}.Valid(), "the zero ID is invalid")
	assert.False(t, IDSlice{2, 1}.Valid(), "unsorted slices are invalid")
}

func TestRangeN(t *testing.T) {
	assert.Equal(t, IDSlice{1, 2, 3}, RangeN(3))
	assert.True(t, RangeN(10).Valid())
	assert.Empty(t, RangeN(0))
}
