package crowdcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Basics(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, -1}
	assert.Equal(t, Vec2{4, 1}, a.Add(b))
	assert.Equal(t, Vec2{-2, 3}, a.Sub(b))
	assert.Equal(t, Vec2{2, 4}, a.Scale(2))
	assert.Equal(t, float64(1), a.Dot(Vec2{1, 0}))
	assert.InDelta(t, 5.0, Vec2{3, 4}.Len(), 1e-9)
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}.Normalize()
	assert.InDelta(t, 1.0, v.Len(), 1e-9)
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
}

func TestVec2Perp(t *testing.T) {
	assert.Equal(t, Vec2{-1, 0}, Vec2{0, 1}.Perp())
}
