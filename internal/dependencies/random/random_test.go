package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCryptoRandomBounds(t *testing.T) {
	r := New()
	for i := 0; i < 200; i++ {
		n := r.Intn(6)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 6)
	}
	assert.Equal(t, 0, r.Intn(0))
	assert.Len(t, r.String(12, "AB"), 12)
	assert.Empty(t, r.String(5, ""))
}

func TestSeededRandomIsRepeatable(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
	assert.Equal(t, a.String(8, "XYZ"), b.String(8, "XYZ"))
}

func TestSeededRandomBounds(t *testing.T) {
	r := NewSeeded(7)
	for i := 0; i < 200; i++ {
		n := r.Intn(6)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 6)
	}
	assert.Equal(t, 0, r.Intn(-1))
	assert.Empty(t, r.String(0, "AB"))
}

func TestStringUsesAlphabet(t *testing.T) {
	for _, r := range []Random{New(), NewSeeded(1)} {
		s := r.String(64, "QZ")
		assert.Len(t, s, 64)
		for _, c := range s {
			assert.Contains(t, "QZ", string(c))
		}
	}
}
