package valueobject

import (
	"errors"
	"strings"
	"testing"

	"github.com/jpashop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("trims parts", func(t *testing.T) {
		a, err := NewAddress(" Seoul ", " Gangnam-daero 1 ", " 06000 ")
		require.NoError(t, err)
		assert.Equal(t, "Seoul", a.City)
		assert.Equal(t, "Gangnam-daero 1", a.Street)
		assert.Equal(t, "06000", a.Zipcode)
		assert.Equal(t, "Seoul Gangnam-daero 1 06000", a.String())
	})

	t.Run("allows empty address", func(t *testing.T) {
		a, err := NewAddress("", "", "")
		require.NoError(t, err)
		assert.True(t, a.IsZero())
		assert.Equal(t, "", a.String())
	})

	t.Run("rejects long city", func(t *testing.T) {
		_, err := NewAddress(strings.Repeat("c", 101), "", "")
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("rejects long zipcode", func(t *testing.T) {
		_, err := NewAddress("", "", strings.Repeat("1", 21))
		assert.Error(t, err)
	})
}

func TestAddress_Equals(t *testing.T) {
	a, _ := NewAddress("Seoul", "Street 1", "111")
	b, _ := NewAddress("Seoul", "Street 1", "111")
	c, _ := NewAddress("Busan", "Street 1", "111")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
