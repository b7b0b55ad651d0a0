package member

import (
	"errors"
	"strings"
	"testing"

	"github.com/jpashop/backend/internal/domain/shared"
	"github.com/jpashop/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMember(t *testing.T) {
	addr, _ := valueobject.NewAddress("Seoul", "Gangga 1", "12345")

	t.Run("creates member with valid input", func(t *testing.T) {
		m, err := NewMember("  kim  ", addr)
		require.NoError(t, err)
		assert.Equal(t, "kim", m.Name)
		assert.Equal(t, "Seoul", m.Address.City)
		assert.Zero(t, m.ID)
		assert.Empty(t, m.GetDomainEvents())
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewMember("   ", addr)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("rejects long name", func(t *testing.T) {
		_, err := NewMember(strings.Repeat("가", 101), addr)
		assert.Error(t, err)
	})
}

func TestMember_ChangeName(t *testing.T) {
	m, err := NewMember("kim", valueobject.Address{})
	require.NoError(t, err)
	m.ID = 3

	require.NoError(t, m.ChangeName("lee"))
	assert.Equal(t, "lee", m.Name)

	events := m.GetDomainEvents()
	require.Len(t, events, 1)
	evt, ok := events[0].(*MemberUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, int64(3), evt.MemberID)
	assert.Equal(t, "3", evt.AggregateID())
	assert.Equal(t, "lee", evt.Name)

	assert.Error(t, m.ChangeName(""))
	assert.Equal(t, "lee", m.Name)
}

func TestMember_MarkJoined(t *testing.T) {
	m, _ := NewMember("park", valueobject.Address{})
	m.ID = 9
	m.MarkJoined()

	events := m.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeMemberJoined, events[0].EventType())
	assert.Equal(t, AggregateTypeMember, events[0].AggregateType())
}
