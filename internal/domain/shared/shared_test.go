package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	err := fmt.Errorf("load member: %w", NewDomainError("NOT_FOUND", "member 7 not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAlreadyExists))
	assert.Equal(t, "load member: member 7 not found", err.Error())
}

func TestEventRecorder(t *testing.T) {
	var r EventRecorder
	e := NewBaseDomainEvent("MemberJoined", "Member", "1")
	r.AddDomainEvent(&e)

	assert.Len(t, r.GetDomainEvents(), 1)
	assert.Equal(t, "MemberJoined", r.GetDomainEvents()[0].EventType())
	assert.Equal(t, "1", r.GetDomainEvents()[0].AggregateID())

	r.ClearDomainEvents()
	assert.Empty(t, r.GetDomainEvents())
}

func TestFilter_Normalize(t *testing.T) {
	f := Filter{}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)
	assert.Equal(t, 0, f.Offset())

	f = Filter{Page: 3, PageSize: 500}.Normalize()
	assert.Equal(t, 100, f.PageSize)
	assert.Equal(t, 200, f.Offset())
}
