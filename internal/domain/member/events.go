package member

import (
	"strconv"

	"github.com/jpashop/backend/internal/domain/shared"
)

// AggregateTypeMember is the aggregate type carried by member events.
const AggregateTypeMember = "Member"

const (
	EventTypeMemberJoined  = "MemberJoined"
	EventTypeMemberUpdated = "MemberUpdated"
)

// MemberJoinedEvent is published after a member has been saved for the first time
type MemberJoinedEvent struct {
	shared.BaseDomainEvent
	MemberID int64  `json:"member_id"`
	Name     string `json:"name"`
}

// NewMemberJoinedEvent creates a new MemberJoinedEvent
func NewMemberJoinedEvent(m *Member) *MemberJoinedEvent {
	return &MemberJoinedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMemberJoined, AggregateTypeMember, strconv.FormatInt(m.ID, 10)),
		MemberID:        m.ID,
		Name:            m.Name,
	}
}

// MemberUpdatedEvent is published when a member's name changes
type MemberUpdatedEvent struct {
	shared.BaseDomainEvent
	MemberID int64  `json:"member_id"`
	Name     string `json:"name"`
}

// NewMemberUpdatedEvent creates a new MemberUpdatedEvent
func NewMemberUpdatedEvent(m *Member) *MemberUpdatedEvent {
	return &MemberUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMemberUpdated, AggregateTypeMember, strconv.FormatInt(m.ID, 10)),
		MemberID:        m.ID,
		Name:            m.Name,
	}
}
