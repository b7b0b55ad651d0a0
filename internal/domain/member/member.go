package member

import (
	"strings"
	"unicode/utf8"

	"github.com/jpashop/backend/internal/domain/shared"
	"github.com/jpashop/backend/internal/domain/shared/valueobject"
)

// Member is a registered customer. It is the aggregate root for membership.
type Member struct {
	ID      int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string              `gorm:"type:varchar(100);not null;uniqueIndex" json:"name" binding:"required"`
	Address valueobject.Address `gorm:"embedded" json:"address"`
	shared.BaseEntity
	shared.EventRecorder `gorm:"-" json:"-"`
}

// TableName returns the table name for GORM
func (Member) TableName() string {
	return "members"
}

// NewMember creates a member that has not been saved yet.
func NewMember(name string, address valueobject.Address) (*Member, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Member{
		Name:    name,
		Address: address,
	}, nil
}

// ChangeName renames the member and records MemberUpdated.
func (m *Member) ChangeName(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	m.Name = name
	m.AddDomainEvent(NewMemberUpdatedEvent(m))
	return nil
}

// MarkJoined records MemberJoined once the generated ID is known.
func (m *Member) MarkJoined() {
	m.AddDomainEvent(NewMemberJoinedEvent(m))
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "member name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 100 {
		return shared.NewDomainError("INVALID_INPUT", "member name cannot exceed 100 characters")
	}
	return nil
}
