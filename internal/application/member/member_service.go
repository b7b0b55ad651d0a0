package member

import (
	"context"
	"strings"

	appevent "github.com/jpashop/backend/internal/application/event"
	"github.com/jpashop/backend/internal/domain/member"
	"github.com/jpashop/backend/internal/domain/shared"
)

// MemberCache caches single-member lookups. Implementations must tolerate
// backend failures by reporting a miss.
type MemberCache interface {
	Get(ctx context.Context, id int64) (*member.Member, bool)
	Set(ctx context.Context, m *member.Member)
	Invalidate(ctx context.Context, id int64)
}

// MemberService handles member registration and lookup
type MemberService struct {
	memberRepo member.MemberRepository
	cache      MemberCache
	events     *appevent.Dispatcher
}

// NewMemberService creates a new MemberService. cache may be nil.
func NewMemberService(memberRepo member.MemberRepository, cache MemberCache, events *appevent.Dispatcher) *MemberService {
	if events == nil {
		events = appevent.NewDispatcher(nil, nil)
	}
	return &MemberService{
		memberRepo: memberRepo,
		cache:      cache,
		events:     events,
	}
}

// Join registers a member and returns the generated ID. Names must be unique.
func (s *MemberService) Join(ctx context.Context, m *member.Member) (int64, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return 0, shared.NewDomainError("INVALID_INPUT", "member name cannot be empty")
	}

	found, err := s.memberRepo.FindByName(ctx, m.Name)
	if err != nil {
		return 0, err
	}
	if len(found) > 0 {
		return 0, shared.NewDomainError("ALREADY_EXISTS", "member name is already taken")
	}

	if err := s.memberRepo.Save(ctx, m); err != nil {
		return 0, err
	}

	m.MarkJoined()
	s.events.Dispatch(ctx, m)
	return m.ID, nil
}

// FindMembers returns every member
func (s *MemberService) FindMembers(ctx context.Context) ([]member.Member, error) {
	return s.memberRepo.FindAll(ctx)
}

// FindOne returns a member by ID, consulting the cache first
func (s *MemberService) FindOne(ctx context.Context, id int64) (*member.Member, error) {
	if s.cache != nil {
		if m, ok := s.cache.Get(ctx, id); ok {
			return m, nil
		}
	}

	m, err := s.memberRepo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, m)
	}
	return m, nil
}

// Update renames a member: load, mutate, save.
func (s *MemberService) Update(ctx context.Context, id int64, name string) (*member.Member, error) {
	m, err := s.memberRepo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name != m.Name {
		exists, err := s.memberRepo.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "member name is already taken")
		}
	}
	if err := m.ChangeName(name); err != nil {
		return nil, err
	}

	if err := s.memberRepo.Save(ctx, m); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}

	s.events.Dispatch(ctx, m)
	return m, nil
}
