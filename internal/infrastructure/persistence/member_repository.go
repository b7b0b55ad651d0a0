package persistence

import (
	"context"
	"errors"

	"github.com/jpashop/backend/internal/domain/member"
	"github.com/jpashop/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMemberRepository implements MemberRepository using GORM
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// Save inserts a member without an ID and updates every column otherwise.
func (r *GormMemberRepository) Save(ctx context.Context, m *member.Member) error {
	db := r.db.WithContext(ctx)
	if m.ID == 0 {
		if err := db.Create(m).Error; err != nil {
			return translateWriteError(err, "member name is already taken")
		}
		return nil
	}

	result := db.Model(m).Select("*").Omit("created_at", "created_by").Updates(m)
	if result.Error != nil {
		return translateWriteError(result.Error, "member name is already taken")
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindOne finds a member by its ID
func (r *GormMemberRepository) FindOne(ctx context.Context, id int64) (*member.Member, error) {
	var m member.Member
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindAll returns every member ordered by ID
func (r *GormMemberRepository) FindAll(ctx context.Context) ([]member.Member, error) {
	var members []member.Member
	if err := r.db.WithContext(ctx).Order("id").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// FindByName finds members with exactly the given name
func (r *GormMemberRepository) FindByName(ctx context.Context, name string) ([]member.Member, error) {
	var members []member.Member
	if err := r.db.WithContext(ctx).Where("name = ?", name).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ExistsByName checks whether a member already uses the name
func (r *GormMemberRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&member.Member{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// translateWriteError maps unique violations to ALREADY_EXISTS.
func translateWriteError(err error, duplicateMessage string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDomainError("ALREADY_EXISTS", duplicateMessage)
	}
	return err
}

var _ member.MemberRepository = (*GormMemberRepository)(nil)
