package shared

import "time"

// BaseTimeEntity carries the time-auditing columns. GORM fills both on create
// and refreshes UpdatedAt on every update.
type BaseTimeEntity struct {
	CreatedAt time.Time `gorm:"not null" json:"createdDate"`
	UpdatedAt time.Time `gorm:"not null" json:"lastModifiedDate"`
}

// BaseEntity adds auditor columns on top of the time-auditing ones. The
// persistence layer fills CreatedBy and LastModifiedBy from the auditor in the
// request context.
type BaseEntity struct {
	BaseTimeEntity
	CreatedBy      string `gorm:"type:varchar(100);not null;default:''" json:"createdBy"`
	LastModifiedBy string `gorm:"type:varchar(100);not null;default:''" json:"lastModifiedBy"`
}

// Persistable is implemented by entities whose identifier is assigned by the
// caller, so that "has an ID" cannot tell an insert from an update.
type Persistable interface {
	IsNew() bool
}
