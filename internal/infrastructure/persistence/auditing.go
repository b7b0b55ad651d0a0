package persistence

import (
	"github.com/jpashop/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

// SystemAuditor is recorded when a write happens outside of a request.
const SystemAuditor = "system"

const (
	createdByField      = "CreatedBy"
	lastModifiedByField = "LastModifiedBy"
)

// AuditPlugin fills CreatedBy and LastModifiedBy from the auditor carried by the
// statement context. CreatedAt and UpdatedAt are handled by GORM itself.
type AuditPlugin struct{}

// NewAuditPlugin creates the auditing plugin
func NewAuditPlugin() *AuditPlugin {
	return &AuditPlugin{}
}

// Name implements gorm.Plugin
func (p *AuditPlugin) Name() string {
	return "audit"
}

// Initialize implements gorm.Plugin
func (p *AuditPlugin) Initialize(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register("audit:before_create", p.beforeCreate); err != nil {
		return err
	}
	return db.Callback().Update().Before("gorm:update").Register("audit:before_update", p.beforeUpdate)
}

func (p *AuditPlugin) beforeCreate(db *gorm.DB) {
	auditor := currentAuditor(db)
	setColumn(db, createdByField, auditor)
	setColumn(db, lastModifiedByField, auditor)
}

func (p *AuditPlugin) beforeUpdate(db *gorm.DB) {
	setColumn(db, lastModifiedByField, currentAuditor(db))
}

func currentAuditor(db *gorm.DB) string {
	if db.Statement.Context == nil {
		return SystemAuditor
	}
	if auditor := logger.GetAuditor(db.Statement.Context); auditor != "" {
		return auditor
	}
	return SystemAuditor
}

// setColumn only touches models that carry the auditing columns.
func setColumn(db *gorm.DB, name, value string) {
	if db.Statement.Schema == nil || db.Statement.Schema.LookUpField(name) == nil {
		return
	}
	db.Statement.SetColumn(name, value, true)
}
