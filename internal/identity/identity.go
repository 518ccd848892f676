// Package identity models the external identity service the listing engine
// consults at creation time. Age and role gating happen upstream; the engine
// only needs existence checks.
package identity

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Owner is a row of the owner directory.
type Owner struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Ref       string       `gorm:"column:ref;not null;uniqueIndex" json:"ref"`
	Name      string       `gorm:"not null;default:''" json:"name"`
	Email     string       `gorm:"not null;default:''" json:"email"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Owner) TableName() string {
	return "owners"
}

// Resolver answers whether an owner reference resolves to a real account.
type Resolver interface {
	OwnerExists(ctx context.Context, ref string) (bool, error)
}

// Module provides the directory-backed resolver. Deployments that keep
// identity in a separate service swap this provider.
var Module = fx.Module("identity",
	fx.Provide(NewDirectoryResolver),
)

type directoryResolver struct {
	db *gorm.DB
}

// NewDirectoryResolver resolves owner references against the owners table.
func NewDirectoryResolver(db *gorm.DB) Resolver {
	return &directoryResolver{db: db}
}

func (r *directoryResolver) OwnerExists(ctx context.Context, ref string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Owner{}).
		Where("ref = ?", ref).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
