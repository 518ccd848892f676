package seed

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/domora/internal/identity"
	"gorm.io/gorm"
)

// DevOwnerRef is the owner reference seeded for local development.
const DevOwnerRef = "owner_dev"

// EnsureDevOwner creates the development owner when it is missing, so a
// fresh checkout can create listings without a provisioned identity service.
func EnsureDevOwner(conn *gorm.DB, genID *snowflake.Node) error {
	var count int64
	if err := conn.Model(&identity.Owner{}).Where("ref = ?", DevOwnerRef).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	owner := identity.Owner{
		ID:        genID.Generate(),
		Ref:       DevOwnerRef,
		Name:      "Development Owner",
		Email:     "dev@localhost",
		CreatedAt: time.Now().UTC(),
	}
	return conn.Create(&owner).Error
}
