package scope

import "gorm.io/gorm"

// Active excludes rows whose is_active flag was cleared by a soft delete.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
