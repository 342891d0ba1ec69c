package database

import "momentzero/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters: accounts must exist before moments reference them.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Account{},
		&models.Moment{},
	}
}
