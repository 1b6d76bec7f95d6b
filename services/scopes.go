package services

import "gorm.io/gorm"

// userRefColumns limits a joined user to the fields other records expose.
func userRefColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}
