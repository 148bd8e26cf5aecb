package db

import "gorm.io/gorm"

// Guideline represents a clinical guideline document addressed by slug.
type Guideline struct {
	gorm.Model
	Slug     string `gorm:"uniqueIndex;not null"`
	Title    string `gorm:"not null"`
	Summary  string
	Content  string `gorm:"type:text"`
	Category string `gorm:"index"`
	Source   string
}
