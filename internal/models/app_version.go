package models

import "time"

type VersionStatus string

const (
	VersionDraft     VersionStatus = "draft"
	VersionPublished VersionStatus = "published"
)

type AppVersion struct {
	ID        uint          `gorm:"primaryKey"`
	Version   string        `gorm:"size:50;not null"`
	Changelog *string       `gorm:"type:text"`
	Status    VersionStatus `gorm:"size:20;index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
