package models

import "time"

type Admin struct {
	ID           uint   `gorm:"primaryKey"`
	AdminID      string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	// Yetkili paneline erişim onayı
	YetkiliApproved bool `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Devices []AdminDevice
}

type AdminDevice struct {
	ID                uint   `gorm:"primaryKey"`
	AdminID           uint   `gorm:"not null;uniqueIndex:idx_admin_device_fingerprint"`
	DeviceFingerprint string `gorm:"size:255;not null;uniqueIndex:idx_admin_device_fingerprint"`
	DeviceName        string `gorm:"size:255;not null"`
	IsApproved        bool   `gorm:"not null"` // girişe izin
	IsAuthorized      bool   `gorm:"not null"` // yetkili özelliklerine izin
	CreatedAt         time.Time
	LastUsed          time.Time
}
