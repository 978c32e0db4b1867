package models

import "time"

const (
	CriticalYes = "yes"
	CriticalNo  = "no"
)

// CriticalProducts: Her biri için en fazla bir kayıt tutulur (sub_unit ile)
var CriticalProducts = []string{"Ayran", "Salata", "Shake Süt", "Sundae Süt"}

type CriticalOccasion struct {
	ID          uint    `gorm:"primaryKey"`
	Title       string  `gorm:"size:200;not null"`
	SubUnit     *string `gorm:"size:100;index"`
	Description *string `gorm:"type:text"`       // SKT notları vs.
	IsCritical  string  `gorm:"size:3;not null"` // yes / no
	CreatedAt   time.Time
}

func IsCriticalProduct(name string) bool {
	for _, p := range CriticalProducts {
		if p == name {
			return true
		}
	}
	return false
}
