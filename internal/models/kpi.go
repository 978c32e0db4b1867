package models

import "time"

type KPICategory string

const (
	CategoryOperasyon       KPICategory = "Operasyon"
	CategoryMutfak          KPICategory = "Mutfak"
	CategoryMusteriDeneyimi KPICategory = "Müşteri Deneyimi"
	CategoryPersonel        KPICategory = "Personel"
)

type KPIPeriod string

const (
	PeriodGunluk   KPIPeriod = "Günlük"
	PeriodHaftalik KPIPeriod = "Haftalık"
	PeriodAylik    KPIPeriod = "Aylık"
	PeriodYillik   KPIPeriod = "Yıllık"
)

// KPI: Dashboard'da takip edilen metrik
type KPI struct {
	ID       uint        `gorm:"primaryKey"`
	Name     string      `gorm:"size:200;not null"`
	Category KPICategory `gorm:"size:50;not null"`
	Target   float64     `gorm:"not null"`
	Actual   float64     `gorm:"not null"`
	Period   KPIPeriod   `gorm:"size:20;not null"`
	Unit     *string     `gorm:"size:20"` // %, sn, gün, TL ...
	// Görüntüleme sırası, reorder ile 0..n-1 atanır
	Position  int `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
