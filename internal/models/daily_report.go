package models

import "time"

// DailyReport: Gönderilen günlük raporun değişmez kopyası
type DailyReport struct {
	ID         uint      `gorm:"primaryKey"`
	ReportDate time.Time `gorm:"index;not null"`

	// İstemcinin gönderdiği snapshot olduğu gibi saklanır (json, jsonb değil: key sırası korunur)
	Snapshot string `gorm:"type:json;not null"`

	TotalKPIs      int `gorm:"column:total_kpis;not null"`
	SuccessfulKPIs int `gorm:"column:successful_kpis;not null"`
	SuccessRate    int `gorm:"not null"` // 0-100
	CreatedAt      time.Time
}
