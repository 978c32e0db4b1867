package kpi

import (
	"context"

	"restoran-kpi-backend/internal/models"
)

type seedRow struct {
	category models.KPICategory
	name     string
	unit     string
	target   float64
	actual   float64
	period   models.KPIPeriod
}

var defaultKPIs = []seedRow{
	{models.CategoryOperasyon, "Günlük Sipariş Sayısı", "", 500, 460, models.PeriodGunluk},
	{models.CategoryOperasyon, "Drive-Thru Ortalama Hizmet Süresi", "sn", 120, 135, models.PeriodGunluk},
	{models.CategoryOperasyon, "Drive-Thru Sipariş Doğruluğu", "%", 98, 95, models.PeriodHaftalik},
	{models.CategoryOperasyon, "Restoran Temizlik Skoru", "%", 95, 90, models.PeriodAylik},
	{models.CategoryOperasyon, "Hazırlama Süresi", "sn", 90, 110, models.PeriodGunluk},

	{models.CategoryMutfak, "Mutfak Hata Oranı", "%", 1, 1, models.PeriodGunluk},
	{models.CategoryMutfak, "Stokta Kalma Oranı", "%", 98, 96, models.PeriodAylik},
	{models.CategoryMutfak, "Fire Oranı", "%", 2, 3, models.PeriodAylik},
	{models.CategoryMutfak, "Hazırlanan Ürün Sayısı", "", 1500, 1300, models.PeriodGunluk},
	{models.CategoryMutfak, "Gıda Güvenliği Skoru", "%", 95, 92, models.PeriodHaftalik},

	{models.CategoryMusteriDeneyimi, "Müşteri Memnuniyeti", "%", 90, 88, models.PeriodAylik},
	{models.CategoryMusteriDeneyimi, "Şikayet Sayısı", "", 5, 7, models.PeriodGunluk},
	{models.CategoryMusteriDeneyimi, "Servis Hızı", "sn", 120, 135, models.PeriodGunluk},
	{models.CategoryMusteriDeneyimi, "Sipariş Hatası Sayısı", "", 2, 4, models.PeriodGunluk},
	{models.CategoryMusteriDeneyimi, "Paket Servis Geri Bildirim Skoru", "", 4, 4, models.PeriodHaftalik},

	{models.CategoryPersonel, "Vardiya Uygunluğu", "%", 95, 92, models.PeriodAylik},
	{models.CategoryPersonel, "Personel Devamsızlığı", "%", 2, 3, models.PeriodAylik},
	{models.CategoryPersonel, "Eğitim Tamamlama Oranı", "%", 100, 80, models.PeriodAylik},
	{models.CategoryPersonel, "İşe Alım Hızı", "gün", 7, 10, models.PeriodHaftalik},
	{models.CategoryPersonel, "Personel Memnuniyeti", "%", 85, 82, models.PeriodAylik},
}

// SeedDefaults tablo boşsa varsayılan KPI setini ekler, eklenen kayıt sayısını döner.
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, row := range defaultKPIs {
		actual, position := row.actual, i
		unit := row.unit
		if _, err := s.Create(ctx, CreateInput{
			Name:     row.name,
			Category: row.category,
			Target:   row.target,
			Actual:   &actual,
			Period:   row.period,
			Unit:     &unit,
			Position: &position,
		}); err != nil {
			return i, err
		}
	}
	return len(defaultKPIs), nil
}
