package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"restoran-kpi-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	reportsSheet = "Raporlar"
	detailSheet  = "KPI Detayları"
)

var (
	reportHeaders = []string{"Rapor ID", "Tarih", "Toplam KPI", "Başarılı KPI", "Başarı Oranı (%)"}
	detailHeaders = []string{"Rapor ID", "Tarih", "KPI", "Hedef", "Gerçekleşen", "Birim", "Durum"}
)

// snapshotKPI istemcinin snapshot.kpis dizisine yazdığı satırlar; eksik alanlar boş kalır.
type snapshotKPI struct {
	Name   string   `json:"name"`
	Target *float64 `json:"target"`
	Actual *float64 `json:"actual"`
	Unit   *string  `json:"unit"`
	Status string   `json:"status"`
}

type snapshotBody struct {
	KPIs []snapshotKPI `json:"kpis"`
}

// BuildWorkbook raporları xlsx olarak yazar. Snapshot'ında kpis dizisi olan raporlar
// ikinci sayfaya KPI bazında açılır.
func BuildWorkbook(reports []models.DailyReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(detailSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	if err := writeHeader(f, reportsSheet, reportHeaders, headerStyle); err != nil {
		return nil, err
	}
	if err := writeHeader(f, detailSheet, detailHeaders, headerStyle); err != nil {
		return nil, err
	}

	detailRow := 2
	for i, r := range reports {
		date := r.ReportDate.Format("2006-01-02 15:04")
		row := []any{r.ID, date, r.TotalKPIs, r.SuccessfulKPIs, r.SuccessRate}
		if err := setRow(f, reportsSheet, i+2, row); err != nil {
			return nil, err
		}

		var body snapshotBody
		// kpis dizisi olmayan ya da farklı şekildeki snapshot'lar sadece ilk sayfada görünür
		if err := json.Unmarshal([]byte(r.Snapshot), &body); err != nil {
			continue
		}
		for _, k := range body.KPIs {
			detail := []any{r.ID, date, k.Name, optional(k.Target), optional(k.Actual), optional(k.Unit), k.Status}
			if err := setRow(f, detailSheet, detailRow, detail); err != nil {
				return nil, err
			}
			detailRow++
		}
	}

	for _, sheet := range []string{reportsSheet, detailSheet} {
		if err := f.SetColWidth(sheet, "A", "G", 16); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx yazılamadı: %w", err)
	}
	return buf, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := setRow(f, sheet, 1, row); err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", end, style)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func optional[T any](v *T) any {
	if v == nil {
		return ""
	}
	return *v
}
