package kpi

import (
	"context"
	"sort"
	"time"

	"restoran-kpi-backend/internal/audit"
	"restoran-kpi-backend/internal/models"
)

// memRepo, Repository'nin testler için bellek içi karşılığı.
type memRepo struct {
	nextID uint
	rows   map[uint]*models.KPI
}

func newMemRepo(kpis ...models.KPI) *memRepo {
	r := &memRepo{nextID: 1, rows: map[uint]*models.KPI{}}
	for _, k := range kpis {
		k := k
		if k.ID == 0 {
			k.ID = r.nextID
		}
		if k.ID >= r.nextID {
			r.nextID = k.ID + 1
		}
		r.rows[k.ID] = &k
	}
	return r
}

func (r *memRepo) List(context.Context) ([]models.KPI, error) {
	out := make([]models.KPI, 0, len(r.rows))
	for _, k := range r.rows {
		out = append(out, *k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memRepo) FindByID(_ context.Context, id uint) (*models.KPI, error) {
	k, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *k
	return &cp, nil
}

func (r *memRepo) MaxPosition(context.Context) (int, error) {
	max := -1
	for _, k := range r.rows {
		if k.Position > max {
			max = k.Position
		}
	}
	return max, nil
}

func (r *memRepo) Create(_ context.Context, k *models.KPI) error {
	k.ID = r.nextID
	r.nextID++
	now := time.Now()
	k.CreatedAt, k.UpdatedAt = now, now
	cp := *k
	r.rows[k.ID] = &cp
	return nil
}

func (r *memRepo) Update(_ context.Context, id uint, changes map[string]any) (bool, error) {
	k, ok := r.rows[id]
	if !ok {
		return false, nil
	}
	for col, v := range changes {
		switch col {
		case "name":
			k.Name = v.(string)
		case "category":
			k.Category = v.(models.KPICategory)
		case "target":
			k.Target = v.(float64)
		case "actual":
			k.Actual = v.(float64)
		case "period":
			k.Period = v.(models.KPIPeriod)
		case "unit":
			k.Unit = v.(*string)
		case "position":
			k.Position = v.(int)
		case "updated_at":
			k.UpdatedAt = v.(time.Time)
		}
	}
	return true, nil
}

func (r *memRepo) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func (r *memRepo) Reorder(_ context.Context, ids []uint) error {
	for i, id := range ids {
		if k, ok := r.rows[id]; ok {
			k.Position = i
		}
	}
	return nil
}

func (r *memRepo) ResetValues(_ context.Context, at time.Time) (int64, error) {
	for _, k := range r.rows {
		k.Actual, k.Target, k.UpdatedAt = 0, 0, at
	}
	return int64(len(r.rows)), nil
}

type recordingAudit struct {
	entries []audit.Entry
}

func (a *recordingAudit) Record(_ context.Context, e audit.Entry) error {
	a.entries = append(a.entries, e)
	return nil
}
