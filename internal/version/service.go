package version

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"restoran-kpi-backend/internal/apperr"
	"restoran-kpi-backend/internal/audit"
	"restoran-kpi-backend/internal/cache"
	"restoran-kpi-backend/internal/models"

	"go.uber.org/zap"
)

const (
	entityType = "app_version"

	latestCacheKey = "app_version:latest"
	DefaultVersion = "1.0.0"
)

// Latest istemcilere dönen yayındaki sürüm bilgisi.
type Latest struct {
	Version   string  `json:"version"`
	Changelog *string `json:"changelog"`
}

type Service struct {
	repo     Repository
	cache    cache.Cache
	cacheTTL time.Duration
	audit    audit.Recorder
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, c cache.Cache, cacheTTL time.Duration, recorder audit.Recorder, log *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		audit:    recorder,
		log:      log,
		now:      time.Now,
	}
}

// Latest önce cache'e bakar. Cache hataları isteği bozmaz, veritabanına düşülür.
func (s *Service) Latest(ctx context.Context) (Latest, error) {
	raw, err := s.cache.Get(ctx, latestCacheKey)
	if err == nil {
		var l Latest
		if jsonErr := json.Unmarshal([]byte(raw), &l); jsonErr == nil {
			return l, nil
		}
		s.log.Warn("cache'teki sürüm bilgisi bozuk", zap.String("key", latestCacheKey))
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("sürüm cache'i okunamadı", zap.Error(err))
	}

	v, err := s.repo.LatestPublished(ctx)
	if err != nil {
		return Latest{}, err
	}

	l := Latest{Version: DefaultVersion}
	if v != nil {
		l = Latest{Version: v.Version, Changelog: v.Changelog}
	}

	if b, err := json.Marshal(l); err == nil {
		if err := s.cache.Set(ctx, latestCacheKey, string(b), s.cacheTTL); err != nil {
			s.log.Warn("sürüm cache'e yazılamadı", zap.Error(err))
		}
	}
	return l, nil
}

func (s *Service) List(ctx context.Context) ([]models.AppVersion, error) {
	return s.repo.List(ctx)
}

func (s *Service) CreateDraft(ctx context.Context, version string, changelog *string) (*models.AppVersion, error) {
	return s.create(ctx, version, changelog, models.VersionDraft)
}

// QuickPublish sürümü doğrudan yayında olarak oluşturur.
func (s *Service) QuickPublish(ctx context.Context, version string, changelog *string) (*models.AppVersion, error) {
	v, err := s.create(ctx, version, changelog, models.VersionPublished)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return v, nil
}

func (s *Service) create(ctx context.Context, version string, changelog *string, status models.VersionStatus) (*models.AppVersion, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, apperr.Validation("Geçerli sürüm gerekli")
	}

	v := &models.AppVersion{Version: version, Changelog: changelog, Status: status}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	action := models.AuditActionCreate
	if status == models.VersionPublished {
		action = models.AuditActionPublish
	}
	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  entityType,
		EntityID:    v.ID,
		Action:      action,
		Description: "Sürüm oluşturuldu: " + v.Version,
		After:       v,
	})
	return v, nil
}

func (s *Service) Publish(ctx context.Context, id uint) (*models.AppVersion, error) {
	ok, err := s.repo.SetStatus(ctx, id, models.VersionPublished, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("Sürüm bulunamadı")
	}
	s.invalidate(ctx)

	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperr.NotFound("Sürüm bulunamadı")
	}

	s.log.Info("Sürüm yayınlandı", zap.String("version", v.Version))
	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  entityType,
		EntityID:    id,
		Action:      models.AuditActionPublish,
		Description: "Sürüm yayınlandı: " + v.Version,
	})
	return v, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if before == nil {
		return apperr.NotFound("Sürüm bulunamadı")
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("Sürüm bulunamadı")
	}
	s.invalidate(ctx)

	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  entityType,
		EntityID:    id,
		Action:      models.AuditActionDelete,
		Description: "Sürüm silindi: " + before.Version,
		Before:      before,
	})
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, latestCacheKey); err != nil {
		s.log.Warn("sürüm cache'i temizlenemedi", zap.Error(err))
	}
}
