package retrospective

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/content/profile"
	"github.com/folio-space/core/internal/pkg/sanitize"
	"gorm.io/gorm"
)

const viewWindow = 24 * time.Hour

var ErrNotFound = errors.New("retrospective not found")

type CreateRetrospectiveDTO struct {
	ProfileID   string `json:"profile_id"`
	Year        *int   `json:"year"        binding:"required,min=1000,max=9999"`
	Title       string `json:"title"       binding:"required,notblank"`
	Description string `json:"description" binding:"required,richtext"`
}

type UpdateRetrospectiveDTO struct {
	ProfileID   *string `json:"profile_id"`
	Year        *int    `json:"year"        binding:"omitempty,min=1000,max=9999"`
	Title       *string `json:"title"       binding:"omitempty,notblank"`
	Description *string `json:"description" binding:"omitempty,richtext"`
}

// ViewMarker remembers which visitors were already counted.
type ViewMarker interface {
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
}

type Service struct {
	db       *gorm.DB
	profiles profile.Resolver
	views    ViewMarker
	now      func() time.Time
}

// NewService builds the service. views may be nil, in which case every view counts.
func NewService(db *gorm.DB, profiles profile.Resolver, views ViewMarker) *Service {
	return &Service{db: db, profiles: profiles, views: views, now: time.Now}
}

// List returns the profile's retrospectives, latest year first.
func (s *Service) List(profileID string) ([]models.RetrospectiveModel, error) {
	pid := strings.TrimSpace(profileID)
	if pid == "" {
		var err error
		if pid, err = s.profiles.SingletonID(); err != nil || pid == "" {
			return []models.RetrospectiveModel{}, err
		}
	}
	items := []models.RetrospectiveModel{}
	return items, s.db.Where("profile_id = ?", pid).Order("year DESC").Order("created_at DESC").Find(&items).Error
}

func (s *Service) GetByID(id string) (*models.RetrospectiveModel, error) {
	var item models.RetrospectiveModel
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Service) Create(dto *CreateRetrospectiveDTO) (*models.RetrospectiveModel, error) {
	pid, err := s.profiles.ResolveID(dto.ProfileID)
	if err != nil {
		return nil, err
	}
	item := models.RetrospectiveModel{
		ProfileOwned: models.ProfileOwned{ProfileID: pid},
		Year:         *dto.Year,
		Title:        strings.TrimSpace(dto.Title),
		Description:  sanitize.HTML(dto.Description),
	}
	return &item, s.db.Create(&item).Error
}

// Update changes only the fields present in dto.
func (s *Service) Update(id string, dto *UpdateRetrospectiveDTO) (*models.RetrospectiveModel, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}

	updates := map[string]interface{}{}
	if dto.ProfileID != nil {
		pid, err := s.profiles.ResolveID(*dto.ProfileID)
		if err != nil {
			return nil, err
		}
		updates["profile_id"] = pid
	}
	if dto.Year != nil {
		updates["year"] = *dto.Year
	}
	if dto.Title != nil {
		updates["title"] = strings.TrimSpace(*dto.Title)
	}
	if dto.Description != nil {
		updates["description"] = sanitize.HTML(*dto.Description)
	}
	if len(updates) == 0 {
		return item, nil
	}
	if err := s.db.Model(item).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	res := s.db.Delete(&models.RetrospectiveModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordView increments the view counter and returns the new total. A
// visitor is counted once per day when a ViewMarker is configured; a marker
// failure counts the view.
func (s *Service) RecordView(ctx context.Context, id, visitor string) (int64, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, ErrNotFound
	}

	if s.views != nil && visitor != "" {
		key := fmt.Sprintf("folio:retro_view:%s:%s:%s", id, s.now().Format("2006-01-02"), visitor)
		if fresh, err := s.views.SetNX(ctx, key, 1, viewWindow); err == nil && !fresh {
			return item.Views, nil
		}
	}

	if err := s.db.Model(&models.RetrospectiveModel{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		return 0, err
	}
	var views int64
	if err := s.db.Model(&models.RetrospectiveModel{}).Where("id = ?", id).Pluck("views", &views).Error; err != nil {
		return 0, err
	}
	return views, nil
}
