package sociallink

import (
	"errors"
	"strings"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/content/profile"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("social link not found")

// SocialLinkDTO allows duplicate platforms; only the URL scheme is checked.
type SocialLinkDTO struct {
	ProfileID string `json:"profile_id"`
	Platform  string `json:"platform" binding:"required,notblank"`
	URL       string `json:"url"      binding:"required,httpurl"`
	Icon      string `json:"icon"`
}

type Service struct {
	db       *gorm.DB
	profiles profile.Resolver
}

func NewService(db *gorm.DB, profiles profile.Resolver) *Service {
	return &Service{db: db, profiles: profiles}
}

func (s *Service) List(profileID string) ([]models.SocialLinkModel, error) {
	pid := strings.TrimSpace(profileID)
	if pid == "" {
		var err error
		if pid, err = s.profiles.SingletonID(); err != nil || pid == "" {
			return []models.SocialLinkModel{}, err
		}
	}
	items := []models.SocialLinkModel{}
	return items, s.db.Where("profile_id = ?", pid).Order("created_at DESC").Find(&items).Error
}

func (s *Service) GetByID(id string) (*models.SocialLinkModel, error) {
	var item models.SocialLinkModel
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Service) Create(dto *SocialLinkDTO) (*models.SocialLinkModel, error) {
	pid, err := s.profiles.ResolveID(dto.ProfileID)
	if err != nil {
		return nil, err
	}
	item := models.SocialLinkModel{
		ProfileOwned: models.ProfileOwned{ProfileID: pid},
		Platform:     strings.TrimSpace(dto.Platform),
		URL:          strings.TrimSpace(dto.URL),
		Icon:         strings.TrimSpace(dto.Icon),
	}
	return &item, s.db.Create(&item).Error
}

func (s *Service) Update(id string, dto *SocialLinkDTO) (*models.SocialLinkModel, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(dto.ProfileID) != "" {
		if item.ProfileID, err = s.profiles.ResolveID(dto.ProfileID); err != nil {
			return nil, err
		}
	}
	item.Platform = strings.TrimSpace(dto.Platform)
	item.URL = strings.TrimSpace(dto.URL)
	item.Icon = strings.TrimSpace(dto.Icon)
	return item, s.db.Save(item).Error
}

func (s *Service) Delete(id string) error {
	res := s.db.Delete(&models.SocialLinkModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
