package skill

import (
	"errors"
	"strings"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/content/profile"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("skill not found")

type SkillDTO struct {
	ProfileID string `json:"profile_id"`
	Name      string `json:"name"  binding:"required,notblank"`
	Level     *int   `json:"level" binding:"required,min=0,max=100"`
	Icon      string `json:"icon"`
}

type Service struct {
	db       *gorm.DB
	profiles profile.Resolver
}

func NewService(db *gorm.DB, profiles profile.Resolver) *Service {
	return &Service{db: db, profiles: profiles}
}

// List returns the profile's skills, newest first. A blank profileID means the singleton.
func (s *Service) List(profileID string) ([]models.SkillModel, error) {
	pid, err := ownerForList(s.profiles, profileID)
	if err != nil || pid == "" {
		return []models.SkillModel{}, err
	}
	items := []models.SkillModel{}
	return items, s.db.Where("profile_id = ?", pid).Order("created_at DESC").Find(&items).Error
}

func (s *Service) GetByID(id string) (*models.SkillModel, error) {
	var item models.SkillModel
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Service) Create(dto *SkillDTO) (*models.SkillModel, error) {
	pid, err := s.profiles.ResolveID(dto.ProfileID)
	if err != nil {
		return nil, err
	}
	item := models.SkillModel{ProfileOwned: models.ProfileOwned{ProfileID: pid}}
	apply(&item, dto)
	return &item, s.db.Create(&item).Error
}

// Update replaces the editable fields; the owner changes only when profile_id is given.
func (s *Service) Update(id string, dto *SkillDTO) (*models.SkillModel, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(dto.ProfileID) != "" {
		pid, err := s.profiles.ResolveID(dto.ProfileID)
		if err != nil {
			return nil, err
		}
		item.ProfileID = pid
	}
	apply(item, dto)
	return item, s.db.Save(item).Error
}

func (s *Service) Delete(id string) error {
	res := s.db.Delete(&models.SkillModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func apply(item *models.SkillModel, dto *SkillDTO) {
	item.Name = strings.TrimSpace(dto.Name)
	item.Level = *dto.Level
	item.Icon = strings.TrimSpace(dto.Icon)
}

func ownerForList(profiles profile.Resolver, profileID string) (string, error) {
	if id := strings.TrimSpace(profileID); id != "" {
		return id, nil
	}
	return profiles.SingletonID()
}
