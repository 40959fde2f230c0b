package experience

import (
	"errors"
	"strings"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/content/profile"
	"github.com/folio-space/core/internal/pkg/dates"
	"github.com/folio-space/core/internal/pkg/sanitize"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("experience not found")
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidRange = errors.New("end date before start date")
)

type ExperienceDTO struct {
	ProfileID    string   `json:"profile_id"`
	Title        string   `json:"title"      binding:"required,notblank"`
	Company      string   `json:"company"    binding:"required,notblank"`
	Location     string   `json:"location"`
	StartDate    string   `json:"start_date" binding:"required,notblank"`
	EndDate      *string  `json:"end_date"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

type Service struct {
	db       *gorm.DB
	profiles profile.Resolver
}

func NewService(db *gorm.DB, profiles profile.Resolver) *Service {
	return &Service{db: db, profiles: profiles}
}

// List returns the profile's positions, most recent start first.
func (s *Service) List(profileID string) ([]models.ExperienceModel, error) {
	pid := strings.TrimSpace(profileID)
	if pid == "" {
		var err error
		if pid, err = s.profiles.SingletonID(); err != nil || pid == "" {
			return []models.ExperienceModel{}, err
		}
	}
	items := []models.ExperienceModel{}
	return items, s.db.Where("profile_id = ?", pid).Order("start_date DESC").Find(&items).Error
}

func (s *Service) GetByID(id string) (*models.ExperienceModel, error) {
	var item models.ExperienceModel
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Service) Create(dto *ExperienceDTO) (*models.ExperienceModel, error) {
	var item models.ExperienceModel
	if err := apply(&item, dto); err != nil {
		return nil, err
	}
	pid, err := s.profiles.ResolveID(dto.ProfileID)
	if err != nil {
		return nil, err
	}
	item.ProfileID = pid
	return &item, s.db.Create(&item).Error
}

func (s *Service) Update(id string, dto *ExperienceDTO) (*models.ExperienceModel, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if err := apply(item, dto); err != nil {
		return nil, err
	}
	if strings.TrimSpace(dto.ProfileID) != "" {
		pid, err := s.profiles.ResolveID(dto.ProfileID)
		if err != nil {
			return nil, err
		}
		item.ProfileID = pid
	}
	return item, s.db.Save(item).Error
}

func (s *Service) Delete(id string) error {
	res := s.db.Delete(&models.ExperienceModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func apply(item *models.ExperienceModel, dto *ExperienceDTO) error {
	start, err := dates.Parse(dto.StartDate)
	if err != nil {
		return ErrInvalidDate
	}
	end, err := dates.ParseOptional(dto.EndDate)
	if err != nil {
		return ErrInvalidDate
	}
	if end != nil && end.Before(start) {
		return ErrInvalidRange
	}

	item.Title = strings.TrimSpace(dto.Title)
	item.Company = strings.TrimSpace(dto.Company)
	item.Location = strings.TrimSpace(dto.Location)
	item.StartDate = start
	item.EndDate = end
	item.Description = sanitize.HTML(dto.Description)
	item.Achievements = models.StringArray(dto.Achievements).Clean()
	return nil
}
