package education

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
	ErrNotFound     = errors.New("education not found")
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidRange = errors.New("end date before start date")
)

type EducationDTO struct {
	ProfileID    string  `json:"profile_id"`
	School       string  `json:"school"         binding:"required,notblank"`
	Degree       string  `json:"degree"         binding:"required,notblank"`
	FieldOfStudy string  `json:"field_of_study" binding:"required,notblank"`
	StartDate    string  `json:"start_date"     binding:"required,notblank"`
	EndDate      *string `json:"end_date"`
	Grade        string  `json:"grade"`
	Description  string  `json:"description"`
}

type Service struct {
	db       *gorm.DB
	profiles profile.Resolver
}

func NewService(db *gorm.DB, profiles profile.Resolver) *Service {
	return &Service{db: db, profiles: profiles}
}

func (s *Service) List(profileID string) ([]models.EducationModel, error) {
	pid := strings.TrimSpace(profileID)
	if pid == "" {
		var err error
		if pid, err = s.profiles.SingletonID(); err != nil || pid == "" {
			return []models.EducationModel{}, err
		}
	}
	items := []models.EducationModel{}
	return items, s.db.Where("profile_id = ?", pid).Order("start_date DESC").Find(&items).Error
}

func (s *Service) GetByID(id string) (*models.EducationModel, error) {
	var item models.EducationModel
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Service) Create(dto *EducationDTO) (*models.EducationModel, error) {
	var item models.EducationModel
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

func (s *Service) Update(id string, dto *EducationDTO) (*models.EducationModel, error) {
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
	res := s.db.Delete(&models.EducationModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func apply(item *models.EducationModel, dto *EducationDTO) error {
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

	item.School = strings.TrimSpace(dto.School)
	item.Degree = strings.TrimSpace(dto.Degree)
	item.FieldOfStudy = strings.TrimSpace(dto.FieldOfStudy)
	item.StartDate = start
	item.EndDate = end
	item.Grade = strings.TrimSpace(dto.Grade)
	item.Description = sanitize.HTML(dto.Description)
	return nil
}
