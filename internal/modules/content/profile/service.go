package profile

import (
	"errors"
	"strings"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/sanitize"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrKeyTaken        = errors.New("profile key already exists")
)

// Resolver maps an optional profile id to an existing profile.
type Resolver interface {
	// ResolveID returns id when it names a profile, or the singleton's id when id is blank.
	ResolveID(id string) (string, error)
	// SingletonID returns the singleton's id, or "" when none exists.
	SingletonID() (string, error)
}

type ProfileDTO struct {
	Key               string   `json:"key"`
	Name              string   `json:"name"               binding:"required,notblank"`
	Title             string   `json:"title"              binding:"required,notblank"`
	Bio               string   `json:"bio"                binding:"required,richtext"`
	Email             string   `json:"email"              binding:"omitempty,email"`
	Phone             string   `json:"phone"`
	Address           string   `json:"address"`
	ProfileImage      string   `json:"profile_image"      binding:"omitempty,httpurl"`
	TechStack         []string `json:"tech_stack"`
	CurrentActivities []string `json:"current_activities"`
}

type Service struct {
	db  *gorm.DB
	key string
}

// NewService reads and writes profiles; key selects the singleton shown on the site.
func NewService(db *gorm.DB, key string) *Service {
	if key == "" {
		key = "default"
	}
	return &Service{db: db, key: key}
}

func (s *Service) Key() string { return s.key }

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Skills", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at DESC") }).
		Preload("Experiences", func(tx *gorm.DB) *gorm.DB { return tx.Order("start_date DESC") }).
		Preload("Educations", func(tx *gorm.DB) *gorm.DB { return tx.Order("start_date DESC") }).
		Preload("SocialLinks", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at DESC") }).
		Preload("Retrospectives", func(tx *gorm.DB) *gorm.DB { return tx.Order("year DESC") })
}

// GetSingleton returns the configured profile with every child, or nil.
func (s *Service) GetSingleton() (*models.ProfileModel, error) {
	var p models.ProfileModel
	if err := withChildren(s.db).First(&p, "`key` = ?", s.key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) GetByID(id string) (*models.ProfileModel, error) {
	var p models.ProfileModel
	if err := withChildren(s.db).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) SingletonID() (string, error) {
	var ids []string
	if err := s.db.Model(&models.ProfileModel{}).Where("`key` = ?", s.key).Limit(1).Pluck("id", &ids).Error; err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

func (s *Service) ResolveID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		sid, err := s.SingletonID()
		if err != nil {
			return "", err
		}
		if sid == "" {
			return "", ErrProfileNotFound
		}
		return sid, nil
	}

	var count int64
	if err := s.db.Model(&models.ProfileModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return "", ErrProfileNotFound
	}
	return id, nil
}

func (s *Service) Create(dto *ProfileDTO) (*models.ProfileModel, error) {
	key := strings.TrimSpace(dto.Key)
	if key == "" {
		key = s.key
	}
	var count int64
	if err := s.db.Model(&models.ProfileModel{}).Where("`key` = ?", key).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrKeyTaken
	}

	p := models.ProfileModel{Key: key}
	apply(&p, dto)
	return &p, s.db.Create(&p).Error
}

// Update replaces every editable field. The key changes only when given.
func (s *Service) Update(id string, dto *ProfileDTO) (*models.ProfileModel, error) {
	var p models.ProfileModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if key := strings.TrimSpace(dto.Key); key != "" && key != p.Key {
		var count int64
		if err := s.db.Model(&models.ProfileModel{}).Where("`key` = ? AND id <> ?", key, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrKeyTaken
		}
		p.Key = key
	}
	apply(&p, dto)
	if err := s.db.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func apply(p *models.ProfileModel, dto *ProfileDTO) {
	p.Name = strings.TrimSpace(dto.Name)
	p.Title = strings.TrimSpace(dto.Title)
	p.Bio = sanitize.HTML(dto.Bio)
	p.Email = strings.TrimSpace(dto.Email)
	p.Phone = strings.TrimSpace(dto.Phone)
	p.Address = strings.TrimSpace(dto.Address)
	p.ProfileImage = strings.TrimSpace(dto.ProfileImage)
	p.TechStack = models.StringArray(dto.TechStack).Clean()
	p.CurrentActivities = models.StringArray(dto.CurrentActivities).Clean()
}
