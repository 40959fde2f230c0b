package tag

import (
	"errors"
	"strings"

	"github.com/folio-space/core/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("tag not found")
	ErrExists   = errors.New("tag already exists")
)

type TagDTO struct {
	Name string `json:"name" binding:"required,notblank,max=191"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List() ([]models.TagModel, error) {
	items := []models.TagModel{}
	return items, s.db.Order("name ASC").Find(&items).Error
}

func (s *Service) GetByID(id string) (*models.TagModel, error) {
	var item models.TagModel
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Exists reports whether a tag with the given id is present.
func (s *Service) Exists(id string) (bool, error) {
	var n int64
	err := s.db.Model(&models.TagModel{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (s *Service) Create(dto *TagDTO) (*models.TagModel, error) {
	name := strings.TrimSpace(dto.Name)
	if err := s.ensureUnique(name, ""); err != nil {
		return nil, err
	}
	item := models.TagModel{Name: name}
	return &item, s.db.Create(&item).Error
}

func (s *Service) Update(id string, dto *TagDTO) (*models.TagModel, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	name := strings.TrimSpace(dto.Name)
	if err := s.ensureUnique(name, id); err != nil {
		return nil, err
	}
	item.Name = name
	return item, s.db.Save(item).Error
}

// Delete removes the tag; tagged projects keep existing with tag_id cleared.
func (s *Service) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProjectModel{}).Where("tag_id = ?", id).
			Update("tag_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.TagModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *Service) ensureUnique(name, exceptID string) error {
	q := s.db.Model(&models.TagModel{}).Where("name = ?", name)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrExists
	}
	return nil
}
