package project

import (
	"errors"
	"strings"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/pagination"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/folio-space/core/internal/pkg/sanitize"
	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("project not found")
	ErrTagNotFound = errors.New("tag not found")
)

type ProjectDTO struct {
	Name        string  `json:"name"        binding:"required,notblank"`
	Description string  `json:"description"`
	Thumbnail   string  `json:"thumbnail"   binding:"omitempty,httpurl"`
	NotionLink  string  `json:"notion_link" binding:"omitempty,httpurl"`
	GithubLink  string  `json:"github_link" binding:"omitempty,httpurl"`
	LiveLink    string  `json:"live_link"   binding:"omitempty,httpurl"`
	Featured    bool    `json:"featured"`
	TagID       *string `json:"tag_id"`
}

// Filter narrows List. Tag matches a tag id or name.
type Filter struct {
	Featured *bool
	Tag      string
}

// TagChecker resolves tag references on write.
type TagChecker interface {
	Exists(id string) (bool, error)
}

type Service struct {
	db   *gorm.DB
	tags TagChecker
}

func NewService(db *gorm.DB, tags TagChecker) *Service {
	return &Service{db: db, tags: tags}
}

func (s *Service) query(f Filter) *gorm.DB {
	q := s.db.Model(&models.ProjectModel{})
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	if tag := strings.TrimSpace(f.Tag); tag != "" {
		q = q.Where("tag_id IN (?)",
			s.db.Model(&models.TagModel{}).Select("id").Where("id = ? OR name = ?", tag, tag))
	}
	return q.Order("created_at DESC")
}

func (s *Service) List(f Filter) ([]models.ProjectModel, error) {
	items := []models.ProjectModel{}
	return items, s.query(f).Preload("Tag").Find(&items).Error
}

func (s *Service) ListPaged(f Filter, q pagination.Query) ([]models.ProjectModel, response.Pagination, error) {
	items := []models.ProjectModel{}
	p, err := pagination.Paginate(s.query(f), q, &items)
	if err != nil {
		return nil, p, err
	}
	return items, p, s.attachTags(items)
}

// attachTags fills Tag after a paged query, where Preload would also run on the count.
func (s *Service) attachTags(items []models.ProjectModel) error {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.TagID != nil {
			ids = append(ids, *it.TagID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	var tags []models.TagModel
	if err := s.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return err
	}
	byID := make(map[string]*models.TagModel, len(tags))
	for i := range tags {
		byID[tags[i].ID] = &tags[i]
	}
	for i := range items {
		if items[i].TagID != nil {
			items[i].Tag = byID[*items[i].TagID]
		}
	}
	return nil
}

// Showcase returns featured projects followed by the rest, each newest first.
func (s *Service) Showcase() ([]models.ProjectModel, error) {
	items := []models.ProjectModel{}
	err := s.db.Preload("Tag").Order("featured DESC").Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id string) (*models.ProjectModel, error) {
	var item models.ProjectModel
	if err := s.db.Preload("Tag").First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Service) Create(dto *ProjectDTO) (*models.ProjectModel, error) {
	var item models.ProjectModel
	if err := s.apply(&item, dto); err != nil {
		return nil, err
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return s.GetByID(item.ID)
}

func (s *Service) Update(id string, dto *ProjectDTO) (*models.ProjectModel, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if err := s.apply(item, dto); err != nil {
		return nil, err
	}
	item.Tag = nil
	if err := s.db.Omit("Tag").Save(item).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	res := s.db.Delete(&models.ProjectModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) apply(item *models.ProjectModel, dto *ProjectDTO) error {
	var tagID *string
	if dto.TagID != nil {
		if id := strings.TrimSpace(*dto.TagID); id != "" {
			ok, err := s.tags.Exists(id)
			if err != nil {
				return err
			}
			if !ok {
				return ErrTagNotFound
			}
			tagID = &id
		}
	}

	item.Name = strings.TrimSpace(dto.Name)
	item.Description = sanitize.HTML(dto.Description)
	item.Thumbnail = strings.TrimSpace(dto.Thumbnail)
	item.NotionLink = strings.TrimSpace(dto.NotionLink)
	item.GithubLink = strings.TrimSpace(dto.GithubLink)
	item.LiveLink = strings.TrimSpace(dto.LiveLink)
	item.Featured = dto.Featured
	item.TagID = tagID
	return nil
}
