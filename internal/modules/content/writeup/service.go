package writeup

import (
	"context"
	"errors"
	"fmt"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/notion"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrNoPage          = errors.New("no notion page linked")
	// ErrUpstream wraps every failure to load or render the linked page.
	ErrUpstream = errors.New("failed to load notion content")
)

type Writeup struct {
	ProjectID string `json:"project_id"`
	PageID    string `json:"page_id"`
	HTML      string `json:"html"`
	Truncated bool   `json:"truncated,omitempty"`
}

type ProjectFinder interface {
	GetByID(id string) (*models.ProjectModel, error)
}

type BlockFetcher interface {
	FetchBlocks(ctx context.Context, pageID string) (*notion.Page, error)
}

type Service struct {
	projects ProjectFinder
	blocks   BlockFetcher
}

func NewService(projects ProjectFinder, blocks BlockFetcher) *Service {
	return &Service{projects: projects, blocks: blocks}
}

// Load resolves the project's Notion link and renders the page as sanitized HTML.
func (s *Service) Load(ctx context.Context, projectID string) (*Writeup, error) {
	p, err := s.projects.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProjectNotFound
	}
	pageID, ok := notion.ExtractPageID(p.NotionLink)
	if !ok {
		return nil, ErrNoPage
	}

	page, err := s.blocks.FetchBlocks(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	html, err := notion.RenderHTML(page.Blocks)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return &Writeup{ProjectID: p.ID, PageID: pageID, HTML: html, Truncated: page.Truncated}, nil
}
