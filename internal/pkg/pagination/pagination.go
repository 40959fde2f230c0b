package pagination

import (
	"strconv"

	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Limits bounds the page size a listing accepts.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// Standard applies to listings that do not declare their own limits.
var Standard = Limits{DefaultSize: DefaultSize, MaxSize: MaxSize}

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
}

// FromContext reads page and size using the Standard limits.
func FromContext(c *gin.Context) Query {
	return Standard.FromContext(c)
}

// FromContext reads page and size from the query string. A missing or
// non-positive size falls back to l.DefaultSize; anything above l.MaxSize is
// clamped.
func (l Limits) FromContext(c *gin.Context) Query {
	page := parseIntOr(c.Query("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}
	return Query{Page: page, Size: l.clamp(parseIntOr(c.Query("size"), l.DefaultSize))}
}

func (l Limits) clamp(size int) int {
	switch {
	case size < 1:
		return l.DefaultSize
	case size > l.MaxSize:
		return l.MaxSize
	}
	return size
}

// Offset is the number of rows skipped before this page.
func (q Query) Offset() int { return (q.Page - 1) * q.Size }

// Paginate counts the rows db matches, loads the requested page into dest and
// returns the envelope metadata.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}
	if err := db.Offset(q.Offset()).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	pages := int((total + int64(q.Size) - 1) / int64(q.Size))
	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   pages,
		Size:        q.Size,
		HasNextPage: q.Page < pages,
	}, nil
}

func parseIntOr(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
