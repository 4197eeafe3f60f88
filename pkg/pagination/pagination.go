package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Limits bounds the page size accepted from clients.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// Params is a normalised page request. Page is 1-based.
type Params struct {
	Page int
	Size int
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

// Normalize fills in defaults and clamps out-of-range values.
func (l Limits) Normalize(page, size int) Params {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = l.DefaultSize
	}
	if size > l.MaxSize {
		size = l.MaxSize
	}
	return Params{Page: page, Size: size}
}

// FromQuery reads ?page= and ?size= from the request.
func (l Limits) FromQuery(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(l.DefaultSize)))
	return l.Normalize(page, size)
}

// Scope applies offset and limit to a gorm query.
func Scope(p Params) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Size)
	}
}

// Page is the paginated payload returned by list endpoints.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Pages int   `json:"pages"`
}

func NewPage[T any](items []T, total int64, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Total: total,
		Page:  p.Page,
		Size:  p.Size,
		Pages: PageCount(total, p.Size),
	}
}

// PageCount returns ceil(total/size), never less than 1.
func PageCount(total int64, size int) int {
	if size < 1 || total <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}
