package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	l := Limits{DefaultSize: 20, MaxSize: 100}

	tests := []struct {
		name       string
		page, size int
		want       Params
	}{
		{"defaults", 0, 0, Params{Page: 1, Size: 20}},
		{"negative", -3, -1, Params{Page: 1, Size: 20}},
		{"in range", 3, 50, Params{Page: 3, Size: 50}},
		{"clamped", 2, 500, Params{Page: 2, Size: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Normalize(tt.page, tt.size))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Size: 20}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Size: 20}.Offset())
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, PageCount(0, 20))
	assert.Equal(t, 1, PageCount(20, 20))
	assert.Equal(t, 2, PageCount(21, 20))
	assert.Equal(t, 5, PageCount(100, 20))
}

func TestNewPageNeverReturnsNilItems(t *testing.T) {
	p := NewPage[int](nil, 0, Params{Page: 1, Size: 10})
	assert.NotNil(t, p.Items)
	assert.Equal(t, 1, p.Pages)
}

func TestFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := Limits{DefaultSize: 20, MaxSize: 100}

	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{"empty", "", Params{Page: 1, Size: 20}},
		{"bad size", "page=2&size=abc", Params{Page: 2, Size: 20}},
		{"size clamped", "size=1000", Params{Page: 1, Size: 100}},
		{"bad page", "page=-4&size=5", Params{Page: 1, Size: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)
			assert.Equal(t, tt.want, l.FromQuery(c))
		})
	}
}
