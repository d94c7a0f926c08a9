package helpers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/hirewire/hirewire-api/pkg/helpers"
)

func paginationCtx(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 10},
		{"page=3&limit=25", 3, 25},
		{"page=0", 1, 10},
		{"page=-5&limit=-1", 1, 10},
		{"limit=1000", 1, 100},
		{"page=abc&limit=xyz", 1, 10},
	}
	for _, tc := range cases {
		c := paginationCtx(t, tc.query)
		page, limit := helpers.ParsePagination(c)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Errorf("ParsePagination(%q) = (%d, %d), want (%d, %d)", tc.query, page, limit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestOffset(t *testing.T) {
	if got := helpers.Offset(1, 10); got != 0 {
		t.Errorf("Offset(1, 10) = %d, want 0", got)
	}
	if got := helpers.Offset(3, 20); got != 40 {
		t.Errorf("Offset(3, 20) = %d, want 40", got)
	}
	if got := helpers.Offset(0, 10); got != 0 {
		t.Errorf("Offset(0, 10) = %d, want 0", got)
	}
}
