package response_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/hirewire/hirewire-api/pkg/response"
)

func TestNewPage(t *testing.T) {
	cases := []struct {
		total     int64
		page      int
		limit     int
		wantPages int
	}{
		{0, 1, 10, 0},
		{1, 1, 10, 1},
		{10, 1, 10, 1},
		{11, 2, 10, 2},
		{95, 1, 10, 10},
		{7, 1, 3, 3},
	}
	for _, tc := range cases {
		p := response.NewPage(tc.total, tc.page, tc.limit)
		if p.TotalPages != tc.wantPages {
			t.Errorf("NewPage(%d, %d, %d).TotalPages = %d, want %d", tc.total, tc.page, tc.limit, p.TotalPages, tc.wantPages)
		}
		if p.Total != tc.total || p.CurrentPage != tc.page {
			t.Errorf("NewPage(%d, %d, %d) = %+v", tc.total, tc.page, tc.limit, p)
		}
	}
}

// List responses flatten total/totalPages/currentPage next to the items key.
func TestList_FlattensTrailer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.List(c, "jobs", []string{"a", "b"}, response.NewPage(12, 2, 10))

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := body["jobs"]; !ok {
		t.Error("missing items key")
	}
	if body["total"] != float64(12) || body["totalPages"] != float64(2) || body["currentPage"] != float64(2) {
		t.Errorf("trailer = total:%v totalPages:%v currentPage:%v", body["total"], body["totalPages"], body["currentPage"])
	}
}

func TestMessage_Shape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Message(c, 404, "Job not found")

	if w.Code != 404 {
		t.Errorf("status = %d, want 404", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["message"] != "Job not found" {
		t.Errorf("message = %q", body["message"])
	}
}
