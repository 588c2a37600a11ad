package packing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tabi/models"
)

func TestGetListAnonymousServesDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/packing", nil)
	rec := httptest.NewRecorder()
	GetList(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	var out struct {
		Categories []models.PackingCategory `json:"categories"`
		Progress   int                      `json:"progress"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Categories) != len(DefaultList()) {
		t.Errorf("got %d categories, want the default set", len(out.Categories))
	}
	if out.Progress != 0 {
		t.Errorf("fresh list progress = %d, want 0", out.Progress)
	}
}

func TestProgressRounding(t *testing.T) {
	build := func(checked, unchecked int) models.PackingListData {
		var items []models.PackingItem
		for i := 0; i < checked; i++ {
			items = append(items, models.PackingItem{Checked: true})
		}
		for i := 0; i < unchecked; i++ {
			items = append(items, models.PackingItem{})
		}
		return models.PackingListData{Categories: []models.PackingCategory{{Items: items}}}
	}

	cases := []struct {
		checked, unchecked, want int
	}{
		{0, 0, 0}, // empty list stays at zero, no division
		{0, 5, 0},
		{1, 2, 33},
		{2, 1, 67},
		{1, 7, 13}, // 12.5 rounds up
		{5, 0, 100},
	}
	for _, tc := range cases {
		if got := build(tc.checked, tc.unchecked).Progress(); got != tc.want {
			t.Errorf("%d/%d checked: got %d%%, want %d%%", tc.checked, tc.checked+tc.unchecked, got, tc.want)
		}
	}
}

func TestProgressSpansCategories(t *testing.T) {
	list := models.PackingListData{Categories: []models.PackingCategory{
		{Items: []models.PackingItem{{Checked: true}, {Checked: true}}},
		{Items: []models.PackingItem{{}, {}}},
	}}
	if got := list.Progress(); got != 50 {
		t.Errorf("got %d%%, want 50%%", got)
	}
}

func TestDefaultListIsDeepCopy(t *testing.T) {
	a := DefaultList()
	a[0].Items[0].Checked = true
	a[0].Items[0].Text = "changed"

	b := DefaultList()
	if b[0].Items[0].Checked || b[0].Items[0].Text == "changed" {
		t.Error("mutating one copy leaked into the template")
	}
}

func TestDefaultListShape(t *testing.T) {
	list := DefaultList()
	if len(list) != 5 {
		t.Fatalf("got %d categories, want 5", len(list))
	}
	for _, cat := range list {
		if cat.ID == "" || cat.Name == "" || len(cat.Items) == 0 {
			t.Errorf("category %q is incomplete", cat.ID)
		}
		for _, item := range cat.Items {
			if item.Checked {
				t.Errorf("item %s starts checked", item.ID)
			}
		}
	}
}
