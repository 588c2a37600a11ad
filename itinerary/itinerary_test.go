package itinerary

import (
	"testing"

	"tabi/models"
)

func TestSortItemsAscendingByTime(t *testing.T) {
	items := []models.ItineraryItem{
		{ID: "c", Time: "19:00", Title: "dinner", Category: "food"},
		{ID: "a", Time: "08:15", Title: "flight", Category: "move"},
		{ID: "b", Time: "12:30", Title: "lunch", Category: "food"},
	}
	sortItems(items)

	for i := 1; i < len(items); i++ {
		if items[i-1].Time > items[i].Time {
			t.Fatalf("items not sorted: %s before %s", items[i-1].Time, items[i].Time)
		}
	}
	if items[0].ID != "a" || items[2].ID != "c" {
		t.Fatalf("unexpected order: %v", items)
	}
}

func TestSortItemsStableOnEqualTimes(t *testing.T) {
	items := []models.ItineraryItem{
		{ID: "first", Time: "10:00", Category: "play"},
		{ID: "second", Time: "10:00", Category: "food"},
	}
	sortItems(items)
	if items[0].ID != "first" || items[1].ID != "second" {
		t.Fatalf("equal times must keep insertion order, got %v", items)
	}
}

func TestValidateItemsAssignsIDsAndChecksCategory(t *testing.T) {
	items := []models.ItineraryItem{
		{Time: "10:00", Title: "x", Category: "play"},
		{ID: "fixed", Time: "11:00", Title: "y", Category: "food"},
	}
	if err := validateItems(items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].ID == "" {
		t.Fatal("missing id was not assigned")
	}

	bad := []models.ItineraryItem{{ID: "z", Time: "09:00", Category: "sleep"}}
	if err := validateItems(bad); err == nil {
		t.Fatal("expected invalid category error")
	}

	dup := []models.ItineraryItem{
		{ID: "same", Time: "09:00", Category: "play"},
		{ID: "same", Time: "10:00", Category: "food"},
	}
	if err := validateItems(dup); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestDefaultItineraryIsSixSortedDays(t *testing.T) {
	days := DefaultItinerary()
	if len(days) != 6 {
		t.Fatalf("expected 6 days, got %d", len(days))
	}
	for _, d := range days {
		for i := 1; i < len(d.Items); i++ {
			if d.Items[i-1].Time > d.Items[i].Time {
				t.Fatalf("day %d items not sorted by time", d.Day)
			}
		}
		for _, item := range d.Items {
			if !models.ValidCategory(item.Category) {
				t.Fatalf("day %d item %s has bad category %q", d.Day, item.ID, item.Category)
			}
		}
	}
}

func TestDefaultItineraryCopyIsIsolated(t *testing.T) {
	first := DefaultItinerary()
	first[0].Items[0].Title = "mutated"
	second := DefaultItinerary()
	if second[0].Items[0].Title == "mutated" {
		t.Fatal("DefaultItinerary leaked shared state")
	}
}
