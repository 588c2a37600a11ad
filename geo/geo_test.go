package geo

import "testing"

func TestExtractCoordinatesAtSegment(t *testing.T) {
	lat, lng, ok := ExtractCoordinates("https://www.google.com/maps/place/x/@26.195,127.719,15z")
	if !ok {
		t.Fatal("expected a match")
	}
	if lat != 26.195 || lng != 127.719 {
		t.Fatalf("got (%v, %v)", lat, lng)
	}
}

func TestExtractCoordinatesQueryParam(t *testing.T) {
	lat, lng, ok := ExtractCoordinates("https://maps.google.com/?q=24.1,121.5")
	if !ok {
		t.Fatal("expected a match")
	}
	if lat != 24.1 || lng != 121.5 {
		t.Fatalf("got (%v, %v)", lat, lng)
	}
}

func TestExtractCoordinatesLLParam(t *testing.T) {
	lat, lng, ok := ExtractCoordinates("https://maps.google.com/maps?ll=-35.5,149.25&z=10")
	if !ok {
		t.Fatal("expected a match")
	}
	if lat != -35.5 || lng != 149.25 {
		t.Fatalf("got (%v, %v)", lat, lng)
	}
}

func TestExtractCoordinatesDataSegment(t *testing.T) {
	lat, lng, ok := ExtractCoordinates("https://www.google.com/maps/place/x/data=!3d26.2123!4d127.6789")
	if !ok {
		t.Fatal("expected a match")
	}
	if lat != 26.2123 || lng != 127.6789 {
		t.Fatalf("got (%v, %v)", lat, lng)
	}
}

func TestExtractCoordinatesPriorityOrder(t *testing.T) {
	// @ segment beats the embedded data segment when both are present
	lat, lng, ok := ExtractCoordinates("https://maps.google.com/@1.5,2.5,15z/data=!3d9.9!4d8.8")
	if !ok {
		t.Fatal("expected a match")
	}
	if lat != 1.5 || lng != 2.5 {
		t.Fatalf("priority violated, got (%v, %v)", lat, lng)
	}
}

func TestExtractCoordinatesNoMatch(t *testing.T) {
	cases := []string{
		"",
		"https://example.com/nothing-here",
		"https://maps.google.com/place/tokyo",
	}
	for _, url := range cases {
		if _, _, ok := ExtractCoordinates(url); ok {
			t.Fatalf("expected no match for %q", url)
		}
	}
}
