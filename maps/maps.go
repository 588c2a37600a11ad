package maps

import (
	"context"
	"net/http"
	"time"

	"tabi/geo"
	"tabi/itinerary"
	"tabi/models"
	"tabi/utils"

	"github.com/julienschmidt/httprouter"
)

// Marker is one plottable itinerary stop. Only items whose map link yields
// coordinates become markers; everything else is skipped without complaint.
type Marker struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"type"`
	Description string  `json:"description,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Day         int     `json:"day"`
	MapLink     string  `json:"mapLink"`
}

// MarkersFromDays flattens the itinerary into map markers, preferring
// explicit coordinates and falling back to extraction from the location link.
func MarkersFromDays(days []models.DaySchedule) []Marker {
	markers := []Marker{}
	for _, day := range days {
		for _, item := range day.Items {
			lat, lng := item.Lat, item.Lng
			if lat == 0 && lng == 0 {
				var ok bool
				lat, lng, ok = geo.ExtractCoordinates(item.Location)
				if !ok {
					continue
				}
			}
			markers = append(markers, Marker{
				ID:          item.ID,
				Title:       item.Title,
				Category:    item.Category,
				Description: item.Description,
				Lat:         lat,
				Lng:         lng,
				Day:         day.Day,
				MapLink:     item.Location,
			})
		}
	}
	return markers
}

// GET /api/maps/markers
func GetMarkers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	days, err := itinerary.FetchAll(ctx)
	if err != nil {
		http.Error(w, "Error fetching itinerary", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, MarkersFromDays(days))
}
