package models

// ItemCategory values for an itinerary entry.
const (
	CategoryFood = "food"
	CategoryStay = "stay"
	CategoryMove = "move"
	CategoryPlay = "play"
)

func ValidCategory(c string) bool {
	switch c {
	case CategoryFood, CategoryStay, CategoryMove, CategoryPlay:
		return true
	}
	return false
}

// RelatedLink is an external reference attached to an itinerary item.
type RelatedLink struct {
	Title string `json:"title" bson:"title"`
	URL   string `json:"url" bson:"url"`
}

// ItineraryItem is one scheduled entry within a day.
type ItineraryItem struct {
	ID          string        `json:"id" bson:"id"`
	Time        string        `json:"time" bson:"time"` // HH:MM
	Title       string        `json:"title" bson:"title"`
	Category    string        `json:"type" bson:"type"` // food/stay/move/play
	Description string        `json:"description" bson:"description"`
	Location    string        `json:"location,omitempty" bson:"location,omitempty"` // map link
	Lat         float64       `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng         float64       `json:"lng,omitempty" bson:"lng,omitempty"`
	Timezone    string        `json:"timezone,omitempty" bson:"timezone,omitempty"`
	Cost        string        `json:"cost,omitempty" bson:"cost,omitempty"`
	Links       []RelatedLink `json:"relatedLinks,omitempty" bson:"relatedLinks,omitempty"`
}

// DaySchedule is the per-day document, keyed day_<n> in the itinerary collection.
type DaySchedule struct {
	DocID string          `json:"-" bson:"_id,omitempty"`
	Day   int             `json:"day" bson:"day"`
	Date  string          `json:"date" bson:"date"`
	Items []ItineraryItem `json:"items" bson:"items"`
}
