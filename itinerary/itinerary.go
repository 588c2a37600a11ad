package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"tabi/db"
	"tabi/models"
	"tabi/mq"
	"tabi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func dayDocID(day int) string {
	return fmt.Sprintf("day_%d", day)
}

// sortItems orders a day's entries ascending by their HH:MM time string.
// Every write path runs through this before persisting.
func sortItems(items []models.ItineraryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Time < items[j].Time
	})
}

func validateItems(items []models.ItineraryItem) error {
	seen := make(map[string]bool, len(items))
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = utils.GenerateID(13)
		}
		if seen[items[i].ID] {
			return fmt.Errorf("duplicate item id %q", items[i].ID)
		}
		seen[items[i].ID] = true
		if !models.ValidCategory(items[i].Category) {
			return fmt.Errorf("invalid category %q", items[i].Category)
		}
	}
	return nil
}

// FetchAll returns every day document sorted ascending by day number. In demo
// mode the built-in sample trip is served instead.
func FetchAll(ctx context.Context) ([]models.DaySchedule, error) {
	if !db.Available() {
		return DefaultItinerary(), nil
	}

	cursor, err := db.ItineraryCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"day": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var days []models.DaySchedule
	if err := cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	if days == nil {
		days = []models.DaySchedule{}
	}
	return days, nil
}

func fetchDay(ctx context.Context, day int) (models.DaySchedule, error) {
	if !db.Available() {
		for _, d := range DefaultItinerary() {
			if d.Day == day {
				return d, nil
			}
		}
		return models.DaySchedule{}, fmt.Errorf("day %d not found", day)
	}

	var sched models.DaySchedule
	err := db.ItineraryCollection.FindOne(ctx, bson.M{"_id": dayDocID(day)}).Decode(&sched)
	return sched, err
}

// writeDay persists the complete post-edit day document. Callers must supply
// the whole item array; there is no partial splice. Last writer wins.
func writeDay(ctx context.Context, sched models.DaySchedule) error {
	sched.DocID = dayDocID(sched.Day)
	sortItems(sched.Items)
	if sched.Items == nil {
		sched.Items = []models.ItineraryItem{}
	}
	opts := options.Replace().SetUpsert(true)
	_, err := db.ItineraryCollection.ReplaceOne(ctx, bson.M{"_id": sched.DocID}, sched, opts)
	return err
}

// GET /api/itinerary
func GetItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	days, err := FetchAll(ctx)
	if err != nil {
		http.Error(w, "Error fetching itinerary", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, days)
}

// GET /api/itinerary/day/:day
func GetDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	day, err := strconv.Atoi(ps.ByName("day"))
	if err != nil || day < 1 {
		http.Error(w, "Invalid day number", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sched, err := fetchDay(ctx, day)
	if err != nil {
		http.Error(w, "Day not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sched)
}

// PUT /api/itinerary/day/:day
func UpdateDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !db.Available() {
		http.Error(w, "Read-only demo mode", http.StatusServiceUnavailable)
		return
	}

	day, err := strconv.Atoi(ps.ByName("day"))
	if err != nil || day < 1 {
		http.Error(w, "Invalid day number", http.StatusBadRequest)
		return
	}

	var sched models.DaySchedule
	if err := json.NewDecoder(r.Body).Decode(&sched); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	sched.Day = day
	if err := validateItems(sched.Items); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := writeDay(ctx, sched); err != nil {
		http.Error(w, "Error updating day", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, models.SyncEvent{Topic: "itinerary", Method: "update", Entity: dayDocID(day)})
	utils.RespondWithJSON(w, http.StatusOK, sched)
}

// POST /api/itinerary/day/:day/items
func AddItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	mutateDay(w, r, ps, func(sched *models.DaySchedule, item models.ItineraryItem) error {
		if item.ID == "" {
			item.ID = utils.GenerateID(13)
		}
		sched.Items = append(sched.Items, item)
		return nil
	})
}

// PUT /api/itinerary/day/:day/items/:itemid
func UpdateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itemID := ps.ByName("itemid")
	mutateDay(w, r, ps, func(sched *models.DaySchedule, item models.ItineraryItem) error {
		for i := range sched.Items {
			if sched.Items[i].ID == itemID {
				item.ID = itemID
				sched.Items[i] = item
				return nil
			}
		}
		return fmt.Errorf("item %s not found", itemID)
	})
}

// DELETE /api/itinerary/day/:day/items/:itemid
func DeleteItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !db.Available() {
		http.Error(w, "Read-only demo mode", http.StatusServiceUnavailable)
		return
	}

	day, err := strconv.Atoi(ps.ByName("day"))
	if err != nil || day < 1 {
		http.Error(w, "Invalid day number", http.StatusBadRequest)
		return
	}
	itemID := ps.ByName("itemid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sched, err := fetchDay(ctx, day)
	if err != nil {
		http.Error(w, "Day not found", http.StatusNotFound)
		return
	}

	kept := sched.Items[:0]
	found := false
	for _, it := range sched.Items {
		if it.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}
	sched.Items = kept

	if err := writeDay(ctx, sched); err != nil {
		http.Error(w, "Error deleting item", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, models.SyncEvent{Topic: "itinerary", Method: "delete", Entity: itemID})
	utils.RespondWithJSON(w, http.StatusOK, sched)
}

// mutateDay loads the day, applies the edit to the full item array, validates,
// sorts and writes the array back whole.
func mutateDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params, apply func(*models.DaySchedule, models.ItineraryItem) error) {
	if !db.Available() {
		http.Error(w, "Read-only demo mode", http.StatusServiceUnavailable)
		return
	}

	day, err := strconv.Atoi(ps.ByName("day"))
	if err != nil || day < 1 {
		http.Error(w, "Invalid day number", http.StatusBadRequest)
		return
	}

	var item models.ItineraryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if !models.ValidCategory(item.Category) {
		http.Error(w, "Invalid category", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sched, err := fetchDay(ctx, day)
	if err != nil {
		// first item on a fresh day creates the document
		sched = models.DaySchedule{Day: day}
	}

	if err := apply(&sched, item); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err := validateItems(sched.Items); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := writeDay(ctx, sched); err != nil {
		http.Error(w, "Error saving day", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, models.SyncEvent{Topic: "itinerary", Method: "update", Entity: dayDocID(day)})
	utils.RespondWithJSON(w, http.StatusOK, sched)
}

// Snapshot returns the full itinerary as the live-topic payload.
func Snapshot(_ string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	days, err := FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(days)
}
