package packing

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tabi/db"
	"tabi/models"
	"tabi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type listResponse struct {
	models.PackingListData
	Progress int `json:"progress"`
}

func respond(w http.ResponseWriter, list models.PackingListData) {
	utils.RespondWithJSON(w, http.StatusOK, listResponse{
		PackingListData: list,
		Progress:        list.Progress(),
	})
}

// GET /api/packing
// A traveller with no saved list gets the default template. The template is
// only written on their first save, never on read. Anonymous callers get the
// template too; their checked state lives on the device.
func GetList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	fallback := models.PackingListData{
		UserID:     userID,
		UpdatedAt:  time.Now().UnixMilli(),
		Categories: DefaultList(),
	}
	if userID == "" || !db.Available() {
		respond(w, fallback)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var list models.PackingListData
	err := db.PackingCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&list)
	if err == mongo.ErrNoDocuments {
		respond(w, fallback)
		return
	}
	if err != nil {
		http.Error(w, "Error fetching packing list", http.StatusInternalServerError)
		return
	}
	respond(w, list)
}

// PUT /api/packing
// Whole-document replace of the caller's own list.
func SaveList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !db.Available() {
		http.Error(w, "Read-only demo mode", http.StatusServiceUnavailable)
		return
	}

	var input struct {
		Categories []models.PackingCategory `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Categories == nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	list := models.PackingListData{
		UserID:     userID,
		UpdatedAt:  time.Now().UnixMilli(),
		Categories: input.Categories,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := db.PackingCollection.ReplaceOne(ctx, bson.M{"userid": userID}, list, opts); err != nil {
		http.Error(w, "Error saving packing list", http.StatusInternalServerError)
		return
	}
	respond(w, list)
}
