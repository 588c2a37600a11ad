package wishlist

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"tabi/db"
	"tabi/models"
	"tabi/mq"
	"tabi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// demoWishes backs the read-only demo mode.
var demoWishes = []models.WishlistItem{
	{WishID: "w1", Name: "青之洞窟浮潛", Votes: 15, VotedBy: []string{}},
	{WishID: "w2", Name: "Blue Seal 冰淇淋", Votes: 12, VotedBy: []string{}},
	{WishID: "w3", Name: "TeamLab 未來遊樂園", Votes: 8, VotedBy: []string{}},
}

// fetchAll returns every wish sorted by votes descending; ties keep store
// order.
func fetchAll(ctx context.Context) ([]models.WishlistItem, error) {
	if !db.Available() {
		out := make([]models.WishlistItem, len(demoWishes))
		copy(out, demoWishes)
		return out, nil
	}

	cursor, err := db.WishlistCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "votes", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var wishes []models.WishlistItem
	if err := cursor.All(ctx, &wishes); err != nil {
		return nil, err
	}
	if wishes == nil {
		wishes = []models.WishlistItem{}
	}
	return wishes, nil
}

// hasVoted reports membership of the voter set.
func hasVoted(item models.WishlistItem, userID string) bool {
	for _, id := range item.VotedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// applyVoteToggle flips the caller's vote in memory: set membership and the
// counter move in lockstep. Returns true when the vote was added.
func applyVoteToggle(item *models.WishlistItem, userID string) bool {
	if hasVoted(*item, userID) {
		kept := item.VotedBy[:0]
		for _, id := range item.VotedBy {
			if id != userID {
				kept = append(kept, id)
			}
		}
		item.VotedBy = kept
		item.Votes--
		return false
	}
	item.VotedBy = append(item.VotedBy, userID)
	item.Votes++
	return true
}

// GET /api/wishlist
func GetWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	wishes, err := fetchAll(ctx)
	if err != nil {
		http.Error(w, "Error fetching wishlist", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, wishes)
}

// POST /api/wishlist
func AddWish(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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
		Name        string `json:"name"`
		CreatorName string `json:"creatorName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	// duplicate names are allowed on purpose
	wish := models.WishlistItem{
		WishID:      utils.GenerateID(13),
		Name:        input.Name,
		Votes:       1,
		CreatedBy:   userID,
		CreatorName: input.CreatorName,
		VotedBy:     []string{userID},
		CreatedAt:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.WishlistCollection.InsertOne(ctx, wish); err != nil {
		http.Error(w, "Error inserting wish", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, models.SyncEvent{Topic: "wishlist", Method: "create", Entity: wish.WishID})
	utils.RespondWithJSON(w, http.StatusCreated, wish)
}

// POST /api/wishlist/:id/vote
// Toggle semantics: a second vote by the same identity cancels the first.
// The set mutation and the counter change go out in a single update so other
// subscribers never observe a torn state.
func ToggleVote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !db.Available() {
		http.Error(w, "Read-only demo mode", http.StatusServiceUnavailable)
		return
	}

	wishID := ps.ByName("id")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var wish models.WishlistItem
	if err := db.WishlistCollection.FindOne(ctx, bson.M{"wishid": wishID}).Decode(&wish); err != nil {
		http.Error(w, "Wish not found", http.StatusNotFound)
		return
	}

	var update bson.M
	if hasVoted(wish, userID) {
		update = bson.M{
			"$pull": bson.M{"voted_by": userID},
			"$inc":  bson.M{"votes": -1},
		}
	} else {
		update = bson.M{
			"$addToSet": bson.M{"voted_by": userID},
			"$inc":      bson.M{"votes": 1},
		}
	}

	if _, err := db.WishlistCollection.UpdateOne(ctx, bson.M{"wishid": wishID}, update); err != nil {
		http.Error(w, "Error updating vote", http.StatusInternalServerError)
		return
	}

	applyVoteToggle(&wish, userID)
	mq.Emit(ctx, models.SyncEvent{Topic: "wishlist", Method: "update", Entity: wishID})
	utils.RespondWithJSON(w, http.StatusOK, wish)
}

// DELETE /api/wishlist/:id
func DeleteWish(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !db.Available() {
		http.Error(w, "Read-only demo mode", http.StatusServiceUnavailable)
		return
	}

	wishID := ps.ByName("id")
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var wish models.WishlistItem
	if err := db.WishlistCollection.FindOne(ctx, bson.M{"wishid": wishID}).Decode(&wish); err != nil {
		http.Error(w, "Wish not found", http.StatusNotFound)
		return
	}
	if wish.CreatedBy != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if _, err := db.WishlistCollection.DeleteOne(ctx, bson.M{"wishid": wishID}); err != nil {
		http.Error(w, "Error deleting wish", http.StatusInternalServerError)
		return
	}

	mq.Emit(ctx, models.SyncEvent{Topic: "wishlist", Method: "delete", Entity: wishID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deleted": wishID})
}

// Snapshot returns the vote-sorted wishlist as the live-topic payload.
func Snapshot(_ string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wishes, err := fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	// the store sorts on read, but demo data and races deserve the same view
	sort.SliceStable(wishes, func(i, j int) bool { return wishes[i].Votes > wishes[j].Votes })
	return json.Marshal(wishes)
}
