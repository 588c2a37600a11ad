package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"tabi/db"
	"tabi/guide"
	"tabi/itinerary"
	"tabi/models"
	"tabi/mq"
	"tabi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var relay *guide.Client

// Init wires the generative-language client. Call once at startup.
func Init(c *guide.Client) {
	relay = c
}

func fetchMessages(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := db.MessagesCollection.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	return messages, nil
}

// appendMessage stores one side of an exchange and refreshes the session
// preview in the same pass. Persistence errors are logged, not fatal: the
// conversation continues in memory.
func appendMessage(ctx context.Context, userID, displayName string, msg models.ChatMessage) {
	if userID == "" || !db.Available() {
		return
	}

	if _, err := db.MessagesCollection.InsertOne(ctx, msg); err != nil {
		log.Printf("chat: insert message: %v", err)
		return
	}

	session := bson.M{"$set": bson.M{
		"userid":          userID,
		"last_message":    preview(msg.Text),
		"last_message_at": msg.Timestamp,
	}}
	if displayName != "" {
		session["$set"].(bson.M)["display_name"] = displayName
	}
	opts := options.Update().SetUpsert(true)
	if _, err := db.ChatsCollection.UpdateOne(ctx, bson.M{"userid": userID}, session, opts); err != nil {
		log.Printf("chat: update session: %v", err)
	}

	mq.Emit(ctx, models.SyncEvent{Topic: "chat:" + userID, Method: "create", Entity: msg.MessageID})
}

func preview(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > 120 {
		return string(runes[:120])
	}
	return text
}

// GET /api/chat/messages
func GetMessages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !db.Available() {
		utils.RespondWithJSON(w, http.StatusOK, []models.ChatMessage{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	messages, err := fetchMessages(ctx, userID)
	if err != nil {
		http.Error(w, "Error fetching messages", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, messages)
}

// POST /api/chat/send
// Appends the user message, relays the question with the full itinerary
// snapshot as context, appends the guide's reply, and refreshes the session
// preview for both appends. Anonymous callers still get an answer; nothing
// is persisted for them.
func Send(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Text        string `json:"text"`
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || strings.TrimSpace(input.Text) == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	userMsg := models.ChatMessage{
		MessageID: utils.GenerateID(13),
		UserID:    userID,
		Text:      strings.TrimSpace(input.Text),
		Sender:    "user",
		Timestamp: time.Now().UnixMilli(),
	}
	appendMessage(ctx, userID, input.DisplayName, userMsg)

	days, err := itinerary.FetchAll(ctx)
	if err != nil {
		log.Printf("chat: itinerary context unavailable: %v", err)
		days = []models.DaySchedule{}
	}

	// the relay reports its own failures as answer text, never an error
	answer := relay.Ask(r.Context(), userMsg.Text, days)

	aiMsg := models.ChatMessage{
		MessageID: utils.GenerateID(13),
		UserID:    userID,
		Text:      answer,
		Sender:    "ai",
		Timestamp: time.Now().UnixMilli(),
	}
	appendMessage(ctx, userID, input.DisplayName, aiMsg)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"question": userMsg,
		"answer":   aiMsg,
	})
}

// GET /api/chat/sessions (admin)
func GetSessions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !db.Available() {
		utils.RespondWithJSON(w, http.StatusOK, []models.ChatSession{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})
	cursor, err := db.ChatsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		http.Error(w, "Error fetching sessions", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var sessions []models.ChatSession
	if err := cursor.All(ctx, &sessions); err != nil {
		http.Error(w, "Decode error", http.StatusInternalServerError)
		return
	}
	if sessions == nil {
		sessions = []models.ChatSession{}
	}
	utils.RespondWithJSON(w, http.StatusOK, sessions)
}

// GET /api/chat/messages/:userid (admin view of any conversation)
func GetUserMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !db.Available() {
		utils.RespondWithJSON(w, http.StatusOK, []models.ChatMessage{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	messages, err := fetchMessages(ctx, ps.ByName("userid"))
	if err != nil {
		http.Error(w, "Error fetching messages", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, messages)
}

// Snapshot serves "chat:<uid>" live topics with that user's full history.
func Snapshot(topic string) ([]byte, error) {
	userID := strings.TrimPrefix(topic, "chat:")
	if !db.Available() {
		return json.Marshal([]models.ChatMessage{})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	messages, err := fetchMessages(ctx, userID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(messages)
}
