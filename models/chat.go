package models

// ChatMessage is one side of a guide exchange. Messages are append-only and
// ordered by the explicit timestamp, not arrival order.
type ChatMessage struct {
	MessageID string `json:"id" bson:"messageid"`
	UserID    string `json:"-" bson:"userid"`
	Text      string `json:"text" bson:"text"`
	Sender    string `json:"sender" bson:"sender"` // "user" or "ai"
	Timestamp int64  `json:"timestamp" bson:"timestamp"`
}

// ChatSession is the per-identity parent document, refreshed on every append
// from either sender.
type ChatSession struct {
	UserID        string `json:"userId" bson:"userid"`
	DisplayName   string `json:"displayName" bson:"display_name"`
	LastMessage   string `json:"lastMessage" bson:"last_message"`
	LastMessageAt int64  `json:"lastMessageAt" bson:"last_message_at"`
}
