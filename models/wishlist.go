package models

import "time"

// WishlistItem is a group wish with toggle-voting. Votes always equals
// len(VotedBy); both are adjusted in the same update.
type WishlistItem struct {
	WishID      string    `json:"id" bson:"wishid"`
	Name        string    `json:"name" bson:"name"`
	Votes       int       `json:"votes" bson:"votes"`
	CreatedBy   string    `json:"createdBy,omitempty" bson:"created_by,omitempty"`
	CreatorName string    `json:"creatorName,omitempty" bson:"creator_name,omitempty"`
	VotedBy     []string  `json:"votedBy" bson:"voted_by"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}
