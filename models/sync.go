package models

// SyncEvent flows over the "sync-events" Redis channel whenever a watched
// scope changes. Topic identifies the hub room whose subscribers need the
// fresh snapshot.
type SyncEvent struct {
	Topic  string `json:"topic"`            // "itinerary", "wishlist", "chat:<uid>"
	Method string `json:"method"`           // "create", "update", "delete", "seed"
	Entity string `json:"entity,omitempty"` // affected document id
}
