package live

import (
	"fmt"
	"strings"
	"sync"
)

// SnapshotFunc produces the complete current state of a watched scope as a
// JSON payload. The argument is the full topic string, so per-user topics
// ("chat:<uid>") can extract their key.
type SnapshotFunc func(topic string) ([]byte, error)

var (
	snapMu    sync.RWMutex
	snapFuncs = map[string]SnapshotFunc{}
)

// RegisterSnapshot binds a topic prefix ("itinerary", "wishlist", "chat") to
// its snapshot producer. Wiring happens once in main.
func RegisterSnapshot(prefix string, fn SnapshotFunc) {
	snapMu.Lock()
	defer snapMu.Unlock()
	snapFuncs[prefix] = fn
}

// Snapshot resolves the producer for a topic and returns the full state.
func Snapshot(topic string) ([]byte, error) {
	prefix := topic
	if i := strings.IndexByte(topic, ':'); i >= 0 {
		prefix = topic[:i]
	}

	snapMu.RLock()
	fn := snapFuncs[prefix]
	snapMu.RUnlock()

	if fn == nil {
		return nil, fmt.Errorf("no snapshot source for topic %q", topic)
	}
	return fn(topic)
}
