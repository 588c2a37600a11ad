package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tabi/live"
	"tabi/models"
	"tabi/rdx"
)

const syncChannel = "sync-events"

// snapshotTTL bounds staleness of the cached copy served to newly connected
// subscribers.
const snapshotTTL = 5 * time.Minute

var localHub *live.Hub

// Emit publishes a change event for a watched scope. Subscribed workers (this
// process or any peer instance) respond by rebroadcasting the full snapshot.
func Emit(ctx context.Context, event models.SyncEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("mq: marshal event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, syncChannel, data).Err(); err != nil {
		// Redis down: degrade to in-process dispatch so a single instance
		// still fans out.
		log.Printf("mq: publish failed, dispatching locally: %v", err)
		dispatch(event.Topic)
	}
}

// StartSyncWorker consumes change events and pushes fresh snapshots to the
// hub. Run once per process.
func StartSyncWorker(hub *live.Hub) {
	localHub = hub

	sub := rdx.Conn.Subscribe(context.Background(), syncChannel)
	ch := sub.Channel()

	log.Println("mq: sync worker listening")
	for msg := range ch {
		var event models.SyncEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("mq: bad event payload: %v", err)
			continue
		}
		dispatch(event.Topic)
	}
}

func dispatch(topic string) {
	if localHub == nil {
		return
	}
	data, err := live.Snapshot(topic)
	if err != nil {
		log.Printf("mq: snapshot %s: %v", topic, err)
		return
	}
	if err := rdx.RdxSetTTL("snapshot:"+topic, string(data), snapshotTTL); err != nil {
		log.Printf("mq: cache snapshot %s: %v", topic, err)
	}
	localHub.Publish(topic, data)
}
