package live

import (
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:  make(chan []byte, 10),
		Topic: "wishlist",
	}
	hub.register <- client

	payload := []byte(`[{"wishid":"w1"}]`)
	hub.Publish("wishlist", payload)

	select {
	case got := <-client.Send:
		if string(got) != string(payload) {
			t.Fatalf("expected %s, got %s", payload, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for snapshot")
	}

	hub.unregister <- client
}

func TestHubTopicIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	mine := &Client{Send: make(chan []byte, 10), Topic: "chat:u1"}
	theirs := &Client{Send: make(chan []byte, 10), Topic: "chat:u2"}
	hub.register <- mine
	hub.register <- theirs

	hub.Publish("chat:u1", []byte(`[]`))

	select {
	case <-mine.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("subscriber of the published topic got nothing")
	}

	select {
	case msg := <-theirs.Send:
		t.Fatalf("other topic received %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSnapshotRegistry(t *testing.T) {
	RegisterSnapshot("chat", func(topic string) ([]byte, error) {
		return []byte(topic), nil
	})
	defer func() {
		snapMu.Lock()
		delete(snapFuncs, "chat")
		snapMu.Unlock()
	}()

	// the full topic reaches the producer so it can extract the user key
	got, err := Snapshot("chat:u42")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "chat:u42" {
		t.Errorf("producer saw %q, want full topic", got)
	}

	if _, err := Snapshot("unknown"); err == nil {
		t.Error("unregistered topic should error")
	}
}
