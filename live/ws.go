package live

import (
	"log"
	"net/http"
	"strings"

	"tabi/middleware"
	"tabi/rdx"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler subscribes a client to one topic. The first frame is the
// full current snapshot; every later frame is the full snapshot again after a
// change. Closing the socket is the unsubscribe.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		topic := ps.ByName("topic")
		if sub := ps.ByName("sub"); sub != "" {
			topic = topic + ":" + sub
		}

		userID := ""
		if token := r.URL.Query().Get("token"); token != "" {
			if claims, err := middleware.ValidateJWT("Bearer " + token); err == nil {
				userID = claims.UserID
			}
		}

		// chat topics are private to their owner (admins may watch any)
		if strings.HasPrefix(topic, "chat:") && topic != "chat:"+userID {
			if !isAdminToken(r.URL.Query().Get("token")) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := &Client{
			Send:   make(chan []byte, 256),
			Topic:  topic,
			UserID: userID,
		}

		// initial full snapshot: cached copy if fresh, else recomputed.
		// Queued before registration so it is always the first frame.
		if cached, err := rdx.RdxGet("snapshot:" + topic); err == nil && cached != "" {
			client.Send <- []byte(cached)
		} else if data, err := Snapshot(topic); err == nil {
			client.Send <- data
		} else {
			log.Println("snapshot:", err)
		}

		hub.register <- client
		go writePump(client, conn)
		go readPump(client, conn, hub)
	}
}

func isAdminToken(token string) bool {
	claims, err := middleware.ValidateJWT("Bearer " + token)
	return err == nil && claims.IsAdmin()
}

func writePump(c *Client, conn *websocket.Conn) {
	defer conn.Close()
	for msg := range c.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump exists only to detect the close; subscribers never send data.
func readPump(c *Client, conn *websocket.Conn, hub *Hub) {
	defer func() {
		hub.unregister <- c
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
