package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

type Event struct {
	Type      string          `json:"type"`
	Sequence  uint64          `json:"seq,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// walks one connection through post, edit, favorite and delete
func main() {
	host := "localhost:3000"
	if len(os.Args) > 1 {
		host = os.Args[1]
	}

	u := url.URL{
		Scheme: "ws",
		Host:   host,
		Path:   "/api/v1/ws",
	}

	fmt.Printf("Connecting to %s\n", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer c.Close()

	fmt.Println("✅ Connected to WebSocket!")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})
	created := make(chan uint64, 1)

	// read events
	go func() {
		defer close(done)
		for {
			var event Event
			if err := c.ReadJSON(&event); err != nil {
				log.Println("read:", err)
				return
			}

			fmt.Printf("📨 #%d %s: %s\n", event.Sequence, event.Type, event.Payload)

			if event.Type == "message-created" {
				var p struct {
					Message struct {
						ID uint64 `json:"id"`
					} `json:"message"`
				}

				if json.Unmarshal(event.Payload, &p) == nil {
					select {
					case created <- p.Message.ID:
					default:
					}
				}
			}
		}
	}()

	send := func(eventType string, payload any) {
		data, _ := json.Marshal(map[string]any{"type": eventType, "payload": payload})
		fmt.Printf("📤 Sending %s\n", data)

		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Println("write:", err)
		}
	}

	time.Sleep(500 * time.Millisecond)
	send("send-message", map[string]any{"body": "Hello from the smoke test!"})

	select {
	case id := <-created:
		send("edit-message", map[string]any{"messageId": id, "newBody": "Hello again (edited)"})
		send("toggle-favorite", map[string]any{"messageId": id})
		send("delete-message", map[string]any{"messageId": id})
		send("ping", nil)
	case <-time.After(5 * time.Second):
		log.Println("no message-created received")
	}

	select {
	case <-done:
		return
	case <-interrupt:
		fmt.Println("\n🛑 Interrupt received, closing connection...")

		err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("write close:", err)
			return
		}
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
