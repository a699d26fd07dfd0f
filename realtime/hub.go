package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event types pushed over the staff channel
const (
	EventConnectionEstablished = "connection_established"
	EventNewRequest            = "new_request"
	EventRequestReviewed       = "request_reviewed"
	EventNotificationRead      = "notification_read"
)

type Message struct {
	Type        string      `json:"type"`
	RequestType string      `json:"request_type,omitempty"`
	RequestID   uint        `json:"request_id,omitempty"`
	Protocol    string      `json:"protocol,omitempty"`
	Title       string      `json:"title,omitempty"`
	Message     string      `json:"message,omitempty"`
	Data        interface{} `json:"data,omitempty"`
}

// Hub holds every connected staff dashboard and fans events out to all
// of them. Delivery is best effort: a failed write is logged and the
// loop moves on.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the broadcast set with its role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient removes and closes a connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// ClientCount -> connected dashboards
func ClientCount() int {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	return len(hub.clients)
}

// BroadcastNewRequest pushes a new-request alert to every dashboard
func BroadcastNewRequest(requestType string, requestID uint, protocol, title, message string, data interface{}) {
	broadcast(Message{
		Type:        EventNewRequest,
		RequestType: requestType,
		RequestID:   requestID,
		Protocol:    protocol,
		Title:       title,
		Message:     message,
		Data:        data,
	})
}

// BroadcastRequestReviewed pushes the outcome of a review action
func BroadcastRequestReviewed(requestType string, requestID uint, protocol, status string) {
	broadcast(Message{
		Type:        EventRequestReviewed,
		RequestType: requestType,
		RequestID:   requestID,
		Protocol:    protocol,
		Data:        map[string]interface{}{"status": status},
	})
}

// BroadcastMessage -> generic broadcast
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, role := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to %s client: %v", role, err)
			continue
		}
	}
}
