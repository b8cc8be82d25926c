package services

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NotificationService emits best-effort notification events to per-user
// socket rooms. Emission is fire-and-forget: a dropped notification never
// fails or rolls back the mutation that produced it.
type NotificationService struct {
	Server *socketio.Server
}

// Notify broadcasts an event to the user's room, if anyone is listening.
func (s *NotificationService) Notify(userID, event string, payload interface{}) {
	if s == nil || s.Server == nil {
		return
	}
	if ok := s.Server.BroadcastToRoom("/", userID, event, payload); !ok {
		log.Printf("notification %q for user %s dropped (no subscribers)", event, userID)
	}
}
