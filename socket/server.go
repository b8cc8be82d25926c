package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes the Socket.IO server clients connect to for
// notification events. A client subscribes with its own user id and receives
// whatever the workflows broadcast to that room.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "subscribe", func(c socketio.Conn, userID string) {
		if userID == "" {
			log.Println("subscribe without a userId ignored")
			return
		}
		c.Join(userID)
		log.Printf("socket %s subscribed to notifications for user %s", c.ID(), userID)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("socket disconnected:", c.ID(), reason)
	})

	return server
}
