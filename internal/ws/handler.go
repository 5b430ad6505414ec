package ws

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/logx"
)

const (
	writeTimeout = 10 * time.Second
	readTimeout  = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades HTTP requests to websocket connections bound to the
// authenticated user. The access token travels in the "token" query
// parameter because browsers cannot set headers on websocket dials.
func Handler(hub *Hub, tokens auth.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		}

		claims, err := tokens.ValidateAccessToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Errorf("Websocket upgrade failed: %v", err)
			return
		}

		client := &Client{
			UserID: claims.UserID,
			Send:   make(chan []byte, 256),
		}
		hub.Register(client)

		// writer
		go func() {
			defer func() { _ = conn.Close() }()
			for msg := range client.Send {
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
		}()

		// reader, only to detect the close and answer pings
		go func() {
			defer func() {
				hub.Unregister(client)
				_ = conn.Close()
			}()
			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
			conn.SetPongHandler(func(string) error {
				_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
				return nil
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					break
				}
			}
		}()
	}
}
