package ws

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"peerprep/internal/domain"
)

func normalizeAllowedOrigins(origins []string) map[string]struct{} {
	res := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		o := strings.TrimSpace(strings.ToLower(origin))
		if o != "" {
			res[o] = struct{}{}
		}
	}
	return res
}

func makeCheckOrigin(allowedOrigins []string) func(r *http.Request) bool {
	allowed := normalizeAllowedOrigins(allowedOrigins)
	if len(allowed) == 0 {
		return func(r *http.Request) bool {
			return false
		}
	}

	return func(r *http.Request) bool {
		origin := strings.TrimSpace(strings.ToLower(r.Header.Get("Origin")))
		if origin == "" {
			return false
		}
		if _, ok := allowed[origin]; ok {
			return true
		}

		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return false
		}
		normalized := strings.ToLower(fmt.Sprintf("%s://%s", u.Scheme, u.Host))
		_, ok := allowed[normalized]
		return ok
	}
}

// MakeHandler returns the HTTP handler for the /ws endpoint.
//
// The handshake requires a user_id query parameter naming an existing
// account; connections without one are rejected before the upgrade. Once
// active, the connection is registered as the account's live handle and the
// account is flagged online. Events dispatched from the read loop:
//   - send_message -> Engine.Submit (dedup, persist, best-effort push)
//   - ping         -> pong, keeps idle transports alive, no other effect
func MakeHandler(
	engine *Engine,
	registry *Registry,
	users domain.UserRepository,
	allowedOrigins []string,
) http.HandlerFunc {
	checkOrigin := makeCheckOrigin(allowedOrigins)
	upgrader := websocket.Upgrader{
		CheckOrigin: checkOrigin,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if !checkOrigin(r) {
			http.Error(w, "origin not allowed", http.StatusForbidden)
			return
		}

		rawID := strings.TrimSpace(r.URL.Query().Get("user_id"))
		if rawID == "" {
			http.Error(w, "user_id is required", http.StatusBadRequest)
			return
		}
		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID == 0 {
			http.Error(w, "invalid user_id", http.StatusBadRequest)
			return
		}

		ctx := r.Context()
		user, err := users.GetByID(ctx, userID)
		if err != nil {
			log.Printf("ws: lookup user %d: %v", userID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if user == nil {
			http.Error(w, "user not found", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		client := NewClient(user.ID, conn)
		registry.Set(client)
		if err := users.SetOnlineStatus(ctx, user.ID, true); err != nil {
			log.Printf("ws: set online for %d: %v", user.ID, err)
		}
		defer func() {
			// Registry removal comes first and is unconditional on the flag
			// update succeeding; the online flag is advisory. Skipped entirely
			// when the entry was already replaced by a reconnect.
			if registry.Remove(user.ID, client.ID) {
				if err := users.SetOnlineStatus(context.Background(), user.ID, false); err != nil {
					log.Printf("ws: set offline for %d: %v", user.ID, err)
				}
			}
		}()

		for {
			var payload map[string]any
			if err := conn.ReadJSON(&payload); err != nil {
				break
			}
			eventType, _ := payload["type"].(string)
			switch eventType {

			case EventSendMessage:
				receiverIDf, _ := payload["receiverId"].(float64)
				body, _ := payload["message"].(string)
				_, _, err := engine.Submit(ctx, Intent{
					SenderID:   user.ID,
					ReceiverID: int64(receiverIDf),
					Body:       body,
				})
				// Malformed intents are dropped silently; the engine logs them.
				if err != nil && !errors.Is(err, domain.ErrInvalidInput) {
					sendError(client, "failed to send message")
				}

			case EventPing:
				_ = client.Send(map[string]any{"type": EventPong})

			default:
				log.Printf("ws: unknown event type %q from user %d", eventType, user.ID)
			}
		}
	}
}

func sendError(client *Client, msg string) {
	_ = client.Send(map[string]any{
		"type":    EventError,
		"message": msg,
	})
}
