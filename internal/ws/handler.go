package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/pronoleague/prono-backend/internal/chat"
	"github.com/pronoleague/prono-backend/internal/store"
	"github.com/pronoleague/prono-backend/pkg/types"
)

// Handler upgrades GET /ws?channel=forum|contact&user=<id> to a chat
// connection. The forum is one shared room; contact is the caller's private
// thread with the admin, which sends a canned acknowledgement after each
// visitor message.
func Handler(h *chat.Hub, st *store.Store, contactOpts chat.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := st.GetUser(r.Context(), r.URL.Query().Get("user"))
		if err != nil {
			http.Error(w, "unknown user", http.StatusUnauthorized)
			return
		}

		var name string
		var opts chat.Options
		switch r.URL.Query().Get("channel") {
		case "forum":
			name = chat.ForumRoom
		case "contact":
			name = chat.ContactRoom(user.ID)
			opts = contactOpts
		default:
			http.Error(w, "unknown channel", http.StatusBadRequest)
			return
		}

		reply := make(chan *chat.Room, 1)
		h.Inbox() <- chat.EnsureRoom{Name: name, Opts: opts, Reply: reply}
		room := <-reply
		if room == nil {
			http.Error(w, "room unavailable", http.StatusInternalServerError)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan chat.Snapshot, 8)
		clientID := uuid.NewString()

		room.Inbox() <- chat.Join{ClientID: clientID, Outbox: out}
		defer func() { room.Inbox() <- chat.Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				payload, _ := json.Marshal(snapshotFrame(snap))
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				// treat clean close/going-away as normal
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var frame types.ChatClientFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"Error","error":"bad json"}`))
				continue
			}
			if frame.Type != "Post" || frame.Body == "" {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"Error","error":"unknown type"}`))
				continue
			}

			room.Inbox() <- chat.Post{Msg: chat.Message{
				ID:        uuid.NewString(),
				UserID:    user.ID,
				UserName:  user.Name,
				Body:      frame.Body,
				SentAt:    time.Now(),
				FromAdmin: user.IsAdmin,
			}}
		}
	}
}

func snapshotFrame(snap chat.Snapshot) types.ChatServerFrame {
	msgs := make([]types.ChatMessage, 0, len(snap.Messages))
	for _, m := range snap.Messages {
		msgs = append(msgs, types.ChatMessage{
			ID:        m.ID,
			UserID:    m.UserID,
			UserName:  m.UserName,
			Body:      m.Body,
			Timestamp: m.SentAt,
			FromAdmin: m.FromAdmin,
		})
	}
	return types.ChatServerFrame{Type: "Snapshot", Version: snap.Version, Messages: msgs}
}
