package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Message is one chat entry, in the forum or a contact thread.
type Message struct {
	ID        string
	UserID    string
	UserName  string
	Body      string
	SentAt    time.Time
	FromAdmin bool
}

// Snapshot is what clients receive: the full history at a version.
type Snapshot struct {
	Version  int
	Messages []Message
}

type View struct {
	Version    int
	NumClients int
	Messages   []Message
}

type Msg interface{ isRoomMsg() }

type Join struct {
	ClientID string
	Outbox   chan Snapshot
}

type Leave struct{ ClientID string }

type Post struct{ Msg Message }

// Delete removes a message by id. Admin moderation of the forum.
type Delete struct{ MessageID string }

type GetView struct {
	Reply chan View
}

type Shutdown struct{}

// autoReply is posted back into the inbox by the acknowledgement timer.
type autoReply struct{ body string }

func (Join) isRoomMsg()      {}
func (Leave) isRoomMsg()     {}
func (Post) isRoomMsg()      {}
func (Delete) isRoomMsg()    {}
func (GetView) isRoomMsg()   {}
func (Shutdown) isRoomMsg()  {}
func (autoReply) isRoomMsg() {}

// Options configures a room. A zero Options is a plain broadcast room; a
// positive AutoReplyDelay makes it a contact thread that acknowledges every
// visitor message with a canned admin reply after the delay.
type Options struct {
	AutoReplyDelay time.Duration
	AutoReplyBody  string
	AdminName      string
}

type Room struct {
	inbox   chan Msg
	opts    Options
	version int
	history []Message
	clients map[string]chan Snapshot
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewRoom(parent context.Context, opts Options) *Room {
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		inbox:   make(chan Msg, 64),
		opts:    opts,
		clients: make(map[string]chan Snapshot),
		ctx:     ctx,
		cancel:  cancel,
	}

	go r.loop()
	return r
}

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				// register client + send current snapshot immediately
				r.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- r.snapshot()

			case Leave:
				delete(r.clients, msg.ClientID)

			case Post:
				r.history = append(r.history, msg.Msg)
				r.version++
				r.broadcast()
				if r.opts.AutoReplyDelay > 0 && !msg.Msg.FromAdmin {
					r.scheduleAutoReply()
				}

			case autoReply:
				r.history = append(r.history, Message{
					ID:        uuid.NewString(),
					UserName:  r.opts.AdminName,
					Body:      msg.body,
					SentAt:    time.Now(),
					FromAdmin: true,
				})
				r.version++
				r.broadcast()

			case Delete:
				kept := r.history[:0]
				for _, entry := range r.history {
					if entry.ID != msg.MessageID {
						kept = append(kept, entry)
					}
				}
				if len(kept) != len(r.history) {
					r.history = kept
					r.version++
					r.broadcast()
				}

			case GetView:
				msg.Reply <- View{
					Version:    r.version,
					NumClients: len(r.clients),
					Messages:   append([]Message(nil), r.history...),
				}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func (r *Room) scheduleAutoReply() {
	body := r.opts.AutoReplyBody
	time.AfterFunc(r.opts.AutoReplyDelay, func() {
		select {
		case r.inbox <- autoReply{body: body}:
		case <-r.ctx.Done():
		}
	})
}

func (r *Room) snapshot() Snapshot {
	return Snapshot{Version: r.version, Messages: append([]Message(nil), r.history...)}
}

func (r *Room) shutdown() {
	for id, ch := range r.clients {
		close(ch) // tell client no more snapshots
		delete(r.clients, id)
	}
	r.cancel()
}

func (r *Room) broadcast() {
	snap := r.snapshot()
	for id, ch := range r.clients {
		select {
		case ch <- snap:
		default:
			// client is slow/full - drop them
			close(ch)
			delete(r.clients, id)
		}
	}
}

// Expose the inbox so the WS layer and handlers can send messages.
func (r *Room) Inbox() chan<- Msg { return r.inbox }
