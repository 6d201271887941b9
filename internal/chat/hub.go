package chat

import "context"

// Room names. The forum is shared; each user gets one contact thread with
// the admin.
const ForumRoom = "forum"

func ContactRoom(userID string) string { return "contact:" + userID }

type HubMsg interface{ isHubMsg() }

type EnsureRoom struct {
	Name  string
	Opts  Options // only used if creation happens
	Reply chan *Room
}

type GetRoom struct {
	Name  string
	Reply chan *Room
}

type RemoveRoom struct {
	Name string
}

type ShutdownHub struct{}

func (EnsureRoom) isHubMsg()  {}
func (GetRoom) isHubMsg()     {}
func (RemoveRoom) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}

type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*Room
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(parent context.Context) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*Room),
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case EnsureRoom:
				if r := h.rooms[msg.Name]; r != nil {
					msg.Reply <- r
					break
				}
				r := NewRoom(h.ctx, msg.Opts)
				h.rooms[msg.Name] = r
				msg.Reply <- r

			case GetRoom:
				msg.Reply <- h.rooms[msg.Name] // may be nil

			case RemoveRoom:
				delete(h.rooms, msg.Name)

			case ShutdownHub:
				for _, r := range h.rooms {
					r.Inbox() <- Shutdown{}
				}
				clear(h.rooms)
				h.cancel()
			}
		}
	}
}
