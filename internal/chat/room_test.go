package chat

import (
	"context"
	"testing"
	"time"
)

// helper: receive one snapshot with a timeout so tests never hang
func recvSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatalf("client outbox closed unexpectedly")
		}
		return snap
	case <-time.After(within):
		t.Fatalf("timed out waiting for snapshot")
		return Snapshot{} // unreachable
	}
}

func recvNoSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			return
		}
		t.Fatalf("expected no snapshot within %v, but got: %+v", within, s)
	case <-time.After(within):
	}
}

func recvView(t *testing.T, ch <-chan View, within time.Duration) View {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(within):
		t.Fatalf("timed out waiting for view")
		return View{} // unreachable
	}
}

func post(userID, body string) Post {
	return Post{Msg: Message{
		ID:       userID + "-" + body,
		UserID:   userID,
		UserName: userID,
		Body:     body,
		SentAt:   time.Now(),
	}}
}

func TestRoom_Post_BroadcastsSnapshotAndVersionIncrements(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRoom(ctx, Options{})

	clientOut := make(chan Snapshot, 2)
	r.Inbox() <- Join{ClientID: "c1", Outbox: clientOut}

	first := recvSnapshot(t, clientOut, 100*time.Millisecond)
	if first.Version != 0 || len(first.Messages) != 0 {
		t.Fatalf("after join: want empty v0 snapshot, got %+v", first)
	}

	r.Inbox() <- post("u1", "salut")

	next := recvSnapshot(t, clientOut, 100*time.Millisecond)
	if next.Version != 1 {
		t.Fatalf("after post: want version=1, got %d", next.Version)
	}
	if len(next.Messages) != 1 || next.Messages[0].Body != "salut" {
		t.Fatalf("after post: unexpected history %+v", next.Messages)
	}

	r.Inbox() <- Shutdown{}
}

func TestRoom_DropSlowClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRoom(ctx, Options{})

	clientOut := make(chan Snapshot, 1)
	r.Inbox() <- Join{ClientID: "c1", Outbox: clientOut}
	// don't drain: the join snapshot fills the buffer

	r.Inbox() <- post("u1", "hello")

	reply := make(chan View, 1)
	r.Inbox() <- GetView{Reply: reply}
	view := recvView(t, reply, 100*time.Millisecond)

	if view.NumClients != 0 {
		t.Fatalf("expected slow client to be dropped; NumClients=%d", view.NumClients)
	}
}

func TestRoom_Delete_RemovesMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRoom(ctx, Options{})

	out := make(chan Snapshot, 4)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	r.Inbox() <- post("u1", "spam")
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	r.Inbox() <- Delete{MessageID: "u1-spam"}
	next := recvSnapshot(t, out, 100*time.Millisecond)
	if next.Version != 2 || len(next.Messages) != 0 {
		t.Fatalf("after delete: want empty v2 history, got %+v", next)
	}

	// deleting an unknown id must not broadcast
	r.Inbox() <- Delete{MessageID: "nope"}
	recvNoSnapshot(t, out, 100*time.Millisecond)
}

func TestRoom_ContactThread_SendsCannedAdminReply(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRoom(ctx, Options{
		AutoReplyDelay: 10 * time.Millisecond,
		AutoReplyBody:  "on vous répond bientôt",
		AdminName:      "Admin",
	})

	out := make(chan Snapshot, 4)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	r.Inbox() <- post("u1", "bonjour")
	_ = recvSnapshot(t, out, 100*time.Millisecond) // the user's own message

	ack := recvSnapshot(t, out, 500*time.Millisecond)
	if len(ack.Messages) != 2 {
		t.Fatalf("want user message + canned reply, got %+v", ack.Messages)
	}
	reply := ack.Messages[1]
	if !reply.FromAdmin || reply.UserName != "Admin" || reply.Body != "on vous répond bientôt" {
		t.Fatalf("unexpected canned reply: %+v", reply)
	}
}

func TestRoom_AdminPostDoesNotTriggerAutoReply(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRoom(ctx, Options{AutoReplyDelay: 10 * time.Millisecond, AutoReplyBody: "ack", AdminName: "Admin"})

	out := make(chan Snapshot, 4)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	adminMsg := post("admin", "vraie réponse")
	adminMsg.Msg.FromAdmin = true
	r.Inbox() <- adminMsg
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	recvNoSnapshot(t, out, 100*time.Millisecond)
}

func TestRoom_Shutdown_ClosesOutboxes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRoom(ctx, Options{})

	out := make(chan Snapshot, 2)
	r.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	r.Inbox() <- Shutdown{}

	select {
	case _, ok := <-out:
		if ok {
			t.Fatalf("expected closed outbox after shutdown")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("outbox not closed after shutdown")
	}
}
