package chat

import (
	"context"
	"testing"
)

func TestHub_Ensure_Get_SamePointer(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx)
	reply := make(chan *Room, 1)

	h.Inbox() <- EnsureRoom{Name: ForumRoom, Reply: reply}
	r1 := <-reply

	h.Inbox() <- GetRoom{Name: ForumRoom, Reply: reply}
	r2 := <-reply

	if r1 == nil || r2 == nil || r1 != r2 {
		t.Fatalf("expected same room pointer")
	}
}

func TestHub_GetUnknownRoomIsNil(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx)
	reply := make(chan *Room, 1)

	h.Inbox() <- GetRoom{Name: ContactRoom("ghost"), Reply: reply}
	if r := <-reply; r != nil {
		t.Fatalf("expected nil for a room never created")
	}
}
