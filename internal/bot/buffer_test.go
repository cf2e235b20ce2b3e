package bot

import "testing"

func TestBufferAddAndLen(t *testing.T) {
	b := NewBuffer()

	if got := b.Add(1, "Coffee 200"); got != 1 {
		t.Errorf("first Add returned %d, want 1", got)
	}
	if got := b.Add(1, "Taxi 70"); got != 2 {
		t.Errorf("second Add returned %d, want 2", got)
	}
	if got := b.Len(1); got != 2 {
		t.Errorf("Len = %d, want 2", got)
	}

	msgs := b.Messages(1)
	if len(msgs) != 2 {
		t.Fatalf("Messages returned %d, want 2", len(msgs))
	}
	if msgs[0].Text != "Coffee 200" || msgs[1].Text != "Taxi 70" {
		t.Errorf("messages out of order: %+v", msgs)
	}
	if msgs[0].ID == "" || msgs[0].ID == msgs[1].ID {
		t.Error("message IDs must be unique and non-empty")
	}
	if msgs[0].ReceivedAt.IsZero() {
		t.Error("ReceivedAt not stamped")
	}
}

func TestBufferChatsAreIndependent(t *testing.T) {
	b := NewBuffer()
	b.Add(1, "Coffee 200")
	b.Add(2, "Taxi 70")

	if b.Len(1) != 1 || b.Len(2) != 1 {
		t.Errorf("chat buffers not independent: %d / %d", b.Len(1), b.Len(2))
	}

	b.Clear(1)
	if b.Len(1) != 0 {
		t.Error("Clear(1) did not empty chat 1")
	}
	if b.Len(2) != 1 {
		t.Error("Clear(1) touched chat 2")
	}
}

func TestBufferClear(t *testing.T) {
	b := NewBuffer()
	b.Add(1, "Coffee 200")
	b.Add(1, "Taxi 70")

	if got := b.Clear(1); got != 2 {
		t.Errorf("Clear returned %d, want 2", got)
	}
	if got := b.Clear(1); got != 0 {
		t.Errorf("second Clear returned %d, want 0", got)
	}
	if got := b.Len(1); got != 0 {
		t.Errorf("Len after Clear = %d, want 0", got)
	}
}

func TestBufferMessagesReturnsCopy(t *testing.T) {
	b := NewBuffer()
	b.Add(1, "Coffee 200")

	msgs := b.Messages(1)
	msgs[0].Text = "mutated"

	if b.Messages(1)[0].Text != "Coffee 200" {
		t.Error("Messages must return a copy, not the backing slice")
	}
}
