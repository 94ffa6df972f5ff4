package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdesk/task-system/internal/core/ports"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.NotificationInput
	done chan struct{}
	want int
}

func (n *recordingNotifier) Send(_ context.Context, in ports.NotificationInput) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, in)
	if len(n.sent) == n.want {
		close(n.done)
	}
	return nil
}

func TestDispatcher_DeliversAll(t *testing.T) {
	notifier := &recordingNotifier{done: make(chan struct{}), want: 3}
	d := NewDispatcher(2, notifier, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.NotificationInput{Recipient: "a@x.com", Kind: ports.NotificationWelcome})
	d.Enqueue(ports.NotificationInput{Recipient: "b@x.com", Kind: ports.NotificationWelcome})
	d.Enqueue(ports.NotificationInput{Recipient: "a@x.com", Kind: ports.NotificationApproved})

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for deliveries, got %d", len(notifier.sent))
	}
}

func TestDispatcher_PerRecipientOrdering(t *testing.T) {
	notifier := &recordingNotifier{done: make(chan struct{}), want: 2}
	// single worker makes ordering deterministic for the same recipient
	d := NewDispatcher(1, notifier, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.NotificationInput{Recipient: "c@x.com", Kind: ports.NotificationWelcome})
	d.Enqueue(ports.NotificationInput{Recipient: "c@x.com", Kind: ports.NotificationApproved})

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for deliveries")
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.sent[0].Kind != ports.NotificationWelcome || notifier.sent[1].Kind != ports.NotificationApproved {
		t.Fatalf("per-recipient order violated: %+v", notifier.sent)
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, &recordingNotifier{done: make(chan struct{})}, zerolog.Nop())

	first := d.shardIndex("stable@x.com")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("stable@x.com"); got != first {
			t.Fatalf("shard index not deterministic: %d != %d", got, first)
		}
	}
}
