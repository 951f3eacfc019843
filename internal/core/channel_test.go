package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestChannel_DeliversInSendOrder(t *testing.T) {
	ch := NewChannel()
	ch.Send(LocationResolved{Name: "a"})
	ch.Send(RefreshRequested{})
	ch.Send(LocationResolved{Name: "b"})

	want := []Message{LocationResolved{Name: "a"}, RefreshRequested{}, LocationResolved{Name: "b"}}
	for i, w := range want {
		got, err := ch.Receive(context.Background())
		if err != nil {
			t.Fatalf("Receive %d returned error: %v", i, err)
		}
		if got != w {
			t.Fatalf("Receive %d = %#v, want %#v", i, got, w)
		}
	}
	if ch.Len() != 0 {
		t.Fatalf("Len = %d, want 0", ch.Len())
	}
}

func TestChannel_ReceiveHonoursContext(t *testing.T) {
	ch := NewChannel()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := ch.Receive(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Receive error = %v, want deadline exceeded", err)
	}
}

func TestChannel_CloseDrainsQueuedMessages(t *testing.T) {
	ch := NewChannel()
	ch.Send(RefreshRequested{})
	ch.Close()

	if ch.Send(RefreshRequested{}) {
		t.Fatalf("Send after Close returned true")
	}
	if _, err := ch.Receive(context.Background()); err != nil {
		t.Fatalf("Receive returned error for queued message: %v", err)
	}
	if _, err := ch.Receive(context.Background()); !errors.Is(err, ErrChannelClosed) {
		t.Fatalf("Receive error = %v, want ErrChannelClosed", err)
	}
}

func TestChannel_CloseWakesBlockedReceiver(t *testing.T) {
	ch := NewChannel()
	errs := make(chan error, 1)
	go func() {
		_, err := ch.Receive(context.Background())
		errs <- err
	}()

	time.Sleep(10 * time.Millisecond)
	ch.Close()

	select {
	case err := <-errs:
		if !errors.Is(err, ErrChannelClosed) {
			t.Fatalf("Receive error = %v, want ErrChannelClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Receive did not return after Close")
	}
}

func TestChannel_ConcurrentProducersKeepPerProducerOrder(t *testing.T) {
	const producers, perProducer = 4, 200
	ch := NewChannel()

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perProducer {
				ch.Send(DataFetched{Generation: uint64(p*perProducer + i)})
			}
		}()
	}
	wg.Wait()

	last := make(map[int]int)
	for range producers * perProducer {
		msg, err := ch.Receive(context.Background())
		if err != nil {
			t.Fatalf("Receive returned error: %v", err)
		}
		gen := int(msg.(DataFetched).Generation)
		p, i := gen/perProducer, gen%perProducer
		if prev, ok := last[p]; ok && i <= prev {
			t.Fatalf("producer %d delivered %d after %d", p, i, prev)
		}
		last[p] = i
	}
}
