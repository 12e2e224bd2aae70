package actor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// next waits for one item the way the loop does: TryRecv, then Ready.
func next[T any](t *testing.T, mb *Mailbox[T]) (T, bool) {
	t.Helper()
	for {
		if v, ok := mb.TryRecv(); ok {
			return v, true
		}
		select {
		case <-mb.Ready():
		case <-mb.Closed():
			v, ok := mb.TryRecv()
			return v, ok
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for mailbox")
		}
	}
}

func TestMailbox_FIFO(t *testing.T) {
	mb := NewMailbox[int]()
	for i := range 10 {
		require.NoError(t, mb.Send(i))
	}
	require.Equal(t, 10, mb.Len())

	for i := range 10 {
		v, ok := mb.TryRecv()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	_, ok := mb.TryRecv()
	require.False(t, ok)
}

func TestMailbox_Close(t *testing.T) {
	mb := NewMailbox[string]()
	require.NoError(t, mb.Send("a"))
	require.NoError(t, mb.Send("b"))

	mb.Close()
	mb.Close()
	require.True(t, mb.IsClosed())
	require.ErrorIs(t, mb.Send("c"), ErrMailboxClosed)

	select {
	case <-mb.Closed():
	default:
		t.Fatal("Closed() should be closed")
	}

	// queued items survive the close
	v, ok := mb.TryRecv()
	require.True(t, ok)
	require.Equal(t, "a", v)
	v, ok = mb.TryRecv()
	require.True(t, ok)
	require.Equal(t, "b", v)

	_, ok = mb.TryRecv()
	require.False(t, ok)
}

func TestMailbox_Drain(t *testing.T) {
	mb := NewMailbox[int]()
	for i := range 5 {
		require.NoError(t, mb.Send(i))
	}
	_, _ = mb.TryRecv()

	require.Equal(t, []int{1, 2, 3, 4}, mb.Drain())
	require.Equal(t, 0, mb.Len())
	require.Empty(t, mb.Drain())
}

func TestMailbox_ReadyAfterSend(t *testing.T) {
	mb := NewMailbox[int]()

	got := make(chan int, 1)
	go func() {
		<-mb.Ready()
		if v, ok := mb.TryRecv(); ok {
			got <- v
		}
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, mb.Send(42))

	select {
	case v := <-got:
		require.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("timeout")
	}
}

func TestMailbox_ClosedUnblocksWaiter(t *testing.T) {
	mb := NewMailbox[int]()

	woke := make(chan struct{})
	go func() {
		select {
		case <-mb.Ready():
		case <-mb.Closed():
		}
		close(woke)
	}()

	time.Sleep(10 * time.Millisecond)
	mb.Close()

	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("timeout")
	}
}

func TestMailbox_ManyProducers(t *testing.T) {
	const (
		producers = 10
		perProd   = 500
	)
	type item struct{ p, seq int }
	mb := NewMailbox[item]()

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perProd {
				if err := mb.Send(item{p, i}); err != nil {
					t.Error(err)
				}
			}
		}()
	}

	seqs := make([]int, producers)
	for range producers * perProd {
		it, ok := next(t, mb)
		require.True(t, ok)
		require.Equal(t, seqs[it.p], it.seq, "producer %d out of order", it.p)
		seqs[it.p]++
	}
	wg.Wait()
	require.Equal(t, 0, mb.Len())
}

func TestMailbox_InterleavedSendRecv(t *testing.T) {
	mb := NewMailbox[int]()
	want := 0
	sent := 0
	for round := range 20 {
		for range 100 {
			require.NoError(t, mb.Send(sent))
			sent++
		}
		// leave some items behind each round
		for range 100 - round {
			v, ok := mb.TryRecv()
			require.True(t, ok)
			require.Equal(t, want, v)
			want++
		}
	}
	for _, v := range mb.Drain() {
		require.Equal(t, want, v)
		want++
	}
	require.Equal(t, sent, want)
}
