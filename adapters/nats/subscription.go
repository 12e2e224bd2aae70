package nats

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	natsgo "github.com/nats-io/nats.go"

	"github.com/codewandler/sactor-go/core/actor"
)

// SubscribeConfig configures Subscribe.
type SubscribeConfig struct {
	Connect Connector    // Connect creates the NATS connection. If nil, ConnectDefault() is used.
	Log     *slog.Logger // Log for diagnostics (optional)
	Subject string       // Subject may contain wildcards
	Queue   string       // Queue group (optional)
	Buffer  int          // Buffer is the channel capacity, default 256
}

// Subscription delivers the messages of a NATS subject on a channel that an
// actor selector can wait on.
type Subscription struct {
	sub     *natsgo.Subscription
	ch      chan *natsgo.Msg
	closeNc closeFunc
	log     *slog.Logger

	once sync.Once
	err  error
}

// Subscribe subscribes to cfg.Subject.
func Subscribe(cfg SubscribeConfig) (*Subscription, error) {
	if cfg.Subject == "" {
		return nil, errors.New("subject is required")
	}
	connFn := cfg.Connect
	if connFn == nil {
		connFn = ConnectDefault()
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	size := cfg.Buffer
	if size <= 0 {
		size = 256
	}

	nc, closeNc, err := connFn()
	if err != nil {
		return nil, err
	}

	ch := make(chan *natsgo.Msg, size)
	var sub *natsgo.Subscription
	if cfg.Queue != "" {
		sub, err = nc.ChanQueueSubscribe(cfg.Subject, cfg.Queue, ch)
	} else {
		sub, err = nc.ChanSubscribe(cfg.Subject, ch)
	}
	if err != nil {
		closeNc()
		return nil, fmt.Errorf("nats: subscribe %s: %w", cfg.Subject, err)
	}

	return &Subscription{
		sub:     sub,
		ch:      ch,
		closeNc: closeNc,
		log:     log.With(slog.String("subject", cfg.Subject)),
	}, nil
}

// C returns the message channel. It is never closed; after Close no more
// messages arrive.
func (s *Subscription) C() <-chan *natsgo.Msg { return s.ch }

// Close unsubscribes and releases the connection. It is idempotent.
func (s *Subscription) Close() error {
	s.once.Do(func() {
		if err := s.sub.Unsubscribe(); err != nil {
			s.log.Warn("unsubscribe failed", slog.Any("error", err))
			s.err = err
		}
		s.closeNc()
	})
	return s.err
}

// Messages turns the subscription into an actor selection. fn maps a
// message to an event and may return nil to skip it.
func Messages[S any](s *Subscription, fn func(msg *natsgo.Msg) actor.Event[S]) actor.Selection[S] {
	return actor.Recv[S](s.C(), fn)
}
