package nats

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/codewandler/sactor-go/core/actor"
)

// KvWatchConfig configures WatchKV.
type KvWatchConfig struct {
	Connect Connector
	Bucket  string
	// Keys filters the watched keys, e.g. "orders.>". Empty watches all keys.
	Keys string
	// UpdatesOnly skips the current values and only reports later changes.
	UpdatesOnly bool
}

// KvWatch follows a JetStream key-value bucket.
type KvWatch struct {
	kv      jetstream.KeyValue
	w       jetstream.KeyWatcher
	closeNc closeFunc

	once sync.Once
	err  error
}

// WatchKV creates the bucket if needed and starts watching it.
func WatchKV(ctx context.Context, cfg KvWatchConfig) (*KvWatch, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required")
	}
	connFn := cfg.Connect
	if connFn == nil {
		connFn = ConnectDefault()
	}

	nc, closeNc, err := connFn()
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		closeNc()
		return nil, err
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:   cfg.Bucket,
		Storage:  jetstream.FileStorage,
		MaxBytes: 1024 * 1024,
	})
	if err != nil {
		closeNc()
		return nil, fmt.Errorf("nats: bucket %s: %w", cfg.Bucket, err)
	}

	var opts []jetstream.WatchOpt
	if cfg.UpdatesOnly {
		opts = append(opts, jetstream.UpdatesOnly())
	}
	var w jetstream.KeyWatcher
	if cfg.Keys == "" {
		w, err = kv.WatchAll(ctx, opts...)
	} else {
		w, err = kv.Watch(ctx, cfg.Keys, opts...)
	}
	if err != nil {
		closeNc()
		return nil, fmt.Errorf("nats: watch %s: %w", cfg.Bucket, err)
	}

	return &KvWatch{kv: kv, w: w, closeNc: closeNc}, nil
}

// KeyValue returns the watched bucket.
func (k *KvWatch) KeyValue() jetstream.KeyValue { return k.kv }

// Updates returns the entry channel. A nil entry marks the end of the
// initial values.
func (k *KvWatch) Updates() <-chan jetstream.KeyValueEntry { return k.w.Updates() }

// Stop ends the watch and releases the connection. It is idempotent.
func (k *KvWatch) Stop() error {
	k.once.Do(func() {
		k.err = k.w.Stop()
		k.closeNc()
	})
	return k.err
}

// KeyUpdates turns the watch into an actor selection. The nil end-of-initial
// marker is skipped; fn may return nil to skip an entry. The watcher closes
// its channel on Stop or when the watch fails; the loop then stops waiting
// on it.
func KeyUpdates[S any](k *KvWatch, fn func(e jetstream.KeyValueEntry) actor.Event[S]) actor.Selection[S] {
	return actor.Recv[S](k.Updates(), func(e jetstream.KeyValueEntry) actor.Event[S] {
		if e == nil {
			return nil
		}
		return fn(e)
	})
}
