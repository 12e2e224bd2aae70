package nats

import (
	"os"
	"sync"

	natsgo "github.com/nats-io/nats.go"
)

type closeFunc = func()

// Connector opens a NATS connection and returns a func releasing it.
type Connector func() (nc *natsgo.Conn, close closeFunc, err error)

// ConnectURL dials natsURL on every call.
func ConnectURL(natsURL string) Connector {
	return func() (*natsgo.Conn, closeFunc, error) {
		nc, err := natsgo.Connect(
			natsURL,
			natsgo.MaxReconnects(3),
		)
		if err != nil {
			return nil, nil, err
		}
		return nc, func() { nc.Close() }, nil
	}
}

// ConnectDefault dials $NATS_URL, or the NATS default URL if unset.
func ConnectDefault() Connector {
	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
		return ConnectURL(natsURL)
	}
	return ConnectURL(natsgo.DefaultURL)
}

// Shared hands out a single connection to all callers and closes it when
// the last one releases it. A released connection is dialed again on the
// next call.
func Shared(connect Connector) Connector {
	var (
		mu      sync.Mutex
		nc      *natsgo.Conn
		closeNc closeFunc
		leases  int
	)
	release := func() {
		mu.Lock()
		defer mu.Unlock()
		leases--
		if leases == 0 && nc != nil {
			closeNc()
			nc = nil
		}
	}
	return func() (*natsgo.Conn, closeFunc, error) {
		mu.Lock()
		defer mu.Unlock()
		if nc == nil {
			var err error
			nc, closeNc, err = connect()
			if err != nil {
				return nil, nil, err
			}
		}
		leases++
		var once sync.Once
		return nc, func() { once.Do(release) }, nil
	}
}
