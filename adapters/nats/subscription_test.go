package nats

import (
	"slices"
	"strconv"
	"testing"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"

	"github.com/codewandler/sactor-go/core/actor"
)

type inbox struct {
	sub      *Subscription
	subjects []string
}

var (
	received = actor.HandleMsg("received", func(c actor.Ctx[inbox], s *inbox, msg *natsgo.Msg) {
		s.subjects = append(s.subjects, msg.Subject)
		if msg.Reply != "" {
			if err := msg.Respond([]byte(strconv.Itoa(len(s.subjects)))); err != nil {
				c.Log().Warn("respond failed", "error", err)
			}
		}
	})
	subjects = actor.HandleRequest("subjects", func(c actor.Ctx[inbox], s *inbox, _ struct{}) []string {
		return slices.Clone(s.subjects)
	})

	inboxActor = actor.MustDefine[inbox]("inbox",
		actor.With[inbox](received, subjects),
		actor.Select(func(c actor.Ctx[inbox], s *inbox) []actor.Selection[inbox] {
			return []actor.Selection[inbox]{
				Messages[inbox](s.sub, func(msg *natsgo.Msg) actor.Event[inbox] { return received.Event(msg) }),
			}
		}),
		actor.OnStop(func(c actor.Ctx[inbox], s *inbox) { _ = s.sub.Close() }),
	)
)

func TestSubscription_feedsActor(t *testing.T) {
	connect := Shared(NewTestContainer(t))

	sub, err := Subscribe(SubscribeConfig{Connect: connect, Subject: "orders.*"})
	require.NoError(t, err)

	h := inboxActor.Spawn(t.Context(), actor.Options{}, func(actor.Handle[inbox]) inbox {
		return inbox{sub: sub}
	})
	defer func() { h.Stop(); <-h.Closed() }()

	nc, release, err := connect()
	require.NoError(t, err)
	defer release()

	for _, subj := range []string{"orders.a", "orders.b", "orders.c"} {
		require.NoError(t, nc.Publish(subj, nil))
	}
	require.NoError(t, nc.Flush())

	require.Eventually(t, func() bool {
		got, err := subjects.Call(t.Context(), h, struct{}{})
		return err == nil && len(got) == 3
	}, 5*time.Second, 10*time.Millisecond)

	got, err := subjects.Call(t.Context(), h, struct{}{})
	require.NoError(t, err)
	require.Equal(t, []string{"orders.a", "orders.b", "orders.c"}, got)

	// request/reply answered from inside the actor
	resp, err := nc.Request("orders.ask", nil, 2*time.Second)
	require.NoError(t, err)
	require.Equal(t, "4", string(resp.Data))
}

func TestSubscribe_requiresSubject(t *testing.T) {
	_, err := Subscribe(SubscribeConfig{})
	require.Error(t, err)
}
