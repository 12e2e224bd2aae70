package actor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReplySlot_Fulfill(t *testing.T) {
	s := newReplySlot[int]()
	require.True(t, s.fulfill(7, nil))
	require.False(t, s.fulfill(8, nil), "a slot is fulfilled at most once")
	require.False(t, s.fail(errors.New("late")))

	res, err := s.await(t.Context())
	require.NoError(t, err)
	require.Equal(t, Result[int]{Value: 7}, res)
}

func TestReplySlot_DomainError(t *testing.T) {
	boom := errors.New("boom")
	s := newReplySlot[string]()
	s.fulfill("partial", boom)

	res, err := s.await(t.Context())
	require.NoError(t, err)
	require.False(t, res.OK())
	v, derr := res.Unwrap()
	require.Equal(t, "partial", v)
	require.ErrorIs(t, derr, boom)
}

func TestReplySlot_Abandoned(t *testing.T) {
	s := newReplySlot[int]()
	s.abandon()
	s.abandon()
	require.False(t, s.fulfill(1, nil))

	_, err := s.await(t.Context())
	require.ErrorIs(t, err, ErrActorStopped)
}

func TestReplySlot_NilInterfaceValue(t *testing.T) {
	s := newReplySlot[error]()
	s.fulfill(nil, nil)
	res, err := s.await(t.Context())
	require.NoError(t, err)
	require.Nil(t, res.Value)
}

func TestReplySlot_CallerGivesUp(t *testing.T) {
	s := newReplySlot[int]()
	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	_, err := s.await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// the late reply is dropped silently
	require.False(t, s.fulfill(1, nil))
}
