package sched

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitSameGroupRunsSequentially(t *testing.T) {
	s := New(8)
	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	var inFlight, overlapped int32

	for i := 0; i < 5; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Submit(context.Background(), GroupConfig, func(context.Context) error {
				if atomic.AddInt32(&inFlight, 1) > 1 {
					atomic.StoreInt32(&overlapped, 1)
				}
				time.Sleep(time.Millisecond)
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				atomic.AddInt32(&inFlight, -1)
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Len(t, order, 5)
	assert.Zero(t, atomic.LoadInt32(&overlapped), "two tasks of one group ran at once")
}

func TestSubmitDifferentGroupsRunConcurrently(t *testing.T) {
	s := New(8)
	var inFlight int32
	var maxInFlight int32
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		groupName := PeerGroup(string(rune('a' + i)))
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Submit(context.Background(), groupName, func(context.Context) error {
				n := atomic.AddInt32(&inFlight, 1)
				for {
					cur := atomic.LoadInt32(&maxInFlight)
					if n <= cur || atomic.CompareAndSwapInt32(&maxInFlight, cur, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Greater(t, int(atomic.LoadInt32(&maxInFlight)), 1)
}

func TestSubmitPropagatesError(t *testing.T) {
	s := New(1)
	wantErr := errors.New("boom")
	err := s.Submit(context.Background(), GroupShowCommand, func(context.Context) error {
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	err = s.Submit(context.Background(), GroupShowCommand, func(context.Context) error {
		return nil
	})
	require.NoError(t, err)
}

func TestSubmitRespectsCancelledContext(t *testing.T) {
	s := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.Submit(ctx, GroupPeerMembership, func(context.Context) error {
		t.Fatal("fn should not run once the semaphore acquire fails")
		return nil
	})
	require.Error(t, err)
}
