package store

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/estimo/internal/testutil"
	"github.com/stretchr/testify/mock"
)

type mockRequester struct {
	mock.Mock
}

func (m *mockRequester) Do(_ context.Context, method, path string, body, out any) error {
	args := m.Called(method, path, body, out)
	return args.Error(0)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []Event
}

func (o *recordingObserver) ObserveStore(_ context.Context, e Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) failures(op string) []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []Event
	for _, e := range o.events {
		if e.Op == op && !e.Success {
			out = append(out, e)
		}
	}
	return out
}

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	now := testutil.FixedTime
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}
