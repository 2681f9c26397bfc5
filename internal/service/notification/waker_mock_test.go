package notification

import (
	"context"
	"sync"
)

var _ waker = &wakerMock{}

type wakerMock struct {
	WakeFunc func(ctx context.Context) error

	calls struct {
		Wake []struct {
			Ctx context.Context
		}
	}
	lockWake sync.RWMutex
}

func (mock *wakerMock) Wake(ctx context.Context) error {
	if mock.WakeFunc == nil {
		panic("wakerMock.WakeFunc: method is nil but waker.Wake was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockWake.Lock()
	mock.calls.Wake = append(mock.calls.Wake, callInfo)
	mock.lockWake.Unlock()
	return mock.WakeFunc(ctx)
}

func (mock *wakerMock) WakeCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockWake.RLock()
	calls = mock.calls.Wake
	mock.lockWake.RUnlock()
	return calls
}
