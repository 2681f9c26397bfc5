package notification

import (
	"context"
	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"sync"
)

var _ jobQueue = &jobQueueMock{}

type jobQueueMock struct {
	EnqueueFunc func(ctx context.Context, jobs ...*domain.DeliveryJob) error

	calls struct {
		Enqueue []struct {
			Ctx  context.Context
			Jobs []*domain.DeliveryJob
		}
	}
	lockEnqueue sync.RWMutex
}

func (mock *jobQueueMock) Enqueue(ctx context.Context, jobs ...*domain.DeliveryJob) error {
	if mock.EnqueueFunc == nil {
		panic("jobQueueMock.EnqueueFunc: method is nil but jobQueue.Enqueue was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Jobs []*domain.DeliveryJob
	}{
		Ctx: ctx,
		Jobs: jobs,
	}
	mock.lockEnqueue.Lock()
	mock.calls.Enqueue = append(mock.calls.Enqueue, callInfo)
	mock.lockEnqueue.Unlock()
	return mock.EnqueueFunc(ctx, jobs...)
}

func (mock *jobQueueMock) EnqueueCalls() []struct {
	Ctx  context.Context
	Jobs []*domain.DeliveryJob
} {
	var calls []struct {
		Ctx  context.Context
		Jobs []*domain.DeliveryJob
	}
	mock.lockEnqueue.RLock()
	calls = mock.calls.Enqueue
	mock.lockEnqueue.RUnlock()
	return calls
}
