package worker

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"sync"
)

var _ notificationStore = &notificationStoreMock{}

type notificationStoreMock struct {
	CreateFunc func(ctx context.Context, n *domain.Notification, jobID *uuid.UUID) error

	calls struct {
		Create []struct {
			Ctx   context.Context
			N     *domain.Notification
			JobID *uuid.UUID
		}
	}
	lockCreate sync.RWMutex
}

func (mock *notificationStoreMock) Create(ctx context.Context, n *domain.Notification, jobID *uuid.UUID) error {
	if mock.CreateFunc == nil {
		panic("notificationStoreMock.CreateFunc: method is nil but notificationStore.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		N     *domain.Notification
		JobID *uuid.UUID
	}{
		Ctx: ctx,
		N: n,
		JobID: jobID,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, n, jobID)
}

func (mock *notificationStoreMock) CreateCalls() []struct {
	Ctx   context.Context
	N     *domain.Notification
	JobID *uuid.UUID
} {
	var calls []struct {
		Ctx   context.Context
		N     *domain.Notification
		JobID *uuid.UUID
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
