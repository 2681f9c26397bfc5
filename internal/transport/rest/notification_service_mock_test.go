package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/ireporter-backend/internal/service/notification"
	"sync"
)

var _ notificationService = &notificationServiceMock{}

type notificationServiceMock struct {
	ListFunc        func(ctx context.Context) (*notification.Inbox, error)
	MarkAllReadFunc func(ctx context.Context) (int64, error)
	MarkReadFunc    func(ctx context.Context, id uuid.UUID) error

	calls struct {
		List []struct {
			Ctx context.Context
		}
		MarkAllRead []struct {
			Ctx context.Context
		}
		MarkRead []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockList        sync.RWMutex
	lockMarkAllRead sync.RWMutex
	lockMarkRead    sync.RWMutex
}

func (mock *notificationServiceMock) List(ctx context.Context) (*notification.Inbox, error) {
	if mock.ListFunc == nil {
		panic("notificationServiceMock.ListFunc: method is nil but notificationService.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *notificationServiceMock) ListCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *notificationServiceMock) MarkAllRead(ctx context.Context) (int64, error) {
	if mock.MarkAllReadFunc == nil {
		panic("notificationServiceMock.MarkAllReadFunc: method is nil but notificationService.MarkAllRead was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockMarkAllRead.Lock()
	mock.calls.MarkAllRead = append(mock.calls.MarkAllRead, callInfo)
	mock.lockMarkAllRead.Unlock()
	return mock.MarkAllReadFunc(ctx)
}

func (mock *notificationServiceMock) MarkAllReadCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockMarkAllRead.RLock()
	calls = mock.calls.MarkAllRead
	mock.lockMarkAllRead.RUnlock()
	return calls
}

func (mock *notificationServiceMock) MarkRead(ctx context.Context, id uuid.UUID) error {
	if mock.MarkReadFunc == nil {
		panic("notificationServiceMock.MarkReadFunc: method is nil but notificationService.MarkRead was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID: id,
	}
	mock.lockMarkRead.Lock()
	mock.calls.MarkRead = append(mock.calls.MarkRead, callInfo)
	mock.lockMarkRead.Unlock()
	return mock.MarkReadFunc(ctx, id)
}

func (mock *notificationServiceMock) MarkReadCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockMarkRead.RLock()
	calls = mock.calls.MarkRead
	mock.lockMarkRead.RUnlock()
	return calls
}
