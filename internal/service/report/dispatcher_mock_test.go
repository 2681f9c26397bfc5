package report

import (
	"context"
	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"sync"
)

var _ dispatcher = &dispatcherMock{}

type dispatcherMock struct {
	NotifyStatusChangeFunc func(ctx context.Context, change domain.StatusChange) error

	calls struct {
		NotifyStatusChange []struct {
			Ctx    context.Context
			Change domain.StatusChange
		}
	}
	lockNotifyStatusChange sync.RWMutex
}

func (mock *dispatcherMock) NotifyStatusChange(ctx context.Context, change domain.StatusChange) error {
	if mock.NotifyStatusChangeFunc == nil {
		panic("dispatcherMock.NotifyStatusChangeFunc: method is nil but dispatcher.NotifyStatusChange was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Change domain.StatusChange
	}{
		Ctx: ctx,
		Change: change,
	}
	mock.lockNotifyStatusChange.Lock()
	mock.calls.NotifyStatusChange = append(mock.calls.NotifyStatusChange, callInfo)
	mock.lockNotifyStatusChange.Unlock()
	return mock.NotifyStatusChangeFunc(ctx, change)
}

func (mock *dispatcherMock) NotifyStatusChangeCalls() []struct {
	Ctx    context.Context
	Change domain.StatusChange
} {
	var calls []struct {
		Ctx    context.Context
		Change domain.StatusChange
	}
	mock.lockNotifyStatusChange.RLock()
	calls = mock.calls.NotifyStatusChange
	mock.lockNotifyStatusChange.RUnlock()
	return calls
}
