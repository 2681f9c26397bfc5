package worker

import (
	"context"
	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"sync"
)

var _ mailer = &mailerMock{}

type mailerMock struct {
	SendStatusEmailFunc func(ctx context.Context, to domain.User, change domain.StatusChange) error

	calls struct {
		SendStatusEmail []struct {
			Ctx    context.Context
			To     domain.User
			Change domain.StatusChange
		}
	}
	lockSendStatusEmail sync.RWMutex
}

func (mock *mailerMock) SendStatusEmail(ctx context.Context, to domain.User, change domain.StatusChange) error {
	if mock.SendStatusEmailFunc == nil {
		panic("mailerMock.SendStatusEmailFunc: method is nil but mailer.SendStatusEmail was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		To     domain.User
		Change domain.StatusChange
	}{
		Ctx: ctx,
		To: to,
		Change: change,
	}
	mock.lockSendStatusEmail.Lock()
	mock.calls.SendStatusEmail = append(mock.calls.SendStatusEmail, callInfo)
	mock.lockSendStatusEmail.Unlock()
	return mock.SendStatusEmailFunc(ctx, to, change)
}

func (mock *mailerMock) SendStatusEmailCalls() []struct {
	Ctx    context.Context
	To     domain.User
	Change domain.StatusChange
} {
	var calls []struct {
		Ctx    context.Context
		To     domain.User
		Change domain.StatusChange
	}
	mock.lockSendStatusEmail.RLock()
	calls = mock.calls.SendStatusEmail
	mock.lockSendStatusEmail.RUnlock()
	return calls
}
