package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"sync"
)

var _ userAdminService = &userAdminServiceMock{}

type userAdminServiceMock struct {
	ListUsersFunc   func(ctx context.Context, limit int, offset int) ([]domain.User, int, error)
	SetUserRoleFunc func(ctx context.Context, targetUserID uuid.UUID, role domain.UserRole) (*domain.User, error)

	calls struct {
		ListUsers []struct {
			Ctx    context.Context
			Limit  int
			Offset int
		}
		SetUserRole []struct {
			Ctx          context.Context
			TargetUserID uuid.UUID
			Role         domain.UserRole
		}
	}
	lockListUsers   sync.RWMutex
	lockSetUserRole sync.RWMutex
}

func (mock *userAdminServiceMock) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, int, error) {
	if mock.ListUsersFunc == nil {
		panic("userAdminServiceMock.ListUsersFunc: method is nil but userAdminService.ListUsers was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Limit  int
		Offset int
	}{
		Ctx: ctx,
		Limit: limit,
		Offset: offset,
	}
	mock.lockListUsers.Lock()
	mock.calls.ListUsers = append(mock.calls.ListUsers, callInfo)
	mock.lockListUsers.Unlock()
	return mock.ListUsersFunc(ctx, limit, offset)
}

func (mock *userAdminServiceMock) ListUsersCalls() []struct {
	Ctx    context.Context
	Limit  int
	Offset int
} {
	var calls []struct {
		Ctx    context.Context
		Limit  int
		Offset int
	}
	mock.lockListUsers.RLock()
	calls = mock.calls.ListUsers
	mock.lockListUsers.RUnlock()
	return calls
}

func (mock *userAdminServiceMock) SetUserRole(ctx context.Context, targetUserID uuid.UUID, role domain.UserRole) (*domain.User, error) {
	if mock.SetUserRoleFunc == nil {
		panic("userAdminServiceMock.SetUserRoleFunc: method is nil but userAdminService.SetUserRole was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		TargetUserID uuid.UUID
		Role         domain.UserRole
	}{
		Ctx: ctx,
		TargetUserID: targetUserID,
		Role: role,
	}
	mock.lockSetUserRole.Lock()
	mock.calls.SetUserRole = append(mock.calls.SetUserRole, callInfo)
	mock.lockSetUserRole.Unlock()
	return mock.SetUserRoleFunc(ctx, targetUserID, role)
}

func (mock *userAdminServiceMock) SetUserRoleCalls() []struct {
	Ctx          context.Context
	TargetUserID uuid.UUID
	Role         domain.UserRole
} {
	var calls []struct {
		Ctx          context.Context
		TargetUserID uuid.UUID
		Role         domain.UserRole
	}
	mock.lockSetUserRole.RLock()
	calls = mock.calls.SetUserRole
	mock.lockSetUserRole.RUnlock()
	return calls
}
