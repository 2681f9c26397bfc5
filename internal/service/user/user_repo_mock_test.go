package user

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"sync"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	CountUsersFunc func(ctx context.Context) (int, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListUsersFunc  func(ctx context.Context, limit int, offset int) ([]domain.User, error)
	UpdateRoleFunc func(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error)

	calls struct {
		CountUsers []struct {
			Ctx context.Context
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListUsers []struct {
			Ctx    context.Context
			Limit  int
			Offset int
		}
		UpdateRole []struct {
			Ctx  context.Context
			ID   uuid.UUID
			Role domain.UserRole
		}
	}
	lockCountUsers sync.RWMutex
	lockGetByID    sync.RWMutex
	lockListUsers  sync.RWMutex
	lockUpdateRole sync.RWMutex
}

func (mock *userRepoMock) CountUsers(ctx context.Context) (int, error) {
	if mock.CountUsersFunc == nil {
		panic("userRepoMock.CountUsersFunc: method is nil but userRepo.CountUsers was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockCountUsers.Lock()
	mock.calls.CountUsers = append(mock.calls.CountUsers, callInfo)
	mock.lockCountUsers.Unlock()
	return mock.CountUsersFunc(ctx)
}

func (mock *userRepoMock) CountUsersCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockCountUsers.RLock()
	calls = mock.calls.CountUsers
	mock.lockCountUsers.RUnlock()
	return calls
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID: id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *userRepoMock) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if mock.ListUsersFunc == nil {
		panic("userRepoMock.ListUsersFunc: method is nil but userRepo.ListUsers was just called")
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

func (mock *userRepoMock) ListUsersCalls() []struct {
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

func (mock *userRepoMock) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	if mock.UpdateRoleFunc == nil {
		panic("userRepoMock.UpdateRoleFunc: method is nil but userRepo.UpdateRole was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		ID   uuid.UUID
		Role domain.UserRole
	}{
		Ctx: ctx,
		ID: id,
		Role: role,
	}
	mock.lockUpdateRole.Lock()
	mock.calls.UpdateRole = append(mock.calls.UpdateRole, callInfo)
	mock.lockUpdateRole.Unlock()
	return mock.UpdateRoleFunc(ctx, id, role)
}

func (mock *userRepoMock) UpdateRoleCalls() []struct {
	Ctx  context.Context
	ID   uuid.UUID
	Role domain.UserRole
} {
	var calls []struct {
		Ctx  context.Context
		ID   uuid.UUID
		Role domain.UserRole
	}
	mock.lockUpdateRole.RLock()
	calls = mock.calls.UpdateRole
	mock.lockUpdateRole.RUnlock()
	return calls
}
