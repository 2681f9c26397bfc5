package report

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"sync"
)

var _ reportRepo = &reportRepoMock{}

type reportRepoMock struct {
	FindForUpdateFunc func(ctx context.Context, kind domain.ReportKind, id int64) (*domain.Report, error)
	GetViewFunc       func(ctx context.Context, kind domain.ReportKind, id int64) (*domain.ReportView, error)
	ListAllFunc       func(ctx context.Context, kind domain.ReportKind) ([]*domain.Report, error)
	ListByOwnerFunc   func(ctx context.Context, kind domain.ReportKind, ownerID uuid.UUID) ([]*domain.Report, error)
	InsertFunc        func(ctx context.Context, r *domain.Report) (*domain.Report, error)
	UpdateFunc        func(ctx context.Context, kind domain.ReportKind, id int64, params domain.ReportUpdateParams) (*domain.Report, error)
	DeleteFunc        func(ctx context.Context, kind domain.ReportKind, id int64) error

	calls struct {
		FindForUpdate []struct {
			Ctx  context.Context
			Kind domain.ReportKind
			ID   int64
		}
		GetView []struct {
			Ctx  context.Context
			Kind domain.ReportKind
			ID   int64
		}
		ListAll []struct {
			Ctx  context.Context
			Kind domain.ReportKind
		}
		ListByOwner []struct {
			Ctx     context.Context
			Kind    domain.ReportKind
			OwnerID uuid.UUID
		}
		Insert []struct {
			Ctx context.Context
			R   *domain.Report
		}
		Update []struct {
			Ctx    context.Context
			Kind   domain.ReportKind
			ID     int64
			Params domain.ReportUpdateParams
		}
		Delete []struct {
			Ctx  context.Context
			Kind domain.ReportKind
			ID   int64
		}
	}
	lockFindForUpdate sync.RWMutex
	lockGetView       sync.RWMutex
	lockListAll       sync.RWMutex
	lockListByOwner   sync.RWMutex
	lockInsert        sync.RWMutex
	lockUpdate        sync.RWMutex
	lockDelete        sync.RWMutex
}

func (mock *reportRepoMock) FindForUpdate(ctx context.Context, kind domain.ReportKind, id int64) (*domain.Report, error) {
	if mock.FindForUpdateFunc == nil {
		panic("reportRepoMock.FindForUpdateFunc: method is nil but reportRepo.FindForUpdate was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Kind domain.ReportKind
		ID   int64
	}{
		Ctx: ctx,
		Kind: kind,
		ID: id,
	}
	mock.lockFindForUpdate.Lock()
	mock.calls.FindForUpdate = append(mock.calls.FindForUpdate, callInfo)
	mock.lockFindForUpdate.Unlock()
	return mock.FindForUpdateFunc(ctx, kind, id)
}

func (mock *reportRepoMock) FindForUpdateCalls() []struct {
	Ctx  context.Context
	Kind domain.ReportKind
	ID   int64
} {
	var calls []struct {
		Ctx  context.Context
		Kind domain.ReportKind
		ID   int64
	}
	mock.lockFindForUpdate.RLock()
	calls = mock.calls.FindForUpdate
	mock.lockFindForUpdate.RUnlock()
	return calls
}

func (mock *reportRepoMock) GetView(ctx context.Context, kind domain.ReportKind, id int64) (*domain.ReportView, error) {
	if mock.GetViewFunc == nil {
		panic("reportRepoMock.GetViewFunc: method is nil but reportRepo.GetView was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Kind domain.ReportKind
		ID   int64
	}{
		Ctx: ctx,
		Kind: kind,
		ID: id,
	}
	mock.lockGetView.Lock()
	mock.calls.GetView = append(mock.calls.GetView, callInfo)
	mock.lockGetView.Unlock()
	return mock.GetViewFunc(ctx, kind, id)
}

func (mock *reportRepoMock) GetViewCalls() []struct {
	Ctx  context.Context
	Kind domain.ReportKind
	ID   int64
} {
	var calls []struct {
		Ctx  context.Context
		Kind domain.ReportKind
		ID   int64
	}
	mock.lockGetView.RLock()
	calls = mock.calls.GetView
	mock.lockGetView.RUnlock()
	return calls
}

func (mock *reportRepoMock) ListAll(ctx context.Context, kind domain.ReportKind) ([]*domain.Report, error) {
	if mock.ListAllFunc == nil {
		panic("reportRepoMock.ListAllFunc: method is nil but reportRepo.ListAll was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Kind domain.ReportKind
	}{
		Ctx: ctx,
		Kind: kind,
	}
	mock.lockListAll.Lock()
	mock.calls.ListAll = append(mock.calls.ListAll, callInfo)
	mock.lockListAll.Unlock()
	return mock.ListAllFunc(ctx, kind)
}

func (mock *reportRepoMock) ListAllCalls() []struct {
	Ctx  context.Context
	Kind domain.ReportKind
} {
	var calls []struct {
		Ctx  context.Context
		Kind domain.ReportKind
	}
	mock.lockListAll.RLock()
	calls = mock.calls.ListAll
	mock.lockListAll.RUnlock()
	return calls
}

func (mock *reportRepoMock) ListByOwner(ctx context.Context, kind domain.ReportKind, ownerID uuid.UUID) ([]*domain.Report, error) {
	if mock.ListByOwnerFunc == nil {
		panic("reportRepoMock.ListByOwnerFunc: method is nil but reportRepo.ListByOwner was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Kind    domain.ReportKind
		OwnerID uuid.UUID
	}{
		Ctx: ctx,
		Kind: kind,
		OwnerID: ownerID,
	}
	mock.lockListByOwner.Lock()
	mock.calls.ListByOwner = append(mock.calls.ListByOwner, callInfo)
	mock.lockListByOwner.Unlock()
	return mock.ListByOwnerFunc(ctx, kind, ownerID)
}

func (mock *reportRepoMock) ListByOwnerCalls() []struct {
	Ctx     context.Context
	Kind    domain.ReportKind
	OwnerID uuid.UUID
} {
	var calls []struct {
		Ctx     context.Context
		Kind    domain.ReportKind
		OwnerID uuid.UUID
	}
	mock.lockListByOwner.RLock()
	calls = mock.calls.ListByOwner
	mock.lockListByOwner.RUnlock()
	return calls
}

func (mock *reportRepoMock) Insert(ctx context.Context, r *domain.Report) (*domain.Report, error) {
	if mock.InsertFunc == nil {
		panic("reportRepoMock.InsertFunc: method is nil but reportRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		R   *domain.Report
	}{
		Ctx: ctx,
		R: r,
	}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, r)
}

func (mock *reportRepoMock) InsertCalls() []struct {
	Ctx context.Context
	R   *domain.Report
} {
	var calls []struct {
		Ctx context.Context
		R   *domain.Report
	}
	mock.lockInsert.RLock()
	calls = mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *reportRepoMock) Update(ctx context.Context, kind domain.ReportKind, id int64, params domain.ReportUpdateParams) (*domain.Report, error) {
	if mock.UpdateFunc == nil {
		panic("reportRepoMock.UpdateFunc: method is nil but reportRepo.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Kind   domain.ReportKind
		ID     int64
		Params domain.ReportUpdateParams
	}{
		Ctx: ctx,
		Kind: kind,
		ID: id,
		Params: params,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, kind, id, params)
}

func (mock *reportRepoMock) UpdateCalls() []struct {
	Ctx    context.Context
	Kind   domain.ReportKind
	ID     int64
	Params domain.ReportUpdateParams
} {
	var calls []struct {
		Ctx    context.Context
		Kind   domain.ReportKind
		ID     int64
		Params domain.ReportUpdateParams
	}
	mock.lockUpdate.RLock()
	calls = mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *reportRepoMock) Delete(ctx context.Context, kind domain.ReportKind, id int64) error {
	if mock.DeleteFunc == nil {
		panic("reportRepoMock.DeleteFunc: method is nil but reportRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Kind domain.ReportKind
		ID   int64
	}{
		Ctx: ctx,
		Kind: kind,
		ID: id,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, kind, id)
}

func (mock *reportRepoMock) DeleteCalls() []struct {
	Ctx  context.Context
	Kind domain.ReportKind
	ID   int64
} {
	var calls []struct {
		Ctx  context.Context
		Kind domain.ReportKind
		ID   int64
	}
	mock.lockDelete.RLock()
	calls = mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
