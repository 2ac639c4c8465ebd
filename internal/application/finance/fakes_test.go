package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/farm"
	"github.com/agrihub/backend/internal/domain/finance"
	"github.com/agrihub/backend/internal/domain/shared"
)

// fakeExpenseRepo is an in-memory ExpenseRepository
type fakeExpenseRepo struct {
	records map[uuid.UUID]*finance.ExpenseRecord
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{records: make(map[uuid.UUID]*finance.ExpenseRecord)}
}

func (r *fakeExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*finance.ExpenseRecord, error) {
	if e, ok := r.records[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeExpenseRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*finance.ExpenseRecord, error) {
	if e, ok := r.records[id]; ok && e.OwnerID == ownerID {
		copied := *e
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeExpenseRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, filter finance.ExpenseFilter) ([]finance.ExpenseRecord, error) {
	var out []finance.ExpenseRecord
	for _, e := range r.records {
		if e.OwnerID != ownerID {
			continue
		}
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeExpenseRepo) SumByCategory(_ context.Context, ownerID uuid.UUID, from, to time.Time) (map[finance.ExpenseCategory]decimal.Decimal, error) {
	totals := make(map[finance.ExpenseCategory]decimal.Decimal)
	for _, e := range r.records {
		if e.OwnerID == ownerID && !e.IncurredAt.Before(from) && !e.IncurredAt.After(to) {
			totals[e.Category] = totals[e.Category].Add(e.Total)
		}
	}
	return totals, nil
}

func (r *fakeExpenseRepo) SumForOwner(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	byCategory, _ := r.SumByCategory(ctx, ownerID, from, to)
	var total decimal.Decimal
	for _, t := range byCategory {
		total = total.Add(t)
	}
	return total, nil
}

func (r *fakeExpenseRepo) Save(_ context.Context, record *finance.ExpenseRecord) error {
	copied := *record
	r.records[record.ID] = &copied
	return nil
}

func (r *fakeExpenseRepo) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) error {
	if e, ok := r.records[id]; ok && e.OwnerID == ownerID {
		delete(r.records, id)
		return nil
	}
	return shared.ErrNotFound
}

func (r *fakeExpenseRepo) CountForOwner(_ context.Context, ownerID uuid.UUID, _ finance.ExpenseFilter) (int64, error) {
	var count int64
	for _, e := range r.records {
		if e.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

// fakeIncomeRepo is an in-memory IncomeRepository
type fakeIncomeRepo struct {
	records map[uuid.UUID]*finance.IncomeRecord
}

func newFakeIncomeRepo() *fakeIncomeRepo {
	return &fakeIncomeRepo{records: make(map[uuid.UUID]*finance.IncomeRecord)}
}

func (r *fakeIncomeRepo) FindByID(_ context.Context, id uuid.UUID) (*finance.IncomeRecord, error) {
	if i, ok := r.records[id]; ok {
		copied := *i
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeIncomeRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*finance.IncomeRecord, error) {
	if i, ok := r.records[id]; ok && i.OwnerID == ownerID {
		copied := *i
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeIncomeRepo) FindByOrder(_ context.Context, ownerID, orderID uuid.UUID) (*finance.IncomeRecord, error) {
	for _, i := range r.records {
		if i.OwnerID == ownerID && i.OrderID != nil && *i.OrderID == orderID {
			copied := *i
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeIncomeRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, filter finance.IncomeFilter) ([]finance.IncomeRecord, error) {
	var out []finance.IncomeRecord
	for _, i := range r.records {
		if i.OwnerID != ownerID {
			continue
		}
		if filter.Source != nil && i.Source != *filter.Source {
			continue
		}
		out = append(out, *i)
	}
	return out, nil
}

func (r *fakeIncomeRepo) SumBySource(_ context.Context, ownerID uuid.UUID, from, to time.Time) (map[finance.IncomeSource]decimal.Decimal, error) {
	totals := make(map[finance.IncomeSource]decimal.Decimal)
	for _, i := range r.records {
		if i.OwnerID == ownerID && !i.ReceivedAt.Before(from) && !i.ReceivedAt.After(to) {
			totals[i.Source] = totals[i.Source].Add(i.Amount)
		}
	}
	return totals, nil
}

func (r *fakeIncomeRepo) SumForOwner(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	bySource, _ := r.SumBySource(ctx, ownerID, from, to)
	var total decimal.Decimal
	for _, t := range bySource {
		total = total.Add(t)
	}
	return total, nil
}

func (r *fakeIncomeRepo) Save(_ context.Context, record *finance.IncomeRecord) error {
	copied := *record
	r.records[record.ID] = &copied
	return nil
}

func (r *fakeIncomeRepo) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) error {
	if i, ok := r.records[id]; ok && i.OwnerID == ownerID {
		delete(r.records, id)
		return nil
	}
	return shared.ErrNotFound
}

func (r *fakeIncomeRepo) CountForOwner(_ context.Context, ownerID uuid.UUID, _ finance.IncomeFilter) (int64, error) {
	var count int64
	for _, i := range r.records {
		if i.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

// fakeFieldRepo provides just enough of farm.FieldRepository for
// field-attachment validation
type fakeFieldRepo struct {
	farm.FieldRepository
	fields map[uuid.UUID]uuid.UUID // field ID -> owner ID
}

func newFakeFieldRepo() *fakeFieldRepo {
	return &fakeFieldRepo{fields: make(map[uuid.UUID]uuid.UUID)}
}

func (r *fakeFieldRepo) addField(ownerID uuid.UUID) uuid.UUID {
	id := uuid.New()
	r.fields[id] = ownerID
	return id
}

func (r *fakeFieldRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*farm.Field, error) {
	if owner, ok := r.fields[id]; ok && owner == ownerID {
		return &farm.Field{}, nil
	}
	return nil, shared.ErrNotFound
}

// fixedRateConverter converts with a constant multiplier
type fixedRateConverter struct {
	rate decimal.Decimal
}

func (c *fixedRateConverter) Convert(_ context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	return amount.Mul(c.rate), nil
}
