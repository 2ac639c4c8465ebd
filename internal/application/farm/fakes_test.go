package farm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrihub/backend/internal/domain/farm"
	"github.com/agrihub/backend/internal/domain/finance"
	"github.com/agrihub/backend/internal/domain/shared"
)

// capturingEventBus records published events for assertions
type capturingEventBus struct {
	events []shared.DomainEvent
}

func (b *capturingEventBus) Publish(_ context.Context, events ...shared.DomainEvent) error {
	b.events = append(b.events, events...)
	return nil
}

func (b *capturingEventBus) eventTypes() []string {
	types := make([]string, len(b.events))
	for i, e := range b.events {
		types[i] = e.EventType()
	}
	return types
}

// fakeFieldRepo is an in-memory FieldRepository
type fakeFieldRepo struct {
	fields map[uuid.UUID]*farm.Field
}

func newFakeFieldRepo() *fakeFieldRepo {
	return &fakeFieldRepo{fields: make(map[uuid.UUID]*farm.Field)}
}

func (r *fakeFieldRepo) FindByID(_ context.Context, id uuid.UUID) (*farm.Field, error) {
	if f, ok := r.fields[id]; ok {
		copied := *f
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeFieldRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*farm.Field, error) {
	if f, ok := r.fields[id]; ok && f.OwnerID == ownerID {
		copied := *f
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeFieldRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, _ farm.FieldFilter) ([]farm.Field, error) {
	var out []farm.Field
	for _, f := range r.fields {
		if f.OwnerID == ownerID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFieldRepo) FindActiveForOwner(_ context.Context, ownerID uuid.UUID) ([]farm.Field, error) {
	var out []farm.Field
	for _, f := range r.fields {
		if f.OwnerID == ownerID && f.IsActive() {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFieldRepo) Save(_ context.Context, field *farm.Field) error {
	copied := *field
	r.fields[field.ID] = &copied
	return nil
}

func (r *fakeFieldRepo) SaveWithLock(_ context.Context, field *farm.Field) error {
	stored, ok := r.fields[field.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != field.Version-1 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Field was modified by another transaction")
	}
	copied := *field
	r.fields[field.ID] = &copied
	return nil
}

func (r *fakeFieldRepo) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) error {
	if f, ok := r.fields[id]; ok && f.OwnerID == ownerID {
		delete(r.fields, id)
		return nil
	}
	return shared.ErrNotFound
}

func (r *fakeFieldRepo) CountForOwner(_ context.Context, ownerID uuid.UUID, _ farm.FieldFilter) (int64, error) {
	var count int64
	for _, f := range r.fields {
		if f.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

// fakeTaskRepo is an in-memory FarmTaskRepository
type fakeTaskRepo struct {
	tasks map[uuid.UUID]*farm.FarmTask
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*farm.FarmTask)}
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id uuid.UUID) (*farm.FarmTask, error) {
	if t, ok := r.tasks[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTaskRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*farm.FarmTask, error) {
	if t, ok := r.tasks[id]; ok && t.OwnerID == ownerID {
		copied := *t
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTaskRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, _ farm.FarmTaskFilter) ([]farm.FarmTask, error) {
	var out []farm.FarmTask
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindPendingDueBefore(_ context.Context, cutoff time.Time, limit int) ([]farm.FarmTask, error) {
	var out []farm.FarmTask
	for _, t := range r.tasks {
		if t.Status == farm.TaskStatusPending && t.DueAt != nil && t.DueAt.Before(cutoff) {
			out = append(out, *t)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Save(_ context.Context, task *farm.FarmTask) error {
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *fakeTaskRepo) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) error {
	if t, ok := r.tasks[id]; ok && t.OwnerID == ownerID {
		delete(r.tasks, id)
		return nil
	}
	return shared.ErrNotFound
}

func (r *fakeTaskRepo) CountForOwner(_ context.Context, ownerID uuid.UUID, _ farm.FarmTaskFilter) (int64, error) {
	var count int64
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

// fakeBinRepo is an in-memory StorageBinRepository
type fakeBinRepo struct {
	bins map[uuid.UUID]*farm.StorageBin
}

func newFakeBinRepo() *fakeBinRepo {
	return &fakeBinRepo{bins: make(map[uuid.UUID]*farm.StorageBin)}
}

func (r *fakeBinRepo) FindByID(_ context.Context, id uuid.UUID) (*farm.StorageBin, error) {
	if b, ok := r.bins[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeBinRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*farm.StorageBin, error) {
	if b, ok := r.bins[id]; ok && b.OwnerID == ownerID {
		copied := *b
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeBinRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, _ farm.StorageBinFilter) ([]farm.StorageBin, error) {
	var out []farm.StorageBin
	for _, b := range r.bins {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBinRepo) Save(_ context.Context, bin *farm.StorageBin) error {
	copied := *bin
	r.bins[bin.ID] = &copied
	return nil
}

func (r *fakeBinRepo) SaveWithLock(_ context.Context, bin *farm.StorageBin) error {
	stored, ok := r.bins[bin.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != bin.Version-1 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Storage bin was modified by another transaction")
	}
	copied := *bin
	r.bins[bin.ID] = &copied
	return nil
}

func (r *fakeBinRepo) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) error {
	if b, ok := r.bins[id]; ok && b.OwnerID == ownerID {
		delete(r.bins, id)
		return nil
	}
	return shared.ErrNotFound
}

func (r *fakeBinRepo) CountForOwner(_ context.Context, ownerID uuid.UUID, _ farm.StorageBinFilter) (int64, error) {
	var count int64
	for _, b := range r.bins {
		if b.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

// fakeHarvestRepo is an in-memory HarvestRepository. It shares the bin
// store so RecordWithDepositTx can mimic the transactional deposit.
type fakeHarvestRepo struct {
	harvests map[uuid.UUID]*farm.Harvest
	binRepo  *fakeBinRepo
}

func newFakeHarvestRepo(binRepo *fakeBinRepo) *fakeHarvestRepo {
	return &fakeHarvestRepo{harvests: make(map[uuid.UUID]*farm.Harvest), binRepo: binRepo}
}

func (r *fakeHarvestRepo) FindByID(_ context.Context, id uuid.UUID) (*farm.Harvest, error) {
	if h, ok := r.harvests[id]; ok {
		copied := *h
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeHarvestRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*farm.Harvest, error) {
	if h, ok := r.harvests[id]; ok && h.OwnerID == ownerID {
		copied := *h
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeHarvestRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, _ farm.HarvestFilter) ([]farm.Harvest, error) {
	var out []farm.Harvest
	for _, h := range r.harvests {
		if h.OwnerID == ownerID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *fakeHarvestRepo) FindByField(_ context.Context, ownerID, fieldID uuid.UUID, _ farm.HarvestFilter) ([]farm.Harvest, error) {
	var out []farm.Harvest
	for _, h := range r.harvests {
		if h.OwnerID == ownerID && h.FieldID == fieldID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *fakeHarvestRepo) SumQuantityByCrop(_ context.Context, ownerID uuid.UUID, from, to time.Time) (map[string]string, error) {
	totals := make(map[string]decimal.Decimal)
	for _, h := range r.harvests {
		if h.OwnerID != ownerID || h.HarvestedAt.Before(from) || h.HarvestedAt.After(to) {
			continue
		}
		totals[h.CropType] = totals[h.CropType].Add(h.QuantityKg)
	}
	out := make(map[string]string, len(totals))
	for crop, total := range totals {
		out[crop] = total.String()
	}
	return out, nil
}

func (r *fakeHarvestRepo) Save(_ context.Context, harvest *farm.Harvest) error {
	copied := *harvest
	r.harvests[harvest.ID] = &copied
	return nil
}

func (r *fakeHarvestRepo) RecordWithDepositTx(_ context.Context, harvest *farm.Harvest, bin *farm.StorageBin) error {
	stored, ok := r.binRepo.bins[bin.ID]
	if !ok || stored.OwnerID != harvest.OwnerID {
		return shared.ErrBinCapacityExceeded
	}
	if stored.CapacityKg.Sub(stored.CurrentKg).LessThan(harvest.QuantityKg) {
		return shared.ErrBinCapacityExceeded
	}
	stored.CurrentKg = stored.CurrentKg.Add(harvest.QuantityKg)
	stored.Version++
	copied := *harvest
	r.harvests[harvest.ID] = &copied
	return nil
}

func (r *fakeHarvestRepo) DeleteForOwner(_ context.Context, ownerID, id uuid.UUID) error {
	if h, ok := r.harvests[id]; ok && h.OwnerID == ownerID {
		delete(r.harvests, id)
		return nil
	}
	return shared.ErrNotFound
}

func (r *fakeHarvestRepo) CountForOwner(_ context.Context, ownerID uuid.UUID, _ farm.HarvestFilter) (int64, error) {
	var count int64
	for _, h := range r.harvests {
		if h.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

// fakeNotificationRepo is an in-memory NotificationRepository
type fakeNotificationRepo struct {
	notifications map[uuid.UUID]*farm.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[uuid.UUID]*farm.Notification)}
}

func (r *fakeNotificationRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*farm.Notification, error) {
	if n, ok := r.notifications[id]; ok && n.OwnerID == ownerID {
		copied := *n
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeNotificationRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, filter farm.NotificationFilter) ([]farm.Notification, error) {
	var out []farm.Notification
	for _, n := range r.notifications {
		if n.OwnerID != ownerID {
			continue
		}
		if filter.Unread != nil && *filter.Unread && n.IsRead() {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (r *fakeNotificationRepo) ExistsForTask(_ context.Context, taskID uuid.UUID, kind farm.NotificationKind) (bool, error) {
	for _, n := range r.notifications {
		if n.TaskID != nil && *n.TaskID == taskID && n.Kind == kind {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotificationRepo) Save(_ context.Context, notification *farm.Notification) error {
	copied := *notification
	r.notifications[notification.ID] = &copied
	return nil
}

func (r *fakeNotificationRepo) CountUnreadForOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.OwnerID == ownerID && !n.IsRead() {
			count++
		}
	}
	return count, nil
}

// stubExpenseRepo reports a fixed expense total for summaries
type stubExpenseRepo struct {
	finance.ExpenseRepository
	total decimal.Decimal
}

func (r *stubExpenseRepo) SumForOwner(_ context.Context, _ uuid.UUID, _, _ time.Time) (decimal.Decimal, error) {
	return r.total, nil
}

// stubIncomeRepo reports a fixed income total for summaries
type stubIncomeRepo struct {
	finance.IncomeRepository
	total decimal.Decimal
}

func (r *stubIncomeRepo) SumForOwner(_ context.Context, _ uuid.UUID, _, _ time.Time) (decimal.Decimal, error) {
	return r.total, nil
}
