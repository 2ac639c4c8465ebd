package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/finance"
	"github.com/agrihub/backend/internal/domain/shared"
)

func TestIncomeService_Record(t *testing.T) {
	service := NewIncomeService(newFakeIncomeRepo(), newFakeFieldRepo(), nil, zap.NewNop())

	resp, err := service.Record(context.Background(), uuid.New(), RecordIncomeRequest{
		Source:      "HARVEST_SALE",
		Description: "Sold 3 sacks at the local market",
		Amount:      decimal.NewFromInt(5400),
		Currency:    "KES",
		ReceivedAt:  time.Now().Add(-time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, "HARVEST_SALE", resp.Source)
	assert.Nil(t, resp.OrderID)
}

func TestIncomeService_Record_MarketplaceSourceRejected(t *testing.T) {
	service := NewIncomeService(newFakeIncomeRepo(), newFakeFieldRepo(), nil, zap.NewNop())

	_, err := service.Record(context.Background(), uuid.New(), RecordIncomeRequest{
		Source:      "MARKETPLACE",
		Description: "Manual settlement",
		Amount:      decimal.NewFromInt(1000),
		Currency:    "KES",
		ReceivedAt:  time.Now(),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_SOURCE", domainErr.Code)
}

func TestIncomeService_SettlementRecordsImmutable(t *testing.T) {
	repo := newFakeIncomeRepo()
	service := NewIncomeService(repo, newFakeFieldRepo(), nil, zap.NewNop())
	ownerID := uuid.New()

	record, err := finance.NewIncomeRecord(ownerID, finance.IncomeSourceMarketplace, "Marketplace order ORD-1", decimal.NewFromInt(2000), "KES", time.Now())
	require.NoError(t, err)
	record.AttachOrder(uuid.New())
	require.NoError(t, repo.Save(context.Background(), record))

	_, err = service.Update(context.Background(), ownerID, record.ID, UpdateIncomeRequest{
		Source:      "MARKETPLACE",
		Description: "edited",
		Amount:      decimal.NewFromInt(9999),
		ReceivedAt:  time.Now(),
	})
	assert.Error(t, err)

	err = service.Delete(context.Background(), ownerID, record.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}
