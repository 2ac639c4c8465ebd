package farm

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agrihub/backend/internal/domain/farm"
	"github.com/agrihub/backend/internal/domain/shared"
)

// BinService handles storage bin management and stock movements
type BinService struct {
	binRepo farm.StorageBinRepository
	logger  *zap.Logger
}

// NewBinService creates a new BinService
func NewBinService(binRepo farm.StorageBinRepository, logger *zap.Logger) *BinService {
	return &BinService{binRepo: binRepo, logger: logger}
}

// Create creates a new storage bin
func (s *BinService) Create(ctx context.Context, ownerID uuid.UUID, req CreateBinRequest) (*BinResponse, error) {
	bin, err := farm.NewStorageBin(ownerID, req.Name, req.ProduceType, req.CapacityKg)
	if err != nil {
		return nil, err
	}
	if req.Location != "" {
		if err := bin.Update(req.Name, req.ProduceType, req.CapacityKg, req.Location); err != nil {
			return nil, err
		}
	}

	if err := s.binRepo.Save(ctx, bin); err != nil {
		return nil, err
	}

	s.logger.Info("storage bin created",
		zap.String("bin_id", bin.ID.String()),
		zap.String("produce_type", bin.ProduceType))

	return ToBinResponse(bin), nil
}

// GetByID retrieves a storage bin
func (s *BinService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*BinResponse, error) {
	bin, err := s.binRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return ToBinResponse(bin), nil
}

// List retrieves storage bins with filtering and pagination
func (s *BinService) List(ctx context.Context, ownerID uuid.UUID, produceType, search string, page, pageSize int) ([]BinResponse, int64, error) {
	domainFilter := farm.StorageBinFilter{
		Filter: buildFilter(page, pageSize, "created_at", true),
	}
	if produceType != "" {
		domainFilter.ProduceType = &produceType
	}
	if search != "" {
		domainFilter.Search = &search
	}

	bins, err := s.binRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.binRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BinResponse, len(bins))
	for i := range bins {
		responses[i] = *ToBinResponse(&bins[i])
	}
	return responses, total, nil
}

// Update modifies bin details. Shrinking capacity below the stored
// quantity is rejected by the aggregate.
func (s *BinService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateBinRequest) (*BinResponse, error) {
	bin, err := s.binRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := bin.Update(req.Name, req.ProduceType, req.CapacityKg, req.Location); err != nil {
		return nil, err
	}
	if err := s.binRepo.SaveWithLock(ctx, bin); err != nil {
		return nil, err
	}
	return ToBinResponse(bin), nil
}

// Deposit adds produce to a bin
func (s *BinService) Deposit(ctx context.Context, ownerID, id uuid.UUID, req BinMovementRequest) (*BinResponse, error) {
	return s.move(ctx, ownerID, id, func(bin *farm.StorageBin) error {
		return bin.Deposit(req.QuantityKg)
	})
}

// Withdraw removes produce from a bin
func (s *BinService) Withdraw(ctx context.Context, ownerID, id uuid.UUID, req BinMovementRequest) (*BinResponse, error) {
	return s.move(ctx, ownerID, id, func(bin *farm.StorageBin) error {
		return bin.Withdraw(req.QuantityKg)
	})
}

// Delete removes a storage bin. Bins still holding produce cannot be
// deleted.
func (s *BinService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	bin, err := s.binRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if bin.CurrentKg.IsPositive() {
		return shared.NewDomainError("BIN_NOT_EMPTY", "Withdraw remaining produce before deleting the bin")
	}
	return s.binRepo.DeleteForOwner(ctx, ownerID, id)
}

// move applies a stock movement and persists it with optimistic locking
func (s *BinService) move(ctx context.Context, ownerID, id uuid.UUID, fn func(*farm.StorageBin) error) (*BinResponse, error) {
	bin, err := s.binRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := fn(bin); err != nil {
		return nil, err
	}
	if err := s.binRepo.SaveWithLock(ctx, bin); err != nil {
		return nil, err
	}
	return ToBinResponse(bin), nil
}
