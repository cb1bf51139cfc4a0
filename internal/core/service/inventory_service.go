package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

// InventoryService exposes the parts catalogue and restock requests.
type InventoryService struct {
	repo ports.InventoryRepository
	log  zerolog.Logger
}

func NewInventoryService(repo ports.InventoryRepository, log zerolog.Logger) *InventoryService {
	return &InventoryService{repo: repo, log: log}
}

func (s *InventoryService) ListItems(ctx context.Context) ([]*domain.InventoryItem, error) {
	return s.repo.ListItems(ctx)
}

// RequestParts files a restock order in pending_approval state.
func (s *InventoryService) RequestParts(ctx context.Context, requestedBy int64, parts []domain.RequestedPart) (*domain.PartsRequest, error) {
	req := &domain.PartsRequest{
		RequestedBy: requestedBy,
		Parts:       parts,
		Status:      domain.PartsRequestPending,
		CreatedAt:   time.Now().UTC(),
	}
	created, err := s.repo.InsertRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int64("user_id", requestedBy).
		Str("request_number", created.RequestNumber).
		Int("parts", len(parts)).
		Msg("parts request submitted")
	return created, nil
}
