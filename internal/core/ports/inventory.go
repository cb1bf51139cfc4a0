package ports

import (
	"context"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
)

// InventoryRepository defines persistence for parts stock and restock orders.
type InventoryRepository interface {
	ListItems(ctx context.Context) ([]*domain.InventoryItem, error)
	// InsertRequest persists a parts request, allocating its id and
	// REQ-prefixed request number.
	InsertRequest(ctx context.Context, req *domain.PartsRequest) (*domain.PartsRequest, error)
}

// InventoryService exposes the parts catalogue and restock requests.
type InventoryService interface {
	ListItems(ctx context.Context) ([]*domain.InventoryItem, error)
	RequestParts(ctx context.Context, requestedBy int64, parts []domain.RequestedPart) (*domain.PartsRequest, error)
}
