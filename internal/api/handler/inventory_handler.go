package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ostrich-systems/field-service-api/internal/core/domain"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

// InventoryHandler serves the parts catalogue and restock requests.
type InventoryHandler struct {
	service ports.InventoryService
}

func NewInventoryHandler(service ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

type inventoryItemResponse struct {
	ID                int64   `json:"id"`
	PartNumber        string  `json:"part_number"`
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	QuantityAvailable int     `json:"quantity_available"`
	UnitCost          float64 `json:"unit_cost"`
	Location          string  `json:"location"`
}

type inventoryListResponse struct {
	Items []inventoryItemResponse `json:"items"`
}

type requestedPartRequest struct {
	PartNumber string `json:"part_number" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

type partsRequestRequest struct {
	Parts []requestedPartRequest `json:"parts" validate:"required,min=1,dive"`
}

type partsRequestResponse struct {
	ID            int64     `json:"id"`
	RequestNumber string    `json:"request_number"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// List returns the parts catalogue.
//
// @Summary      List inventory
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  inventoryListResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/inventory [get]
func (h *InventoryHandler) List(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	items, err := h.service.ListItems(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]inventoryItemResponse, len(items))
	for i, item := range items {
		out[i] = inventoryItemResponse{
			ID:                item.ID,
			PartNumber:        item.PartNumber,
			Name:              item.Name,
			Category:          item.Category,
			QuantityAvailable: item.QuantityAvailable,
			UnitCost:          item.UnitCost,
			Location:          item.Location,
		}
	}
	return c.JSON(http.StatusOK, inventoryListResponse{Items: out})
}

// Request files a restock order for the caller.
//
// @Summary      Request parts
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      partsRequestRequest  true  "Requested parts"
// @Success      201   {object}  partsRequestResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/inventory/request [post]
func (h *InventoryHandler) Request(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req partsRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	parts := make([]domain.RequestedPart, len(req.Parts))
	for i, p := range req.Parts {
		parts[i] = domain.RequestedPart{PartNumber: p.PartNumber, Quantity: p.Quantity}
	}

	created, err := h.service.RequestParts(c.Request().Context(), identity.UserID, parts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, partsRequestResponse{
		ID:            created.ID,
		RequestNumber: created.RequestNumber,
		Status:        created.Status,
		CreatedAt:     created.CreatedAt,
	})
}
