package domain

import (
	"fmt"
	"time"
)

const (
	PartsRequestPending  = "pending_approval"
	PartsRequestApproved = "approved"
	PartsRequestRejected = "rejected"
)

// InventoryItem is a part a technician can draw on, either from the van or
// the warehouse.
type InventoryItem struct {
	ID                int64   `json:"id" bson:"id"`
	PartNumber        string  `json:"part_number" bson:"part_number"`
	Name              string  `json:"name" bson:"name"`
	Category          string  `json:"category" bson:"category"`
	QuantityAvailable int     `json:"quantity_available" bson:"quantity_available"`
	UnitCost          float64 `json:"unit_cost" bson:"unit_cost"`
	Location          string  `json:"location" bson:"location"`
}

// RequestedPart is one line of a parts request.
type RequestedPart struct {
	PartNumber string `json:"part_number" bson:"part_number"`
	Quantity   int    `json:"quantity" bson:"quantity"`
}

// PartsRequest is a technician's restock order awaiting back-office approval.
type PartsRequest struct {
	ID            int64           `json:"id" bson:"id"`
	RequestNumber string          `json:"request_number" bson:"request_number"`
	RequestedBy   int64           `json:"requested_by" bson:"requested_by"`
	Parts         []RequestedPart `json:"parts" bson:"parts"`
	Status        string          `json:"status" bson:"status"`
	CreatedAt     time.Time       `json:"created_at" bson:"created_at"`
}

// RequestNumberFormat builds the request number for a sequence value,
// e.g. REQ000123.
func RequestNumberFormat(seq int64) string {
	return fmt.Sprintf("REQ%06d", seq)
}
