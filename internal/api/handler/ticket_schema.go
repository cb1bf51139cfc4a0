package handler

import "time"

// --- Request types ---

type partUsedRequest struct {
	PartName string  `json:"part_name" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	UnitCost float64 `json:"unit_cost" validate:"min=0"`
}

type updateStatusRequest struct {
	Status        string            `json:"status" validate:"required"`
	Notes         string            `json:"notes"`
	WorkPerformed string            `json:"work_performed"`
	PartsUsed     []partUsedRequest `json:"parts_used" validate:"dive"`
}

type captureLocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

type attachPhotosRequest struct {
	Photos []string `json:"photos" validate:"required,min=1"`
}

type attachSignatureRequest struct {
	CustomerName string `json:"customer_name" validate:"required"`
	Signature    string `json:"signature"`
}

// --- Response types ---

type ticketSummaryResponse struct {
	ID               int64     `json:"id"`
	TicketNumber     string    `json:"ticket_number"`
	CustomerName     string    `json:"customer_name"`
	CustomerPhone    string    `json:"customer_phone"`
	CustomerAddress  string    `json:"customer_address"`
	ProductName      string    `json:"product_name"`
	IssueDescription string    `json:"issue_description"`
	Status           string    `json:"status"`
	Priority         string    `json:"priority"`
	ScheduledDate    time.Time `json:"scheduled_date"`
	AssignedStaffID  int64     `json:"assigned_staff_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type ticketListResponse struct {
	Tickets    []ticketSummaryResponse `json:"tickets"`
	TotalCount int64                   `json:"total_count"`
}

type geoPointResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type signatureResponse struct {
	CustomerName string    `json:"customer_name"`
	Ref          string    `json:"ref"`
	CapturedAt   time.Time `json:"captured_at"`
}

type partUsedResponse struct {
	PartName string  `json:"part_name"`
	Quantity int     `json:"quantity"`
	UnitCost float64 `json:"unit_cost"`
}

type ticketDetailResponse struct {
	ticketSummaryResponse
	CustomerEmail  string             `json:"customer_email"`
	TechnicianName string             `json:"technician_name"`
	ServiceNotes   string             `json:"service_notes,omitempty"`
	WorkPerformed  string             `json:"work_performed,omitempty"`
	CompletedDate  *time.Time         `json:"completed_date,omitempty"`
	Location       *geoPointResponse  `json:"location,omitempty"`
	Signature      *signatureResponse `json:"signature,omitempty"`
	PhotoRefs      []string           `json:"photo_refs,omitempty"`
	PartsUsed      []partUsedResponse `json:"parts_used,omitempty"`
}

type updateStatusResponse struct {
	TicketID  int64     `json:"ticket_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type locationAckResponse struct {
	TicketID   int64     `json:"ticket_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	CapturedAt time.Time `json:"captured_at"`
}

type photosAckResponse struct {
	TicketID  int64    `json:"ticket_id"`
	PhotoURLs []string `json:"photo_urls"`
}

type signatureAckResponse struct {
	TicketID     int64     `json:"ticket_id"`
	SignatureURL string    `json:"signature_url"`
	CapturedAt   time.Time `json:"captured_at"`
}

type scheduleEntryResponse struct {
	TicketID     int64     `json:"ticket_id"`
	TicketNumber string    `json:"ticket_number"`
	CustomerName string    `json:"customer_name"`
	Address      string    `json:"address"`
	StartTime    time.Time `json:"start_time"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
}

type scheduleResponse struct {
	Date    string                  `json:"date"`
	Entries []scheduleEntryResponse `json:"entries"`
}
