package handler

import (
	"github.com/ostrich-systems/field-service-api/internal/core/domain"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

func toTicketSummary(s ports.TicketSummary) ticketSummaryResponse {
	return ticketSummaryResponse{
		ID:               s.ID,
		TicketNumber:     s.TicketNumber,
		CustomerName:     s.CustomerName,
		CustomerPhone:    s.CustomerPhone,
		CustomerAddress:  s.CustomerAddress,
		ProductName:      s.ProductName,
		IssueDescription: s.IssueDescription,
		Status:           s.Status,
		Priority:         s.Priority,
		ScheduledDate:    s.ScheduledDate,
		AssignedStaffID:  s.AssignedStaffID,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func toTicketList(res *ports.TicketListResult) ticketListResponse {
	tickets := make([]ticketSummaryResponse, len(res.Tickets))
	for i, s := range res.Tickets {
		tickets[i] = toTicketSummary(s)
	}
	return ticketListResponse{Tickets: tickets, TotalCount: res.TotalCount}
}

func toTicketDetail(d *ports.TicketDetail) ticketDetailResponse {
	resp := ticketDetailResponse{
		ticketSummaryResponse: toTicketSummary(d.TicketSummary),
		CustomerEmail:         d.CustomerEmail,
		TechnicianName:        d.TechnicianName,
		ServiceNotes:          d.ServiceNotes,
		WorkPerformed:         d.WorkPerformed,
		CompletedDate:         d.CompletedDate,
		PhotoRefs:             d.PhotoRefs,
		PartsUsed:             toPartsUsed(d.PartsUsed),
	}
	if d.Location != nil {
		resp.Location = &geoPointResponse{
			Latitude:  d.Location.Latitude,
			Longitude: d.Location.Longitude,
		}
	}
	if d.Signature != nil {
		resp.Signature = &signatureResponse{
			CustomerName: d.Signature.CustomerName,
			Ref:          d.Signature.Ref,
			CapturedAt:   d.Signature.CapturedAt,
		}
	}
	return resp
}

func toPartsUsed(parts []domain.PartUsed) []partUsedResponse {
	if len(parts) == 0 {
		return nil
	}
	out := make([]partUsedResponse, len(parts))
	for i, p := range parts {
		out[i] = partUsedResponse{PartName: p.PartName, Quantity: p.Quantity, UnitCost: p.UnitCost}
	}
	return out
}

func fromPartsUsed(parts []partUsedRequest) []domain.PartUsed {
	if len(parts) == 0 {
		return nil
	}
	out := make([]domain.PartUsed, len(parts))
	for i, p := range parts {
		out[i] = domain.PartUsed{PartName: p.PartName, Quantity: p.Quantity, UnitCost: p.UnitCost}
	}
	return out
}

func toScheduleEntries(entries []ports.ScheduleEntry) []scheduleEntryResponse {
	out := make([]scheduleEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = scheduleEntryResponse{
			TicketID:     e.TicketID,
			TicketNumber: e.TicketNumber,
			CustomerName: e.CustomerName,
			Address:      e.Address,
			StartTime:    e.StartTime,
			Status:       e.Status,
			Priority:     e.Priority,
		}
	}
	return out
}
