package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ostrich-systems/field-service-api/internal/api/metrics"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

// TicketHandler handles the technician-facing ticket endpoints.
type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

// ListAssigned returns the caller's open tickets.
//
// @Summary      List assigned tickets
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Status filter (SCHEDULED or IN_PROGRESS)"
// @Param        priority  query     string  false  "Priority filter"
// @Param        limit     query     int     false  "Page size (default 10, max 100)"
// @Param        offset    query     int     false  "Page offset"
// @Success      200       {object}  ticketListResponse
// @Failure      400       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Router       /api/v1/tickets/assigned [get]
func (h *TicketHandler) ListAssigned(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	limit, offset := pageParams(c)
	res, err := h.service.ListAssigned(c.Request().Context(), ports.ListAssignedInput{
		StaffID:  identity.UserID,
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketList(res))
}

// ListCompleted returns the caller's completed tickets.
//
// @Summary      List completed tickets
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (default 10, max 100)"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  ticketListResponse
// @Failure      401     {object}  map[string]string
// @Router       /api/v1/tickets/completed [get]
func (h *TicketHandler) ListCompleted(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	limit, offset := pageParams(c)
	res, err := h.service.ListCompleted(c.Request().Context(), identity.UserID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketList(res))
}

// Get returns the full detail view of one ticket.
//
// @Summary      Get ticket detail
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Ticket id"
// @Success      200  {object}  ticketDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/tickets/{id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	ticketID, err := pathID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetDetail(c.Request().Context(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketDetail(detail))
}

// UpdateStatus applies a status mutation to a ticket.
//
// @Summary      Update ticket status
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Ticket id"
// @Param        body  body      updateStatusRequest  true  "Status mutation"
// @Success      200   {object}  updateStatusResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/tickets/{id}/status [put]
func (h *TicketHandler) UpdateStatus(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	ticketID, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateStatusInput{
		TicketID:      ticketID,
		ActorID:       identity.UserID,
		Status:        req.Status,
		Notes:         req.Notes,
		WorkPerformed: req.WorkPerformed,
		PartsUsed:     fromPartsUsed(req.PartsUsed),
	})
	if err != nil {
		return err
	}

	metrics.TicketStatusUpdatesTotal.WithLabelValues(res.NewStatus).Inc()
	return c.JSON(http.StatusOK, updateStatusResponse{
		TicketID:  res.TicketID,
		Status:    res.NewStatus,
		UpdatedAt: res.UpdatedAt,
	})
}

// CaptureLocation records the technician's position for a ticket.
//
// @Summary      Capture location
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                     true  "Ticket id"
// @Param        body  body      captureLocationRequest  true  "Coordinates"
// @Success      200   {object}  locationAckResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/tickets/{id}/location [post]
func (h *TicketHandler) CaptureLocation(c echo.Context) error {
	ticketID, err := pathID(c)
	if err != nil {
		return err
	}

	var req captureLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ack, err := h.service.CaptureLocation(c.Request().Context(), ticketID, req.Latitude, req.Longitude)
	if err != nil {
		return err
	}

	metrics.TicketMediaCapturesTotal.WithLabelValues("location").Inc()
	return c.JSON(http.StatusOK, locationAckResponse{
		TicketID:   ack.TicketID,
		Latitude:   ack.Latitude,
		Longitude:  ack.Longitude,
		CapturedAt: ack.CapturedAt,
	})
}

// AttachPhotos replaces the ticket's photo set.
//
// @Summary      Attach photos
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Ticket id"
// @Param        body  body      attachPhotosRequest  true  "Photo payloads"
// @Success      200   {object}  photosAckResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/tickets/{id}/photos [post]
func (h *TicketHandler) AttachPhotos(c echo.Context) error {
	ticketID, err := pathID(c)
	if err != nil {
		return err
	}

	var req attachPhotosRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ack, err := h.service.AttachPhotos(c.Request().Context(), ticketID, req.Photos)
	if err != nil {
		return err
	}

	metrics.TicketMediaCapturesTotal.WithLabelValues("photos").Inc()
	return c.JSON(http.StatusOK, photosAckResponse{TicketID: ack.TicketID, PhotoURLs: ack.PhotoURLs})
}

// AttachSignature records the customer sign-off.
//
// @Summary      Attach signature
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                     true  "Ticket id"
// @Param        body  body      attachSignatureRequest  true  "Signature payload"
// @Success      200   {object}  signatureAckResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/tickets/{id}/signature [post]
func (h *TicketHandler) AttachSignature(c echo.Context) error {
	ticketID, err := pathID(c)
	if err != nil {
		return err
	}

	var req attachSignatureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ack, err := h.service.AttachSignature(c.Request().Context(), ticketID, req.CustomerName, req.Signature)
	if err != nil {
		return err
	}

	metrics.TicketMediaCapturesTotal.WithLabelValues("signature").Inc()
	return c.JSON(http.StatusOK, signatureAckResponse{
		TicketID:     ack.TicketID,
		SignatureURL: ack.SignatureURL,
		CapturedAt:   ack.CapturedAt,
	})
}

// Schedule returns the caller's appointments for one calendar date.
//
// @Summary      Day schedule
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "Date (YYYY-MM-DD, defaults to today)"
// @Success      200   {object}  scheduleResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/schedule [get]
func (h *TicketHandler) Schedule(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	date := time.Now()
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	entries, err := h.service.DaySchedule(c.Request().Context(), identity.UserID, date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, scheduleResponse{
		Date:    date.Format("2006-01-02"),
		Entries: toScheduleEntries(entries),
	})
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// pageParams parses limit/offset query parameters; the service applies the
// actual clamping.
func pageParams(c echo.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}
