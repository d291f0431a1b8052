package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stianfs/fitness-app/internal/models"
	"github.com/stianfs/fitness-app/internal/services"
)

type bookingApplicationService interface {
	CreateBooking(ctx context.Context, userID string, input services.CreateBookingInput) (*models.Booking, error)
	ListBookings(ctx context.Context, userID string) ([]models.Booking, error)
	GetBooking(ctx context.Context, userID string, bookingID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, userID string, bookingID string) (*models.Booking, error)
}

type BookingHandler struct {
	service bookingApplicationService
}

func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type createBookingRequest struct {
	Type      string  `json:"type"`
	ClassID   *string `json:"classId"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Notes     *string `json:"notes"`
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Type != models.BookingTypePT && req.Type != models.BookingTypeGroupClass {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "type must be pt or group-class"})
	}

	var date time.Time
	if req.Type == models.BookingTypePT {
		date, err = time.Parse("2006-01-02", strings.TrimSpace(req.Date))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be on the form YYYY-MM-DD"})
		}
	}
	if req.Notes != nil && strings.TrimSpace(*req.Notes) == "" {
		req.Notes = nil
	}

	booking, err := h.service.CreateBooking(c.Context(), userID, services.CreateBookingInput{
		Type:      req.Type,
		ClassID:   req.ClassID,
		Date:      date,
		StartTime: strings.TrimSpace(req.StartTime),
		EndTime:   strings.TrimSpace(req.EndTime),
		Notes:     req.Notes,
	})
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"booking": booking})
}

func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	bookings, err := h.service.ListBookings(c.Context(), userID)
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.JSON(fiber.Map{"bookings": bookings})
}

func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	bookingID := strings.TrimSpace(c.Params("id"))
	if bookingID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := h.service.GetBooking(c.Context(), userID, bookingID)
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.JSON(fiber.Map{"booking": booking})
}

func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	bookingID := strings.TrimSpace(c.Params("id"))
	if bookingID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := h.service.CancelBooking(c.Context(), userID, bookingID)
	if err != nil {
		return mapBookingError(c, err)
	}

	return c.JSON(fiber.Map{"booking": booking})
}

func mapBookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrClassFull):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Class is fully booked"})
	case errors.Is(err, services.ErrClassNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	case errors.Is(err, services.ErrInvalidStateTransition):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	default:
		return internalError(c, err)
	}
}
