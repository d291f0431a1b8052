package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stianfs/fitness-app/internal/models"
	"github.com/stianfs/fitness-app/internal/services"
)

type stubBookingService struct {
	createResult *models.Booking
	createErr    error
	listResult   []models.Booking
	listErr      error
	getResult    *models.Booking
	getErr       error
	cancelResult *models.Booking
	cancelErr    error

	lastUserID      string
	lastBookingID   string
	lastCreateInput services.CreateBookingInput
}

func (s *stubBookingService) CreateBooking(_ context.Context, userID string, input services.CreateBookingInput) (*models.Booking, error) {
	s.lastUserID = userID
	s.lastCreateInput = input
	return s.createResult, s.createErr
}

func (s *stubBookingService) ListBookings(_ context.Context, userID string) ([]models.Booking, error) {
	s.lastUserID = userID
	return s.listResult, s.listErr
}

func (s *stubBookingService) GetBooking(_ context.Context, userID string, bookingID string) (*models.Booking, error) {
	s.lastUserID = userID
	s.lastBookingID = bookingID
	return s.getResult, s.getErr
}

func (s *stubBookingService) CancelBooking(_ context.Context, userID string, bookingID string) (*models.Booking, error) {
	s.lastUserID = userID
	s.lastBookingID = bookingID
	return s.cancelResult, s.cancelErr
}

func newBookingApp(service *stubBookingService) *fiber.App {
	handler := &BookingHandler{service: service}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "u1")
		c.Locals("role", "member")
		return c.Next()
	})
	app.Post("/api/bookings", handler.CreateBooking)
	app.Get("/api/bookings", handler.ListBookings)
	app.Get("/api/bookings/:id", handler.GetBooking)
	app.Put("/api/bookings/:id/cancel", handler.CancelBooking)
	return app
}

func TestCreateBookingReturnsCreated(t *testing.T) {
	classID := "c1"
	service := &stubBookingService{
		createResult: &models.Booking{
			ID:      "b1",
			UserID:  "u1",
			ClassID: &classID,
			Type:    models.BookingTypeGroupClass,
			Status:  models.BookingStatusConfirmed,
		},
	}
	app := newBookingApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(
		`{"type":"group-class","classId":"c1"}`,
	))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastUserID != "u1" {
		t.Fatalf("expected caller u1, got %q", service.lastUserID)
	}
	if service.lastCreateInput.ClassID == nil || *service.lastCreateInput.ClassID != "c1" {
		t.Fatalf("unexpected input: %+v", service.lastCreateInput)
	}

	var body struct {
		Booking models.Booking `json:"booking"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Booking.Status != models.BookingStatusConfirmed {
		t.Fatalf("expected confirmed booking, got %q", body.Booking.Status)
	}
}

func TestCreateBookingRejectsUnknownType(t *testing.T) {
	service := &stubBookingService{}
	app := newBookingApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(
		`{"type":"sauna"}`,
	))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateBookingReturnsConflictWhenClassFull(t *testing.T) {
	service := &stubBookingService{createErr: services.ErrClassFull}
	app := newBookingApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(
		`{"type":"group-class","classId":"c1"}`,
	))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestGetBookingForbiddenForNonOwner(t *testing.T) {
	service := &stubBookingService{getErr: services.ErrForbidden}
	app := newBookingApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/b2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if service.lastBookingID != "b2" {
		t.Fatalf("expected booking id b2, got %q", service.lastBookingID)
	}
}

func TestGetBookingReturnsNotFound(t *testing.T) {
	service := &stubBookingService{getErr: pgx.ErrNoRows}
	app := newBookingApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/missing", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestCancelBookingRejectsDoubleCancel(t *testing.T) {
	service := &stubBookingService{cancelErr: services.ErrInvalidStateTransition}
	app := newBookingApp(service)

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/b3/cancel", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestListBookingsScopesToCaller(t *testing.T) {
	service := &stubBookingService{
		listResult: []models.Booking{{ID: "b1", UserID: "u1", Type: models.BookingTypePT}},
	}
	app := newBookingApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastUserID != "u1" {
		t.Fatalf("expected list scoped to u1, got %q", service.lastUserID)
	}
}

func TestCreateBookingSurfacesStoreFailure(t *testing.T) {
	service := &stubBookingService{createErr: errors.New("bookings insert: tx deadlock")}
	app := newBookingApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(
		`{"type":"group-class","classId":"c1"}`,
	))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Error != "bookings insert: tx deadlock" {
		t.Fatalf("expected underlying store error in body, got %q", body.Error)
	}
}
