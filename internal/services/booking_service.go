package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stianfs/fitness-app/internal/models"
	"github.com/stianfs/fitness-app/internal/repository"
)

var (
	ErrForbidden              = errors.New("forbidden")
	ErrClassFull              = errors.New("class is fully booked")
	ErrClassNotFound          = errors.New("class not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidStateTransition = errors.New("invalid state transition")
)

type BookingService struct {
	db          *pgxpool.Pool
	bookingRepo *repository.BookingRepository
	classRepo   *repository.ClassRepository
}

func NewBookingService(
	db *pgxpool.Pool,
	bookingRepo *repository.BookingRepository,
	classRepo *repository.ClassRepository,
) *BookingService {
	return &BookingService{
		db:          db,
		bookingRepo: bookingRepo,
		classRepo:   classRepo,
	}
}

type CreateBookingInput struct {
	Type      string
	ClassID   *string
	Date      time.Time
	StartTime string
	EndTime   string
	Notes     *string
}

// CreateBooking books a PT slot or a seat in a group class for userID. Class
// bookings take the class schedule, check capacity under a row lock and bump
// the booked count in the same transaction, so a full class can never
// oversell.
func (s *BookingService) CreateBooking(ctx context.Context, userID string, input CreateBookingInput) (*models.Booking, error) {
	switch input.Type {
	case models.BookingTypePT:
		if strings.TrimSpace(input.StartTime) == "" || strings.TrimSpace(input.EndTime) == "" {
			return nil, ErrInvalidInput
		}
		return s.bookingRepo.Create(ctx, repository.CreateBookingInput{
			UserID:    userID,
			Type:      models.BookingTypePT,
			Date:      input.Date,
			StartTime: input.StartTime,
			EndTime:   input.EndTime,
			Status:    models.BookingStatusPending,
			Notes:     input.Notes,
		})
	case models.BookingTypeGroupClass:
		if input.ClassID == nil || strings.TrimSpace(*input.ClassID) == "" {
			return nil, ErrInvalidInput
		}
	default:
		return nil, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txClassRepo := repository.NewClassRepository(tx)
	txBookingRepo := repository.NewBookingRepository(tx)

	class, err := txClassRepo.GetByIDForUpdate(ctx, *input.ClassID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	if class.BookedCount >= class.Capacity {
		return nil, ErrClassFull
	}

	booking, err := txBookingRepo.Create(ctx, repository.CreateBookingInput{
		UserID:    userID,
		ClassID:   &class.ID,
		Type:      models.BookingTypeGroupClass,
		Date:      class.Date,
		StartTime: class.StartTime,
		EndTime:   class.EndTime,
		Status:    models.BookingStatusConfirmed,
		Notes:     input.Notes,
	})
	if err != nil {
		return nil, err
	}

	if err := txClassRepo.AdjustBookedCount(ctx, class.ID, 1); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

func (s *BookingService) GetBooking(ctx context.Context, userID string, bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}
	return booking, nil
}

// CancelBooking flips an active booking to cancelled and releases the class
// seat it held. Cancelling a cancelled or completed booking is rejected.
func (s *BookingService) CancelBooking(ctx context.Context, userID string, bookingID string) (*models.Booking, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txBookingRepo := repository.NewBookingRepository(tx)
	txClassRepo := repository.NewClassRepository(tx)

	booking, err := txBookingRepo.GetByIDForUpdate(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrForbidden
	}
	if booking.Status == models.BookingStatusCancelled || booking.Status == models.BookingStatusCompleted {
		return nil, ErrInvalidStateTransition
	}

	cancelled, err := txBookingRepo.UpdateStatus(ctx, bookingID, models.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}

	if booking.ClassID != nil {
		if err := txClassRepo.AdjustBookedCount(ctx, *booking.ClassID, -1); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return cancelled, nil
}
