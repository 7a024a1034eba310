package services

import (
	"context"
	"math"
	"time"

	"github.com/bikebay/server/internal/apperr"
	"github.com/bikebay/server/internal/models"
	"github.com/bikebay/server/internal/statemachine"
	"github.com/google/uuid"
)

// BookingService is the availability ledger: it owns the booking lifecycle
// and the bike availability flag that the lifecycle toggles.
type BookingService struct {
	bookingRepo models.BookingRepo
	bikeRepo    models.BikeRepo
}

func NewBookingService(bookingRepo models.BookingRepo, bikeRepo models.BikeRepo) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		bikeRepo:    bikeRepo,
	}
}

// RentalDays bills partial days as full days: exactly 24h is one day, 25h is two.
func RentalDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// CreateBooking reserves the bike and records the booking. The reservation
// is a single conditional update on the availability flag, so two requests
// racing for the same bike cannot both succeed.
func (bs *BookingService) CreateBooking(ctx context.Context, actor models.Actor, bikeID uuid.UUID, start, end time.Time) (*models.Booking, error) {
	if actor.ID == uuid.Nil {
		return nil, apperr.New(apperr.CodeUnauthenticated, "authentication required")
	}
	if bikeID == uuid.Nil {
		return nil, apperr.New(apperr.CodeInvalid, "bike ID is required")
	}
	if !end.After(start) {
		return nil, apperr.New(apperr.CodeInvalid, "end date must be after start date")
	}

	bike, err := bs.bikeRepo.GetBikeByID(ctx, bikeID)
	if err != nil {
		return nil, err
	}

	overlap, err := bs.bookingRepo.HasActiveOverlap(ctx, bikeID, start, end)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, apperr.New(apperr.CodeConflict, "bike is already booked for this period")
	}

	days := RentalDays(start, end)
	totalPrice := bike.Price * float64(days)

	// Claim the availability flag before inserting. Whoever loses the race
	// gets a Conflict here without any partial writes.
	if err := bs.bikeRepo.ReserveBike(ctx, bikeID); err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &models.Booking{
		ID:         uuid.New(),
		RenterID:   actor.ID,
		BikeID:     bikeID,
		StartDate:  start,
		EndDate:    end,
		Status:     models.BookingStatusPending,
		TotalPrice: totalPrice,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := bs.bookingRepo.CreateBooking(ctx, booking)
	if err != nil {
		// Give the flag back so a failed insert does not strand the bike.
		_ = bs.bikeRepo.ReleaseBike(ctx, bikeID)
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create booking", err)
	}

	return created, nil
}

// TransitionStatus moves a booking through the pending/confirmed/cancelled
// state machine. Permitted to the renter, the bike's hoster, or an admin.
func (bs *BookingService) TransitionStatus(ctx context.Context, actor models.Actor, bookingID uuid.UUID, newStatus models.BookingStatus) (*models.Booking, error) {
	if !newStatus.Valid() {
		return nil, apperr.Newf(apperr.CodeInvalid, "unknown booking status: %s", newStatus)
	}

	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	bike, err := bs.bikeRepo.GetBikeByID(ctx, booking.BikeID)
	if err != nil {
		return nil, err
	}

	isRenter := actor.ID == booking.RenterID
	isBikeHoster := actor.ID == bike.HosterID
	if !isRenter && !isBikeHoster && !actor.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "not authorized to change this booking")
	}

	if err := statemachine.CanTransition(booking.Status, newStatus); err != nil {
		return nil, err
	}

	updated, err := bs.bookingRepo.UpdateBookingStatus(ctx, bookingID, newStatus)
	if err != nil {
		return nil, err
	}

	if newStatus == models.BookingStatusCancelled {
		if err := bs.bikeRepo.ReleaseBike(ctx, booking.BikeID); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// CancelBooking is a status-only cancellation: the record is kept for the
// admin listing and the bike is released. Only the renter or an admin may
// cancel; the hoster cannot.
func (bs *BookingService) CancelBooking(ctx context.Context, actor models.Actor, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if actor.ID != booking.RenterID && !actor.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "not authorized to cancel this booking")
	}

	if err := statemachine.CanTransition(booking.Status, models.BookingStatusCancelled); err != nil {
		return nil, err
	}

	updated, err := bs.bookingRepo.UpdateBookingStatus(ctx, bookingID, models.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}

	if err := bs.bikeRepo.ReleaseBike(ctx, booking.BikeID); err != nil {
		return nil, err
	}

	return updated, nil
}

func (bs *BookingService) ListMyBookings(ctx context.Context, actor models.Actor) ([]*models.BookingView, error) {
	if actor.ID == uuid.Nil {
		return nil, apperr.New(apperr.CodeUnauthenticated, "authentication required")
	}
	return bs.bookingRepo.ListBookingsByRenter(ctx, actor.ID)
}

// ListHosterBookings returns bookings against the actor's own bikes.
func (bs *BookingService) ListHosterBookings(ctx context.Context, actor models.Actor) ([]*models.BookingView, error) {
	if actor.ID == uuid.Nil {
		return nil, apperr.New(apperr.CodeUnauthenticated, "authentication required")
	}

	bikeIDs, err := bs.bikeRepo.ListBikeIDsByHoster(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	return bs.bookingRepo.ListBookingsByBikes(ctx, bikeIDs)
}

func (bs *BookingService) ListAllBookings(ctx context.Context, actor models.Actor) ([]*models.BookingView, error) {
	if !actor.IsAdmin() {
		return nil, apperr.New(apperr.CodeForbidden, "admin access required")
	}
	return bs.bookingRepo.ListAllBookings(ctx)
}
