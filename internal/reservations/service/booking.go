package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	reserrors "innkeep/internal/reservations/errors"
	"innkeep/internal/reservations/repository"
	"innkeep/internal/reservations/validator"
	"innkeep/pkg/booking"
	"innkeep/pkg/config"
	mongotx "innkeep/pkg/db/mongo"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/events"
	"innkeep/pkg/model"
	"innkeep/pkg/sanitizer"
)

const ServiceName = "reservations"

type ReservationService interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error)
	ListByRoom(ctx context.Context, roomID string, limit int, offset int64) ([]*model.Booking, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error)
	Cancel(ctx context.Context, id, actingUserID string) error
	Confirm(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type reservationService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	rooms     repository.RoomCatalog
	validator *validator.BookingValidator
	producer  *events.Producer
	clock     booking.Clock
	cfg       *config.Config
}

func NewReservationService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	rooms repository.RoomCatalog,
	bookingValidator *validator.BookingValidator,
	producer *events.Producer,
	clock booking.Clock,
	cfg *config.Config,
) ReservationService {
	if clock == nil {
		clock = booking.SystemClock()
	}
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		rooms:     rooms,
		validator: bookingValidator,
		producer:  producer,
		clock:     clock,
		cfg:       cfg,
	}
}

func (s *reservationService) Create(ctx context.Context, b *model.Booking) error {
	s.applyDefaults(b)
	s.sanitize(b)

	if err := s.validateShape(b); err != nil {
		return err
	}
	if err := s.validateDates(b.CheckIn, b.CheckOut); err != nil {
		return err
	}

	room, err := s.lookupRoom(ctx, b.RoomID)
	if err != nil {
		return err
	}

	// The read-check-write sequence below must not interleave with another
	// writer on the same room.
	lockID, err := s.acquireRoomLock(ctx, b.RoomID)
	if err != nil {
		return err
	}
	defer s.releaseRoomLock(ctx, lockID)

	err = s.executeWithRetry(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindActiveByRoom(txCtx, b.RoomID)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}
		if err := booking.ValidateNoOverlap(existing, b.CheckIn, b.CheckOut, ""); err != nil {
			return s.mapOverlapError(err)
		}

		b.TotalPrice = booking.Price(room.NightlyRate, b.CheckIn, b.CheckOut)

		if err := s.repo.Create(txCtx, b); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "room_id", b.RoomID, "error", err)
		return err
	}

	s.cfg.Log.Info("Booking created",
		"id", b.ID,
		"room_id", b.RoomID,
		"user_id", b.UserID,
		"check_in", b.CheckIn,
		"check_out", b.CheckOut,
		"total_price", b.TotalPrice,
	)
	s.publish(ctx, events.TypeReservationCreated, b)
	return nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}
	return b, nil
}

func (s *reservationService) ListByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if userID == "" {
		return nil, 0, apperrors.InvalidInput("User ID cannot be empty")
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByUser(ctx, userID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings by user", "user_id", userID, "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindByUser(ctx, userID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings by user", "user_id", userID, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return bookings, count, nil
}

func (s *reservationService) ListByRoom(ctx context.Context, roomID string, limit int, offset int64) ([]*model.Booking, error) {
	if roomID == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	bookings, err := s.repo.FindByRoom(ctx, roomID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by room", "room_id", roomID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *reservationService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}
	if existing.IsDeleted {
		return nil, apperrors.NotFoundWithID("Booking", id)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()}).
			WithReason(apperrors.ReasonInvalidGuestData)
	}

	merged := s.mergeUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validateShape(merged); err != nil {
		return nil, err
	}

	if updates.Status != "" && model.BookingStatus(updates.Status) != existing.Status {
		if _, err := booking.Transition(existing.Status, model.BookingStatus(updates.Status)); err != nil {
			return nil, s.mapTransitionError(err)
		}
	}

	if !updates.ChangesDates() {
		if err := s.repo.Update(ctx, id, merged, existing.Status); err != nil {
			return nil, s.mapRepoError(err, id)
		}
		s.publish(ctx, events.TypeReservationUpdated, merged)
		return merged, nil
	}

	// Dates or room moved: the full validation pipeline runs again, with
	// the booking's own id excluded from the overlap scan.
	if err := s.validateDates(merged.CheckIn, merged.CheckOut); err != nil {
		return nil, err
	}
	room, err := s.lookupRoom(ctx, merged.RoomID)
	if err != nil {
		return nil, err
	}

	lockID, err := s.acquireRoomLock(ctx, merged.RoomID)
	if err != nil {
		return nil, err
	}
	defer s.releaseRoomLock(ctx, lockID)

	err = s.executeWithRetry(ctx, func(txCtx context.Context) error {
		active, err := s.repo.FindActiveByRoom(txCtx, merged.RoomID)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}
		if err := booking.ValidateNoOverlap(active, merged.CheckIn, merged.CheckOut, id); err != nil {
			return s.mapOverlapError(err)
		}

		merged.TotalPrice = booking.Price(room.NightlyRate, merged.CheckIn, merged.CheckOut)

		if err := s.repo.Update(txCtx, id, merged, existing.Status); err != nil {
			return s.mapRepoError(err, id)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking updated", "id", id, "room_id", merged.RoomID)
	s.publish(ctx, events.TypeReservationUpdated, merged)
	return merged, nil
}

func (s *reservationService) Cancel(ctx context.Context, id, actingUserID string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if actingUserID == "" {
		return apperrors.InvalidInput("Acting user ID cannot be empty")
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.mapRepoError(err, id)
	}
	if b.IsDeleted {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if b.UserID != actingUserID {
		return apperrors.Forbidden("Only the booking owner may cancel it")
	}

	if err := s.transition(ctx, b, model.StatusCancelled); err != nil {
		return err
	}

	s.cfg.Log.Info("Booking cancelled", "id", id, "user_id", actingUserID)
	b.Status = model.StatusCancelled
	s.publish(ctx, events.TypeReservationCancelled, b)
	return nil
}

func (s *reservationService) Confirm(ctx context.Context, id string) error {
	b, err := s.adminTransition(ctx, id, model.StatusConfirmed)
	if err != nil {
		return err
	}
	s.publish(ctx, events.TypeReservationConfirmed, b)
	return nil
}

func (s *reservationService) Complete(ctx context.Context, id string) error {
	b, err := s.adminTransition(ctx, id, model.StatusCompleted)
	if err != nil {
		return err
	}
	s.publish(ctx, events.TypeReservationCompleted, b)
	return nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return s.mapRepoError(err, id)
	}
	s.cfg.Log.Info("Booking soft-deleted", "id", id)
	return nil
}

// --- Helpers ---

func (s *reservationService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.StatusPending
	}
	b.IsDeleted = false
}

func (s *reservationService) sanitize(b *model.Booking) {
	b.GuestName = sanitizer.NormalizeGuestName(b.GuestName)
	b.GuestEmail = sanitizer.NormalizeEmail(b.GuestEmail)
	if normalized := sanitizer.NormalizePhone(b.GuestPhone); normalized != "" {
		b.GuestPhone = normalized
	}
	b.SpecialRequests = sanitizer.TrimAndNormalize(b.SpecialRequests)
}

func (s *reservationService) validateShape(b *model.Booking) error {
	if err := s.validator.Validate(b); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()}).
			WithReason(apperrors.ReasonInvalidGuestData)
	}
	return nil
}

func (s *reservationService) validateDates(checkIn, checkOut time.Time) error {
	err := booking.ValidateDates(s.clock, checkIn, checkOut, s.cfg.MaxStayDays)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, booking.ErrCheckoutBeforeCheckin):
		return apperrors.Validation("Check-out must be after check-in", nil).
			WithReason(apperrors.ReasonInvalidDateRange)
	case errors.Is(err, booking.ErrCheckinInPast):
		return apperrors.Validation("Check-in cannot be in the past", nil).
			WithReason(apperrors.ReasonPastCheckIn)
	case errors.Is(err, booking.ErrStayTooLong):
		return apperrors.Validation(
			fmt.Sprintf("Stay cannot exceed %d days", s.cfg.MaxStayDays), nil).
			WithReason(apperrors.ReasonStayTooLong)
	default:
		return apperrors.Internal("Date validation failed", err)
	}
}

func (s *reservationService) lookupRoom(ctx context.Context, roomID string) (*model.Room, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, reserrors.ErrRoomNotFound) {
			return nil, apperrors.NotFoundWithID("Room", roomID).
				WithReason(apperrors.ReasonRoomNotFound)
		}
		return nil, apperrors.Internal("Failed to look up room", err)
	}
	if room.NightlyRate <= 0 {
		return nil, apperrors.Internal("Room has a non-positive nightly rate",
			fmt.Errorf("room %s: rate %v", roomID, room.NightlyRate))
	}
	return room, nil
}

func (s *reservationService) acquireRoomLock(ctx context.Context, roomID string) (string, error) {
	lockID, err := s.lockRepo.Acquire(ctx, roomID, s.cfg.BookingLockTTL)
	if err != nil {
		if errors.Is(err, reserrors.ErrLockHeld) {
			return "", apperrors.Conflict("This room is currently being booked by another request. Please try again.").
				WithReason(apperrors.ReasonOverlapConflict)
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}
	return lockID, nil
}

func (s *reservationService) releaseRoomLock(ctx context.Context, lockID string) {
	if err := s.lockRepo.Release(ctx, lockID); err != nil {
		s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", err)
	}
}

// executeWithRetry retries the transaction on serialization conflicts only;
// business-rule failures surface immediately and are never retried.
func (s *reservationService) executeWithRetry(ctx context.Context, fn mongotx.TransactionFunc) error {
	var err error
	for attempt := 0; attempt <= s.cfg.TxMaxRetries; attempt++ {
		err = s.repo.ExecuteTransaction(ctx, fn)
		if err == nil || apperrors.IsAppError(err) {
			return err
		}
		if !mongotx.IsTransient(err) {
			return apperrors.Internal("Booking write failed", err)
		}
		s.cfg.Log.Warn("Transient transaction failure, retrying",
			"attempt", attempt+1,
			"max_retries", s.cfg.TxMaxRetries,
			"error", err,
		)
	}
	return apperrors.Unavailable("Booking store").WithReason(apperrors.ReasonTransientFailure)
}

func (s *reservationService) mergeUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
	merged := *existing

	if updates.RoomID != "" {
		merged.RoomID = updates.RoomID
	}
	if updates.CheckIn != nil {
		merged.CheckIn = *updates.CheckIn
	}
	if updates.CheckOut != nil {
		merged.CheckOut = *updates.CheckOut
	}
	if updates.GuestName != "" {
		merged.GuestName = updates.GuestName
	}
	if updates.GuestEmail != "" {
		merged.GuestEmail = updates.GuestEmail
	}
	if updates.GuestPhone != "" {
		merged.GuestPhone = updates.GuestPhone
	}
	if updates.SpecialRequests != nil {
		merged.SpecialRequests = *updates.SpecialRequests
	}
	if updates.Status != "" {
		merged.Status = model.BookingStatus(updates.Status)
	}

	return &merged
}

// transition applies the lifecycle state machine and writes the new status
// optimistically: a concurrent transition makes the write fail stale.
func (s *reservationService) transition(ctx context.Context, b *model.Booking, to model.BookingStatus) error {
	next, err := booking.Transition(b.Status, to)
	if err != nil {
		return s.mapTransitionError(err)
	}

	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status, next); err != nil {
		if errors.Is(err, reserrors.ErrStaleStatus) {
			return apperrors.Conflict("Booking status changed concurrently, please retry").
				WithReason(apperrors.ReasonInvalidTransition)
		}
		return s.mapRepoError(err, b.ID)
	}
	return nil
}

func (s *reservationService) adminTransition(ctx context.Context, id string, to model.BookingStatus) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}
	if b.IsDeleted {
		return nil, apperrors.NotFoundWithID("Booking", id)
	}

	if err := s.transition(ctx, b, to); err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Booking status changed", "id", id, "from", b.Status, "to", to)
	b.Status = to
	return b, nil
}

func (s *reservationService) mapOverlapError(err error) error {
	var overlapErr *booking.OverlapError
	if errors.As(err, &overlapErr) {
		return apperrors.Conflict(fmt.Sprintf(
			"Room already booked %s - %s",
			overlapErr.Start.Format("Jan 2"),
			overlapErr.End.Format("Jan 2"),
		)).WithDetails(map[string]any{
			"reason":         apperrors.ReasonOverlapConflict,
			"conflict_start": overlapErr.Start,
			"conflict_end":   overlapErr.End,
		})
	}
	return apperrors.Internal("Overlap check failed", err)
}

func (s *reservationService) mapTransitionError(err error) error {
	var transitionErr *booking.TransitionError
	if errors.As(err, &transitionErr) {
		return apperrors.Conflict(transitionErr.Error()).
			WithDetails(map[string]any{
				"reason": apperrors.ReasonInvalidTransition,
				"from":   string(transitionErr.From),
				"to":     string(transitionErr.To),
			})
	}
	return apperrors.Internal("Status transition failed", err)
}

func (s *reservationService) mapRepoError(err error, id string) error {
	switch {
	case errors.Is(err, reserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, reserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	case errors.Is(err, reserrors.ErrStaleStatus):
		return apperrors.Conflict("Booking status changed concurrently, please retry").
			WithReason(apperrors.ReasonInvalidTransition)
	default:
		return apperrors.Internal("Booking store operation failed", err)
	}
}

func (s *reservationService) publish(ctx context.Context, eventType string, b *model.Booking) {
	if s.producer == nil {
		return
	}

	ev, err := events.NewEvent(eventType, b.RoomID, ServiceName, b)
	if err != nil {
		s.cfg.Log.Warn("Failed to encode reservation event", "type", eventType, "error", err)
		return
	}
	if err := s.producer.Publish(ctx, ev); err != nil {
		s.cfg.Log.Warn("Failed to publish reservation event", "type", eventType, "error", err)
	}
}
