package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yigitentrk/show-booking-system/internal/domain"
)

// maxHoldAttempts bounds retries of the initial row-hold acquisition on
// transient store errors. Once a seat has changed state the flow never
// retries blindly; it compensates and surfaces the error instead.
const maxHoldAttempts = 3

// Service orchestrates the end-to-end booking and cancellation flows on top
// of the SeatLockManager, the ticket store and the outbound event publisher.
type Service struct {
	showRepo    domain.ShowRepository
	userRepo    domain.UserRepository
	ticketRepo  domain.TicketRepository
	seatStore   domain.SeatStore
	locks       *SeatLockManager
	publisher   domain.EventPublisher
	logger      *slog.Logger
	lockTimeout time.Duration
	now         func() time.Time
}

func NewService(
	showRepo domain.ShowRepository,
	userRepo domain.UserRepository,
	ticketRepo domain.TicketRepository,
	seatStore domain.SeatStore,
	locks *SeatLockManager,
	publisher domain.EventPublisher,
	logger *slog.Logger,
	lockTimeout time.Duration,
) *Service {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}

	return &Service{
		showRepo:    showRepo,
		userRepo:    userRepo,
		ticketRepo:  ticketRepo,
		seatStore:   seatStore,
		locks:       locks,
		publisher:   publisher,
		logger:      logger,
		lockTimeout: lockTimeout,
		now:         time.Now,
	}
}

// SeatLockResult describes a successful explicit lock call.
type SeatLockResult struct {
	LockedSeats []string
	TotalPrice  int
	LockedAt    time.Time
	ExpiresAt   time.Time
}

// CancelResult describes the refund granted by a successful cancellation.
type CancelResult struct {
	Tier         domain.RefundTier
	RefundAmount decimal.Decimal
	Message      string
}

// LockSeats places a soft hold on the given seat numbers of a show. The hold
// expires after the configured lock timeout unless the booking is confirmed.
func (s *Service) LockSeats(ctx context.Context, showID, userID int, seatNumbers []string) (*SeatLockResult, error) {
	if _, err := s.lookupShow(ctx, showID); err != nil {
		return nil, err
	}

	user, err := s.lookupUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seatIDs, err := s.resolveSeatIDs(ctx, showID, seatNumbers)
	if err != nil {
		return nil, err
	}

	locked, err := s.locks.LockSeats(ctx, seatIDs, user.ID)
	if err != nil {
		return nil, err
	}

	totalPrice := 0
	for i := range locked {
		totalPrice += locked[i].Price
	}

	lockedAt := *locked[0].LockedAt

	return &SeatLockResult{
		LockedSeats: seatNumbers,
		TotalPrice:  totalPrice,
		LockedAt:    lockedAt,
		ExpiresAt:   lockedAt.Add(s.lockTimeout),
	}, nil
}

// ReleaseSeats voluntarily drops the caller's holds on the given seat
// numbers. Seats not locked by the caller are skipped without error.
func (s *Service) ReleaseSeats(ctx context.Context, showID, userID int, seatNumbers []string) error {
	if _, err := s.lookupShow(ctx, showID); err != nil {
		return err
	}

	seatIDs, err := s.resolveSeatIDs(ctx, showID, seatNumbers)
	if err != nil {
		return err
	}

	return s.locks.ReleaseSeats(ctx, seatIDs, userID)
}

// BookTicket books the given seats end to end: it honors holds the caller
// already has, locks available seats directly otherwise, persists the
// ticket, confirms the seats and emits a booking-confirmed event. Any
// failure after the seats were acquired triggers a compensating release
// before the error is surfaced.
func (s *Service) BookTicket(ctx context.Context, showID, userID int, seatNumbers []string) (*domain.Ticket, error) {
	show, err := s.lookupShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	user, err := s.lookupUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seatIDs, err := s.resolveSeatIDs(ctx, showID, seatNumbers)
	if err != nil {
		s.publishBookingFailed(ctx, user, show, seatNumbers, err)
		return nil, err
	}

	totalPrice, err := s.ensureSeatsHeld(ctx, seatIDs, user.ID)
	if err != nil {
		s.publishBookingFailed(ctx, user, show, seatNumbers, err)
		return nil, err
	}

	ticket := &domain.Ticket{
		ShowID:      show.ID,
		UserID:      user.ID,
		BookedSeats: domain.JoinSeatNumbers(seatNumbers),
		TotalPrice:  totalPrice,
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		s.compensateRelease(ctx, seatIDs, user.ID)
		s.publishBookingFailed(ctx, user, show, seatNumbers, err)
		return nil, fmt.Errorf("creating ticket: %w", err)
	}

	if err := s.locks.ConfirmBooking(ctx, seatIDs, user.ID); err != nil {
		if delErr := s.ticketRepo.Delete(ctx, ticket.ID); delErr != nil {
			s.logger.Error("failed to delete ticket after confirm failure", "ticket_id", ticket.ID, "error", delErr)
		}
		s.compensateRelease(ctx, seatIDs, user.ID)
		s.publishBookingFailed(ctx, user, show, seatNumbers, err)
		return nil, err
	}

	s.logger.Info("booking confirmed", "ticket_id", ticket.ID, "show_id", show.ID, "user_id", user.ID)

	s.publishBookingConfirmed(ctx, ticket, user, show, len(seatIDs))

	return ticket, nil
}

// ensureSeatsHeld acquires the row hold and leaves every requested seat
// locked by userID: holds the caller already has are honored as-is, fully
// available batches are locked in place, anything else fails the booking.
// Transient store errors during acquisition are retried a bounded number of
// times; nothing has changed state when they occur.
func (s *Service) ensureSeatsHeld(ctx context.Context, seatIDs []int, userID int) (int, error) {
	var (
		totalPrice int
		err        error
	)

	for attempt := 1; attempt <= maxHoldAttempts; attempt++ {
		totalPrice = 0

		err = s.seatStore.WithSeatsForUpdate(ctx, seatIDs, func(tx domain.SeatTx, seats []domain.ShowSeat) error {
			if len(seats) != len(seatIDs) {
				return domain.ErrSeatsNotFound
			}

			alreadyHeld := true
			for i := range seats {
				if !seats[i].IsLockedBy(userID) {
					alreadyHeld = false
					break
				}
			}

			if !alreadyHeld {
				for i := range seats {
					if !seats[i].IsAvailable() {
						return fmt.Errorf("%w: seat %s is %s", domain.ErrSeatsUnavailable, seats[i].SeatNo, seats[i].Status)
					}
				}

				lockTime := s.now()
				for i := range seats {
					seats[i].Lock(userID, lockTime)
				}

				if err := tx.UpdateSeats(ctx, seats); err != nil {
					return err
				}
			}

			for i := range seats {
				totalPrice += seats[i].Price
			}

			return nil
		})

		if err == nil || !errors.Is(err, domain.ErrTransientStore) {
			break
		}

		s.logger.Warn("transient store error while acquiring seat hold", "attempt", attempt, "error", err)
	}

	if err != nil {
		return 0, err
	}

	return totalPrice, nil
}

// CancelTicket cancels a confirmed booking, reverts its seats to AVAILABLE
// and deletes the ticket. The refund tier depends on how far before the show
// the cancellation happens.
func (s *Service) CancelTicket(ctx context.Context, ticketID, userID int) (*CancelResult, error) {
	ticket, err := s.ticketRepo.GetById(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if ticket.UserID != userID {
		return nil, domain.ErrNotAuthorized
	}

	show, err := s.lookupShow(ctx, ticket.ShowID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if show.Date().Before(today) {
		return nil, domain.ErrPastShow
	}

	tier := domain.RefundTierFor(show.StartsAt.Sub(now).Hours())
	if tier == domain.RefundRejected {
		return nil, domain.ErrCancellationWindowClosed
	}

	seatIDs, err := s.resolveSeatIDs(ctx, ticket.ShowID, ticket.SeatNumbers())
	if err != nil {
		return nil, err
	}

	// The seat revert and the ticket delete commit together. A ticket must
	// never remain while its seats are already AVAILABLE, or a second booking
	// of the same seats could coexist with it.
	err = s.seatStore.WithSeatsForUpdate(ctx, seatIDs, func(tx domain.SeatTx, seats []domain.ShowSeat) error {
		for i := range seats {
			seats[i].Release()
		}

		if err := tx.UpdateSeats(ctx, seats); err != nil {
			return err
		}

		return tx.DeleteTicket(ctx, ticket.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("cancelling ticket: %w", err)
	}

	s.logger.Info("ticket cancelled", "ticket_id", ticket.ID, "user_id", userID, "refund_percent", tier.Percent())

	return &CancelResult{
		Tier:         tier,
		RefundAmount: tier.Amount(ticket.TotalPrice),
		Message:      tier.Description(),
	}, nil
}

// SeatsByShow returns every seat of a show with its current status.
func (s *Service) SeatsByShow(ctx context.Context, showID int) ([]domain.ShowSeat, error) {
	if _, err := s.lookupShow(ctx, showID); err != nil {
		return nil, err
	}

	return s.seatStore.GetSeatsByShow(ctx, showID)
}

// TicketsByUser returns the booking history of a user.
func (s *Service) TicketsByUser(ctx context.Context, userID int) ([]domain.Ticket, error) {
	if _, err := s.lookupUser(ctx, userID); err != nil {
		return nil, err
	}

	return s.ticketRepo.GetByUserId(ctx, userID)
}

// TicketByID returns a single ticket.
func (s *Service) TicketByID(ctx context.Context, ticketID int) (*domain.Ticket, error) {
	return s.ticketRepo.GetById(ctx, ticketID)
}

func (s *Service) lookupShow(ctx context.Context, showID int) (*domain.Show, error) {
	show, err := s.showRepo.GetById(ctx, showID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrShowNotFound
		}
		return nil, err
	}

	return show, nil
}

func (s *Service) lookupUser(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.GetById(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// resolveSeatIDs maps seat numbers to seat row ids via the show's seat list.
// An empty request is rejected here, not just at the transport edge, so no
// vacuous empty batch ever reaches the lock manager.
func (s *Service) resolveSeatIDs(ctx context.Context, showID int, seatNumbers []string) ([]int, error) {
	if len(seatNumbers) == 0 {
		return nil, domain.ErrSeatsNotFound
	}

	seats, err := s.seatStore.GetSeatsByShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	byNo := make(map[string]int, len(seats))
	for i := range seats {
		byNo[seats[i].SeatNo] = seats[i].ID
	}

	seatIDs := make([]int, 0, len(seatNumbers))
	for _, no := range seatNumbers {
		id, ok := byNo[no]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrSeatsNotFound, no)
		}
		seatIDs = append(seatIDs, id)
	}

	return seatIDs, nil
}

// compensateRelease undoes a partially completed booking so seats never stay
// LOCKED with nothing but the TTL sweep to rescue them.
func (s *Service) compensateRelease(ctx context.Context, seatIDs []int, userID int) {
	if err := s.locks.ReleaseSeats(ctx, seatIDs, userID); err != nil {
		s.logger.Error("compensating seat release failed", "user_id", userID, "error", err)
	}
}

func (s *Service) publishBookingConfirmed(ctx context.Context, ticket *domain.Ticket, user *domain.User, show *domain.Show, totalSeats int) {
	reference := "BK-" + strings.ToUpper(uuid.NewString()[:8])

	event := domain.BookingConfirmedEvent{
		BookingID:        ticket.ID,
		BookingReference: reference,
		UserID:           user.ID,
		UserEmail:        user.Email,
		UserName:         user.Name,
		UserMobile:       user.Mobile,
		ShowID:           show.ID,
		EventName:        show.EventName,
		TheaterName:      show.TheaterName,
		ShowTime:         show.StartsAt,
		BookedSeats:      ticket.BookedSeats,
		TotalSeats:       totalSeats,
		TotalPrice:       ticket.TotalPrice,
		BookingTime:      s.now(),
	}

	if err := s.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		s.logger.Error("failed to publish booking confirmed event", "ticket_id", ticket.ID, "error", err)
	}
}

func (s *Service) publishBookingFailed(ctx context.Context, user *domain.User, show *domain.Show, seatNumbers []string, cause error) {
	event := domain.BookingFailedEvent{
		UserID:         user.ID,
		UserEmail:      user.Email,
		ShowID:         show.ID,
		EventName:      show.EventName,
		RequestedSeats: domain.JoinSeatNumbers(seatNumbers),
		FailureReason:  cause.Error(),
		FailureTime:    s.now(),
	}

	if err := s.publisher.PublishBookingFailed(ctx, event); err != nil {
		s.logger.Error("failed to publish booking failed event", "user_id", user.ID, "error", err)
	}
}
