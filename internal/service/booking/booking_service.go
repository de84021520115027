package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nived-gurung/trekbooking/internal/domain"
	"github.com/nived-gurung/trekbooking/internal/kafka"
	"github.com/nived-gurung/trekbooking/internal/repository"
)

type BookingUseCase interface {
	CreateTrekBooking(ctx context.Context, input CreateTrekBookingInput) (*domain.TrekBooking, error)
	CreateTravelBooking(ctx context.Context, input CreateTravelBookingInput) (*domain.TravelBooking, error)
	CancelTrekBooking(ctx context.Context, requesterID, bookingID int64) (*domain.TrekBooking, error)
	CancelTravelBooking(ctx context.Context, requesterID, bookingID int64) (*domain.TravelBooking, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.TrekBooking, []domain.TravelBooking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateTrekBookingInput struct {
	UserID          int64
	TrekID          int64
	TrekDate        time.Time
	People          int
	SpecialRequests string
}

type CreateTravelBookingInput struct {
	UserID     int64
	PackageID  int64
	TravelDate time.Time
	People     int
}

type BookingService struct {
	bookings repository.BookingRepository
	catalog  repository.CatalogRepository
	producer Producer
	topic    string
	log      zerolog.Logger
}

type BookingServiceOption func(*BookingService)

func WithLogger(log zerolog.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	catalog repository.CatalogRepository,
	producer Producer,
	topic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings: bookings,
		catalog:  catalog,
		producer: producer,
		topic:    topic,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateTrekBooking prices the booking once at creation: the total is the
// trek price times the party size and is never recomputed afterwards.
func (s *BookingService) CreateTrekBooking(ctx context.Context, input CreateTrekBookingInput) (*domain.TrekBooking, error) {
	if input.People < 1 {
		return nil, domain.ErrInvalidPartySize
	}
	if input.TrekDate.IsZero() {
		return nil, fmt.Errorf("%w: trek date is required", domain.ErrValidation)
	}

	trek, err := s.catalog.GetTrekByID(ctx, input.TrekID)
	if err != nil {
		return nil, err
	}

	booking := &domain.TrekBooking{
		Reference:       uuid.NewString(),
		UserID:          input.UserID,
		TrekID:          trek.ID,
		TrekDate:        input.TrekDate,
		People:          input.People,
		TotalCents:      trek.PriceCents * int64(input.People),
		SpecialRequests: input.SpecialRequests,
	}
	if err := s.bookings.CreateTrekBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.publishTrek(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) CreateTravelBooking(ctx context.Context, input CreateTravelBookingInput) (*domain.TravelBooking, error) {
	if input.People < 1 {
		return nil, domain.ErrInvalidPartySize
	}
	if input.TravelDate.IsZero() {
		return nil, fmt.Errorf("%w: travel date is required", domain.ErrValidation)
	}

	pkg, err := s.catalog.GetPackageByID(ctx, input.PackageID)
	if err != nil {
		return nil, err
	}

	booking := &domain.TravelBooking{
		Reference:  uuid.NewString(),
		UserID:     input.UserID,
		PackageID:  pkg.ID,
		TravelDate: input.TravelDate,
		People:     input.People,
		TotalCents: pkg.PriceCents * int64(input.People),
	}
	if err := s.bookings.CreateTravelBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.publishTravel(ctx, "booking_created", booking)
	return booking, nil
}

// CancelTrekBooking transitions a pending booking to cancelled. Only the
// owning user may cancel; non-owners get ErrUnauthorized with no booking
// details. Cancelling a booking already in a terminal state returns the
// stored record unchanged.
func (s *BookingService) CancelTrekBooking(ctx context.Context, requesterID, bookingID int64) (*domain.TrekBooking, error) {
	current, err := s.bookings.GetTrekBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.UserID != requesterID {
		return nil, domain.ErrUnauthorized
	}
	if current.Status.Terminal() {
		return current, nil
	}

	updated, err := s.bookings.UpdateTrekBookingStatus(ctx, bookingID, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	s.publishTrek(ctx, "booking_cancelled", updated)
	return updated, nil
}

func (s *BookingService) CancelTravelBooking(ctx context.Context, requesterID, bookingID int64) (*domain.TravelBooking, error) {
	current, err := s.bookings.GetTravelBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.UserID != requesterID {
		return nil, domain.ErrUnauthorized
	}
	if current.Status.Terminal() {
		return current, nil
	}

	updated, err := s.bookings.UpdateTravelBookingStatus(ctx, bookingID, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	s.publishTravel(ctx, "booking_cancelled", updated)
	return updated, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID int64) ([]domain.TrekBooking, []domain.TravelBooking, error) {
	trekBookings, err := s.bookings.ListTrekBookingsByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	travelBookings, err := s.bookings.ListTravelBookingsByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return trekBookings, travelBookings, nil
}

func (s *BookingService) publishTrek(ctx context.Context, eventType string, b *domain.TrekBooking) {
	s.publish(ctx, kafka.BookingEvent{
		Type:       eventType,
		Reference:  b.Reference,
		Kind:       "trek",
		BookingID:  b.ID,
		UserID:     b.UserID,
		ItemID:     b.TrekID,
		People:     b.People,
		TotalCents: b.TotalCents,
		Status:     string(b.Status),
		OccurredAt: time.Now().UTC(),
	})
}

func (s *BookingService) publishTravel(ctx context.Context, eventType string, b *domain.TravelBooking) {
	s.publish(ctx, kafka.BookingEvent{
		Type:       eventType,
		Reference:  b.Reference,
		Kind:       "travel",
		BookingID:  b.ID,
		UserID:     b.UserID,
		ItemID:     b.PackageID,
		People:     b.People,
		TotalCents: b.TotalCents,
		Status:     string(b.Status),
		OccurredAt: time.Now().UTC(),
	})
}

// Events are best-effort: a publish failure never fails the booking
// operation that already committed.
func (s *BookingService) publish(ctx context.Context, event kafka.BookingEvent) {
	if s.producer == nil || s.topic == "" {
		return
	}
	if err := s.producer.Publish(ctx, s.topic, event.Reference, event); err != nil {
		s.log.Warn().Err(err).Str("type", event.Type).Str("reference", event.Reference).Msg("failed to publish booking event")
	}
}

var _ BookingUseCase = (*BookingService)(nil)
