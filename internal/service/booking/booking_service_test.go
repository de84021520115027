package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nived-gurung/trekbooking/internal/domain"
	"github.com/nived-gurung/trekbooking/internal/repository"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateTrekBooking(ctx context.Context, booking *domain.TrekBooking) error {
	args := m.Called(ctx, booking)
	if args.Error(0) == nil {
		booking.ID = 1
		booking.Status = domain.BookingStatusPending
		booking.CreatedAt = time.Now()
		booking.UpdatedAt = booking.CreatedAt
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetTrekBooking(ctx context.Context, id int64) (*domain.TrekBooking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrekBooking), args.Error(1)
}

func (m *MockBookingRepository) UpdateTrekBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.TrekBooking, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrekBooking), args.Error(1)
}

func (m *MockBookingRepository) ListTrekBookingsByUser(ctx context.Context, userID int64) ([]domain.TrekBooking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.TrekBooking), args.Error(1)
}

func (m *MockBookingRepository) CreateTravelBooking(ctx context.Context, booking *domain.TravelBooking) error {
	args := m.Called(ctx, booking)
	if args.Error(0) == nil {
		booking.ID = 1
		booking.Status = domain.BookingStatusPending
		booking.CreatedAt = time.Now()
		booking.UpdatedAt = booking.CreatedAt
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetTravelBooking(ctx context.Context, id int64) (*domain.TravelBooking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TravelBooking), args.Error(1)
}

func (m *MockBookingRepository) UpdateTravelBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.TravelBooking, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TravelBooking), args.Error(1)
}

func (m *MockBookingRepository) ListTravelBookingsByUser(ctx context.Context, userID int64) ([]domain.TravelBooking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.TravelBooking), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListTreks(ctx context.Context, filter repository.TrekFilter) ([]domain.Trek, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Trek), args.Error(1)
}

func (m *MockCatalogRepository) FeaturedTreks(ctx context.Context, limit int) ([]domain.Trek, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Trek), args.Error(1)
}

func (m *MockCatalogRepository) GetTrekByID(ctx context.Context, id int64) (*domain.Trek, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trek), args.Error(1)
}

func (m *MockCatalogRepository) GetTrekBySlug(ctx context.Context, slug string) (*domain.Trek, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trek), args.Error(1)
}

func (m *MockCatalogRepository) ListPackages(ctx context.Context, filter repository.PackageFilter) ([]domain.TravelPackage, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.TravelPackage), args.Error(1)
}

func (m *MockCatalogRepository) GetPackageByID(ctx context.Context, id int64) (*domain.TravelPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TravelPackage), args.Error(1)
}

func (m *MockCatalogRepository) GetPackageBySlug(ctx context.Context, slug string) (*domain.TravelPackage, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TravelPackage), args.Error(1)
}

func (m *MockCatalogRepository) Seed(ctx context.Context, treks []domain.Trek, packages []domain.TravelPackage) (int, error) {
	args := m.Called(ctx, treks, packages)
	return args.Int(0), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func everestTrek() *domain.Trek {
	return &domain.Trek{
		ID:         1,
		Name:       "Everest Base Camp Trek",
		Slug:       "everest-base-camp",
		Region:     "Everest",
		Duration:   14,
		Difficulty: domain.DifficultyModerate,
		PriceCents: 150000,
	}
}

func TestBookingService_CreateTrekBooking_Success(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockCatalog := &MockCatalogRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookings, mockCatalog, mockProducer, "booking-events")

	ctx := context.Background()
	trekDate := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	mockCatalog.On("GetTrekByID", ctx, int64(1)).Return(everestTrek(), nil).Once()
	mockBookings.On("CreateTrekBooking", ctx, mock.AnythingOfType("*domain.TrekBooking")).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking-events", mock.AnythingOfType("string"), mock.Anything).Return(nil).Once()

	created, err := service.CreateTrekBooking(ctx, CreateTrekBookingInput{
		UserID:   7,
		TrekID:   1,
		TrekDate: trekDate,
		People:   2,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(300000), created.TotalCents)
	assert.Equal(t, domain.BookingStatusPending, created.Status)
	assert.Equal(t, int64(7), created.UserID)
	assert.NotEmpty(t, created.Reference)

	mockCatalog.AssertExpectations(t)
	mockBookings.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CreateTrekBooking_InvalidPartySize(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockCatalog := &MockCatalogRepository{}

	service := NewBookingService(mockBookings, mockCatalog, nil, "")

	ctx := context.Background()

	for _, people := range []int{0, -3} {
		created, err := service.CreateTrekBooking(ctx, CreateTrekBookingInput{
			UserID:   7,
			TrekID:   1,
			TrekDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			People:   people,
		})

		assert.Nil(t, created)
		assert.ErrorIs(t, err, domain.ErrInvalidPartySize)
	}

	// nothing was looked up or written
	mockCatalog.AssertNotCalled(t, "GetTrekByID")
	mockBookings.AssertNotCalled(t, "CreateTrekBooking")
}

func TestBookingService_CreateTrekBooking_MissingDate(t *testing.T) {
	service := NewBookingService(&MockBookingRepository{}, &MockCatalogRepository{}, nil, "")

	created, err := service.CreateTrekBooking(context.Background(), CreateTrekBookingInput{
		UserID: 7,
		TrekID: 1,
		People: 2,
	})

	assert.Nil(t, created)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_CreateTrekBooking_TrekNotFound(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockCatalog := &MockCatalogRepository{}

	service := NewBookingService(mockBookings, mockCatalog, nil, "")

	ctx := context.Background()
	mockCatalog.On("GetTrekByID", ctx, int64(999)).Return(nil, domain.ErrNotFound).Once()

	created, err := service.CreateTrekBooking(ctx, CreateTrekBookingInput{
		UserID:   7,
		TrekID:   999,
		TrekDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		People:   2,
	})

	assert.Nil(t, created)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockBookings.AssertNotCalled(t, "CreateTrekBooking")
}

func TestBookingService_CreateTrekBooking_RepositoryError(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockCatalog := &MockCatalogRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookings, mockCatalog, mockProducer, "booking-events")

	ctx := context.Background()
	expectedErr := errors.New("database error")

	mockCatalog.On("GetTrekByID", ctx, int64(1)).Return(everestTrek(), nil).Once()
	mockBookings.On("CreateTrekBooking", ctx, mock.Anything).Return(expectedErr).Once()

	created, err := service.CreateTrekBooking(ctx, CreateTrekBookingInput{
		UserID:   7,
		TrekID:   1,
		TrekDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		People:   2,
	})

	assert.Nil(t, created)
	assert.Equal(t, expectedErr, err)
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_CreateTrekBooking_PublishFailureIsNotFatal(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockCatalog := &MockCatalogRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookings, mockCatalog, mockProducer, "booking-events")

	ctx := context.Background()

	mockCatalog.On("GetTrekByID", ctx, int64(1)).Return(everestTrek(), nil).Once()
	mockBookings.On("CreateTrekBooking", ctx, mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking-events", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	created, err := service.CreateTrekBooking(ctx, CreateTrekBookingInput{
		UserID:   7,
		TrekID:   1,
		TrekDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		People:   1,
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CreateTravelBooking_Success(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockCatalog := &MockCatalogRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookings, mockCatalog, mockProducer, "booking-events")

	ctx := context.Background()
	pkg := &domain.TravelPackage{
		ID:          3,
		Name:        "Chitwan Jungle Safari",
		Slug:        "chitwan-safari",
		Destination: "Chitwan",
		Duration:    3,
		PriceCents:  35000,
	}

	mockCatalog.On("GetPackageByID", ctx, int64(3)).Return(pkg, nil).Once()
	mockBookings.On("CreateTravelBooking", ctx, mock.AnythingOfType("*domain.TravelBooking")).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking-events", mock.Anything, mock.Anything).Return(nil).Once()

	created, err := service.CreateTravelBooking(ctx, CreateTravelBookingInput{
		UserID:     7,
		PackageID:  3,
		TravelDate: time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC),
		People:     4,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(140000), created.TotalCents)
	assert.Equal(t, domain.BookingStatusPending, created.Status)

	mockBookings.AssertExpectations(t)
}

func TestBookingService_CreateTravelBooking_InvalidPartySize(t *testing.T) {
	mockCatalog := &MockCatalogRepository{}
	service := NewBookingService(&MockBookingRepository{}, mockCatalog, nil, "")

	created, err := service.CreateTravelBooking(context.Background(), CreateTravelBookingInput{
		UserID:     7,
		PackageID:  3,
		TravelDate: time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC),
		People:     0,
	})

	assert.Nil(t, created)
	assert.ErrorIs(t, err, domain.ErrInvalidPartySize)
	mockCatalog.AssertNotCalled(t, "GetPackageByID")
}

func TestBookingService_CancelTrekBooking_OwnerCancelsPending(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookings, &MockCatalogRepository{}, mockProducer, "booking-events")

	ctx := context.Background()
	pending := &domain.TrekBooking{ID: 10, Reference: "ref-10", UserID: 7, TrekID: 1, Status: domain.BookingStatusPending}
	cancelled := &domain.TrekBooking{ID: 10, Reference: "ref-10", UserID: 7, TrekID: 1, Status: domain.BookingStatusCancelled}

	mockBookings.On("GetTrekBooking", ctx, int64(10)).Return(pending, nil).Once()
	mockBookings.On("UpdateTrekBookingStatus", ctx, int64(10), domain.BookingStatusCancelled).Return(cancelled, nil).Once()
	mockProducer.On("Publish", ctx, "booking-events", "ref-10", mock.Anything).Return(nil).Once()

	result, err := service.CancelTrekBooking(ctx, 7, 10)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, result.Status)

	mockBookings.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CancelTrekBooking_NonOwner(t *testing.T) {
	mockBookings := &MockBookingRepository{}

	service := NewBookingService(mockBookings, &MockCatalogRepository{}, nil, "")

	ctx := context.Background()
	pending := &domain.TrekBooking{ID: 10, UserID: 7, Status: domain.BookingStatusPending}

	mockBookings.On("GetTrekBooking", ctx, int64(10)).Return(pending, nil).Once()

	result, err := service.CancelTrekBooking(ctx, 8, 10)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	mockBookings.AssertNotCalled(t, "UpdateTrekBookingStatus")
}

func TestBookingService_CancelTrekBooking_NotFound(t *testing.T) {
	mockBookings := &MockBookingRepository{}

	service := NewBookingService(mockBookings, &MockCatalogRepository{}, nil, "")

	ctx := context.Background()
	mockBookings.On("GetTrekBooking", ctx, int64(404)).Return(nil, domain.ErrNotFound).Once()

	result, err := service.CancelTrekBooking(ctx, 7, 404)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingService_CancelTrekBooking_AlreadyCancelledIsNoOp(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookings, &MockCatalogRepository{}, mockProducer, "booking-events")

	ctx := context.Background()
	cancelled := &domain.TrekBooking{ID: 10, UserID: 7, Status: domain.BookingStatusCancelled}

	mockBookings.On("GetTrekBooking", ctx, int64(10)).Return(cancelled, nil).Once()

	result, err := service.CancelTrekBooking(ctx, 7, 10)

	assert.NoError(t, err)
	assert.Equal(t, cancelled, result)
	mockBookings.AssertNotCalled(t, "UpdateTrekBookingStatus")
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_CancelTrekBooking_ConfirmedIsFrozen(t *testing.T) {
	mockBookings := &MockBookingRepository{}

	service := NewBookingService(mockBookings, &MockCatalogRepository{}, nil, "")

	ctx := context.Background()
	confirmed := &domain.TrekBooking{ID: 10, UserID: 7, Status: domain.BookingStatusConfirmed}

	mockBookings.On("GetTrekBooking", ctx, int64(10)).Return(confirmed, nil).Once()

	result, err := service.CancelTrekBooking(ctx, 7, 10)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, result.Status)
	mockBookings.AssertNotCalled(t, "UpdateTrekBookingStatus")
}

func TestBookingService_CancelTravelBooking_OwnerCancelsPending(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookings, &MockCatalogRepository{}, mockProducer, "booking-events")

	ctx := context.Background()
	pending := &domain.TravelBooking{ID: 22, Reference: "ref-22", UserID: 7, PackageID: 3, Status: domain.BookingStatusPending}
	cancelled := &domain.TravelBooking{ID: 22, Reference: "ref-22", UserID: 7, PackageID: 3, Status: domain.BookingStatusCancelled}

	mockBookings.On("GetTravelBooking", ctx, int64(22)).Return(pending, nil).Once()
	mockBookings.On("UpdateTravelBookingStatus", ctx, int64(22), domain.BookingStatusCancelled).Return(cancelled, nil).Once()
	mockProducer.On("Publish", ctx, "booking-events", "ref-22", mock.Anything).Return(nil).Once()

	result, err := service.CancelTravelBooking(ctx, 7, 22)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, result.Status)
	mockBookings.AssertExpectations(t)
}

func TestBookingService_CancelTravelBooking_NonOwner(t *testing.T) {
	mockBookings := &MockBookingRepository{}

	service := NewBookingService(mockBookings, &MockCatalogRepository{}, nil, "")

	ctx := context.Background()
	pending := &domain.TravelBooking{ID: 22, UserID: 7, Status: domain.BookingStatusPending}

	mockBookings.On("GetTravelBooking", ctx, int64(22)).Return(pending, nil).Once()

	result, err := service.CancelTravelBooking(ctx, 9, 22)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestBookingService_ListForUser(t *testing.T) {
	mockBookings := &MockBookingRepository{}

	service := NewBookingService(mockBookings, &MockCatalogRepository{}, nil, "")

	ctx := context.Background()
	trekBookings := []domain.TrekBooking{{ID: 1, UserID: 7}, {ID: 2, UserID: 7}}
	travelBookings := []domain.TravelBooking{{ID: 3, UserID: 7}}

	mockBookings.On("ListTrekBookingsByUser", ctx, int64(7)).Return(trekBookings, nil).Once()
	mockBookings.On("ListTravelBookingsByUser", ctx, int64(7)).Return(travelBookings, nil).Once()

	treks, travels, err := service.ListForUser(ctx, 7)

	assert.NoError(t, err)
	assert.Len(t, treks, 2)
	assert.Len(t, travels, 1)
	mockBookings.AssertExpectations(t)
}

func TestBookingService_ListForUser_RepositoryError(t *testing.T) {
	mockBookings := &MockBookingRepository{}

	service := NewBookingService(mockBookings, &MockCatalogRepository{}, nil, "")

	ctx := context.Background()
	expectedErr := errors.New("database error")
	mockBookings.On("ListTrekBookingsByUser", ctx, int64(7)).Return(([]domain.TrekBooking)(nil), expectedErr).Once()

	treks, travels, err := service.ListForUser(ctx, 7)

	assert.Nil(t, treks)
	assert.Nil(t, travels)
	assert.Equal(t, expectedErr, err)
	mockBookings.AssertNotCalled(t, "ListTravelBookingsByUser")
}

// Full walk of the booking lifecycle: alice books Everest Base Camp for two,
// cancels it, and bob fails to touch it afterwards.
func TestBookingService_Lifecycle(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockCatalog := &MockCatalogRepository{}
	mockProducer := &MockProducer{}

	service := NewBookingService(mockBookings, mockCatalog, mockProducer, "booking-events")

	ctx := context.Background()
	const alice, bob = int64(1), int64(2)

	mockCatalog.On("GetTrekByID", ctx, int64(1)).Return(everestTrek(), nil).Once()
	mockBookings.On("CreateTrekBooking", ctx, mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking-events", mock.Anything, mock.Anything).Return(nil)

	created, err := service.CreateTrekBooking(ctx, CreateTrekBookingInput{
		UserID:   alice,
		TrekID:   1,
		TrekDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		People:   2,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(300000), created.TotalCents)
	assert.Equal(t, domain.BookingStatusPending, created.Status)

	pending := *created
	cancelled := pending
	cancelled.Status = domain.BookingStatusCancelled

	mockBookings.On("GetTrekBooking", ctx, created.ID).Return(&pending, nil).Once()
	mockBookings.On("UpdateTrekBookingStatus", ctx, created.ID, domain.BookingStatusCancelled).Return(&cancelled, nil).Once()

	result, err := service.CancelTrekBooking(ctx, alice, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, result.Status)

	// bob cannot cancel alice's booking, and her record stays cancelled
	mockBookings.On("GetTrekBooking", ctx, created.ID).Return(&cancelled, nil).Once()

	result, err = service.CancelTrekBooking(ctx, bob, created.ID)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	mockBookings.AssertExpectations(t)
}
