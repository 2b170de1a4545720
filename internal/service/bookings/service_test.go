package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/bookings/models"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/logger"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/ptr"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID, status)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	return m.Called(ctx, id, from, to).Error(0)
}

type spyNotifier struct {
	notified []*domain.Booking
	err      error
}

func (s *spyNotifier) BookingStatusChanged(_ context.Context, b *domain.Booking) error {
	s.notified = append(s.notified, b)
	return s.err
}

var (
	owner    = domain.Actor{ID: 100, Type: domain.ActorCustomer}
	stranger = domain.Actor{ID: 101, Type: domain.ActorCustomer}
	staff    = domain.Actor{ID: 55, Type: domain.ActorProvider, ProviderID: ptr.Ptr(int64(3))}
	admin    = domain.Actor{ID: 1, Type: domain.ActorAdmin}
)

func TestService_GetByID(t *testing.T) {
	booking := &domain.Booking{ID: 7, UserID: 100, ProviderID: 3, Status: domain.StatusPending}

	tests := []struct {
		name    string
		actor   domain.Actor
		repoErr error
		wantErr error
	}{
		{name: "owner", actor: owner},
		{name: "provider staff", actor: staff},
		{name: "admin", actor: admin},
		{name: "stranger", actor: stranger, wantErr: ErrAccessDenied},
		{name: "not found", actor: owner, repoErr: bookingRepo.ErrBookingNotFound, wantErr: ErrBookingNotFound},
		{name: "database error", actor: owner, repoErr: errors.New("timeout"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepo{}
			if tt.repoErr != nil {
				repo.On("GetByID", mock.Anything, int64(7)).Return(nil, tt.repoErr)
			} else {
				repo.On("GetByID", mock.Anything, int64(7)).Return(booking, nil)
			}

			svc := NewService(repo, &spyNotifier{}, logger.NewNop())
			got, err := svc.GetByID(context.Background(), 7, tt.actor)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), got.ID)
			assert.Equal(t, "pending", got.Status)
		})
	}
}

func TestService_GetUserBookings(t *testing.T) {
	t.Run("own bookings filtered by status", func(t *testing.T) {
		repo := &mockBookingRepo{}
		repo.On("GetByUserID", mock.Anything, int64(100), mock.MatchedBy(func(s *domain.BookingStatus) bool {
			return s != nil && *s == domain.StatusCancelled
		})).Return([]*domain.Booking{{ID: 1}, {ID: 2}}, nil)

		svc := NewService(repo, &spyNotifier{}, logger.NewNop())
		got, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			Actor:  owner,
			UserID: 100,
			Status: ptr.Ptr("cancelled"),
		})

		require.NoError(t, err)
		assert.Len(t, got.Bookings, 2)
	})

	t.Run("empty history is an empty list", func(t *testing.T) {
		repo := &mockBookingRepo{}
		repo.On("GetByUserID", mock.Anything, int64(100), (*domain.BookingStatus)(nil)).Return(nil, nil)

		svc := NewService(repo, &spyNotifier{}, logger.NewNop())
		got, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{Actor: admin, UserID: 100})

		require.NoError(t, err)
		assert.NotNil(t, got.Bookings)
		assert.Empty(t, got.Bookings)
	})

	t.Run("other user is denied", func(t *testing.T) {
		svc := NewService(&mockBookingRepo{}, &spyNotifier{}, logger.NewNop())
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{Actor: stranger, UserID: 100})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := NewService(&mockBookingRepo{}, &spyNotifier{}, logger.NewNop())
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			Actor:  owner,
			UserID: 100,
			Status: ptr.Ptr("no_show"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_GetProviderBookings(t *testing.T) {
	t.Run("staff of the provider", func(t *testing.T) {
		repo := &mockBookingRepo{}
		repo.On("GetByProviderWithFilter", mock.Anything, mock.MatchedBy(func(f domain.ProviderBookingsFilter) bool {
			return f.ProviderID == 3 && f.Status != nil && *f.Status == domain.StatusConfirmed
		})).Return([]*domain.Booking{{ID: 9, ProviderID: 3}}, nil)

		svc := NewService(repo, &spyNotifier{}, logger.NewNop())
		got, err := svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{
			Actor:      staff,
			ProviderID: 3,
			Status:     ptr.Ptr("confirmed"),
		})

		require.NoError(t, err)
		require.Len(t, got.Bookings, 1)
		assert.Equal(t, int64(9), got.Bookings[0].ID)
	})

	t.Run("staff of another provider", func(t *testing.T) {
		svc := NewService(&mockBookingRepo{}, &spyNotifier{}, logger.NewNop())
		_, err := svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{
			Actor:      staff,
			ProviderID: 4,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	newBooking := func(status domain.BookingStatus) *domain.Booking {
		return &domain.Booking{ID: 7, UserID: 100, ProviderID: 3, Status: status}
	}

	t.Run("pending to confirmed notifies the customer", func(t *testing.T) {
		repo := &mockBookingRepo{}
		repo.On("GetByID", mock.Anything, int64(7)).Return(newBooking(domain.StatusPending), nil)
		repo.On("UpdateStatus", mock.Anything, int64(7), domain.StatusPending, domain.StatusConfirmed).Return(nil)
		notifier := &spyNotifier{}

		svc := NewService(repo, notifier, logger.NewNop())
		got, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
			Actor: staff, ProviderID: 3, Status: "confirmed",
		})

		require.NoError(t, err)
		assert.Equal(t, "confirmed", got.Status)
		require.Len(t, notifier.notified, 1)
		assert.Equal(t, domain.StatusConfirmed, notifier.notified[0].Status)
		repo.AssertExpectations(t)
	})

	t.Run("notification failure does not fail the update", func(t *testing.T) {
		repo := &mockBookingRepo{}
		repo.On("GetByID", mock.Anything, int64(7)).Return(newBooking(domain.StatusConfirmed), nil)
		repo.On("UpdateStatus", mock.Anything, int64(7), domain.StatusConfirmed, domain.StatusInProgress).Return(nil)

		svc := NewService(repo, &spyNotifier{err: errors.New("smtp down")}, logger.NewNop())
		got, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
			Actor: staff, ProviderID: 3, Status: "in_progress",
		})

		require.NoError(t, err)
		assert.Equal(t, "in_progress", got.Status)
	})

	t.Run("skipping a step is rejected", func(t *testing.T) {
		repo := &mockBookingRepo{}
		repo.On("GetByID", mock.Anything, int64(7)).Return(newBooking(domain.StatusPending), nil)

		svc := NewService(repo, &spyNotifier{}, logger.NewNop())
		_, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
			Actor: staff, ProviderID: 3, Status: "completed",
		})

		assert.ErrorIs(t, err, ErrInvalidTransition)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent change", func(t *testing.T) {
		repo := &mockBookingRepo{}
		repo.On("GetByID", mock.Anything, int64(7)).Return(newBooking(domain.StatusPending), nil)
		repo.On("UpdateStatus", mock.Anything, int64(7), domain.StatusPending, domain.StatusConfirmed).
			Return(bookingRepo.ErrStatusConflict)

		svc := NewService(repo, &spyNotifier{}, logger.NewNop())
		_, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
			Actor: staff, ProviderID: 3, Status: "confirmed",
		})

		assert.ErrorIs(t, err, ErrStatusConflict)
	})

	t.Run("booking of another provider is hidden", func(t *testing.T) {
		repo := &mockBookingRepo{}
		repo.On("GetByID", mock.Anything, int64(7)).Return(newBooking(domain.StatusPending), nil)

		svc := NewService(repo, &spyNotifier{}, logger.NewNop())
		_, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
			Actor: admin, ProviderID: 4, Status: "confirmed",
		})

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("customer cannot update", func(t *testing.T) {
		repo := &mockBookingRepo{}
		repo.On("GetByID", mock.Anything, int64(7)).Return(newBooking(domain.StatusPending), nil)

		svc := NewService(repo, &spyNotifier{}, logger.NewNop())
		_, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
			Actor: owner, ProviderID: 3, Status: "confirmed",
		})

		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
