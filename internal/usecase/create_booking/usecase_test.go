package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	providerRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/provider"
	slotRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/timeslot"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/clock"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/logger"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/ptr"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/types"
)

var (
	manila = time.FixedZone("PHT", 8*60*60)
	now    = time.Date(2025, 3, 10, 9, 30, 0, 0, manila)
)

type fakeBookings struct {
	created []*domain.Booking
	err     error
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b.ID = int64(len(f.created) + 1)
	b.CreatedAt = now
	b.UpdatedAt = now
	f.created = append(f.created, b)
	return b, nil
}

type fakeSlots struct {
	slots map[string]*domain.TimeSlot
}

func (f *fakeSlots) GetByID(_ context.Context, providerID int64, slotID string) (*domain.TimeSlot, error) {
	slot, ok := f.slots[slotID]
	if !ok || slot.ProviderID != providerID {
		return nil, slotRepo.ErrSlotNotFound
	}
	return slot, nil
}

func (f *fakeSlots) Delete(_ context.Context, providerID int64, slotID string) error {
	if _, ok := f.slots[slotID]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(f.slots, slotID)
	return nil
}

type fakeProviders struct {
	exists   bool
	packages map[int64]*domain.ServicePackage
	locked   int
}

func (f *fakeProviders) Lock(context.Context, int64) error {
	if !f.exists {
		return providerRepo.ErrProviderNotFound
	}
	f.locked++
	return nil
}

func (f *fakeProviders) GetPackage(_ context.Context, _ int64, packageID int64) (*domain.ServicePackage, error) {
	pkg, ok := f.packages[packageID]
	if !ok {
		return nil, providerRepo.ErrPackageNotFound
	}
	return pkg, nil
}

type spyInvalidator struct {
	invalidated []int64
}

func (s *spyInvalidator) InvalidateProvider(_ context.Context, providerID int64) {
	s.invalidated = append(s.invalidated, providerID)
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	bookings  *fakeBookings
	slots     *fakeSlots
	providers *fakeProviders
	cache     *spyInvalidator
	uc        *UseCase
}

func newFixture() *fixture {
	tomorrow := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	f := &fixture{
		bookings: &fakeBookings{},
		slots: &fakeSlots{slots: map[string]*domain.TimeSlot{
			"s-tomorrow": {
				ID: "s-tomorrow", ProviderID: 3, Date: tomorrow,
				StartTime: types.MustTimeString("10:00"), EndTime: types.MustTimeString("11:00"),
			},
			"s-morning": {
				ID: "s-morning", ProviderID: 3, Date: today,
				StartTime: types.MustTimeString("08:00"), EndTime: types.MustTimeString("09:00"),
			},
			"s-restricted": {
				ID: "s-restricted", ProviderID: 3, Date: tomorrow,
				StartTime: types.MustTimeString("13:00"), EndTime: types.MustTimeString("14:00"),
				AvailableServices: []int64{20},
			},
		}},
		providers: &fakeProviders{
			exists: true,
			packages: map[int64]*domain.ServicePackage{
				10: {ID: 10, ProviderID: 3, Name: "Basic Cremation", Price: 5000, IsActive: true},
				11: {ID: 11, ProviderID: 3, Name: "Retired", Price: 3000, IsActive: false},
			},
		},
		cache: &spyInvalidator{},
	}
	f.uc = NewUseCase(f.bookings, f.slots, f.providers, f.cache, inlineTx{}, clock.Fixed{At: now}, logger.NewNop())
	return f
}

func validRequest() *Request {
	return &Request{
		UserID:        100,
		ProviderID:    3,
		SlotID:        "s-tomorrow",
		PackageID:     10,
		PaymentMethod: domain.PaymentMethodGCash,
		PetName:       ptr.Ptr("Mochi"),
	}
}

func TestUseCase_Execute_ConsumesSlot(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "not_paid", resp.PaymentStatus)
	assert.Equal(t, "gcash", resp.PaymentMethod)
	assert.Equal(t, 5000.0, resp.Price)
	assert.Equal(t, "Basic Cremation", resp.PackageName)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, "11:00", resp.EndTime.String())
	assert.Equal(t, "Mochi", *resp.PetName)

	assert.NotContains(t, f.slots.slots, "s-tomorrow")
	assert.Equal(t, 1, f.providers.locked)
	assert.Equal(t, []int64{3}, f.cache.invalidated)
}

func TestUseCase_Execute_SlotCannotBeBookedTwice(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.Len(t, f.bookings.created, 1)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(f *fixture, req *Request)
		wantErr error
	}{
		{
			name:    "unknown provider",
			modify:  func(f *fixture, _ *Request) { f.providers.exists = false },
			wantErr: ErrProviderNotFound,
		},
		{
			name:    "unknown slot",
			modify:  func(_ *fixture, req *Request) { req.SlotID = "missing" },
			wantErr: ErrSlotNotFound,
		},
		{
			name:    "slot already started",
			modify:  func(_ *fixture, req *Request) { req.SlotID = "s-morning" },
			wantErr: ErrSlotInPast,
		},
		{
			name:    "unknown package",
			modify:  func(_ *fixture, req *Request) { req.PackageID = 99 },
			wantErr: ErrPackageNotFound,
		},
		{
			name:    "inactive package",
			modify:  func(_ *fixture, req *Request) { req.PackageID = 11 },
			wantErr: ErrPackageInactive,
		},
		{
			name:    "package not offered in slot",
			modify:  func(_ *fixture, req *Request) { req.SlotID = "s-restricted" },
			wantErr: ErrPackageNotOffered,
		},
		{
			name:    "unknown payment method",
			modify:  func(_ *fixture, req *Request) { req.PaymentMethod = "bitcoin" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing slot id",
			modify:  func(_ *fixture, req *Request) { req.SlotID = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "database failure",
			modify:  func(f *fixture, _ *Request) { f.bookings.err = errors.New("connection reset") },
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.modify(f, req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.cache.invalidated)
		})
	}
}
