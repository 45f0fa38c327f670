package services

import (
	"context"
	"sync"
	"testing"
	"time"

	apperrors "hotel/errors"
	"hotel/models"
	"hotel/repositories"
	"hotel/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) SendMessage(message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

type ledgerFixture struct {
	store    *repositories.MemoryStore
	ledger   *BookingService
	notifier *recordingNotifier
	room     *models.Room
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	store := repositories.NewMemoryStore()
	room := &models.Room{RoomNumber: "101", Type: "Standard", Price: 100.00, Available: true}
	require.NoError(t, store.Rooms().Create(context.Background(), room))

	notifier := &recordingNotifier{}
	return &ledgerFixture{
		store:    store,
		notifier: notifier,
		room:     room,
		ledger: NewBookingService(BookingServiceOptions{
			Store:    store,
			Notifier: notifier,
			Logger:   logger.Nop{},
		}),
	}
}

func (f *ledgerFixture) roomAvailable(t *testing.T) bool {
	t.Helper()
	room, err := f.store.Rooms().Get(context.Background(), f.room.ID)
	require.NoError(t, err)
	return room.Available
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	userA = models.Identity{UserID: 1, Email: "a@hotel.com", Role: models.RoleCustomer}
	userB = models.Identity{UserID: 2, Email: "b@hotel.com", Role: models.RoleCustomer}
	admin = models.Identity{UserID: 3, Email: "admin@hotel.com", Role: models.RoleAdmin}
)

func TestLedgerScenario(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)

	bookingA, err := f.ledger.Create(ctx, userA, f.room.ID, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)
	assert.False(t, f.roomAvailable(t))
	assert.Equal(t, 2, bookingA.Nights())

	_, err = f.ledger.Create(ctx, userB, f.room.ID, day(2024, 2, 1), day(2024, 2, 3))
	assert.ErrorIs(t, err, apperrors.ErrRoomUnavailable)

	all, err := f.ledger.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, f.ledger.Cancel(ctx, userA, bookingA.ID))
	assert.True(t, f.roomAvailable(t))

	mine, err := f.ledger.ListForUser(ctx, userA)
	require.NoError(t, err)
	assert.Empty(t, mine)

	byRoom, err := f.store.Bookings().ListByRoom(ctx, f.room.ID)
	require.NoError(t, err)
	assert.Empty(t, byRoom)

	assert.Equal(t, 2, f.notifier.count())
}

func TestCreateUnknownRoom(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.ledger.Create(context.Background(), userA, 999, day(2024, 1, 1), day(2024, 1, 3))
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
}

func TestCreateRejectsInvalidStay(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"inverted", day(2024, 1, 3), day(2024, 1, 1)},
		{"same day", day(2024, 1, 1), day(2024, 1, 1)},
		{"same day different hours", day(2024, 1, 1).Add(10 * time.Hour), day(2024, 1, 1).Add(18 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t)

			_, err := f.ledger.Create(context.Background(), userA, f.room.ID, tt.checkIn, tt.checkOut)
			assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
			assert.True(t, f.roomAvailable(t))

			bookings, err := f.store.Bookings().List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, bookings)
		})
	}
}

func TestCreateOvernightStayKeepsCalendarDays(t *testing.T) {
	f := newLedgerFixture(t)

	booking, err := f.ledger.Create(context.Background(), userA, f.room.ID, day(2024, 1, 1).Add(22*time.Hour), day(2024, 1, 2).Add(9*time.Hour))
	require.NoError(t, err)
	assert.True(t, time.Time(booking.CheckInDate).Equal(day(2024, 1, 1)))
	assert.True(t, time.Time(booking.CheckOutDate).Equal(day(2024, 1, 2)))
	assert.False(t, f.roomAvailable(t))
}

func TestCancelUnknownBookingMutatesNothing(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	booking, err := f.ledger.Create(ctx, userA, f.room.ID, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)

	err = f.ledger.Cancel(ctx, userA, booking.ID+100)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
	assert.False(t, f.roomAvailable(t))

	all, err := f.ledger.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCancelOwnership(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	booking, err := f.ledger.Create(ctx, userA, f.room.ID, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)

	err = f.ledger.Cancel(ctx, userB, booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.False(t, f.roomAvailable(t))

	require.NoError(t, f.ledger.Cancel(ctx, admin, booking.ID))
	assert.True(t, f.roomAvailable(t))
}

func TestListAllRequiresAdmin(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.ledger.ListAll(context.Background(), userA)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestConcurrentCreateExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		rejected  int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			who := models.Identity{UserID: uint(i + 10), Role: models.RoleCustomer}
			_, err := f.ledger.Create(ctx, who, f.room.ID, day(2024, 3, 1), day(2024, 3, 2))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case apperrors.CodeOf(err) == apperrors.ErrCodeRoomUnavailable:
				rejected++
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, rejected)

	bookings, err := f.store.Bookings().ListByRoom(ctx, f.room.ID)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestAuditReportsDivergence(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)

	mismatches, err := f.ledger.Audit(ctx)
	require.NoError(t, err)
	assert.Empty(t, mismatches)

	_, err = f.ledger.Create(ctx, userA, f.room.ID, day(2024, 1, 1), day(2024, 1, 3))
	require.NoError(t, err)
	mismatches, err = f.ledger.Audit(ctx)
	require.NoError(t, err)
	assert.Empty(t, mismatches)

	// ghi thẳng vào store, bỏ qua sổ đặt phòng
	require.NoError(t, f.store.Rooms().SetAvailability(ctx, f.room.ID, true))
	mismatches, err = f.ledger.Audit(ctx)
	require.NoError(t, err)
	require.Len(t, mismatches, 1)
	assert.Equal(t, "101", mismatches[0].RoomNumber)
	assert.Equal(t, 1, mismatches[0].Bookings)
}
