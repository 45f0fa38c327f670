package repositories

import (
	"context"
	"fmt"
	"testing"

	"hotel/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type capturedStatement struct {
	sql  string
	vars []interface{}
}

// newDryRunStore dựng GormStore trên postgres ở chế độ DryRun: câu lệnh được build nhưng không gửi tới DB
func newDryRunStore(t *testing.T) (*GormStore, *gorm.DB, *[]capturedStatement) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=hotel dbname=hotel port=5432 sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		TranslateError:       true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	var captured []capturedStatement
	capture := func(tx *gorm.DB) {
		captured = append(captured, capturedStatement{
			sql:  tx.Statement.SQL.String(),
			vars: append([]interface{}(nil), tx.Statement.Vars...),
		})
	}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("hotel:capture_query", capture))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("hotel:capture_update", capture))
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("hotel:capture_create", capture))

	return NewGormStore(db), db, &captured
}

func TestGormRoomGetForUpdateLocksRow(t *testing.T) {
	store, _, captured := newDryRunStore(t)

	_, err := store.Rooms().GetForUpdate(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, *captured, 1)
	stmt := (*captured)[0]
	assert.Contains(t, stmt.sql, `FROM "rooms"`)
	assert.Contains(t, stmt.sql, `"rooms"."id" = $1`)
	assert.Contains(t, stmt.sql, "FOR UPDATE")
	assert.Contains(t, stmt.vars, uint(7))
}

func TestGormBookingGetForUpdateLocksRow(t *testing.T) {
	store, _, captured := newDryRunStore(t)

	_, err := store.Bookings().GetForUpdate(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, *captured, 1)
	assert.Contains(t, (*captured)[0].sql, `FROM "bookings"`)
	assert.Contains(t, (*captured)[0].sql, "FOR UPDATE")
}

func TestGormRoomGetDoesNotLock(t *testing.T) {
	store, _, captured := newDryRunStore(t)

	_, err := store.Rooms().Get(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, *captured, 1)
	assert.NotContains(t, (*captured)[0].sql, "FOR UPDATE")
}

func TestGormSetAvailabilityGuardsCurrentState(t *testing.T) {
	tests := []struct {
		name      string
		available bool
	}{
		{"reserve", false},
		{"release", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, captured := newDryRunStore(t)

			// DryRun không khớp dòng nào, giống như phòng đã bị giao dịch khác đổi trạng thái
			err := store.Rooms().SetAvailability(context.Background(), 7, tt.available)
			assert.ErrorIs(t, err, ErrConflict)

			require.Len(t, *captured, 1)
			stmt := (*captured)[0]
			assert.Contains(t, stmt.sql, `UPDATE "rooms" SET "available"=$1`)
			assert.Contains(t, stmt.sql, "id = $")
			assert.Contains(t, stmt.sql, "available = $")
			require.GreaterOrEqual(t, len(stmt.vars), 3)
			assert.Equal(t, tt.available, stmt.vars[0])
			assert.Equal(t, uint(7), stmt.vars[len(stmt.vars)-2])
			assert.Equal(t, !tt.available, stmt.vars[len(stmt.vars)-1])
		})
	}
}

func TestGormUpdateMissingRowIsNotFound(t *testing.T) {
	store, _, captured := newDryRunStore(t)

	err := store.Rooms().Update(context.Background(), &models.Room{ID: 42, RoomNumber: "101", Type: "Standard", Price: 100})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Users().UpdatePassword(context.Background(), 42, "hash"), ErrNotFound)

	require.Len(t, *captured, 2)
	assert.Contains(t, (*captured)[0].sql, `UPDATE "rooms"`)
	assert.Contains(t, (*captured)[1].sql, `UPDATE "users" SET "password"=$1`)
}

func TestGormCreateTranslatesDuplicatedKey(t *testing.T) {
	store, db, _ := newDryRunStore(t)
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("hotel:unique_violation", func(tx *gorm.DB) {
		tx.AddError(gorm.ErrDuplicatedKey)
	}))

	ctx := context.Background()
	assert.ErrorIs(t, store.Users().Create(ctx, &models.User{Email: "a@hotel.com"}), ErrDuplicate)
	assert.ErrorIs(t, store.Rooms().Create(ctx, &models.Room{RoomNumber: "101", Type: "Standard"}), ErrDuplicate)
}

func TestGormGetTranslatesRecordNotFound(t *testing.T) {
	store, db, _ := newDryRunStore(t)
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("hotel:no_rows", func(tx *gorm.DB) {
		tx.AddError(gorm.ErrRecordNotFound)
	}))

	ctx := context.Background()
	_, err := store.Rooms().Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Users().GetByEmail(ctx, "missing@hotel.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Bookings().GetForUpdate(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTranslateError(t *testing.T) {
	boom := fmt.Errorf("connection reset")

	tests := []struct {
		name     string
		in       error
		expected error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, ErrDuplicate},
		{"wrapped duplicated key", fmt.Errorf("insert rooms: %w", gorm.ErrDuplicatedKey), ErrDuplicate},
		{"other errors pass through", boom, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.in)
			if tt.expected == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.expected)
		})
	}
}
