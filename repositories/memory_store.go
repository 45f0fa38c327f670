package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"hotel/models"
)

type memoryTables struct {
	users    map[uint]models.User
	rooms    map[uint]models.Room
	bookings map[uint]models.Booking

	nextUserID    uint
	nextRoomID    uint
	nextBookingID uint
}

func newMemoryTables() *memoryTables {
	return &memoryTables{
		users:    make(map[uint]models.User),
		rooms:    make(map[uint]models.Room),
		bookings: make(map[uint]models.Booking),
	}
}

func (t *memoryTables) clone() *memoryTables {
	c := &memoryTables{
		users:         make(map[uint]models.User, len(t.users)),
		rooms:         make(map[uint]models.Room, len(t.rooms)),
		bookings:      make(map[uint]models.Booking, len(t.bookings)),
		nextUserID:    t.nextUserID,
		nextRoomID:    t.nextRoomID,
		nextBookingID: t.nextBookingID,
	}
	for id, u := range t.users {
		c.users[id] = u
	}
	for id, r := range t.rooms {
		c.rooms[id] = r.Clone()
	}
	for id, b := range t.bookings {
		c.bookings[id] = b
	}
	return c
}

type memoryState struct {
	mu     sync.RWMutex
	tables *memoryTables
}

// MemoryStore lưu các bảng trong map theo id. Transaction giữ khóa ghi toàn cục
// và khôi phục snapshot khi fn trả về lỗi.
type MemoryStore struct {
	state *memoryState
	inTx  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: &memoryState{tables: newMemoryTables()}}
}

func (s *MemoryStore) Users() UserRepository {
	return &memoryUserRepository{store: s}
}

func (s *MemoryStore) Rooms() RoomRepository {
	return &memoryRoomRepository{store: s}
}

func (s *MemoryStore) Bookings() BookingRepository {
	return &memoryBookingRepository{store: s}
}

func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.inTx {
		return fn(s)
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	snapshot := s.state.tables.clone()
	if err := fn(&MemoryStore{state: s.state, inTx: true}); err != nil {
		s.state.tables = snapshot
		return err
	}
	return nil
}

func (s *MemoryStore) read(fn func(t *memoryTables) error) error {
	if !s.inTx {
		s.state.mu.RLock()
		defer s.state.mu.RUnlock()
	}
	return fn(s.state.tables)
}

func (s *MemoryStore) write(fn func(t *memoryTables) error) error {
	if !s.inTx {
		s.state.mu.Lock()
		defer s.state.mu.Unlock()
	}
	return fn(s.state.tables)
}

type memoryUserRepository struct {
	store *MemoryStore
}

func (r *memoryUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.store.write(func(t *memoryTables) error {
		for _, existing := range t.users {
			if existing.Email == user.Email {
				return ErrDuplicate
			}
		}
		t.nextUserID++
		now := time.Now()
		user.ID = t.nextUserID
		user.CreatedAt = now
		user.UpdatedAt = now
		t.users[user.ID] = *user
		return nil
	})
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.store.read(func(t *memoryTables) error {
		u, ok := t.users[id]
		if !ok {
			return ErrNotFound
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user *models.User
	err := r.store.read(func(t *memoryTables) error {
		for _, u := range t.users {
			if u.Email == email {
				found := u
				user = &found
				return nil
			}
		}
		return ErrNotFound
	})
	return user, err
}

func (r *memoryUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.store.read(func(t *memoryTables) error {
		for _, u := range t.users {
			users = append(users, u)
		}
		return nil
	})
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, err
}

func (r *memoryUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return r.store.write(func(t *memoryTables) error {
		u, ok := t.users[id]
		if !ok {
			return ErrNotFound
		}
		u.Password = passwordHash
		u.UpdatedAt = time.Now()
		t.users[id] = u
		return nil
	})
}

type memoryRoomRepository struct {
	store *MemoryStore
}

func (r *memoryRoomRepository) List(ctx context.Context) ([]models.Room, error) {
	return r.filter(func(models.Room) bool { return true })
}

func (r *memoryRoomRepository) ListByAvailability(ctx context.Context, available bool) ([]models.Room, error) {
	return r.filter(func(room models.Room) bool { return room.Available == available })
}

func (r *memoryRoomRepository) filter(keep func(models.Room) bool) ([]models.Room, error) {
	rooms := make([]models.Room, 0)
	err := r.store.read(func(t *memoryTables) error {
		for _, room := range t.rooms {
			if keep(room) {
				rooms = append(rooms, room.Clone())
			}
		}
		return nil
	})
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, err
}

func (r *memoryRoomRepository) Get(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.store.read(func(t *memoryTables) error {
		found, ok := t.rooms[id]
		if !ok {
			return ErrNotFound
		}
		room = found.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetForUpdate: trong transaction khóa ghi đã được giữ toàn cục
func (r *memoryRoomRepository) GetForUpdate(ctx context.Context, id uint) (*models.Room, error) {
	return r.Get(ctx, id)
}

func (r *memoryRoomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.store.write(func(t *memoryTables) error {
		if roomNumberTaken(t, room.RoomNumber, 0) {
			return ErrDuplicate
		}
		t.nextRoomID++
		now := time.Now()
		room.ID = t.nextRoomID
		room.CreatedAt = now
		room.UpdatedAt = now
		t.rooms[room.ID] = room.Clone()
		return nil
	})
}

func (r *memoryRoomRepository) Update(ctx context.Context, room *models.Room) error {
	return r.store.write(func(t *memoryTables) error {
		existing, ok := t.rooms[room.ID]
		if !ok {
			return ErrNotFound
		}
		if roomNumberTaken(t, room.RoomNumber, room.ID) {
			return ErrDuplicate
		}
		room.CreatedAt = existing.CreatedAt
		room.UpdatedAt = time.Now()
		t.rooms[room.ID] = room.Clone()
		return nil
	})
}

func (r *memoryRoomRepository) SetAvailability(ctx context.Context, id uint, available bool) error {
	return r.store.write(func(t *memoryTables) error {
		room, ok := t.rooms[id]
		if !ok || room.Available == available {
			return ErrConflict
		}
		room.Available = available
		room.UpdatedAt = time.Now()
		t.rooms[id] = room
		return nil
	})
}

func (r *memoryRoomRepository) Delete(ctx context.Context, id uint) error {
	return r.store.write(func(t *memoryTables) error {
		if _, ok := t.rooms[id]; !ok {
			return ErrNotFound
		}
		delete(t.rooms, id)
		return nil
	})
}

func (r *memoryRoomRepository) Count(ctx context.Context) (int64, int64, error) {
	var total, available int64
	err := r.store.read(func(t *memoryTables) error {
		for _, room := range t.rooms {
			total++
			if room.Available {
				available++
			}
		}
		return nil
	})
	return total, available, err
}

func roomNumberTaken(t *memoryTables, number string, exceptID uint) bool {
	for id, room := range t.rooms {
		if id != exceptID && room.RoomNumber == number {
			return true
		}
	}
	return false
}

type memoryBookingRepository struct {
	store *MemoryStore
}

func (r *memoryBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.store.write(func(t *memoryTables) error {
		t.nextBookingID++
		booking.ID = t.nextBookingID
		booking.CreatedAt = time.Now()
		t.bookings[booking.ID] = *booking
		return nil
	})
}

func (r *memoryBookingRepository) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.store.read(func(t *memoryTables) error {
		found, ok := t.bookings[id]
		if !ok {
			return ErrNotFound
		}
		booking = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *memoryBookingRepository) GetForUpdate(ctx context.Context, id uint) (*models.Booking, error) {
	return r.Get(ctx, id)
}

func (r *memoryBookingRepository) Delete(ctx context.Context, id uint) error {
	return r.store.write(func(t *memoryTables) error {
		if _, ok := t.bookings[id]; !ok {
			return ErrNotFound
		}
		delete(t.bookings, id)
		return nil
	})
}

func (r *memoryBookingRepository) List(ctx context.Context) ([]models.Booking, error) {
	return r.filter(func(models.Booking) bool { return true })
}

func (r *memoryBookingRepository) ListByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.UserID == userID })
}

func (r *memoryBookingRepository) ListByRoom(ctx context.Context, roomID uint) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.RoomID == roomID })
}

func (r *memoryBookingRepository) filter(keep func(models.Booking) bool) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	err := r.store.read(func(t *memoryTables) error {
		for _, b := range t.bookings {
			if keep(b) {
				bookings = append(bookings, b)
			}
		}
		return nil
	})
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
	return bookings, err
}
