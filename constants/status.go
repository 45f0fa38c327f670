package constants

import "time"

// Header và context key dùng chung giữa middleware và controller
const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	BearerPrefix        = "Bearer "

	ContextIdentity  = "identity"
	ContextRequestID = "requestId"
)

// Cache keys cho danh sách phòng
const (
	CacheKeyRoomsAll       = "rooms:all"
	CacheKeyRoomsAvailable = "rooms:available"
	CacheKeyRoomCounts     = "rooms:counts"

	// CacheKeyRoomsGeneration tăng sau mỗi lần thay đổi phòng/booking
	CacheKeyRoomsGeneration = "rooms:generation"

	DefaultCacheTTL = 10 * time.Minute
)

// DateLayout là định dạng ngày nhận/trả phòng trên API
const DateLayout = "2006-01-02"

// Websocket events
const (
	EventRoomReserved = "room.reserved"
	EventRoomReleased = "room.released"
)
