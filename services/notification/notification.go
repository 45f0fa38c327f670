package notification

import (
	"fmt"

	"hotel/constants"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// RoomEvent là payload đẩy qua /ws khi cờ phòng đổi
type RoomEvent struct {
	Event      string `json:"event"`
	RoomID     uint   `json:"roomId"`
	RoomNumber string `json:"roomNumber"`
	BookingID  uint   `json:"bookingId,omitempty"`
}

type MessageBuilder struct {
	event RoomEvent
}

func NewMessageBuilder(event string) *MessageBuilder {
	return &MessageBuilder{event: RoomEvent{Event: event}}
}

func Reserved() *MessageBuilder {
	return NewMessageBuilder(constants.EventRoomReserved)
}

func Released() *MessageBuilder {
	return NewMessageBuilder(constants.EventRoomReleased)
}

func (b *MessageBuilder) Room(id uint, number string) *MessageBuilder {
	b.event.RoomID = id
	b.event.RoomNumber = number
	return b
}

func (b *MessageBuilder) Booking(id uint) *MessageBuilder {
	b.event.BookingID = id
	return b
}

func (b *MessageBuilder) Build() string {
	data, err := json.Marshal(b.event)
	if err != nil {
		return fmt.Sprintf(`{"event":%q,"roomId":%d}`, b.event.Event, b.event.RoomID)
	}
	return string(data)
}
