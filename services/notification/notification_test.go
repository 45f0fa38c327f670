package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageBuilder(t *testing.T) {
	msg := Reserved().Room(3, "201").Booking(9).Build()
	assert.JSONEq(t, `{"event":"room.reserved","roomId":3,"roomNumber":"201","bookingId":9}`, msg)

	msg = Released().Room(3, "201").Build()
	assert.JSONEq(t, `{"event":"room.released","roomId":3,"roomNumber":"201"}`, msg)
}

func TestMelodyServiceWithoutInstance(t *testing.T) {
	err := NewMelodyService(nil).SendMessage("x")
	assert.Error(t, err)
}
