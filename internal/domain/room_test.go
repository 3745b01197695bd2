package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomFloorAndNumber(t *testing.T) {
	r := Room{RoomNumber: "201"}
	assert.Equal(t, 2, r.Floor())
	assert.Equal(t, 201, r.Number())
}

func TestRoomIsLibrary(t *testing.T) {
	assert.True(t, Room{Type: "library"}.IsLibrary())
	assert.False(t, Room{Type: "LECTURE_ROOM"}.IsLibrary())
}

func TestRoomTypeUpper(t *testing.T) {
	assert.Equal(t, "COMPUTER_LAB", Room{Type: "computer_lab"}.TypeUpper())
}
