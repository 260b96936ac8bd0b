package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlobalTimeSlotsCatalog(t *testing.T) {
	assert.Len(t, GlobalTimeSlots, 8)
	assert.Equal(t, TimeSlot{StartTime: "09:00 AM", EndTime: "10:00 AM"}, GlobalTimeSlots[0])
	assert.Equal(t, TimeSlot{StartTime: "04:00 PM", EndTime: "05:00 PM"}, GlobalTimeSlots[7])

	for _, slot := range GlobalTimeSlots {
		assert.True(t, ValidSlot(slot), "catalog slot %s should be valid", slot.Label())
	}
}

func TestValidSlotRejectsOffCatalog(t *testing.T) {
	assert.False(t, ValidSlot(TimeSlot{StartTime: "08:00 AM", EndTime: "09:00 AM"}))
	assert.False(t, ValidSlot(TimeSlot{StartTime: "09:00 AM", EndTime: "11:00 AM"}))
	assert.False(t, ValidSlot(TimeSlot{}))
}

func TestSlotLabelRoundTrip(t *testing.T) {
	slot := TimeSlot{StartTime: "09:00 AM", EndTime: "10:00 AM"}
	assert.Equal(t, "09:00 AM - 10:00 AM", slot.Label())

	parsed, ok := ParseSlotLabel(slot.Label())
	assert.True(t, ok)
	assert.Equal(t, slot, parsed)
}

func TestParseSlotLabelTrimsWhitespace(t *testing.T) {
	parsed, ok := ParseSlotLabel("  09:00 AM -  10:00 AM ")
	assert.True(t, ok)
	assert.Equal(t, TimeSlot{StartTime: "09:00 AM", EndTime: "10:00 AM"}, parsed)
}

func TestParseSlotLabelRejectsMalformed(t *testing.T) {
	for _, label := range []string{"", "09:00 AM", "09:00 AM - 10:00 AM - 11:00 AM"} {
		_, ok := ParseSlotLabel(label)
		assert.False(t, ok, "label %q should not parse", label)
	}
}
