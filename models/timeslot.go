package models

import "strings"

// TimeSlot represents one fixed one-hour appointment window.
type TimeSlot struct {
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
}

// GlobalTimeSlots is the hospital-wide catalog of bookable windows.
// Doctors may only offer slots drawn from this list.
var GlobalTimeSlots = []TimeSlot{
	{StartTime: "09:00 AM", EndTime: "10:00 AM"},
	{StartTime: "10:00 AM", EndTime: "11:00 AM"},
	{StartTime: "11:00 AM", EndTime: "12:00 PM"},
	{StartTime: "12:00 PM", EndTime: "01:00 PM"},
	{StartTime: "01:00 PM", EndTime: "02:00 PM"},
	{StartTime: "02:00 PM", EndTime: "03:00 PM"},
	{StartTime: "03:00 PM", EndTime: "04:00 PM"},
	{StartTime: "04:00 PM", EndTime: "05:00 PM"},
}

// ValidSlot reports whether the given slot matches a catalog entry exactly.
func ValidSlot(slot TimeSlot) bool {
	for _, s := range GlobalTimeSlots {
		if s.StartTime == slot.StartTime && s.EndTime == slot.EndTime {
			return true
		}
	}
	return false
}

// Label renders the slot in the wire form used on bookings,
// e.g. "09:00 AM - 10:00 AM".
func (s TimeSlot) Label() string {
	return s.StartTime + " - " + s.EndTime
}

// ParseSlotLabel parses the "<start> - <end>" wire form back into a TimeSlot.
// Surrounding whitespace is trimmed on both parts.
func ParseSlotLabel(label string) (TimeSlot, bool) {
	parts := strings.Split(label, " - ")
	if len(parts) != 2 {
		return TimeSlot{}, false
	}
	return TimeSlot{
		StartTime: strings.TrimSpace(parts[0]),
		EndTime:   strings.TrimSpace(parts[1]),
	}, true
}
