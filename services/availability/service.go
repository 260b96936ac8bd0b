package availability

import (
	"time"

	"go.uber.org/zap"

	"medibook/models"
	"medibook/utils"
)

// maxAheadMonths bounds how far ahead a doctor may open slots.
const maxAheadMonths = 1

type dayEntry struct {
	day   time.Time
	slots []models.TimeSlot
}

// Update applies the batch validate-then-apply flow: parse every entry,
// validate the entire batch against the current calendar, and only then
// mutate and persist.
func (s *DefaultService) Update(doctorID string, req models.AvailabilityUpdateRequest) (*models.Availability, error) {
	lock := s.locks.get(doctorID)
	lock.Lock()
	defer lock.Unlock()

	doctor, err := s.Repo.GetByID(doctorID)
	if err != nil {
		return nil, err
	}
	av := doctor.Availability

	models.UpdateAvailabilityFields{IsAvailable: req.IsAvailable}.Apply(&av)

	if len(req.Schedules) > 0 {
		entries, err := parseEntries(req.Schedules)
		if err != nil {
			return nil, err
		}
		if err := validateBatch(&av, entries, models.DayOf(time.Now())); err != nil {
			return nil, err
		}
		applyBatch(&av, entries)
	}

	if err := s.Repo.ReplaceAvailability(doctorID, av); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("availability updated",
		zap.String("doctorId", doctorID),
		zap.Int("scheduleDays", len(av.Schedules)))
	return &av, nil
}

// RemoveSlot deletes a single free slot for a date; the DaySchedule is
// dropped once its last slot is removed.
func (s *DefaultService) RemoveSlot(doctorID string, date time.Time, slot models.TimeSlot) error {
	lock := s.locks.get(doctorID)
	lock.Lock()
	defer lock.Unlock()

	doctor, err := s.Repo.GetByID(doctorID)
	if err != nil {
		return err
	}
	av := doctor.Availability

	di := findDay(&av, date)
	if di < 0 {
		return utils.NewNotFoundError("schedule not found for the selected date")
	}
	si := findSlot(&av.Schedules[di], slot)
	if si < 0 {
		return utils.NewNotFoundError("time slot not found")
	}
	if av.Schedules[di].TimeSlots[si].IsBooked {
		return utils.NewConflictError("cannot delete a booked time slot")
	}

	day := &av.Schedules[di]
	day.TimeSlots = append(day.TimeSlots[:si], day.TimeSlots[si+1:]...)
	if len(day.TimeSlots) == 0 {
		av.Schedules = append(av.Schedules[:di], av.Schedules[di+1:]...)
	}

	return s.Repo.ReplaceAvailability(doctorID, av)
}

// RemoveDay deletes the whole schedule for a date unless it holds a booked slot.
func (s *DefaultService) RemoveDay(doctorID string, date time.Time) error {
	lock := s.locks.get(doctorID)
	lock.Lock()
	defer lock.Unlock()

	doctor, err := s.Repo.GetByID(doctorID)
	if err != nil {
		return err
	}
	av := doctor.Availability

	di := findDay(&av, date)
	if di < 0 {
		return utils.NewNotFoundError("schedule not found for the selected date")
	}
	for _, slot := range av.Schedules[di].TimeSlots {
		if slot.IsBooked {
			return utils.NewConflictError("cannot delete this schedule as it has booked time slots")
		}
	}
	av.Schedules = append(av.Schedules[:di], av.Schedules[di+1:]...)

	return s.Repo.ReplaceAvailability(doctorID, av)
}

// Reserve marks a slot booked on behalf of a confirmed booking. The caller
// holds the invariant that a successful Reserve pairs with exactly one
// booking commit (or a compensating Release).
func (s *DefaultService) Reserve(doctorID string, date time.Time, slot models.TimeSlot) error {
	lock := s.locks.get(doctorID)
	lock.Lock()
	defer lock.Unlock()

	doctor, err := s.Repo.GetByID(doctorID)
	if err != nil {
		return err
	}
	av := doctor.Availability

	di := findDay(&av, date)
	if di < 0 {
		return utils.NewConflictError("the selected time slot is no longer available, please choose another date or time slot")
	}
	si := findSlot(&av.Schedules[di], slot)
	if si < 0 || av.Schedules[di].TimeSlots[si].IsBooked {
		return utils.NewConflictError("the selected time slot is no longer available, please choose another date or time slot")
	}
	av.Schedules[di].TimeSlots[si].IsBooked = true

	return s.Repo.ReplaceAvailability(doctorID, av)
}

// Release frees a previously reserved slot (booking rollback or the
// release-on-cancel policy).
func (s *DefaultService) Release(doctorID string, date time.Time, slot models.TimeSlot) error {
	lock := s.locks.get(doctorID)
	lock.Lock()
	defer lock.Unlock()

	doctor, err := s.Repo.GetByID(doctorID)
	if err != nil {
		return err
	}
	av := doctor.Availability

	di := findDay(&av, date)
	if di < 0 {
		return utils.NewNotFoundError("schedule not found for the selected date")
	}
	si := findSlot(&av.Schedules[di], slot)
	if si < 0 {
		return utils.NewNotFoundError("time slot not found")
	}
	av.Schedules[di].TimeSlots[si].IsBooked = false

	return s.Repo.ReplaceAvailability(doctorID, av)
}

func parseEntries(schedules []models.ScheduleInput) ([]dayEntry, error) {
	entries := make([]dayEntry, 0, len(schedules))
	for _, schedule := range schedules {
		day, err := time.Parse("2006-01-02", schedule.Date)
		if err != nil {
			return nil, utils.NewValidationError("invalid date %q, expected YYYY-MM-DD", schedule.Date)
		}
		if len(schedule.TimeSlots) == 0 {
			return nil, utils.NewValidationError("no time slots provided for %s", schedule.Date)
		}
		entries = append(entries, dayEntry{day: models.DayOf(day), slots: schedule.TimeSlots})
	}
	return entries, nil
}

// validateBatch runs every calendar rule across the whole batch before any
// mutation: past date, more than one month ahead, slot outside the catalog,
// and duplicates against both the stored calendar and the batch itself.
func validateBatch(av *models.Availability, entries []dayEntry, today time.Time) error {
	horizon := today.AddDate(0, maxAheadMonths, 0)
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.day.Before(today) {
			return utils.NewValidationError("you have chosen a past date, please select today or a future date")
		}
		if entry.day.After(horizon) {
			return utils.NewValidationError("you can only schedule appointments for the next one month")
		}

		di := findDay(av, entry.day)
		for _, slot := range entry.slots {
			if !models.ValidSlot(slot) {
				return utils.NewValidationError("invalid time slot %s", slot.Label())
			}
			if di >= 0 && findSlot(&av.Schedules[di], slot) >= 0 {
				return utils.NewConflictError("time slot %s on %s is already marked available", slot.Label(), entry.day.Format("2006-01-02"))
			}
			key := entry.day.Format("20060102") + "|" + slot.Label()
			if seen[key] {
				return utils.NewConflictError("time slot %s on %s appears twice in the request", slot.Label(), entry.day.Format("2006-01-02"))
			}
			seen[key] = true
		}
	}
	return nil
}

func applyBatch(av *models.Availability, entries []dayEntry) {
	for _, entry := range entries {
		statuses := make([]models.SlotStatus, 0, len(entry.slots))
		for _, slot := range entry.slots {
			statuses = append(statuses, models.SlotStatus{
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			})
		}
		if di := findDay(av, entry.day); di >= 0 {
			av.Schedules[di].TimeSlots = append(av.Schedules[di].TimeSlots, statuses...)
		} else {
			av.Schedules = append(av.Schedules, models.DaySchedule{Date: entry.day, TimeSlots: statuses})
		}
	}
}

func findDay(av *models.Availability, date time.Time) int {
	day := models.DayOf(date)
	for i := range av.Schedules {
		if models.DayOf(av.Schedules[i].Date).Equal(day) {
			return i
		}
	}
	return -1
}

func findSlot(schedule *models.DaySchedule, slot models.TimeSlot) int {
	for i := range schedule.TimeSlots {
		if schedule.TimeSlots[i].StartTime == slot.StartTime && schedule.TimeSlots[i].EndTime == slot.EndTime {
			return i
		}
	}
	return -1
}
