package booking

import "medibook/utils"

// Workflow error constructors. All map onto the shared taxonomy so the
// handler layer translates them uniformly.

func newDuplicateBookingError() error {
	return utils.NewConflictError("this date or time slot is already booked, please choose another date or time slot")
}

func newAlreadyCancelledError() error {
	return utils.NewConflictError("booking is already cancelled")
}

func newAlreadyCompletedError() error {
	return utils.NewConflictError("booking is already completed")
}

func newBookingNotFoundError() error {
	return utils.NewNotFoundError("booking not found or not authorized")
}
