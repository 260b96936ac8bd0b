package booking

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook/models"
	"medibook/services/availability"
	"medibook/utils"
)

// In-memory repository fakes. They mirror the stores' contracts (including
// the ledger's unique active-slot constraint) so the workflow can be
// exercised end to end without MongoDB.

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
	serials  map[string]int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[string]*models.Booking),
		serials:  make(map[string]int),
	}
}

func (r *fakeBookingRepo) Create(booking *models.Booking) error {
	for _, b := range r.bookings {
		if b.Status == models.BookingScheduled &&
			b.DoctorID == booking.DoctorID &&
			b.BookingDate.Equal(booking.BookingDate) &&
			b.BookingTimeSlot == booking.BookingTimeSlot {
			return utils.NewConflictError("this date or time slot is already booked, please choose another date or time slot")
		}
	}
	booking.CreatedAt = time.Now().UTC()
	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, utils.NewNotFoundError("booking not found")
	}
	out := *b
	return &out, nil
}

func (r *fakeBookingRepo) GetByIDs(ids []string) ([]models.Booking, error) {
	out := make([]models.Booking, 0, len(ids))
	for _, id := range ids {
		if b, ok := r.bookings[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetByPatient(patientID string) ([]models.Booking, error) {
	out := make([]models.Booking, 0)
	for _, b := range r.bookings {
		if b.PatientID == patientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindScheduled(patientID, doctorID string, day time.Time, slot string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.PatientID == patientID && b.DoctorID == doctorID &&
			b.Status == models.BookingScheduled &&
			models.DayOf(b.BookingDate).Equal(models.DayOf(day)) &&
			b.BookingTimeSlot == slot {
			out := *b
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) UpdateFields(id string, fields models.UpdateBookingFields) error {
	b, ok := r.bookings[id]
	if !ok {
		return utils.NewNotFoundError("booking not found")
	}
	fields.Apply(b)
	return nil
}

func (r *fakeBookingRepo) NextSerial(day time.Time) (int, error) {
	key := models.DayOf(day).Format("20060102")
	r.serials[key]++
	return r.serials[key], nil
}

func (r *fakeBookingRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeDoctorRepo struct {
	doctors map[string]*models.Doctor
}

func newFakeDoctorRepo(doctors ...*models.Doctor) *fakeDoctorRepo {
	repo := &fakeDoctorRepo{doctors: make(map[string]*models.Doctor)}
	for _, d := range doctors {
		repo.doctors[d.ID] = d
	}
	return repo
}

func (r *fakeDoctorRepo) Create(doctor *models.Doctor) error {
	r.doctors[doctor.ID] = doctor
	return nil
}

func (r *fakeDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, utils.NewNotFoundError("doctor not found")
	}
	out := *d
	return &out, nil
}

func (r *fakeDoctorRepo) GetByEmail(email string) (*models.Doctor, error) {
	for _, d := range r.doctors {
		if d.Email == email {
			out := *d
			return &out, nil
		}
	}
	return nil, utils.NewNotFoundError("doctor not found")
}

func (r *fakeDoctorRepo) GetAll() ([]models.Doctor, error) {
	out := make([]models.Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDoctorRepo) ReplaceAvailability(id string, av models.Availability) error {
	d, ok := r.doctors[id]
	if !ok {
		return utils.NewNotFoundError("doctor not found")
	}
	d.Availability = av
	return nil
}

func (r *fakeDoctorRepo) AppendBooking(id, bookingID string) error {
	d, ok := r.doctors[id]
	if !ok {
		return utils.NewNotFoundError("doctor not found")
	}
	d.Bookings = append(d.Bookings, bookingID)
	return nil
}

func (r *fakeDoctorRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakePatientRepo struct {
	patients map[string]*models.Patient
}

func newFakePatientRepo(patients ...*models.Patient) *fakePatientRepo {
	repo := &fakePatientRepo{patients: make(map[string]*models.Patient)}
	for _, p := range patients {
		repo.patients[p.ID] = p
	}
	return repo
}

func (r *fakePatientRepo) Create(patient *models.Patient) error {
	r.patients[patient.ID] = patient
	return nil
}

func (r *fakePatientRepo) GetByID(id string) (*models.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, utils.NewNotFoundError("patient not found")
	}
	out := *p
	return &out, nil
}

func (r *fakePatientRepo) GetByEmail(email string) (*models.Patient, error) {
	for _, p := range r.patients {
		if p.Email == email {
			out := *p
			return &out, nil
		}
	}
	return nil, utils.NewNotFoundError("patient not found")
}

func (r *fakePatientRepo) AppendBooking(id, bookingID string) error {
	p, ok := r.patients[id]
	if !ok {
		return utils.NewNotFoundError("patient not found")
	}
	p.Bookings = append(p.Bookings, bookingID)
	return nil
}

func (r *fakePatientRepo) EnsureIndexes(ctx context.Context) error { return nil }

// fakeNotifier records sent messages; failCancellation simulates a mail
// outage on the cancellation path.
type fakeNotifier struct {
	lastOTP          string
	confirmations    int
	cancellations    int
	reminders        int
	failCancellation bool
}

func (n *fakeNotifier) SendBookingOTP(ctx context.Context, patient *models.Patient, otp string) error {
	n.lastOTP = otp
	return nil
}

func (n *fakeNotifier) SendBookingConfirmation(ctx context.Context, patient *models.Patient, booking *models.Booking) error {
	n.confirmations++
	return nil
}

func (n *fakeNotifier) SendBookingCancellation(ctx context.Context, patient *models.Patient, booking *models.Booking) error {
	n.cancellations++
	if n.failCancellation {
		return utils.NewDependencyError("send cancellation", fmt.Errorf("smtp down"))
	}
	return nil
}

func (n *fakeNotifier) SendBookingReminder(ctx context.Context, patient *models.Patient, booking *models.Booking) error {
	n.reminders++
	return nil
}

type testEnv struct {
	svc      *DefaultService
	bookings *fakeBookingRepo
	doctors  *fakeDoctorRepo
	patients *fakePatientRepo
	notifier *fakeNotifier
	day      time.Time
	slot     string
}

// newTestEnv wires the workflow against in-memory stores, a miniredis OTP
// broker, and one doctor offering the first catalog slot tomorrow.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	_, client := setupTestRedis(t)

	day := models.DayOf(time.Now().UTC()).AddDate(0, 0, 1)
	doctors := newFakeDoctorRepo(&models.Doctor{
		ID:             "doc-1",
		Name:           "Dr. Grey",
		Specialization: "Cardiology",
		Availability: models.Availability{
			IsAvailable: true,
			Schedules: []models.DaySchedule{{
				Date: day,
				TimeSlots: []models.SlotStatus{{
					StartTime: models.GlobalTimeSlots[0].StartTime,
					EndTime:   models.GlobalTimeSlots[0].EndTime,
				}},
			}},
		},
	})
	patients := newFakePatientRepo(&models.Patient{
		ID:        "pat-1",
		FirstName: "Jamie",
		Email:     "jamie@example.com",
	})
	bookings := newFakeBookingRepo()
	notifier := &fakeNotifier{}

	svc := &DefaultService{
		Bookings:     bookings,
		Doctors:      doctors,
		Patients:     patients,
		Availability: availability.NewService(doctors),
		OTP:          NewOTPBroker(client, OTPTTL),
		Notifier:     notifier,
	}
	return &testEnv{
		svc:      svc,
		bookings: bookings,
		doctors:  doctors,
		patients: patients,
		notifier: notifier,
		day:      day,
		slot:     models.GlobalTimeSlots[0].Label(),
	}
}

func (e *testEnv) initiateReq() models.InitiateBookingRequest {
	return models.InitiateBookingRequest{
		DoctorID:        "doc-1",
		PatientName:     "Jamie Doe",
		PatientPhone:    "555-0101",
		PatientSex:      "F",
		PatientAge:      "34",
		PatientAddress:  "12 Main St",
		BookingDate:     e.day.Format("2006-01-02"),
		BookingTimeSlot: e.slot,
	}
}

func (e *testEnv) confirm(t *testing.T) *models.Booking {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.svc.Initiate(ctx, "pat-1", e.initiateReq()))
	booking, err := e.svc.Confirm(ctx, "pat-1", e.notifier.lastOTP)
	require.NoError(t, err)
	return booking
}

func TestInitiateSendsOTPWithoutTouchingLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.svc.Initiate(ctx, "pat-1", env.initiateReq()))

	assert.Len(t, env.notifier.lastOTP, 6)
	assert.Empty(t, env.bookings.bookings)
	doc, _ := env.doctors.GetByID("doc-1")
	assert.False(t, doc.Availability.Schedules[0].TimeSlots[0].IsBooked)
}

func TestInitiateRejectsUnknownDoctor(t *testing.T) {
	env := newTestEnv(t)
	req := env.initiateReq()
	req.DoctorID = "doc-missing"

	err := env.svc.Initiate(context.Background(), "pat-1", req)
	var nfErr *utils.NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestInitiateRejectsInvalidSlot(t *testing.T) {
	env := newTestEnv(t)
	req := env.initiateReq()
	req.BookingTimeSlot = "06:00 AM - 07:00 AM"

	err := env.svc.Initiate(context.Background(), "pat-1", req)
	var vErr *utils.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestInitiateRejectsDuplicateActiveBooking(t *testing.T) {
	env := newTestEnv(t)
	env.confirm(t)

	err := env.svc.Initiate(context.Background(), "pat-1", env.initiateReq())
	var cErr *utils.ConflictError
	require.ErrorAs(t, err, &cErr)
}

func TestConfirmCreatesBooking(t *testing.T) {
	env := newTestEnv(t)

	booking := env.confirm(t)

	assert.Equal(t, models.BookingScheduled, booking.Status)
	assert.Equal(t, "doc-1", booking.DoctorID)
	assert.Equal(t, env.slot, booking.BookingTimeSlot)
	assert.Regexp(t, regexp.MustCompile(`^\d{8}-\d{3}$`), booking.SerialNumber)
	assert.Equal(t, env.day.Format("20060102")+"-001", booking.SerialNumber)

	// Slot reserved, back-references written, confirmation sent.
	doc, _ := env.doctors.GetByID("doc-1")
	assert.True(t, doc.Availability.Schedules[0].TimeSlots[0].IsBooked)
	assert.Contains(t, doc.Bookings, booking.ID)
	pat, _ := env.patients.GetByID("pat-1")
	assert.Contains(t, pat.Bookings, booking.ID)
	assert.Equal(t, 1, env.notifier.confirmations)
}

func TestConfirmConsumesOTP(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.svc.Initiate(ctx, "pat-1", env.initiateReq()))
	code := env.notifier.lastOTP

	_, err := env.svc.Confirm(ctx, "pat-1", code)
	require.NoError(t, err)

	_, err = env.svc.Confirm(ctx, "pat-1", code)
	var otpErr *utils.OtpError
	require.ErrorAs(t, err, &otpErr)
	assert.Equal(t, utils.OtpNotFoundOrExpired, otpErr.Reason)
}

func TestConfirmRejectsWrongOTP(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.svc.Initiate(ctx, "pat-1", env.initiateReq()))

	wrong := "000000"
	if wrong == env.notifier.lastOTP {
		wrong = "000001"
	}
	_, err := env.svc.Confirm(ctx, "pat-1", wrong)
	var otpErr *utils.OtpError
	require.ErrorAs(t, err, &otpErr)
	assert.Equal(t, utils.OtpInvalidCode, otpErr.Reason)
	assert.Empty(t, env.bookings.bookings)
}

func TestConfirmFailsWhenSlotTakenDuringOTPWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.svc.Initiate(ctx, "pat-1", env.initiateReq()))
	code := env.notifier.lastOTP

	// Another patient grabs the slot while the OTP is outstanding.
	slot, _ := models.ParseSlotLabel(env.slot)
	require.NoError(t, env.svc.Availability.Reserve("doc-1", env.day, slot))

	_, err := env.svc.Confirm(ctx, "pat-1", code)
	var cErr *utils.ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Empty(t, env.bookings.bookings)
}

func TestSerialNumbersIncrementPerDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Open a second slot so a second booking on the same day is possible.
	_, err := env.svc.Availability.Update("doc-1", models.AvailabilityUpdateRequest{
		Schedules: []models.ScheduleInput{{
			Date:      env.day.Format("2006-01-02"),
			TimeSlots: []models.TimeSlot{models.GlobalTimeSlots[1]},
		}},
	})
	require.NoError(t, err)

	first := env.confirm(t)
	assert.True(t, first.BookingDate.Equal(env.day))

	req := env.initiateReq()
	req.BookingTimeSlot = models.GlobalTimeSlots[1].Label()
	require.NoError(t, env.svc.Initiate(ctx, "pat-1", req))
	second, err := env.svc.Confirm(ctx, "pat-1", env.notifier.lastOTP)
	require.NoError(t, err)

	prefix := env.day.Format("20060102")
	assert.Equal(t, prefix+"-001", first.SerialNumber)
	assert.Equal(t, prefix+"-002", second.SerialNumber)
}

func TestCancelScheduledBooking(t *testing.T) {
	env := newTestEnv(t)
	booking := env.confirm(t)

	err := env.svc.Cancel(context.Background(), "pat-1", booking.ID, "feeling better")
	require.NoError(t, err)

	stored, _ := env.bookings.GetByID(booking.ID)
	assert.Equal(t, models.BookingCancelled, stored.Status)
	assert.NotNil(t, stored.CancelledAt)
	assert.Equal(t, "feeling better", stored.CancellationReason)
	assert.Equal(t, 1, env.notifier.cancellations)

	// Default policy keeps the slot blocked.
	doc, _ := env.doctors.GetByID("doc-1")
	assert.True(t, doc.Availability.Schedules[0].TimeSlots[0].IsBooked)
}

func TestCancelReleasesSlotWhenPolicyEnabled(t *testing.T) {
	env := newTestEnv(t)
	env.svc.ReleaseSlotOnCancel = true
	booking := env.confirm(t)

	require.NoError(t, env.svc.Cancel(context.Background(), "pat-1", booking.ID, ""))

	doc, _ := env.doctors.GetByID("doc-1")
	assert.False(t, doc.Availability.Schedules[0].TimeSlots[0].IsBooked)
}

func TestCancelRejectsTerminalStates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	booking := env.confirm(t)

	require.NoError(t, env.svc.Cancel(ctx, "pat-1", booking.ID, ""))

	err := env.svc.Cancel(ctx, "pat-1", booking.ID, "")
	var cErr *utils.ConflictError
	require.ErrorAs(t, err, &cErr)
}

func TestCancelRejectsForeignBooking(t *testing.T) {
	env := newTestEnv(t)
	booking := env.confirm(t)
	require.NoError(t, env.patients.Create(&models.Patient{ID: "pat-2", FirstName: "Sam", Email: "sam@example.com"}))

	err := env.svc.Cancel(context.Background(), "pat-2", booking.ID, "")
	var nfErr *utils.NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestCancelSucceedsWhenEmailFails(t *testing.T) {
	env := newTestEnv(t)
	env.notifier.failCancellation = true
	booking := env.confirm(t)

	require.NoError(t, env.svc.Cancel(context.Background(), "pat-1", booking.ID, ""))

	stored, _ := env.bookings.GetByID(booking.ID)
	assert.Equal(t, models.BookingCancelled, stored.Status)
}

func TestListEnrichesWithDoctor(t *testing.T) {
	env := newTestEnv(t)
	booking := env.confirm(t)

	list, err := env.svc.List(context.Background(), "pat-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, booking.ID, list[0].ID)
	assert.Equal(t, "Dr. Grey", list[0].DoctorName)
	assert.Equal(t, "Cardiology", list[0].DoctorSpecialization)
}

func TestChangeStatusCompletesBooking(t *testing.T) {
	env := newTestEnv(t)
	booking := env.confirm(t)

	updated, err := env.svc.ChangeStatus(context.Background(), "doc-1", models.ChangeBookingStatusRequest{
		BookingID: booking.ID,
		Status:    models.BookingCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, updated.Status)

	stored, _ := env.bookings.GetByID(booking.ID)
	assert.Equal(t, models.BookingCompleted, stored.Status)
}

func TestChangeStatusRejectsForeignDoctorAndBadTargets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	booking := env.confirm(t)

	_, err := env.svc.ChangeStatus(ctx, "doc-2", models.ChangeBookingStatusRequest{
		BookingID: booking.ID,
		Status:    models.BookingCompleted,
	})
	var nfErr *utils.NotFoundError
	require.ErrorAs(t, err, &nfErr)

	_, err = env.svc.ChangeStatus(ctx, "doc-1", models.ChangeBookingStatusRequest{
		BookingID: booking.ID,
		Status:    models.BookingCancelled,
	})
	var vErr *utils.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = env.svc.ChangeStatus(ctx, "doc-1", models.ChangeBookingStatusRequest{
		BookingID: booking.ID,
		Status:    models.BookingCompleted,
	})
	require.NoError(t, err)

	_, err = env.svc.ChangeStatus(ctx, "doc-1", models.ChangeBookingStatusRequest{
		BookingID: booking.ID,
		Status:    models.BookingCompleted,
	})
	var cErr *utils.ConflictError
	require.ErrorAs(t, err, &cErr)
}

func TestBookingLifecycleEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.svc.Initiate(ctx, "pat-1", env.initiateReq()))
	booking, err := env.svc.Confirm(ctx, "pat-1", env.notifier.lastOTP)
	require.NoError(t, err)
	assert.Equal(t, models.BookingScheduled, booking.Status)

	list, err := env.svc.List(ctx, "pat-1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, env.svc.Cancel(ctx, "pat-1", booking.ID, "schedule conflict"))

	stored, _ := env.bookings.GetByID(booking.ID)
	assert.True(t, stored.Terminal())
}
