package appointment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	patientRepo "medibook/database/repository/patient"
	providerRepo "medibook/database/repository/provider"
	"medibook/models"
)

// In-memory repositories for engine tests. Reads and writes copy values the
// way a real store would, so aliasing bugs in the engine surface here.

type memProviderRepo struct {
	mu        sync.Mutex
	providers map[string]models.Provider
	skipSaves int // let this many Update calls succeed before failures start
	failSaves int // then fail this many
}

func newMemProviderRepo(providers ...*models.Provider) *memProviderRepo {
	r := &memProviderRepo{providers: make(map[string]models.Provider)}
	for _, p := range providers {
		r.providers[p.ID] = snapshotProvider(p)
	}
	return r
}

func snapshotProvider(p *models.Provider) models.Provider {
	cp := *p
	cp.Availability = cloneWindows(p.Availability)
	return cp
}

func (r *memProviderRepo) GetByID(id string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	cp := snapshotProvider(&p)
	return &cp, nil
}

func (r *memProviderRepo) Create(p *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.ID] = snapshotProvider(p)
	return nil
}

func (r *memProviderRepo) Update(p *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.skipSaves > 0 {
		r.skipSaves--
	} else if r.failSaves > 0 {
		r.failSaves--
		return errors.New("simulated provider save failure")
	}
	if _, ok := r.providers[p.ID]; !ok {
		return providerRepo.ErrNotFound
	}
	r.providers[p.ID] = snapshotProvider(p)
	return nil
}

func (r *memProviderRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[id]; !ok {
		return providerRepo.ErrNotFound
	}
	delete(r.providers, id)
	return nil
}

// intervalCount totals booked intervals across all of a provider's windows.
func (r *memProviderRepo) intervalCount(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, w := range r.providers[id].Availability {
		total += len(w.BookedIntervals)
	}
	return total
}

// intervalsInWindow returns the intervals of one specific window, identified
// by day and window start, for providers with several windows per day.
func (r *memProviderRepo) intervalsInWindow(id, day, windowStart string) []models.BookedInterval {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.providers[id].Availability {
		if w.DayOfWeek == day && w.StartTime == windowStart {
			return append([]models.BookedInterval(nil), w.BookedIntervals...)
		}
	}
	return nil
}

func (r *memProviderRepo) intervalsOn(id, day string) []models.BookedInterval {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.providers[id].Availability {
		if w.DayOfWeek == day {
			return append([]models.BookedInterval(nil), w.BookedIntervals...)
		}
	}
	return nil
}

type memPatientRepo struct {
	mu       sync.Mutex
	patients map[string]models.Patient
}

func newMemPatientRepo(patients ...*models.Patient) *memPatientRepo {
	r := &memPatientRepo{patients: make(map[string]models.Patient)}
	for _, p := range patients {
		r.patients[p.ID] = *p
	}
	return r
}

func (r *memPatientRepo) GetByID(id string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, patientRepo.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (r *memPatientRepo) Create(p *models.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[p.ID] = *p
	return nil
}

func (r *memPatientRepo) Update(p *models.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[p.ID]; !ok {
		return patientRepo.ErrNotFound
	}
	r.patients[p.ID] = *p
	return nil
}

type memAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[string]models.Appointment
	failUpdates  int
	failDeletes  int
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{appointments: make(map[string]models.Appointment)}
}

func (r *memAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := a
	return &cp, nil
}

func (r *memAppointmentRepo) Create(a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[a.ID] = *a
	return nil
}

func (r *memAppointmentRepo) Update(a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdates > 0 {
		r.failUpdates--
		return errors.New("simulated appointment save failure")
	}
	if _, ok := r.appointments[a.ID]; !ok {
		return appointmentRepo.ErrNotFound
	}
	r.appointments[a.ID] = *a
	return nil
}

func (r *memAppointmentRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDeletes > 0 {
		r.failDeletes--
		return errors.New("simulated appointment delete failure")
	}
	if _, ok := r.appointments[id]; !ok {
		return appointmentRepo.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *memAppointmentRepo) Find(filter appointmentRepo.Filter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appointments {
		if filter.ProviderID != "" && a.ProviderID != filter.ProviderID {
			continue
		}
		if filter.PatientID != "" && a.PatientID != filter.PatientID {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *memAppointmentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.appointments)
}

// recordingNotifier counts pushes without talking to FCM. Pushes run on
// background goroutines, so tests assert through the buffered channel when
// they need to observe one.
type recordingNotifier struct {
	pushes chan string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{pushes: make(chan string, 16)}
}

func (n *recordingNotifier) SendPatientPushNotification(ctx context.Context, patientID, title, body string) error {
	n.pushes <- "patient:" + body
	return nil
}

func (n *recordingNotifier) SendProviderPushNotification(ctx context.Context, providerID, title, body string) error {
	n.pushes <- "provider:" + body
	return nil
}

// recordingReminder captures the last scheduled reminder.
type recordingReminder struct {
	mu      sync.Mutex
	payload models.ReminderPayload
	fireAt  time.Time
	calls   int
}

func (s *recordingReminder) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = payload
	s.fireAt = fireAt
	s.calls++
	return nil
}
