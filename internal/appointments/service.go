package appointments

import (
	"strconv"
	"sync"
	"time"

	"github.com/medme/outbound-voice-messaging/pkg/logging"
)

// Service owns appointment creation, listing, lookup, and reminder-state
// bookkeeping over a FileStore.
type Service struct {
	store  *FileStore
	logger *logging.Logger

	idMu   sync.Mutex
	lastID int64
}

// NewService creates an appointment service backed by the given store.
func NewService(store *FileStore, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, logger: logger}
}

// Create validates the request, assigns a fresh id, stamps createdAt, and
// persists the new appointment. Nothing is written on validation failure.
func (s *Service) Create(req CreateAppointmentRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	appt := Appointment{
		ID:                  s.nextID(),
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		PhoneNumber:         req.PhoneNumber,
		AppointmentDateTime: req.AppointmentDateTime,
		ReminderSent:        false,
		CreatedAt:           time.Now().UTC().Format(time.RFC3339),
	}

	err := s.store.Update(func(doc *Document) error {
		doc.Patients = append(doc.Patients, appt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment created", "id", appt.ID, "appointment_at", appt.AppointmentDateTime)
	return &appt, nil
}

// List returns all appointments in store order.
func (s *Service) List() ([]Appointment, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Patients, nil
}

// FindByID looks up an appointment by id with a linear scan.
func (s *Service) FindByID(id string) (*Appointment, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Patients {
		if doc.Patients[i].ID == id {
			appt := doc.Patients[i]
			return &appt, nil
		}
	}
	return nil, ErrNotFound
}

// MarkReminderSent flips the reminder flag to true and persists. The flag
// never reverts; marking an already-sent appointment is a no-op rewrite.
func (s *Service) MarkReminderSent(id string) error {
	return s.store.Update(func(doc *Document) error {
		for i := range doc.Patients {
			if doc.Patients[i].ID == id {
				doc.Patients[i].ReminderSent = true
				return nil
			}
		}
		return ErrNotFound
	})
}

// nextID generates a time-based id, bumping forward when two creations land
// in the same millisecond so ids stay unique within the process.
func (s *Service) nextID() string {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}
