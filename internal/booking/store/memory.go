package store

import (
	"context"
	"sort"
	"sync"

	"medibook/internal/booking/models"
)

// InMemoryStore keeps appointments in a map. Listing sorts on demand; fine
// at development scale.
type InMemoryStore struct {
	mu           sync.RWMutex
	appointments map[string]models.Appointment
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{appointments: make(map[string]models.Appointment)}
}

func (s *InMemoryStore) Save(_ context.Context, appt models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments[appt.ID] = appt
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, appt models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[appt.ID]; !ok {
		return ErrNotFound
	}
	s.appointments[appt.ID] = appt
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if appt, ok := s.appointments[id]; ok {
		return appt, nil
	}
	return models.Appointment{}, ErrNotFound
}

func (s *InMemoryStore) List(_ context.Context, filter Filter, page, limit int) ([]models.Appointment, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Appointment
	for _, appt := range s.appointments {
		if filter.PatientID != "" && appt.PatientID != filter.PatientID {
			continue
		}
		if filter.DoctorID != "" && appt.DoctorID != filter.DoctorID {
			continue
		}
		matched = append(matched, appt)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (page - 1) * limit
	if start >= total {
		return []models.Appointment{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return append([]models.Appointment{}, matched[start:end]...), total, nil
}
