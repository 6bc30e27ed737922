package handler_test

import (
	"context"
	"database/sql"
	"slices"
	"sync"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/cache"
	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/repository"
	"github.com/google/uuid"
)

// fakeStore 是 handler.Store 的内存实现，只保证测试中用到的语义
type fakeStore struct {
	mu              sync.Mutex
	staff           []*domain.Staff
	shifts          []*domain.Shift
	forecasts       []*domain.DemandForecast
	templates       []*domain.ScheduleTemplate
	recommendations []*domain.AiRecommendation
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) GetAllStaff(includeInactive bool) ([]*domain.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff := make([]*domain.Staff, 0)
	for _, member := range s.staff {
		if includeInactive || member.IsActive {
			c := *member
			staff = append(staff, &c)
		}
	}
	return staff, nil
}

func (s *fakeStore) GetStaffByID(id string) (*domain.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, member := range s.staff {
		if member.ID == id {
			c := *member
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeStore) CreateStaff(member *domain.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	member.ID = uuid.NewString()
	member.CreatedAt = time.Now()
	member.Version = 1
	c := *member
	s.staff = append(s.staff, &c)
	return nil
}

func (s *fakeStore) UpdateStaff(member *domain.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.staff {
		if existing.ID == member.ID && existing.Version == member.Version {
			member.Version++
			c := *member
			s.staff[i] = &c
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *fakeStore) DeactivateStaff(member *domain.Staff) error {
	if !member.Deactivate() {
		return repository.ErrStaffAlreadyInactive
	}
	return s.UpdateStaff(member)
}

func (s *fakeStore) GetShifts(filter repository.ShiftFilter) ([]*domain.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shifts := make([]*domain.Shift, 0)
	for _, shift := range s.shifts {
		switch {
		case filter.Date != "" && shift.Date != filter.Date:
		case filter.Start != "" && shift.Date < filter.Start:
		case filter.End != "" && shift.Date > filter.End:
		case filter.StaffID != "" && shift.StaffID != filter.StaffID:
		default:
			c := *shift
			shifts = append(shifts, &c)
		}
	}
	return shifts, nil
}

func (s *fakeStore) GetShiftByID(id string) (*domain.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, shift := range s.shifts {
		if shift.ID == id {
			c := *shift
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeStore) CreateShift(shift *domain.Shift) error {
	shift.ID = uuid.NewString()
	return s.CreateShifts([]*domain.Shift{shift})
}

func (s *fakeStore) CreateShifts(shifts []*domain.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, shift := range shifts {
		shift.CreatedAt = time.Now()
		shift.Version = 1
		c := *shift
		s.shifts = append(s.shifts, &c)
	}
	return nil
}

func (s *fakeStore) UpdateShift(shift *domain.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.shifts {
		if existing.ID == shift.ID && existing.Version == shift.Version {
			shift.Version++
			c := *shift
			s.shifts[i] = &c
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *fakeStore) DeleteShift(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shifts = slices.DeleteFunc(s.shifts, func(shift *domain.Shift) bool { return shift.ID == id })
	return nil
}

func (s *fakeStore) GetDemandForecasts(start, end string) ([]*domain.DemandForecast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	forecasts := make([]*domain.DemandForecast, 0)
	for _, f := range s.forecasts {
		if start != "" && end != "" && (f.Date < start || f.Date > end) {
			continue
		}
		c := *f
		forecasts = append(forecasts, &c)
	}
	return forecasts, nil
}

func (s *fakeStore) GetDemandForecastByID(id string) (*domain.DemandForecast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.forecasts {
		if f.ID == id {
			c := *f
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeStore) CreateDemandForecast(f *domain.DemandForecast) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.ID = uuid.NewString()
	f.CreatedAt = time.Now()
	c := *f
	s.forecasts = append(s.forecasts, &c)
	return nil
}

func (s *fakeStore) UpdateActualDemand(f *domain.DemandForecast) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.forecasts {
		if existing.ID == f.ID {
			existing.ActualDemand = f.ActualDemand
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *fakeStore) GetAllScheduleTemplates() ([]*domain.ScheduleTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.templates), nil
}

func (s *fakeStore) GetScheduleTemplateByID(id string) (*domain.ScheduleTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.templates {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeStore) GetDefaultScheduleTemplate() (*domain.ScheduleTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.templates {
		if st.IsDefault {
			return st, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeStore) CreateScheduleTemplate(st *domain.ScheduleTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st.IsDefault {
		for _, existing := range s.templates {
			existing.IsDefault = false
		}
	}
	st.ID = uuid.NewString()
	st.CreatedAt = time.Now()
	s.templates = append(s.templates, st)
	return nil
}

func (s *fakeStore) GetAiRecommendations(isRead *bool) ([]*domain.AiRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := make([]*domain.AiRecommendation, 0)
	for _, rec := range s.recommendations {
		if isRead == nil || rec.IsRead == *isRead {
			c := *rec
			recs = append(recs, &c)
		}
	}
	return recs, nil
}

func (s *fakeStore) GetAiRecommendationByID(id string) (*domain.AiRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.recommendations {
		if rec.ID == id {
			c := *rec
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeStore) CreateAiRecommendation(rec *domain.AiRecommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now()
	c := *rec
	s.recommendations = append(s.recommendations, &c)
	return nil
}

func (s *fakeStore) MarkAiRecommendationRead(id string) (*domain.AiRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.recommendations {
		if rec.ID == id {
			rec.IsRead = true
			c := *rec
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []domain.MailMessage
}

func (n *fakeNotifier) Publish(_ context.Context, msg domain.MailMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.messages = append(n.messages, msg)
	return nil
}

func (n *fakeNotifier) Messages() []domain.MailMessage {
	n.mu.Lock()
	defer n.mu.Unlock()

	return slices.Clone(n.messages)
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*cache.Predictions
	hits    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*cache.Predictions)}
}

func (c *fakeCache) Get(_ context.Context, key string) (*cache.Predictions, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return p, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, p *cache.Predictions) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = p
	c.sets++
	return nil
}
