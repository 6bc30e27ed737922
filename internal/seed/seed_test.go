package seed_test

import (
	"errors"
	"testing"
	"time"

	"github.com/brightline5/shift-planner/backend/internal/domain"
	"github.com/brightline5/shift-planner/backend/internal/seed"
	"github.com/brightline5/shift-planner/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	staff     []*domain.Staff
	forecasts []*domain.DemandForecast
	templates []*domain.ScheduleTemplate
	failEvery int
	calls     int
}

func (m *memoryStore) fail() bool {
	m.calls++
	return m.failEvery > 0 && m.calls%m.failEvery == 0
}

func (m *memoryStore) CreateStaff(s *domain.Staff) error {
	if m.fail() {
		return errors.New("duplicate email")
	}
	m.staff = append(m.staff, s)
	return nil
}

func (m *memoryStore) CreateDemandForecast(f *domain.DemandForecast) error {
	m.forecasts = append(m.forecasts, f)
	return nil
}

func (m *memoryStore) CreateScheduleTemplate(st *domain.ScheduleTemplate) error {
	m.templates = append(m.templates, st)
	return nil
}

func TestSeedStaff(t *testing.T) {
	store := &memoryStore{failEvery: 3}

	inserted := seed.SeedStaff(store, 9, "example.com")

	assert.Equal(t, 6, inserted)
	assert.Len(t, store.staff, 6)
	for _, s := range store.staff {
		assert.True(t, s.IsActive)
		assert.Contains(t, s.Email, "@example.com")
	}
}

func TestSeedDemandForecasts(t *testing.T) {
	store := &memoryStore{}

	inserted := seed.SeedDemandForecasts(store, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 7, true)

	assert.Equal(t, 21, inserted)
	for _, f := range store.forecasts {
		require.NotNil(t, f.ActualDemand)
		assert.Equal(t, domain.StaffingFor(f.PredictedDemand), f.StaffingRecommendation)
	}
}

func TestDefaultTemplate(t *testing.T) {
	template := seed.DefaultTemplate()

	require.Len(t, template, 7)
	require.NoError(t, utils.ValidateScheduleTemplate(template))

	monday := template["monday"]
	// 40*0.15=6, 40*0.08=3.2, 40*0.05=2
	assert.Equal(t, []domain.SlotStaffing{
		{Position: "Server", Count: 6},
		{Position: "Line Cook", Count: 4},
		{Position: "Host", Count: 2},
	}, monday.Morning)

	// 晚市额外需要 1 名经理
	last := monday.Evening[len(monday.Evening)-1]
	assert.Equal(t, domain.SlotStaffing{Position: "Manager", Count: 1}, last)

	// 周六客流乘以 1.4：80*1.4=112，112*0.22=24.64
	assert.Equal(t, int32(25), template["saturday"].Evening[0].Count)
}

func TestSeedDefaultTemplate(t *testing.T) {
	store := &memoryStore{}

	st, err := seed.SeedDefaultTemplate(store)

	require.NoError(t, err)
	assert.True(t, st.IsDefault)
	require.Len(t, store.templates, 1)
	assert.Same(t, st, store.templates[0])
}
