package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlab/booking-service/internal/domain"
	"github.com/atlab/booking-service/pkg/types"
)

type fakeRepo struct {
	snapshot    []*domain.Booking
	appended    []*domain.Booking
	overwritten [][]*domain.Booking
}

func (r *fakeRepo) Load(_ context.Context) ([]*domain.Booking, error) {
	return r.snapshot, nil
}

func (r *fakeRepo) Append(_ context.Context, b *domain.Booking) error {
	r.appended = append(r.appended, b)
	return nil
}

func (r *fakeRepo) Overwrite(_ context.Context, all []*domain.Booking) error {
	r.overwritten = append(r.overwritten, all)
	return nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (p *fixedTime) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testLab(t *testing.T) Lab {
	t.Helper()
	tz, err := time.LoadLocation(domain.DefaultTimezone)
	require.NoError(t, err)

	hours, err := domain.ParseWeekHours(map[string][]string{
		"monday":    {"09:00", "21:00"},
		"tuesday":   {"09:00", "21:00"},
		"wednesday": {"08:30", "21:00"},
		"thursday":  {"08:15", "20:30"},
		"friday":    {"09:15", "15:00"},
		"saturday":  {"09:15", "13:00"},
	})
	require.NoError(t, err)

	return Lab{
		Hours:       map[domain.Location]domain.WeekHours{domain.LocationSLO: hours},
		HorizonDays: domain.HorizonDays,
		Timezone:    tz,
	}
}

func newTestUseCase(t *testing.T, repo *fakeRepo, now time.Time) *UseCase {
	t.Helper()
	uc := NewUseCase(repo, &fakeTxManager{}, testLab(t), nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func singleBooking(tz *time.Location) *domain.Booking {
	return &domain.Booking{
		ID:        3,
		GroupID:   "group-1",
		Name:      "Jane Doe",
		Email:     "jane.doe@my.cuesta.edu",
		StudentID: "900123456",
		Exam:      "4",
		Slot: domain.NewSlot(domain.LocationSLO,
			time.Date(2025, 9, 10, 14, 0, 0, 0, tz)),
	}
}

func dspsPair(tz *time.Location) []*domain.Booking {
	first := domain.NewSlot(domain.LocationSLO, time.Date(2025, 9, 10, 14, 0, 0, 0, tz))
	second := domain.NewSlot(domain.LocationSLO, first.End)

	a := &domain.Booking{ID: 3, GroupID: "group-2", Email: "sam@my.cuesta.edu",
		Exam: "5", DSPS: true, Slot: first}
	b := &domain.Booking{ID: 4, GroupID: "group-2", Email: "sam@my.cuesta.edu",
		Exam: "5", DSPS: true, Slot: second}
	return []*domain.Booking{a, b}
}

func TestExecute_MovesBookingAtomically(t *testing.T) {
	lab := testLab(t)
	now := time.Date(2025, 9, 8, 8, 0, 0, 0, lab.Timezone)

	existing := singleBooking(lab.Timezone)
	stranger := &domain.Booking{
		ID:      9,
		GroupID: "other",
		Email:   "bob@my.cuesta.edu",
		Exam:    "2",
		Slot: domain.NewSlot(domain.LocationSLO,
			time.Date(2025, 9, 11, 9, 0, 0, 0, lab.Timezone)),
	}

	repo := &fakeRepo{snapshot: []*domain.Booking{existing, stranger}}
	uc := newTestUseCase(t, repo, now)

	resp, err := uc.Execute(context.Background(), &Request{
		GroupID:   "group-1",
		Date:      time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "group-1", resp.GroupID)
	assert.Equal(t, []string{"Wednesday 09/10/25 2:00–2:15 PM"}, resp.OldLabels)
	assert.Equal(t, "Thursday 09/11/25 10:00–10:15 AM", resp.Label)

	assert.Empty(t, repo.appended)
	require.Len(t, repo.overwritten, 1)

	next := repo.overwritten[0]
	require.Len(t, next, 2)
	assert.Contains(t, next, stranger)
	assert.NotContains(t, next, existing, "old row removed in the same swap")

	moved := next[1]
	assert.Equal(t, "group-1", moved.GroupID)
	assert.Equal(t, existing.Email, moved.Email)
	assert.Equal(t, int64(0), moved.ID, "moved row is re-inserted")
}

func TestExecute_OwnSlotIsFreeForItself(t *testing.T) {
	lab := testLab(t)
	now := time.Date(2025, 9, 8, 8, 0, 0, 0, lab.Timezone)

	existing := singleBooking(lab.Timezone)
	repo := &fakeRepo{snapshot: []*domain.Booking{existing}}
	uc := newTestUseCase(t, repo, now)

	// Перенос на собственное текущее время не конфликтует сам с собой
	resp, err := uc.Execute(context.Background(), &Request{
		GroupID:   "group-1",
		Date:      time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("14:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, resp.OldLabels, resp.SlotLabels)
}

func TestExecute_MovesDSPSPairAsUnit(t *testing.T) {
	lab := testLab(t)
	now := time.Date(2025, 9, 8, 8, 0, 0, 0, lab.Timezone)

	repo := &fakeRepo{snapshot: dspsPair(lab.Timezone)}
	uc := newTestUseCase(t, repo, now)

	resp, err := uc.Execute(context.Background(), &Request{
		GroupID:   "group-2",
		Date:      time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("09:15"),
	})
	require.NoError(t, err)

	assert.True(t, resp.DSPS)
	require.Len(t, resp.SlotLabels, 2)
	require.Len(t, repo.overwritten, 1)

	next := repo.overwritten[0]
	require.Len(t, next, 2)
	assert.Equal(t, next[0].GroupID, next[1].GroupID)
	assert.True(t, next[0].Slot.End.Equal(next[1].Slot.Start))
}

func TestExecute_TargetSlotTaken(t *testing.T) {
	lab := testLab(t)
	now := time.Date(2025, 9, 8, 8, 0, 0, 0, lab.Timezone)

	existing := singleBooking(lab.Timezone)
	blocker := &domain.Booking{
		GroupID: "other",
		Email:   "bob@my.cuesta.edu",
		Exam:    "2",
		Slot: domain.NewSlot(domain.LocationSLO,
			time.Date(2025, 9, 11, 10, 0, 0, 0, lab.Timezone)),
	}

	repo := &fakeRepo{snapshot: []*domain.Booking{existing, blocker}}
	uc := newTestUseCase(t, repo, now)

	_, err := uc.Execute(context.Background(), &Request{
		GroupID:   "group-1",
		Date:      time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, repo.overwritten)
}

func TestExecute_GroupNotFound(t *testing.T) {
	lab := testLab(t)
	now := time.Date(2025, 9, 8, 8, 0, 0, 0, lab.Timezone)

	repo := &fakeRepo{}
	uc := newTestUseCase(t, repo, now)

	_, err := uc.Execute(context.Background(), &Request{
		GroupID:   "missing",
		Date:      time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_SameDayLockout(t *testing.T) {
	lab := testLab(t)
	// Прием сегодня: now и слот в один день
	now := time.Date(2025, 9, 10, 8, 0, 0, 0, lab.Timezone)

	existing := singleBooking(lab.Timezone)
	repo := &fakeRepo{snapshot: []*domain.Booking{existing}}
	uc := newTestUseCase(t, repo, now)

	_, err := uc.Execute(context.Background(), &Request{
		GroupID:   "group-1",
		Date:      time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
	})
	assert.ErrorIs(t, err, ErrSameDayLockout)
	assert.Empty(t, repo.overwritten)
}

func TestExecute_BrokenDSPSPairRefused(t *testing.T) {
	lab := testLab(t)
	now := time.Date(2025, 9, 8, 8, 0, 0, 0, lab.Timezone)

	// У DSPS-группы потерялась вторая строка
	orphan := dspsPair(lab.Timezone)[0]
	repo := &fakeRepo{snapshot: []*domain.Booking{orphan}}
	uc := newTestUseCase(t, repo, now)

	_, err := uc.Execute(context.Background(), &Request{
		GroupID:   "group-2",
		Date:      time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("09:15"),
	})
	assert.ErrorIs(t, err, ErrDataIntegrity)
	assert.Empty(t, repo.overwritten)
}

func TestExecute_Validation(t *testing.T) {
	lab := testLab(t)
	now := time.Date(2025, 9, 8, 8, 0, 0, 0, lab.Timezone)

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "missing group id",
			req: &Request{
				Date:      time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC),
				StartTime: types.TimeString("10:00"),
			},
		},
		{
			name: "missing date",
			req: &Request{
				GroupID:   "group-1",
				StartTime: types.TimeString("10:00"),
			},
		},
		{
			name: "missing start time",
			req: &Request{
				GroupID: "group-1",
				Date:    time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(t, &fakeRepo{}, now)

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
