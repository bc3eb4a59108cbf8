package create_booking

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
	loadErr     error
	appended    []*domain.Booking
	overwritten [][]*domain.Booking
}

func (r *fakeRepo) Load(_ context.Context) ([]*domain.Booking, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
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

type fakeSender struct {
	sent []string
	err  error
}

func (s *fakeSender) SendConfirmation(_ context.Context, email, _, _ string, _ domain.Location) error {
	s.sent = append(s.sent, email)
	return s.err
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

func testEligibility() Eligibility {
	return Eligibility{
		StudentIDPrefix: domain.DefaultStudentIDPrefix,
		EmailSuffixes:   domain.DefaultEmailSuffixes,
		ExamNumbers:     domain.DefaultExamNumbers,
	}
}

// Monday 2025-09-08 08:00 Pacific
func mondayMorning(t *testing.T, lab Lab) time.Time {
	t.Helper()
	return time.Date(2025, 9, 8, 8, 0, 0, 0, lab.Timezone)
}

func newTestUseCase(t *testing.T, repo *fakeRepo, sender *fakeSender, now time.Time) (*UseCase, Lab) {
	t.Helper()
	lab := testLab(t)
	uc := NewUseCase(repo, &fakeTxManager{}, sender, lab, testEligibility(), nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc, lab
}

func validRequest() *Request {
	return &Request{
		Name:      "Jane Doe",
		Email:     "jane.doe@my.cuesta.edu",
		StudentID: "900123456",
		Exam:      "4",
		Location:  domain.LocationSLO,
		Date:      time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
	}
}

func TestExecute_CreatesSingleBooking(t *testing.T) {
	repo := &fakeRepo{}
	sender := &fakeSender{}
	lab := testLab(t)
	uc, _ := newTestUseCase(t, repo, sender, mondayMorning(t, lab))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.GroupID)
	assert.False(t, resp.Replaced)
	require.Len(t, resp.SlotLabels, 1)
	assert.Equal(t, "Tuesday 09/09/25 10:00–10:15 AM", resp.Label)

	require.Len(t, repo.appended, 1)
	assert.Empty(t, repo.overwritten)

	row := repo.appended[0]
	assert.Equal(t, resp.GroupID, row.GroupID)
	assert.Equal(t, "jane.doe@my.cuesta.edu", row.Email)
	assert.Equal(t, "4", row.Exam)
	assert.False(t, row.DSPS)

	assert.Equal(t, []string{"jane.doe@my.cuesta.edu"}, sender.sent)
}

func TestExecute_DSPSBooksTwoContiguousRows(t *testing.T) {
	repo := &fakeRepo{}
	lab := testLab(t)
	uc, _ := newTestUseCase(t, repo, &fakeSender{}, mondayMorning(t, lab))

	req := validRequest()
	req.DSPS = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.DSPS)
	require.Len(t, resp.SlotLabels, 2)
	assert.Equal(t,
		"Tuesday 09/09/25 10:00–10:15 AM and Tuesday 09/09/25 10:15–10:30 AM",
		resp.Label,
	)

	require.Len(t, repo.appended, 2)
	first, second := repo.appended[0], repo.appended[1]
	assert.Equal(t, first.GroupID, second.GroupID)
	assert.True(t, first.Slot.End.Equal(second.Slot.Start), "rows must form a contiguous block")
	assert.True(t, first.DSPS)
	assert.True(t, second.DSPS)
}

func TestExecute_ReplacesSameWeekBooking(t *testing.T) {
	lab := testLab(t)
	now := mondayMorning(t, lab)

	// Существующая запись той же недели, на среду
	existing := &domain.Booking{
		ID:      7,
		GroupID: "old-group",
		Email:   "jane.doe@my.cuesta.edu",
		Exam:    "4",
		Slot: domain.NewSlot(domain.LocationSLO,
			time.Date(2025, 9, 10, 14, 0, 0, 0, lab.Timezone)),
	}
	stranger := &domain.Booking{
		ID:      8,
		GroupID: "other-group",
		Email:   "bob@my.cuesta.edu",
		Exam:    "4",
		Slot: domain.NewSlot(domain.LocationSLO,
			time.Date(2025, 9, 10, 15, 0, 0, 0, lab.Timezone)),
	}

	repo := &fakeRepo{snapshot: []*domain.Booking{existing, stranger}}
	uc, _ := newTestUseCase(t, repo, &fakeSender{}, now)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Replaced)
	assert.Empty(t, repo.appended)
	require.Len(t, repo.overwritten, 1)

	next := repo.overwritten[0]
	require.Len(t, next, 2, "old row replaced by the new one, stranger kept")
	assert.Contains(t, next, stranger)
	assert.NotContains(t, next, existing)
	assert.Equal(t, resp.GroupID, next[1].GroupID)
}

func TestExecute_DifferentWeekDoesNotConflict(t *testing.T) {
	lab := testLab(t)
	now := mondayMorning(t, lab)

	// Запись на следующей неделе: недельное правило не затрагивается
	nextWeek := &domain.Booking{
		GroupID: "next-week",
		Email:   "jane.doe@my.cuesta.edu",
		Exam:    "4",
		Slot: domain.NewSlot(domain.LocationSLO,
			time.Date(2025, 9, 16, 10, 0, 0, 0, lab.Timezone)),
	}

	repo := &fakeRepo{snapshot: []*domain.Booking{nextWeek}}
	uc, _ := newTestUseCase(t, repo, &fakeSender{}, now)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Replaced)
	assert.Len(t, repo.appended, 1)
	assert.Empty(t, repo.overwritten)
}

func TestExecute_SameDayLockoutLeavesStoreUnchanged(t *testing.T) {
	lab := testLab(t)
	now := mondayMorning(t, lab)

	// Существующая запись назначена на сегодня
	today := &domain.Booking{
		GroupID: "today-group",
		Email:   "jane.doe@my.cuesta.edu",
		Exam:    "4",
		Slot: domain.NewSlot(domain.LocationSLO,
			time.Date(2025, 9, 8, 14, 0, 0, 0, lab.Timezone)),
	}

	repo := &fakeRepo{snapshot: []*domain.Booking{today}}
	sender := &fakeSender{}
	uc, _ := newTestUseCase(t, repo, sender, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSameDayLockout)

	assert.Empty(t, repo.appended)
	assert.Empty(t, repo.overwritten)
	assert.Empty(t, sender.sent, "no confirmation on refusal")
}

func TestExecute_SlotTaken(t *testing.T) {
	lab := testLab(t)
	now := mondayMorning(t, lab)

	taken := &domain.Booking{
		GroupID: "other",
		Email:   "bob@my.cuesta.edu",
		Exam:    "2",
		Slot: domain.NewSlot(domain.LocationSLO,
			time.Date(2025, 9, 9, 10, 0, 0, 0, lab.Timezone)),
	}

	repo := &fakeRepo{snapshot: []*domain.Booking{taken}}
	uc, _ := newTestUseCase(t, repo, &fakeSender{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, repo.appended)
}

func TestExecute_DSPSRejectedWhenSecondSlotTaken(t *testing.T) {
	lab := testLab(t)
	now := mondayMorning(t, lab)

	// Занят только второй слот блока
	taken := &domain.Booking{
		GroupID: "other",
		Email:   "bob@my.cuesta.edu",
		Exam:    "2",
		Slot: domain.NewSlot(domain.LocationSLO,
			time.Date(2025, 9, 9, 10, 15, 0, 0, lab.Timezone)),
	}

	repo := &fakeRepo{snapshot: []*domain.Booking{taken}}
	uc, _ := newTestUseCase(t, repo, &fakeSender{}, now)

	req := validRequest()
	req.DSPS = true

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, repo.appended)
}

func TestExecute_PastSlotNotAvailable(t *testing.T) {
	lab := testLab(t)
	// 10:30 сегодня: слот 10:00 уже начался
	now := time.Date(2025, 9, 8, 10, 30, 0, 0, lab.Timezone)

	repo := &fakeRepo{}
	uc, _ := newTestUseCase(t, repo, &fakeSender{}, now)

	req := validRequest()
	req.Date = time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SelectionOutsideSchedule(t *testing.T) {
	lab := testLab(t)
	now := mondayMorning(t, lab)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{
			name: "closed day",
			mutate: func(r *Request) {
				r.Date = time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC) // Sunday
			},
		},
		{
			name: "before opening",
			mutate: func(r *Request) {
				r.StartTime = types.TimeString("07:00")
			},
		},
		{
			name: "off-grid time",
			mutate: func(r *Request) {
				r.StartTime = types.TimeString("10:07")
			},
		},
		{
			name: "beyond horizon",
			mutate: func(r *Request) {
				r.Date = time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
			},
		},
		{
			name: "DSPS at closing has no second slot",
			mutate: func(r *Request) {
				r.DSPS = true
				r.StartTime = types.TimeString("20:45")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			uc, _ := newTestUseCase(t, repo, &fakeSender{}, now)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrSlotNotInSchedule)
			assert.Empty(t, repo.appended)
		})
	}
}

func TestExecute_Eligibility(t *testing.T) {
	lab := testLab(t)
	now := mondayMorning(t, lab)

	tests := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{
			name:   "outside email domain",
			mutate: func(r *Request) { r.Email = "jane@gmail.com" },
			want:   ErrNotEligible,
		},
		{
			name:   "wrong student id prefix",
			mutate: func(r *Request) { r.StudentID = "800123456" },
			want:   ErrNotEligible,
		},
		{
			name:   "unknown exam number",
			mutate: func(r *Request) { r.Exam = "1" },
			want:   ErrNotEligible,
		},
		{
			name:   "missing name",
			mutate: func(r *Request) { r.Name = "  " },
			want:   ErrInvalidInput,
		},
		{
			name:   "missing start time",
			mutate: func(r *Request) { r.StartTime = "" },
			want:   ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			uc, _ := newTestUseCase(t, repo, &fakeSender{}, now)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, repo.appended)
		})
	}
}

func TestExecute_UnknownLocation(t *testing.T) {
	lab := testLab(t)
	uc, _ := newTestUseCase(t, &fakeRepo{}, &fakeSender{}, mondayMorning(t, lab))

	req := validRequest()
	req.Location = "Basement Lab"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownLocation)
}

func TestExecute_ConfirmationFailureDoesNotFailBooking(t *testing.T) {
	lab := testLab(t)
	repo := &fakeRepo{}
	sender := &fakeSender{err: assert.AnError}
	uc, _ := newTestUseCase(t, repo, sender, mondayMorning(t, lab))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.GroupID)
	assert.Len(t, repo.appended, 1)
}
