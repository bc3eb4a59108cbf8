package grade_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlab/booking-service/internal/domain"
	bookingRepo "github.com/atlab/booking-service/internal/infra/storage/booking"
)

type fakeRepo struct {
	snapshot    []*domain.Booking
	loadErr     error
	overwritten [][]*domain.Booking
}

func (r *fakeRepo) Load(_ context.Context) ([]*domain.Booking, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.snapshot, nil
}

func (r *fakeRepo) Overwrite(_ context.Context, all []*domain.Booking) error {
	r.overwritten = append(r.overwritten, all)
	return nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testSnapshot() []*domain.Booking {
	slot := domain.NewSlot(domain.LocationSLO, time.Date(2025, 9, 10, 14, 0, 0, 0, time.UTC))
	next := domain.NewSlot(domain.LocationSLO, slot.End)

	return []*domain.Booking{
		{ID: 1, GroupID: "pair", Email: "sam@my.cuesta.edu", Exam: "5", DSPS: true, Slot: slot},
		{ID: 2, GroupID: "pair", Email: "sam@my.cuesta.edu", Exam: "5", DSPS: true, Slot: next},
		{ID: 3, GroupID: "solo", Email: "jane@my.cuesta.edu", Exam: "4", Slot: next},
	}
}

func TestExecute_GradesWholeGroup(t *testing.T) {
	repo := &fakeRepo{snapshot: testSnapshot()}
	uc := NewUseCase(repo, &fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		GroupID:  "pair",
		Grade:    "Pass",
		GradedBy: "AB",
	})
	require.NoError(t, err)

	assert.Equal(t, "sam@my.cuesta.edu", resp.Email)
	assert.Equal(t, "Pass", resp.Grade)
	assert.Equal(t, "AB", resp.GradedBy)

	require.Len(t, repo.overwritten, 1)
	next := repo.overwritten[0]
	require.Len(t, next, 3, "overwrite carries the whole journal")

	// Обе строки DSPS-пары оценены, чужая строка не тронута
	for _, row := range next[:2] {
		require.NotNil(t, row.Grade)
		assert.Equal(t, "Pass", *row.Grade)
		require.NotNil(t, row.GradedBy)
		assert.Equal(t, "AB", *row.GradedBy)
	}
	assert.Nil(t, next[2].Grade)
}

func TestExecute_Regrade(t *testing.T) {
	snapshot := testSnapshot()
	old := "Fail"
	snapshot[2].Grade = &old

	repo := &fakeRepo{snapshot: snapshot}
	uc := NewUseCase(repo, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		GroupID:  "solo",
		Grade:    "Pass",
		GradedBy: "CD",
	})
	require.NoError(t, err)

	require.Len(t, repo.overwritten, 1)
	assert.Equal(t, "Pass", *repo.overwritten[0][2].Grade)
}

func TestExecute_GroupNotFound(t *testing.T) {
	repo := &fakeRepo{snapshot: testSnapshot()}
	uc := NewUseCase(repo, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		GroupID:  "missing",
		Grade:    "Pass",
		GradedBy: "AB",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Empty(t, repo.overwritten)
}

func TestExecute_CorruptedStore(t *testing.T) {
	repo := &fakeRepo{loadErr: bookingRepo.ErrCorruptedRow}
	uc := NewUseCase(repo, &fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		GroupID:  "pair",
		Grade:    "Pass",
		GradedBy: "AB",
	})
	assert.ErrorIs(t, err, ErrDataIntegrity)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "missing group id", req: &Request{Grade: "Pass", GradedBy: "AB"}},
		{name: "missing grade", req: &Request{GroupID: "pair", GradedBy: "AB"}},
		{name: "missing grader", req: &Request{GroupID: "pair", Grade: "Pass"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{snapshot: testSnapshot()}
			uc := NewUseCase(repo, &fakeTxManager{}, nopLogger{})

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.overwritten)
		})
	}
}
