package steps

import (
	"context"
	"testing"
	"time"

	"photobooking/internal/domain"
	"photobooking/internal/modules/draft"

	"github.com/stretchr/testify/assert"
)

// fakeStore keeps one draft in memory so SetCurrentStep is observable.
type fakeStore struct {
	draft *domain.Draft
}

func (f *fakeStore) Get(ctx context.Context, id string) (*domain.Draft, error) {
	if f.draft == nil || f.draft.ID != id {
		return nil, draft.ErrNotFound
	}
	return f.draft, nil
}

func (f *fakeStore) SetCurrentStep(ctx context.Context, id string, step int) (*domain.Draft, error) {
	if f.draft == nil || f.draft.ID != id {
		return nil, draft.ErrNotFound
	}
	f.draft.CurrentStep = step
	return f.draft, nil
}

func newTestMachine(d *domain.Draft) (*Machine, *fakeStore) {
	store := &fakeStore{draft: d}
	r := NewRules(50000)
	r.now = func() time.Time {
		return time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	}
	return NewMachine(store, r, TotalSteps), store
}

func completeDraft() *domain.Draft {
	d := validDraft()
	d.ID = "d-1"
	d.CurrentStep = 1
	return d
}

func TestMachine_Next_AdvancesWhenStepPasses(t *testing.T) {
	m, store := newTestMachine(completeDraft())

	state, err := m.Next(context.Background(), "d-1")

	assert.NoError(t, err)
	assert.Equal(t, 2, state.CurrentStep)
	assert.Equal(t, 2, store.draft.CurrentStep)
	assert.Empty(t, state.Errors)
}

func TestMachine_Next_BlockedByValidation(t *testing.T) {
	d := completeDraft()
	d.Service = nil
	m, store := newTestMachine(d)

	state, err := m.Next(context.Background(), "d-1")

	assert.NoError(t, err)
	assert.Equal(t, 1, state.CurrentStep)
	assert.Equal(t, 1, store.draft.CurrentStep)
	assert.NotEmpty(t, state.Errors[StepService])
}

func TestMachine_Next_StopsAtLastStep(t *testing.T) {
	d := completeDraft()
	d.CurrentStep = StepPayment
	m, _ := newTestMachine(d)

	state, err := m.Next(context.Background(), "d-1")

	assert.NoError(t, err)
	assert.Equal(t, StepPayment, state.CurrentStep)
	assert.True(t, state.CanSubmit)
}

func TestMachine_Prev_AlwaysSucceeds(t *testing.T) {
	d := completeDraft()
	d.Service = nil // invalid, but backward movement does not care
	d.CurrentStep = 3
	m, _ := newTestMachine(d)

	state, err := m.Prev(context.Background(), "d-1")

	assert.NoError(t, err)
	assert.Equal(t, 2, state.CurrentStep)
}

func TestMachine_Prev_StaysAtFirstStep(t *testing.T) {
	m, _ := newTestMachine(completeDraft())

	state, err := m.Prev(context.Background(), "d-1")

	assert.NoError(t, err)
	assert.Equal(t, 1, state.CurrentStep)
}

func TestMachine_GoTo_BackwardIsUnconditional(t *testing.T) {
	d := completeDraft()
	d.Service = nil
	d.CurrentStep = 4
	m, _ := newTestMachine(d)

	state, err := m.GoTo(context.Background(), "d-1", 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, state.CurrentStep)
}

func TestMachine_GoTo_ForwardValidatesInterveningSteps(t *testing.T) {
	d := completeDraft()
	d.Schedule = domain.Schedule{} // step 3 will fail
	m, store := newTestMachine(d)

	state, err := m.GoTo(context.Background(), "d-1", 5)

	assert.NoError(t, err)
	assert.Equal(t, 1, state.CurrentStep)
	assert.Equal(t, 1, store.draft.CurrentStep)
	assert.NotEmpty(t, state.Errors[StepSchedule])
	// Steps past the failure were never reached.
	assert.Empty(t, state.Errors[StepContact])
}

func TestMachine_GoTo_ForwardSucceedsWhenAllPass(t *testing.T) {
	m, store := newTestMachine(completeDraft())

	state, err := m.GoTo(context.Background(), "d-1", 5)

	assert.NoError(t, err)
	assert.Equal(t, 5, state.CurrentStep)
	assert.Equal(t, 5, store.draft.CurrentStep)
}

func TestMachine_GoTo_OutOfRange(t *testing.T) {
	m, _ := newTestMachine(completeDraft())

	_, err := m.GoTo(context.Background(), "d-1", 0)
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = m.GoTo(context.Background(), "d-1", 6)
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestMachine_Validate_RecordsAndClearsErrors(t *testing.T) {
	d := completeDraft()
	d.Contact = domain.Contact{}
	m, _ := newTestMachine(d)
	ctx := context.Background()

	errs, err := m.Validate(ctx, "d-1", StepContact)
	assert.NoError(t, err)
	assert.NotEmpty(t, errs)

	state, _ := m.State(ctx, "d-1")
	assert.NotEmpty(t, state.Errors[StepContact])

	// Fixing the draft clears the recorded errors on revalidation.
	d.Contact = domain.Contact{Name: "Rina", WhatsApp: "+6281234567890"}
	errs, err = m.Validate(ctx, "d-1", StepContact)
	assert.NoError(t, err)
	assert.Empty(t, errs)

	state, _ = m.State(ctx, "d-1")
	assert.Empty(t, state.Errors[StepContact])
}

func TestMachine_CanSubmit_RequiresLastStepClean(t *testing.T) {
	d := completeDraft()
	d.CurrentStep = StepPayment
	d.Payment.ProofPath = ""
	m, _ := newTestMachine(d)
	ctx := context.Background()

	_, _ = m.Validate(ctx, "d-1", StepPayment)
	state, _ := m.State(ctx, "d-1")
	assert.False(t, state.CanSubmit)

	d.Payment.ProofPath = "2026/08/30/proof.jpg"
	_, _ = m.Validate(ctx, "d-1", StepPayment)
	state, _ = m.State(ctx, "d-1")
	assert.True(t, state.CanSubmit)
}

func TestMachine_Reset_DropsRecordedErrors(t *testing.T) {
	d := completeDraft()
	d.Service = nil
	m, _ := newTestMachine(d)
	ctx := context.Background()

	_, _ = m.Validate(ctx, "d-1", StepService)
	m.Reset("d-1")

	state, _ := m.State(ctx, "d-1")
	assert.Empty(t, state.Errors)
}
