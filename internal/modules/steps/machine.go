package steps

import (
	"context"
	"sync"

	"photobooking/internal/domain"
)

// DraftAccess is the slice of the draft store the machine needs.
type DraftAccess interface {
	Get(ctx context.Context, id string) (*domain.Draft, error)
	SetCurrentStep(ctx context.Context, id string, step int) (*domain.Draft, error)
}

// State is the machine's view of one draft: where it is and what blocks it.
type State struct {
	CurrentStep int                        `json:"current_step"`
	TotalSteps  int                        `json:"total_steps"`
	Errors      map[int][]domain.StepError `json:"errors"`
	CanSubmit   bool                       `json:"can_submit"`
}

// Machine sequences a draft through its ordered steps. Forward movement is
// gated on step-local validation; backward movement never is. The step list
// length is fixed at construction, so a single-step configurator is just
// NewMachine(store, rules, 1).
type Machine struct {
	store      DraftAccess
	rules      Rules
	totalSteps int

	mu     sync.Mutex
	errors map[string]map[int][]domain.StepError
}

func NewMachine(store DraftAccess, rules Rules, totalSteps int) *Machine {
	if totalSteps < 1 {
		totalSteps = TotalSteps
	}
	return &Machine{
		store:      store,
		rules:      rules,
		totalSteps: totalSteps,
		errors:     make(map[string]map[int][]domain.StepError),
	}
}

// Validate runs the rules for one step, records the result, and reports
// whether the step passed.
func (m *Machine) Validate(ctx context.Context, draftID string, step int) ([]domain.StepError, error) {
	if step < 1 || step > m.totalSteps {
		return nil, ErrInvalidStep
	}
	d, err := m.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	errs := m.rules.ValidateStep(d, step)
	m.record(draftID, step, errs)
	return errs, nil
}

// Next advances only when the current step validates; otherwise the step is
// unchanged and the recorded errors describe why.
func (m *Machine) Next(ctx context.Context, draftID string) (*State, error) {
	d, err := m.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	cur := clampStep(d.CurrentStep, m.totalSteps)
	errs := m.rules.ValidateStep(d, cur)
	m.record(draftID, cur, errs)
	if len(errs) > 0 || cur == m.totalSteps {
		return m.state(draftID, cur), nil
	}

	if _, err := m.store.SetCurrentStep(ctx, draftID, cur+1); err != nil {
		return nil, err
	}
	return m.state(draftID, cur+1), nil
}

// Prev always succeeds; reviewing backward is never blocked.
func (m *Machine) Prev(ctx context.Context, draftID string) (*State, error) {
	d, err := m.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	cur := clampStep(d.CurrentStep, m.totalSteps)
	if cur > 1 {
		cur--
		if _, err := m.store.SetCurrentStep(ctx, draftID, cur); err != nil {
			return nil, err
		}
	}
	return m.state(draftID, cur), nil
}

// GoTo jumps directly to a step. Backward jumps are unconditional; forward
// jumps validate every intervening step and stop at the first failure.
func (m *Machine) GoTo(ctx context.Context, draftID string, target int) (*State, error) {
	if target < 1 || target > m.totalSteps {
		return nil, ErrInvalidStep
	}

	d, err := m.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	cur := clampStep(d.CurrentStep, m.totalSteps)

	if target <= cur {
		if _, err := m.store.SetCurrentStep(ctx, draftID, target); err != nil {
			return nil, err
		}
		return m.state(draftID, target), nil
	}

	for step := cur; step < target; step++ {
		errs := m.rules.ValidateStep(d, step)
		m.record(draftID, step, errs)
		if len(errs) > 0 {
			return m.state(draftID, cur), nil
		}
	}

	if _, err := m.store.SetCurrentStep(ctx, draftID, target); err != nil {
		return nil, err
	}
	return m.state(draftID, target), nil
}

// State reports the machine's view without validating anything.
func (m *Machine) State(ctx context.Context, draftID string) (*State, error) {
	d, err := m.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return m.state(draftID, clampStep(d.CurrentStep, m.totalSteps)), nil
}

// Reset drops all recorded errors for a draft (submission success, cancel).
func (m *Machine) Reset(draftID string) {
	m.mu.Lock()
	delete(m.errors, draftID)
	m.mu.Unlock()
}

func (m *Machine) record(draftID string, step int, errs []domain.StepError) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byStep, ok := m.errors[draftID]
	if !ok {
		byStep = make(map[int][]domain.StepError)
		m.errors[draftID] = byStep
	}
	if len(errs) == 0 {
		delete(byStep, step)
	} else {
		byStep[step] = errs
	}
}

func (m *Machine) state(draftID string, current int) *State {
	m.mu.Lock()
	defer m.mu.Unlock()

	errs := make(map[int][]domain.StepError, len(m.errors[draftID]))
	for step, list := range m.errors[draftID] {
		errs[step] = list
	}
	return &State{
		CurrentStep: current,
		TotalSteps:  m.totalSteps,
		Errors:      errs,
		CanSubmit:   current == m.totalSteps && len(errs[m.totalSteps]) == 0,
	}
}

func clampStep(step, total int) int {
	if step < 1 {
		return 1
	}
	if step > total {
		return total
	}
	return step
}
