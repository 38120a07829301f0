package calculation

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/zimtax/taxplanner/internal/domain"
)

// ScenarioSet is a thread-safe collection of scenarios keyed by id.
// Scenarios are deep-copied on the way in and on the way out, so no two scenarios
// (and no caller) ever share a period list.
type ScenarioSet struct {
	mu        sync.RWMutex
	order     []string
	scenarios map[string]domain.Scenario
}

// NewScenarioSet creates a set holding copies of the given scenarios
func NewScenarioSet(scenarios ...domain.Scenario) (*ScenarioSet, error) {
	ss := &ScenarioSet{scenarios: make(map[string]domain.Scenario)}
	for _, s := range scenarios {
		if _, err := ss.Add(s); err != nil {
			return nil, err
		}
	}
	return ss, nil
}

// NewScenario builds a scenario value with a fresh id and its own copy of periods.
func NewScenario(name string, scenarioType domain.ScenarioType, drivers domain.Drivers, periods []domain.Period) domain.Scenario {
	return domain.Scenario{
		ID:      uuid.NewString(),
		Name:    name,
		Type:    scenarioType,
		IsBase:  scenarioType == domain.ScenarioBase,
		Drivers: drivers.Clone(),
		Periods: domain.ClonePeriods(periods),
	}
}

// Add stores a copy of s and returns the stored id. A missing id is generated.
// Only one scenario may be flagged as base.
func (ss *ScenarioSet) Add(s domain.Scenario) (string, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	s = s.Clone()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if _, exists := ss.scenarios[s.ID]; exists {
		return "", fmt.Errorf("scenario %s already exists", s.ID)
	}
	if s.IsBase {
		if base, ok := ss.baseLocked(); ok {
			return "", fmt.Errorf("scenario %s: base scenario already set (%s)", s.ID, base.ID)
		}
	}
	ss.scenarios[s.ID] = s
	ss.order = append(ss.order, s.ID)
	return s.ID, nil
}

// Get returns a copy of the scenario.
func (ss *ScenarioSet) Get(id string) (domain.Scenario, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	s, ok := ss.scenarios[id]
	if !ok {
		return domain.Scenario{}, fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
	}
	return s.Clone(), nil
}

// List returns copies of all scenarios in insertion order.
func (ss *ScenarioSet) List() []domain.Scenario {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	out := make([]domain.Scenario, 0, len(ss.order))
	for _, id := range ss.order {
		out = append(out, ss.scenarios[id].Clone())
	}
	return out
}

// Len returns the number of scenarios
func (ss *ScenarioSet) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.order)
}

// Base returns a copy of the base scenario.
func (ss *ScenarioSet) Base() (domain.Scenario, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	s, ok := ss.baseLocked()
	if !ok {
		return domain.Scenario{}, false
	}
	return s.Clone(), true
}

func (ss *ScenarioSet) baseLocked() (domain.Scenario, bool) {
	for _, id := range ss.order {
		if s := ss.scenarios[id]; s.IsBase {
			return s, true
		}
	}
	return domain.Scenario{}, false
}

// Duplicate copies an existing scenario under a new id and name. The copy is never
// the base scenario.
func (ss *ScenarioSet) Duplicate(id, name string, scenarioType domain.ScenarioType) (domain.Scenario, error) {
	src, err := ss.Get(id)
	if err != nil {
		return domain.Scenario{}, err
	}
	dup := src.Clone()
	dup.ID = uuid.NewString()
	dup.Name = name
	dup.Type = scenarioType
	dup.IsBase = false
	if _, err := ss.Add(dup); err != nil {
		return domain.Scenario{}, err
	}
	return dup, nil
}

// Remove deletes a scenario. The base scenario cannot be removed.
func (ss *ScenarioSet) Remove(id string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	s, ok := ss.scenarios[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
	}
	if s.IsBase {
		return fmt.Errorf("remove %s: %w", id, ErrBaseScenario)
	}
	delete(ss.scenarios, id)
	for i, existing := range ss.order {
		if existing == id {
			ss.order = append(ss.order[:i:i], ss.order[i+1:]...)
			break
		}
	}
	return nil
}

// ReplacePeriod stores a new version of a scenario with one period swapped for p
// (matched by id) and returns it. Earlier copies handed out by Get are unaffected.
func (ss *ScenarioSet) ReplacePeriod(scenarioID string, p domain.Period) (domain.Scenario, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	s, ok := ss.scenarios[scenarioID]
	if !ok {
		return domain.Scenario{}, fmt.Errorf("%w: %s", ErrScenarioNotFound, scenarioID)
	}
	idx := -1
	for i, existing := range s.Periods {
		if existing.ID == p.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Scenario{}, fmt.Errorf("scenario %s: %w: %s", scenarioID, ErrPeriodNotFound, p.ID)
	}

	updated := s.Clone()
	updated.Periods[idx] = p.Clone()
	ss.scenarios[scenarioID] = updated
	return updated.Clone(), nil
}

// UpdateDrivers stores a new version of a scenario with different drivers.
func (ss *ScenarioSet) UpdateDrivers(scenarioID string, drivers domain.Drivers) (domain.Scenario, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	s, ok := ss.scenarios[scenarioID]
	if !ok {
		return domain.Scenario{}, fmt.Errorf("%w: %s", ErrScenarioNotFound, scenarioID)
	}
	updated := s.Clone()
	updated.Drivers = drivers.Clone()
	ss.scenarios[scenarioID] = updated
	return updated.Clone(), nil
}
