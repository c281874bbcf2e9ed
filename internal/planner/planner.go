// Package planner keeps a single pension plan in memory and re-projects it
// whenever one of its inputs changes.
package planner

import (
	"maps"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rpgo/pension-tracker/internal/calculation"
	"github.com/rpgo/pension-tracker/internal/domain"
)

// Snapshot is the latest projection together with the inputs that produced it
type Snapshot struct {
	Version          uint64                   `json:"version"`
	Name             string                   `json:"name,omitempty"`
	Inputs           domain.Contributions     `json:"inputs"`
	Assumptions      domain.Assumptions       `json:"assumptions"`
	Pots             []domain.ExistingPot     `json:"existing_pots"`
	StartingPotValue decimal.Decimal          `json:"starting_pot_value"`
	Input            domain.ProjectionInput   `json:"projection_input"`
	Result           domain.ProjectionResult  `json:"result"`
	Summary          domain.ProjectionSummary `json:"summary"`
	Issues           []FieldIssue             `json:"issues,omitempty"`
	// Err is the validation error of the last run; Result is empty when set.
	Err error `json:"-"`
}

// Report converts the snapshot for the output formatters
func (s Snapshot) Report() *domain.ProjectionReport {
	return calculation.BuildReport(s.Name, s.Input, s.Pots, s.Assumptions, s.Result, s.Err)
}

// Listener receives every snapshot produced after it subscribed
type Listener func(Snapshot)

// Planner owns the form inputs and existing pots of one plan. Every mutation
// recomputes the projection from scratch and notifies listeners. It is safe for
// concurrent use; concurrent edits resolve as last write wins.
//
// Listeners run synchronously in subscription order and must not call back into the planner.
type Planner struct {
	mu          sync.Mutex
	engine      *calculation.ProjectionEngine
	name        string
	inputs      domain.Contributions
	assumptions domain.Assumptions
	pots        *domain.PotList
	current     Snapshot

	notifyMu  sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// New creates a planner seeded from a plan and computes its first projection.
// A nil engine uses calculation.NewProjectionEngine().
func New(cfg *domain.Configuration, engine *calculation.ProjectionEngine) *Planner {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	p := &Planner{
		engine:      engine,
		name:        cfg.Name,
		inputs:      cfg.Contributions,
		assumptions: cfg.Assumptions,
		pots:        domain.NewPotList(cfg.ExistingPots...),
		listeners:   make(map[int]Listener),
	}
	p.current = p.project(1)
	return p
}

// Snapshot returns the latest projection
func (p *Planner) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Configuration exports the current plan, for example to save it
func (p *Planner) Configuration() *domain.Configuration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return &domain.Configuration{
		Name:          p.name,
		Assumptions:   p.assumptions,
		Contributions: p.inputs,
		ExistingPots:  p.pots.Pots(),
	}
}

// Subscribe registers fn for future snapshots and returns a function that removes it
func (p *Planner) Subscribe(fn Listener) (unsubscribe func()) {
	p.notifyMu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.notifyMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.notifyMu.Lock()
			delete(p.listeners, id)
			p.notifyMu.Unlock()
		})
	}
}

// SetField updates a form input from raw text. Unparsable text is stored as zero.
func (p *Planner) SetField(name, raw string) (Snapshot, error) {
	return p.update(func() error {
		return applyField(&p.inputs, name, raw)
	})
}

// SetInputs replaces all form inputs at once
func (p *Planner) SetInputs(in domain.Contributions) Snapshot {
	s, _ := p.update(func() error {
		p.inputs = in
		return nil
	})
	return s
}

// SetAssumptions replaces the interest rate and life expectancy
func (p *Planner) SetAssumptions(a domain.Assumptions) Snapshot {
	s, _ := p.update(func() error {
		p.assumptions = a
		return nil
	})
	return s
}

// AddPot appends an existing pot and returns it with its assigned ID
func (p *Planner) AddPot(name string, amount decimal.Decimal) (domain.ExistingPot, Snapshot, error) {
	var pot domain.ExistingPot
	s, err := p.update(func() error {
		var err error
		pot, err = p.pots.Add(name, amount)
		return err
	})
	return pot, s, err
}

// UpdatePot edits the name or amount of a pot from raw text
func (p *Planner) UpdatePot(id int, field, raw string) (Snapshot, error) {
	return p.update(func() error {
		return p.pots.Update(id, field, raw)
	})
}

// RemovePot deletes a pot
func (p *Planner) RemovePot(id int) (Snapshot, error) {
	return p.update(func() error {
		return p.pots.Remove(id)
	})
}

// Recalculate re-runs the projection without changing any input
func (p *Planner) Recalculate() Snapshot {
	s, _ := p.update(func() error { return nil })
	return s
}

// update applies mutate and, if it succeeded, recomputes and publishes a snapshot.
// A failed mutation leaves the planner unchanged and returns the current snapshot.
func (p *Planner) update(mutate func() error) (Snapshot, error) {
	s, err := p.commit(mutate)
	if err != nil {
		return s, err
	}
	defer p.notifyMu.Unlock()
	for _, id := range slices.Sorted(maps.Keys(p.listeners)) {
		p.listeners[id](s)
	}
	return s, nil
}

// commit runs mutate and the projection under mu. On success it returns holding
// notifyMu, taken before mu is released, so listeners see versions in order.
func (p *Planner) commit(mutate func() error) (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := mutate(); err != nil {
		return p.current, err
	}
	p.current = p.project(p.current.Version + 1)
	p.notifyMu.Lock()
	return p.current, nil
}

// project must be called with mu held
func (p *Planner) project(version uint64) Snapshot {
	startingPot := p.pots.Total()
	in := domain.BuildProjectionInput(p.inputs, p.assumptions, startingPot)
	res, err := p.engine.Project(in)
	return Snapshot{
		Version:          version,
		Name:             p.name,
		Inputs:           p.inputs,
		Assumptions:      p.assumptions,
		Pots:             p.pots.Pots(),
		StartingPotValue: startingPot,
		Input:            in,
		Result:           res,
		Summary:          calculation.Summarize(in, res),
		Issues:           CheckForm(p.inputs),
		Err:              err,
	}
}
