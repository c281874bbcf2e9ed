package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	pdec "github.com/rpgo/pension-tracker/pkg/decimal"
)

var (
	ErrPotNotFound       = errors.New("pension pot not found")
	ErrUnknownPotField   = errors.New("unknown pension pot field")
	ErrNegativePotAmount = errors.New("pension pot amount cannot be negative")
)

// Pot fields accepted by PotList.Update
const (
	PotFieldName   = "name"
	PotFieldAmount = "amount"
)

// ExistingPot is a pension pot the user already holds
type ExistingPot struct {
	ID     int             `yaml:"id" json:"id"`
	Name   string          `yaml:"name" json:"name"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// PotList is an ordered collection of existing pots keyed by stable ID.
// It is not safe for concurrent use; the owner serialises access.
type PotList struct {
	pots []ExistingPot
}

// NewPotList creates a list from existing pots, preserving their order and IDs
func NewPotList(pots ...ExistingPot) *PotList {
	pl := &PotList{pots: make([]ExistingPot, 0, len(pots))}
	pl.pots = append(pl.pots, pots...)
	return pl
}

// Pots returns a copy of the pots in display order
func (pl *PotList) Pots() []ExistingPot {
	out := make([]ExistingPot, len(pl.pots))
	copy(out, pl.pots)
	return out
}

// Len returns the number of pots
func (pl *PotList) Len() int {
	return len(pl.pots)
}

// Add appends a pot and returns it with its newly assigned ID
func (pl *PotList) Add(name string, amount decimal.Decimal) (ExistingPot, error) {
	if amount.IsNegative() {
		return ExistingPot{}, ErrNegativePotAmount
	}
	pot := ExistingPot{ID: pl.nextID(), Name: name, Amount: amount}
	pl.pots = append(pl.pots, pot)
	return pot, nil
}

// nextID is one past the highest ID in use so IDs stay unique after removals.
func (pl *PotList) nextID() int {
	highest := 0
	for _, p := range pl.pots {
		if p.ID > highest {
			highest = p.ID
		}
	}
	return highest + 1
}

// Get returns the pot with the given ID
func (pl *PotList) Get(id int) (ExistingPot, error) {
	i := pl.indexOf(id)
	if i < 0 {
		return ExistingPot{}, fmt.Errorf("%w: id %d", ErrPotNotFound, id)
	}
	return pl.pots[i], nil
}

// UpdateName renames a pot
func (pl *PotList) UpdateName(id int, name string) error {
	i := pl.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrPotNotFound, id)
	}
	pl.pots[i].Name = name
	return nil
}

// UpdateAmount sets a pot's amount
func (pl *PotList) UpdateAmount(id int, amount decimal.Decimal) error {
	i := pl.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrPotNotFound, id)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: id %d", ErrNegativePotAmount, id)
	}
	pl.pots[i].Amount = amount
	return nil
}

// Update edits a single field from raw form text. Amount text that does not
// parse is stored as zero.
func (pl *PotList) Update(id int, field, raw string) error {
	switch field {
	case PotFieldName:
		return pl.UpdateName(id, raw)
	case PotFieldAmount:
		return pl.UpdateAmount(id, pdec.ParseMoneyOrZero(raw).Decimal)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPotField, field)
	}
}

// Remove deletes a pot; the IDs of the remaining pots are unchanged
func (pl *PotList) Remove(id int) error {
	i := pl.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrPotNotFound, id)
	}
	pl.pots = append(pl.pots[:i], pl.pots[i+1:]...)
	return nil
}

// Total is the starting pot value handed to the projection engine
func (pl *PotList) Total() decimal.Decimal {
	amounts := make([]decimal.Decimal, len(pl.pots))
	for i, p := range pl.pots {
		amounts[i] = p.Amount
	}
	return pdec.Sum(amounts...).Decimal
}

func (pl *PotList) indexOf(id int) int {
	for i, p := range pl.pots {
		if p.ID == id {
			return i
		}
	}
	return -1
}
