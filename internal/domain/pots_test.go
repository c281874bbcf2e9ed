package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPotList_TotalIsStartingPotValue(t *testing.T) {
	pots := NewPotList(
		ExistingPot{ID: 1, Name: "Main Pension", Amount: decimal.NewFromInt(10000)},
		ExistingPot{ID: 2, Name: "Old Employer Pot", Amount: decimal.NewFromInt(5000)},
	)

	assert.True(t, pots.Total().Equal(decimal.NewFromInt(15000)), "got %s", pots.Total())
	assert.True(t, NewPotList().Total().IsZero())
}

func TestPotList_AddAssignsUniqueIDs(t *testing.T) {
	pots := NewPotList(ExistingPot{ID: 1, Name: "Main Pension", Amount: decimal.NewFromInt(10000)})

	second, err := pots.Add("", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, "", second.Name)

	third, err := pots.Add("ISA transfer", decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.Equal(t, 3, third.ID)

	// Removing a middle pot must not lead to an ID being reused.
	require.NoError(t, pots.Remove(2))
	fourth, err := pots.Add("", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, 4, fourth.ID)

	ids := []int{}
	for _, p := range pots.Pots() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{1, 3, 4}, ids)
}

func TestPotList_AddRejectsNegativeAmount(t *testing.T) {
	pots := NewPotList()
	_, err := pots.Add("bad", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrNegativePotAmount)
	assert.Equal(t, 0, pots.Len())
}

func TestPotList_UpdateFromFormText(t *testing.T) {
	pots := NewPotList(ExistingPot{ID: 1, Name: "Main Pension", Amount: decimal.NewFromInt(10000)})

	require.NoError(t, pots.Update(1, PotFieldName, "New Main Pension"))
	require.NoError(t, pots.Update(1, PotFieldAmount, "12000"))

	pot, err := pots.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "New Main Pension", pot.Name)
	assert.True(t, pot.Amount.Equal(decimal.NewFromInt(12000)))

	// Unparsable amounts fall back to zero rather than failing.
	require.NoError(t, pots.Update(1, PotFieldAmount, "twelve"))
	pot, _ = pots.Get(1)
	assert.True(t, pot.Amount.IsZero())
}

func TestPotList_UpdateErrors(t *testing.T) {
	pots := NewPotList(ExistingPot{ID: 1, Amount: decimal.NewFromInt(100)})

	assert.ErrorIs(t, pots.Update(9, PotFieldName, "x"), ErrPotNotFound)
	assert.ErrorIs(t, pots.Update(1, "colour", "red"), ErrUnknownPotField)
	assert.ErrorIs(t, pots.Update(1, PotFieldAmount, "-5"), ErrNegativePotAmount)

	pot, _ := pots.Get(1)
	assert.True(t, pot.Amount.Equal(decimal.NewFromInt(100)), "rejected update must not change the pot")
}

func TestPotList_Remove(t *testing.T) {
	pots := NewPotList(
		ExistingPot{ID: 1, Amount: decimal.NewFromInt(10000)},
		ExistingPot{ID: 2, Amount: decimal.NewFromInt(5000)},
	)

	require.NoError(t, pots.Remove(2))
	assert.True(t, pots.Total().Equal(decimal.NewFromInt(10000)))
	assert.ErrorIs(t, pots.Remove(2), ErrPotNotFound)

	_, err := pots.Get(2)
	assert.ErrorIs(t, err, ErrPotNotFound)
}

func TestPotList_PotsReturnsCopy(t *testing.T) {
	pots := NewPotList(ExistingPot{ID: 1, Name: "Main Pension"})
	snapshot := pots.Pots()
	snapshot[0].Name = "changed"

	pot, _ := pots.Get(1)
	assert.Equal(t, "Main Pension", pot.Name)
}
