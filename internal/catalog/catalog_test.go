package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Resolve(t *testing.T) {
	c := Default()

	t.Run("суммирует длительность и цену", func(t *testing.T) {
		sel, err := c.Resolve([]int64{1, 2})
		require.NoError(t, err)

		assert.Equal(t, 90, sel.TotalDurationMinutes)
		assert.Equal(t, 9000, sel.TotalPrice)
		assert.Equal(t, []int64{1, 2}, sel.MenuIDs())
	})

	t.Run("один пункт", func(t *testing.T) {
		sel, err := c.Resolve([]int64{4})
		require.NoError(t, err)

		assert.Equal(t, 90, sel.TotalDurationMinutes)
		assert.Equal(t, 7000, sel.TotalPrice)
	})

	t.Run("пустой выбор", func(t *testing.T) {
		_, err := c.Resolve(nil)
		assert.ErrorIs(t, err, ErrEmptySelection)
	})

	t.Run("неизвестный пункт", func(t *testing.T) {
		_, err := c.Resolve([]int64{1, 99})
		assert.ErrorIs(t, err, ErrUnknownMenuItem)
	})
}

func TestCatalog_FindByID(t *testing.T) {
	c := Default()

	item, ok := c.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, "Nail Care", item.Name)
	assert.Equal(t, 30, item.DurationMinutes)

	_, ok = c.FindByID(99)
	assert.False(t, ok)
}

func TestSelection_ToTreatmentServices(t *testing.T) {
	c := Default()
	sel, err := c.Resolve([]int64{1, 3})
	require.NoError(t, err)

	ts := sel.ToTreatmentServices()
	assert.Equal(t, []int64{1, 3}, ts.MenuIDs)
	require.Len(t, ts.CompletedServices, 2)
	assert.Equal(t, "Gel Nail", ts.CompletedServices[0].Name)
	assert.Equal(t, 6000, ts.CompletedServices[0].Price)
}
