package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prashu0705/green-ai-orbit/internal/model"
)

func testRegion(id string, factor float64) model.Region {
	return model.Region{
		ID:           id,
		Name:         "Region " + id,
		Code:         id,
		CarbonFactor: decimal.NewFromFloat(factor),
		RenewablePct: 50,
	}
}

func TestNewValidatesRegions(t *testing.T) {
	t.Run("rejects invalid region", func(t *testing.T) {
		bad := testRegion("us-east-1", 0.5)
		bad.Name = ""

		_, err := New([]model.Region{bad})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "us-east-1")
	})

	t.Run("rejects duplicate id", func(t *testing.T) {
		_, err := New([]model.Region{
			testRegion("eu-north-1", 0.04),
			testRegion("eu-north-1", 0.05),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("accepts empty catalog", func(t *testing.T) {
		c, err := New(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
		assert.Empty(t, c.List())
	})
}

func TestGet(t *testing.T) {
	c, err := New([]model.Region{
		testRegion("us-east-1", 0.5),
		testRegion("eu-north-1", 0.04),
	})
	require.NoError(t, err)

	t.Run("known region", func(t *testing.T) {
		r, err := c.Get("eu-north-1")
		require.NoError(t, err)
		assert.Equal(t, "eu-north-1", r.ID)
		assert.Equal(t, 40, r.Intensity())
	})

	t.Run("unknown region", func(t *testing.T) {
		_, err := c.Get("mars-1")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrRegionNotFound))
	})
}

func TestIntensityLookups(t *testing.T) {
	c, err := New([]model.Region{
		testRegion("us-east-1", 0.5),
		testRegion("eu-north-1", 0.04),
	})
	require.NoError(t, err)

	t.Run("known id resolves scaled grams", func(t *testing.T) {
		got, err := c.IntensityOf("us-east-1")
		require.NoError(t, err)
		assert.Equal(t, 500, got)
	})

	t.Run("unknown id errors", func(t *testing.T) {
		_, err := c.IntensityOf("mars-1")
		assert.True(t, errors.Is(err, ErrRegionNotFound))
	})

	t.Run("unknown id falls back to default", func(t *testing.T) {
		assert.Equal(t, DefaultIntensity, c.IntensityOrDefault("mars-1"))
	})

	t.Run("fallback ref carries the raw id", func(t *testing.T) {
		ref := c.IntensityRef("mars-1")
		assert.Equal(t, "mars-1", ref.ID)
		assert.Equal(t, "mars-1", ref.Name)
		assert.Equal(t, DefaultIntensity, ref.Intensity)
	})
}

func TestEmptyCatalogStaysSafe(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultIntensity, c.IntensityOrDefault("anything"))
	assert.Empty(t, c.Intensities())

	_, err = c.Get("anything")
	assert.True(t, errors.Is(err, ErrRegionNotFound))
}

func TestListReturnsCopy(t *testing.T) {
	c, err := New([]model.Region{testRegion("us-east-1", 0.5)})
	require.NoError(t, err)

	regions := c.List()
	require.Len(t, regions, 1)
	regions[0].ID = "mutated"

	fresh := c.List()
	assert.Equal(t, "us-east-1", fresh[0].ID)
}
