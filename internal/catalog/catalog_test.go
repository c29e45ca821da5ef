package catalog

import (
	"testing"

	"github.com/modgarage/customizer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel(t *testing.T) {
	m, ok := Model("adder")
	require.True(t, ok)
	assert.Equal(t, "Adder", m.Name)
	assert.Equal(t, core.CategorySuper, m.Category)
	assert.Equal(t, core.Stats{Speed: 95, Acceleration: 85, Braking: 70, Handling: 85, Weight: 1200}, m.BaseStats)
	assert.Equal(t, int64(1000000), m.Price)

	_, ok = Model("nonexistent")
	assert.False(t, ok)
}

func TestModels_OrderAndCount(t *testing.T) {
	ms := Models()
	require.Len(t, ms, 8)

	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.ID
	}
	assert.Equal(t, []string{"adder", "zentorno", "infernus", "banshee", "comet", "buffalo", "sultan", "patriot"}, ids)
}

func TestModels_ReturnsCopy(t *testing.T) {
	ms := Models()
	ms[0].Price = 1
	ms[0].BaseStats.Speed = 1

	m, _ := Model("adder")
	assert.Equal(t, int64(1000000), m.Price)
	assert.Equal(t, 95, m.BaseStats.Speed)
	assert.Equal(t, 95, Models()[0].BaseStats.Speed)
}

func TestAllModelsHavePositiveStats(t *testing.T) {
	for _, m := range Models() {
		t.Run(m.ID, func(t *testing.T) {
			assert.True(t, m.Category.IsValid())
			assert.Positive(t, m.BaseStats.Speed)
			assert.Positive(t, m.BaseStats.Acceleration)
			assert.Positive(t, m.BaseStats.Braking)
			assert.Positive(t, m.BaseStats.Handling)
			assert.Positive(t, m.BaseStats.Weight)
			assert.GreaterOrEqual(t, m.Price, int64(0))
		})
	}
}

func TestModelsByCategory(t *testing.T) {
	tests := []struct {
		category core.Category
		expected []string
	}{
		{core.CategorySuper, []string{"adder", "zentorno", "infernus"}},
		{core.CategorySports, []string{"banshee", "comet"}},
		{core.CategoryMuscle, []string{"buffalo"}},
		{core.CategorySedan, []string{"sultan"}},
		{core.CategorySUV, []string{"patriot"}},
		{core.CategoryCoupe, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			var ids []string
			for _, m := range ModelsByCategory(tt.category) {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []core.Category{
		core.CategorySuper,
		core.CategorySports,
		core.CategoryMuscle,
		core.CategorySedan,
		core.CategorySUV,
	}, Categories())
}

func TestOptions(t *testing.T) {
	assert.Len(t, Wheels(), 5)
	w, ok := Wheel("tuner")
	require.True(t, ok)
	assert.Equal(t, int64(12500), w.Price)
	_, ok = Wheel("stock")
	assert.False(t, ok, "stock wheels are implicit")

	assert.Len(t, BodyKits(), 4)
	k, ok := BodyKit("carbon")
	require.True(t, ok)
	assert.Equal(t, "Carbon Fiber", k.Name)
	_, ok = BodyKit("stock")
	assert.True(t, ok)
}

func TestPaintColors(t *testing.T) {
	p := PaintColors()
	assert.Len(t, p.Primary, 12)
	assert.Equal(t, p.Primary, p.Secondary)

	p.Primary[0] = "#123456"
	assert.Equal(t, "#FF0000", PaintColors().Primary[0])
}
