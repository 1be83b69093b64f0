package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonhe/invdash/internal/format"
	"github.com/tonhe/invdash/internal/inventory"
)

func sampleDataset() inventory.ChartDataset {
	return inventory.ChartDataset{
		ByType: []inventory.CategoryCount{
			{Label: "Laptop", Count: 12, Code: "LAP"},
			{Label: "Monitor", Count: 4, Code: "MON"},
			{Label: "Printer", Count: -2, Code: "PRN"},
		},
		ByStatus: []inventory.StatusCount{
			{Label: "Available", Count: 10, StatusCode: "AVA"},
			{Label: "Lost", Count: 1, StatusCode: "LOS"},
			{Label: "Mystery", Count: 3, StatusCode: "ZZZ"},
		},
	}
}

func TestUpdateBeforeInitialize(t *testing.T) {
	a := NewAdapter(&MemoryFactory{})
	assert.ErrorIs(t, a.Update(sampleDataset()), ErrNotInitialized)
	assert.False(t, a.Initialized())
}

func TestInitializeIsIdempotent(t *testing.T) {
	f := &MemoryFactory{}
	a := NewAdapter(f)
	a.Initialize()
	a.Initialize()
	assert.Equal(t, 2, f.Count())
	assert.True(t, a.Initialized())

	cat, status := a.Widgets()
	assert.Equal(t, CategoryChartID, cat.ID())
	assert.Equal(t, KindProportional, cat.Kind())
	assert.Equal(t, KindBar, status.Kind())
}

func TestUpdateColorsAndClamps(t *testing.T) {
	f := &MemoryFactory{}
	a := NewAdapter(f)
	a.Initialize()
	require.NoError(t, a.Update(sampleDataset()))

	cat := f.Created[0].Series()
	assert.Equal(t, []string{"Laptop", "Monitor", "Printer"}, cat.Labels)
	assert.Equal(t, []float64{12, 4, 0}, cat.Values)
	assert.Equal(t, format.PaletteColors(3, PaletteOpacity), cat.Colors)

	st := f.Created[1].Series()
	assert.Equal(t, []string{format.StatusColor("AVA"), format.StatusColor("LOS"), format.NeutralStatusColor}, st.Colors)
	assert.Equal(t, 1, f.Created[0].Redraws())

	ds, ok := a.Dataset()
	require.True(t, ok)
	assert.Len(t, ds.ByType, 3)
}

func TestUpdateReplacesData(t *testing.T) {
	f := &MemoryFactory{}
	a := NewAdapter(f)
	a.Initialize()
	require.NoError(t, a.Update(sampleDataset()))
	require.NoError(t, a.Update(inventory.ChartDataset{}))

	assert.Equal(t, 0, f.Created[0].Series().Len())
	assert.Equal(t, 0, f.Created[1].Series().Len())
	assert.Equal(t, 2, f.Created[1].Redraws())
}

func TestSetCategoryKindKeepsData(t *testing.T) {
	f := &MemoryFactory{}
	a := NewAdapter(f)
	a.Initialize()
	require.NoError(t, a.Update(sampleDataset()))

	a.SetCategoryKind(KindBar)
	a.SetCategoryKind(KindBar)
	cat := f.Created[0]
	assert.Equal(t, KindBar, cat.Kind())
	assert.Equal(t, []float64{12, 4, 0}, cat.Series().Values)

	a.SetCategoryKind(KindProportional)
	assert.Equal(t, KindProportional, cat.Kind())
	assert.Equal(t, KindBar, f.Created[1].Kind())
}

func TestSetCategoryKindBeforeInitialize(t *testing.T) {
	f := &MemoryFactory{}
	a := NewAdapter(f)
	a.SetCategoryKind(KindBar)
	assert.Equal(t, 0, f.Count())

	a.Initialize()
	assert.Equal(t, KindBar, f.Created[0].Kind())
	assert.Equal(t, KindBar, a.CategoryKind())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("pie")
	require.NoError(t, err)
	assert.Equal(t, KindProportional, k)

	k, err = ParseKind("bar")
	require.NoError(t, err)
	assert.Equal(t, KindBar, k)

	_, err = ParseKind("radar")
	assert.Error(t, err)
}

func TestEChartsFactoryWriteHTML(t *testing.T) {
	f := &EChartsFactory{}
	a := NewAdapter(f)
	a.Initialize()
	require.NoError(t, a.Update(sampleDataset()))
	a.SetCategoryKind(KindBar)

	require.Len(t, f.Widgets(), 2)
	assert.Equal(t, KindBar, f.Widgets()[0].Kind())

	var buf bytes.Buffer
	require.NoError(t, f.WriteHTML(&buf))
	html := buf.String()
	assert.Contains(t, html, "Equipment by type")
	assert.Contains(t, html, "Equipment by status")
	assert.Contains(t, html, "Laptop")
}
