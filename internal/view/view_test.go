package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type row struct {
	Name    string
	Status  string
	Order   float64
	Created time.Time
}

func (r row) SearchText() []string { return []string{r.Name} }

func (r row) FieldValue(key string) string {
	if key == "status" {
		return r.Status
	}
	return ""
}

func (r row) SortValue(key string) Value {
	switch key {
	case "order":
		return Number(r.Order)
	case "created":
		return Time(r.Created)
	default:
		return String(r.Name)
	}
}

func sampleRows() []row {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []row{
		{Name: "Algebra", Status: "active", Order: 3, Created: base},
		{Name: "Biology", Status: "inactive", Order: 1, Created: base.Add(2 * time.Hour)},
		{Name: "Chemistry", Status: "active", Order: 2, Created: base.Add(time.Hour)},
		{Name: "algorithms", Status: "active", Order: 4, Created: base.Add(3 * time.Hour)},
	}
}

func TestApplyNoParamsReturnsEverything(t *testing.T) {
	result := Apply(sampleRows(), Params{})

	assert.Equal(t, 4, result.TotalCount)
	assert.Equal(t, 1, result.TotalPages)
	assert.Len(t, result.PageItems, 4)
	// Without a sort key the incoming order is preserved.
	assert.Equal(t, "Algebra", result.PageItems[0].Name)
	assert.Equal(t, "algorithms", result.PageItems[3].Name)
}

func TestApplySearchIsCaseInsensitiveSubstring(t *testing.T) {
	result := Apply(sampleRows(), Params{Search: "ALG"})

	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, "Algebra", result.PageItems[0].Name)
	assert.Equal(t, "algorithms", result.PageItems[1].Name)
}

func TestApplyFieldFilterExactMatch(t *testing.T) {
	result := Apply(sampleRows(), Params{Filters: map[string]string{"status": "inactive"}})

	assert.Equal(t, 1, result.TotalCount)
	assert.Equal(t, "Biology", result.PageItems[0].Name)
}

func TestApplyFilterAllIsNoOp(t *testing.T) {
	all := Apply(sampleRows(), Params{Filters: map[string]string{"status": FilterAll}})
	empty := Apply(sampleRows(), Params{Filters: map[string]string{"status": ""}})

	assert.Equal(t, 4, all.TotalCount)
	assert.Equal(t, 4, empty.TotalCount)
}

func TestApplySortString(t *testing.T) {
	result := Apply(sampleRows(), Params{SortKey: "name"})

	// Case-insensitive: "Algebra" and "algorithms" group together.
	assert.Equal(t, "Algebra", result.PageItems[0].Name)
	assert.Equal(t, "algorithms", result.PageItems[1].Name)
	assert.Equal(t, "Biology", result.PageItems[2].Name)
	assert.Equal(t, "Chemistry", result.PageItems[3].Name)
}

func TestApplySortNumberDesc(t *testing.T) {
	result := Apply(sampleRows(), Params{SortKey: "order", SortDir: Desc})

	assert.Equal(t, "algorithms", result.PageItems[0].Name)
	assert.Equal(t, "Algebra", result.PageItems[1].Name)
	assert.Equal(t, "Chemistry", result.PageItems[2].Name)
	assert.Equal(t, "Biology", result.PageItems[3].Name)
}

func TestApplySortTime(t *testing.T) {
	result := Apply(sampleRows(), Params{SortKey: "created"})

	assert.Equal(t, "Algebra", result.PageItems[0].Name)
	assert.Equal(t, "Chemistry", result.PageItems[1].Name)
}

func TestApplySortIsStable(t *testing.T) {
	items := []row{
		{Name: "b", Order: 1},
		{Name: "a", Order: 1},
		{Name: "c", Order: 1},
	}
	result := Apply(items, Params{SortKey: "order"})

	// Equal keys keep the incoming order.
	assert.Equal(t, "b", result.PageItems[0].Name)
	assert.Equal(t, "a", result.PageItems[1].Name)
	assert.Equal(t, "c", result.PageItems[2].Name)
}

func TestApplyFilterRunsBeforePagination(t *testing.T) {
	result := Apply(sampleRows(), Params{
		Filters:  map[string]string{"status": "active"},
		Page:     1,
		PageSize: 2,
	})

	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 2, result.TotalPages)
	assert.Len(t, result.PageItems, 2)
}

func TestApplyPageBeyondLastIsEmptyNotError(t *testing.T) {
	result := Apply(sampleRows(), Params{Page: 9, PageSize: 2})

	assert.Empty(t, result.PageItems)
	assert.Equal(t, 4, result.TotalCount)
	assert.Equal(t, 2, result.TotalPages)
}

func TestApplyLastPartialPage(t *testing.T) {
	result := Apply(sampleRows(), Params{Page: 2, PageSize: 3})

	assert.Len(t, result.PageItems, 1)
	assert.Equal(t, 2, result.TotalPages)
}

func TestApplyIsDeterministic(t *testing.T) {
	p := Params{Search: "a", SortKey: "name", SortDir: Desc, PageSize: 2}

	first := Apply(sampleRows(), p)
	second := Apply(sampleRows(), p)

	assert.Equal(t, first, second)
}

func TestApplyEmptyInput(t *testing.T) {
	result := Apply([]row{}, Params{Search: "x"})

	assert.Empty(t, result.PageItems)
	assert.Zero(t, result.TotalCount)
	assert.Zero(t, result.TotalPages)
}
