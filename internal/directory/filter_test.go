package directory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/zirz1911/global-security-hub/internal/database/models"
)

func summaries(names ...string) []OrgSummary {
	out := make([]OrgSummary, len(names))
	for i, name := range names {
		out[i] = OrgSummary{ID: uuid.New(), Name: name, Country: "Testland", Type: models.OrgTypePolice}
	}
	return out
}

func TestApplyFilters_Search(t *testing.T) {
	orgs := []OrgSummary{
		{ID: uuid.New(), Name: "Royal Canadian Mounted Police", Country: "Canada", Type: models.OrgTypePolice},
		{ID: uuid.New(), Name: "FBI", Country: "United States", Type: models.OrgTypeIntelligence},
		{ID: uuid.New(), Name: "Indonesia National Police", Country: "Indonesia", Type: models.OrgTypePolice},
	}

	got := ApplyFilters(orgs, Filters{Search: "police"})

	assert.Len(t, got, 2)
	// Matches keep their original order
	assert.Equal(t, "Royal Canadian Mounted Police", got[0].Name)
	assert.Equal(t, "Indonesia National Police", got[1].Name)
}

func TestApplyFilters_CountryAndTypeAreExact(t *testing.T) {
	orgs := []OrgSummary{
		{ID: uuid.New(), Name: "A", Country: "Canada", Type: models.OrgTypePolice},
		{ID: uuid.New(), Name: "B", Country: "Canada", Type: models.OrgTypeIntelligence},
		{ID: uuid.New(), Name: "C", Country: "Chile", Type: models.OrgTypePolice},
	}

	got := ApplyFilters(orgs, Filters{Country: "Canada", Type: "POLICE"})
	assert.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)

	// Country matching is not a substring match
	got = ApplyFilters(orgs, Filters{Country: "Can"})
	assert.Empty(t, got)
}

func TestApplyFilters_ZeroFilterReturnsInput(t *testing.T) {
	orgs := summaries("A", "B", "C")
	got := ApplyFilters(orgs, Filters{})
	assert.Equal(t, orgs, got)
}

func TestApplyFilters_AllPredicatesAnded(t *testing.T) {
	orgs := []OrgSummary{
		{ID: uuid.New(), Name: "National Police", Country: "Canada", Type: models.OrgTypePolice},
		{ID: uuid.New(), Name: "National Police", Country: "Chile", Type: models.OrgTypePolice},
	}

	got := ApplyFilters(orgs, Filters{Search: "national", Country: "Chile", Type: "POLICE"})
	assert.Len(t, got, 1)
	assert.Equal(t, "Chile", got[0].Country)
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		pageSize   int
		number     int
		wantItems  int
		wantNumber int
		wantPages  int
	}{
		{name: "first page full", total: 50, pageSize: 24, number: 1, wantItems: 24, wantNumber: 1, wantPages: 3},
		{name: "last page remainder", total: 50, pageSize: 24, number: 3, wantItems: 2, wantNumber: 3, wantPages: 3},
		{name: "page beyond end clamps to last", total: 50, pageSize: 24, number: 99, wantItems: 2, wantNumber: 3, wantPages: 3},
		{name: "zero page clamps to first", total: 50, pageSize: 24, number: 0, wantItems: 24, wantNumber: 1, wantPages: 3},
		{name: "negative page clamps to first", total: 50, pageSize: 24, number: -4, wantItems: 24, wantNumber: 1, wantPages: 3},
		{name: "exact multiple", total: 48, pageSize: 24, number: 2, wantItems: 24, wantNumber: 2, wantPages: 2},
		{name: "empty list", total: 0, pageSize: 24, number: 1, wantItems: 0, wantNumber: 1, wantPages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := make([]OrgSummary, tt.total)
			for i := range list {
				list[i] = OrgSummary{ID: uuid.New()}
			}

			page := Paginate(list, tt.pageSize, tt.number)

			assert.Len(t, page.Items, tt.wantItems)
			assert.Equal(t, tt.wantNumber, page.Number)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, tt.total, page.TotalItems)
		})
	}
}

func TestPaginate_PreservesOrder(t *testing.T) {
	list := summaries("A", "B", "C", "D", "E")
	page := Paginate(list, 2, 2)

	assert.Equal(t, "C", page.Items[0].Name)
	assert.Equal(t, "D", page.Items[1].Name)
	assert.True(t, page.HasPrev())
	assert.True(t, page.HasNext())
	assert.Equal(t, 1, page.PrevPage())
	assert.Equal(t, 3, page.NextPage())
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{name: "all pages when few", current: 2, total: 4, want: []int{1, 2, 3, 4}},
		{name: "single page", current: 1, total: 1, want: []int{1}},
		{name: "near start", current: 2, total: 10, want: []int{1, 2, 3, 4, 5}},
		{name: "at start boundary", current: 3, total: 10, want: []int{1, 2, 3, 4, 5}},
		{name: "middle centered", current: 6, total: 10, want: []int{4, 5, 6, 7, 8}},
		{name: "near end", current: 9, total: 10, want: []int{6, 7, 8, 9, 10}},
		{name: "at end", current: 10, total: 10, want: []int{6, 7, 8, 9, 10}},
		{name: "end boundary", current: 8, total: 10, want: []int{6, 7, 8, 9, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageWindow(tt.current, tt.total))
		})
	}
}
