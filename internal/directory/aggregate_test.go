package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zirz1911/global-security-hub/internal/database/models"
)

func TestCountByType(t *testing.T) {
	orgs := []OrgSummary{
		{Name: "A", Type: models.OrgTypePolice},
		{Name: "B", Type: models.OrgTypePolice},
		{Name: "C", Type: models.OrgTypeIntelligence},
		{Name: "D", Type: models.OrgTypeCustoms},
		{Name: "E", Type: models.OrgTypeCustoms},
	}

	counts := CountByType(orgs)

	assert.Equal(t, []TypeCount{
		{Type: models.OrgTypeCustoms, Count: 2},
		{Type: models.OrgTypePolice, Count: 2},
		{Type: models.OrgTypeIntelligence, Count: 1},
	}, counts)
}

func TestDistinctCountries(t *testing.T) {
	orgs := []OrgSummary{
		{Country: "Indonesia"},
		{Country: "Canada"},
		{Country: "Indonesia"},
		{Country: "Brazil"},
	}

	assert.Equal(t, []string{"Brazil", "Canada", "Indonesia"}, DistinctCountries(orgs))
}

func TestSplitCurrent(t *testing.T) {
	personnel := []models.Personnel{
		{Name: "A", IsCurrent: true},
		{Name: "B", IsCurrent: false},
		{Name: "C", IsCurrent: true},
	}

	current, former := SplitCurrent(personnel)

	assert.Len(t, current, 2)
	assert.Equal(t, "A", current[0].Name)
	assert.Equal(t, "C", current[1].Name)
	assert.Len(t, former, 1)
	assert.Equal(t, "B", former[0].Name)
}
