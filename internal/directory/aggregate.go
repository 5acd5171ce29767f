package directory

import (
	"sort"

	"github.com/zirz1911/global-security-hub/internal/database/models"
)

// TypeCount is one row of the organizations-by-type breakdown.
type TypeCount struct {
	Type  models.OrgType
	Count int
}

// CountByType groups summaries by type, most common first. Ties keep
// type-name order so output is deterministic.
func CountByType(orgs []OrgSummary) []TypeCount {
	byType := make(map[models.OrgType]int)
	for _, org := range orgs {
		byType[org.Type]++
	}

	counts := make([]TypeCount, 0, len(byType))
	for t, n := range byType {
		counts = append(counts, TypeCount{Type: t, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Type < counts[j].Type
	})
	return counts
}

// DistinctCountries returns the sorted set of countries present.
func DistinctCountries(orgs []OrgSummary) []string {
	seen := make(map[string]struct{})
	var countries []string
	for _, org := range orgs {
		if _, ok := seen[org.Country]; ok {
			continue
		}
		seen[org.Country] = struct{}{}
		countries = append(countries, org.Country)
	}
	sort.Strings(countries)
	return countries
}

// SplitCurrent partitions personnel into current and former members,
// preserving the input order within each group.
func SplitCurrent(personnel []models.Personnel) (current, former []models.Personnel) {
	for _, p := range personnel {
		if p.IsCurrent {
			current = append(current, p)
		} else {
			former = append(former, p)
		}
	}
	return current, former
}
