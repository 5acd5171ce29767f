package directory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/zirz1911/global-security-hub/internal/database/models"
)

// PageSize is the fixed number of organizations per public listing page.
const PageSize = 24

// maxPageButtons caps the number of visible page buttons.
const maxPageButtons = 5

// OrgSummary is the slim projection the listing pages work with.
type OrgSummary struct {
	ID      uuid.UUID      `json:"id"`
	Name    string         `json:"name"`
	Country string         `json:"country"`
	Type    models.OrgType `json:"type"`
	LogoURL string         `json:"logo_url,omitempty"`
}

// Filters holds the three optional listing criteria. The zero value
// matches everything.
type Filters struct {
	Search  string
	Country string
	Type    string
}

// IsZero reports whether no criterion is set.
func (f Filters) IsZero() bool {
	return f.Search == "" && f.Country == "" && f.Type == ""
}

// ApplyFilters returns the organizations matching all active criteria:
// case-insensitive substring match of Search against the name, exact
// equality for Country and Type when set. The input order is preserved;
// the engine never re-sorts (callers supply name-sorted data).
func ApplyFilters(orgs []OrgSummary, f Filters) []OrgSummary {
	if f.IsZero() {
		return orgs
	}

	search := strings.ToLower(f.Search)
	matched := make([]OrgSummary, 0, len(orgs))
	for _, org := range orgs {
		if search != "" && !strings.Contains(strings.ToLower(org.Name), search) {
			continue
		}
		if f.Country != "" && org.Country != f.Country {
			continue
		}
		if f.Type != "" && string(org.Type) != f.Type {
			continue
		}
		matched = append(matched, org)
	}
	return matched
}

// Page is one slice of a filtered listing.
type Page struct {
	Items      []OrgSummary
	Number     int
	TotalPages int
	TotalItems int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// PrevPage returns the previous page number, clamped at 1.
func (p Page) PrevPage() int {
	if p.Number <= 1 {
		return 1
	}
	return p.Number - 1
}

// NextPage returns the next page number, clamped at the last page.
func (p Page) NextPage() int {
	if p.Number >= p.TotalPages {
		return p.TotalPages
	}
	return p.Number + 1
}

// Paginate slices list into fixed-size pages and returns page `number`
// (1-based). The page number is clamped to the valid range, so out-of-range
// requests return the first or last page rather than an error. An empty
// list yields a page with zero items and zero total pages.
func Paginate(list []OrgSummary, pageSize, number int) Page {
	if pageSize < 1 {
		pageSize = PageSize
	}

	totalPages := (len(list) + pageSize - 1) / pageSize
	if number < 1 {
		number = 1
	}
	if totalPages > 0 && number > totalPages {
		number = totalPages
	}

	start := (number - 1) * pageSize
	end := start + pageSize
	if start > len(list) {
		start = len(list)
	}
	if end > len(list) {
		end = len(list)
	}

	return Page{
		Items:      list[start:end],
		Number:     number,
		TotalPages: totalPages,
		TotalItems: len(list),
	}
}

// PageWindow returns the page numbers to display as buttons: all of them
// when total <= 5, otherwise a 5-wide window centered on current and
// clamped so it never starts before page 1 or runs past the last page.
func PageWindow(current, total int) []int {
	if total < 1 {
		return nil
	}

	count := total
	if count > maxPageButtons {
		count = maxPageButtons
	}

	window := make([]int, count)
	for i := range window {
		switch {
		case total <= maxPageButtons:
			window[i] = i + 1
		case current <= 3:
			window[i] = i + 1
		case current >= total-2:
			window[i] = total - maxPageButtons + 1 + i
		default:
			window[i] = current - 2 + i
		}
	}
	return window
}
