package coverage

import (
	"fmt"
	"strings"
)

// DefaultTitle is the markdown heading used when none is given.
const DefaultTitle = "Coverage Report"

// Item is one named observation.
type Item struct {
	Name    string `yaml:"name" json:"name"`
	Covered bool   `yaml:"covered" json:"covered"`
}

// Report is an ordered list of items. Names are not deduplicated.
type Report struct {
	title string
	items []Item
}

// NewReport creates an empty report. An empty title selects DefaultTitle.
func NewReport(title string) *Report {
	if title == "" {
		title = DefaultTitle
	}
	return &Report{title: title}
}

// Title returns the report heading.
func (r *Report) Title() string { return r.title }

// AddItem appends an observation.
func (r *Report) AddItem(name string, covered bool) {
	r.items = append(r.items, Item{Name: name, Covered: covered})
}

// Items returns a copy of the observations in insertion order.
func (r *Report) Items() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// Total returns the number of items.
func (r *Report) Total() int {
	return len(r.items)
}

// Covered returns the number of covered items.
func (r *Report) Covered() int {
	n := 0
	for _, it := range r.items {
		if it.Covered {
			n++
		}
	}
	return n
}

// Percentage returns covered/total*100 rounded to two decimals, or 0 for an
// empty report.
func (r *Report) Percentage() float64 {
	_, _, pct, err := r.Counts()
	if err != nil {
		return 0
	}
	return pct.Value()
}

// Counts returns the validated counters for the current items.
func (r *Report) Counts() (TotalCount, CoveredCount, Percentage, error) {
	total, err := NewTotalCount(r.Total())
	if err != nil {
		return TotalCount{}, CoveredCount{}, Percentage{}, err
	}
	covered, err := NewCoveredCount(r.Covered(), total)
	if err != nil {
		return TotalCount{}, CoveredCount{}, Percentage{}, err
	}
	pct, err := PercentageOf(covered, total)
	if err != nil {
		return TotalCount{}, CoveredCount{}, Percentage{}, err
	}
	return total, covered, pct, nil
}

// Markdown renders the report:
//
//	# Coverage Report
//
//	**Coverage: 66.67%** (2/3 items covered)
//
//	- [x] f1
//	- [x] f2
//	- [ ] f3
func (r *Report) Markdown() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "# %s\n\n", r.title)
	fmt.Fprintf(&buf, "**Coverage: %.2f%%** (%d/%d items covered)\n", r.Percentage(), r.Covered(), r.Total())
	if len(r.items) > 0 {
		buf.WriteString("\n")
	}
	for _, it := range r.items {
		mark := " "
		if it.Covered {
			mark = "x"
		}
		fmt.Fprintf(&buf, "- [%s] %s\n", mark, it.Name)
	}
	return buf.String()
}
