package validate

// Category keys the issue buckets of one ingestion run. The vocabulary is
// stable; adding a category is a backward-compatible change for API
// consumers.
type Category string

const (
	CategoryNameMismatches    Category = "name_format_mismatches"
	CategoryClubMisses        Category = "club_misses"
	CategoryDuplicateAthletes Category = "duplicate_athletes"
	CategoryInvalidTimes      Category = "invalid_times"
	CategoryMissingBirthdates Category = "missing_birthdates"
	CategoryUnknownEvents     Category = "unknown_events"
)

// Categories returns the vocabulary in stable order.
func Categories() []Category {
	return []Category{
		CategoryNameMismatches,
		CategoryClubMisses,
		CategoryDuplicateAthletes,
		CategoryInvalidTimes,
		CategoryMissingBirthdates,
		CategoryUnknownEvents,
	}
}

// Issue is one entry in a run-level issue bucket. Issues are ephemeral:
// they belong to a single ingestion run and are never persisted.
type Issue struct {
	Sheet  string `json:"sheet"`
	Line   int    `json:"line"`
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

// Report groups a run's issues by category.
type Report struct {
	Issues map[Category][]Issue `json:"issues"`
}

// NewReport creates an empty report with every bucket present, so API
// consumers always see the full vocabulary.
func NewReport() *Report {
	r := &Report{Issues: make(map[Category][]Issue, len(Categories()))}
	for _, cat := range Categories() {
		r.Issues[cat] = []Issue{}
	}
	return r
}

// Add appends an issue to a bucket.
func (r *Report) Add(cat Category, issue Issue) {
	r.Issues[cat] = append(r.Issues[cat], issue)
}

// Count returns the number of issues in one bucket.
func (r *Report) Count(cat Category) int {
	return len(r.Issues[cat])
}

// Total returns the number of issues across all buckets.
func (r *Report) Total() int {
	total := 0
	for _, issues := range r.Issues {
		total += len(issues)
	}
	return total
}
