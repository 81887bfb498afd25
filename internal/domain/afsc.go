package domain

// Category separates the two AFSC families, which use different grammars
// and separate reference tables.
type Category string

const (
	CategoryEnlisted Category = "enlisted"
	CategoryOfficer  Category = "officer"
)

// BaseCode is one row of a base-code reference table. Code keeps the
// skill-level placeholder (e.g. "3D0X2") and is matched by containment.
type BaseCode struct {
	Code  string
	Title string
}

// Prefix is an optional leading-letter qualifier (e.g. organizational).
type Prefix struct {
	Symbol string
	Title  string
}

// Shred is a trailing-letter qualifier scoped to a specific base code.
type Shred struct {
	Base   string
	Symbol string
	Title  string
}

// Candidate is a single grammar match inside one comment body. It carries
// the raw capture groups; only the resolver decides whether it names a
// real specialty.
type Candidate struct {
	Whole    string
	Prefix   string
	Core     string
	Skill    string
	Suffix   string
	Category Category
}

// ResolvedCode is a candidate that matched the reference dataset, with its
// composed human-readable title.
type ResolvedCode struct {
	Whole string
	Title string
}

// Comment is one item pulled from the subreddit stream.
type Comment struct {
	ID        string
	Author    string
	Body      string
	Permalink string
}
