package afsc

import (
	"regexp"
	"strings"

	"github.com/CyberAustin/AFSCbot/internal/domain"
)

// Enlisted codes are digit-letter-digit-skill-digit with an optional
// leading prefix letter and trailing shred letter; the skill slot admits
// only odd digits, zero, or the X wildcard. Officer codes are two digits
// and a letter with an optional X marking an indeterminate skill level.
var (
	enlistedExpr = regexp.MustCompile(`([A-Z]?)(\d[A-Z]\d([013579]|X)\d)([A-Z]?)`)
	officerExpr  = regexp.MustCompile(`([A-Z]?)(\d\d[A-Z](X?))([A-Z]?)`)
)

// Extract scans body left to right for substrings shaped like codes of the
// given category. Matching is lexical only; the resolver decides whether a
// candidate names a real specialty. Input is uppercased before matching so
// callers may pass raw comment text.
func Extract(body string, cat domain.Category) []domain.Candidate {
	expr := enlistedExpr
	if cat == domain.CategoryOfficer {
		expr = officerExpr
	}

	var candidates []domain.Candidate
	for _, groups := range expr.FindAllStringSubmatch(strings.ToUpper(body), -1) {
		candidates = append(candidates, domain.Candidate{
			Whole:    groups[0],
			Prefix:   groups[1],
			Core:     groups[2],
			Skill:    groups[3],
			Suffix:   groups[4],
			Category: cat,
		})
	}
	return candidates
}
