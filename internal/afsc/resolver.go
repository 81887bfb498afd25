package afsc

import (
	"strings"

	"github.com/CyberAustin/AFSCbot/internal/dataset"
	"github.com/CyberAustin/AFSCbot/internal/domain"
)

// Tier words indexed by skill digit minus one. Even slots are unnamed
// levels and contribute no word.
var skillLevels = [...]string{
	"Helper", "", "Apprentice", "", "Journeyman", "", "Craftsman", "", "Superintendent",
}

// Resolve looks a candidate up in its category's tables and composes the
// annotation title. The second return is false when the normalized code
// matches no base entry, which is the normal outcome for code-shaped
// strings that are not real specialties.
func Resolve(c domain.Candidate, tables dataset.Tables) (domain.ResolvedCode, bool) {
	norm := Normalize(c)

	base, ok := findBase(tables.Bases, norm)
	if !ok {
		return domain.ResolvedCode{}, false
	}

	var title strings.Builder
	if c.Prefix != "" {
		if prefix, ok := findPrefix(tables.Prefixes, c.Prefix); ok {
			title.WriteString(prefix.Title)
			title.WriteString(" ")
		}
	}
	title.WriteString(base.Title)

	if c.Category == domain.CategoryEnlisted {
		if word := skillWord(c.Skill); word != "" {
			title.WriteString(" ")
			title.WriteString(word)
		}
	}

	if c.Suffix != "" {
		if shred, ok := findShred(tables.Shreds, norm, c.Suffix); ok {
			title.WriteString(", ")
			title.WriteString(shred.Title)
		}
	}

	return domain.ResolvedCode{Whole: c.Whole, Title: title.String()}, true
}

// Normalize produces the lookup key for a candidate: enlisted codes get
// their skill digit replaced by the wildcard, officer codes get a trailing
// wildcard appended when the indeterminate marker is absent.
func Normalize(c domain.Candidate) string {
	if c.Category == domain.CategoryOfficer {
		if c.Skill == "" {
			return c.Core + "X"
		}
		return c.Core
	}
	return c.Core[:3] + "X" + c.Core[4:]
}

// findBase returns the first row whose code contains the normalized
// candidate. Containment, not equality: some rows encode several
// skill-level placeholders in one code field. Source order decides ties.
func findBase(bases []domain.BaseCode, norm string) (domain.BaseCode, bool) {
	for _, base := range bases {
		if strings.Contains(base.Code, norm) {
			return base, true
		}
	}
	return domain.BaseCode{}, false
}

func findPrefix(prefixes []domain.Prefix, symbol string) (domain.Prefix, bool) {
	for _, prefix := range prefixes {
		if prefix.Symbol == symbol {
			return prefix, true
		}
	}
	return domain.Prefix{}, false
}

// findShred matches on the (base code, trailing symbol) pair; shreds are
// scoped to one base code, so both must agree.
func findShred(shreds []domain.Shred, norm, symbol string) (domain.Shred, bool) {
	for _, shred := range shreds {
		if shred.Base == norm && shred.Symbol == symbol {
			return shred, true
		}
	}
	return domain.Shred{}, false
}

// skillWord maps the literal skill digit to its tier word. The wildcard
// and zero carry no level; neither do the unnamed even tiers.
func skillWord(skill string) string {
	if skill == "" || skill == "X" || skill == "0" {
		return ""
	}
	d := int(skill[0] - '0')
	if d < 1 || d > 9 {
		return ""
	}
	return skillLevels[d-1]
}
