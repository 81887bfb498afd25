package afsc

import (
	"testing"

	"github.com/CyberAustin/AFSCbot/internal/dataset"
	"github.com/CyberAustin/AFSCbot/internal/domain"
)

func enlistedTables() dataset.Tables {
	return dataset.Tables{
		Bases: []domain.BaseCode{
			{Code: "1C1X1", Title: "Air Traffic Control"},
			{Code: "3D0X2", Title: "Cyber Systems Operations"},
			{Code: "2A3X3", Title: "Tactical Aircraft Maintenance"},
		},
		Prefixes: []domain.Prefix{
			{Symbol: "A", Title: "Air National Guard"},
			{Symbol: "K", Title: "Instructor"},
		},
		Shreds: []domain.Shred{
			{Base: "2A3X3", Symbol: "A", Title: "F-15"},
			{Base: "2A3X3", Symbol: "B", Title: "F-16"},
		},
	}
}

func officerTables() dataset.Tables {
	return dataset.Tables{
		Bases: []domain.BaseCode{
			{Code: "32EX", Title: "Civil Engineer"},
			{Code: "62EX", Title: "Developmental Engineer"},
		},
		Prefixes: []domain.Prefix{
			{Symbol: "Q", Title: "Evaluator"},
		},
		Shreds: []domain.Shred{
			{Base: "62EX", Symbol: "B", Title: "Bioenvironmental"},
		},
	}
}

func TestResolveEnlistedSkillLevel(t *testing.T) {
	t.Parallel()

	c := domain.Candidate{
		Whole: "3D052", Core: "3D052", Skill: "5",
		Category: domain.CategoryEnlisted,
	}
	resolved, ok := Resolve(c, enlistedTables())
	if !ok {
		t.Fatalf("expected a resolution")
	}
	if resolved.Title != "Cyber Systems Operations Journeyman" {
		t.Fatalf("unexpected title: %s", resolved.Title)
	}
}

func TestResolveEnlistedWildcardSkill(t *testing.T) {
	t.Parallel()

	c := domain.Candidate{
		Whole: "3D0X2", Core: "3D0X2", Skill: "X",
		Category: domain.CategoryEnlisted,
	}
	resolved, ok := Resolve(c, enlistedTables())
	if !ok {
		t.Fatalf("expected a resolution")
	}
	if resolved.Title != "Cyber Systems Operations" {
		t.Fatalf("wildcard skill must not add a tier word, got: %s", resolved.Title)
	}
}

func TestResolveEnlistedZeroSkill(t *testing.T) {
	t.Parallel()

	c := domain.Candidate{
		Whole: "3D002", Core: "3D002", Skill: "0",
		Category: domain.CategoryEnlisted,
	}
	resolved, ok := Resolve(c, enlistedTables())
	if !ok {
		t.Fatalf("expected a resolution")
	}
	if resolved.Title != "Cyber Systems Operations" {
		t.Fatalf("zero skill must not add a tier word, got: %s", resolved.Title)
	}
}

func TestResolveEnlistedPrefix(t *testing.T) {
	t.Parallel()

	c := domain.Candidate{
		Whole: "A3D052", Prefix: "A", Core: "3D052", Skill: "5",
		Category: domain.CategoryEnlisted,
	}
	resolved, ok := Resolve(c, enlistedTables())
	if !ok {
		t.Fatalf("expected a resolution")
	}
	if resolved.Title != "Air National Guard Cyber Systems Operations Journeyman" {
		t.Fatalf("unexpected title: %s", resolved.Title)
	}
}

func TestResolveUnknownPrefixLetterIsIgnored(t *testing.T) {
	t.Parallel()

	c := domain.Candidate{
		Whole: "Z3D052", Prefix: "Z", Core: "3D052", Skill: "5",
		Category: domain.CategoryEnlisted,
	}
	resolved, ok := Resolve(c, enlistedTables())
	if !ok {
		t.Fatalf("expected a resolution")
	}
	if resolved.Title != "Cyber Systems Operations Journeyman" {
		t.Fatalf("unexpected title: %s", resolved.Title)
	}
}

func TestResolveEnlistedShred(t *testing.T) {
	t.Parallel()

	c := domain.Candidate{
		Whole: "2A353B", Core: "2A353", Skill: "5", Suffix: "B",
		Category: domain.CategoryEnlisted,
	}
	resolved, ok := Resolve(c, enlistedTables())
	if !ok {
		t.Fatalf("expected a resolution")
	}
	if resolved.Title != "Tactical Aircraft Maintenance Journeyman, F-16" {
		t.Fatalf("unexpected title: %s", resolved.Title)
	}
}

func TestResolveShredRequiresMatchingBase(t *testing.T) {
	t.Parallel()

	// suffix B exists, but only for 2A3X3
	c := domain.Candidate{
		Whole: "3D052B", Core: "3D052", Skill: "5", Suffix: "B",
		Category: domain.CategoryEnlisted,
	}
	resolved, ok := Resolve(c, enlistedTables())
	if !ok {
		t.Fatalf("expected a resolution")
	}
	if resolved.Title != "Cyber Systems Operations Journeyman" {
		t.Fatalf("unexpected title: %s", resolved.Title)
	}
}

func TestResolveOfficerWithShred(t *testing.T) {
	t.Parallel()

	c := domain.Candidate{
		Whole: "62EXB", Core: "62EX", Skill: "X", Suffix: "B",
		Category: domain.CategoryOfficer,
	}
	resolved, ok := Resolve(c, officerTables())
	if !ok {
		t.Fatalf("expected a resolution")
	}
	if resolved.Title != "Developmental Engineer, Bioenvironmental" {
		t.Fatalf("unexpected title: %s", resolved.Title)
	}
}

func TestResolveOfficerAppendsWildcard(t *testing.T) {
	t.Parallel()

	c := domain.Candidate{
		Whole: "62E", Core: "62E", Skill: "",
		Category: domain.CategoryOfficer,
	}
	resolved, ok := Resolve(c, officerTables())
	if !ok {
		t.Fatalf("expected a resolution")
	}
	if resolved.Title != "Developmental Engineer" {
		t.Fatalf("unexpected title: %s", resolved.Title)
	}
}

func TestResolveUnknownCode(t *testing.T) {
	t.Parallel()

	c := domain.Candidate{
		Whole: "9Z9X9", Core: "9Z9X9", Skill: "X",
		Category: domain.CategoryEnlisted,
	}
	if _, ok := Resolve(c, enlistedTables()); ok {
		t.Fatalf("expected no resolution for unknown code")
	}
}

func TestResolveFirstBaseRowWins(t *testing.T) {
	t.Parallel()

	tables := dataset.Tables{
		Bases: []domain.BaseCode{
			{Code: "3D0X2/3D0X3", Title: "Combined Row"},
			{Code: "3D0X2", Title: "Later Row"},
		},
	}
	c := domain.Candidate{
		Whole: "3D0X2", Core: "3D0X2", Skill: "X",
		Category: domain.CategoryEnlisted,
	}
	resolved, ok := Resolve(c, tables)
	if !ok {
		t.Fatalf("expected a resolution")
	}
	if resolved.Title != "Combined Row" {
		t.Fatalf("expected first row in source order to win, got: %s", resolved.Title)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		candidate domain.Candidate
		want      string
	}{
		{domain.Candidate{Core: "3D052", Category: domain.CategoryEnlisted}, "3D0X2"},
		{domain.Candidate{Core: "3D0X2", Category: domain.CategoryEnlisted}, "3D0X2"},
		{domain.Candidate{Core: "62EX", Skill: "X", Category: domain.CategoryOfficer}, "62EX"},
		{domain.Candidate{Core: "62E", Category: domain.CategoryOfficer}, "62EX"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.candidate); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.candidate.Core, got, tc.want)
		}
	}
}
