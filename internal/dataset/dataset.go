package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/CyberAustin/AFSCbot/internal/domain"
)

// Sources names the six reference tables on disk. Base-code files use '#'
// as the delimiter because job titles routinely contain commas; prefix and
// shred files are plain comma-separated.
type Sources struct {
	EnlistedBases    string `yaml:"enlistedBases"`
	OfficerBases     string `yaml:"officerBases"`
	EnlistedPrefixes string `yaml:"enlistedPrefixes"`
	OfficerPrefixes  string `yaml:"officerPrefixes"`
	EnlistedShreds   string `yaml:"enlistedShreds"`
	OfficerShreds    string `yaml:"officerShreds"`
}

// Tables holds the ordered reference rows for one category. Row order is
// load order; lookups scan linearly and the first hit wins, so order is
// part of the contract.
type Tables struct {
	Bases    []domain.BaseCode
	Prefixes []domain.Prefix
	Shreds   []domain.Shred
}

// Reference is the full immutable dataset, one table set per category.
type Reference struct {
	Enlisted Tables
	Officer  Tables
}

// Load reads all six tables. Any unreadable file or row with the wrong
// column count is a fatal load error; the bot must not run against a
// partial dataset.
func Load(src Sources) (*Reference, error) {
	var ref Reference
	var err error

	if ref.Enlisted.Bases, err = loadBases(src.EnlistedBases); err != nil {
		return nil, fmt.Errorf("enlisted bases: %w", err)
	}
	if ref.Officer.Bases, err = loadBases(src.OfficerBases); err != nil {
		return nil, fmt.Errorf("officer bases: %w", err)
	}
	if ref.Enlisted.Prefixes, err = loadPrefixes(src.EnlistedPrefixes); err != nil {
		return nil, fmt.Errorf("enlisted prefixes: %w", err)
	}
	if ref.Officer.Prefixes, err = loadPrefixes(src.OfficerPrefixes); err != nil {
		return nil, fmt.Errorf("officer prefixes: %w", err)
	}
	if ref.Enlisted.Shreds, err = loadShreds(src.EnlistedShreds); err != nil {
		return nil, fmt.Errorf("enlisted shreds: %w", err)
	}
	if ref.Officer.Shreds, err = loadShreds(src.OfficerShreds); err != nil {
		return nil, fmt.Errorf("officer shreds: %w", err)
	}

	return &ref, nil
}

// Category selects the table set for one code family.
func (r *Reference) Category(cat domain.Category) Tables {
	if cat == domain.CategoryOfficer {
		return r.Officer
	}
	return r.Enlisted
}

func loadBases(path string) ([]domain.BaseCode, error) {
	var bases []domain.BaseCode
	err := readRows(path, '#', 2, func(row []string) {
		bases = append(bases, domain.BaseCode{
			Code:  strings.ToUpper(strings.TrimSpace(row[0])),
			Title: strings.TrimSpace(row[1]),
		})
	})
	if err != nil {
		return nil, err
	}
	return bases, nil
}

func loadPrefixes(path string) ([]domain.Prefix, error) {
	var prefixes []domain.Prefix
	err := readRows(path, ',', 2, func(row []string) {
		prefixes = append(prefixes, domain.Prefix{
			Symbol: strings.ToUpper(strings.TrimSpace(row[0])),
			Title:  strings.TrimSpace(row[1]),
		})
	})
	if err != nil {
		return nil, err
	}
	return prefixes, nil
}

func loadShreds(path string) ([]domain.Shred, error) {
	var shreds []domain.Shred
	err := readRows(path, ',', 3, func(row []string) {
		shreds = append(shreds, domain.Shred{
			Base:   strings.ToUpper(strings.TrimSpace(row[0])),
			Symbol: strings.ToUpper(strings.TrimSpace(row[1])),
			Title:  strings.TrimSpace(row[2]),
		})
	})
	if err != nil {
		return nil, err
	}
	return shreds, nil
}

func readRows(path string, comma rune, fields int, accept func([]string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = comma
	reader.FieldsPerRecord = fields

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		accept(row)
	}
}
