// Package dataset loads the historical salary reference dataset and serves
// nearest-peer lookups over it.
//
// The dataset is loaded once at startup and never mutated, so a Store is
// safe for unsynchronized concurrent reads.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dhruvimehta17/pay-parity/internal/domain"
)

const maxPeers = 5

// minKeywordLen filters stop-word-sized tokens out of broadened matching.
const minKeywordLen = 3

// Store holds the immutable reference records.
type Store struct {
	records []domain.PeerRecord
}

// Load reads the CSV dataset at path. Expected columns: Job_Title,
// Experience_Years, Education_Level, Location, Salary_INR, Skills_Required.
// Unknown columns are ignored; rows with malformed numbers are skipped.
func Load(path string) (*Store, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("op=dataset.Load: %w", err)
	}
	defer func() { _ = f.Close() }()
	return load(f)
}

func load(r io.Reader) (*Store, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("op=dataset.load: header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Job_Title", "Salary_INR"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("op=dataset.load: missing column %s", required)
		}
	}

	var records []domain.PeerRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("op=dataset.load: row: %w", err)
		}
		salary, err := strconv.ParseFloat(field(row, col, "Salary_INR"), 64)
		if err != nil {
			continue
		}
		expYears := 0.0
		if v, err := strconv.ParseFloat(field(row, col, "Experience_Years"), 64); err == nil {
			expYears = v
		}
		records = append(records, domain.PeerRecord{
			JobTitle:        field(row, col, "Job_Title"),
			ExperienceYears: int(expYears),
			Education:       field(row, col, "Education_Level"),
			Location:        field(row, col, "Location"),
			Salary:          salary,
			Skills:          field(row, col, "Skills_Required"),
		})
	}
	return &Store{records: records}, nil
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Len returns the number of loaded records.
func (s *Store) Len() int { return len(s.records) }

// FindPeers returns up to five records with titles similar to the given one,
// ranked by absolute salary distance from predictedSalary. When direct
// substring matching yields fewer than five records, matching broadens to
// any title keyword longer than three characters. Zero matches yield an
// empty slice, never an error.
func (s *Store) FindPeers(title string, predictedSalary float64) []domain.PeerRecord {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return nil
	}

	matches := s.matchDirect(t)
	if len(matches) < maxPeers {
		if broadened := s.matchKeywords(t); len(broadened) > 0 {
			matches = broadened
		}
	}
	if len(matches) == 0 {
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return math.Abs(matches[i].Salary-predictedSalary) < math.Abs(matches[j].Salary-predictedSalary)
	})
	if len(matches) > maxPeers {
		matches = matches[:maxPeers]
	}
	out := make([]domain.PeerRecord, len(matches))
	for i, m := range matches {
		m.Salary = math.Round(m.Salary*100) / 100
		out[i] = m
	}
	return out
}

func (s *Store) matchDirect(t string) []domain.PeerRecord {
	var out []domain.PeerRecord
	for _, rec := range s.records {
		rt := strings.ToLower(rec.JobTitle)
		if strings.Contains(rt, t) || strings.TrimSpace(rt) == t {
			out = append(out, rec)
		}
	}
	return out
}

func (s *Store) matchKeywords(t string) []domain.PeerRecord {
	var keywords []string
	for _, kw := range strings.Fields(t) {
		if len(kw) > minKeywordLen {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return nil
	}
	var out []domain.PeerRecord
	for _, rec := range s.records {
		rt := strings.ToLower(rec.JobTitle)
		for _, kw := range keywords {
			if strings.Contains(rt, kw) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
