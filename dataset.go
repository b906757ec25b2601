package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// CSV header names the loader depends on.
const (
	colLaunchSite      = "Launch Site"
	colPayloadMass     = "Payload Mass (kg)"
	colBoosterCategory = "Booster Version Category"
	colClass           = "class"
	colFlightNumber    = "Flight Number"
	colBoosterVersion  = "Booster Version"
)

var requiredColumns = []string{colLaunchSite, colPayloadMass, colBoosterCategory, colClass}

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrBadRecord     = errors.New("bad launch record")
	ErrEmptyDataset  = errors.New("dataset has no launch records")
)

// LaunchRecord is one row of the launch CSV.
type LaunchRecord struct {
	FlightNumber           int     `json:"flight_number,omitempty"`
	LaunchSite             string  `json:"launch_site"`
	PayloadMassKg          float64 `json:"payload_mass_kg"`
	BoosterVersion         string  `json:"booster_version,omitempty"`
	BoosterVersionCategory string  `json:"booster_version_category"`
	Class                  int     `json:"class"`
}

// Succeeded reports whether the launch outcome was a success.
func (r LaunchRecord) Succeeded() bool { return r.Class == 1 }

// Dataset is the immutable, ordered collection of launch records loaded at start-up.
// It is safe for concurrent use because nothing mutates it after construction.
type Dataset struct {
	records    []LaunchRecord
	minPayload float64
	maxPayload float64
}

// NewDataset copies records and computes the payload bounds.
func NewDataset(records []LaunchRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	ds := &Dataset{
		records:    append([]LaunchRecord(nil), records...),
		minPayload: math.Inf(1),
		maxPayload: math.Inf(-1),
	}
	for _, r := range ds.records {
		ds.minPayload = math.Min(ds.minPayload, r.PayloadMassKg)
		ds.maxPayload = math.Max(ds.maxPayload, r.PayloadMassKg)
	}
	return ds, nil
}

// LoadDataset reads the launch CSV at path.
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := ReadDataset(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

// ReadDataset parses launch records from CSV. The header must carry the required
// columns; any other column is ignored.
func ReadDataset(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "" {
			continue
		}
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, strconv.Quote(name))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	var records []LaunchRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)

		rec, err := parseRecord(row, index)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRecord, line, err)
		}
		records = append(records, rec)
	}

	return NewDataset(records)
}

func parseRecord(row []string, index map[string]int) (LaunchRecord, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	payload, err := strconv.ParseFloat(field(colPayloadMass), 64)
	if err != nil || payload < 0 || math.IsNaN(payload) || math.IsInf(payload, 0) {
		return LaunchRecord{}, fmt.Errorf("payload mass %q is not a non-negative number", field(colPayloadMass))
	}

	class, err := strconv.ParseFloat(field(colClass), 64)
	if err != nil || (class != 0 && class != 1) {
		return LaunchRecord{}, fmt.Errorf("class %q is not 0 or 1", field(colClass))
	}

	site := field(colLaunchSite)
	if site == "" {
		return LaunchRecord{}, errors.New("empty launch site")
	}

	// Flight Number is informational only.
	flight, _ := strconv.Atoi(field(colFlightNumber))

	return LaunchRecord{
		FlightNumber:           flight,
		LaunchSite:             site,
		PayloadMassKg:          payload,
		BoosterVersion:         field(colBoosterVersion),
		BoosterVersionCategory: field(colBoosterCategory),
		Class:                  int(class),
	}, nil
}

func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of the records in CSV order.
func (d *Dataset) Records() []LaunchRecord {
	return append([]LaunchRecord(nil), d.records...)
}

func (d *Dataset) MinPayload() float64 { return d.minPayload }

func (d *Dataset) MaxPayload() float64 { return d.maxPayload }

// Sites returns the distinct launch sites in first-appearance order.
func (d *Dataset) Sites() []string {
	seen := make(map[string]bool)
	var sites []string
	for _, r := range d.records {
		if !seen[r.LaunchSite] {
			seen[r.LaunchSite] = true
			sites = append(sites, r.LaunchSite)
		}
	}
	return sites
}

// SuccessesBySite sums class per site, sites in first-appearance order.
func (d *Dataset) SuccessesBySite(_ context.Context) ([]Slice, error) {
	return groupSum(d.records, func(r LaunchRecord) (string, int) {
		return r.LaunchSite, r.Class
	}), nil
}

// OutcomesAtSite weighs each row at site by class+1 and groups by outcome label.
func (d *Dataset) OutcomesAtSite(_ context.Context, site string) ([]Slice, error) {
	var rows []LaunchRecord
	for _, r := range d.records {
		if r.LaunchSite == site {
			rows = append(rows, r)
		}
	}
	return groupSum(rows, func(r LaunchRecord) (string, int) {
		return outcomeLabel(r.Class), r.Class + 1
	}), nil
}

// PayloadWindow keeps rows with lo <= payload <= hi, optionally restricted to one site.
func (d *Dataset) PayloadWindow(_ context.Context, lo, hi float64, site string) ([]LaunchRecord, error) {
	var out []LaunchRecord
	for _, r := range d.records {
		if r.PayloadMassKg < lo || r.PayloadMassKg > hi {
			continue
		}
		if site != AllSites && r.LaunchSite != site {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func groupSum(rows []LaunchRecord, key func(LaunchRecord) (string, int)) []Slice {
	pos := make(map[string]int)
	var out []Slice
	for _, r := range rows {
		label, v := key(r)
		i, ok := pos[label]
		if !ok {
			i = len(out)
			pos[label] = i
			out = append(out, Slice{Label: label})
		}
		out[i].Value += v
	}
	return out
}
