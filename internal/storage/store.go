package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/nepplot/internal/config"
	"github.com/san-kum/nepplot/internal/parity"
)

// Store archives fit reports, one directory per report.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type QuantityReport struct {
	Unit       string           `json:"unit"`
	Rows       int              `json:"rows"`
	RMSE       Value            `json:"rmse"`
	Components map[string]Value `json:"components"`
}

type Report struct {
	ID        string                    `json:"id"`
	Preset    string                    `json:"preset"`
	Timestamp time.Time                 `json:"timestamp"`
	Dir       string                    `json:"dir"`
	Inputs    config.Inputs             `json:"inputs"`
	Output    string                    `json:"output"`
	Threshold float64                   `json:"outlier_threshold"`
	Dropped   int                       `json:"dropped_stress_rows"`
	Results   map[string]QuantityReport `json:"results"`
}

// NewReport captures a summary together with the settings that produced it.
func NewReport(dir string, cfg *config.Config, s parity.Summary) *Report {
	r := &Report{
		Preset:    cfg.Preset,
		Timestamp: time.Now(),
		Dir:       dir,
		Inputs:    cfg.Inputs,
		Output:    cfg.Output,
		Threshold: cfg.OutlierThreshold,
		Dropped:   s.Dropped,
		Results:   make(map[string]QuantityReport, 3),
	}
	for _, q := range s.Quantities() {
		qr := QuantityReport{
			Unit:       q.Unit,
			Rows:       q.Rows,
			RMSE:       Value(q.Mean),
			Components: make(map[string]Value, len(q.Components)),
		}
		for name, v := range q.Components {
			qr.Components[name] = Value(v)
		}
		r.Results[q.Name] = qr
	}
	return r
}

// Save writes report.json and components.csv under a fresh report ID.
func (s *Store) Save(r *Report) (string, error) {
	preset := r.Preset
	if preset == "" {
		preset = "custom"
	}
	r.ID = fmt.Sprintf("%s_%d_%s", preset, r.Timestamp.Unix(), uuid.NewString()[:8])
	reportDir := filepath.Join(s.baseDir, r.ID)

	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(reportDir, "report.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(reportDir, "components.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"quantity", "component", "rmse", "unit"}); err != nil {
		return "", err
	}
	for _, name := range sortedKeys(r.Results) {
		q := r.Results[name]
		for _, c := range sortedKeys(q.Components) {
			row := []string{name, c, strconv.FormatFloat(float64(q.Components[c]), 'g', -1, 64), q.Unit}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return r.ID, nil
}

// List returns every readable report, oldest first. Directories without a
// valid report.json are skipped.
func (s *Store) List() ([]Report, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Report{}, nil
		}
		return nil, err
	}

	reports := make([]Report, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		r, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		reports = append(reports, *r)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Timestamp.Before(reports[j].Timestamp)
	})
	return reports, nil
}

func (s *Store) Load(id string) (*Report, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "report.json"))
	if err != nil {
		return nil, err
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
