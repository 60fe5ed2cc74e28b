// Package dataset loads the three NEP prediction tables of a training run and
// applies the stress sanity filter.
package dataset

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/nepplot/internal/config"
	"github.com/san-kum/nepplot/internal/table"
)

// Column counts: predicted block followed by reference block.
const (
	EnergyWidth = 2
	ForceWidth  = 6
	StressWidth = 12
)

type Dataset struct {
	Energy table.Table
	Force  table.Table
	Stress table.Table

	// Dropped counts stress rows removed by the outlier filter.
	Dropped int
}

func Load(dir string, in config.Inputs, threshold float64, log *logrus.Logger) (*Dataset, error) {
	energy, err := loadTable(dir, in.Energy, EnergyWidth, log)
	if err != nil {
		return nil, err
	}
	force, err := loadTable(dir, in.Force, ForceWidth, log)
	if err != nil {
		return nil, err
	}
	stress, err := loadTable(dir, in.Stress, StressWidth, log)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Energy: energy, Force: force}
	ds.Stress, ds.Dropped = FilterOutliers(stress, StressWidth, threshold)
	if ds.Dropped > 0 {
		log.WithFields(logrus.Fields{
			"file":      in.Stress,
			"dropped":   ds.Dropped,
			"kept":      ds.Stress.Rows(),
			"threshold": threshold,
		}).Warn("dropped stress rows with out-of-range values")
	}
	if ds.Stress.Rows() == 0 {
		log.WithField("file", in.Stress).Warn("no stress rows left after filtering")
	}
	return ds, nil
}

func loadTable(dir, name string, width int, log *logrus.Logger) (table.Table, error) {
	path := filepath.Join(dir, name)
	t, err := table.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if err := t.Require(width); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	log.WithFields(logrus.Fields{
		"file":    path,
		"rows":    t.Rows(),
		"columns": t.Width(),
	}).Debug("loaded table")
	return t, nil
}
