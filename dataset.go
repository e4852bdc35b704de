package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DatasetProvisioner guarantees a durable tpch dataset exists for the
// configured scale factor. Generation happens in a throwaway in-memory
// engine and is persisted with ATTACH/COPY/DETACH, so the durable store
// stays in the engine's native format.
type DatasetProvisioner struct {
	config RunConfig
}

func NewDatasetProvisioner(config RunConfig) *DatasetProvisioner {
	return &DatasetProvisioner{config: config}
}

// formatScaleFactor renders a scale factor for use in filenames: integral
// values bare (1), fractional values with dots replaced by underscores
// (0.01 -> 0_01) so distinct scale factors never collide.
func formatScaleFactor(scaleFactor float64) string {
	if scaleFactor == math.Trunc(scaleFactor) {
		return strconv.FormatInt(int64(scaleFactor), 10)
	}
	return strings.ReplaceAll(strconv.FormatFloat(scaleFactor, 'f', -1, 64), ".", "_")
}

// DatasetPath is the canonical durable store location for the configured
// scale factor under data_path.
func (p *DatasetProvisioner) DatasetPath() string {
	return filepath.Join(p.config.DataPath, fmt.Sprintf("tpch_sf%v.db", formatScaleFactor(p.config.ScaleFactor)))
}

// Exists reports whether the durable store is already present. It never
// creates directories or files.
func (p *DatasetProvisioner) Exists() (bool, error) {
	_, err := os.Stat(p.DatasetPath())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Generate populates a fresh in-memory engine with tpch data at the
// configured scale factor and persists it to the canonical location.
// It does not check for an existing store: callers gate on Exists, which
// keeps forced regeneration possible. A failure during persistence can
// leave a partial store behind; removing it before a retry is the
// caller's responsibility.
func (p *DatasetProvisioner) Generate() (string, error) {
	datasetPath := p.DatasetPath()
	Logger.Infof("started dataset generation at %v (scale factor %v)", datasetPath, p.config.ScaleFactor)

	if err := os.MkdirAll(p.config.DataPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data path %v: %w", p.config.DataPath, err)
	}

	db, err := OpenEngine()
	if err != nil {
		return "", err
	}
	defer db.Close()

	if err := LoadTpchExtension(db, p.config.ExtensionPath); err != nil {
		return "", err
	}

	if _, err := db.Exec(fmt.Sprintf("CALL dbgen(sf = %v);", p.config.ScaleFactor)); err != nil {
		return "", fmt.Errorf("failed to generate tpch data at scale factor %v: %w", p.config.ScaleFactor, err)
	}

	attach := fmt.Sprintf("ATTACH '%v' AS tpch_persist;", escapeSqlString(datasetPath))
	if _, err := db.Exec(attach); err != nil {
		return "", fmt.Errorf("failed to attach durable store %v: %w", datasetPath, err)
	}
	if _, err := db.Exec("COPY FROM DATABASE memory TO tpch_persist;"); err != nil {
		return "", fmt.Errorf("failed to persist dataset to %v, partial store may remain: %w", datasetPath, err)
	}
	if _, err := db.Exec("DETACH tpch_persist;"); err != nil {
		return "", fmt.Errorf("failed to detach durable store %v: %w", datasetPath, err)
	}

	Logger.Infof("finished dataset generation at %v", datasetPath)
	return datasetPath, nil
}
