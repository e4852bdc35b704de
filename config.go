package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidConfig marks configuration errors detected at construction
// time, before any engine interaction.
var ErrInvalidConfig = errors.New("invalid configuration")

// RunConfig is the fully-explicit benchmark configuration. Every field is
// required; there are no implicit defaults. ExtensionPath is the single
// optional field: empty means the engine's bundled tpch extension.
type RunConfig struct {
	ScaleFactor   float64 `json:"scale_factor"`
	DataPath      string  `json:"data_path"`
	OutputPath    string  `json:"output_path"`
	Iterations    int     `json:"iterations"`
	Queries       []int   `json:"queries"`
	ExtensionPath string  `json:"tpch_extension_path,omitempty"`
}

func NewRunConfig(scaleFactor float64, dataPath, outputPath string, iterations int, queries []int, extensionPath string) (RunConfig, error) {
	if scaleFactor <= 0 {
		return RunConfig{}, fmt.Errorf("%w: scale_factor must be positive, got %v", ErrInvalidConfig, scaleFactor)
	}
	if dataPath == "" {
		return RunConfig{}, fmt.Errorf("%w: data_path must be set", ErrInvalidConfig)
	}
	if outputPath == "" {
		return RunConfig{}, fmt.Errorf("%w: output_path must be set", ErrInvalidConfig)
	}
	if iterations <= 0 {
		return RunConfig{}, fmt.Errorf("%w: iterations must be positive, got %v", ErrInvalidConfig, iterations)
	}
	if len(queries) == 0 {
		return RunConfig{}, fmt.Errorf("%w: queries must not be empty", ErrInvalidConfig)
	}
	for _, query := range queries {
		if query < 1 || query > QueryCount {
			return RunConfig{}, fmt.Errorf("%w: query %v out of range [1,%v]", ErrInvalidConfig, query, QueryCount)
		}
	}
	config := RunConfig{
		ScaleFactor:   scaleFactor,
		DataPath:      dataPath,
		OutputPath:    outputPath,
		Iterations:    iterations,
		Queries:       append([]int(nil), queries...),
		ExtensionPath: extensionPath,
	}
	return config, nil
}

// configFile mirrors RunConfig with pointer fields so that an absent
// required field is distinguishable from a zero value.
type configFile struct {
	ScaleFactor   *float64 `json:"scale_factor"`
	DataPath      *string  `json:"data_path"`
	OutputPath    *string  `json:"output_path"`
	Iterations    *int     `json:"iterations"`
	Queries       *[]int   `json:"queries"`
	ExtensionPath *string  `json:"tpch_extension_path"`
}

func LoadConfig(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("failed to read config %v: %w", path, err)
	}
	var file configFile
	if err := json.Unmarshal(data, &file); err != nil {
		return RunConfig{}, fmt.Errorf("failed to parse config %v: %w", path, err)
	}
	if file.ScaleFactor == nil {
		return RunConfig{}, fmt.Errorf("%w: scale_factor is required", ErrInvalidConfig)
	}
	if file.DataPath == nil {
		return RunConfig{}, fmt.Errorf("%w: data_path is required", ErrInvalidConfig)
	}
	if file.OutputPath == nil {
		return RunConfig{}, fmt.Errorf("%w: output_path is required", ErrInvalidConfig)
	}
	if file.Iterations == nil {
		return RunConfig{}, fmt.Errorf("%w: iterations is required", ErrInvalidConfig)
	}
	if file.Queries == nil {
		return RunConfig{}, fmt.Errorf("%w: queries is required", ErrInvalidConfig)
	}
	extensionPath := ""
	if file.ExtensionPath != nil {
		extensionPath = *file.ExtensionPath
	}
	return NewRunConfig(*file.ScaleFactor, *file.DataPath, *file.OutputPath, *file.Iterations, *file.Queries, extensionPath)
}

// SampleConfig is the configuration emitted by the init command: every
// field spelled out, all 22 queries, bundled extension.
func SampleConfig() RunConfig {
	queries := make([]int, 0, QueryCount)
	for query := 1; query <= QueryCount; query++ {
		queries = append(queries, query)
	}
	return RunConfig{
		ScaleFactor: 1,
		DataPath:    "./data",
		OutputPath:  "./results",
		Iterations:  3,
		Queries:     queries,
	}
}

func WriteSampleConfig(path string) error {
	data, err := json.MarshalIndent(SampleConfig(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
