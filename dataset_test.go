package main

import (
	"database/sql"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, scaleFactor float64, iterations int, queries []int) RunConfig {
	t.Helper()
	dir := t.TempDir()
	config, err := NewRunConfig(scaleFactor, path.Join(dir, "data"), path.Join(dir, "results"), iterations, queries, "")
	require.Nil(t, err)
	return config
}

func TestFormatScaleFactor(t *testing.T) {
	require.Equal(t, "1", formatScaleFactor(1))
	require.Equal(t, "10", formatScaleFactor(10))
	require.Equal(t, "0_1", formatScaleFactor(0.1))
	require.Equal(t, "0_01", formatScaleFactor(0.01))
	require.Equal(t, "2_5", formatScaleFactor(2.5))
}

func TestDatasetPathsDistinctPerScaleFactor(t *testing.T) {
	small := testConfig(t, 0.1, 1, []int{1})
	large := small
	large.ScaleFactor = 1

	smallPath := NewDatasetProvisioner(small).DatasetPath()
	largePath := NewDatasetProvisioner(large).DatasetPath()
	require.NotEqual(t, smallPath, largePath)
	require.Equal(t, path.Dir(smallPath), path.Dir(largePath))
}

func TestExistsHasNoSideEffects(t *testing.T) {
	config := testConfig(t, 1, 1, []int{1})
	provisioner := NewDatasetProvisioner(config)

	exists, err := provisioner.Exists()
	require.Nil(t, err)
	require.False(t, exists)

	_, err = os.Stat(config.DataPath)
	require.True(t, os.IsNotExist(err))
}

func TestGenerateThenExists(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping dataset generation in short mode")
	}
	config := testConfig(t, 0.01, 1, []int{1})
	provisioner := NewDatasetProvisioner(config)

	datasetPath, err := provisioner.Generate()
	require.Nil(t, err)
	require.Equal(t, provisioner.DatasetPath(), datasetPath)

	exists, err := provisioner.Exists()
	require.Nil(t, err)
	require.True(t, exists)

	// Known tpch cardinalities: customer scales with sf, nation is fixed.
	db, err := sql.Open("duckdb", datasetPath)
	require.Nil(t, err)
	defer db.Close()

	var customers, nations int
	require.Nil(t, db.QueryRow("SELECT count(*) FROM customer").Scan(&customers))
	require.Equal(t, 1500, customers)
	require.Nil(t, db.QueryRow("SELECT count(*) FROM nation").Scan(&nations))
	require.Equal(t, 25, nations)
}
