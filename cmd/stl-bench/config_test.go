// Copyright 2024 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mostd/pkg/common/moerr"
	"github.com/matrixorigin/mostd/pkg/container/stl"
)

func writeConfig(t *testing.T, content string) string {
	file := filepath.Join(t.TempDir(), "stl-bench.toml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	return file
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfigFromFile("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, int64(defaultMemoryLimit), cfg.Memory.Limit)
	assert.Equal(t, defaultElements, cfg.Workload.Elements)
	assert.Equal(t, defaultFixedCapacity, cfg.Workload.FixedCapacity)
	assert.Equal(t, defaultRounds, cfg.Workload.Rounds)
}

func TestParseConfigFromFile(t *testing.T) {
	file := writeConfig(t, `
[log]
level = "debug"
format = "json"
max-size = 16

[memory]
limit = 4096

[workload]
elements = 10
fixed-capacity = 8
rounds = 3
`)
	cfg, err := parseConfigFromFile(file)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 16, cfg.Log.MaxSize)
	assert.Equal(t, int64(4096), cfg.Memory.Limit)
	assert.Equal(t, 10, cfg.Workload.Elements)
	assert.Equal(t, 8, cfg.Workload.FixedCapacity)
	assert.Equal(t, 3, cfg.Workload.Rounds)

	// the sample shipped next to the binary must stay valid
	_, err = parseConfigFromFile("stl-bench.toml")
	require.NoError(t, err)
}

func TestParseConfigBad(t *testing.T) {
	cases := []string{
		"[memory]\nlimit = -1\n",
		"[workload]\nelements = -1\n",
		"[workload]\nfixed-capacity = -2\n",
		"[workload]\nrounds = -3\n",
	}
	for _, c := range cases {
		_, err := parseConfigFromFile(writeConfig(t, c))
		require.True(t, moerr.IsMoErrCode(err, moerr.ErrBadConfig), "%q: %v", c, err)
	}

	_, err := parseConfigFromFile(writeConfig(t, "[workload\n"))
	require.Error(t, err)
	_, err = parseConfigFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestRunWorkload(t *testing.T) {
	cfg := &Config{
		Memory: MemoryConfig{Limit: 1 << 20},
		Workload: WorkloadConfig{
			Elements:      5000,
			FixedCapacity: 100,
			Rounds:        1,
		},
	}
	cfg.adjust()
	require.NoError(t, cfg.validate())

	results := runWorkload(cfg)
	require.Len(t, results, len(storageFactories))
	for _, r := range results {
		require.NoError(t, r.err, r.storage)
		require.LessOrEqual(t, r.kept, r.pushed, r.storage)
		require.LessOrEqual(t, r.kept, r.capacity, r.storage)
		switch r.storage {
		case "inline":
			require.True(t, r.full)
			require.Equal(t, 4096, r.pushed)
			require.Equal(t, 4096, r.capacity)
		case "fixed":
			require.True(t, r.full)
			require.Equal(t, 100, r.pushed)
		case "heap":
			require.False(t, r.full)
			require.Equal(t, 5000, r.pushed)
			require.Equal(t, r.kept, r.capacity)
		}
	}

	var buf bytes.Buffer
	printResults(&buf, results)
	require.Contains(t, buf.String(), "STORAGE")
	require.Contains(t, buf.String(), "heap")
}

// overcommitStorage claims room it does not have.
type overcommitStorage struct {
	*stl.Fixed[int64]
}

func (overcommitStorage) TryReserve(int) error { return nil }

func TestRunOneCapturesAbort(t *testing.T) {
	res := runOne(overcommitStorage{stl.NewFixed(make([]int64, 2))}, 3)
	require.Equal(t, 2, res.pushed)
	require.True(t, moerr.IsMoErrCode(res.err, moerr.ErrInternal), "%v", res.err)

	res = runOne(stl.NewFixed(make([]int64, 2)), 3)
	require.NoError(t, res.err)
	require.True(t, res.full)
}

func TestPrintMetrics(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printMetrics(&buf))
	require.Contains(t, buf.String(), "mo_stl_heap_grow_total")
}
