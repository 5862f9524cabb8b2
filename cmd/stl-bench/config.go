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
	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/mostd/pkg/common/moerr"
	"github.com/matrixorigin/mostd/pkg/logutil"
)

const (
	defaultMemoryLimit   = 1 << 30
	defaultElements      = 100000
	defaultFixedCapacity = 4096
	defaultRounds        = 1
)

// Config is the stl-bench configuration.
type Config struct {
	Log      logutil.LogConfig `toml:"log"`
	Memory   MemoryConfig      `toml:"memory"`
	Workload WorkloadConfig    `toml:"workload"`
}

type MemoryConfig struct {
	// Limit is the byte budget shared by every heap storage allocation.
	Limit int64 `toml:"limit"`
}

type WorkloadConfig struct {
	// Elements pushed into each storage per round.
	Elements int `toml:"elements"`
	// FixedCapacity is the capacity of the runtime fixed storage.
	FixedCapacity int `toml:"fixed-capacity"`
	Rounds        int `toml:"rounds"`
}

func parseConfigFromFile(file string) (*Config, error) {
	cfg := &Config{}
	if file != "" {
		if _, err := toml.DecodeFile(file, cfg); err != nil {
			return nil, err
		}
	}
	cfg.adjust()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) adjust() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Memory.Limit == 0 {
		c.Memory.Limit = defaultMemoryLimit
	}
	if c.Workload.Elements == 0 {
		c.Workload.Elements = defaultElements
	}
	if c.Workload.FixedCapacity == 0 {
		c.Workload.FixedCapacity = defaultFixedCapacity
	}
	if c.Workload.Rounds == 0 {
		c.Workload.Rounds = defaultRounds
	}
}

func (c *Config) validate() error {
	if c.Memory.Limit < 0 {
		return moerr.NewBadConfig("memory limit %d", c.Memory.Limit)
	}
	if c.Workload.Elements < 0 {
		return moerr.NewBadConfig("workload elements %d", c.Workload.Elements)
	}
	if c.Workload.FixedCapacity < 0 {
		return moerr.NewBadConfig("workload fixed-capacity %d", c.Workload.FixedCapacity)
	}
	if c.Workload.Rounds < 0 {
		return moerr.NewBadConfig("workload rounds %d", c.Workload.Rounds)
	}
	return nil
}
