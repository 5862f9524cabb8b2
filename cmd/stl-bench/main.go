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
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/matrixorigin/mostd/pkg/common/malloc"
	"github.com/matrixorigin/mostd/pkg/logutil"
	v2 "github.com/matrixorigin/mostd/pkg/util/metric/v2"
)

var (
	configFile = flag.String("cfg", "", "toml configuration used to run stl-bench")
)

func main() {
	flag.Parse()

	cfg, err := parseConfigFromFile(*configFile)
	if err != nil {
		panic(fmt.Sprintf("failed to parse config from %s, error: %s", *configFile, err.Error()))
	}

	setupLogger(cfg)
	setupAllocator(cfg)
	logutil.Infof("stl-bench memory %+v, workload %+v", cfg.Memory, cfg.Workload)

	results := runWorkload(cfg)
	printResults(os.Stdout, results)
	if err := printMetrics(os.Stdout); err != nil {
		panic(err)
	}
}

func setupLogger(cfg *Config) {
	logutil.SetupMOLogger(&cfg.Log)
}

// setupAllocator routes every heap storage through a budgeted allocator
// whose activity is reported under the "stl-bench" label.
func setupAllocator(cfg *Config) {
	malloc.SetDefault(malloc.NewMetricsAllocator(
		malloc.NewLimitedAllocator(malloc.NewGoAllocator(), uint64(cfg.Memory.Limit)),
		v2.NewAllocatorMetrics("stl-bench"),
	))
}

func printResults(w io.Writer, results []result) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STORAGE\tROUND\tPUSHED\tFULL\tKEPT\tCAP\tELAPSED\tERROR")
	for _, r := range results {
		errMsg := "-"
		if r.err != nil {
			errMsg = r.err.Error()
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%t\t%d\t%d\t%s\t%s\n",
			r.storage, r.round, r.pushed, r.full, r.kept, r.capacity, r.elapsed, errMsg)
	}
	tw.Flush()
}

func printMetrics(w io.Writer) error {
	families, err := v2.GetPrometheusGatherer().Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, l := range m.GetLabel() {
				name += fmt.Sprintf(" %s=%s", l.GetName(), l.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "%s %g\n", name, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Fprintf(w, "%s %g\n", name, m.GetGauge().GetValue())
			}
		}
	}
	return nil
}
