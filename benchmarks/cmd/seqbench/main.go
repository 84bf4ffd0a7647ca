// Copyright (c) 2025 Alexey Mayshev and contributors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command seqbench measures read and write latencies of seqlock.Lock against
// sync.Mutex and sync.RWMutex under concurrent load.
//
// Usage:
//
//	seqbench [-config path] [-out dir] [run]
//	seqbench [-out dir] plot
//
// run writes one latency sample in nanoseconds per line to {out}/{subject}_{mode}.dat
// and prints a summary. plot renders {out}/histogram.{mode}.html from those files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
)

func main() {
	var (
		configPath string
		out        string
	)

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&out, "out", "", "Directory for samples and charts (overrides the config)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, flag.Arg(0), configPath, out); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, command, configPath, out string) error {
	c, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if out != "" {
		c.Output = out
	}

	switch command {
	case "", "run":
		results, err := benchmark(ctx, c)
		if err != nil {
			return fmt.Errorf("benchmark: %w", err)
		}
		return report(os.Stdout, results)
	case "plot":
		if err := plot(c.Output, c.Subjects); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown command: %q", command)
	}
}
