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

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/maypok86/seqlock/internal/torture"
)

const (
	mutexSubject       = "mutex"
	rwmutexSubject     = "rwmutex"
	seqlockSubject     = "seqlock"
	seqlockPeekSubject = "seqlock-peek"
)

var availableSubjects = []string{
	mutexSubject,
	rwmutexSubject,
	seqlockSubject,
	seqlockPeekSubject,
}

type config struct {
	Output   string        `toml:"output"`
	Samples  int           `toml:"samples"`
	Subjects []string      `toml:"subjects"`
	Readers  torture.Spec  `toml:"readers"`
	Writers  torture.Spec  `toml:"writers"`
	Timeout  time.Duration `toml:"timeout"`
}

// defaultConfig describes infrequent writers and demanding readers.
func defaultConfig() config {
	readers := torture.DefaultSpec()
	readers.Goroutines = 200
	readers.Pause = 0

	writers := torture.DefaultSpec()
	writers.Goroutines = 3

	return config{
		Output:   "results",
		Samples:  10_000,
		Subjects: availableSubjects,
		Readers:  readers,
		Writers:  writers,
		Timeout:  10 * time.Minute,
	}
}

func (c *config) validate() error {
	if c.Output == "" {
		return errors.New("output is empty")
	}
	if c.Samples <= 0 {
		return errors.New("samples should be positive")
	}
	if len(c.Subjects) == 0 {
		return errors.New("subjects is empty")
	}
	for _, s := range c.Subjects {
		if newSubject(s) == nil {
			return fmt.Errorf("unknown subject: %q", s)
		}
	}
	if c.Readers.Goroutines <= 0 && c.Writers.Goroutines <= 0 {
		return errors.New("there are neither readers nor writers")
	}
	if c.Timeout < 0 {
		return errors.New("timeout should not be negative")
	}
	return nil
}

func newSubject(name string) torture.Factory {
	switch name {
	case mutexSubject:
		return torture.NewMutex
	case rwmutexSubject:
		return torture.NewRWMutex
	case seqlockSubject:
		return torture.NewSeqLock(nil)
	case seqlockPeekSubject:
		return torture.NewSeqLockPeek(nil)
	default:
		return nil
	}
}

// loadConfig reads the config at configPath on top of the defaults.
// An empty path means the defaults.
func loadConfig(configPath string) (config, error) {
	c := defaultConfig()
	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return config{}, fmt.Errorf("read config: %w", err)
		}

		if err := toml.Unmarshal(content, &c); err != nil {
			return config{}, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	if err := c.validate(); err != nil {
		return config{}, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}
