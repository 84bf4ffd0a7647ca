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
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/maypok86/seqlock/internal/torture"
)

type result struct {
	subject      string
	mode         torture.Mode
	failedChecks uint64
	samples      []time.Duration
}

func benchmark(ctx context.Context, c config) ([]result, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	if err := os.MkdirAll(c.Output, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	results := make([]result, 0, 2*len(c.Subjects))
	for _, mode := range []torture.Mode{torture.Reader, torture.Writer} {
		pause := c.Readers.Pause
		if mode == torture.Writer {
			pause = c.Writers.Pause
		}

		for _, subject := range c.Subjects {
			log.Printf("benchmarking %s %s", subject, mode)
			res, err := torture.Run(ctx, newSubject(subject), c.Readers, c.Writers, &torture.Bench{
				Mode:    mode,
				Samples: c.Samples,
				Pause:   pause,
			})
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", subject, mode, err)
			}

			if err := writeSamples(samplesPath(c.Output, subject, mode.String()), res.Samples); err != nil {
				return nil, err
			}

			results = append(results, result{
				subject:      subject,
				mode:         mode,
				failedChecks: res.FailedChecks,
				samples:      res.Samples,
			})
		}
	}
	return results, nil
}

func samplesPath(dir, subject, mode string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.dat", subject, mode))
}

func writeSamples(path string, samples []time.Duration) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create samples file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close samples file: %w", closeErr)
		}
	}()

	w := bufio.NewWriter(f)
	for _, s := range samples {
		if _, err := w.WriteString(strconv.FormatInt(s.Nanoseconds(), 10)); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	return nil
}

func readSamples(path string) ([]time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var samples []time.Duration
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if scanner.Text() == "" {
			continue
		}
		ns, err := strconv.ParseInt(scanner.Text(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse sample %q: %w", scanner.Text(), err)
		}
		samples = append(samples, time.Duration(ns))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}
