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
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/maypok86/seqlock/internal/torture"
)

const bins = 50

type histogram struct {
	lo     time.Duration
	width  time.Duration
	counts []int
}

// newHistogram splits [lo, hi] into n bins of equal width. Samples outside of the
// range are dropped, so that a few outliers don't squash the interesting part.
func newHistogram(lo, hi time.Duration, n int) *histogram {
	if hi < lo {
		hi = lo
	}
	width := (hi-lo)/time.Duration(n) + 1
	return &histogram{
		lo:     lo,
		width:  width,
		counts: make([]int, n),
	}
}

func (h *histogram) add(samples []time.Duration) []int {
	counts := make([]int, len(h.counts))
	for _, s := range samples {
		if s < h.lo {
			continue
		}
		idx := int((s - h.lo) / h.width)
		if idx >= len(counts) {
			continue
		}
		counts[idx]++
	}
	return counts
}

func (h *histogram) labels() []string {
	labels := make([]string, 0, len(h.counts))
	for i := range h.counts {
		labels = append(labels, (h.lo + time.Duration(i)*h.width).String())
	}
	return labels
}

func plot(dir string, subjects []string) error {
	for _, mode := range []torture.Mode{torture.Reader, torture.Writer} {
		if err := plotMode(dir, mode.String(), subjects); err != nil {
			return fmt.Errorf("%s: %w", mode, err)
		}
	}
	return nil
}

func plotMode(dir, mode string, subjects []string) error {
	data := make(map[string][]time.Duration, len(subjects))
	var all []time.Duration
	for _, subject := range subjects {
		samples, err := readSamples(samplesPath(dir, subject, mode))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		data[subject] = samples
		all = append(all, samples...)
	}
	if len(all) == 0 {
		return fmt.Errorf("no samples found in %s", dir)
	}

	slices.Sort(all)
	h := newHistogram(percentile(all, 0.01), percentile(all, 0.99), bins)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: mode + " latency",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: mode + " time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "count",
		}),
		charts.WithLegendOpts(opts.Legend{
			Orient: "vertical",
			Right:  "0%",
			Top:    "10%",
		}),
	)
	bar.SetXAxis(h.labels())
	for _, subject := range subjects {
		samples, ok := data[subject]
		if !ok {
			continue
		}
		counts := h.add(samples)
		barData := make([]opts.BarData, 0, len(counts))
		for _, c := range counts {
			barData = append(barData, opts.BarData{Value: c})
		}
		bar.AddSeries(subject, barData)
	}

	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("histogram.%s.html", mode)))
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
