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
	"io"
	"slices"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

type summary struct {
	min time.Duration
	p50 time.Duration
	p99 time.Duration
	max time.Duration
}

func summarize(samples []time.Duration) summary {
	if len(samples) == 0 {
		return summary{}
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return summary{
		min: sorted[0],
		p50: percentile(sorted, 0.5),
		p99: percentile(sorted, 0.99),
		max: sorted[len(sorted)-1],
	}
}

// percentile expects sorted samples.
func percentile(sorted []time.Duration, p float64) time.Duration {
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

func report(w io.Writer, results []result) error {
	t := tablewriter.NewWriter(w).Options(tablewriter.WithRendition(tw.Rendition{
		Borders: tw.Border{
			Left:   tw.On,
			Top:    tw.Off,
			Right:  tw.On,
			Bottom: tw.Off,
		},
	}), tablewriter.WithHeader([]string{"Subject", "Mode", "Min", "P50", "P99", "Max", "Checks"}))

	for _, r := range results {
		s := summarize(r.samples)
		status := color.GreenString("ok")
		if r.failedChecks > 0 {
			status = color.RedString("%d failed", r.failedChecks)
		}
		row := []any{
			r.subject,
			r.mode.String(),
			s.min.String(),
			s.p50.String(),
			s.p99.String(),
			s.max.String(),
			status,
		}
		if err := t.Append(row...); err != nil {
			return err
		}
	}
	return t.Render()
}
