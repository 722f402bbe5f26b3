// Copyright 2023 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package progress

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorse-io/evalviz/base/log"
	"go.uber.org/zap"
)

type tracerKey struct{}

type Status string

const (
	StatusRunning  Status = "Running"
	StatusComplete Status = "Complete"
	StatusFailed   Status = "Failed"
)

// Tracer collects spans started under contexts that carry it.
type Tracer struct {
	name  string
	spans sync.Map
	seq   atomic.Int64
}

func NewTracer(name string) *Tracer {
	return &Tracer{name: name}
}

// NewContext returns a context carrying the tracer.
func NewContext(ctx context.Context, tracer *Tracer) context.Context {
	return context.WithValue(ctx, tracerKey{}, tracer)
}

// Start creates a span and registers it.
func (t *Tracer) Start(name string, total int) *Span {
	span := &Span{
		seq:    t.seq.Add(1),
		tracer: t.name,
		name:   name,
		status: StatusRunning,
		total:  total,
		start:  time.Now(),
	}
	t.spans.Store(span.seq, span)
	return span
}

// List returns progress of all spans in the order they started.
func (t *Tracer) List() []Progress {
	var spans []*Span
	t.spans.Range(func(_, value interface{}) bool {
		spans = append(spans, value.(*Span))
		return true
	})
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].seq < spans[j].seq
	})
	progress := make([]Progress, len(spans))
	for i, span := range spans {
		progress[i] = span.Progress()
	}
	return progress
}

// Span tracks a job consisting of total steps. It is safe for concurrent use.
type Span struct {
	mu     sync.Mutex
	seq    int64
	tracer string
	name   string
	status Status
	total  int
	count  int
	err    error
	start  time.Time
	finish time.Time
}

func (s *Span) Add(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count += n
}

func (s *Span) End() {
	s.mu.Lock()
	s.status = StatusComplete
	s.count = s.total
	s.finish = time.Now()
	s.mu.Unlock()
	log.Logger().Debug("complete "+s.name, zap.Int("steps", s.total),
		zap.Duration("elapsed", s.finish.Sub(s.start)))
}

func (s *Span) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusFailed
	s.err = err
	s.finish = time.Now()
}

func (s *Span) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

func (s *Span) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := Progress{
		Tracer:     s.tracer,
		Name:       s.name,
		Status:     s.status,
		Count:      s.count,
		Total:      s.total,
		StartTime:  s.start,
		FinishTime: s.finish,
	}
	if s.err != nil {
		p.Error = s.err.Error()
	}
	return p
}

// Start creates a span in the tracer carried by ctx. Without a tracer the
// span is tracked by nobody.
func Start(ctx context.Context, name string, total int) *Span {
	if tracer, ok := ctx.Value(tracerKey{}).(*Tracer); ok {
		return tracer.Start(name, total)
	}
	return NewTracer("").Start(name, total)
}

type Progress struct {
	Tracer     string
	Name       string
	Status     Status
	Error      string
	Count      int
	Total      int
	StartTime  time.Time
	FinishTime time.Time
}
