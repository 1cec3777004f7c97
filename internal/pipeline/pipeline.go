package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/crimson-sun/actionlog/internal/connector"
	"github.com/crimson-sun/actionlog/internal/engine"
	"github.com/crimson-sun/actionlog/internal/output"
	"github.com/crimson-sun/actionlog/internal/session"
	"github.com/crimson-sun/actionlog/internal/transcript"
)

// Pipeline connects a connector, a replayed session, the engine, and an
// output into a processing pipeline.
type Pipeline struct {
	connector connector.Connector
	session   *session.Replay
	engine    *engine.Engine
	output    output.Output

	records     atomic.Int64
	skippedLogs atomic.Int64
}

// New creates a Pipeline from the given components. The engine must have
// been built over sess and out.
func New(conn connector.Connector, sess *session.Replay, eng *engine.Engine, out output.Output) *Pipeline {
	return &Pipeline{
		connector: conn,
		session:   sess,
		engine:    eng,
		output:    out,
	}
}

// Stream starts the pipeline, applying records as they arrive. Blocks until
// the source is exhausted or the context is cancelled. Records that fail to
// decode are logged and skipped.
func (p *Pipeline) Stream(ctx context.Context, cfg connector.ConnectorConfig) error {
	ch, err := p.connector.Stream(ctx, cfg)
	if err != nil {
		return fmt.Errorf("pipeline stream: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case rec, ok := <-ch:
			if !ok {
				return nil
			}
			p.process(ctx, rec)
		}
	}
}

func (p *Pipeline) process(ctx context.Context, rec transcript.Record) {
	p.records.Add(1)
	metricRecords.Inc()
	if rec.Err != nil {
		p.skippedLogs.Add(1)
		metricSkipped.Inc()
		slog.Warn("skipping undecodable record", "line", rec.Line, "error", rec.Err)
		return
	}

	ev, err := rec.Event()
	if err != nil {
		p.skippedLogs.Add(1)
		metricSkipped.Inc()
		slog.Warn("skipping record", "line", rec.Line, "error", err)
		return
	}

	rec.Apply(p.session)
	if ev != nil {
		p.engine.Handle(ctx, ev)
	}
}

// Records returns how many records have been read.
func (p *Pipeline) Records() int64 { return p.records.Load() }

// Skipped returns how many records were skipped as malformed.
func (p *Pipeline) Skipped() int64 { return p.skippedLogs.Load() }

// Close logs a summary and shuts down the output.
func (p *Pipeline) Close() error {
	st := p.engine.Stats()
	slog.Info("pipeline closed",
		"records", p.records.Load(),
		"skipped", p.skippedLogs.Load(),
		"emitted", st.Emitted,
		"suppressed", st.Suppressed,
		"unmapped", st.Unmapped,
		"sink_errors", st.SinkErrors,
	)
	return p.output.Close()
}
