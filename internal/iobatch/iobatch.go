// Package iobatch analyzes several input files concurrently.
package iobatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/nutrigap/internal/ioupload"
	"github.com/gnames/nutrigap/pkg/engine"
	"golang.org/x/sync/errgroup"
)

// Outcome is the analysis of one file. Err is set when the file could not
// be read or validated, other files are analyzed regardless.
type Outcome struct {
	Path   string
	Source string
	Result engine.Result
	Err    error
}

type job struct {
	idx  int
	path string
}

// Runner analyzes files with a fixed number of workers.
type Runner struct {
	eng      *engine.Engine
	jobs     int
	progress bool
}

// New creates a Runner. The progress bar is shown only when progress is
// true and there is more than one file.
func New(e *engine.Engine, jobs int, progress bool) *Runner {
	if jobs < 1 {
		jobs = 1
	}
	return &Runner{eng: e, jobs: jobs, progress: progress}
}

// Run analyzes files and returns outcomes in the order of paths.
func (r *Runner) Run(ctx context.Context, paths []string) ([]Outcome, error) {
	start := time.Now()
	res := make([]Outcome, len(paths))
	chIn := make(chan job)
	chOut := make(chan int)

	var bar *pb.ProgressBar
	if r.progress && len(paths) > 1 {
		bar = pb.Full.Start(len(paths))
		bar.Set("prefix", "Analyzing files: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	g, ctx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	for range min(r.jobs, max(len(paths), 1)) {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return r.worker(ctx, chIn, chOut, res)
		})
	}

	g.Go(func() error {
		for range chOut {
			if bar != nil {
				bar.Increment()
			}
		}
		return nil
	})

	go func() {
		wg.Wait()
		close(chOut)
	}()

	g.Go(func() error {
		defer close(chIn)
		for i, p := range paths {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- job{idx: i, path: p}:
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var failed, records int
	for _, o := range res {
		if o.Err != nil {
			failed++
			continue
		}
		records += o.Result.Table.Len()
	}
	slog.Info("Batch analysis finished",
		"files", humanize.Comma(int64(len(paths))),
		"failed", failed,
		"records", humanize.Comma(int64(records)),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return res, nil
}

// worker writes each outcome to its own slot of res, so no locking is
// needed.
func (r *Runner) worker(
	ctx context.Context,
	chIn <-chan job,
	chOut chan<- int,
	res []Outcome,
) error {
	for j := range chIn {
		out := Outcome{Path: j.path, Source: ioupload.Label(j.path)}
		up, err := ioupload.Read(j.path)
		if err == nil {
			out.Result, err = r.eng.Analyze(up)
		}
		if err != nil {
			out.Err = err
			slog.Warn("Cannot analyze file", "file", j.path, "error", err)
		}
		res[j.idx] = out

		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- j.idx:
		}
	}
	return nil
}
