// Package batch orchestrates the per-file pipelines: planning and running
// OCR conversions, and exporting plain-text renditions. All orchestration is
// strictly sequential; each file's task finishes before the next starts, and
// one file's failure never aborts the run.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/minase-lab/pdfshelf/constants"
	"github.com/minase-lab/pdfshelf/internal/classify"
	"github.com/minase-lab/pdfshelf/internal/common"
	"github.com/minase-lab/pdfshelf/internal/ocr"
	"github.com/minase-lab/pdfshelf/internal/paths"
)

// Task is one planned conversion. Created during planning, mutated only by
// Execute, discarded after the run — the destination file (and optional
// sidecar) on disk are the only durable record.
type Task struct {
	Source    string
	Dest      string
	SourceRel string
	DestRel   string
	Pages     int
	Status    constants.TaskStatus
}

// Summary aggregates one Execute run.
type Summary struct {
	Succeeded int
	Failed    int
	Skipped   int
	Log       []string
}

// classifier and engine are the narrow views Converter needs of its
// collaborators.
type classifier interface {
	Classify(path string, modTime int64) classify.Classification
}

type engine interface {
	Run(ctx context.Context, src, dst string, opts ocr.Options) error
}

// Converter plans and executes OCR conversion batches.
type Converter struct {
	classifier classifier
	engine     engine
	logger     *slog.Logger
}

func NewConverter(c classifier, e engine, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{classifier: c, engine: e, logger: logger}
}

// Plan classifies files and keeps one task per image PDF, in input order
// (the caller passes the resolver's sorted enumeration, which fixes batch
// order). Files already named as converted outputs are never re-planned.
// A missing source root aborts before any planning happens.
func (b *Converter) Plan(files []string, roots paths.StorageRoots, overwrite bool) ([]Task, error) {
	if _, err := os.Stat(roots.PDF); err != nil {
		return nil, common.NewAppError("SOURCE_ROOT", fmt.Sprintf("source root %q", roots.PDF), err)
	}

	var tasks []Task
	for _, f := range files {
		stem := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		if constants.HasConvertedStem(stem) {
			continue
		}

		var modTime int64
		if fi, err := os.Stat(f); err == nil {
			modTime = fi.ModTime().UnixNano()
		}
		info := b.classifier.Classify(f, modTime)
		if info.Kind != constants.KindImage {
			continue
		}

		dst := paths.DeriveConvertedPath(f, roots.PDF, roots.Converted)
		status := constants.StatusUnconverted
		if _, err := os.Stat(dst); err == nil {
			if overwrite {
				status = constants.StatusOutputExistsRewrite
			} else {
				status = constants.StatusOutputExistsSkip
			}
		}

		tasks = append(tasks, Task{
			Source:    f,
			Dest:      dst,
			SourceRel: paths.RelativeName(f, roots.PDF),
			DestRel:   paths.RelativeName(dst, roots.Converted),
			Pages:     info.TotalPages,
			Status:    status,
		})
	}
	return tasks, nil
}

// Execute runs tasks strictly in plan order. Skip tasks never touch the
// filesystem; an OCR failure is logged, counted and stepped over. When
// saveSidecar is set, each task's recognized text lands next to its output.
func (b *Converter) Execute(ctx context.Context, tasks []Task, opts ocr.Options, saveSidecar bool) Summary {
	runID := uuid.NewString()
	var s Summary

	for i := range tasks {
		t := &tasks[i]

		if t.Status == constants.StatusOutputExistsSkip {
			s.Skipped++
			s.Log = append(s.Log, "skip: "+t.SourceRel)
			b.logger.Info("task skipped", "run_id", runID, "src", t.SourceRel)
			continue
		}

		o := opts
		if saveSidecar {
			o.SidecarPath = paths.SidecarPath(t.Dest)
		}

		if err := b.engine.Run(ctx, t.Source, t.Dest, o); err != nil {
			t.Status = constants.StatusFailed
			s.Failed++
			s.Log = append(s.Log, fmt.Sprintf("fail: %s: %v", t.SourceRel, err))
			b.logger.Error("task failed", "run_id", runID, "src", t.SourceRel, "error", err)
			continue
		}

		t.Status = constants.StatusDone
		s.Succeeded++
		s.Log = append(s.Log, "ok: "+t.SourceRel)
		b.logger.Info("task converted", "run_id", runID, "src", t.SourceRel, "dst", t.DestRel)
	}
	return s
}
