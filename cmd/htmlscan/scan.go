package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	htmlscan "github.com/crawlkit/htmlscan/internal"
	"github.com/crawlkit/htmlscan/internal/handler"
	"github.com/crawlkit/htmlscan/internal/loc"
	"github.com/crawlkit/htmlscan/internal/source"
	"golang.org/x/sync/errgroup"
)

type scanFunc func(w io.Writer, src *source.Source, z *htmlscan.Scanner, h *handler.Handler) error

// scanFiles runs scan over every file, cfg.jobs at a time, and writes the
// output of each file to w in argument order. A file that fails is logged
// and skipped; the returned error reports how many failed.
func scanFiles(ctx context.Context, logger *slog.Logger, w io.Writer, files []string, cfg config, scan scanFunc) error {
	outputs := make([]bytes.Buffer, len(files))
	var failed atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.jobs)
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := scanFile(logger, &outputs[i], name, cfg.opts, scan); err != nil {
				logger.Error("scan failed", "file", name, "error", err)
				outputs[i].Reset()
				failed.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()

	for i := range outputs {
		if _, werr := outputs[i].WriteTo(w); werr != nil {
			return fmt.Errorf("writing output: %w", werr)
		}
	}
	if err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d files failed", n, len(files))
	}
	return nil
}

func scanFile(logger *slog.Logger, w io.Writer, name string, opts htmlscan.Options, scan scanFunc) error {
	src, err := source.Open(name)
	if err != nil {
		return err
	}
	defer src.Close()

	h := handler.NewHandler(src.Bytes(), name)
	opts.Handler = h
	z := htmlscan.AcquireScanner(src.Bytes(), opts)
	defer htmlscan.ReleaseScanner(z)

	if err := scan(w, src, z, h); err != nil {
		return err
	}
	reportDiagnostics(logger, h)
	return nil
}

func reportDiagnostics(logger *slog.Logger, h *handler.Handler) {
	for _, msg := range h.Diagnostics() {
		attrs := []any{"code", msg.Code}
		if l := msg.Location; l != nil {
			attrs = append(attrs, "file", l.File, "line", l.Line, "column", l.Column)
		}
		switch loc.DiagnosticSeverity(msg.Severity) {
		case loc.ErrorType:
			logger.Error(msg.Text, attrs...)
		case loc.WarningType:
			logger.Warn(msg.Text, attrs...)
		default:
			logger.Debug(msg.Text, attrs...)
		}
	}
}
