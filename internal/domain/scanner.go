package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"schemalens.dev/pkg/schemalens/internal/adapter"
	m "schemalens.dev/pkg/schemalens/internal/model"
	pkg "schemalens.dev/pkg/schemalens/pkg"
)

// ScanArgs configures one registry scan.
type ScanArgs struct {
	Paths   []m.Path
	Exclude []string
	Threads int
}

// Scanner collects registry files and analyzes every signature in them.
type Scanner interface {
	// Scan spills one Report per operator. The caller owns the returned
	// spill and must Close it.
	Scan(ctx context.Context, args ScanArgs) (pkg.FileSpill[m.Report], error)
}

type scanner struct {
	fsAdapter adapter.RegistryFSAdapter
}

// NewScanner constructs a Scanner backed by the provided filesystem adapter.
func NewScanner(fsAdapter adapter.RegistryFSAdapter) Scanner {
	return &scanner{fsAdapter: fsAdapter}
}

// Scan implements Scanner. Files are analyzed in parallel; each file's
// reports are appended contiguously.
func (s *scanner) Scan(ctx context.Context, args ScanArgs) (pkg.FileSpill[m.Report], error) {
	files, err := s.fsAdapter.Collect(args.Paths, args.Exclude)
	if err != nil {
		return nil, fmt.Errorf("collect registries: %w", err)
	}

	slog.Info("scanning registries", "files", len(files), "threads", args.Threads)

	spill, err := pkg.NewFileSpill[m.Report]()
	if err != nil {
		return nil, err
	}

	threads := args.Threads
	if threads < 1 {
		threads = 1
	}

	var appendMu sync.Mutex

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for _, file := range files {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			reports, err := s.scanFile(file)
			if err != nil {
				return err
			}

			appendMu.Lock()
			defer appendMu.Unlock()

			for _, report := range reports {
				if err := spill.Append(report); err != nil {
					return err
				}
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		if closeErr := spill.Close(); closeErr != nil {
			slog.Warn("failed to close report spill", "error", closeErr)
		}

		return nil, err
	}

	return spill, nil
}

func (s *scanner) scanFile(file m.Path) ([]m.Report, error) {
	data, err := s.fsAdapter.ReadFile(file)
	if err != nil {
		return nil, err
	}

	registry, err := adapter.DecodeRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	reports := make([]m.Report, 0, len(registry.Operators))

	for _, entry := range registry.Operators {
		report := Describe(entry.Signature, file)
		if report.Failed() {
			slog.Warn("signature failed to parse", "file", file, "signature", entry.Signature)
		}

		reports = append(reports, report)
	}

	return reports, nil
}
