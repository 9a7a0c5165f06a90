// Package commands adds estimator subcommands to the PocketBase CLI.
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"costestimator/services"
)

// ExportOptions selects the projects and the output of ExportProjects.
type ExportOptions struct {
	ProjectIDs []string
	Format     string // "xlsx" or "pdf"
	OutDir     string
	// Concurrency caps the number of estimates rendered at once. Zero means
	// one per CPU.
	Concurrency int
}

// pathSeparators keeps project names from escaping the output directory.
var pathSeparators = strings.NewReplacer("/", "_", "\\", "_")

type exportJob struct {
	project *core.Record
	path    string
}

func renderer(format string) (func(services.EstimateData, services.ExportConfig) ([]byte, error), error) {
	switch format {
	case "xlsx":
		return services.GenerateExcel, nil
	case "pdf":
		return services.GeneratePDF, nil
	}
	return nil, fmt.Errorf("unsupported format %q: must be xlsx or pdf", format)
}

// ExportProjects renders each project's estimate into OutDir and returns the
// written file paths in the order the projects were given. Projects are
// rendered concurrently; the first failure cancels the rest.
func ExportProjects(ctx context.Context, app core.App, opts ExportOptions) ([]string, error) {
	render, err := renderer(opts.Format)
	if err != nil {
		return nil, err
	}
	if len(opts.ProjectIDs) == 0 {
		return nil, fmt.Errorf("at least one project is required")
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	// Resolve names up front so two projects never write the same file.
	jobs := make([]exportJob, 0, len(opts.ProjectIDs))
	used := make(map[string]bool, len(opts.ProjectIDs))
	for _, id := range opts.ProjectIDs {
		project, err := app.FindRecordById("projects", id)
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", id, services.ErrProjectNotFound)
		}
		// Compare sanitised names: "a/b" and "a_b" land on the same file.
		name := pathSeparators.Replace(services.ExportFilename(project.GetString("project_name"), "", opts.Format))
		if used[name] {
			name = pathSeparators.Replace(services.ExportFilename(project.GetString("project_name")+" "+id, "", opts.Format))
		}
		used[name] = true
		jobs = append(jobs, exportJob{
			project: project,
			path:    filepath.Join(opts.OutDir, name),
		})
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := services.EstimateFromRecord(app, job.project)
			if err != nil {
				return fmt.Errorf("project %s: %w", job.project.Id, err)
			}
			body, err := render(data, services.ExportConfig{})
			if err != nil {
				return fmt.Errorf("project %s: render: %w", job.project.Id, err)
			}
			if err := os.WriteFile(job.path, body, 0o644); err != nil {
				return fmt.Errorf("project %s: %w", job.project.Id, err)
			}
			log.Printf("export: wrote %s (%d items)", job.path, data.ItemCount)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, len(jobs))
	for i, job := range jobs {
		paths[i] = job.path
	}
	return paths, nil
}

// NewExportCommand returns the "export" subcommand.
func NewExportCommand(app core.App) *cobra.Command {
	opts := ExportOptions{}

	cmd := &cobra.Command{
		Use:          "export",
		Short:        "Writes project estimates as Excel or PDF files",
		Example:      "  costestimator export --project abc123 --project def456 --format pdf --out ./estimates",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := ExportProjects(cmd.Context(), app, opts)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&opts.ProjectIDs, "project", nil, "project id to export (repeatable)")
	cmd.Flags().StringVar(&opts.Format, "format", "xlsx", "output format: xlsx or pdf")
	cmd.Flags().StringVar(&opts.OutDir, "out", ".", "output directory")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "max estimates rendered at once (0 = one per CPU)")
	cmd.MarkFlagRequired("project")

	return cmd
}
