package json

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/erjac77/f5-reconciler/internal/core/domain"
	"github.com/erjac77/f5-reconciler/internal/core/ports"
	"github.com/erjac77/f5-reconciler/internal/normalize"
)

const ReporterTypeJSON = "json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

type jsonReport struct {
	Changed bool             `json:"changed"`
	Summary jsonSummary      `json:"summary"`
	Results []jsonResultItem `json:"results"`
}

type jsonSummary struct {
	TotalResourcesProcessed int `json:"total_resources_processed"`
	Unchanged               int `json:"unchanged"`
	Changed                 int `json:"changed"`
	Errors                  int `json:"errors"`
}

type jsonResultItem struct {
	Kind         domain.ResourceKind    `json:"kind"`
	Resource     string                 `json:"resource,omitempty"`
	Singleton    bool                   `json:"singleton,omitempty"`
	Action       domain.ReconcileAction `json:"action"`
	Changed      bool                   `json:"changed"`
	DryRun       bool                   `json:"dry_run,omitempty"`
	ChangeSet    map[string]any         `json:"change_set,omitempty"`
	ErrorMessage string                 `json:"error_message,omitempty"`
}

func (r *Reporter) Report(ctx context.Context, results []domain.ReconcileResult) error {
	report := jsonReport{
		Summary: jsonSummary{TotalResourcesProcessed: len(results)},
		Results: make([]jsonResultItem, 0, len(results)),
	}

	for _, res := range results {
		if ctx.Err() != nil {
			r.logger.Warnf(ctx, "JSON report generation cancelled.")
			return ctx.Err()
		}

		switch {
		case res.Error != nil:
			report.Summary.Errors++
		case res.Changed:
			report.Summary.Changed++
			report.Changed = true
		default:
			report.Summary.Unchanged++
		}

		item := jsonResultItem{
			Kind:      res.Kind,
			Singleton: res.Singleton,
			Action:    res.Action,
			Changed:   res.Changed,
			DryRun:    res.DryRun,
		}
		if !res.Singleton {
			item.Resource = res.Identity.FullPath()
		}
		if !res.ChangeSet.IsEmpty() {
			// Engine changesets use the remote naming; callers declared their
			// fields in snake_case, so report them back the same way.
			item.ChangeSet = normalize.ToCallerNaming(res.ChangeSet)
		}
		if res.Error != nil {
			item.ErrorMessage = res.Error.Error()
		}

		report.Results = append(report.Results, item)
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(report); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}

	r.logger.Debugf(ctx, "JSON report successfully generated.")
	return nil
}
