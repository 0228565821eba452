package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/erjac77/f5-reconciler/internal/core/domain"
	"github.com/erjac77/f5-reconciler/internal/core/ports"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `mapstructure:"no_color" yaml:"no_color"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func isTerminal(f *os.File) bool {
	stat, _ := f.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Report(ctx context.Context, results []domain.ReconcileResult) error {
	if len(results) == 0 {
		fmt.Fprintln(r.writer, "No resources processed.")
		return nil
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Kind != results[j].Kind {
			return results[i].Kind < results[j].Kind
		}
		return results[i].Identity.FullPath() < results[j].Identity.FullPath()
	})

	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	title := "Reconciliation Report"
	if anyDryRun(results) {
		title = "Reconciliation Report (dry run)"
	}
	fmt.Fprintln(tw, title)
	fmt.Fprintln(tw, strings.Repeat("=", len(title)))
	fmt.Fprintln(tw, "Status\tKind\tResource\tDetails")
	fmt.Fprintln(tw, "------\t----\t--------\t-------")

	changedCount := 0
	okCount := 0
	errorCount := 0

	for _, res := range results {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		identifier := res.Identity.FullPath()
		if res.Singleton {
			identifier = "(singleton)"
		}

		statusStr := ""
		details := ""

		switch {
		case res.Error != nil:
			errorCount++
			statusStr = red("[ERROR]")
			details = fmt.Sprintf("Reconciliation failed: %v", res.Error)
		case res.Changed:
			changedCount++
			statusStr = yellow("[CHANGED]")
			details = r.formatChange(res)
		default:
			okCount++
			statusStr = green("[OK]")
			details = "Already in desired state."
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", statusStr, res.Kind, identifier, details)
	}

	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "-------")
	fmt.Fprintf(tw, "Total Resources Processed:\t%d\n", len(results))
	fmt.Fprintf(tw, "Unchanged:\t%s\n", green(okCount))
	fmt.Fprintf(tw, "Changed:\t%s\n", yellow(changedCount))
	fmt.Fprintf(tw, "Errors:\t%s\n", red(errorCount))

	return nil
}

func (r *Reporter) formatChange(res domain.ReconcileResult) string {
	verb := map[domain.ReconcileAction]string{
		domain.ActionCreate: "Create",
		domain.ActionUpdate: "Update",
		domain.ActionDelete: "Delete",
	}[res.Action]
	if verb == "" {
		verb = "Change"
	}
	if res.DryRun {
		verb = "Would " + strings.ToLower(verb)
	}

	if res.Action == domain.ActionDelete || res.ChangeSet.IsEmpty() {
		return verb + "."
	}

	var builder strings.Builder
	fields := res.ChangeSet.FieldNames()
	builder.WriteString(fmt.Sprintf("%s %d fields: ", verb, len(fields)))
	for i, name := range fields {
		if i > 0 {
			builder.WriteString("; ")
		}
		builder.WriteString(fmt.Sprintf("%s=%s", name, r.formatValue(res.ChangeSet[name])))
	}
	return builder.String()
}

func (r *Reporter) formatValue(value any) string {
	const maxLen = 100
	str := fmt.Sprintf("%v", value)
	if len(str) > maxLen {
		return str[:maxLen-3] + "..."
	}
	return str
}

func anyDryRun(results []domain.ReconcileResult) bool {
	for _, res := range results {
		if res.DryRun {
			return true
		}
	}
	return false
}
