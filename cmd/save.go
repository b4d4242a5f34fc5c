package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"experience-manager/core/config"
	"experience-manager/core/logger"
	"experience-manager/core/reconcile"
	"experience-manager/core/sectionapi"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags shared by the plan and save commands
	experienceID string
	desiredFile  string
	dryRunSave   bool
	yesConfirm   bool
)

// planCmd prints what a save of a section would send upstream.
var planCmd = &cobra.Command{
	Use:   "plan <section>",
	Short: "Show the operations a save would send upstream",
	Long: `Loads the last-saved snapshot of a section, applies the desired items from --file
(if given) to the working copy and prints the create, update and delete operations.

Sections: options, allotments, pricing, configuration.

Examples:
  # Diff a desired document against the remote state
  plan options --experience exp-1 --file options.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

// saveCmd reconciles a section with a desired document.
var saveCmd = &cobra.Command{
	Use:   "save <section>",
	Short: "Reconcile a section with a desired document",
	Long: `Replaces the working copy of a section with the items of --file and saves it.

The document has the shape {"items": [...]}. Items whose id is omitted are created;
items missing from the document are deleted upstream.

Examples:
  # Plan only
  save options --experience exp-1 --file options.json --dry-run

  # Save with interactive confirmation of deletions
  save options --experience exp-1 --file options.json

  # Save with auto-confirm (non-interactive)
  save pricing --experience exp-1 --file prices.json --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func init() {
	for _, c := range []*cobra.Command{planCmd, saveCmd} {
		c.Flags().StringVarP(&experienceID, "experience", "e", "", "Experience ID (required)")
		c.Flags().StringVarP(&desiredFile, "file", "f", "", "Desired {\"items\": [...]} document")
		_ = c.MarkFlagRequired("experience")
		RootCmd.AddCommand(c)
	}
	_ = saveCmd.MarkFlagRequired("file")
	saveCmd.Flags().BoolVar(&dryRunSave, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	saveCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm deletions (non-interactive)")
}

// prepareSection loads config, wires the services and prepares the named section.
func prepareSection(ctx context.Context, name string) (*zap.Logger, *services, sectionapi.Prepared, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	svc, err := buildServices(ctx, cfg, l)
	if err != nil {
		return nil, nil, nil, err
	}
	h, err := svc.headless(name)
	if err != nil {
		svc.Close()
		return nil, nil, nil, err
	}

	var body []byte
	if desiredFile != "" {
		if body, err = os.ReadFile(desiredFile); err != nil {
			svc.Close()
			return nil, nil, nil, fmt.Errorf("failed to read %s: %w", desiredFile, err)
		}
	}

	l.Info("Loading section", zap.String("section", name), zap.String("experience_id", experienceID))
	p, err := h.Prepare(ctx, experienceID, body)
	if err != nil {
		svc.Close()
		return nil, nil, nil, err
	}
	return l, svc, p, nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	l, svc, p, err := prepareSection(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer svc.Close()

	printPlanSummary(l, args[0], p.Summary())
	out, err := json.MarshalIndent(p.Plan(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func runSave(cmd *cobra.Command, args []string) error {
	l, svc, p, err := prepareSection(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer svc.Close()

	summary := p.Summary()
	printPlanSummary(l, args[0], summary)

	if summary.New+summary.Edited+summary.Removed == 0 {
		l.Info("No changes to save.")
		return nil
	}
	if dryRunSave {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if summary.Removed > 0 && !confirmDestructiveAction(summary.Removed) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Saving section...")
	report, err := p.Save(cmd.Context())
	if report != nil {
		printSaveReport(l, report)
	}
	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	return nil
}

// printPlanSummary prints the plan counts using logger.
func printPlanSummary(l *zap.Logger, section string, s reconcile.PlanSummary) {
	l.Info("Save plan",
		zap.String("section", section),
		zap.Int("new", s.New),
		zap.Int("edited", s.Edited),
		zap.Int("removed", s.Removed),
		zap.Int("unchanged", s.Unchanged),
	)
}

// printSaveReport prints every operation outcome and the save result.
func printSaveReport(l *zap.Logger, report *reconcile.SaveReport) {
	for _, o := range report.Outcomes {
		fields := []zap.Field{
			zap.String("kind", string(o.Kind)),
			zap.String("id", o.ID.String()),
		}
		if o.RemoteID != "" {
			fields = append(fields, zap.String("remote_id", o.RemoteID))
		}
		if o.Succeeded {
			l.Info("Operation applied", fields...)
		} else {
			l.Error("Operation failed", append(fields, zap.String("error", o.Error))...)
		}
	}
	l.Info("Save report",
		zap.Bool("succeeded", report.Succeeded()),
		zap.Bool("partial", report.Partial()),
		zap.Int("operations", len(report.Outcomes)),
		zap.Duration("duration", report.Duration),
	)
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(deletions int) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  %d item(s) will be deleted upstream. Type 'yes' to confirm: ", deletions)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
