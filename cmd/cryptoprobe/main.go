package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cryptoprobe/internal/report"
	"cryptoprobe/pkg/logx"
)

var (
	flagTargets  string
	flagOut      string
	flagHTML     string
	flagPDF      string
	flagTimeout  time.Duration
	flagLogLevel string
	flagDryRun   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cryptoprobe",
		Short:         "Run classic cryptanalytic attacks against oracles and ciphertexts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.SetLevel(flagLogLevel)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flagTargets, "targets", env("CPROBE_TARGETS", ""), "CSV of oracle targets: ecb, aead or http(s) URLs")
	pf.StringVar(&flagOut, "out", env("CPROBE_OUT", "report.json"), "JSON report output path")
	pf.StringVar(&flagHTML, "html", env("CPROBE_HTML", ""), "HTML report output path")
	pf.StringVar(&flagPDF, "pdf", env("CPROBE_PDF", ""), "PDF report output path")
	pf.DurationVar(&flagTimeout, "timeout", envDuration("CPROBE_TIMEOUT", time.Minute), "Global timeout")
	pf.StringVar(&flagLogLevel, "log-level", env("CPROBE_LOG_LEVEL", "info"), "log level: trace,debug,info,warn,error")
	pf.BoolVar(&flagDryRun, "dry-run", false, "Build oracles but do not query them")

	root.AddCommand(cmdProbe())
	root.AddCommand(cmdServe())
	root.AddCommand(cmdDecrypt())
	root.AddCommand(cmdReport())
	return root
}

func cmdReport() *cobra.Command {
	var in []string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Convert/merge JSON to HTML/PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(in) == 0 {
				return exitCodeErr(3, fmt.Errorf("provide at least one JSON via --in"))
			}
			merged, err := report.MergeJSONFiles(in)
			if err != nil {
				return exitCodeErr(3, err)
			}
			return writeReports(merged)
		},
	}
	cmd.Flags().StringSliceVar(&in, "in", nil, "input JSONs to merge")
	return cmd
}

func writeReports(res *report.Results) error {
	logx.Infof("results: %s", logx.SprintKV(summary(res)))
	if flagOut != "" {
		if err := report.WriteJSONToFile(res, flagOut); err != nil {
			return err
		}
		logx.Infof("wrote JSON report: %s", flagOut)
	}
	if flagHTML != "" {
		if err := report.WriteHTMLToFile(res, flagHTML); err != nil {
			return err
		}
		logx.Infof("wrote HTML report: %s", flagHTML)
	}
	if flagPDF != "" {
		if err := report.RenderPDFToFile(res, flagPDF); err != nil {
			logx.Warnf("PDF generation failed, wrote HTML if provided: %v", err)
			return nil
		}
		logx.Infof("wrote PDF report: %s", flagPDF)
	}
	if res.HasFindings() {
		return exitCodeErr(2, fmt.Errorf("findings present"))
	}
	return nil
}

// summary counts findings per status for the log line written with each report.
func summary(res *report.Results) map[string]any {
	kv := map[string]any{"target_type": res.TargetType, "findings": len(res.Findings)}
	for _, f := range res.Findings {
		k := strings.ToLower(string(f.Status))
		n, _ := kv[k].(int)
		kv[k] = n + 1
	}
	return kv
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func envDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string { return e.err.Error() }
func (e exitError) Unwrap() error { return e.err }

func exitCodeErr(code int, err error) error { return exitError{code: code, err: err} }

// exitCode is the process exit code err maps to.
func exitCode(err error) int {
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if err != nil {
		return 3
	}
	return 0
}

func init() { cobra.MousetrapHelpText = "" }
