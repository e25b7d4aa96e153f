// Package main provides the CLI entry point for xlsxlate.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate"
	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/config"
	"github.com/xlsxlate/xlsxlate/pkg/xlsxlate/models"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "xlsxlate",
		Short: "Translate Excel workbooks with an LLM",
		Long: `xlsxlate translates the text of .xlsx workbooks between languages while
keeping sheets, formulas, rich-text styling and layout intact.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newTranslateCmd(), newScanCmd(), newLanguagesCmd())

	if err := rootCmd.Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

func newTranslateCmd() *cobra.Command {
	var (
		outputPath string
		from       string
		to         string
		rtl        bool
		configPath string
		apiKey     string
		model      string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "translate [input.xlsx]",
		Short: "Translate every sheet of a workbook",
		Long: `Translate every text cell of a workbook from one language to another.

Formulas, numbers, dates and code-like values (order numbers, SKUs,
abbreviations) are left as they are. Rich-text cells keep their run styling.

Right-to-left layout defaults on for Arabic targets; pass --rtl=false to keep
the original layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]

			source, err := models.ParseLanguage(from)
			if err != nil {
				return err
			}
			target, err := models.ParseLanguage(to)
			if err != nil {
				return err
			}

			opts := xlsxlate.DefaultOptions(source, target)
			if cmd.Flags().Changed("rtl") {
				opts.ForceRTL = rtl
			}
			opts.Verbose = verbose
			if err := opts.Validate(); err != nil {
				return err
			}

			if _, err := os.Stat(inputPath); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", inputPath)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if model != "" {
				cfg.Model = model
			}
			key, err := cfg.ResolveAPIKey(apiKey)
			if err != nil {
				return err
			}

			scan, err := xlsxlate.ScanFile(inputPath)
			if err != nil {
				return err
			}
			logInfo("Translating %s from %s to %s (%d sheets, ~%d fragments)",
				scan.BookName, source, target, len(scan.Sheets), scan.Eligible())

			bar := progressbar.NewOptions(len(scan.Sheets),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan]sheets[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
			)
			opts.OnProgress = func(p models.SheetProgress) {
				bar.Describe(fmt.Sprintf("[cyan]%s[reset]", p.Name))
				if err := bar.Set(p.Index); err != nil {
					logWarning("progress display: %v", err)
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gw := cfg.NewGateway(key, verbose)
			written, report, err := xlsxlate.TranslateFile(ctx, inputPath, outputPath, gw, opts)
			bar.Finish()
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return fmt.Errorf("translation failed: %w", err)
			}

			for _, s := range report.Sheets {
				logInfo("  %-20s %d sent, %d kept, %d formulas", s.Name, s.Sent, s.Skipped, s.Formulas)
			}
			logSuccess("All sheets translated: %s", written)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: <Target>_<input>)")
	cmd.Flags().StringVar(&from, "from", string(models.Chinese), "Source language")
	cmd.Flags().StringVar(&to, "to", string(models.English), "Target language")
	cmd.Flags().BoolVar(&rtl, "rtl", false, "Force right-to-left sheet layout (default: on for Arabic)")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file (default: ./"+config.FileName+")")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (overrides environment and config)")
	cmd.Flags().StringVar(&model, "model", "", "Model identifier (overrides config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every rewritten cell and failed call")

	return cmd
}

func newScanCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "scan [input.xlsx]",
		Short: "Report what a translation would send",
		Long: `Count, per sheet, the text fragments a translation would send, the values
that would be kept, formulas and merged regions. No API key is needed and the
workbook is not modified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			if _, err := os.Stat(inputPath); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", inputPath)
			}

			report, err := xlsxlate.ScanFile(inputPath)
			if err != nil {
				return err
			}
			if len(report.Sheets) == 0 {
				logWarning("%s has no sheets", report.BookName)
			}

			var data []byte
			if pretty {
				data, err = json.MarshalIndent(report, "", "  ")
			} else {
				data, err = json.Marshal(report)
			}
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, l := range models.Languages() {
				line := fmt.Sprintf("%-10s %s", l, l.Label())
				if models.DefaultRTL(l) {
					line += "  (rtl)"
				}
				fmt.Println(strings.TrimRight(line, " "))
			}
		},
	}
}
