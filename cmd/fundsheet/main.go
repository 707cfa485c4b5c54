// Command fundsheet is the CLI for the factsheet structuring pipeline:
// convert a factsheet PDF into structured JSON, render reports from it,
// and manage the local ingest registry.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/brunobiangulo/fundsheet"
	"github.com/brunobiangulo/fundsheet/document"
	"github.com/brunobiangulo/fundsheet/report"
)

var (
	flagConfig string

	flagOutput      string
	flagImages      string
	flagOCR         bool
	flagKeepOrphans bool
	flagForce       bool
	flagIngest      bool
)

var rootCmd = &cobra.Command{
	Use:   "fundsheet",
	Short: "fundsheet — structure mutual-fund factsheet PDFs",
	Long: `fundsheet ingests a mutual-fund factsheet PDF and produces a structured
JSON record: sectioned prose, classified tables, document metadata and
extracted images. The JSON feeds the report and export commands.`,
}

var convertCmd = &cobra.Command{
	Use:   "convert <factsheet.pdf>",
	Short: "Convert a factsheet PDF to structured JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var reportCmd = &cobra.Command{
	Use:   "report <structured.json>",
	Short: "Render a PDF summary report from structured JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

var exportCmd = &cobra.Command{
	Use:   "export <structured.json>",
	Short: "Export structured JSON as an XLSX workbook",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested factsheets",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an ingested factsheet from the registry",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")

	convertCmd.Flags().StringVarP(&flagOutput, "output", "o", "output.json", "Path to output JSON file")
	convertCmd.Flags().StringVarP(&flagImages, "images", "i", "", "Directory for extracted images (overrides config)")
	convertCmd.Flags().BoolVar(&flagOCR, "ocr", false, "Run OCR on extracted images (needs an -tags ocr build)")
	convertCmd.Flags().BoolVar(&flagKeepOrphans, "keep-orphans", false, "Keep page text found before the first heading")
	convertCmd.Flags().BoolVar(&flagForce, "force", false, "Re-parse even when the file is unchanged")
	convertCmd.Flags().BoolVar(&flagIngest, "ingest", false, "Also persist the parse in the local registry")

	reportCmd.Flags().StringVarP(&flagOutput, "output", "o", "report.pdf", "Path to output PDF report")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "tables.xlsx", "Path to output XLSX workbook")

	rootCmd.AddCommand(convertCmd, reportCmd, exportCmd, listCmd, deleteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the engine configuration from --config or defaults.
func loadConfig() (fundsheet.Config, error) {
	if flagConfig != "" {
		return fundsheet.LoadConfig(flagConfig)
	}
	return fundsheet.DefaultConfig(), nil
}

func openEngine() (fundsheet.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if flagOCR {
		cfg.OCR = true
	}
	return fundsheet.New(cfg)
}

func runConvert(cmd *cobra.Command, args []string) error {
	eng, err := openEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	var opts []fundsheet.ParseOption
	if flagImages != "" {
		opts = append(opts, fundsheet.WithImagesDir(flagImages))
	}
	if flagKeepOrphans {
		opts = append(opts, fundsheet.WithOrphanText())
	}
	if flagForce {
		opts = append(opts, fundsheet.WithForceReparse())
	}

	ctx := context.Background()

	doc, err := eng.Parse(ctx, args[0], opts...)
	if err != nil {
		return err
	}

	out, err := os.Create(flagOutput)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()
	if err := doc.Encode(out); err != nil {
		return err
	}

	if flagIngest {
		id, err := eng.Ingest(ctx, args[0], opts...)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "ingested as document %d\n", id)
	}

	fmt.Fprintf(os.Stdout, "structured JSON written to %s (%d pages, %d tables)\n",
		flagOutput, len(doc.Pages), doc.TableCount())
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	doc, err := readStructured(args[0])
	if err != nil {
		return err
	}
	if err := report.WritePDF(doc, flagOutput); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "report written to %s\n", flagOutput)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, err := readStructured(args[0])
	if err != nil {
		return err
	}
	if err := report.WriteXLSX(doc, flagOutput); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "workbook written to %s\n", flagOutput)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	eng, err := openEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	docs, err := eng.ListDocuments(context.Background())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(os.Stdout, "no factsheets ingested")
		return nil
	}
	for _, d := range docs {
		name := d.FundName
		if name == "" || name == document.NotAvailable {
			name = d.Filename
		}
		fmt.Fprintf(os.Stdout, "%4d  %-40s  pages=%d tables=%d  %s\n",
			d.ID, name, d.PageCount, d.TableCount, d.Status)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document id %q", args[0])
	}

	eng, err := openEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.Delete(context.Background(), id); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "deleted document %d\n", id)
	return nil
}

func readStructured(path string) (*document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening structured JSON: %w", err)
	}
	defer f.Close()
	return document.Decode(f)
}
