package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/ideocoverage/internal/coverage"
	"github.com/inodb/ideocoverage/internal/duckdb"
	"github.com/inodb/ideocoverage/internal/genome"
	"github.com/inodb/ideocoverage/internal/ideogram"
	"github.com/inodb/ideocoverage/internal/output"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		in      ideogram.Inputs
		outFile string
		dbPath  string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Tabulate centromere and telomere coverage",
		Long: `Runs the same classification as the ideogram without drawing and writes one
tab-delimited row per centromere and telomere. A covered/total summary is
printed to stderr. With --db the rows are also stored in a DuckDB database.`,
		Example: `  ideocoverage report --fasta hg38.fa --bed targets.bed --cytoband cytoBand.txt
  ideocoverage report --fasta hg38.fa --bed targets.bed --cytoband cytoBand.txt --db coverage.duckdb`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "fasta", "bed", "cytoband"); err != nil {
				return err
			}
			return runReport(cmd, a, in, outFile, dbPath)
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&dbPath, "db", "", "DuckDB database to store the results in")

	return cmd
}

func runReport(cmd *cobra.Command, a *app, in ideogram.Inputs, outFile, dbPath string) error {
	g, err := loadGenome(a, in)
	if err != nil {
		return err
	}

	var summary output.Summary
	if outFile == "" {
		if summary, err = writeReport(cmd.OutOrStdout(), g); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	} else {
		f, err := os.Create(outFile)
		if err != nil {
			return &genome.IOError{Op: "create", Path: outFile, Err: err}
		}
		summary, err = writeReport(f, g)
		if err != nil {
			f.Close()
			return &genome.IOError{Op: "write", Path: outFile, Err: err}
		}
		if err := f.Close(); err != nil {
			return &genome.IOError{Op: "close", Path: outFile, Err: err}
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Summary: %s\n", summary)

	if dbPath != "" {
		if err := storeReport(a, g, in, dbPath); err != nil {
			return err
		}
	}
	return nil
}

func writeReport(w io.Writer, g *ideogram.Genome) (output.Summary, error) {
	tw := output.NewTabWriter(w)
	if err := tw.WriteHeader(); err != nil {
		return output.Summary{}, err
	}
	for i := range g.Chromosomes {
		if err := tw.Write(&g.Chromosomes[i]); err != nil {
			return output.Summary{}, fmt.Errorf("%s: %w", g.Chromosomes[i].Name, err)
		}
	}
	return tw.Summary(), tw.Flush()
}

func storeReport(a *app, g *ideogram.Genome, in ideogram.Inputs, dbPath string) error {
	store, err := duckdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	rows := duckdb.RegionRows(g)
	if err := store.WriteRegionStatus(rows); err != nil {
		return fmt.Errorf("storing region status: %w", err)
	}

	files := make(map[string]duckdb.FileFingerprint, 3)
	for role, path := range map[string]string{"fasta": in.FASTA, "bed": in.BED, "cytoband": in.Cytoband} {
		fp, err := duckdb.StatFile(path)
		if err != nil {
			return &genome.IOError{Op: "stat", Path: path, Err: err}
		}
		files[role] = fp
	}
	if err := store.WriteInputFiles(files); err != nil {
		return fmt.Errorf("storing input fingerprints: %w", err)
	}

	counts, err := store.CountByStatus()
	if err != nil {
		return fmt.Errorf("counting stored regions: %w", err)
	}
	a.logger.Info("stored report",
		zap.String("db", dbPath),
		zap.Int("regions", len(rows)),
		zap.Int("covered", counts[coverage.Covered.String()]),
		zap.Int("uncovered", counts[coverage.Uncovered.String()]))
	return nil
}
