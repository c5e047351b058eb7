// Package main provides the ideocoverage command-line tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/ideocoverage/internal/genome"
	"github.com/inodb/ideocoverage/internal/ideogram"
	"github.com/inodb/ideocoverage/internal/render"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const configName = ".ideocoverage.yaml"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app holds the state shared by all commands of one invocation.
type app struct {
	cfgFile string
	verbose bool
	logger  *zap.Logger
}

// usageError marks command-line misuse, reported with exit code 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{logger: zap.NewNop()}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteC()
	defer a.logger.Sync()
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintf(stderr, "Error: %s\n", err)
	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, cmd.UsageString())
		return ExitUsage
	}
	return ExitError
}

func newRootCmd(a *app) *cobra.Command {
	var in ideogram.Inputs
	var output string

	cmd := &cobra.Command{
		Use:   "ideocoverage",
		Short: "Draw a chromosome ideogram with centromere and telomere coverage",
		Long: `Draws every chromosome of the reference as a horizontal bar with its
centromere and telomeres highlighted by whether any BED interval overlaps them.
The image format follows the output extension: svg, pdf, eps, png, jpg or tiff.`,
		Example: `  ideocoverage --fasta hg38.fa --bed targets.bed --cytoband cytoBand.txt --output coverage.svg
  ideocoverage report --fasta hg38.fa --bed targets.bed --cytoband cytoBand.txt -o coverage.tsv`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(a.cfgFile, createsConfig(cmd)); err != nil {
				return err
			}
			a.logger = newLogger(cmd.ErrOrStderr(), a.verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(cmd, "fasta", "bed", "cytoband", "output"); err != nil {
				return err
			}
			return runRender(a, in, output)
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config file (default: ~/"+configName+")")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	addInputFlags(cmd, &in)
	cmd.Flags().StringVar(&output, "output", "", "Output image (.svg, .pdf, .eps, .png, .jpg, .tiff)")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	cmd.AddCommand(newReportCmd(a))
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func addInputFlags(cmd *cobra.Command, in *ideogram.Inputs) {
	cmd.Flags().StringVar(&in.FASTA, "fasta", "", "Reference FASTA (a sibling .fai index is used when present)")
	cmd.Flags().StringVar(&in.BED, "bed", "", "BED file of covered intervals")
	cmd.Flags().StringVar(&in.Cytoband, "cytoband", "", "UCSC cytoband table")
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &usageError{msg: fmt.Sprintf("unexpected argument %q", args[0])}
	}
	return nil
}

func requireFlags(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if !cmd.Flags().Changed(name) || cmd.Flags().Lookup(name).Value.String() == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return &usageError{msg: fmt.Sprintf("required flag(s) %v not set", missing)}
	}
	return nil
}

func runRender(a *app, in ideogram.Inputs, output string) error {
	if _, err := render.Format(output); err != nil {
		return err
	}

	g, err := loadGenome(a, in)
	if err != nil {
		return err
	}

	fig := render.NewFigure(g, styleFromConfig())
	if err := render.Save(fig, output); err != nil {
		return err
	}
	a.logger.Info("wrote ideogram",
		zap.String("path", output),
		zap.Int("chromosomes", len(g.Chromosomes)))
	return nil
}

func loadGenome(a *app, in ideogram.Inputs) (*ideogram.Genome, error) {
	b := ideogram.NewBuilder()
	b.SetLogger(a.logger)
	b.SetTelomereWindow(viper.GetInt64("classify.telomere_window"))
	return b.Load(in)
}

// initConfig registers defaults and reads the config file. The default
// ~/.ideocoverage.yaml may be absent; a file named with --config must exist
// unless the command is about to create it.
func initConfig(cfgFile string, creating bool) error {
	viper.Reset()
	setDefaults()

	explicit := cfgFile != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		cfgFile = filepath.Join(home, configName)
	}
	viper.SetConfigFile(cfgFile)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if missing && (!explicit || creating) {
			return nil
		}
		if missing {
			return &genome.IOError{Op: "read config", Path: cfgFile, Err: fs.ErrNotExist}
		}
		return fmt.Errorf("reading config %s: %w", cfgFile, err)
	}
	return nil
}

// createsConfig reports whether cmd is "config set", which writes the file.
func createsConfig(cmd *cobra.Command) bool {
	return cmd.Name() == "set" && cmd.HasParent() && cmd.Parent().Name() == "config"
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}
