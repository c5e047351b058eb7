package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/inodb/ideocoverage/internal/render"
)

// defaults lists every supported configuration key. Lengths are in points.
var defaults = map[string]any{
	"render.width":             800.0,
	"render.bar_height":        12.0,
	"render.coverage_height":   4.0,
	"render.row_gap":           10.0,
	"render.telomere_width":    3.0,
	"render.font_size":         9.0,
	"render.max_ticks":         25,
	"render.title":             render.DefaultTitle,
	"classify.telomere_window": 0,
}

func setDefaults() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

func styleFromConfig() render.Style {
	st := render.DefaultStyle()
	st.Width = vg.Points(viper.GetFloat64("render.width"))
	st.BarHeight = vg.Points(viper.GetFloat64("render.bar_height"))
	st.CoverageHeight = vg.Points(viper.GetFloat64("render.coverage_height"))
	st.RowGap = vg.Points(viper.GetFloat64("render.row_gap"))
	st.TelomereWidth = vg.Points(viper.GetFloat64("render.telomere_width"))
	st.FontSize = vg.Points(viper.GetFloat64("render.font_size"))
	st.MaxTicks = viper.GetInt("render.max_ticks")
	st.Title = viper.GetString("render.title")
	return st
}

func knownKeys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ideocoverage configuration",
		Long: "Show, get, or set configuration values. Config is stored in ~/" + configName + ".\n\nKeys:\n  " +
			strings.Join(knownKeys(), "\n  "),
		Example: `  ideocoverage config                               # show all config
  ideocoverage config set render.width 1200         # wider figure
  ideocoverage config set classify.telomere_window 10000
  ideocoverage config get render.title              # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd, args[0])
		},
	}
}

func runConfigShow(cmd *cobra.Command) error {
	out, err := yaml.Marshal(viper.AllSettings())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if f := viper.ConfigFileUsed(); f != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# Config file: %s\n", f)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	key = strings.ToLower(key)
	if _, ok := defaults[key]; !ok {
		return fmt.Errorf("unknown key %q (known: %s)", key, strings.Join(knownKeys(), ", "))
	}
	v, err := parseValue(key, value)
	if err != nil {
		return err
	}
	viper.Set(key, v)

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, configName)
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

// parseValue converts value to the type of the key's default.
func parseValue(key, value string) (any, error) {
	var (
		v   any = value
		err error
	)
	switch defaults[key].(type) {
	case float64:
		var f float64
		if f, err = strconv.ParseFloat(value, 64); err == nil && f <= 0 {
			err = errors.New("must be positive")
		}
		v = f
	case int:
		var n int
		if n, err = strconv.Atoi(value); err == nil && n < 0 {
			err = errors.New("must not be negative")
		}
		v = n
	}
	if err != nil {
		return nil, fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
	return v, nil
}

func runConfigGet(cmd *cobra.Command, key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}
