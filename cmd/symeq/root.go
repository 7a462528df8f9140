package main

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/njchilds90/symeq"
	"github.com/njchilds90/symeq/internal/config"
	"github.com/njchilds90/symeq/internal/logging"
)

// app is the state shared by all subcommands once flags are parsed.
type app struct {
	v       *viper.Viper
	cfgPath string
	cfg     *config.Config
	logger  *slog.Logger
	grader  *symeq.Grader
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:           "symeq",
		Short:         "Grade mathematical answers by symbolic equivalence",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "YAML config file")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = a.v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(
		newGradeCommand(a),
		newPreviewCommand(a),
		newParseCommand(),
		newServeCommand(a),
	)
	return root
}

func (a *app) init(logOut io.Writer) error {
	cfg, err := config.Load(a.v, a.cfgPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, logOut)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.grader = symeq.NewGrader(
		symeq.WithLogger(logger),
		symeq.WithDefaults(cfg.Parsing.Defaults()),
	)
	return nil
}

// requestFlags are the per-request parameters shared by grade and preview.
type requestFlags struct {
	latex       bool
	symbolsPath string
	atol, rtol  float64
	lenient     bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.latex, "latex", false, "response is LaTeX")
	cmd.Flags().StringVar(&f.symbolsPath, "symbols", "", "YAML symbol dictionary")
	cmd.Flags().Float64Var(&f.atol, "atol", 0, "absolute tolerance for decimals")
	cmd.Flags().Float64Var(&f.rtol, "rtol", 0, "relative tolerance for decimals")
	cmd.Flags().BoolVar(&f.lenient, "implicit", false, "allow implicit multiplication")
}

func (f *requestFlags) params(cmd *cobra.Command) (symeq.Params, error) {
	p := symeq.Params{IsLatex: f.latex}
	if f.symbolsPath != "" {
		symbols, err := symeq.LoadSymbols(f.symbolsPath)
		if err != nil {
			return p, err
		}
		p.Symbols = symbols
	}
	if cmd.Flags().Changed("atol") {
		p.Atol = &f.atol
	}
	if cmd.Flags().Changed("rtol") {
		p.Rtol = &f.rtol
	}
	if f.lenient {
		strict := false
		p.StrictSyntax = &strict
	}
	return p, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
