package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/njchilds90/symeq/cas"
	"github.com/njchilds90/symeq/internal/server"
)

func newGradeCommand(a *app) *cobra.Command {
	var (
		flags            requestFlags
		response, answer string
	)
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade a response against an answer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := flags.params(cmd)
			if err != nil {
				return err
			}
			result, err := a.grader.Evaluate(response, answer, p)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&response, "response", "", "response to grade")
	cmd.Flags().StringVar(&answer, "answer", "", "expected answer")
	_ = cmd.MarkFlagRequired("response")
	_ = cmd.MarkFlagRequired("answer")
	flags.register(cmd)
	return cmd
}

func newPreviewCommand(a *app) *cobra.Command {
	var (
		flags    requestFlags
		response string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a response as LaTeX and plain text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := flags.params(cmd)
			if err != nil {
				return err
			}
			result, err := a.grader.Preview(response, p)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&response, "response", "", "response to render")
	flags.register(cmd)
	return cmd
}

func newParseCommand() *cobra.Command {
	var asJSON, implicit bool
	cmd := &cobra.Command{
		Use:   "parse EXPR",
		Short: "Print the canonical form of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cas.DefaultParseConfig()
			cfg.Transformations |= cas.ConvertEquals
			if implicit {
				cfg.Transformations |= cas.ImplicitMultiplication
			}
			e, err := cas.Parse(args[0], cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				tree, err := cas.ToJSON(e)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, tree)
				return err
			}
			_, err = fmt.Fprintf(out, "string: %s\nlatex:  %s\n", e, e.LaTeX())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the expression tree as JSON")
	cmd.Flags().BoolVar(&implicit, "implicit", false, "allow implicit multiplication")
	return cmd
}

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve grading over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(a.cfg.Server, a.grader, a.logger).Run(ctx)
		},
	}
	cmd.Flags().String("host", "", "listen host")
	cmd.Flags().Int("port", 0, "listen port")
	_ = a.v.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	_ = a.v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	return cmd
}
