package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sysreport/sysreport/internal/config"
	"github.com/sysreport/sysreport/internal/export"
	"github.com/sysreport/sysreport/internal/hw"
	"github.com/sysreport/sysreport/internal/report"
	"github.com/sysreport/sysreport/internal/shell"
	"github.com/sysreport/sysreport/internal/theme"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg     *config.Config
	verbose bool
)

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "sysreport",
		Short:         "Show local hardware and OS facts and export them to TXT or PDF",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(viper.GetViper(), configFile)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := newShell(cmd, nil)
			if err != nil {
				return err
			}
			return sh.Run(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default is ./sysreport.yaml)")
	flags.String("theme", "auto", "color theme: auto, light or dark")
	flags.String("public-ip-url", hw.DefaultPublicIPURL, "IP echo service used for the public IP")
	flags.Duration("public-ip-timeout", hw.DefaultPublicIPTimeout, "timeout for the public IP lookup")
	flags.String("logo", "logo_pdf.png", "logo image drawn in PDF reports when present")
	flags.Bool("no-color", false, "disable colored output")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log collector failures to stderr")
	viper.BindPFlag(config.KeyTheme, flags.Lookup("theme"))
	viper.BindPFlag(config.KeyPublicIPURL, flags.Lookup("public-ip-url"))
	viper.BindPFlag(config.KeyPublicIPTimeout, flags.Lookup("public-ip-timeout"))
	viper.BindPFlag(config.KeyLogoPath, flags.Lookup("logo"))
	viper.BindPFlag(config.KeyNoColor, flags.Lookup("no-color"))

	rootCmd.AddCommand(buildShowCommand())
	rootCmd.AddCommand(buildExportCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the system information panel once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := newShell(cmd, nil)
			if err != nil {
				return err
			}
			return sh.Render()
		},
	}
}

func buildExportCommand() *cobra.Command {
	var output string
	var yes bool

	cmd := &cobra.Command{
		Use:       "export [txt|pdf]",
		Short:     "Export the system information to a TXT or PDF file",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"txt", "pdf"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(args[0])
			if err != nil {
				return err
			}

			var prompter export.Prompter
			if output != "" || yes {
				prompter = fixedPrompter(output)
			}
			sh, err := newShell(cmd, prompter)
			if err != nil {
				return err
			}

			_, err = sh.Export(cmd.Context(), format)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file (prompts when empty)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept the suggested file name without prompting")

	return cmd
}

// fixedPrompter answers every prompt with its path, or with the
// suggestion when empty.
type fixedPrompter string

func (p fixedPrompter) SavePath(ctx context.Context, suggested string) (string, bool, error) {
	if p == "" {
		return suggested, true, nil
	}
	return string(p), true, nil
}

// newShell collects every section and wraps them in a terminal shell.
func newShell(cmd *cobra.Command, prompter export.Prompter) (*shell.Shell, error) {
	mode, err := theme.ParseMode(cfg.Theme, theme.HostDefault())
	if err != nil {
		return nil, err
	}
	th := theme.New(mode, theme.Icons{Light: cfg.IconLight, Dark: cfg.IconDark})

	logger := log.New(io.Discard, "", 0)
	if verbose {
		logger = log.New(cmd.ErrOrStderr(), "sysreport: ", log.LstdFlags)
	}
	collector := hw.NewCollector(hw.Options{
		PublicIPURL:     cfg.PublicIPURL,
		PublicIPTimeout: cfg.PublicIPTimeout,
		Logger:          logger,
	})
	sections := report.Collect(cmd.Context(), report.Catalog(collector), logger)

	out := cmd.OutOrStdout()
	opts := shell.RenderOptions{Width: shell.DefaultWidth}
	if f, ok := out.(*os.File); ok && !cfg.NoColor {
		opts.Color = shell.ColorFor(f)
	}

	exp := export.Exporter{Prompter: prompter, LogoPath: cfg.LogoPath}
	return shell.New(sections, th, exp, cmd.InOrStdin(), out, opts), nil
}
