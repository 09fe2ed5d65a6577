package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/aiworkbench/internal/buildinfo"
	"github.com/dmitrijs2005/aiworkbench/internal/client/config"
	"github.com/dmitrijs2005/aiworkbench/internal/client/web"
	"github.com/dmitrijs2005/aiworkbench/internal/logging"
	"github.com/spf13/cobra"
)

// newApp is swapped in tests.
var newApp = NewApp

// NewRootCmd builds the workbench command tree reading from in and writing to out.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "workbench",
		Short:         "AI operations workbench client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetIn(in)
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newLoginCmd(in, out),
		newLogoutCmd(in, out),
		newWhoAmICmd(in, out),
		newShellCmd(in, out),
		newServeCmd(in, out),
		newVersionCmd(out),
	)
	return rootCmd
}

// withApp loads configuration, starts an App and runs fn with it.
func withApp(cmd *cobra.Command, in io.Reader, out io.Writer, fn func(ctx context.Context, a *App) error, opts ...AppOption) error {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat).With("app", "workbench")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg, logger, in, out, opts...)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Start(ctx); err != nil {
		return err
	}
	return fn(ctx, a)
}

func newLoginCmd(in io.Reader, out io.Writer) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, in, out, func(ctx context.Context, a *App) error {
				return a.Login(ctx, username, []byte(password))
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted when empty)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when empty)")
	return cmd
}

func newLogoutCmd(in io.Reader, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, in, out, func(ctx context.Context, a *App) error {
				return a.Logout(ctx)
			})
		},
	}
}

func newWhoAmICmd(in io.Reader, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, in, out, func(ctx context.Context, a *App) error {
				return a.WhoAmI(ctx)
			})
		},
	}
}

func newShellCmd(in io.Reader, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive workbench shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, in, out, func(ctx context.Context, a *App) error {
				printBanner(out)
				a.Shell(ctx)
				return nil
			})
		},
	}
}

func newServeCmd(in io.Reader, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web shell on the listen address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, in, out, func(ctx context.Context, a *App) error {
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()

				printBanner(out)
				a.checkProvider(ctx)

				shell := web.NewShell(a.ctrl, a.notices, a.guard, a.logger)
				fmt.Fprintf(out, "Web shell listening on http://%s\n", a.config.ListenAddr)
				return shell.Run(ctx, a.config.ListenAddr)
			}, WithWebNotices())
		},
	}
}

func newVersionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(out)
		},
	}
}

// Execute runs the root command against the process's stdio and exits
// non-zero on failure.
func Execute() {
	if err := NewRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		if !errors.Is(err, errNotSignedIn) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
