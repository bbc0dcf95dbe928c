// Package cmd implements the resortctl command tree.
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iliyamo/palm-beach-resort/internal/apiclient"
	"github.com/iliyamo/palm-beach-resort/internal/logging"
	"github.com/iliyamo/palm-beach-resort/internal/mockdata"
	"github.com/iliyamo/palm-beach-resort/internal/session"
)

// Config keys. Each is also a persistent flag and a RESORTCTL_* variable.
const (
	keyAPIURL       = "api-url"
	keyUsername     = "username"
	keyPassword     = "password"
	keySession      = "session"
	keyOutput       = "output"
	keyMockFallback = "mock-fallback"
	keyTimeout      = "timeout"
	keyVerbose      = "verbose"
)

// app carries what every subcommand needs.
type app struct {
	v       *viper.Viper
	cfgFile string
	version string
}

// Execute runs the CLI and exits non-zero on failure.
func Execute(version string) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := NewRootCmd(version).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree with its own viper instance.
func NewRootCmd(version string) *cobra.Command {
	a := &app{v: viper.New(), version: version}

	root := &cobra.Command{
		Use:   "resortctl",
		Short: "Palm Beach Resort command line client",
		Long: `resortctl talks to the Palm Beach Resort REST backend: browse rooms and
the menu, book a stay, read an invoice and manage bookings as an admin.

Settings come from flags, RESORTCTL_* environment variables and
$HOME/.resortctl.yaml, in that order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.resortctl.yaml)")
	pf.String(keyAPIURL, "http://localhost:8081", "base URL of the resort backend")
	pf.String(keyUsername, "", "username for HTTP Basic authentication")
	pf.String(keyPassword, "", "password for HTTP Basic authentication")
	pf.String(keySession, "", "session file (default is $HOME/.resortctl/session.json)")
	pf.StringP(keyOutput, "o", "table", "output format: table or json")
	pf.Bool(keyMockFallback, false, "serve fixtures when the backend answers HTML or is unreachable")
	pf.Duration(keyTimeout, 15*time.Second, "per-request timeout")
	pf.BoolP(keyVerbose, "v", false, "debug logging")
	if err := a.v.BindPFlags(pf); err != nil {
		panic(fmt.Sprintf("bind flags: %v", err))
	}

	root.AddGroup(
		&cobra.Group{ID: "guest", Title: "Guest Commands:"},
		&cobra.Group{ID: "admin", Title: "Admin Commands:"},
		&cobra.Group{ID: "account", Title: "Account Commands:"},
	)
	root.AddCommand(
		a.roomsCmd(),
		a.menuCmd(),
		a.bookingCmd(),
		a.ordersCmd(),
		a.adminCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.signupCmd(),
		a.whoamiCmd(),
		a.versionCmd(),
	)
	return root
}

func (a *app) initConfig(cmd *cobra.Command) error {
	_ = godotenv.Load()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(home)
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".resortctl")
	}
	a.v.SetEnvPrefix("RESORTCTL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && a.cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	level := "warn"
	if a.v.GetBool(keyVerbose) {
		level = "debug"
	}
	logging.Configure(os.Getenv("LOG_FORMAT"), level)
	cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
	return nil
}

// sessionFile returns the configured session store.
func (a *app) sessionFile() (*session.File, error) {
	if p := a.v.GetString(keySession); p != "" {
		return session.NewFile(p), nil
	}
	p, err := session.DefaultPath()
	if err != nil {
		return nil, err
	}
	return session.NewFile(p), nil
}

// client builds the backend client. A stored login wins over Basic
// credentials; with neither the client is anonymous.
func (a *app) client() (*apiclient.Client, error) {
	opts := []apiclient.Option{apiclient.WithHTTPClient(&http.Client{Timeout: a.v.GetDuration(keyTimeout)})}
	if a.v.GetBool(keyMockFallback) {
		opts = append(opts, apiclient.WithMockFallback(mockdata.NewBackend()))
	}
	c, err := apiclient.New(a.v.GetString(keyAPIURL), opts...)
	if err != nil {
		return nil, err
	}

	sess, err := a.sessionFile()
	if err != nil {
		return nil, err
	}
	switch {
	case sess.LoggedIn():
		return c.WithAuthenticator(c.NewBearer(sess)), nil
	case a.v.GetString(keyUsername) != "":
		return c.WithAuthenticator(apiclient.BasicAuth{Source: apiclient.StaticCredentials{
			Username: a.v.GetString(keyUsername),
			Password: a.v.GetString(keyPassword),
		}}), nil
	}
	return c, nil
}

func (a *app) jsonOutput() bool {
	return strings.EqualFold(a.v.GetString(keyOutput), "json")
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the resortctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "resortctl %s\n", a.version)
			return err
		},
	}
}
