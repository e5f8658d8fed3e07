package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/mhuot/go-opennms/internal/config"
	"github.com/mhuot/go-opennms/pkg/client"
	"github.com/mhuot/go-opennms/pkg/filter"
)

var (
	baseURLFlag = &cli.StringFlag{
		Name:    "url",
		Aliases: []string{"u"},
		Usage:   "OpenNMS base URL, e.g. http://localhost:8980/opennms",
		Sources: cli.EnvVars("ONMS_URL"),
	}
	timeoutFlag = &cli.DurationFlag{
		Name:    "timeout",
		Aliases: []string{"t"},
		Usage:   "HTTP client timeout (e.g. 30s, 1m)",
		Value:   30 * time.Second,
		Sources: cli.EnvVars("ONMS_TIMEOUT"),
	}
	apiVersionFlag = &cli.StringFlag{
		Name:    "api-version",
		Usage:   "ReST API version: v1 or v2",
		Sources: cli.EnvVars("ONMS_API_VERSION"),
	}
	configFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "profile file",
		Value:   config.DefaultPath(),
		Sources: cli.EnvVars("ONMS_CONFIG"),
	}
	profileFlag = &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "profile to use from the profile file",
		Sources: cli.EnvVars("ONMS_PROFILE"),
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log requests to stderr",
	}
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "onms",
		Usage:     "Query the OpenNMS ReST API with filters",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     []cli.Flag{baseURLFlag, timeoutFlag, apiVersionFlag, configFlag, profileFlag, verboseFlag},
		Commands: []*cli.Command{
			newCompileCommand(),
			newResourceCommand("alarms", (*client.Client).Alarms),
			newResourceCommand("events", (*client.Client).Events),
			newResourceCommand("nodes", (*client.Client).Nodes),
			newResourceCommand("outages", (*client.Client).Outages),
		},
	}
}

// newLogger returns a development logger with --verbose and a no-op logger otherwise.
func newLogger(cmd *cli.Command) (*zap.Logger, error) {
	if !cmd.Bool(verboseFlag.Name) {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// clientOptionsFromCommand merges the selected profile with explicit flags, flags winning.
func clientOptionsFromCommand(cmd *cli.Command) ([]client.ClientOption, error) {
	var (
		opts        []client.ClientOption
		fromProfile bool
	)

	baseURL := cmd.String(baseURLFlag.Name)
	profileName := cmd.String(profileFlag.Name)
	if path := cmd.String(configFlag.Name); path != "" && (baseURL == "" || profileName != "") {
		file, err := config.Load(path)
		switch {
		case err == nil:
			profile, err := file.Profile(profileName)
			if err != nil {
				return nil, err
			}
			opts = append(opts, profile.ClientOptions()...)
			fromProfile = true
			if baseURL == "" {
				baseURL = profile.URL
			}
		case profileName != "" || cmd.IsSet(configFlag.Name):
			return nil, err
		}
	}
	if baseURL == "" {
		return nil, fmt.Errorf("flag --url is required (or a profile in --config)")
	}
	opts = append(opts, client.WithBaseURL(baseURL))

	if cmd.IsSet(timeoutFlag.Name) || !fromProfile {
		opts = append(opts, client.WithTimeout(cmd.Duration(timeoutFlag.Name)))
	}
	if v := cmd.String(apiVersionFlag.Name); v != "" {
		version, err := filter.ParseAPIVersion(v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, client.WithAPIVersion(version))
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}
	opts = append(opts, client.WithLogger(client.NewZapLogger(logger)))
	return opts, nil
}

func newClient(cmd *cli.Command) (*client.Client, error) {
	opts, err := clientOptionsFromCommand(cmd)
	if err != nil {
		return nil, err
	}
	return client.New(opts...)
}
