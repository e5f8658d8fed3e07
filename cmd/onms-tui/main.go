package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/mhuot/go-opennms/internal/config"
	"github.com/mhuot/go-opennms/pkg/client"
	"github.com/mhuot/go-opennms/pkg/filter"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:  "onms-tui",
		Usage: "Build OpenNMS ReST filters interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "OpenNMS base URL", Sources: cli.EnvVars("ONMS_URL")},
			&cli.StringFlag{Name: "api-version", Usage: "ReST API version: v1 or v2", Sources: cli.EnvVars("ONMS_API_VERSION")},
			&cli.StringFlag{Name: "config", Usage: "profile file", Value: config.DefaultPath(), Sources: cli.EnvVars("ONMS_CONFIG")},
			&cli.StringFlag{Name: "profile", Aliases: []string{"p"}, Usage: "profile to use from the profile file", Sources: cli.EnvVars("ONMS_PROFILE")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := clientFromCommand(cmd)
			if err != nil {
				return err
			}
			tui := NewTUI(ctx, c)
			go func() {
				<-ctx.Done()
				tui.Stop()
			}()
			return tui.Run()
		},
	}
	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// clientFromCommand builds a client from --url, falling back to the profile file.
func clientFromCommand(cmd *cli.Command) (*client.Client, error) {
	var opts []client.ClientOption
	baseURL := cmd.String("url")
	if baseURL == "" || cmd.IsSet("profile") {
		file, err := config.Load(cmd.String("config"))
		if err != nil {
			return nil, fmt.Errorf("no --url given: %w", err)
		}
		profile, err := file.Profile(cmd.String("profile"))
		if err != nil {
			return nil, err
		}
		opts = append(opts, profile.ClientOptions()...)
		if baseURL == "" {
			baseURL = profile.URL
		}
	}
	opts = append(opts, client.WithBaseURL(baseURL))
	if v := cmd.String("api-version"); v != "" {
		version, err := filter.ParseAPIVersion(v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, client.WithAPIVersion(version))
	}
	return client.New(opts...)
}
