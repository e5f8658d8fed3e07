package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/mhuot/go-opennms/pkg/client"
)

type resourceFunc func(*client.Client) *client.ResourceService

func newResourceCommand(name string, resource resourceFunc) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: "Query " + name,
		Commands: []*cli.Command{
			{
				Name:  "find",
				Usage: "List " + name + " matching a filter",
				Flags: append(filterFlags(),
					&cli.BoolFlag{
						Name:  "typed",
						Usage: "coerce values to the declared property types (v2 only)",
					},
					&cli.BoolFlag{
						Name:  "raw",
						Usage: "print the body exactly as received",
					},
				),
				Action: findAction(resource),
			},
			{
				Name:      "get",
				Usage:     "Fetch one of the " + name + " by ID",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "raw", Usage: "print the body exactly as received"},
				},
				Action: getAction(resource),
			},
			{
				Name:   "properties",
				Usage:  "List the properties " + name + " can be filtered on (v2 only)",
				Action: propertiesAction(resource),
			},
		},
	}
}

func findAction(resource resourceFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		f, err := filterFromCommand(cmd)
		if err != nil {
			return err
		}
		c, err := newClient(cmd)
		if err != nil {
			return err
		}

		svc := resource(c)
		if cmd.Bool("typed") {
			p, err := svc.TypedProcessor(ctx)
			if err != nil {
				return err
			}
			svc = svc.WithProcessor(p)
		}

		resp, err := svc.Find(ctx, f)
		if err != nil {
			return err
		}
		return printResponse(cmd.Root().Writer, resp, !cmd.Bool("raw"))
	}
}

func getAction(resource resourceFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() != 1 {
			return fmt.Errorf("expected 1 argument: id")
		}
		id, err := strconv.Atoi(cmd.Args().First())
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", cmd.Args().First(), err)
		}
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		resp, err := resource(c).Get(ctx, id)
		if err != nil {
			return err
		}
		return printResponse(cmd.Root().Writer, resp, !cmd.Bool("raw"))
	}
}

func propertiesAction(resource resourceFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() != 0 {
			return fmt.Errorf("properties does not take arguments")
		}
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		props, err := resource(c).SearchProperties(ctx)
		if err != nil {
			return err
		}
		return printProperties(cmd.Root().Writer, props)
	}
}
