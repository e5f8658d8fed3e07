package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mhuot/go-opennms/internal/where"
	"github.com/mhuot/go-opennms/pkg/filter"
)

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "where",
			Aliases: []string{"w"},
			Usage:   `restriction "property comparator [value]", repeatable`,
		},
		&cli.BoolFlag{
			Name:  "or",
			Usage: "join restrictions with OR instead of AND",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "maximum number of results",
			Value: filter.DefaultLimit,
		},
		&cli.BoolFlag{
			Name:  "no-limit",
			Usage: "send no limit and let the server decide",
		},
		&cli.IntFlag{
			Name:  "offset",
			Usage: "number of results to skip",
		},
		&cli.StringSliceFlag{
			Name:  "order-by",
			Usage: "sort key property[:asc|:desc], repeatable",
		},
		&cli.BoolFlag{
			Name:  "clock12",
			Usage: "show times on a 12-hour clock",
		},
	}
}

// filterFromCommand builds a filter from the --where family of flags.
func filterFromCommand(cmd *cli.Command) (*filter.Filter, error) {
	f := filter.NewFilter()
	f.ClockFace = cmd.Bool("clock12")

	join := f.WithAndRestriction
	if cmd.Bool("or") {
		join = f.WithOrRestriction
	}
	for _, expr := range cmd.StringSlice("where") {
		r, err := where.Parse(expr)
		if err != nil {
			return nil, err
		}
		join(r)
	}

	if cmd.Bool("no-limit") {
		f.WithoutLimit()
	} else {
		f.WithLimit(cmd.Int("limit"))
	}
	if cmd.IsSet("offset") {
		f.WithOffset(cmd.Int("offset"))
	}
	for _, key := range cmd.StringSlice("order-by") {
		o, err := where.OrderBy(key)
		if err != nil {
			return nil, err
		}
		f.WithOrderBy(o.Property, o.Direction)
	}
	return f, nil
}

func newCompileCommand() *cli.Command {
	return &cli.Command{
		Name:  "compile",
		Usage: "Print the query parameters a filter compiles to, without contacting a server",
		Flags: append(filterFlags(), &cli.BoolFlag{
			Name:  "json",
			Usage: "print parameters as JSON",
		}),
		Action: compileAction,
	}
}

func compileAction(ctx context.Context, cmd *cli.Command) error {
	f, err := filterFromCommand(cmd)
	if err != nil {
		return err
	}

	versions := []filter.APIVersion{filter.V1, filter.V2}
	if v := cmd.String(apiVersionFlag.Name); v != "" {
		version, err := filter.ParseAPIVersion(v)
		if err != nil {
			return err
		}
		versions = []filter.APIVersion{version}
	}

	w := cmd.Root().Writer
	describeFilter(w, f)

	var failed int
	for _, version := range versions {
		p, err := filter.NewProcessor(version)
		if err != nil {
			return err
		}
		params, err := p.Parameters(f)
		if err != nil {
			failed++
			if len(versions) == 1 {
				return err
			}
		}
		if err := printParameters(w, version, params, err, cmd.Bool("json")); err != nil {
			return err
		}
	}
	if failed == len(versions) {
		return fmt.Errorf("filter cannot be compiled for any API version")
	}
	return nil
}
