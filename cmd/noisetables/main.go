package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/tuneinsight/he-noise-heuristics/estimator"
	"github.com/tuneinsight/he-noise-heuristics/stats"
	"github.com/tuneinsight/he-noise-heuristics/tables"
)

const (
	tableFlag     = "table"
	formatFlag    = "format"
	paramsFlag    = "params"
	logLevelFlag  = "loglevel"
	baselineFlag  = "baseline"
	candidateFlag = "candidate"
)

func main() {
	app := &cli.App{}
	app.Name = "noisetables"
	app.Usage = "Heuristic noise growth estimates for BGV (HElib) and FV (SEAL)"
	app.UsageText = "noisetables [global options] [command] [command options]"
	app.Description = `Without a command, prints every table of the paper in order:
log2 of the estimated noise or the estimated noise budget after fresh
encryption, addition, multiplication, relinearization and modulus switching.`
	app.Flags = flags()
	app.Action = run
	app.Commands = commands()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    tableFlag,
			Aliases: []string{"t"},
			Usage:   "table `ID` to print, can be repeated (default: all)",
		},
		&cli.StringFlag{
			Name:  formatFlag,
			Value: "text",
			Usage: "output format: text, csv or json",
		},
		&cli.StringFlag{
			Name:  paramsFlag,
			Usage: "YAML `FILE` overriding the parameter sets of the paper",
		},
		&cli.StringFlag{
			Name:  logLevelFlag,
			Value: "info",
			Usage: "log level: debug, info, warn, error",
		},
	}
}

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "list",
			Usage:  "List the tables and the noise models",
			Action: list,
		},
		{
			Name:  "compare",
			Usage: "Compare the values of two tables reported for the same operations",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     baselineFlag,
					Usage:    "baseline table `ID`",
					Required: true,
				},
				&cli.StringFlag{
					Name:     candidateFlag,
					Usage:    "candidate table `ID`",
					Required: true,
				},
			},
			Action: compare,
		},
	}
}

func newLogger(c *cli.Context) (*zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(c.String(logLevelFlag))
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	return &log, nil
}

func newDriver(c *cli.Context, log *zerolog.Logger) (*tables.Driver, error) {
	catalogue := tables.DefaultCatalogue()

	if path := c.String(paramsFlag); path != "" {
		var err error
		if catalogue, err = tables.LoadCatalogue(path); err != nil {
			return nil, err
		}
		log.Info().Str("file", path).Msg("loaded parameter sets")
	}

	return tables.NewDriver(catalogue, log), nil
}

func run(c *cli.Context) error {
	log, err := newLogger(c)
	if err != nil {
		return err
	}

	driver, err := newDriver(c, log)
	if err != nil {
		return err
	}

	selected, err := tables.Lookup(c.StringSlice(tableFlag)...)
	if err != nil {
		return err
	}

	results, err := driver.RunAll(selected)
	if err != nil {
		return err
	}

	log.Debug().Int("tables", len(results)).Msg("evaluated tables")

	return write(os.Stdout, c.String(formatFlag), results)
}

func write(w io.Writer, format string, results []tables.Result) error {
	switch format {
	case "text":
		return tables.WriteText(w, results)
	case "csv":
		return tables.WriteCSV(w, results)
	case "json":
		return tables.WriteJSON(w, results)
	default:
		return errors.Errorf("invalid format %q: must be text, csv or json", format)
	}
}

func list(c *cli.Context) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "TABLE\tVARIANT\tGROUP\tT\tTITLE")
	for _, table := range tables.Paper {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", table.ID, table.Variant, table.Group, table.T, table.Title)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "VARIANT\tFAMILY\tREAL BUDGET")
	for _, v := range estimator.Variants() {
		fmt.Fprintf(w, "%s\t%s\t%t\n", v, v.Family(), v.RealBudget())
	}

	return w.Flush()
}

func compare(c *cli.Context) error {
	log, err := newLogger(c)
	if err != nil {
		return err
	}

	driver, err := newDriver(c, log)
	if err != nil {
		return err
	}

	selected, err := tables.Lookup(c.String(baselineFlag), c.String(candidateFlag))
	if err != nil {
		return err
	}

	results, err := driver.RunAll(selected)
	if err != nil {
		return err
	}

	deltas, err := tables.Compare(results[0], results[1])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)

	if err := w.Write(stats.Header); err != nil {
		return err
	}

	for _, d := range deltas {
		if err := w.Write(d.ToCSV()); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}
