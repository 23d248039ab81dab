package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"go.uber.org/zap/zapcore"

	"stock_potential/pkg/core/config"
	"stock_potential/pkg/core/display"
	"stock_potential/pkg/core/equity"
	"stock_potential/pkg/core/logging"
	"stock_potential/pkg/core/report"
	"stock_potential/pkg/core/scenario"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "calc"
	app.Usage = "estimate what a startup stock offer could be worth"
	app.Writer = out
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "settings file (defaults to $CALCULATOR_CONFIG or " + config.DefaultPath + ")",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "log to stderr at debug level",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "compute",
			Usage: "print inputs and results",
			Flags: modelFlags(),
			Action: func(c *cli.Context) error {
				cfg, m, results, err := setup(c)
				if err != nil {
					return err
				}
				printResults(c.App.Writer, m, results)
				logging.L().Debugw("[CALC] computed", "max_rounds", cfg.MaxRounds)
				return nil
			},
		},
		{
			Name:  "project",
			Usage: "print the round-by-round projection",
			Flags: append(modelFlags(),
				&cli.BoolFlag{Name: "csv", Usage: "write CSV instead of a table"},
			),
			Action: func(c *cli.Context) error {
				cfg, m, _, err := setup(c)
				if err != nil {
					return err
				}
				sched, err := equity.Project(m.State(), cfg.MaxRounds)
				if err != nil {
					return err
				}
				if c.Bool("csv") {
					return report.WriteCSV(c.App.Writer, sched)
				}
				printSchedule(c.App.Writer, sched)
				return nil
			},
		},
		{
			Name:  "chart",
			Usage: "render the projection as an image",
			Flags: append(modelFlags(),
				&cli.StringFlag{Name: "out", Usage: "output file (required)"},
				&cli.StringFlag{Name: "format", Value: "png", Usage: "png or svg"},
			),
			Action: func(c *cli.Context) error {
				path := c.String("out")
				if path == "" {
					return errors.New("--out is required")
				}
				format, err := report.ParseChartFormat(c.String("format"))
				if err != nil {
					return err
				}
				cfg, m, _, err := setup(c)
				if err != nil {
					return err
				}
				sched, err := equity.Project(m.State(), cfg.MaxRounds)
				if err != nil {
					return err
				}
				img, err := report.Chart(sched, format)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, img, 0o644); err != nil {
					return errors.Wrap(err, "write chart")
				}
				fmt.Fprintf(c.App.Writer, "wrote %s (%d rounds)\n", path, len(sched.Rounds))
				return nil
			},
		},
		{
			Name:  "report",
			Usage: "print a Markdown (or HTML) report",
			Flags: append(modelFlags(),
				&cli.BoolFlag{Name: "html", Usage: "render HTML"},
			),
			Action: func(c *cli.Context) error {
				cfg, m, _, err := setup(c)
				if err != nil {
					return err
				}
				md := report.Markdown(report.NewInput(m.State(), cfg.MaxRounds))
				if !c.Bool("html") {
					_, err := io.WriteString(c.App.Writer, md)
					return err
				}
				page, err := report.HTML("Stock Potential Calculator", md)
				if err != nil {
					return err
				}
				_, err = c.App.Writer.Write(page)
				return err
			},
		},
	}
	return app
}

// modelFlags are shared by every command: a scenario source plus one flag
// per form field. Field flags are applied after the scenario, in form order.
func modelFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "scenario", Usage: "scenario file (.json, .yaml or .hjson)"},
		&cli.StringFlag{Name: "data", Usage: "inline JSON scenario"},
	}
	for _, f := range equity.Fields {
		flags = append(flags, &cli.StringFlag{Name: f.String(), Usage: f.Label()})
	}
	return flags
}

func setup(c *cli.Context) (*config.Config, *equity.Model, []scenario.Result, error) {
	cfg, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return nil, nil, nil, err
	}
	if c.GlobalBool("debug") {
		logging.Set(logging.NewTo(true, zapcore.Lock(os.Stderr)))
	}

	doc, err := loadDocument(c)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, f := range equity.Fields {
		if v := c.String(f.String()); v != "" {
			doc.Edits = append(doc.Edits, scenario.Edit{Field: f.String(), Value: scenario.Value(v)})
		}
	}

	m, results, err := doc.Build(cfg.Defaults)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, r := range results {
		if !r.Accepted {
			logging.L().Warnw("[CALC] edit ignored", "field", r.Field, "value", r.Value)
		}
	}
	return cfg, m, results, nil
}

func loadDocument(c *cli.Context) (*scenario.Document, error) {
	path, data := c.String("scenario"), c.String("data")
	switch {
	case path != "" && data != "":
		return nil, errors.New("use either --scenario or --data, not both")
	case path != "":
		return scenario.LoadFile(path)
	case data != "":
		return scenario.Decode([]byte(data), scenario.FormatJSON)
	}
	return &scenario.Document{}, nil
}

func printResults(w io.Writer, m *equity.Model, results []scenario.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	s := m.State()
	for _, f := range equity.Fields {
		v, _ := s.Get(f)
		fmt.Fprintf(tw, "%s\t%s\n", f.Label(), display.Number(v))
	}
	d := display.Render(m.ComputeOutputs())
	fmt.Fprintln(tw, "\t")
	fmt.Fprintf(tw, "Number of raises needed\t%s\n", d.NumberOfRaises)
	fmt.Fprintf(tw, "Dilution ratio for all rounds\t%s\n", d.Dilution)
	fmt.Fprintf(tw, "Potential stock value\t%s\n", d.PotentialStockValue)
	for _, r := range results {
		if !r.Accepted {
			fmt.Fprintf(tw, "ignored %s\t%q\n", r.Field, r.Value)
		}
	}
	tw.Flush()
}

func printSchedule(w io.Writer, sched equity.Schedule) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Round\tValuation\tEquity %\tStake value\t")
	for _, r := range sched.Rounds {
		round := fmt.Sprintf("%d", int(r.Round))
		if r.Target {
			round = display.Ratio(r.Round) + "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%s\t\n", round, display.Currency(r.Valuation), r.EquityPercentage, display.Currency(r.StakeValue))
	}
	tw.Flush()
	if sched.Truncated {
		fmt.Fprintf(w, "showing the first %d rounds\n", len(sched.Rounds))
	}
}
