package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kevtrend/pkg/cli/config"
	"github.com/secmon-lab/kevtrend/pkg/domain/model"
	"github.com/secmon-lab/kevtrend/pkg/domain/types"
	"github.com/secmon-lab/kevtrend/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdQuery() *cli.Command {
	var (
		catalogCfg config.Catalog
		years      []int
		vendors    []string
		cwes       []string
		ransomware string
		output     string
	)

	flags := joinFlags(
		catalogCfg.Flags(),
		[]cli.Flag{
			&cli.IntSliceFlag{
				Name:        "year",
				Usage:       "Restrict to records added in these years",
				Destination: &years,
			},
			&cli.StringSliceFlag{
				Name:        "vendor",
				Usage:       "Restrict to these vendors (exact match)",
				Destination: &vendors,
			},
			&cli.StringSliceFlag{
				Name:        "cwe",
				Usage:       "Restrict to records whose CWE text contains any of these fragments",
				Destination: &cwes,
			},
			&cli.StringFlag{
				Name:        "ransomware",
				Usage:       "Ransomware mode (all, known, unknown)",
				Value:       "all",
				Destination: &ransomware,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output format (table, json, csv)",
				Value:       "table",
				Destination: &output,
			},
		},
	)

	return &cli.Command{
		Name:  "query",
		Usage: "Run one filter-and-aggregate query and print the monthly series",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			mode, err := types.ParseRansomwareMode(ransomware)
			if err != nil {
				return err
			}

			selection := model.Selection{
				Years:      years,
				Vendors:    vendors,
				CWEs:       cwes,
				Ransomware: mode,
			}
			if err := selection.Validate(); err != nil {
				return err
			}

			dataset, err := catalogCfg.Configure().Fetch(ctx)
			if err != nil {
				return err
			}

			series := usecase.Aggregate(dataset.Records(), selection)
			return printSeries(os.Stdout, series, output)
		},
	}
}

// seriesRow is the CSV output shape of one series point
type seriesRow struct {
	Month string `csv:"month"`
	Count int    `csv:"count"`
}

func printSeries(w io.Writer, series model.Series, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(series); err != nil {
			return goerr.Wrap(err, "failed to encode series")
		}
		return nil

	case "csv":
		rows := make([]seriesRow, 0, len(series))
		for _, p := range series {
			rows = append(rows, seriesRow{Month: p.Month.String(), Count: p.Count})
		}
		out, err := gocsv.MarshalString(&rows)
		if err != nil {
			return goerr.Wrap(err, "failed to encode series")
		}
		_, err = fmt.Fprint(w, out)
		return err

	case "table", "":
		if series.IsEmpty() {
			_, err := fmt.Fprintln(w, "no data matches the selected filters")
			return err
		}
		for _, p := range series {
			if _, err := fmt.Fprintf(w, "%s\t%d\n", p.Month, p.Count); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "total\t%d\n", series.Total())
		return err

	default:
		return goerr.New("invalid output format", goerr.V("format", format))
	}
}
