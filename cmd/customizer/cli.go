package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/modgarage/customizer/internal/api"
	"github.com/modgarage/customizer/internal/config"
	"github.com/modgarage/customizer/internal/export"
	"github.com/modgarage/customizer/internal/util"
	"github.com/modgarage/customizer/internal/valuation"
	"github.com/modgarage/customizer/pkg/core"
)

const usage = `usage: customizer [command]

commands:
  serve                     run the HTTP service (default)
  list                      list stored designs
  valuate <file.json>       print stats, price and rating of a design
  save <file.json>          create a design, or update it when it has an id
  delete <id>               delete a stored design
  export <id> [json|yaml]   write a design through the configured export sink`

var errUsage = errors.New(usage)

// runCLI executes one client subcommand against the configured server.
func runCLI(ctx context.Context, out io.Writer, cmd string, args []string) error {
	client := api.New(config.GetString("api.serverUrl"))

	switch cmd {
	case "list":
		return listDesigns(ctx, out, client)
	case "valuate":
		if len(args) != 1 {
			return errUsage
		}
		return valuateFile(ctx, out, client, args[0])
	case "save":
		if len(args) != 1 {
			return errUsage
		}
		return saveFile(ctx, out, client, args[0])
	case "delete":
		if len(args) != 1 {
			return errUsage
		}
		if err := client.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted %s\n", args[0])
		return nil
	case "export":
		if len(args) < 1 || len(args) > 2 {
			return errUsage
		}
		format := ""
		if len(args) == 2 {
			format = args[1]
		}
		return exportDesign(ctx, out, client, args[0], format)
	case "help", "-h", "--help":
		fmt.Fprintln(out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%w", cmd, errUsage)
	}
}

func listDesigns(ctx context.Context, out io.Writer, client *api.Client) error {
	designs, err := client.List(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMODEL\tPRICE\tRATING")
	for _, d := range designs {
		rating := "-"
		if v, err := valuation.Valuate(d); err == nil {
			rating = v.Rating.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.BaseModel, util.FormatPrice(valuation.Price(d)), rating)
	}
	return tw.Flush()
}

func readDesign(path string) (core.Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Design{}, fmt.Errorf("failed to read design: %w", err)
	}
	var d core.Design
	if err := json.Unmarshal(data, &d); err != nil {
		return core.Design{}, fmt.Errorf("failed to parse design %s: %w", path, err)
	}
	return d, nil
}

func valuateFile(ctx context.Context, out io.Writer, client *api.Client, path string) error {
	d, err := readDesign(path)
	if err != nil {
		return err
	}
	v, err := client.Valuate(ctx, d)
	if err != nil {
		return err
	}

	s := v.Stats
	fmt.Fprintf(out, "speed:        %d\n", s.Speed)
	fmt.Fprintf(out, "acceleration: %d\n", s.Acceleration)
	fmt.Fprintf(out, "braking:      %d\n", s.Braking)
	fmt.Fprintf(out, "handling:     %d\n", s.Handling)
	fmt.Fprintf(out, "weight:       %d\n", s.Weight)
	fmt.Fprintf(out, "price:        %s\n", util.FormatPrice(v.Price))
	fmt.Fprintf(out, "rating:       %s\n", v.Rating)
	return nil
}

func saveFile(ctx context.Context, out io.Writer, client *api.Client, path string) error {
	d, err := readDesign(path)
	if err != nil {
		return err
	}

	var saved core.Design
	if d.ID == "" {
		saved, err = client.Create(ctx, d)
	} else {
		saved, err = client.Update(ctx, d)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "saved %s (%s)\n", saved.ID, saved.Name)
	return nil
}

func exportDesign(ctx context.Context, out io.Writer, client *api.Client, id, format string) error {
	data, name, err := client.Export(ctx, id, format)
	if err != nil {
		return err
	}

	sink, err := export.NewSink(ctx, config.GetExportConfig())
	if err != nil {
		return err
	}
	loc, err := sink.Put(ctx, name, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "exported %s to %s\n", id, loc)
	return nil
}
