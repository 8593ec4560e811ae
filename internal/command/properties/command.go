package properties

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"text/tabwriter"

	"github.com/bornholm/saskatoon/internal/command/common"
	"github.com/bornholm/saskatoon/internal/core/model"
	"github.com/bornholm/saskatoon/internal/core/port"
	"github.com/bornholm/saskatoon/internal/setup"
	"github.com/bornholm/saskatoon/pkg/client"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	paramSearch    = "search"
	paramOwnerType = "owner-type"
	paramPage      = "page"
	paramLimit     = "limit"
	paramServer    = "server"
	paramFormat    = "format"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type row struct {
	ID           uint   `json:"id" yaml:"id"`
	ShortAddress string `json:"shortAddress" yaml:"shortAddress"`
	PostalCode   string `json:"postalCode" yaml:"postalCode"`
	Owner        string `json:"owner,omitempty" yaml:"owner,omitempty"`
	OwnerType    string `json:"ownerType,omitempty" yaml:"ownerType,omitempty"`
	Harvests     int64  `json:"harvests" yaml:"harvests"`
}

type result struct {
	Total      int64 `json:"total" yaml:"total"`
	Properties []row `json:"properties" yaml:"properties"`
}

func Command() *cli.Command {
	return &cli.Command{
		Name:      "properties",
		Usage:     "Search the registered properties",
		ArgsUsage: "[terms]",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{
				Name:    paramSearch,
				Aliases: []string{"q"},
				Usage:   "search terms, matched against the address, the postal code and the owner",
			},
			&cli.StringFlag{
				Name:  paramOwnerType,
				Usage: "only list properties owned by a 'person' or an 'organization'",
			},
			&cli.IntFlag{
				Name:  paramPage,
				Value: 0,
				Usage: "result page, starting at 0",
			},
			&cli.IntFlag{
				Name:  paramLimit,
				Value: 20,
				Usage: "maximum number of results per page",
			},
			&cli.StringFlag{
				Name:    paramServer,
				Aliases: []string{"s"},
				EnvVars: []string{"SASKATOON_CLI_SERVER"},
				Usage:   "query a running server at the given base url instead of the local database",
			},
			&cli.StringFlag{
				Name:    paramFormat,
				Aliases: []string{"f"},
				Value:   formatTable,
				Usage:   "output format (table, json, yaml)",
			},
		),
		Action: func(ctx *cli.Context) error {
			search := ctx.String(paramSearch)
			if search == "" && ctx.Args().Present() {
				search = ctx.Args().First()
			}

			ownerType := model.OwnerType(ctx.String(paramOwnerType))
			if ownerType != model.OwnerTypeNone && !ownerType.Valid() {
				return errors.Errorf("invalid owner type '%s'", ownerType)
			}

			page := ctx.Int(paramPage)
			limit := ctx.Int(paramLimit)

			var (
				rows  []row
				total int64
				err   error
			)

			if rawServerURL := ctx.String(paramServer); rawServerURL != "" {
				rows, total, err = queryServer(ctx, rawServerURL, search, ownerType, page, limit)
			} else {
				rows, total, err = queryStore(ctx, search, ownerType, page, limit)
			}
			if err != nil {
				return errors.WithStack(err)
			}

			if err := write(ctx.App.Writer, ctx.String(paramFormat), rows, total); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}

func write(w io.Writer, format string, rows []row, total int64) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result{Total: total, Properties: rows}); err != nil {
			return errors.WithStack(err)
		}

	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(result{Total: total, Properties: rows}); err != nil {
			return errors.WithStack(err)
		}

		if err := encoder.Close(); err != nil {
			return errors.WithStack(err)
		}

	case formatTable:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

		fmt.Fprintln(tw, "ID\tADDRESS\tPOSTAL CODE\tOWNER\tOWNER TYPE\tHARVESTS")

		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n", r.ID, r.ShortAddress, r.PostalCode, r.Owner, r.OwnerType, r.Harvests)
		}

		if err := tw.Flush(); err != nil {
			return errors.WithStack(err)
		}

		fmt.Fprintf(w, "\n%s of %s properties\n", humanize.Comma(int64(len(rows))), humanize.Comma(total))

	default:
		return errors.Errorf("unknown output format '%s'", format)
	}

	return nil
}

func queryStore(ctx *cli.Context, search string, ownerType model.OwnerType, page, limit int) ([]row, int64, error) {
	conf, err := common.LoadConfig(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	store, err := setup.NewStoreFromConfig(ctx.Context, conf)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	opts := port.QueryPropertiesOptions{
		Page:   &page,
		Limit:  &limit,
		Search: search,
	}

	if ownerType != model.OwnerTypeNone {
		opts.OwnerType = &ownerType
	}

	properties, total, err := store.QueryProperties(ctx.Context, opts)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	rows := make([]row, 0, len(properties))
	for _, p := range properties {
		r := row{
			ID:           uint(p.ID()),
			ShortAddress: p.ShortAddress(),
			PostalCode:   p.PostalCode(),
			Harvests:     p.HarvestCount(),
		}

		if o := p.Owner(); o != nil {
			r.Owner = o.DisplayName()
			r.OwnerType = o.Type().Title()
		}

		rows = append(rows, r)
	}

	return rows, total, nil
}

func queryServer(ctx *cli.Context, rawServerURL string, search string, ownerType model.OwnerType, page, limit int) ([]row, int64, error) {
	serverURL, err := url.Parse(rawServerURL)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "could not parse server url '%s'", rawServerURL)
	}

	c := client.New(client.WithBaseURL(serverURL))

	properties, total, err := c.QueryProperties(ctx.Context,
		client.WithQueryPropertiesSearch(search),
		client.WithQueryPropertiesOwnerType(string(ownerType)),
		client.WithQueryPropertiesPage(page),
		client.WithQueryPropertiesLimit(limit),
	)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	rows := make([]row, 0, len(properties))
	for _, p := range properties {
		r := row{
			ID:           p.ID,
			ShortAddress: p.ShortAddress,
			PostalCode:   p.PostalCode,
			Harvests:     p.Harvests,
		}

		if p.Owner != nil {
			r.Owner = p.Owner.Name
			r.OwnerType = model.OwnerType(p.Owner.Type).Title()
		}

		rows = append(rows, r)
	}

	return rows, total, nil
}
