package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"garagehub/internal/catalog"
	"garagehub/internal/garage"
	"garagehub/internal/loader"
)

var (
	listFlags struct {
		q, manufacturer, series, brand, gifter, sort string
		variants, duplicates, th                     bool
		page, pageSize                               int
	}
	rawJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Query the garage grid",
	RunE: func(cmd *cobra.Command, args []string) error {
		var page garage.CarsPage
		if err := getJSON(cmd.Context(), "/cars", listQuery(), &page); err != nil {
			return err
		}
		return printPage(page)
	},
}

var exchangeCmd = &cobra.Command{
	Use:   "exchange",
	Short: "List cars owned more than once",
	RunE: func(cmd *cobra.Command, args []string) error {
		var page garage.CarsPage
		if err := getJSON(cmd.Context(), "/exchange", listQuery(), &page); err != nil {
			return err
		}
		return printPage(page)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <variant-id>",
	Short: "Show the details of one car",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var d garage.Details
		if err := getJSON(cmd.Context(), "/cars/"+url.PathEscape(args[0]), nil, &d); err != nil {
			return err
		}
		return printDetails(d)
	},
}

var shareCmd = &cobra.Command{
	Use:   "share <name>",
	Short: "Resolve a share link by car name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var d garage.Details
		q := url.Values{"car": {strings.Join(args, " ")}}
		if err := getJSON(cmd.Context(), "/share", q, &d); err != nil {
			return err
		}
		return printDetails(d)
	},
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the home dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		var h garage.Home
		if err := getJSON(cmd.Context(), "/home", nil, &h); err != nil {
			return err
		}
		if rawJSON {
			return printJSON(h)
		}
		s := h.Summary
		fmt.Printf("%d cars, %d owned, %d manufacturers, %d series, %d brands, %d treasure hunts\n",
			s.Items, s.TotalOwned, s.Manufacturers, s.Series, s.Brands, s.TreasureHunts)
		fmt.Println("\nHall of fame:")
		for _, c := range h.HallOfFame {
			fmt.Printf("  %s  %s\n", c.Name, c.VariantLabel())
		}
		fmt.Println("\nTop brands:")
		for _, b := range h.TopBrands {
			fmt.Printf("  %-20s %d\n", b.Name, b.Count.Count)
		}
		fmt.Println("\nTop gifters:")
		for _, g := range h.TopGifters {
			fmt.Printf("  %-20s %d\n", g.Name, g.Count)
		}
		fmt.Println("\nRecently added:")
		for _, c := range h.Recent {
			fmt.Printf("  %s\n", c.Name)
		}
		return nil
	},
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List manufacturers, series and brands",
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts catalog.FilterOptions
		if err := getJSON(cmd.Context(), "/filters", nil, &opts); err != nil {
			return err
		}
		return printJSON(opts)
	},
}

var giftsCmd = &cobra.Command{
	Use:   "gifts <gifter>",
	Short: "List the cars a person gave",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var g garage.Gifts
		name := strings.Join(args, " ")
		if err := getJSON(cmd.Context(), "/gifters/"+url.PathEscape(name), nil, &g); err != nil {
			return err
		}
		if rawJSON {
			return printJSON(g)
		}
		fmt.Printf("%s (%d)\n", g.Title, g.Count)
		return printCards(g.Cars)
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect or reload the server catalog",
}

var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the catalog load status",
	RunE: func(cmd *cobra.Command, args []string) error {
		var st loader.Status
		if err := getJSON(cmd.Context(), "/catalog/status", nil, &st); err != nil {
			return err
		}
		return printJSON(st)
	},
}

var catalogRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload the catalog from its source",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out map[string]any
		if err := doJSON(cmd.Context(), http.MethodPost, "/catalog/refresh", nil, &out); err != nil {
			return err
		}
		return printJSON(out)
	},
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, exchangeCmd} {
		f := c.Flags()
		f.StringVarP(&listFlags.q, "query", "q", "", "search text")
		f.StringVar(&listFlags.manufacturer, "manufacturer", "", "manufacturer filter")
		f.StringVar(&listFlags.series, "series", "", "series filter")
		f.StringVar(&listFlags.brand, "brand", "", "brand filter")
		f.StringVar(&listFlags.gifter, "gifter", "", "gifter filter")
		f.StringVar(&listFlags.sort, "sort", "", "name_asc, serial_asc or serial_desc")
		f.BoolVar(&listFlags.variants, "variants", false, "only models with several variants")
		f.BoolVar(&listFlags.th, "th", false, "only treasure hunts")
		f.IntVar(&listFlags.page, "page", 0, "zero-based page")
		f.IntVar(&listFlags.pageSize, "page-size", 0, "items per page")
	}
	searchCmd.Flags().BoolVar(&listFlags.duplicates, "duplicates", false, "only cars owned more than once")

	for _, c := range []*cobra.Command{searchCmd, exchangeCmd, showCmd, shareCmd, homeCmd, giftsCmd} {
		c.Flags().BoolVar(&rawJSON, "json", false, "print the raw JSON response")
	}
}

func listQuery() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("q", listFlags.q)
	set("manufacturer", listFlags.manufacturer)
	set("series", listFlags.series)
	set("brand", listFlags.brand)
	set("gifter", listFlags.gifter)
	set("sort", listFlags.sort)
	if listFlags.variants {
		q.Set("variants", "true")
	}
	if listFlags.duplicates {
		q.Set("duplicates", "true")
	}
	if listFlags.th {
		q.Set("th", "true")
	}
	if listFlags.page > 0 {
		q.Set("page", strconv.Itoa(listFlags.page))
	}
	if listFlags.pageSize > 0 {
		q.Set("page_size", strconv.Itoa(listFlags.pageSize))
	}
	return q
}

func printPage(page garage.CarsPage) error {
	if rawJSON {
		return printJSON(page)
	}
	fmt.Println(page.Summary)
	if page.NoResults {
		return nil
	}
	if err := printCards(page.Items); err != nil {
		return err
	}
	fmt.Printf("page %d/%d\n", page.Page+1, page.Pages)
	return nil
}

func printCards(cards []garage.Card) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SERIAL\tNAME\tVARIANT\tBRAND\tCOPIES\tID")
	for _, c := range cards {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			c.Car.Serial, c.Car.Name, c.Car.VariantLabel(), c.Car.Brand, c.Copies, c.Car.VariantID)
	}
	return w.Flush()
}

func printDetails(d garage.Details) error {
	if rawJSON {
		return printJSON(d)
	}
	c := d.Car
	fmt.Printf("%s  %s\n", c.Name, c.VariantLabel())
	fmt.Printf("  brand: %s  manufacturer: %s  series: %s  serial: %s\n", c.Brand, c.Manufacturer, c.Series, c.Serial)
	if d.Copies > 1 {
		fmt.Printf("  copies: %d\n", d.Copies)
	}
	if c.Description != "" {
		fmt.Printf("  %s\n", c.Description)
	}
	for _, v := range d.Variants {
		mark := " "
		if v.Active {
			mark = "*"
		}
		fmt.Printf("  %s %s (%s)\n", mark, v.Label, v.VariantID)
	}
	if len(d.Related) > 0 {
		fmt.Printf("  related: %d cars\n", len(d.Related))
	}
	fmt.Printf("  share: %s\n", d.ShareURL)
	return nil
}

func getJSON(ctx context.Context, path string, q url.Values, out any) error {
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return doJSON(ctx, http.MethodGet, path, nil, out)
}

func doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	endpoint := strings.TrimRight(apiURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
