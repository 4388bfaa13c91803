package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"garagehub/internal/garage"
	"garagehub/internal/hero"
	"garagehub/internal/query"
	"garagehub/pkg/models"
)

var localSource string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog interactively without a server",
	Long: `Loads the catalog locally and opens the garage grid. Commands:
  n / p            next / previous page
  / <text>         search
  m <name>         manufacturer filter ("m" alone clears it)
  s <name>         series filter
  b <name>         brand filter
  sort <mode>      name_asc, serial_asc or serial_desc
  v                toggle variants only
  r                reset filters
  refresh          reload the catalog and reset filters
  q                quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadLocal(cmd.Context())
		if err != nil {
			return err
		}
		b := query.NewBrowser(app.Views.Engine(), app.Store)
		return runBrowse(b, reloadFunc(cmd.Context(), app), os.Stdin, os.Stdout)
	},
}

var heroCmd = &cobra.Command{
	Use:   "hero",
	Short: "Rotate the hall of fame in the terminal",
	Long: `Plays the hall of fame carousel. Commands:
  n / p   next / previous
  h       toggle hover (pauses autoplay)
  c       toggle compact layout (stops autoplay)
  r       reload the catalog and rebuild the hall of fame
  q       quit

--width is the viewport width in pixels. At or below hero.mobile_breakpoint
the carousel starts in compact layout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadLocal(cmd.Context())
		if err != nil {
			return err
		}
		items := hero.SelectHallOfFame(app.Store.All(), cfg.Home.HallOfFame)
		if len(items) == 0 {
			fmt.Println("no cars to show")
			return nil
		}
		c := hero.NewCarousel(items, hero.Options{
			Autoplay:     cfg.Hero.Autoplay,
			Interval:     cfg.Hero.Interval.Duration,
			PauseOnHover: cfg.Hero.PauseOnHover,
		})
		c.OnChange(func(i int, car models.Car) {
			printSlide(os.Stdout, i, c.Len(), car)
		})
		reload := reloadFunc(cmd.Context(), app)
		rebuild := func() ([]models.Car, error) {
			if err := reload(); err != nil {
				return nil, err
			}
			return hero.SelectHallOfFame(app.Store.All(), cfg.Home.HallOfFame), nil
		}
		return runHero(c, compactFor(heroWidth, cfg.Hero.MobileBreakpoint), rebuild, os.Stdin, os.Stdout)
	},
}

var heroWidth int

func init() {
	for _, c := range []*cobra.Command{browseCmd, heroCmd} {
		c.Flags().StringVar(&localSource, "source", "", "catalog URL or path (default: catalog.source)")
	}
	heroCmd.Flags().IntVar(&heroWidth, "width", 0, "viewport width in pixels (0 = unknown)")
}

// compactFor reports whether a viewport of width pixels gets the compact
// layout. An unknown width or a zero breakpoint never does.
func compactFor(width, breakpoint int) bool {
	return width > 0 && breakpoint > 0 && width <= breakpoint
}

func loadLocal(ctx context.Context) (*garage.App, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	local := cfg
	if localSource != "" {
		local.Catalog.Source = localSource
	}
	app := garage.NewApp(local, nil)
	if _, err := app.Loader.Load(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

// reloadFunc reloads app's catalog. A failed reload keeps the previous
// snapshot, so the session keeps browsing it.
func reloadFunc(ctx context.Context, app *garage.App) func() error {
	if ctx == nil {
		ctx = context.Background()
	}
	return func() error {
		_, err := app.Loader.Load(ctx)
		return err
	}
}

func runBrowse(b *query.Browser, reload func() error, in io.Reader, out io.Writer) error {
	printGrid(out, b.Spec(), b.Current())

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		var page query.Page
		switch cmd {
		case "":
			continue
		case "q", "quit":
			return nil
		case "n":
			p, ok := b.Next()
			if !ok {
				fmt.Fprintln(out, "last page")
			}
			page = p
		case "p":
			p, ok := b.Prev()
			if !ok {
				fmt.Fprintln(out, "first page")
			}
			page = p
		case "/":
			page = b.SetText(arg)
		case "m":
			page = b.SetManufacturer(arg)
		case "s":
			page = b.SetSeries(arg)
		case "b":
			page = b.SetBrand(arg)
		case "sort":
			mode := query.SortMode(strings.ToLower(arg))
			if !mode.Valid() {
				fmt.Fprintf(out, "unknown sort %q\n", arg)
				continue
			}
			page = b.SetSort(mode)
		case "v":
			page = b.ToggleVariantsOnly()
		case "r":
			page = b.Reset()
		case "refresh":
			if err := reload(); err != nil {
				fmt.Fprintf(out, "refresh failed: %v\n", err)
				continue
			}
			page = b.Refresh()
		default:
			if strings.HasPrefix(cmd, "/") {
				page = b.SetText(strings.TrimSpace(strings.TrimPrefix(line, "/")))
				break
			}
			fmt.Fprintf(out, "unknown command %q\n", cmd)
			continue
		}
		printGrid(out, b.Spec(), page)
	}
}

func printGrid(out io.Writer, spec query.Spec, page query.Page) {
	var active []string
	if spec.Text != "" {
		active = append(active, fmt.Sprintf("q=%q", spec.Text))
	}
	if spec.Manufacturer != "" {
		active = append(active, "manufacturer="+spec.Manufacturer)
	}
	if spec.Series != "" {
		active = append(active, "series="+spec.Series)
	}
	if spec.Brand != "" {
		active = append(active, "brand="+spec.Brand)
	}
	if spec.VariantsOnly {
		active = append(active, "variants")
	}
	active = append(active, "sort="+string(spec.Sort))
	fmt.Fprintf(out, "[%s]\n", strings.Join(active, " "))

	fmt.Fprintln(out, page.Summary())
	for _, c := range page.Items {
		fmt.Fprintf(out, "  %-6s %-28s %-18s %s\n", c.Serial, c.Name, c.VariantLabel(), c.Brand)
	}
	if !page.NoResults {
		fmt.Fprintf(out, "page %d/%d\n", page.Page+1, page.Pages)
	}
}

func runHero(c *hero.Carousel, compact bool, rebuild func() ([]models.Car, error), in io.Reader, out io.Writer) error {
	if i, car, ok := c.Current(); ok {
		printSlide(out, i, c.Len(), car)
	}
	c.SetCompact(compact)
	c.Start()
	defer c.Stop()

	var hovered bool
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		switch strings.TrimSpace(sc.Text()) {
		case "n":
			c.Next()
		case "p":
			c.Prev()
		case "h":
			hovered = !hovered
			c.Hover(hovered)
			fmt.Fprintf(out, "hover %t, autoplay running %t\n", hovered, c.Running())
		case "c":
			compact = !compact
			c.SetCompact(compact)
			fmt.Fprintf(out, "compact %t, autoplay running %t\n", compact, c.Running())
		case "r":
			items, err := rebuild()
			if err != nil {
				fmt.Fprintf(out, "refresh failed: %v\n", err)
				continue
			}
			c.Rebuild(items)
			i, car, ok := c.Current()
			if !ok {
				fmt.Fprintln(out, "no cars to show")
				continue
			}
			printSlide(out, i, c.Len(), car)
		case "q", "quit":
			return nil
		}
	}
	return sc.Err()
}

func printSlide(out io.Writer, i, n int, car models.Car) {
	fmt.Fprintf(out, "(%d/%d) %s  %s  [%s]\n", i+1, n, car.Name, car.VariantLabel(), car.BestImage())
}
