package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/urfave/cli"

	"culinarycompass/catalog"
	"culinarycompass/handlers"
	"culinarycompass/hours"
	"culinarycompass/models"
	"culinarycompass/search"
)

var catalogFlag = cli.StringFlag{
	Name:   "catalog",
	Value:  "data/restaurants.json",
	Usage:  "path to the JSON catalog",
	EnvVar: "CATALOG_PATH",
}

var searchFlags = []cli.Flag{
	catalogFlag,
	cli.Float64Flag{Name: "lat", Value: handlers.DefaultLatitude, Usage: "user latitude"},
	cli.Float64Flag{Name: "lon", Value: handlers.DefaultLongitude, Usage: "user longitude"},
	cli.StringFlag{Name: "query", Usage: "free text matched against names and tags"},
	cli.Float64Flag{Name: "radius", Value: models.DefaultRadiusKm, Usage: "search radius in km, 0 for no limit"},
	cli.StringFlag{Name: "price", Usage: "price tier: low, mid or high"},
	cli.StringFlag{Name: "sort", Value: models.SortByDistance, Usage: "distance or rating"},
	cli.BoolFlag{Name: "open-now", Usage: "only restaurants open at the reference time"},
	cli.StringSliceFlag{Name: "cuisine", Usage: "required cuisine, repeatable"},
	cli.StringSliceFlag{Name: "flag", Usage: "required special flag, repeatable"},
	cli.StringFlag{Name: "at", Usage: "reference time of day as HH:MM (default: now)"},
}

func searchAction(c *cli.Context) error {
	now, err := referenceTime(c.String("at"), time.Now())
	if err != nil {
		return err
	}

	q := models.NewSearchQuery(models.Coordinates{Latitude: c.Float64("lat"), Longitude: c.Float64("lon")})
	q.QueryText = c.String("query")
	q.RadiusKm = c.Float64("radius")
	q.PriceRange = c.String("price")
	q.SortBy = c.String("sort")
	q.OpenNow = c.Bool("open-now")
	q.Cuisines = c.StringSlice("cuisine")
	q.SpecialFlags = c.StringSlice("flag")

	store, err := loadStore(c.String("catalog"))
	if err != nil {
		return err
	}

	results, err := search.NewService(store, search.FixedClock(now)).Search(context.Background(), q)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func validateAction(c *cli.Context) error {
	store, err := loadStore(c.String("catalog"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s: %d restaurants OK\n", c.String("catalog"), len(store.Restaurants()))
	return nil
}

func loadStore(path string) (*catalog.Store, error) {
	store := catalog.NewStore(catalog.NewFileSource(path))
	if err := store.Reload(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

// referenceTime pins today's date in base's location to the given HH:MM.
func referenceTime(raw string, base time.Time) (time.Time, error) {
	if raw == "" {
		return base, nil
	}
	tod, err := hours.ParseTimeOfDay(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at: %w", err)
	}
	y, m, d := base.Date()
	return time.Date(y, m, d, int(tod)/60, int(tod)%60, 0, 0, base.Location()), nil
}
