// Command genmock writes a deterministic synthetic media catalog for demos and
// test fixtures. The output has the standard twelve columns and, on purpose,
// a share of missing cells, dates in the wrong format and unknown content
// types, so every soft-failure path of the dashboard is exercised.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/catalog.csv -rows 500
//	go run ./cmd/genmock -out data/mock/catalog.xlsx -seed 7
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/catalog-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

var header = []string{
	domain.ColumnShowID, domain.ColumnType, domain.ColumnTitle, domain.ColumnDirector,
	domain.ColumnCast, domain.ColumnCountry, domain.ColumnDateAdded, domain.ColumnReleaseYear,
	domain.ColumnRating, domain.ColumnDuration, domain.ColumnListedIn, domain.ColumnDescription,
}

var (
	countries = []string{
		"United States", "United States", "United States", "India", "India",
		"United Kingdom", "Japan", "South Korea", "Canada", "Spain", "France",
		"Mexico", "Egypt", "Nigeria", "Brazil", "United States, India",
	}
	ratings   = []string{"TV-MA", "TV-14", "TV-PG", "R", "PG-13", "PG", "TV-Y7"}
	genres    = []string{"Dramas", "Comedies", "Documentaries", "International TV Shows", "Crime TV Shows", "Kids' TV", "Action & Adventure"}
	firsts    = []string{"Ana", "Kofi", "Mei", "Ravi", "Sofia", "Tomas", "Yuki", "Zara"}
	lasts     = []string{"Okafor", "Tanaka", "Gerima", "Leclercq", "Moreno", "Sharma", "Kim", "Brown"}
	titleA    = []string{"Blood", "Silent", "Last", "Hidden", "Golden", "Broken", "Midnight", "Northern"}
	titleB    = []string{"Water", "Kingdom", "Road", "Garden", "Signal", "Harbor", "Letters", "Lights"}
	oddTypes  = []string{"Documentary", "Short", ""}
	badDates  = []string{"2021-09-24", "Sep 24, 2021", "24/09/2021", "September 24 2021"}
	startDate = time.Date(2008, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// mockOptions controls the share of degraded cells, each in [0, 1].
type mockOptions struct {
	missing float64
	badDate float64
	oddType float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path (.csv or .xlsx)")
	rows := flag.Int("rows", 500, "number of titles")
	seed := flag.Uint64("seed", 42, "random seed")
	missing := flag.Float64("missing", 0.08, "share of missing optional cells")
	badDate := flag.Float64("bad-dates", 0.02, "share of date_added values in a wrong format")
	oddType := flag.Float64("odd-types", 0.01, "share of rows with an unknown type tag")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if err := checkOptions(*rows, mockOptions{missing: *missing, badDate: *badDate, oddType: *oddType}); err != nil {
		flag.Usage()
		return err
	}

	records := generate(*rows, *seed, mockOptions{missing: *missing, badDate: *badDate, oddType: *oddType})

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	var err error
	switch ext := strings.ToLower(filepath.Ext(*out)); ext {
	case ".csv":
		err = writeCSV(*out, records)
	case ".xlsx":
		err = writeXLSX(*out, records)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}

	log.Printf("wrote %d titles to %s", len(records), *out)
	printStats(records)
	return nil
}

// checkOptions rejects a negative row count and rates outside [0, 1].
func checkOptions(rows int, opts mockOptions) error {
	if rows < 0 {
		return fmt.Errorf("invalid -rows %d: must be zero or more", rows)
	}
	for _, r := range []struct {
		flag string
		v    float64
	}{
		{"-missing", opts.missing},
		{"-bad-dates", opts.badDate},
		{"-odd-types", opts.oddType},
	} {
		if r.v < 0 || r.v > 1 {
			return fmt.Errorf("invalid %s %g: must be between 0 and 1", r.flag, r.v)
		}
	}
	return nil
}

// generate builds rows in header order. The same seed always yields the same
// catalog.
func generate(n int, seed uint64, opts mockOptions) [][]string {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pick := func(xs []string) string { return xs[rng.IntN(len(xs))] }
	maybe := func(v string) string {
		if rng.Float64() < opts.missing {
			return ""
		}
		return v
	}
	person := func() string { return pick(firsts) + " " + pick(lasts) }

	span := int(time.Date(2021, time.September, 25, 0, 0, 0, 0, time.UTC).Sub(startDate).Hours() / 24)

	records := make([][]string, 0, n)
	for i := range n {
		typ := domain.TypeMovie
		duration := strconv.Itoa(60+rng.IntN(120)) + " min"
		if rng.IntN(10) < 3 {
			typ = domain.TypeTVShow
			seasons := 1 + rng.IntN(5)
			duration = strconv.Itoa(seasons) + " Season"
			if seasons > 1 {
				duration += "s"
			}
		}
		if rng.Float64() < opts.oddType {
			typ = pick(oddTypes)
		}

		// Skew additions toward recent years, as streaming catalogs grew.
		day := int(float64(span) * (1 - rng.Float64()*rng.Float64()))
		added := startDate.AddDate(0, 0, day)
		dateAdded := added.Format(domain.DateAddedLayout)
		if rng.Float64() < opts.badDate {
			dateAdded = pick(badDates)
		}

		cast := make([]string, 1+rng.IntN(3))
		for j := range cast {
			cast[j] = person()
		}

		records = append(records, []string{
			"s" + strconv.Itoa(i+1),
			typ,
			pick(titleA) + " " + pick(titleB),
			maybe(person()),
			maybe(strings.Join(cast, ", ")),
			maybe(pick(countries)),
			maybe(dateAdded),
			strconv.Itoa(added.Year() - rng.IntN(15)),
			maybe(pick(ratings)),
			maybe(duration),
			maybe(pick(genres)),
			maybe("A synthetic title for dashboard fixtures."),
		})
	}
	return records
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return f.Close()
}

func writeXLSX(path string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "titles"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := rec
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func printStats(records [][]string) {
	raw := domain.NewRawCatalog(header)
	for i, rec := range records {
		raw.AddRow(i+2, rec)
	}
	catalog := domain.Normalize(*raw)
	tc := domain.ComputeTypeCounts(catalog)

	fmt.Printf("\n%-22s %d\n", "movies", tc.Movies)
	fmt.Printf("%-22s %d\n", "tv shows", tc.TVShows)
	fmt.Printf("%-22s %d\n", "unparseable dates", len(catalog.UnparseableDates))
	fmt.Printf("%-22s %d\n", "missing countries", catalog.SentinelFills[domain.ColumnCountry])
	for _, yc := range domain.ComputeYearlyTrend(catalog, domain.DefaultViewOptions().MinYear) {
		fmt.Printf("%-22s %d\n", "added in "+strconv.Itoa(yc.Year), yc.Count)
	}
}
