// Command validate loads a catalog and reports the data issues the dashboard
// tolerates: unparseable date_added values, unknown content types, cells
// filled with the Unknown sentinel, and duplicate show ids. Fatal input errors
// (missing file, missing columns, malformed CSV) exit with status 1.
//
// Usage:
//
//	go run ./cmd/validate -input netflix_titles.csv
//	go run ./cmd/validate -input netflix_titles.xlsx -sheet titles -strict
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/couchcryptid/catalog-dashboard/internal/adapter/source"
	"github.com/couchcryptid/catalog-dashboard/internal/domain"
)

// phase tracks the issues found by one check.
type phase struct {
	name   string
	issues []string
	// info phases never fail, even in strict mode.
	info bool
}

func (p *phase) issuef(format string, args ...any) {
	p.issues = append(p.issues, fmt.Sprintf(format, args...))
}

func (p *phase) clean() bool { return len(p.issues) == 0 }

func main() {
	input := flag.String("input", os.Getenv("CATALOG_PATH"), "catalog file (.csv, .tsv, .xlsx)")
	sheet := flag.String("sheet", os.Getenv("CATALOG_SHEET"), "worksheet name for workbooks (default: first sheet)")
	strict := flag.Bool("strict", false, "exit 1 when any data issue is found")
	maxIssues := flag.Int("max-issues", 20, "issues listed per check (0 lists all)")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *input, *sheet, *strict, *maxIssues); code != 0 {
		os.Exit(code)
	}
}

func run(w io.Writer, input, sheet string, strict bool, maxIssues int) int {
	fmt.Fprintln(w, "=== Catalog Data Validation ===")
	fmt.Fprintln(w)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	extractor, err := source.Open(input, sheet, logger)
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}
	raw, err := extractor.Extract(context.Background())
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}

	catalog := domain.Normalize(*raw)

	phases := []*phase{
		checkDates(catalog),
		checkTypes(catalog),
		checkShowIDs(catalog),
		checkFills(catalog),
	}

	// ── Report results ──
	failed := false
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		switch {
		case p.clean():
		case p.info:
			status = fmt.Sprintf("\033[36mINFO (%d)\033[0m", len(p.issues))
		default:
			status = fmt.Sprintf("\033[33mWARN (%d issues)\033[0m", len(p.issues))
			if strict {
				failed = true
			}
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	tc := domain.ComputeTypeCounts(catalog)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d (%d movies, %d TV shows)\n", catalog.Len(), tc.Movies, tc.TVShows)

	for _, p := range phases {
		if p.clean() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, issue := range p.issues {
			if maxIssues > 0 && i == maxIssues {
				fmt.Fprintf(w, "  ... %d more\n", len(p.issues)-maxIssues)
				break
			}
			fmt.Fprintf(w, "  [%d] %s\n", i+1, issue)
		}
	}

	if failed {
		fmt.Fprintln(w, "\nValidation FAILED.")
		return 1
	}
	fmt.Fprintln(w, "\nCatalog is usable.")
	return 0
}

// ── Checks ──

func checkDates(catalog domain.NormalizedCatalog) *phase {
	p := &phase{name: "Dates (date_added)"}
	for _, issue := range catalog.UnparseableDates {
		if issue.Text == domain.Unknown {
			p.issuef("line %d: missing", issue.Line)
			continue
		}
		p.issuef("line %d: %q does not match \"Month D, YYYY\"", issue.Line, issue.Text)
	}
	return p
}

func checkTypes(catalog domain.NormalizedCatalog) *phase {
	p := &phase{name: "Content types (type)"}
	for _, tag := range sortedKeys(catalog.UnknownTypeTags) {
		label := fmt.Sprintf("%q", tag)
		if tag == "" {
			label = "missing"
		}
		p.issuef("%s: %d row(s) left out of the type split", label, catalog.UnknownTypeTags[tag])
	}
	return p
}

func checkShowIDs(catalog domain.NormalizedCatalog) *phase {
	p := &phase{name: "Show ids (show_id)"}
	first := make(map[string]int)
	for _, r := range catalog.Records {
		id, ok := r.ShowID.Get()
		if !ok {
			continue
		}
		if line, dup := first[id]; dup {
			p.issuef("line %d: %q already used on line %d", r.Line, id, line)
			continue
		}
		first[id] = r.Line
	}
	return p
}

func checkFills(catalog domain.NormalizedCatalog) *phase {
	p := &phase{name: "Missing values filled with Unknown", info: true}
	for _, col := range domain.FillColumns {
		if n := catalog.SentinelFills[col]; n > 0 {
			p.issuef("%s: %d", col, n)
		}
	}
	return p
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
