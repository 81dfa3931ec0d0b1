// Command oracle-probe is a one-shot debugging tool: it contacts an
// appliance directly, lists its clients and prints each client's query
// count for today, without going through the daemon or the store.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/oracledns/oracle/internal/adguard"
	"github.com/oracledns/oracle/internal/aggregate"
)

func main() {
	var (
		host     = flag.String("host", "127.0.0.1:3000", "Appliance HOST[:PORT] or full URL")
		username = flag.String("username", "", "Basic auth username")
		password = flag.String("password", "", "Basic auth password")
		timeout  = flag.Duration("timeout", 15*time.Second, "Overall timeout")
		asJSON   = flag.Bool("json", false, "Emit JSON instead of a table")
		verbose  = flag.Bool("verbose", false, "Log HTTP traffic details")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := adguard.New(*host, *username, *password, logger)
	records, err := client.Clients(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "oracle-probe error: %v\n", err)
		os.Exit(1)
	}

	today := time.Now()
	rows := make([]row, 0, len(records))
	for _, rec := range records {
		searchKey := rec.IP
		if searchKey == "" {
			searchKey = rec.Identifier()
		}
		entries := client.Queries(ctx, searchKey)
		rows = append(rows, row{
			ID:           rec.Identifier(),
			Name:         rec.Name,
			IP:           rec.IP,
			QueriesToday: aggregate.CountToday(entries, today),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			fmt.Fprintf(os.Stderr, "oracle-probe error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("%s  %d clients\n", client.BaseURL(), len(rows))
	for _, r := range rows {
		fmt.Printf("%-24s  %-16s  %5d queries today\n", r.ID, r.IP, r.QueriesToday)
	}
}

type row struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	IP           string `json:"ip,omitempty"`
	QueriesToday int    `json:"queries_today"`
}
