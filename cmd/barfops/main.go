package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"barfops/internal/catalog"
	"barfops/internal/config"
	"barfops/internal/pipeline"
	"barfops/internal/storage"
	"barfops/internal/util"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "catalog:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "price list file (xlsx|html|pdf)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		rows, err := pipeline.ExtractRowsFromFile(*input)
		must(err)
		keys := pipeline.RowsToCatalogKeys(rows)
		must(db.UpsertCatalogItems(keys))
		fmt.Printf("catalog import done rows=%d items=%d\n", len(rows), len(keys))
	case "orders:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "order export file (xlsx|html)")
		location := fs.String("location", "", "delivery zone, e.g. CABA")
		deliveryDate := fs.String("deliveryDate", "", "YYYY-MM-DD, optional")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" || strings.TrimSpace(*location) == "" {
			must(fmt.Errorf("--input and --location are required"))
		}
		rows, err := pipeline.ExtractRowsFromFile(*input)
		must(err)
		var delivery *string
		if strings.TrimSpace(*deliveryDate) != "" {
			delivery = util.StringPtr(*deliveryDate)
		}
		orders := pipeline.RowsToOrders(rows, *location, delivery, time.Now())
		for _, order := range orders {
			must(db.InsertOrder(order))
		}
		fmt.Printf("orders import done rows=%d orders=%d location=%s\n", len(rows), len(orders), *location)
	case "inventory:import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "stock export file (xlsx|html)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		rows, err := pipeline.ExtractRowsFromFile(*input)
		must(err)
		records := pipeline.RowsToLegacyRecords(rows)
		must(db.UpsertInventoryRecords(records))
		fmt.Printf("inventory import done records=%d\n", len(records))
	case "reconcile":
		svc := pipeline.NewReconcileService(db)
		summary, err := svc.ReconcileInventory()
		must(err)
		fmt.Printf("reconcile done total=%d matched=%d unmatched=%d\n", summary.Total, summary.Matched, summary.Unmatched)
	case "demand:report":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		date := fs.String("date", "", "YYYY-MM-DD, defaults to today in the business timezone")
		_ = fs.Parse(os.Args[2:])
		day := strings.TrimSpace(*date)
		if day == "" {
			offset := time.Duration(cfg.BusinessUTCOffsetHours) * time.Hour
			day = time.Now().UTC().Add(offset).Format("2006-01-02")
		}
		svc := pipeline.NewReportService(db, cfg)
		result, err := svc.DailyReport(day)
		must(err)
		fmt.Printf("demand report done day=%s locations=%d rows=%d\n", result.Day, result.Locations, result.Rows)
		rows, err := db.ListDemandRows(day)
		must(err)
		for _, row := range rows {
			fmt.Printf("  %-12s %-40s %d\n", row.Location, catalog.Display(row.Key), row.Count)
		}
	case "normalize":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		text := fs.String("text", "", "raw product line")
		option := fs.String("option", "", "selected option, optional")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*text) == "" {
			must(fmt.Errorf("--text is required"))
		}
		svc := pipeline.NewReconcileService(db)
		res, err := svc.ResolveLine(*text, *option)
		must(err)
		fmt.Printf("display: %s\n", res.Display)
		fmt.Printf("legacy:  name=%q option=%q\n", res.Legacy.Name, res.Legacy.Option)
		fmt.Printf("known:   %v\n", res.InCatalog)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: barfops <command>")
	fmt.Println("commands:")
	fmt.Println("  catalog:import --input=./data/import/precios.pdf")
	fmt.Println("  orders:import --input=./data/import/pedidos.xlsx --location=CABA [--deliveryDate=2026-08-30]")
	fmt.Println("  inventory:import --input=./data/import/stock.xlsx")
	fmt.Println("  reconcile")
	fmt.Println("  demand:report [--date=2026-08-30]")
	fmt.Println("  normalize --text=\"Box Perro Pollo 10kg\" [--option=10KG]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
