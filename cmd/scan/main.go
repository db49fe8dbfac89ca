package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"BumpSlide/internal/di"
	"BumpSlide/internal/domain/models"
	internalrepo "BumpSlide/internal/repository"
	"BumpSlide/internal/service/loader"
	"BumpSlide/internal/services/news"
	"BumpSlide/internal/services/quality"
	"BumpSlide/internal/services/scan"
	"BumpSlide/internal/usecase"
	"BumpSlide/pkg/config"
	applogger "BumpSlide/pkg/logger"
	pkgmetrics "BumpSlide/pkg/metrics"
	"BumpSlide/pkg/util"
)

func main() {
	var (
		file   = flag.String("file", "", "path to minute-bar CSV file")
		symbol = flag.String("symbol", "SPY", "instrument symbol")

		bumpLen    = flag.Int("bump-len", 5, "bump length in minutes")
		bumpThresh = flag.Float64("bump-thresh", 0.05, "bump threshold")
		bumpMode   = flag.String("bump-mode", "percent", "bump threshold mode (percent|absolute)")

		slideLen    = flag.Int("slide-len", 3, "slide length in minutes")
		slideThresh = flag.Float64("slide-thresh", 0.05, "slide threshold")
		slideMode   = flag.String("slide-mode", "percent", "slide threshold mode (percent|absolute)")

		minBumpVol  = flag.Int64("min-bump-vol", 0, "minimum volume during bump")
		minSlideVol = flag.Int64("min-slide-vol", 0, "minimum volume during slide")

		startTime = flag.String("start-time", "09:30", "filter start time (HH:MM), empty disables")
		endTime   = flag.String("end-time", "16:00", "filter end time (HH:MM), empty disables")
		days      = flag.String("days", "Monday,Tuesday,Wednesday,Thursday,Friday", "comma-separated weekday names, empty disables")

		attachNews = flag.Bool("news", false, "print Google News links for top matches")
		checkOnly  = flag.Bool("check", false, "print a data quality report instead of scanning")
		doImport   = flag.Bool("import", false, "import the CSV into ClickHouse instead of scanning")
		configPath = flag.String("config", "config/config.yaml", "config file path (import mode)")
		maxPrint   = flag.Int("top", 5, "number of matches to print")
	)
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}

	l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stderr"})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	ld := loader.NewCSVLoader(l)

	if *doImport {
		runImport(ld, l, *configPath, *file, *symbol)
		return
	}

	fmt.Printf("Loading data from %s...\n", *file)
	bars, err := ld.LoadFile(*file, *symbol)
	if err != nil {
		log.Fatalf("load: %v", err)
	}

	if *checkOnly {
		printQuality(bars)
		return
	}

	params := scan.Params{
		BumpLen:        *bumpLen,
		BumpThreshold:  *bumpThresh,
		BumpMode:       scan.Mode(*bumpMode),
		SlideLen:       *slideLen,
		SlideThreshold: *slideThresh,
		SlideMode:      scan.Mode(*slideMode),
		MinBumpVolume:  *minBumpVol,
		MinSlideVolume: *minSlideVol,
		Days:           splitList(*days),
	}
	if *startTime != "" && *endTime != "" {
		tr, err := util.ParseClockRange(*startTime, *endTime)
		if err != nil {
			log.Fatalf("time range: %v", err)
		}
		params.TimeRange = &tr
	}

	fmt.Printf("Parameters: Bump=%dm (%v %s), Slide=%dm (%v %s)\n",
		*bumpLen, *bumpThresh, *bumpMode, *slideLen, *slideThresh, *slideMode)

	progress := func(message string, percent int) {
		fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", percent, message)
	}
	matches, stats, err := scan.Scan(bars, params, progress)
	if err != nil {
		log.Fatalf("scan: %v", err)
	}

	fmt.Printf("\nFound %d matches.\n", len(matches))
	fmt.Printf("Bumps: %d, hits: %d, misses: %d, hit ratio: %.2f%%\n",
		stats.TotalBumps, stats.Hits, stats.Misses, stats.HitRatio)

	if len(matches) == 0 {
		return
	}
	top := *maxPrint
	if top > len(matches) {
		top = len(matches)
	}
	fmt.Printf("\nTop %d Matches:\n", top)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "start\tbump_change\tslide_change\tbump_vol\tslide_vol")
	for _, m := range matches[:top] {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%d\t%d\n",
			m.Start.Format("2006-01-02 15:04"), m.BumpChange, m.SlideChange, m.BumpVolume, m.SlideVolume)
	}
	w.Flush()

	if *attachNews {
		fmt.Println("\nNews:")
		for _, m := range matches[:top] {
			fmt.Println(" ", news.SearchURL(m.Start, *symbol))
		}
	}
}

// runImport loads the CSV and batches it into ClickHouse using the service
// configuration.
func runImport(ld *loader.CSVLoader, l *applogger.Logger, configPath, file, symbol string) {
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	chClient, err := di.ProvideClickHouseClient(cfg)
	if err != nil {
		log.Fatalf("clickhouse: %v", err)
	}
	defer chClient.Close()

	store := internalrepo.NewClickHouseStorage(chClient.DB(), cfg.ClickHouse.Database+".bars_1m")
	proc := usecase.NewBarProcessor(nil, store, pkgmetrics.New(), "clickhouse", cfg.Backend.BatchSize, cfg.Backend.BatchTimeout)
	im := usecase.NewImporter(ld, proc, l)

	n, err := im.ImportFile(context.Background(), file, symbol)
	if err != nil {
		log.Fatalf("import: %v", err)
	}
	fmt.Printf("Imported %d bars into %s.bars_1m\n", n, cfg.ClickHouse.Database)
}

func printQuality(bars []models.Bar) {
	rep := quality.Report(bars)
	fmt.Printf("Rows: %d\n", rep.Rows)
	fmt.Printf("Duplicate rows: %d\n", rep.DuplicateRows)
	fmt.Printf("Rows with unusable fields: %d\n", rep.MissingFields)
	fmt.Printf("Intraday gaps: %d\n", len(rep.IntradayGaps))
	for _, g := range rep.IntradayGaps {
		fmt.Printf("  %s -> %s (%d min)\n",
			g.Start.Format("2006-01-02 15:04"), g.End.Format("15:04"), g.DurationMinutes)
	}
	fmt.Printf("Incomplete days: %d (missing %d session minutes)\n", len(rep.IncompleteDays), rep.MissingMinutes)
	for _, d := range rep.IncompleteDays {
		fmt.Printf("  %s: %d bars, %.1f%% complete\n", d.Date, d.ActualCount, d.Completeness)
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
