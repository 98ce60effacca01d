package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"osusync/beatmap"
	appConfig "osusync/config"
	"osusync/database"
	"osusync/discovery"
	"osusync/engine"
	"osusync/sentry"
	"osusync/spotify"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debugf("No .env file loaded: %v", err)
	}
	setupLogging()
	appConfig.NewConfig()
	sentry.Init()
	defer sentry.Flush()

	if err := run(); err != nil {
		sentry.ReportError(err)
		log.Fatal(err)
	}
}

func setupLogging() {
	log.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		TimestampFormat: time.RFC3339,
	})
	if level, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func run() error {
	var (
		pathFlag     = flag.String("path", "", "beatmap file or directory (default: auto-discover the osu! Songs folder)")
		playlistFlag = flag.String("playlist", "", "target playlist name (default: \""+engine.DefaultPlaylistName+"\")")
		historyFlag  = flag.Int("history", 0, "print the N most recent history entries and exit")
	)
	flag.Parse()

	cfg := appConfig.Config

	var history *database.Database
	if cfg.Options.DBPath != "" {
		var err error
		history, err = database.New(cfg.Options.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer history.Close()
	}

	if *historyFlag > 0 {
		if history == nil {
			return errors.New("history requires OSUSYNC_DB_PATH to be set")
		}
		return printHistory(history, *historyFlag)
	}

	inputPath := *pathFlag
	if inputPath == "" {
		inputPath = cfg.Options.SongsDir
	}
	if inputPath == "" {
		songsDir, ok := discovery.Locate(discovery.Options{})
		if !ok {
			return errors.New("could not discover the osu! Songs folder; pass -path explicitly")
		}
		log.Infof("Discovered osu! Songs folder: %s", songsDir)
		inputPath = songsDir
	}

	files, err := beatmap.FindFiles(inputPath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .osu files found under %s", inputPath)
	}
	log.Infof("Found %d beatmap files", len(files))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := spotify.NewClient(ctx,
		cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.RefreshToken,
		cfg.Spotify.SearchLimit)
	if err != nil {
		return fmt.Errorf("failed to create Spotify client: %w", err)
	}

	playlistName := *playlistFlag
	if playlistName == "" {
		playlistName = cfg.Options.PlaylistName
	}

	eng := engine.New(client, client, engine.Options{
		PlaylistName: playlistName,
		Delay:        time.Duration(cfg.Options.RequestDelayMs) * time.Millisecond,
		Progress: func(index, total int, result engine.ProcessingResult) {
			fmt.Printf("[%d/%d] %s: %s\n", index+1, total, result.Outcome, result.FilePath)
		},
	})

	report, runErr := eng.Run(ctx, files)
	if report != nil {
		printReport(report)
		if history != nil {
			recordReport(history, report)
		}
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

func printReport(report *engine.BatchReport) {
	fmt.Println("\n=== Sync report ===")
	fmt.Printf("Added:             %d\n", report.Added)
	fmt.Printf("Duplicate skipped: %d\n", report.Duplicates)
	fmt.Printf("Not found:         %d\n", report.NotFound)
	fmt.Printf("Errors:            %d\n", report.Errors)

	for _, result := range report.Results {
		switch result.Outcome {
		case engine.OutcomeAdded:
			fmt.Printf("  + %s - %s\n    %s\n", result.Candidate.Title, result.Candidate.Artist, result.Candidate.URL)
		case engine.OutcomeDuplicateSkipped:
			fmt.Printf("  = %s - %s (already in playlist)\n", result.Candidate.Title, result.Candidate.Artist)
		case engine.OutcomeNotFound:
			fmt.Printf("  ? %s - %s (no match)\n", result.Metadata.Title, result.Metadata.Artist)
		case engine.OutcomeError:
			fmt.Printf("  ! %s: %v\n", result.FilePath, result.Err)
		}
	}
}

func recordReport(history *database.Database, report *engine.BatchReport) {
	for _, result := range report.Results {
		var trackID, trackURL, detail string
		if result.Candidate != nil {
			trackID = result.Candidate.ID
			trackURL = result.Candidate.URL
		}
		if result.Err != nil {
			detail = result.Err.Error()
		}
		err := history.RecordResult(result.FilePath, result.Metadata.Title, result.Metadata.Artist,
			trackID, trackURL, string(result.Outcome), detail)
		if err != nil {
			log.Warnf("Failed to record history row for %s: %v", result.FilePath, err)
		}
	}
}

func printHistory(history *database.Database, limit int) error {
	records, err := history.GetRecent(limit)
	if err != nil {
		return err
	}
	counts, err := history.CountByOutcome()
	if err != nil {
		return err
	}

	for _, c := range counts {
		fmt.Printf("%-18s %d\n", c.Outcome+":", c.Count)
	}
	fmt.Println()
	for _, r := range records {
		fmt.Printf("%s  %-18s %s - %s\n", r.ProcessedAt.Format(time.RFC3339), r.Outcome, r.Title, r.Artist)
	}
	return nil
}
