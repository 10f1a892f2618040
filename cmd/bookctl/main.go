// bookctl drives the booking workflow from the command line: it lists
// providers, shows a provider's classified morning/afternoon slots for a
// day, and books a chosen hour. It stands in for the mobile screens.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/chairtime/booking-flow/internal/app/bootstrap"
	"github.com/chairtime/booking-flow/internal/booking"
	appconfig "github.com/chairtime/booking-flow/internal/config"
	"github.com/chairtime/booking-flow/internal/slots"
	"github.com/chairtime/booking-flow/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	providerID := flag.String("provider", "", "provider id to book with (defaults to the first listed)")
	dateStr := flag.String("date", "", "calendar day, YYYY-MM-DD (defaults to today)")
	hour := flag.Int("hour", -1, "hour to book; omit to only show availability")
	flag.Parse()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel).Component("bookctl")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	api := bootstrap.BuildAPIClient(cfg, logger)
	dir := bootstrap.BuildDirectory(ctx, cfg, api, logger)

	providers, err := dir.Providers(ctx)
	if err != nil {
		logger.Error("provider list fetch failed", "error", err)
		os.Exit(1)
	}
	if len(providers) == 0 {
		fmt.Println("No providers available yet.")
		return
	}

	fmt.Println("Providers:")
	for _, p := range providers {
		fmt.Printf("  %s  %s\n", p.ID, p.Name)
	}

	entry := *providerID
	if entry == "" {
		entry = providers[0].ID
	}
	if !dir.Has(entry) {
		logger.Error("provider not in directory", "provider_id", entry)
		os.Exit(1)
	}

	date := time.Now()
	if *dateStr != "" {
		date, err = time.ParseInLocation("2006-01-02", *dateStr, time.Local)
		if err != nil {
			logger.Error("invalid -date, want YYYY-MM-DD", "error", err)
			os.Exit(1)
		}
	}

	updates := make(chan booking.Update, 1)
	flow := booking.NewFlow(api, booking.NewSubmitter(api, logger, booking.WithSubmitTimeout(cfg.SubmitTimeout)),
		entry, date, logger,
		booking.WithUpdateListener(func(u booking.Update) {
			select {
			case updates <- u:
			default:
			}
		}),
	)
	defer flow.Close()
	flow.Start(ctx)

	select {
	case u := <-updates:
		printDay(entry, date, u.Day)
	case <-ctx.Done():
		logger.Error("availability fetch timed out")
		os.Exit(1)
	}

	if *hour < 0 {
		return
	}

	flow.SelectHour(*hour)
	if !flow.SubmitEnabled() {
		logger.Error("submit not enabled", "hour", *hour)
		os.Exit(1)
	}

	conf, err := flow.Submit(ctx)
	if err != nil {
		logger.Error("booking failed, selection kept for retry", "error", err)
		os.Exit(1)
	}
	fmt.Printf("\nBooked: %s\n", conf.FormatLong())
}

func printDay(providerID string, date time.Time, day slots.Day) {
	fmt.Printf("\nAvailability for %s on %s:\n", providerID, date.Format("2006-01-02"))
	printGroup("Morning", day.Morning)
	printGroup("Afternoon", day.Afternoon)
}

func printGroup(name string, group []slots.DisplaySlot) {
	fmt.Printf("  %s:\n", name)
	if len(group) == 0 {
		fmt.Println("    (no slots)")
		return
	}
	for _, s := range group {
		marker := " "
		if !s.Available {
			marker = "x"
		}
		fmt.Printf("    [%s] %s\n", marker, s.Label)
	}
}
