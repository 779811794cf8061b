package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/music-events/internal/calendar"
	"github.com/pfrederiksen/music-events/internal/event"
	"github.com/pfrederiksen/music-events/internal/scraper"
)

func main() {
	// Use the RA placeholder listings for next Saturday so no API keys are needed
	now := time.Now()
	saturday := now.AddDate(0, 0, (int(time.Saturday)-int(now.Weekday())+7)%7)
	q := event.Query{Location: "London", Genre: "Techno", Date: saturday.Format(event.DateLayout)}

	icsContent := calendar.GenerateICS(scraper.MockEvents(q))

	// Write to file (owner read/write only for security)
	filename := "test-music-events.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
