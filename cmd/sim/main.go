// Command sim runs a scenario file through the simulation offline and
// prints the report, without the HTTP server or the runs database.
//
//	sim -events scenarios/demo.txt
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"ridesim/internal/simulation"
)

func main() {
	eventsPath := flag.String("events", "", "path to the scenario event file")
	flag.Parse()

	if *eventsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	events, err := simulation.ParseEventFile(*eventsPath)
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}

	result := simulation.NewSimulation().Run(events)

	fmt.Printf("events processed:      %d\n", result.EventsProcessed)
	fmt.Printf("rider wait time:       %.2f\n", result.Report.RiderWaitTime)
	fmt.Printf("driver total distance: %.2f\n", result.Report.DriverTotalDistance)
	fmt.Printf("driver ride distance:  %.2f\n", result.Report.DriverRideDistance)
}
