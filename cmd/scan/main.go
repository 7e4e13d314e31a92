package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	v1 "checkin.net.au/checkin/client/v1"
)

// Smoke-test a running check-in server: submit one scan and print the toggle
// outcome the kiosk would show.
func main() {
	baseURL := flag.String("url", "http://localhost:8090", "base URL of the check-in server")
	input := flag.String("input", "", "badge or keypad input to scan")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(1)
	}

	client := v1.NewCheckinClient(*baseURL, os.Getenv("CHECKIN_DEVICE_TOKEN"))

	result, err := client.Scans.Scan(*input)
	if err != nil {
		log.Fatalf("scan failed: %v", err)
	}

	switch result.Action {
	case "checkin":
		fmt.Printf("%s checked in at %s (record %s)\n",
			result.Employee.Name, result.WorkRecord.OpenDate, result.WorkRecord.ID)
	case "checkout":
		fmt.Printf("%s checked out, worked %d minutes (record %s)\n",
			result.Employee.Name, *result.WorkedTime, result.WorkRecordID)
	default:
		fmt.Printf("unexpected action %q\n", result.Action)
	}
}
