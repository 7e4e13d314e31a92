package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"checkin.net.au/checkin/security"
)

func main() {
	deviceID := flag.String("device", "dev-kiosk", "device id to embed in the token")
	locationID := flag.String("location", "", "location id the device belongs to")
	expires := flag.Int64("expires", 365*24*3600, "token lifetime in seconds")
	flag.Parse()

	secret := os.Getenv("CHECKIN_SIGNING_SECRET")
	if secret == "" {
		log.Fatal("CHECKIN_SIGNING_SECRET is not set")
	}

	token, err := security.CreateDeviceToken(&security.DeviceIdentity{
		DeviceID:   *deviceID,
		LocationID: *locationID,
	}, secret, *expires)
	if err != nil {
		log.Fatalf("failed to create device token: %v", err)
	}

	fmt.Println(token)
}
