package security

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DeviceIdentity identifies a kiosk or badge scanner allowed to submit scans.
type DeviceIdentity struct {
	DeviceID   string
	LocationID string
}

type DeviceClaims struct {
	DeviceID   string `json:"deviceId"`
	LocationID string `json:"locationId"`
	jwt.RegisteredClaims
}

func CreateDeviceToken(identity *DeviceIdentity, base64Secret string, expiresInSeconds int64) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", err
	}

	claims := DeviceClaims{
		DeviceID:   identity.DeviceID,
		LocationID: identity.LocationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "checkin",
			Subject:   identity.DeviceID,
			Audience:  []string{"*.checkin.net.au"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiresInSeconds) * time.Second)),
		},
	}

	// HS256 symmetric key, shared with the web middleware.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretBytes)
}
