package qrcode

import (
	"fmt"
	"net/url"

	qr "github.com/skip2/go-qrcode"
)

// Generate creates a QR code PNG image for the given URL.
func Generate(link string) ([]byte, error) {
	return qr.Encode(link, qr.Medium, 256)
}

// Terminal renders the URL as a QR code made of block characters.
func Terminal(link string) (string, error) {
	q, err := qr.New(link, qr.Medium)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(false), nil
}

// WatchURL is the page a spectator opens to follow gameID.
func WatchURL(host, gameID string) string {
	return fmt.Sprintf("http://%s/?game=%s", host, url.QueryEscape(gameID))
}
