// Package telemetry uploads the cycle's sensor reading to the ThingSpeak
// logging service.
package telemetry

import (
	"net/url"
	"strconv"

	"github.com/effevee/weather-station/config"
	"github.com/effevee/weather-station/errcode"
	"github.com/effevee/weather-station/sensors"
	"github.com/effevee/weather-station/web"
)

// Getter is the HTTP collaborator (see package web).
type Getter interface {
	Get(url string) (status int, body []byte, err error)
}

type Uploader struct {
	HTTP Getter
}

// Upload pushes temperature, humidity, luminance and pressure as the
// channel's four fields in a single GET. A non-success status is fatal for
// the cycle.
func (u *Uploader) Upload(rd sensors.Reading, cfg *config.Config) error {
	q := url.Values{}
	q.Set("api_key", cfg.ThingSpeakWriteKey)
	q.Set("field1", formatField(rd.AM2320Temp))
	q.Set("field2", formatField(rd.AM2320Humidity))
	q.Set("field3", formatField(rd.BH1750Luminance))
	q.Set("field4", formatField(rd.BMP180Pressure))

	status, _, err := u.HTTP.Get(cfg.ThingSpeakURL + "?" + q.Encode())
	if err != nil {
		return &errcode.E{C: errcode.RemoteService, Op: "telemetry.upload", Err: err}
	}
	if status >= 400 {
		return &web.RemoteServiceError{Endpoint: "thingspeak", Status: status}
	}
	return nil
}

func formatField(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
