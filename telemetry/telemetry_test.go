package telemetry

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/effevee/weather-station/config"
	"github.com/effevee/weather-station/errcode"
	"github.com/effevee/weather-station/sensors"
	"github.com/effevee/weather-station/web"
)

type scripted struct {
	status int
	err    error
	urls   []string
}

func (s *scripted) Get(u string) (int, []byte, error) {
	s.urls = append(s.urls, u)
	return s.status, nil, s.err
}

func fixtureReading() sensors.Reading {
	return sensors.Reading{
		AM2320Temp: 21.4, AM2320Humidity: 48,
		BMP180Temp: 22.1, BMP180Pressure: 1013.6, BMP180Altitude: 57,
		BH1750Luminance: 312,
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.ThingSpeakWriteKey = "writekey"
	return cfg
}

func TestUpload(t *testing.T) {
	get := &scripted{status: 200}
	u := &Uploader{HTTP: get}

	if err := u.Upload(fixtureReading(), testConfig()); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(get.urls) != 1 {
		t.Fatalf("requests = %d, want 1", len(get.urls))
	}

	req, err := url.Parse(get.urls[0])
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if !strings.HasPrefix(get.urls[0], "https://api.thingspeak.com/update?") {
		t.Fatalf("unexpected endpoint: %s", get.urls[0])
	}
	q := req.Query()
	want := map[string]string{
		"api_key": "writekey",
		"field1":  "21.4",
		"field2":  "48",
		"field3":  "312",
		"field4":  "1013.6",
	}
	for k, v := range want {
		if q.Get(k) != v {
			t.Errorf("query %s = %q, want %q", k, q.Get(k), v)
		}
	}
}

func TestUploadNonSuccessStatus(t *testing.T) {
	get := &scripted{status: 400}
	err := (&Uploader{HTTP: get}).Upload(fixtureReading(), testConfig())

	var rse *web.RemoteServiceError
	if !errors.As(err, &rse) {
		t.Fatalf("expected RemoteServiceError, got %v", err)
	}
	if rse.Endpoint != "thingspeak" || rse.Status != 400 {
		t.Fatalf("unexpected detail: %+v", rse)
	}
}

func TestUploadTransportFailure(t *testing.T) {
	get := &scripted{err: errors.New("no route to host")}
	err := (&Uploader{HTTP: get}).Upload(fixtureReading(), testConfig())

	if err == nil {
		t.Fatal("expected error")
	}
	if errcode.Of(err) != errcode.RemoteService {
		t.Fatalf("error code = %q", errcode.Of(err))
	}
}
