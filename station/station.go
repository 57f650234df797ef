// Package station sequences one wake-to-sleep cycle of the weather station:
// network join, time sync, forecast fetch, sensor read, display render,
// telemetry upload, then the sleep decision. It owns the single error
// boundary for the whole cycle: the first failing step abandons the rest,
// lights the fault indicator, and the station still reaches deep sleep (or,
// with the debug input asserted, stays powered).
package station

import (
	"fmt"
	"time"

	"github.com/effevee/weather-station/clock"
	"github.com/effevee/weather-station/config"
	"github.com/effevee/weather-station/errcode"
	"github.com/effevee/weather-station/forecast"
	"github.com/effevee/weather-station/sensors"
)

const (
	faultFlashes  = 3
	faultInterval = 500 * time.Millisecond
	joinPoll      = time.Second
	sleepGrace    = 2 * time.Second
)

// Radio joins the local WiFi network.
type Radio interface {
	Connect(ssid, password string) error
	Connected() bool
	Addr() string
}

// OutputPin drives the fault indicator; the active level comes from config.
type OutputPin interface {
	Set(level bool)
}

// InputPin reads the debug input; asserted means pulled low.
type InputPin interface {
	Get() bool
}

// Sleeper enters deep low-power sleep. Waking is equivalent to a cold boot
// with the RTC preserved.
type Sleeper interface {
	DeepSleep(ms int64)
}

// Per-step collaborators, satisfied by the concrete packages.

type ForecastService interface {
	Fetch(cfg *config.Config) ([]forecast.Day, error)
}

type SensorService interface {
	Read(cfg *config.Config) (sensors.Reading, error)
}

type Renderer interface {
	Show(cfg *config.Config, days []forecast.Day, rd sensors.Reading, now time.Time) error
}

type UploadService interface {
	Upload(rd sensors.Reading, cfg *config.Config) error
}

// Station wires one cycle's collaborators. Sleep is the timed-wait hook for
// fault flashing, join polling and the pre-sleep grace; nil means time.Sleep.
type Station struct {
	Config *config.Config

	Radio     Radio
	RTC       clock.RTC
	Time      clock.Source
	Forecast  ForecastService
	Sensors   SensorService
	Display   Renderer
	Telemetry UploadService

	Fault OutputPin
	Debug InputPin
	Power Sleeper

	Sleep func(time.Duration)
}

// Run executes one full cycle. A step failure is caught here, once: it is
// logged, flashed on the fault indicator, and never prevents the sleep
// decision.
func (s *Station) Run() {
	if err := s.cycle(); err != nil {
		fmt.Printf("cycle aborted: %v [%s]\n", err, errcode.Of(err))
		s.indicateFault()
	}

	if s.debugOn() {
		fmt.Println("debug mode detected, staying powered")
		return
	}

	fmt.Printf("going into deepsleep for %d seconds...\n", int64(s.Config.Interval.Seconds()))
	s.wait(sleepGrace)
	s.Power.DeepSleep(s.Config.Interval.Milliseconds())
}

func (s *Station) cycle() error {
	if err := s.joinNetwork(); err != nil {
		return err
	}

	fmt.Println("synchronizing RTC to local time")
	if err := clock.Synchronize(s.RTC, s.Time, s.Config); err != nil {
		return err
	}
	if s.debugOn() {
		fmt.Println("local time:", s.RTC.Now().Format("2006-01-02 15:04:05"))
	}

	fmt.Println("getting weather data")
	days, err := s.Forecast.Fetch(s.Config)
	if err != nil {
		return err
	}

	fmt.Println("getting sensor readings")
	rd, err := s.Sensors.Read(s.Config)
	if err != nil {
		return err
	}
	if s.debugOn() {
		unit := s.Config.Unit.Suffix()
		fmt.Printf("AM2320    T: %.1f %s - H: %.1f %%\n", rd.AM2320Temp, unit, rd.AM2320Humidity)
		fmt.Printf("BMP180    T: %.1f %s - P: %.1f hPa - A: %.0f m\n", rd.BMP180Temp, unit, rd.BMP180Pressure, rd.BMP180Altitude)
		fmt.Printf("BH1750    L: %.0f lux\n", rd.BH1750Luminance)
	}

	fmt.Println("updating display")
	if err := s.Display.Show(s.Config, days, rd, s.RTC.Now()); err != nil {
		return err
	}

	fmt.Println("uploading sensor readings")
	return s.Telemetry.Upload(rd, s.Config)
}

// joinNetwork connects to the configured network and polls the link state
// once per second, bounded by MaxJoinTries. This is the only retried
// operation in the whole cycle.
func (s *Station) joinNetwork() error {
	cfg := s.Config
	if s.Radio.Connected() {
		return nil
	}

	fmt.Println("connecting to WiFi network...")
	if err := s.Radio.Connect(cfg.SSID, cfg.Password); err != nil {
		return &errcode.E{C: errcode.NetworkJoinFailed, Op: "station.join", Err: err}
	}

	for tries := 0; !s.Radio.Connected() && tries < cfg.MaxJoinTries; tries++ {
		fmt.Print(".")
		s.wait(joinPoll)
	}
	fmt.Println()

	if !s.Radio.Connected() {
		return &errcode.E{C: errcode.NetworkJoinFailed, Op: "station.join",
			Msg: "no connection to " + cfg.SSID + " network"}
	}
	fmt.Printf("connected to %s network with ip address %s\n", cfg.SSID, s.Radio.Addr())
	return nil
}

// indicateFault flashes the indicator three times, half a second per level.
func (s *Station) indicateFault() {
	on := s.Config.LEDOn
	for i := 0; i < faultFlashes; i++ {
		s.Fault.Set(on)
		s.wait(faultInterval)
		s.Fault.Set(!on)
		s.wait(faultInterval)
	}
}

func (s *Station) debugOn() bool {
	return s.Debug != nil && !s.Debug.Get()
}

func (s *Station) wait(d time.Duration) {
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}
