// Package config holds the station's cycle configuration. A Config is built
// once at startup (normally from Default) and passed by pointer into every
// component; nothing reads ambient state and nothing mutates it after load.
package config

import (
	"time"

	"github.com/effevee/weather-station/units"
)

type Config struct {
	// I2C bus pin pair shared by the sensors and the OLED.
	SCLPin int
	SDAPin int

	// Fault indicator output. LEDOn is the level that lights it; boards
	// with inverse logic set it false.
	LEDPin int
	LEDOn  bool

	// Debug input, asserted when pulled low. While asserted the station
	// prints extra diagnostics and skips deep sleep.
	DebugPin int

	// Display temperature unit.
	Unit units.Unit

	// Display pages, rendered in this order.
	Pages []string

	// Local time settings. TimezoneHours is the offset to UTC; with
	// DaylightSaving set, one extra hour applies between the last Sunday
	// of March 02:00 and the last Sunday of October 03:00.
	TimezoneHours  int
	DaylightSaving bool

	// Interval between measurement cycles.
	Interval time.Duration

	// WiFi credentials. MaxJoinTries bounds the once-per-second
	// connection polls before the join is declared failed.
	SSID         string
	Password     string
	MaxJoinTries int

	// OpenWeatherMap service.
	OpenWeatherAPIKey string
	OpenWeatherCity   string // "<city>,<2-letter country code>"
	WeatherURL        string // current conditions endpoint
	OneCallURL        string // daily forecast endpoint

	// ThingSpeak logging service.
	ThingSpeakWriteKey string
	ThingSpeakURL      string
}

// Default returns the station's compile-time configuration.
func Default() *Config {
	return &Config{
		SCLPin: 22,
		SDAPin: 21,

		LEDPin: 2,
		LEDOn:  false, // onboard LED, inverse logic

		DebugPin: 5,

		Unit: units.Celsius,

		Pages: []string{"Date Time", "Currently", "Forecast", "Sensors #1", "Sensors #2"},

		TimezoneHours:  1,
		DaylightSaving: true,

		Interval: 900 * time.Second,

		SSID:         "<Your network SSID>",
		Password:     "<Your network password>",
		MaxJoinTries: 20,

		OpenWeatherAPIKey: "<Your OpenWeather API key>",
		OpenWeatherCity:   "<Your OpenWeather City>,<2-letter country code>",
		WeatherURL:        "https://api.openweathermap.org/data/2.5/weather",
		OneCallURL:        "https://api.openweathermap.org/data/2.5/onecall",

		ThingSpeakWriteKey: "<Your ThingSpeak Write API key>",
		ThingSpeakURL:      "https://api.thingspeak.com/update",
	}
}
