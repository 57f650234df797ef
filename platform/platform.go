// Package platform binds the station's collaborator interfaces to the board.
// The rp2040 build wires real hardware (I2C sensors, SSD1306, cyw43439
// WiFi); every other build gets inert host stand-ins so the firmware can be
// compiled, run and inspected on a development machine.
package platform

import (
	"github.com/effevee/weather-station/clock"
	"github.com/effevee/weather-station/display"
	"github.com/effevee/weather-station/sensors"
	"github.com/effevee/weather-station/station"
)

// Platform is the full set of board bindings consumed by cmd/station.
type Platform struct {
	Bus          sensors.Bus
	TempHumidity sensors.TempHumidity
	Barometer    sensors.Barometer
	Light        sensors.LightMeter

	Screen display.Screen

	Radio station.Radio
	RTC   clock.RTC

	Fault station.OutputPin
	Debug station.InputPin
	Power station.Sleeper
}
