// Battery-powered weather station firmware. One cycle per boot: join WiFi,
// sync the clock, fetch the forecast, read the sensors, show the pages,
// upload the readings, deep sleep until the next cycle.
package main

import (
	"fmt"
	"time"

	"github.com/effevee/weather-station/clock"
	"github.com/effevee/weather-station/config"
	"github.com/effevee/weather-station/display"
	"github.com/effevee/weather-station/forecast"
	"github.com/effevee/weather-station/img"
	"github.com/effevee/weather-station/platform"
	"github.com/effevee/weather-station/sensors"
	"github.com/effevee/weather-station/station"
	"github.com/effevee/weather-station/telemetry"
	"github.com/effevee/weather-station/web"
)

func main() {
	// Leave the console a moment to attach after a cold boot.
	time.Sleep(3 * time.Second)

	cfg := config.Default()

	board, err := platform.New(cfg)
	if err != nil {
		fmt.Println("board init failed:", err)
		return
	}

	httpc := web.NewClient(web.DefaultTimeout)

	st := &station.Station{
		Config: cfg,

		Radio: board.Radio,
		RTC:   board.RTC,
		Time:  &clock.NTPSource{},

		Forecast: &forecast.Client{HTTP: httpc},
		Sensors: &sensors.Reader{
			Bus:          board.Bus,
			TempHumidity: board.TempHumidity,
			Barometer:    board.Barometer,
			Light:        board.Light,
		},
		Display: &display.Renderer{
			Screen: board.Screen,
			Icons:  display.FSIcons{FS: img.FS},
		},
		Telemetry: &telemetry.Uploader{HTTP: httpc},

		Fault: board.Fault,
		Debug: board.Debug,
		Power: board.Power,
	}

	// On hardware deep sleep ends in a reset and Run is entered once per
	// boot; on a host the sleeper returns and the loop carries on. With
	// the debug input held the station stays powered and idle.
	for {
		st.Run()
		if !board.Debug.Get() {
			select {}
		}
	}
}
