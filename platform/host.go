//go:build !rp2040

package platform

import (
	"fmt"

	"github.com/effevee/weather-station/clock"
	"github.com/effevee/weather-station/config"
	"github.com/effevee/weather-station/pbm"
)

// New returns host stand-ins for the board bindings. The bus reports all
// three sensors present with canned readings, the screen prints to the
// console, the radio joins instantly, and deep sleep returns so the process
// can run cycle after cycle.
func New(_ *config.Config) (*Platform, error) {
	return &Platform{
		Bus:          hostBus{},
		TempHumidity: hostTempHumidity{},
		Barometer:    hostBarometer{},
		Light:        hostLight{},
		Screen:       &consoleScreen{},
		Radio:        &hostRadio{},
		RTC:          clock.NewSoftRTC(),
		Fault:        hostPin{name: "fault"},
		Debug:        hostInput{},
		Power:        hostSleeper{},
	}, nil
}

type hostBus struct{}

func (hostBus) Scan() ([]uint16, error) {
	return []uint16{0x23, 0x3C, 0x5C, 0x77}, nil
}

type hostTempHumidity struct{}

func (hostTempHumidity) Read() (float64, float64, error) { return 21.4, 48.2, nil }

type hostBarometer struct{}

func (hostBarometer) Read() (float64, float64, float64, error) { return 21.9, 1014.2, 12.5, nil }

type hostLight struct{}

func (hostLight) Read() (float64, error) { return 312, nil }

// consoleScreen narrates the draw calls instead of rendering pixels.
type consoleScreen struct{}

func (consoleScreen) Clear() { fmt.Println("[screen] clear") }

func (consoleScreen) Text(s string, x, y int16) {
	fmt.Printf("[screen] text %q @ %d,%d\n", s, x, y)
}

func (consoleScreen) BigText(s string, x, y int16) {
	fmt.Printf("[screen] bigtext %q @ %d,%d\n", s, x, y)
}

func (consoleScreen) Bitmap(img *pbm.Image, x, y int16) {
	fmt.Printf("[screen] bitmap %dx%d @ %d,%d\n", img.Width, img.Height, x, y)
}

func (consoleScreen) Flush() error { fmt.Println("[screen] flush"); return nil }

func (consoleScreen) PowerOff() error { fmt.Println("[screen] power off"); return nil }

type hostRadio struct {
	up bool
}

func (r *hostRadio) Connect(ssid, _ string) error {
	fmt.Printf("[radio] joining %s\n", ssid)
	r.up = true
	return nil
}

func (r *hostRadio) Connected() bool { return r.up }
func (r *hostRadio) Addr() string    { return "127.0.0.1" }

type hostPin struct {
	name string
}

func (p hostPin) Set(level bool) { fmt.Printf("[pin] %s=%v\n", p.name, level) }

// hostInput reads high, the unasserted level of the pulled-up debug input.
type hostInput struct{}

func (hostInput) Get() bool { return true }

type hostSleeper struct{}

func (hostSleeper) DeepSleep(ms int64) {
	fmt.Printf("[power] deep sleep %d ms\n", ms)
}
