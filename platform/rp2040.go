//go:build rp2040

package platform

import (
	"image/color"
	"machine"
	"math"
	"time"

	"tinygo.org/x/drivers/bh1750"
	"tinygo.org/x/drivers/bmp180"
	"tinygo.org/x/drivers/netdev"
	"tinygo.org/x/drivers/netlink"
	"tinygo.org/x/drivers/netlink/probe"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/effevee/weather-station/clock"
	"github.com/effevee/weather-station/config"
	"github.com/effevee/weather-station/drivers/am2320"
	"github.com/effevee/weather-station/pbm"
)

// New configures the board and returns the hardware bindings: I2C0 shared by
// the three sensors and the OLED, the cyw43439 radio, the indicator pins and
// the watchdog-backed sleeper.
func New(cfg *config.Config) (*Platform, error) {
	hw := machine.I2C0
	err := hw.Configure(machine.I2CConfig{
		SDA:       machine.Pin(cfg.SDAPin),
		SCL:       machine.Pin(cfg.SCLPin),
		Frequency: 400 * machine.KHz,
	})
	if err != nil {
		return nil, err
	}

	th := am2320.New(hw)
	th.Configure()

	baro := bmp180.New(hw)
	baro.Configure()

	light := bh1750.New(hw)
	light.Configure()

	oled := ssd1306.NewI2C(hw)
	oled.Configure(ssd1306.Config{
		Width:   screenWidth,
		Height:  screenHeight,
		Address: 0x3C,
	})

	fault := machine.Pin(cfg.LEDPin)
	fault.Configure(machine.PinConfig{Mode: machine.PinOutput})
	debug := machine.Pin(cfg.DebugPin)
	debug.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	return &Platform{
		Bus:          &i2cBus{hw: hw},
		TempHumidity: &am2320Sensor{dev: &th},
		Barometer:    &bmp180Sensor{dev: &baro},
		Light:        &bh1750Sensor{dev: &light},
		Screen:       &oledScreen{dev: &oled},
		Radio:        &wifiRadio{},
		RTC:          clock.NewSoftRTC(),
		Fault:        outPin{p: fault},
		Debug:        inPin{p: debug},
		Power:        watchdogSleeper{},
	}, nil
}

// i2cBus probes the bus with zero-length writes, the same ack-only probe the
// controller uses for address discovery.
type i2cBus struct {
	hw *machine.I2C
}

func (b *i2cBus) Scan() ([]uint16, error) {
	var found []uint16
	for addr := uint16(0x08); addr <= 0x77; addr++ {
		if err := b.hw.Tx(addr, []byte{}, nil); err == nil {
			found = append(found, addr)
		}
	}
	return found, nil
}

type am2320Sensor struct {
	dev *am2320.Device
}

func (s *am2320Sensor) Read() (float64, float64, error) {
	sample, err := s.dev.Measure()
	if err != nil {
		return 0, 0, err
	}
	return sample.Celsius(), sample.RelHumidity(), nil
}

type bmp180Sensor struct {
	dev *bmp180.Device
}

// Read reports temperature, pressure in hPa and the barometric altitude
// relative to standard sea-level pressure. The driver hands back
// milli-degrees and milli-pascals.
func (s *bmp180Sensor) Read() (float64, float64, float64, error) {
	mdeg, err := s.dev.ReadTemperature()
	if err != nil {
		return 0, 0, 0, err
	}
	mpa, err := s.dev.ReadPressure()
	if err != nil {
		return 0, 0, 0, err
	}
	pa := float64(mpa) / 1000
	alt := 44330 * (1 - math.Pow(pa/101325, 1/5.255))
	return float64(mdeg) / 1000, pa / 100, alt, nil
}

type bh1750Sensor struct {
	dev *bh1750.Device
}

func (s *bh1750Sensor) Read() (float64, error) {
	return float64(s.dev.Illuminance()) / 1000, nil
}

const (
	screenWidth  = 128
	screenHeight = 64

	// Page coordinates address the glyph's top edge; tinyfont draws from
	// the baseline.
	smallBaseline = 7
	bigBaseline   = 17
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

type oledScreen struct {
	dev *ssd1306.Device
}

func (s *oledScreen) Clear() { s.dev.ClearBuffer() }

func (s *oledScreen) Text(str string, x, y int16) {
	tinyfont.WriteLine(s.dev, &proggy.TinySZ8pt7b, x, y+smallBaseline, str, white)
}

func (s *oledScreen) BigText(str string, x, y int16) {
	tinyfont.WriteLine(s.dev, &freesans.Regular12pt7b, x, y+bigBaseline, str, white)
}

func (s *oledScreen) Bitmap(img *pbm.Image, x, y int16) {
	for row := 0; row < img.Height; row++ {
		for col := 0; col < img.Width; col++ {
			if img.At(col, row) {
				s.dev.SetPixel(x+int16(col), y+int16(row), white)
			}
		}
	}
}

func (s *oledScreen) Flush() error    { return s.dev.Display() }
func (s *oledScreen) PowerOff() error { return s.dev.Sleep(true) }

// wifiRadio drives the onboard cyw43439 through the netlink probe. NetConnect
// blocks until the join completes, so Connected flips as soon as it returns.
type wifiRadio struct {
	link netlink.Netlinker
	dev  netdev.Netdever
	up   bool
}

func (r *wifiRadio) Connect(ssid, password string) error {
	if r.link == nil {
		r.link, r.dev = probe.Probe()
	}
	err := r.link.NetConnect(&netlink.ConnectParams{
		Ssid:       ssid,
		Passphrase: password,
	})
	if err != nil {
		return err
	}
	r.up = true
	return nil
}

func (r *wifiRadio) Connected() bool { return r.up }

func (r *wifiRadio) Addr() string {
	if r.dev == nil {
		return ""
	}
	ip, err := r.dev.Addr()
	if err != nil {
		return ""
	}
	return ip.String()
}

type outPin struct {
	p machine.Pin
}

func (o outPin) Set(level bool) { o.p.Set(level) }

type inPin struct {
	p machine.Pin
}

func (i inPin) Get() bool { return i.p.Get() }

// watchdogSleeper approximates deep sleep: idle for the interval, then let
// the watchdog reset the chip so the wake looks like a cold boot.
type watchdogSleeper struct{}

func (watchdogSleeper) DeepSleep(ms int64) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
	machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 1})
	machine.Watchdog.Start()
	for {
	}
}
