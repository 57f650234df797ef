// Package display paints the station's pages onto the OLED. The pixel, font
// and bitmap primitives live behind the Screen interface; the hardware
// binding over ssd1306/tinyfont is in package platform.
package display

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/effevee/weather-station/config"
	"github.com/effevee/weather-station/errcode"
	"github.com/effevee/weather-station/forecast"
	"github.com/effevee/weather-station/pbm"
	"github.com/effevee/weather-station/sensors"
)

// Dwell is how long each page stays visible before the next one.
const Dwell = 5 * time.Second

// Screen is the display collaborator. Text draws in the small system font,
// BigText in the large one.
type Screen interface {
	Clear()
	Text(s string, x, y int16)
	BigText(s string, x, y int16)
	Bitmap(img *pbm.Image, x, y int16)
	Flush() error
	PowerOff() error
}

// IconLoader resolves a bitmap resource by file name.
type IconLoader interface {
	Load(name string) (*pbm.Image, error)
}

// ResourceLoadError reports a bitmap resource that could not be loaded.
type ResourceLoadError struct {
	Path string
	Err  error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("display: cannot load %s: %v", e.Path, e.Err)
}
func (e *ResourceLoadError) Unwrap() error      { return e.Err }
func (e *ResourceLoadError) Code() errcode.Code { return errcode.ResourceLoadFailed }

// FSIcons loads PBM icons from a file system rooted at the icon directory.
type FSIcons struct {
	FS fs.FS
}

func (f FSIcons) Load(name string) (*pbm.Image, error) {
	file, err := f.FS.Open(name)
	if err != nil {
		return nil, &ResourceLoadError{Path: name, Err: err}
	}
	defer file.Close()

	img, err := pbm.Decode(file)
	if err != nil {
		return nil, &ResourceLoadError{Path: name, Err: err}
	}
	return img, nil
}

// Three-letter weekday labels, week starting Monday.
var dow = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func weekday(t time.Time) int { return (int(t.Weekday()) + 6) % 7 }

// iconName maps an OpenWeatherMap icon code to its bitmap resource: the
// first two characters select the glyph, day and night variants share it.
func iconName(code string) string {
	if len(code) > 2 {
		code = code[:2]
	}
	return code + "@2x.pbm"
}

// Renderer paints the configured pages in order. Sleep is the per-page dwell
// wait; nil means time.Sleep.
type Renderer struct {
	Screen Screen
	Icons  IconLoader
	Sleep  func(time.Duration)
}

// Show renders every configured page: clear, title, body, flush, dwell. The
// display is powered off after the last page. A failed icon load or a page
// name Show does not know aborts the remaining pages and propagates, leaving
// the cycle's single error boundary to deal with it.
func (r *Renderer) Show(cfg *config.Config, days []forecast.Day, rd sensors.Reading, now time.Time) error {
	for _, title := range cfg.Pages {
		r.Screen.Clear()
		r.Screen.Text(title, 0, 0)

		var err error
		switch title {
		case "Date Time":
			r.dateTimePage(now)
		case "Currently":
			err = r.currentPage(cfg, days, now)
		case "Forecast":
			err = r.forecastPage(cfg, days, now)
		case "Sensors #1":
			err = r.sensorsTempHumPage(cfg, rd)
		case "Sensors #2":
			err = r.sensorsPresLumPage(rd)
		default:
			err = &errcode.E{C: errcode.Error, Op: "display.show", Msg: "unknown page " + title}
		}
		if err != nil {
			return err
		}

		if err := r.Screen.Flush(); err != nil {
			return err
		}
		r.wait(Dwell)
	}
	return r.Screen.PowerOff()
}

func (r *Renderer) dateTimePage(now time.Time) {
	r.Screen.BigText(fmt.Sprintf("%02d/%02d/%04d", now.Day(), int(now.Month()), now.Year()), 4, 20)
	r.Screen.BigText(fmt.Sprintf("%s  %02d:%02d", dow[weekday(now)], now.Hour(), now.Minute()), 4, 44)
}

func (r *Renderer) currentPage(cfg *config.Config, days []forecast.Day, now time.Time) error {
	d := days[0]
	icon, err := r.Icons.Load(iconName(d.Icon))
	if err != nil {
		return err
	}

	r.Screen.Text(dow[weekday(now)], 6, 16)
	r.Screen.Bitmap(icon, 4, 25)
	r.Screen.Text(fmt.Sprintf("T:%.0f %s", d.Temp, cfg.Unit.Suffix()), 46, 25)
	r.Screen.Text(fmt.Sprintf("H:%d %%", d.Humidity), 46, 35)
	r.Screen.Text(fmt.Sprintf("P:%.0f hPa", d.Pressure), 46, 45)
	r.Screen.Text(d.Report, 0, 55)
	return nil
}

func (r *Renderer) forecastPage(cfg *config.Config, days []forecast.Day, now time.Time) error {
	// Three columns, one per forecast day.
	for day := 1; day < forecast.Days; day++ {
		d := days[day]
		icon, err := r.Icons.Load(iconName(d.Icon))
		if err != nil {
			return err
		}

		col := int16((day - 1) * 40)
		r.Screen.Text(dow[(weekday(now)+day)%7], 6+col, 16)
		r.Screen.Bitmap(icon, 4+col, 25)
		r.Screen.Text(fmt.Sprintf("%.0f%s", d.Temp, cfg.Unit.Suffix()), 6+col, 55)
	}
	return nil
}

func (r *Renderer) sensorsTempHumPage(cfg *config.Config, rd sensors.Reading) error {
	temp, err := r.Icons.Load("temperature.pbm")
	if err != nil {
		return err
	}
	hum, err := r.Icons.Load("humidity.pbm")
	if err != nil {
		return err
	}

	r.Screen.Bitmap(temp, 4, 20)
	r.Screen.Bitmap(hum, 4, 44)
	r.Screen.BigText(fmt.Sprintf("%.1f %s", rd.AM2320Temp, cfg.Unit.Suffix()), 24, 20)
	r.Screen.BigText(fmt.Sprintf("%.1f %%", rd.AM2320Humidity), 24, 44)
	return nil
}

func (r *Renderer) sensorsPresLumPage(rd sensors.Reading) error {
	pres, err := r.Icons.Load("pressure.pbm")
	if err != nil {
		return err
	}
	lum, err := r.Icons.Load("luminance.pbm")
	if err != nil {
		return err
	}

	r.Screen.Bitmap(pres, 4, 20)
	r.Screen.Bitmap(lum, 4, 44)
	r.Screen.BigText(fmt.Sprintf("%.0f hPa", rd.BMP180Pressure), 24, 20)
	r.Screen.BigText(fmt.Sprintf("%.0f lux", rd.BH1750Luminance), 24, 44)
	return nil
}

func (r *Renderer) wait(d time.Duration) {
	if r.Sleep != nil {
		r.Sleep(d)
		return
	}
	time.Sleep(d)
}
