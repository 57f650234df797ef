// Package forecast fetches current conditions and a three-day forecast from
// OpenWeatherMap and normalizes them into a fixed-length day sequence for the
// display and nothing else; records live for one cycle.
package forecast

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/effevee/weather-station/config"
	"github.com/effevee/weather-station/errcode"
	"github.com/effevee/weather-station/units"
	"github.com/effevee/weather-station/web"
)

// Days is the fixed length of the sequence returned by Fetch: index 0 is the
// current conditions, 1..3 the next three days.
const Days = 4

// Day is one normalized forecast record. Temperatures are already in the
// configured display unit, pressure in hPa.
type Day struct {
	Temp     float64
	Humidity int
	Pressure float64
	Icon     string
	Report   string
}

// Getter is the HTTP collaborator (see package web).
type Getter interface {
	Get(url string) (status int, body []byte, err error)
}

type Client struct {
	HTTP Getter
}

// Response shapes, limited to the fields the station consumes. OpenWeatherMap
// reports temperatures in Kelvin.

type currentResponse struct {
	Coord struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"coord"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Icon        string `json:"icon"`
		Description string `json:"description"`
	} `json:"weather"`
}

type onecallResponse struct {
	Daily []struct {
		Temp struct {
			Day float64 `json:"day"`
		} `json:"temp"`
		Humidity int     `json:"humidity"`
		Pressure float64 `json:"pressure"`
		Weather  []struct {
			Icon        string `json:"icon"`
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"daily"`
}

// Fetch returns exactly Days records: the current conditions from the city
// endpoint followed by the forecasts for the next three days from the daily
// endpoint, located by the coordinates the first call reported.
func (c *Client) Fetch(cfg *config.Config) ([]Day, error) {
	cur, err := c.fetchCurrent(cfg)
	if err != nil {
		return nil, err
	}
	if len(cur.Weather) == 0 {
		return nil, &errcode.E{C: errcode.RemoteService, Op: "forecast.fetch", Msg: "current conditions without weather entry"}
	}

	days := make([]Day, 0, Days)
	days = append(days, Day{
		Temp:     units.Convert(cur.Main.Temp-273.15, cfg.Unit),
		Humidity: cur.Main.Humidity,
		Pressure: cur.Main.Pressure,
		Icon:     cur.Weather[0].Icon,
		Report:   cur.Weather[0].Description,
	})

	oc, err := c.fetchDaily(cfg, cur.Coord.Lat, cur.Coord.Lon)
	if err != nil {
		return nil, err
	}
	// daily[0] is today; the next three days complete the sequence.
	if len(oc.Daily) < Days {
		return nil, &errcode.E{C: errcode.RemoteService, Op: "forecast.fetch",
			Msg: fmt.Sprintf("daily forecast too short: %d entries", len(oc.Daily))}
	}
	for day := 1; day < Days; day++ {
		d := oc.Daily[day]
		if len(d.Weather) == 0 {
			return nil, &errcode.E{C: errcode.RemoteService, Op: "forecast.fetch",
				Msg: fmt.Sprintf("daily[%d] without weather entry", day)}
		}
		days = append(days, Day{
			Temp:     units.Convert(d.Temp.Day-273.15, cfg.Unit),
			Humidity: d.Humidity,
			Pressure: d.Pressure,
			Icon:     d.Weather[0].Icon,
			Report:   d.Weather[0].Description,
		})
	}
	return days, nil
}

func (c *Client) fetchCurrent(cfg *config.Config) (*currentResponse, error) {
	q := url.Values{}
	q.Set("q", cfg.OpenWeatherCity)
	q.Set("appid", cfg.OpenWeatherAPIKey)

	var cur currentResponse
	if err := c.getJSON("weather", cfg.WeatherURL+"?"+q.Encode(), &cur); err != nil {
		return nil, err
	}
	return &cur, nil
}

func (c *Client) fetchDaily(cfg *config.Config, lat, lon float64) (*onecallResponse, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("exclude", "current,minutely,hourly,alerts")
	q.Set("appid", cfg.OpenWeatherAPIKey)

	var oc onecallResponse
	if err := c.getJSON("onecall", cfg.OneCallURL+"?"+q.Encode(), &oc); err != nil {
		return nil, err
	}
	return &oc, nil
}

func (c *Client) getJSON(endpoint, url string, dst any) error {
	status, body, err := c.HTTP.Get(url)
	if err != nil {
		return &errcode.E{C: errcode.RemoteService, Op: "forecast." + endpoint, Err: err}
	}
	if status >= 400 {
		return &web.RemoteServiceError{Endpoint: endpoint, Status: status}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &errcode.E{C: errcode.RemoteService, Op: "forecast." + endpoint, Err: err}
	}
	return nil
}
