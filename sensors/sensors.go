// Package sensors produces the one consolidated reading per cycle from the
// three devices on the shared two-wire bus. The device protocols themselves
// live behind small interfaces; hardware bindings are in package platform.
package sensors

import (
	"fmt"

	"github.com/effevee/weather-station/config"
	"github.com/effevee/weather-station/errcode"
	"github.com/effevee/weather-station/units"
)

// Fixed bus addresses of the expected devices.
const (
	AddrAM2320 uint16 = 0x5C
	AddrBMP180 uint16 = 0x77
	AddrBH1750 uint16 = 0x23
)

// Bus enumerates the responding device addresses on the shared bus.
type Bus interface {
	Scan() ([]uint16, error)
}

// TempHumidity is the AM2320. Temperature in Celsius, humidity in percent.
type TempHumidity interface {
	Read() (tempC, humidityPct float64, err error)
}

// Barometer is the BMP180. Pressure in hPa, altitude in meters.
type Barometer interface {
	Read() (tempC, pressureHPa, altitudeM float64, err error)
}

// LightMeter is the BH1750. Luminance in lux.
type LightMeter interface {
	Read() (lux float64, err error)
}

// Reading is the consolidated per-cycle record consumed by the display and
// the telemetry upload. Temperatures are in the configured display unit.
type Reading struct {
	AM2320Temp      float64
	AM2320Humidity  float64
	BMP180Temp      float64
	BMP180Pressure  float64
	BMP180Altitude  float64
	BH1750Luminance float64
}

// SensorNotFoundError reports an expected device missing from the bus scan.
type SensorNotFoundError struct {
	Addr uint16
}

func (e *SensorNotFoundError) Error() string {
	return fmt.Sprintf("sensors: no device at address 0x%02X", e.Addr)
}
func (e *SensorNotFoundError) Code() errcode.Code { return errcode.SensorNotFound }

// SensorReadError reports a failed transaction with a present device.
type SensorReadError struct {
	Name string
	Err  error
}

func (e *SensorReadError) Error() string {
	return fmt.Sprintf("sensors: %s read failed: %v", e.Name, e.Err)
}
func (e *SensorReadError) Unwrap() error      { return e.Err }
func (e *SensorReadError) Code() errcode.Code { return errcode.SensorReadFailed }

type Reader struct {
	Bus          Bus
	TempHumidity TempHumidity
	Barometer    Barometer
	Light        LightMeter
}

// Read probes and reads the three sensors in fixed order. A device missing
// from its scan fails immediately; later sensors are not attempted.
func (r *Reader) Read(cfg *config.Config) (Reading, error) {
	var rd Reading

	// The AM2320 sleeps between transactions and does not answer the first
	// scan after waking; that scan only wakes it and its result is discarded.
	if _, err := r.Bus.Scan(); err != nil {
		return rd, &SensorReadError{Name: "bus", Err: err}
	}

	if err := r.require(AddrAM2320); err != nil {
		return rd, err
	}
	temp, hum, err := r.TempHumidity.Read()
	if err != nil {
		return rd, &SensorReadError{Name: "am2320", Err: err}
	}
	rd.AM2320Temp = units.Convert(temp, cfg.Unit)
	rd.AM2320Humidity = hum

	if err := r.require(AddrBMP180); err != nil {
		return rd, err
	}
	temp, pres, alt, err := r.Barometer.Read()
	if err != nil {
		return rd, &SensorReadError{Name: "bmp180", Err: err}
	}
	rd.BMP180Temp = units.Convert(temp, cfg.Unit)
	rd.BMP180Pressure = pres
	rd.BMP180Altitude = alt

	if err := r.require(AddrBH1750); err != nil {
		return rd, err
	}
	lux, err := r.Light.Read()
	if err != nil {
		return rd, &SensorReadError{Name: "bh1750", Err: err}
	}
	rd.BH1750Luminance = lux

	return rd, nil
}

func (r *Reader) require(addr uint16) error {
	addrs, err := r.Bus.Scan()
	if err != nil {
		return &SensorReadError{Name: "bus", Err: err}
	}
	for _, a := range addrs {
		if a == addr {
			return nil
		}
	}
	return &SensorNotFoundError{Addr: addr}
}
