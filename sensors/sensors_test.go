package sensors

import (
	"errors"
	"testing"

	"github.com/effevee/weather-station/config"
	"github.com/effevee/weather-station/errcode"
	"github.com/effevee/weather-station/units"
)

type fakeBus struct {
	addrs []uint16
	scans int
	err   error
}

func (b *fakeBus) Scan() ([]uint16, error) {
	b.scans++
	return b.addrs, b.err
}

type fakeTH struct {
	temp, hum float64
	err       error
	calls     int
}

func (f *fakeTH) Read() (float64, float64, error) {
	f.calls++
	return f.temp, f.hum, f.err
}

type fakeBaro struct {
	temp, pres, alt float64
	err             error
	calls           int
}

func (f *fakeBaro) Read() (float64, float64, float64, error) {
	f.calls++
	return f.temp, f.pres, f.alt, f.err
}

type fakeLight struct {
	lux   float64
	err   error
	calls int
}

func (f *fakeLight) Read() (float64, error) {
	f.calls++
	return f.lux, f.err
}

func allAddrs() []uint16 { return []uint16{AddrBH1750, AddrAM2320, 0x3C, AddrBMP180} }

func TestReadAllSensors(t *testing.T) {
	bus := &fakeBus{addrs: allAddrs()}
	r := &Reader{
		Bus:          bus,
		TempHumidity: &fakeTH{temp: 21.4, hum: 48},
		Barometer:    &fakeBaro{temp: 22.1, pres: 1013.6, alt: 57},
		Light:        &fakeLight{lux: 312},
	}

	rd, err := r.Read(&config.Config{Unit: units.Celsius})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := Reading{
		AM2320Temp: 21.4, AM2320Humidity: 48,
		BMP180Temp: 22.1, BMP180Pressure: 1013.6, BMP180Altitude: 57,
		BH1750Luminance: 312,
	}
	if rd != want {
		t.Fatalf("reading = %+v, want %+v", rd, want)
	}
	// Wake scan plus one presence scan per sensor.
	if bus.scans != 4 {
		t.Fatalf("bus scanned %d times, want 4", bus.scans)
	}
}

func TestReadConvertsTemperatures(t *testing.T) {
	r := &Reader{
		Bus:          &fakeBus{addrs: allAddrs()},
		TempHumidity: &fakeTH{temp: 0, hum: 50},
		Barometer:    &fakeBaro{temp: 100, pres: 1000, alt: 10},
		Light:        &fakeLight{lux: 1},
	}

	rd, err := r.Read(&config.Config{Unit: units.Fahrenheit})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if rd.AM2320Temp != 32 || rd.BMP180Temp != 212 {
		t.Fatalf("temperatures not converted: %+v", rd)
	}
	// Pressure and luminance stay in physical units.
	if rd.BMP180Pressure != 1000 || rd.BH1750Luminance != 1 {
		t.Fatalf("non-temperature fields altered: %+v", rd)
	}
}

func TestReadMissingBarometerStopsProbing(t *testing.T) {
	light := &fakeLight{lux: 1}
	r := &Reader{
		Bus:          &fakeBus{addrs: []uint16{AddrAM2320, AddrBH1750}}, // no 0x77
		TempHumidity: &fakeTH{temp: 20, hum: 40},
		Barometer:    &fakeBaro{},
		Light:        light,
	}

	_, err := r.Read(&config.Config{})
	var nf *SensorNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected SensorNotFoundError, got %v", err)
	}
	if nf.Addr != AddrBMP180 {
		t.Fatalf("missing address = 0x%02X, want 0x%02X", nf.Addr, AddrBMP180)
	}
	if light.calls != 0 {
		t.Fatalf("light meter probed after a missing barometer")
	}
	if errcode.Of(err) != errcode.SensorNotFound {
		t.Fatalf("error code = %q", errcode.Of(err))
	}
}

func TestReadMissingFirstSensor(t *testing.T) {
	baro := &fakeBaro{}
	r := &Reader{
		Bus:          &fakeBus{addrs: []uint16{AddrBMP180, AddrBH1750}},
		TempHumidity: &fakeTH{},
		Barometer:    baro,
		Light:        &fakeLight{},
	}

	_, err := r.Read(&config.Config{})
	var nf *SensorNotFoundError
	if !errors.As(err, &nf) || nf.Addr != AddrAM2320 {
		t.Fatalf("expected missing 0x5C, got %v", err)
	}
	if baro.calls != 0 {
		t.Fatalf("barometer read after a missing first sensor")
	}
}

func TestReadTransactionFailure(t *testing.T) {
	r := &Reader{
		Bus:          &fakeBus{addrs: allAddrs()},
		TempHumidity: &fakeTH{temp: 20, hum: 40},
		Barometer:    &fakeBaro{err: errors.New("nack")},
		Light:        &fakeLight{},
	}

	_, err := r.Read(&config.Config{})
	var re *SensorReadError
	if !errors.As(err, &re) {
		t.Fatalf("expected SensorReadError, got %v", err)
	}
	if re.Name != "bmp180" {
		t.Fatalf("failing sensor = %q, want bmp180", re.Name)
	}
	if errcode.Of(err) != errcode.SensorReadFailed {
		t.Fatalf("error code = %q", errcode.Of(err))
	}
}
