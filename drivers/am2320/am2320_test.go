package am2320

import (
	"errors"
	"testing"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*fakeI2C)(nil)

// Scripted AM2320-like fake. The reply frame (function code, byte count,
// humidity, temperature, CRC) is fixed per test.
type fakeI2C struct {
	reply    [8]byte
	awake    bool
	wakes    int
	commands [][]byte
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if addr != Address {
		return errors.New("wrong address")
	}
	// Wake write: NACK while asleep, like the real part.
	if len(w) == 0 && len(r) == 0 {
		f.wakes++
		awake := f.awake
		f.awake = true
		if !awake {
			return errors.New("nack")
		}
		return nil
	}
	if len(w) > 0 {
		f.commands = append(f.commands, append([]byte(nil), w...))
		return nil
	}
	copy(r, f.reply[:])
	return nil
}

func TestMeasure(t *testing.T) {
	// 50.0 %RH, 21.0 °C.
	bus := &fakeI2C{reply: [8]byte{0x03, 0x04, 0x01, 0xF4, 0x00, 0xD2, 0x31, 0xBB}}
	d := New(bus)
	d.Configure()

	s, err := d.Measure()
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if s.DeciRelHumidity() != 500 || s.DeciCelsius() != 210 {
		t.Fatalf("sample = %+v", s)
	}
	if s.RelHumidity() != 50.0 || s.Celsius() != 21.0 {
		t.Fatalf("float accessors: %v %%RH, %v C", s.RelHumidity(), s.Celsius())
	}
	if bus.wakes != 1 {
		t.Fatalf("wake writes = %d, want 1", bus.wakes)
	}
	want := []byte{0x03, 0x00, 0x04}
	if len(bus.commands) != 1 || string(bus.commands[0]) != string(want) {
		t.Fatalf("read command = %v, want %v", bus.commands, want)
	}
}

func TestMeasureNegativeTemperature(t *testing.T) {
	// 60.0 %RH, -10.5 °C (sign bit set).
	bus := &fakeI2C{reply: [8]byte{0x03, 0x04, 0x02, 0x58, 0x80, 0x69, 0xD0, 0x6D}}
	d := New(bus)
	d.Configure()

	s, err := d.Measure()
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if s.DeciCelsius() != -105 {
		t.Fatalf("deci celsius = %d, want -105", s.DeciCelsius())
	}
}

func TestMeasureChecksumMismatch(t *testing.T) {
	bus := &fakeI2C{reply: [8]byte{0x03, 0x04, 0x01, 0xF4, 0x00, 0xD2, 0x00, 0x00}}
	d := New(bus)
	d.Configure()

	if _, err := d.Measure(); !errors.Is(err, ErrChecksum) {
		t.Fatalf("expected ErrChecksum, got %v", err)
	}
}

func TestMeasureProtocolError(t *testing.T) {
	bus := &fakeI2C{reply: [8]byte{0x55, 0x04, 0x01, 0xF4, 0x00, 0xD2, 0x31, 0xBB}}
	d := New(bus)
	d.Configure()

	if _, err := d.Measure(); !errors.Is(err, ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
}
