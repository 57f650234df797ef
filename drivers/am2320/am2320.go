// Package am2320 provides a driver for the AM2320 temperature/humidity
// sensor. The device sleeps between transactions and must be woken with a
// dummy write that it usually does not acknowledge; Measure handles the wake,
// the register read and the CRC check in one call.
//
// Raw values are tenths of units; fixed-point helpers return deci-°C and
// deci-%RH, float accessors are provided for convenience.
package am2320

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// I2C address.
const Address = 0x5C

const (
	funcReadRegisters = 0x03
	regHumidityHigh   = 0x00
	readLength        = 0x04
)

// Errors returned by the driver.
var (
	ErrProtocol = errors.New("am2320: protocol error")
	ErrChecksum = errors.New("am2320: crc mismatch")
)

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Address defaults to 0x5C if zero.
	Address uint16
	// WakeDelay is the pause after the wake write. Default 2 ms.
	WakeDelay time.Duration
	// ReadDelay is the pause between the read command and fetching the
	// reply. The datasheet asks for at least 1.5 ms. Default 2 ms.
	ReadDelay time.Duration
}

// Device wraps an I2C connection to an AM2320 device.
type Device struct {
	bus     drivers.I2C
	Address uint16

	cfg Config
	buf [8]byte
}

// New creates a new AM2320 connection. The I2C bus must already be
// configured. This function only creates the Device object; it does not touch
// the device.
func New(bus drivers.I2C) Device {
	return Device{bus: bus, Address: Address}
}

// Configure applies optional config. It may be called with no cfg.
func (d *Device) Configure(cfgs ...Config) {
	c := Config{}
	if len(cfgs) > 0 {
		c = cfgs[0]
	}
	if c.Address != 0 {
		d.Address = c.Address
	}
	if c.WakeDelay <= 0 {
		c.WakeDelay = 2 * time.Millisecond
	}
	if c.ReadDelay <= 0 {
		c.ReadDelay = 2 * time.Millisecond
	}
	d.cfg = c
}

// Measure wakes the device, reads the humidity and temperature registers and
// verifies the CRC. The sensor updates at most once per 2 s; callers reading
// faster see the previous conversion.
func (d *Device) Measure() (Sample, error) {
	if d.cfg.ReadDelay == 0 {
		d.Configure()
	}

	// Wake write; the device routinely NACKs it while asleep.
	_ = d.bus.Tx(d.Address, nil, nil)
	time.Sleep(d.cfg.WakeDelay)

	if err := d.bus.Tx(d.Address, []byte{funcReadRegisters, regHumidityHigh, readLength}, nil); err != nil {
		return Sample{}, err
	}
	time.Sleep(d.cfg.ReadDelay)

	data := d.buf[:]
	if err := d.bus.Tx(d.Address, nil, data); err != nil {
		return Sample{}, err
	}
	if data[0] != funcReadRegisters || data[1] != readLength {
		return Sample{}, ErrProtocol
	}
	crc := uint16(data[6]) | uint16(data[7])<<8 // little-endian on the wire
	if crc16(data[:6]) != crc {
		return Sample{}, ErrChecksum
	}

	return Sample{
		RawHumidity: uint16(data[2])<<8 | uint16(data[3]),
		RawTemp:     uint16(data[4])<<8 | uint16(data[5]),
	}, nil
}

// Sample holds raw readings. Humidity is tenths of %RH; temperature is
// tenths of °C with the sign carried in the top bit.
type Sample struct {
	RawHumidity uint16
	RawTemp     uint16
}

// DeciRelHumidity returns tenths of %RH.
func (s Sample) DeciRelHumidity() int32 { return int32(s.RawHumidity) }

// DeciCelsius returns tenths of °C.
func (s Sample) DeciCelsius() int32 {
	t := int32(s.RawTemp & 0x7FFF)
	if s.RawTemp&0x8000 != 0 {
		t = -t
	}
	return t
}

// RelHumidity returns %RH.
func (s Sample) RelHumidity() float64 { return float64(s.DeciRelHumidity()) / 10 }

// Celsius returns °C.
func (s Sample) Celsius() float64 { return float64(s.DeciCelsius()) / 10 }

// crc16 is the Modbus CRC-16 the AM2320 appends to every reply.
func crc16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&1 != 0 {
				crc = crc>>1 ^ 0xA001
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}
