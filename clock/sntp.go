package clock

import (
	"encoding/binary"
	"errors"
	"net"
	"time"
)

// Seconds between the NTP epoch (1900) and the Unix epoch (1970).
const ntpUnixDelta = 2208988800

const (
	defaultNTPHost    = "pool.ntp.org:123"
	defaultNTPTimeout = 5 * time.Second
)

var errShortNTPReply = errors.New("clock: short ntp reply")

// NTPSource fetches UTC time with a single SNTP exchange over UDP. It works
// on the host network stack and on TinyGo's netdev-backed net package alike.
type NTPSource struct {
	Host    string        // defaults to pool.ntp.org:123
	Timeout time.Duration // defaults to 5s
}

func (s *NTPSource) UTC() (time.Time, error) {
	host := s.Host
	if host == "" {
		host = defaultNTPHost
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultNTPTimeout
	}

	conn, err := net.Dial("udp", host)
	if err != nil {
		return time.Time{}, err
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return time.Time{}, err
	}

	// LI=0, VN=4, Mode=3 (client); the rest of the request is zero.
	var pkt [48]byte
	pkt[0] = 0x23
	if _, err := conn.Write(pkt[:]); err != nil {
		return time.Time{}, err
	}

	n, err := conn.Read(pkt[:])
	if err != nil {
		return time.Time{}, err
	}
	if n < 44 {
		return time.Time{}, errShortNTPReply
	}

	// Transmit timestamp, seconds part.
	secs := binary.BigEndian.Uint32(pkt[40:44])
	return time.Unix(int64(secs)-ntpUnixDelta, 0).UTC(), nil
}
