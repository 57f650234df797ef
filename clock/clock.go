// Package clock owns the device real-time clock: the contract the hardware
// RTC fulfils, the one-shot synchronization against a network time source,
// and the daylight-saving correction window.
package clock

import (
	"time"

	"github.com/effevee/weather-station/config"
	"github.com/effevee/weather-station/errcode"
)

// SentinelYear is the RTC's power-on default year. A clock still reporting it
// has never been synchronized in this power-on session.
const SentinelYear = 2000

// RTC is the persistent real-time clock. It survives deep sleep; it is only
// written by Synchronize.
type RTC interface {
	Now() time.Time
	Set(t time.Time)
}

// Source provides authoritative UTC time, typically over NTP.
type Source interface {
	UTC() (time.Time, error)
}

// Synchronize calibrates the RTC once per power-on session. If the clock
// already holds a plausible year the call is a no-op. Otherwise it fetches
// UTC from src, applies the configured timezone offset, applies the seasonal
// DST correction, and commits the result. A failed time fetch is fatal for
// the cycle.
func Synchronize(rtc RTC, src Source, cfg *config.Config) error {
	if rtc.Now().Year() != SentinelYear {
		return nil
	}

	utc, err := src.UTC()
	if err != nil {
		return &errcode.E{C: errcode.TimeSyncFailed, Op: "clock.synchronize", Err: err}
	}

	local := utc.Add(time.Duration(cfg.TimezoneHours) * time.Hour)
	if cfg.DaylightSaving && InDSTWindow(local) {
		local = local.Add(time.Hour)
	}

	rtc.Set(local)
	return nil
}

// SoftRTC keeps local time as an offset from the runtime's monotonic clock.
// It boots at the sentinel year, like a hardware RTC without a backup
// battery. Boards with a battery-backed RTC substitute their own
// implementation.
type SoftRTC struct {
	base   time.Time
	anchor time.Time
}

func NewSoftRTC() *SoftRTC {
	return &SoftRTC{
		base:   time.Date(SentinelYear, time.January, 1, 0, 0, 0, 0, time.UTC),
		anchor: time.Now(),
	}
}

func (r *SoftRTC) Now() time.Time { return r.base.Add(time.Since(r.anchor)) }

func (r *SoftRTC) Set(t time.Time) {
	r.base = t
	r.anchor = time.Now()
}

// LastSunday returns the day-of-month of the last Sunday of March (k=4) or
// October (k=1) for the given year.
func LastSunday(year, k int) int {
	return 31 - (5*year/4+k)%7
}

// DSTWindow returns the half-open [start, end) daylight-saving interval for
// the year: last Sunday of March 02:00 until last Sunday of October 03:00,
// expressed in the same naive local frame as the argument to InDSTWindow.
func DSTWindow(year int) (start, end time.Time) {
	start = time.Date(year, time.March, LastSunday(year, 4), 2, 0, 0, 0, time.UTC)
	end = time.Date(year, time.October, LastSunday(year, 1), 3, 0, 0, 0, time.UTC)
	return start, end
}

// InDSTWindow reports whether the timezone-corrected local time t falls in
// the daylight-saving window of its year.
func InDSTWindow(t time.Time) bool {
	start, end := DSTWindow(t.Year())
	return !t.Before(start) && t.Before(end)
}
