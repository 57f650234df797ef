package errcode

// Code is a stable, diagnostic-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable). One per failing cycle step plus the
// bus/resource specifics a step can surface.
const (
	OK Code = "ok"

	NetworkJoinFailed  Code = "network_join_failed"
	TimeSyncFailed     Code = "time_sync_failed"
	RemoteService      Code = "remote_service_error"
	SensorNotFound     Code = "sensor_not_found"
	SensorReadFailed   Code = "sensor_read_failed"
	ResourceLoadFailed Code = "resource_load_failed"

	Error Code = "error" // generic fallback
)

// E keeps context and a cause alongside a Code.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
