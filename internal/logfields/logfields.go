package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyProfileID   = "profile_id"
	KeyPassID      = "pass_id"
	KeyTrigger     = "trigger"
	KeySource      = "source"
	KeyDestination = "destination"
	KeyTarget      = "target"
	KeyAttempted   = "attempted"
	KeyCopied      = "copied"
	KeyFailed      = "failed"
	KeyInterval    = "interval_minutes"
	KeyDurationMS  = "duration_ms"
	KeyScheduleID  = "schedule_id"
	KeyState       = "state"
	KeyPath        = "path"
	KeyAddr        = "addr"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func ProfileID(id int) slog.Attr         { return slog.Int(KeyProfileID, id) }
func PassID(id string) slog.Attr         { return slog.String(KeyPassID, id) }
func Trigger(t string) slog.Attr         { return slog.String(KeyTrigger, t) }
func Source(p string) slog.Attr          { return slog.String(KeySource, p) }
func Destination(p string) slog.Attr     { return slog.String(KeyDestination, p) }
func Target(p string) slog.Attr          { return slog.String(KeyTarget, p) }
func Attempted(n int) slog.Attr          { return slog.Int(KeyAttempted, n) }
func Copied(n int) slog.Attr             { return slog.Int(KeyCopied, n) }
func Failed(n int) slog.Attr             { return slog.Int(KeyFailed, n) }
func IntervalMinutes(n int) slog.Attr    { return slog.Int(KeyInterval, n) }
func DurationMS(ms float64) slog.Attr    { return slog.Float64(KeyDurationMS, ms) }
func ScheduleID(id string) slog.Attr     { return slog.String(KeyScheduleID, id) }
func State(s string) slog.Attr           { return slog.String(KeyState, s) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func Addr(a string) slog.Attr            { return slog.String(KeyAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
