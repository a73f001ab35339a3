package sl

import "log/slog"

// Err wraps an error as a slog attribute.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Module tags a log record with the component it came from.
func Module(name string) slog.Attr {
	return slog.Attr{
		Key:   "module",
		Value: slog.StringValue(name),
	}
}

// Secret logs a sensitive value as its last four characters only.
func Secret(key, value string) slog.Attr {
	masked := "****"
	if len(value) > 4 {
		masked = "****" + value[len(value)-4:]
	}
	return slog.Attr{
		Key:   key,
		Value: slog.StringValue(masked),
	}
}
