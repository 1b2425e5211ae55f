package game

import "log/slog"

// LogValue implements slog.LogValuer so a driver can be logged as one
// attribute.
func (d *Driver) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("tick", d.tick),
		slog.String("state", d.run.Mode().String()),
		slog.Int("particles", d.ParticleCount()),
		slog.Float64("width", d.geometry.Width),
		slog.Float64("height", d.geometry.Height),
		slog.Bool("disposed", d.disposed),
	}
	if d.profile != nil {
		attrs = append(attrs,
			slog.String("variant", d.profile.Variant),
			slog.String("class", d.profile.Class.String()),
			slog.String("boundary", d.profile.Boundary.String()),
		)
	}
	return slog.GroupValue(attrs...)
}
