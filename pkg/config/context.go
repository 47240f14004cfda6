package config

import "context"

type settingsKey struct{}

// WithSettings returns a copy of ctx carrying s.
func WithSettings(ctx context.Context, s *Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

// FromContext returns the settings stored by WithSettings.
func FromContext(ctx context.Context) (*Settings, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(settingsKey{}).(*Settings)
	return s, ok && s != nil
}
