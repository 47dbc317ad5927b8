package templates

import "time"

// Option pattern
type Option func(*EmailData)

func WithResetURL(url string) Option { return func(d *EmailData) { d.ResetURL = url } }

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04 MST")
	}
}

func NewEmailData(appName, name, email string, opts ...Option) EmailData {
	d := EmailData{Name: name, Email: email, AppName: appName}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
