package clients

// Config holds the client save settings.
type Config struct {
	// OnContactDeleteFailure is "warn" (log and keep inserting) or "abort".
	OnContactDeleteFailure string `mapstructure:"on_contact_delete_failure" default:"warn"`
}
