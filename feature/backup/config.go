package backup

// Config holds the snapshot export settings.
type Config struct {
	// Prefix is the bucket folder the snapshots are written to.
	Prefix string `mapstructure:"prefix" default:"backups"`
	// Keep is how many snapshots survive pruning. Zero keeps everything.
	Keep int `mapstructure:"keep" default:"30"`
}
