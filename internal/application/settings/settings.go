// Package settings defines application-level configuration data.
package settings

import "time"

// DefaultProxyHost is the CORS-bypass proxy used for feed fetches.
const DefaultProxyHost = "https://allorigins.hexlet.app"

// KeyMapConfig defines the configuration for keybindings.
type KeyMapConfig struct {
	Up      string `yaml:"up" kong:"help='Up key',default='k'"`
	Down    string `yaml:"down" kong:"help='Down key',default='j'"`
	Open    string `yaml:"open" kong:"help='Open post key',default='enter'"`
	Back    string `yaml:"back" kong:"help='Close modal key',default='esc'"`
	AddFeed string `yaml:"add_feed" kong:"help='Add feed key',default='a'"`
	Quit    string `yaml:"quit" kong:"help='Quit key',default='q'"`
}

// ThemeConfig defines the color theme configuration.
type ThemeConfig struct {
	FeedTitle string `yaml:"feed_title" kong:"help='Feed title color',default='99'"`
	ShownPost string `yaml:"shown_post" kong:"help='Opened post color',default='240'"`
	Error     string `yaml:"error" kong:"help='Error message color',default='196'"`
}

// Settings represents the application configuration.
type Settings struct {
	Feeds          []string     `yaml:"feeds" kong:"help='Feed URLs submitted at startup'"`
	ProxyHost      string       `yaml:"proxy_host" kong:"help='CORS proxy host',default='${default_proxy_host}'"`
	PollIntervalMS int          `yaml:"poll_interval_ms" kong:"help='Quiet delay between polling cycles in milliseconds',default='5000'"`
	FetchTimeoutMS int          `yaml:"fetch_timeout_ms" kong:"help='Per-fetch timeout in milliseconds',default='10000'"`
	KeyMap         KeyMapConfig `yaml:"keymap" kong:"embed,prefix='keymap.'"`
	Theme          ThemeConfig  `yaml:"theme" kong:"embed,prefix='theme.'"`
	LogFile        string       `yaml:"log_file" kong:"help='Log file path'"`
}

// PollInterval returns the polling delay as a duration.
func (s Settings) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalMS) * time.Millisecond
}

// FetchTimeout returns the per-fetch timeout as a duration.
func (s Settings) FetchTimeout() time.Duration {
	return time.Duration(s.FetchTimeoutMS) * time.Millisecond
}
