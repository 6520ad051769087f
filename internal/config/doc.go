// Package config manages the tool's own settings stored at
// ~/.config/vkprofiles/config.yaml, such as an override for the vkBasalt
// config directory, the log level, and the vkBasalt release used to filter
// the settings catalog.
package config
