// Package cli defines the Cobra command tree for the vkprofiles CLI. Each file
// in this package registers one top-level command (list, use, status, etc.)
// with the root command. Command implementations delegate to internal packages
// for profile logic and only handle flag parsing, I/O formatting, and user
// interaction.
package cli
