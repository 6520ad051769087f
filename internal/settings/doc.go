// Package settings describes the options vkBasalt understands: their types,
// defaults, allowed ranges and values, and the release that introduced them.
// The catalog backs the settings listing and validates parsed profiles
// against a JSON Schema generated from it. Keys missing from the catalog are
// always accepted, since profiles may define custom ReShade effects.
package settings
