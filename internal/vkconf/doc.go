// Package vkconf reads the flat key = value dialect used by vkBasalt
// configuration files. Parse produces typed settings for callers that need
// structured values, while Document offers line-oriented edits that leave
// every untouched byte of the original text in place.
package vkconf
