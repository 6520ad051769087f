// Package userdata resolves the vkBasalt directory layout under
// ~/.config/vkBasalt/ and maintains it: creating the profiles directory,
// importing an existing global config as the first profile, and the doctor
// health check that reports and heals untagged profiles.
package userdata
