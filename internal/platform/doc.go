// Package platform provides the filesystem primitives the profile manager
// builds on: link inspection and removal that never follows the link,
// permission helpers that are no-ops where Unix modes do not apply, and
// whole-file writes that land atomically via a same-directory rename.
package platform
