// Package profile owns the profiles directory: it enumerates profile files,
// reads and rewrites them, and keeps the "# vkBasalt Profile: <name>" tag
// embedded in each file consistent with the file's name.
//
// A tag lets a blob of config text be recognized as a given profile after it
// has been copied elsewhere, for example to the global vkBasalt.conf. The
// store never creates or deletes profile files; the only writes it performs
// are tag repairs of files that already exist.
package profile
