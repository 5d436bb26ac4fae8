// Package browse implements the ghopen command: it classifies positional
// arguments into a revision, path, and line selection, composes the matching
// GitHub URL, and opens it in the default browser.
package browse
