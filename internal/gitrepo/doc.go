// Package gitrepo contains helpers for interrogating Git repositories.
//
// It exposes RepositoryManager for classifying command-line tokens and reading
// branch, revision, and remote configuration, along with remote URL parsing
// used to derive GitHub owner/repository slugs.
package gitrepo
