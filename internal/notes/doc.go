// Package notes reads markdown notes from a filesystem and collects the tag
// items each one declares.
package notes
