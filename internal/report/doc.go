// Package report renders collected tag items as the plain-text status
// overview printed by the mdt command.
package report
