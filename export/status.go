// Package export runs the document to file pipeline: settle and capture every
// page, compose the output artifact and persist it through a save gateway.
package export

// Stage of a running export. Progresses monotonically until one of the
// terminal states done, failed or cancelled.
// ENUM(idle, preparing, waitingForAssets, normalizing, capturing, composing, persisting, done, failed, cancelled)
type Status int

// Terminal reports whether the export run has finished.
func (s Status) Terminal() bool {
	switch s {
	case StatusDone, StatusFailed, StatusCancelled:
		return true
	}
	return false
}
