package render

// Rendering mode. Print surfaces never emit interactive affordances, so no
// style normalization pass is needed before capture.
// ENUM(interactive, print)
type Mode int
