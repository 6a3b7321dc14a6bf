// Package operations owns the batch side of the pipeline: the fixed
// manifest of known raw exports and the runner that tidies each one into
// the dataset store with per-dataset failure isolation.
package operations
