// Package emit coordinates a generation pass: request expansion, variant
// precondition checks, once-only target emission and the per-pass report.
package emit
