// Package analysis provides post-run diagnostics: convergence rate
// estimation across trials and frequency content of the residual error.
package analysis
