// Package diagnostic provides structured errors and warnings for scene
// documents and collapse plans.
//
// Key capabilities:
//   - Invariant violations found while planning a collapse pass
//   - Document validation problems (unknown references, bad literals)
//   - Warnings for rewrites that were applied implicitly
package diagnostic
