// Package types holds the public contracts shared by the block engine and its
// consumers: the typed error returned by every failed build, and the
// read-only Node tree describing a built file.
//
// A CLI needs nothing else to render diagnostics:
//
//	if err != nil {
//	    var berr *types.Error
//	    if errors.As(err, &berr) {
//	        fmt.Fprintln(os.Stderr, berr.Report())
//	    }
//	}
package types
