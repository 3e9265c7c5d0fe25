// Package blockio implements a fixed-pool block cache and I/O arbiter for
// files composed of fixed-size logical records. It mediates every
// byte-range read and write against a bounded number of concurrently open
// files, translating them into a small set of aligned block transfers,
// keeping a bounded set of hot blocks resident, preserving write-through
// correctness across sparse writes that extend a file past its current
// end-of-file, and supporting a strided "group" access mode for pixel and
// table I/O.
//
// The pool itself does no header parsing, no HDU navigation and no
// platform I/O: those are supplied by the collaborators declared in
// collab.go (Driver, Navigator, HeaderRescanner, Converter). A Pool is a
// single owned object; every operation takes it (or a *File obtained from
// it) explicitly rather than reaching into package-level state.
//
// Pool and File are not safe for concurrent use by multiple goroutines
// without external synchronization: callers must serialise calls touching
// the same Pool themselves (see Status in status.go for how errors are
// threaded through a call chain instead of panicking).
package blockio
