// internal/writers/occurrence.go
package writers

import (
	"bufio"
	"fmt"
	"io"

	"seedloc-core/index"
)

// StartOccurrenceWriter spins up a writer goroutine emitting one
// "node<TAB>offset" line per occurrence, in arrival order. Close the returned
// channel to finish; the error channel yields the first write error (nil on
// success) after the flush.
func StartOccurrenceWriter(out io.Writer, bufSize int) (chan<- index.Occurrence, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan index.Occurrence, bufSize)
	errCh := make(chan error, 1)

	go func() {
		bw := bufio.NewWriter(out)
		var err error
		for occ := range in {
			if err != nil {
				continue // drain so the producer never blocks
			}
			_, err = fmt.Fprintf(bw, "%d\t%d\n", occ.Node, occ.Offset)
		}
		if ferr := bw.Flush(); err == nil {
			err = ferr
		}
		errCh <- err
	}()

	return in, errCh
}
