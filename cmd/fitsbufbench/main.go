// Command fitsbufbench drives a fixed-pool block cache against a set of
// real files concurrently, one goroutine per file, each goroutine
// serializing its own calls to the shared pool behind one mutex. Each
// goroutine writes and reads back table rows through TableWriteBytes and
// TableReadBytes under contention and logs the pool's OptimalChunk advice;
// it does not benchmark the underlying filesystem.
package main

import (
	"context"
	"flag"
	"os"
	"sync"

	"github.com/skyfits/fitsbuf/blockio"
	"github.com/skyfits/fitsbuf/convert"
	"github.com/skyfits/fitsbuf/fileio"
	"github.com/skyfits/fitsbuf/fits"
	"github.com/skyfits/fitsbuf/log"
	"github.com/skyfits/fitsbuf/must"
	"github.com/skyfits/fitsbuf/osdriver"
	"golang.org/x/sync/errgroup"
)

func main() {
	slots := flag.Int("slots", blockio.DefaultSlots, "number of resident blocks in the pool")
	rowLength := flag.Int64("row-length", 2880, "synthetic table row length in bytes")
	numRows := flag.Int64("rows", 100, "synthetic table row count to write per file")
	log.AddFlags()
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatal("usage: fitsbufbench [flags] file...")
	}

	pool := blockio.NewPool(*slots)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(context.Background())
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return exerciseFile(ctx, pool, &mu, path, *rowLength, *numRows)
		})
	}
	must.Nil(g.Wait())
}

// exerciseFile opens path, writes numRows rows of rowLength bytes through
// the shared pool, reads them back, and flushes, serializing every call
// into the pool behind mu.
func exerciseFile(ctx context.Context, pool *blockio.Pool, mu *sync.Mutex, path string, rowLength, numRows int64) (err error) {
	driver, initSize, err := osdriver.Open(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer fileio.CloseAndReport(driver, &err)

	nav := fits.NewSingleHDU(blockio.ImageHDU, rowLength, 0)

	mu.Lock()
	f := pool.Open(driver, nav, nav, convert.IEEE{}, initSize)
	mu.Unlock()

	var status blockio.Status
	row := make([]byte, rowLength)
	for r := int64(1); r <= numRows; r++ {
		for i := range row {
			row[i] = byte(r)
		}
		mu.Lock()
		pool.TableWriteBytes(ctx, f, r, 1, int(rowLength), row, &status)
		mu.Unlock()
		if status.Failed() {
			return status.Err()
		}
	}

	chunk := func() int64 {
		mu.Lock()
		defer mu.Unlock()
		return pool.OptimalChunk(f, rowLength)
	}()
	log.Debug.Printf("%s: optimal chunk size %d rows", path, chunk)

	readBuf := make([]byte, rowLength)
	for r := int64(1); r <= numRows; r++ {
		mu.Lock()
		pool.TableReadBytes(ctx, f, r, 1, int(rowLength), readBuf, &status)
		mu.Unlock()
		if status.Failed() {
			return status.Err()
		}
	}

	mu.Lock()
	pool.FlushFile(ctx, f, true, &status)
	pool.Close(ctx, f, &status)
	mu.Unlock()
	if status.Failed() {
		return status.Err()
	}
	log.Printf("%s: wrote and read back %d rows of %d bytes", path, numRows, rowLength)
	return nil
}
