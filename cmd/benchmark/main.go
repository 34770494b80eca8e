package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/embrajs/reactivity"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	profile = flag.String("cpuprofile", "default.pgo", "write a cpu profile to this file, empty to disable")
	iters   = flag.Int("iters", 100, "writes per benchmark")
	batched = flag.Bool("batched", false, "also run the batched write benchmark")
)

func main() {
	flag.Parse()

	if *profile != "" {
		f, err := os.Create(*profile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	benchmarkPropagate(false)

	benchmarkPropagate(true)
	if *batched {
		benchmarkBatched(true)
	}
}

var (
	ww = []int{1, 10, 100, 1_000}
	hh = []int{1, 10, 100, 1_000}
)

func addOne(v int) int {
	return v + 1
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, calc *tachymeter.Metrics) {
	tbl.AppendRows([]table.Row{
		{
			name,
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}

// buildGrid makes w chains of h derived nodes on top of src, each chain
// observed by a watcher.
func buildGrid(rt *reactivity.Runtime, src reactivity.Writable[int], w, h int) {
	for i := 0; i < w; i++ {
		var last reactivity.Readable[int] = src
		for j := 0; j < h; j++ {
			last = reactivity.Derive(rt, last, addOne)
		}
		tail := last
		reactivity.Watch(rt, func(get reactivity.Get, _ reactivity.Disposer) func() {
			reactivity.Read(get, tail)
			return nil
		})
	}
}

func benchmarkPropagate(shouldRender bool) {
	tbl := newTable("reactivity: propagate")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: *iters})

			rt := reactivity.New(reactivity.WithErrorHandler(func(err error) {
				log.Panic(err)
			}))
			src := reactivity.NewWritable(rt, 1)
			buildGrid(rt, src, w, h)

			for i := 0; i < *iters; i++ {
				start := time.Now()
				src.Set(src.Get() + 1)
				tach.AddTime(time.Since(start))
			}

			appendCalc(tbl, fmt.Sprintf("propagate: %d * %d", w, h), tach.Calc())
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func benchmarkBatched(shouldRender bool) {
	tbl := newTable("reactivity: batched writes")

	for _, w := range ww {
		tach := tachymeter.New(&tachymeter.Config{Size: *iters})

		rt := reactivity.New()
		sources := make([]reactivity.ReadableLike[int], w)
		writables := make([]reactivity.Writable[int], w)
		for i := range sources {
			writables[i] = reactivity.NewWritable(rt, i)
			sources[i] = writables[i]
		}
		sum := reactivity.Combine(rt, sources, func(values []int) int {
			total := 0
			for _, v := range values {
				total += v
			}
			return total
		})
		sum.Reaction(func(int) {})

		for i := 0; i < *iters; i++ {
			start := time.Now()
			if err := rt.Batch(func() {
				for _, wr := range writables {
					wr.Set(wr.Get() + 1)
				}
			}); err != nil {
				log.Fatal(err)
			}
			tach.AddTime(time.Since(start))
		}

		appendCalc(tbl, fmt.Sprintf("batch: %d writes", w), tach.Calc())
	}

	if shouldRender {
		tbl.Render()
	}
}
