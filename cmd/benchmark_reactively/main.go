package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/embrajs/reactivity"
	"github.com/olekukonko/tablewriter"
)

func main() {
	log.Print("Starting cellx style benchmark, please wait...")
	defer log.Print("Finished cellx style benchmark")

	perfTestCfgs := []benchmarkTestConfig{
		{
			name:           "simple component",
			width:          10, // can't change for decorator tests
			staticFraction: 1,  // can't change for decorator tests
			nSources:       2,  // can't change for decorator tests
			totalLayers:    5,
			readFraction:   0.2,
			iterations:     600000,
			expectedSum:    19199968,
			expectedCount:  3480000,
		},
		{
			name:           "dynamic component",
			width:          10,
			totalLayers:    10,
			staticFraction: 0.75,
			nSources:       6,
			readFraction:   0.2,
			iterations:     15000,
			expectedSum:    302310782860,
			expectedCount:  1155000,
		},
		{
			name:           "large web app",
			width:          1000,
			totalLayers:    12,
			staticFraction: 0.95,
			nSources:       4,
			readFraction:   1,
			iterations:     7000,
			expectedSum:    29355933696000,
			expectedCount:  1463000,
		},
		{
			name:           "wide dense",
			width:          1000,
			totalLayers:    5,
			staticFraction: 1,
			nSources:       25,
			readFraction:   1,
			iterations:     3000,
			expectedSum:    1171484375000,
			expectedCount:  732000,
		},
		{
			name:           "deep",
			width:          5,
			totalLayers:    500,
			staticFraction: 1,
			nSources:       3,
			readFraction:   1,
			iterations:     500,
			expectedSum:    3.0239642676898464e241,
			expectedCount:  1246500,
		},
		{
			name:           "very dynamic",
			width:          100,
			totalLayers:    15,
			staticFraction: 0.5,
			nSources:       6,
			readFraction:   1,
			iterations:     2000,
			expectedSum:    15664996402790400,
			expectedCount:  1078000,
		},
	}

	type results struct {
		sum         int
		count       int64
		duration    time.Duration
		fingerprint uint64
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"framework", "size", "nSources", "read%", "static%",
		"nTimes", "test", "time",
		"updateRate", "fingerprint", "title",
	})

	testRepeats := 5
	for _, cfg := range perfTestCfgs {
		log.Printf("Running '%s' config", cfg.name)
		counter := new(int64)
		rt := reactivity.New()
		graph := benchmarkMakeGraph(&benchmarkMakeGraphConfig{
			rt:             rt,
			counter:        counter,
			width:          cfg.width,
			totalLayers:    cfg.totalLayers,
			nSources:       cfg.nSources,
			staticFraction: cfg.staticFraction,
		})

		runOnce := func() (int, uint64) {
			return benchmarkRunGraph(&benchmarkRunGraphConfig{
				rt:           rt,
				graph:        graph,
				iteration:    cfg.iterations,
				readFraction: cfg.readFraction,
			})
		}
		// run once to warm up
		runOnce()

		bestResult := &results{
			duration: time.Hour,
		}

		for i := 0; i < testRepeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d %d%%", cfg.name, i+1, testRepeats, (i+1)*100/testRepeats)
			*counter = 0
			start := time.Now()
			sum, fingerprint := runOnce()
			duration := time.Since(start)

			if duration < bestResult.duration {
				bestResult.duration = duration
				bestResult.sum = sum
				bestResult.count = *counter
				bestResult.fingerprint = fingerprint
			}
		}

		if float64(bestResult.sum) != cfg.expectedSum {
			log.Printf("'%s': sum %d, expected %v", cfg.name, bestResult.sum, cfg.expectedSum)
		}

		makeTitle := func() string {
			sb := strings.Builder{}
			sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources))
			if cfg.staticFraction < 1 {
				sb.WriteString(" dynamic")
			}
			if cfg.readFraction < 1 {
				sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
			}
			return sb.String()
		}

		updateRate := float64(bestResult.count) / (float64(bestResult.duration) / float64(time.Millisecond))

		table.Append([]string{
			"reactivity", // framework
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers), // size
			fmt.Sprint(cfg.nSources),                         // nSources
			fmt.Sprint(cfg.readFraction),                     // read%
			fmt.Sprint(cfg.staticFraction),                   // static%
			humanize.Comma(cfg.iterations),                   // nTimes
			cfg.name,                                         // test
			fmt.Sprint(bestResult.duration),                  // time
			humanize.Comma(int64(updateRate)),                // updateRate
			fmt.Sprintf("%016x", bestResult.fingerprint),     // fingerprint
			makeTitle(),                                      // title
		})
	}
	table.Render() // Send output
}

type benchmarkTestConfig struct {
	name           string  // friendly name for the test, should be unique
	width          int64   // width of dependency graph to construct
	totalLayers    int64   // depth of dependency graph to construct
	staticFraction float64 // fraction of nodes that are static
	nSources       int64   // construct a graph with number of sources in each node
	readFraction   float64 // fraction of [0, 1] elements in the last layer from which to read values in each test iteration
	iterations     int64   // number of test iterations
	expectedSum    float64 // sum of all iterations, for verification
	expectedCount  int64   // count of all iterations, for verification
}

type benchmarkGraph struct {
	sources []reactivity.Writable[int]
	layers  [][]reactivity.Readable[int]
}

type benchmarkMakeGraphConfig struct {
	rt                           *reactivity.Runtime
	counter                      *int64
	width, totalLayers, nSources int64
	staticFraction               float64
}

func benchmarkMakeGraph(cfg *benchmarkMakeGraphConfig) *benchmarkGraph {
	sources := make([]reactivity.Writable[int], cfg.width)
	readables := make([]reactivity.Readable[int], cfg.width)
	for i := range sources {
		sources[i] = reactivity.NewWritable(cfg.rt, i)
		readables[i] = sources[i]
	}
	return &benchmarkGraph{
		sources: sources,
		layers: makeBenchmarkDependentRows(&benchmarkMakeDependentRowsConfig{
			rt:             cfg.rt,
			sources:        readables,
			numRows:        cfg.totalLayers - 1,
			counter:        cfg.counter,
			staticFraction: cfg.staticFraction,
			nSources:       cfg.nSources,
		}),
	}
}

type benchmarkRunGraphConfig struct {
	rt           *reactivity.Runtime
	graph        *benchmarkGraph
	iteration    int64
	readFraction float64
}

// Execute the graph by writing one of the sources and reading some or all of the leaves.
// return the sum of all leaf values and a fingerprint of the leaves read last
func benchmarkRunGraph(cfg *benchmarkRunGraphConfig) (int, uint64) {
	random := rand.New(rand.NewSource(0))
	leaves := cfg.graph.layers[len(cfg.graph.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - cfg.readFraction)))
	readLeaves := benchmarkRemoveElems(leaves, skipCount, random)

	for i := 0; i < int(cfg.iteration); i++ {
		// writing signals
		cfg.rt.Batch(func() {
			sourceDex := i % len(cfg.graph.sources)
			cfg.graph.sources[sourceDex].Set(i + sourceDex)
		})

		// reading nth leaves
		for _, leaf := range readLeaves {
			leaf.Get()
		}
	}

	sum := 0
	digest := xxhash.New()
	for _, leaf := range readLeaves {
		v := leaf.Get()
		sum += v
		digest.WriteString(strconv.Itoa(v))
	}
	return sum, digest.Sum64()
}

func benchmarkRemoveElems[T any](src []T, rmCount int, rand *rand.Rand) []T {
	copyWithRemovals := make([]T, len(src))
	copy(copyWithRemovals, src)
	for i := 0; i < rmCount; i++ {
		rmDex := rand.Intn(len(copyWithRemovals))
		copyWithRemovals[rmDex] = copyWithRemovals[len(copyWithRemovals)-1]
		copyWithRemovals = copyWithRemovals[:len(copyWithRemovals)-1]
	}
	return copyWithRemovals
}

type benchmarkMakeDependentRowsConfig struct {
	rt                *reactivity.Runtime
	sources           []reactivity.Readable[int]
	numRows, nSources int64
	counter           *int64
	staticFraction    float64
}

func makeBenchmarkDependentRows(cfg *benchmarkMakeDependentRowsConfig) [][]reactivity.Readable[int] {
	prevRow := cfg.sources
	random := rand.New(rand.NewSource(0))
	rows := make([][]reactivity.Readable[int], cfg.numRows)
	for l := int64(0); l < cfg.numRows; l++ {
		rows[l] = makeBenchmarkRow(&benchmarkRowConfig{
			rt:             cfg.rt,
			sources:        prevRow,
			counter:        cfg.counter,
			staticFraction: cfg.staticFraction,
			nSources:       cfg.nSources,
			rand:           random,
		})
		prevRow = rows[l]
	}
	return rows
}

type benchmarkRowConfig struct {
	rt             *reactivity.Runtime
	sources        []reactivity.Readable[int]
	counter        *int64
	staticFraction float64
	nSources       int64
	rand           *rand.Rand
}

func makeBenchmarkRow(cfg *benchmarkRowConfig) []reactivity.Readable[int] {
	row := make([]reactivity.Readable[int], len(cfg.sources))

	for myDex := range cfg.sources {
		mySources := make([]reactivity.Readable[int], 0, cfg.nSources)
		for sourceDex := 0; sourceDex < int(cfg.nSources); sourceDex++ {
			mySources = append(mySources, cfg.sources[(myDex+sourceDex)%len(cfg.sources)])
		}

		staticNode := cfg.rand.Float64() < cfg.staticFraction
		if staticNode {
			// static node, always reference sources
			row[myDex] = reactivity.Compute(cfg.rt, func(get reactivity.Get) int {
				*cfg.counter++
				sum := 0
				for _, source := range mySources {
					sum += reactivity.Read(get, source)
				}
				return sum
			})
			continue
		}

		first := mySources[0]
		tail := mySources[1:]
		row[myDex] = reactivity.Compute(cfg.rt, func(get reactivity.Get) int {
			*cfg.counter++
			sum := reactivity.Read(get, first)
			shouldDrop := sum&0x1 > 0
			dropDex := sum % len(tail)

			for i := 0; i < len(tail); i++ {
				if shouldDrop && i == dropDex {
					continue
				}
				sum += reactivity.Read(get, tail[i])
			}
			return sum
		})
	}

	return row
}
