// Profiling:
// go build ./cmd/arenaprof
// ./arenaprof -mode mem
// go tool pprof -http=":8000" -nodefraction=0.001 ./arenaprof mem.pprof

package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/hupe1980/idxarena"
	"github.com/pkg/profile"
)

type expr struct {
	op       byte
	lhs, rhs idxarena.Idx[expr]
	value    int64
}

var (
	mode    = flag.String("mode", "mem", "Profile mode: mem, cpu or allocs")
	dir     = flag.String("dir", ".", "Directory for profile output")
	rounds  = flag.Int("rounds", 50, "Number of arenas built")
	exprs   = flag.Int("exprs", 100000, "Expressions allocated per arena")
	verbose = flag.Bool("v", false, "Log storage growth")
)

func main() {
	flag.Parse()

	var opt func(*profile.Profile)
	switch *mode {
	case "mem":
		opt = profile.MemProfile
	case "allocs":
		opt = profile.MemProfileAllocs
	case "cpu":
		opt = profile.CPUProfile
	default:
		log.Fatalf("unknown mode %q", *mode)
	}

	var opts []idxarena.Option
	if *verbose {
		opts = append(opts, idxarena.WithLogger(idxarena.NewTextLogger(slog.LevelDebug)))
	}

	p := profile.Start(opt, profile.ProfilePath(*dir), profile.NoShutdownHook)
	total := run(*rounds, *exprs, opts)
	p.Stop()

	fmt.Println("checksum:", total)
}

// run builds left-leaning sum chains, annotates every third node in a sparse map
// and folds each chain.
func run(rounds, n int, opts []idxarena.Option) int64 {
	var total int64
	for range rounds {
		nodes := idxarena.New[expr](append(opts, idxarena.WithName("exprs"))...)
		consts := idxarena.NewMap[expr, int64](append(opts, idxarena.WithName("consts"))...)

		acc := nodes.Alloc(expr{op: 'c', value: 1})
		for k := 1; k < n; k++ {
			leaf := nodes.Alloc(expr{op: 'c', value: int64(k)})
			acc = nodes.Alloc(expr{op: '+', lhs: acc, rhs: leaf})
			if k%3 == 0 {
				consts.Insert(leaf, int64(k))
			}
		}

		folded := idxarena.NewMap[expr, int64]()
		for i, e := range nodes.All() {
			switch e.op {
			case 'c':
				folded.Insert(i, e.value)
			case '+':
				folded.Insert(i, folded.MustGet(e.lhs)+folded.MustGet(e.rhs))
			}
		}
		total += folded.MustGet(acc)

		for _, v := range consts.Drain() {
			total -= v
		}
	}
	return total
}
