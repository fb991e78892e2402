// Profiling:
// go build ./profile/dispatch
// go tool pprof -http=":8000" -nodefraction=0.001 ./dispatch mem.pprof

package main

import (
	"time"

	"github.com/TheBitDrifter/silo"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	if err := silo.LoadConfigFromEnv(); err != nil {
		panic(err)
	}
	count := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		w := silo.Factory.NewWorld()
		c1 := silo.RegisterComponent[comp1](w)
		c2 := silo.RegisterComponent[comp2](w)
		w.RegisterSystem(silo.NewSystem("sum", silo.All{silo.Has[comp1]{}, silo.Has[comp2]{}},
			func(ctx silo.Context, _ time.Duration, entities []silo.Entity) {
				s1 := c1.Storage(ctx.Borrows())
				s2 := c2.Storage(ctx.Borrows())
				for _, en := range entities {
					a, _ := s1.GetMut(en)
					b, _ := s2.Get(en)
					a.V += b.V
					a.W += b.W
				}
			}, c1.Writes(), c2.Reads()))

		for i := range numEntities {
			ed := w.Create()
			silo.Add(ed, comp1{})
			if i%2 == 0 {
				silo.Add(ed, comp2{V: 1, W: 1})
			}
		}
		for range iters {
			w.Dispatch(time.Millisecond)
		}
	}
}
