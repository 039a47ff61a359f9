package tiling_test

import (
	"fmt"

	"github.com/matzehuels/blockfill/pkg/tiling"
)

func ExampleSession_All() {
	s, err := tiling.NewSession(tiling.Config{
		Width: 1, Height: 1,
		MinBlock: 3, MaxBlock: 20,
		MaxSteps: 100, Seed: 3,
	})
	if err != nil {
		panic(err)
	}
	for r := range s.All() {
		fmt.Println(r)
	}
	fmt.Println(s.Reason())
	// Output:
	// #0(0,0 1x1)
	// exhausted
}

func ExampleSession_Drain() {
	s, _ := tiling.NewSession(tiling.Config{
		Width: 10, Height: 10,
		MinBlock: 3, MaxBlock: 5,
		MaxSteps: 1000, Seed: 3,
	})
	t := s.Drain()
	fmt.Println(t.Reason, t.Area())
	// Output: exhausted 100
}
