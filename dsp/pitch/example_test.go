package pitch_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pitch/dsp/pitch"
)

func ExampleDetector() {
	d, err := pitch.NewDetector(16000, 60, 900)
	if err != nil {
		panic(err)
	}
	lo, hi := d.PeriodRange()
	fmt.Printf("periods %d..%d, window %d\n", lo, hi, d.Size())

	block := make([]float64, 128)
	for n := 0; n < 16000; n += len(block) {
		for i := range block {
			block[i] = 0.5 * math.Sin(2*math.Pi*200*float64(n+i)/16000)
		}
		d.Feed(block)
	}
	fmt.Println("voiced:", d.Voiced(), "mode:", d.Mode())
	// Output:
	// periods 17..267, window 534
	// voiced: true mode: tracking
}
