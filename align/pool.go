package align

import "sync"

// A pool aligns pairs concurrently. Each pair is independent of every
// other, so the only coordination needed is fan-out of pair indices and
// fan-in of results.
type pool struct {
	wg      *sync.WaitGroup
	pairs   chan [2]int
	results chan pairResult
}

type pairResult struct {
	i, j int
	cell Cell
}

func newAlignWorkers(numWorkers int, alignOne func(i, j int) Cell) pool {
	pairs := make(chan [2]int, numWorkers*2)
	results := make(chan pairResult, numWorkers*2)
	wg := &sync.WaitGroup{}
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			for p := range pairs {
				results <- pairResult{p[0], p[1], alignOne(p[0], p[1])}
			}
			wg.Done()
		}()
	}
	return pool{wg, pairs, results}
}

func (p pool) enqueue(i, j int) {
	p.pairs <- [2]int{i, j}
}

// done closes the pair channel and, once the workers have drained it,
// closes the result channel so the consumer's range loop terminates.
func (p pool) done() {
	close(p.pairs)
	p.wg.Wait()
	close(p.results)
}
