package importer

import (
	"sync"

	"github.com/logiandes/ms-inventario/pkg/logger"
)

// Summary totales de una importación masiva.
type Summary struct {
	Created int
	Skipped int
}

func (s *Summary) add(other Summary) {
	s.Created += other.Created
	s.Skipped += other.Skipped
}

// groupFunc procesa secuencialmente las filas [start, end) del grupo indicado
// y devuelve sus contadores.
type groupFunc func(groupNumber, start, end int) Summary

// runInGroups particiona [0, n) en grupos contiguos de tamaño groupSize y los
// ejecuta con a lo sumo maxGroups en vuelo a la vez. Las filas dentro de un
// grupo corren estrictamente en secuencia; el orden de término entre grupos no
// afecta los totales. Un pánico dentro de un grupo se recupera y sus filas se
// cuentan como omitidas, sin descartar los contadores de los demás grupos.
func runInGroups(log *logger.Logger, n, groupSize, maxGroups int, fn groupFunc) Summary {
	if n == 0 {
		return Summary{}
	}
	if groupSize <= 0 {
		groupSize = 50
	}
	if maxGroups <= 0 {
		maxGroups = 1
	}

	numGroups := (n + groupSize - 1) / groupSize
	results := make([]Summary, numGroups)

	sem := make(chan struct{}, maxGroups)
	var wg sync.WaitGroup

	for g := 0; g < numGroups; g++ {
		start := g * groupSize
		end := start + groupSize
		if end > n {
			end = n
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(g, start, end int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[g] = runGroup(log, g+1, start, end, fn)
		}(g, start, end)
	}
	wg.Wait()

	var total Summary
	for _, r := range results {
		total.add(r)
	}
	return total
}

func runGroup(log *logger.Logger, groupNumber, start, end int, fn groupFunc) (out Summary) {
	defer func() {
		if p := recover(); p != nil {
			log.Error().Int("grupo", groupNumber).Interface("panic", p).
				Msg("pánico procesando grupo de filas; el grupo completo se cuenta como omitido")
			out = Summary{Skipped: end - start}
		}
	}()
	return fn(groupNumber, start, end)
}
