package meshing

import (
	"sync"

	"TerraVision/shared/util"
)

// ResultStore guarda na RAM a última geometria construída por chunk,
// para evitar re-processamento quando um chunk descarregado volta para
// a janela de streaming com a mesma versão.
type ResultStore struct {
	mu      sync.RWMutex
	results map[util.ChunkCoord]Result
}

// NewResultStore cria um novo repositório de resultados.
func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[util.ChunkCoord]Result),
	}
}

// Get retorna um resultado se existir e corresponder à versão pedida.
func (s *ResultStore) Get(coord util.ChunkCoord, version uint64) (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.results[coord]
	if ok && res.Version == version {
		// Clone para que o consumidor não corrompa o cache.
		return res.Clone(), true
	}
	return Result{}, false
}

// Store salva um resultado no repositório, substituindo qualquer versão
// anterior do mesmo chunk.
func (s *ResultStore) Store(res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[res.Coord] = res.Clone()
}

// Remove descarta o resultado cacheado de um chunk.
func (s *ResultStore) Remove(coord util.ChunkCoord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, coord)
}

// Len retorna o número de resultados cacheados.
func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// Clear limpa todo o cache de resultados.
func (s *ResultStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = make(map[util.ChunkCoord]Result)
}
