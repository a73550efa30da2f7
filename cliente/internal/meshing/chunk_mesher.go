package meshing

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"TerraVision/shared/util"
	"TerraVision/shared/world"
)

const (
	// Máximo de pedidos enfileirados por tick.
	batchPerTick = 8

	// Acima deste backlog de pedidos o tick não enfileira nada novo;
	// os workers precisam drenar primeiro.
	backlogThreshold = 10

	// Builds que excedem este tempo são tratados como falha e o chunk
	// volta para a fila de retry.
	buildTimeout = 500 * time.Millisecond
)

// Stats é um snapshot por valor dos contadores do mesher, para o HUD e
// o log periódico.
type Stats struct {
	Queued    int64
	Built     int64
	CacheHits int64
	Timeouts  int64
	Faults    int64
	Pending   int
	Retry     int
}

// ChunkMesher agenda a construção assíncrona de malhas de chunk em um
// pool fixo de workers. Canais limitados fazem o papel de fila: o tick
// da thread principal alimenta requests, os workers publicam em results
// e a thread de render drena sob orçamento de tempo.
type ChunkMesher struct {
	requests chan Request
	results  chan Result
	stop     chan struct{}
	wg       sync.WaitGroup

	store *ResultStore

	// Chunks cujo build falhou ou expirou, re-alimentados pelo próximo
	// tick. Chave única por coordenada evita pedidos duplicados.
	retry *util.UniqueQueue[util.ChunkCoord, *world.Chunk]

	queued    atomic.Int64
	built     atomic.Int64
	cacheHits atomic.Int64
	timeouts  atomic.Int64
	faults    atomic.Int64
}

// NewChunkMesher cria e inicia um mesher com o número dado de workers.
func NewChunkMesher(workers int, store *ResultStore) *ChunkMesher {
	if workers < 1 {
		workers = 1
	}
	m := &ChunkMesher{
		requests: make(chan Request, 64),
		results:  make(chan Result, 64),
		stop:     make(chan struct{}),
		store:    store,
		retry:    util.NewUniqueQueue[util.ChunkCoord, *world.Chunk](),
	}

	m.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go m.worker(i)
	}
	log.Printf("[Mesher] iniciado com %d workers", workers)
	return m
}

// Results expõe o canal de resultados prontos para upload.
func (m *ChunkMesher) Results() <-chan Result {
	return m.results
}

// Stats retorna um snapshot dos contadores.
func (m *ChunkMesher) Stats() Stats {
	return Stats{
		Queued:    m.queued.Load(),
		Built:     m.built.Load(),
		CacheHits: m.cacheHits.Load(),
		Timeouts:  m.timeouts.Load(),
		Faults:    m.faults.Load(),
		Pending:   len(m.requests),
		Retry:     m.retry.Len(),
	}
}

// Stop encerra os workers e espera todos saírem. Depois do retorno
// nenhum worker toca mais em chunk algum.
func (m *ChunkMesher) Stop() {
	close(m.stop)
	m.wg.Wait()
	log.Printf("[Mesher] parado (%d malhas construidas, %d cache hits)", m.built.Load(), m.cacheHits.Load())
}

// Tick alimenta a fila de pedidos a partir do mundo: primeiro os chunks
// em retry, depois os chunks sujos mais próximos do observador, no
// máximo batchPerTick por chamada e somente enquanto o backlog estiver
// abaixo do limiar. Chamado uma vez por frame na thread principal.
func (m *ChunkMesher) Tick(w *world.World, viewpoint mgl32.Vec3) {
	if len(m.requests) >= backlogThreshold {
		return
	}

	budget := batchPerTick

	for budget > 0 {
		coord, chunk, ok := m.retry.Dequeue()
		if !ok {
			break
		}
		// O chunk pode ter sido descarregado enquanto esperava.
		if w.GetChunk(coord) != chunk {
			continue
		}
		if m.submit(chunk, viewpoint) {
			budget--
		}
	}

	if budget == 0 {
		return
	}

	for _, chunk := range w.DirtyChunks(viewpoint) {
		if budget == 0 {
			break
		}
		if m.submit(chunk, viewpoint) {
			budget--
		}
	}
}

// submit tenta enfileirar um pedido para o chunk. Retorna false se o
// chunk já está em processamento ou se a fila encheu.
func (m *ChunkMesher) submit(chunk *world.Chunk, viewpoint mgl32.Vec3) bool {
	if !chunk.TryBeginMeshing() {
		return false
	}
	req := Request{
		Chunk:    chunk,
		Version:  chunk.Version(),
		Distance: chunk.Coord().WorldCenter().Sub(viewpoint).Len(),
	}
	select {
	case m.requests <- req:
		m.queued.Add(1)
		return true
	default:
		chunk.EndMeshing()
		return false
	}
}

func (m *ChunkMesher) worker(id int) {
	defer m.wg.Done()
	for {
		select {
		case req := <-m.requests:
			m.process(id, req)
		case <-m.stop:
			return
		}
	}
}

// process constrói a malha de um pedido, com revalidação, cache e
// proteção contra panics. Falhas devolvem o chunk à fila de retry sem
// limpar a flag de sujo, então nenhum pedido se perde.
func (m *ChunkMesher) process(id int, req Request) {
	chunk := req.Chunk
	coord := chunk.Coord()

	// Pedido obsoleto: o chunk mudou depois de enfileirado. O próximo
	// tick vai pegá-lo de novo com a versão nova.
	if chunk.Version() != req.Version {
		chunk.EndMeshing()
		return
	}

	if m.store != nil {
		if cached, ok := m.store.Get(coord, req.Version); ok {
			m.cacheHits.Add(1)
			m.deliver(cached, chunk)
			return
		}
	}

	res, status := m.build(req)
	switch status {
	case buildOK:
		if m.store != nil {
			m.store.Store(res)
		}
		m.built.Add(1)
		m.deliver(res, chunk)
	case buildTimedOut:
		m.timeouts.Add(1)
		log.Printf("[Mesher] worker %d: build de %v excedeu %v, reagendando", id, coord, buildTimeout)
		m.requeue(chunk)
	case buildFaulted:
		m.faults.Add(1)
		m.requeue(chunk)
	}
}

type buildStatus int

const (
	buildOK buildStatus = iota
	buildTimedOut
	buildFaulted
)

// build executa a construção propriamente dita. Um panic no builder é
// capturado e vira status de falha; o worker sobrevive.
func (m *ChunkMesher) build(req Request) (res Result, status buildStatus) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] build de malha para %v: %v", req.Chunk.Coord(), r)
			status = buildFaulted
		}
	}()

	start := time.Now()
	solid, water := BuildChunkMesh(req.Chunk)
	if elapsed := time.Since(start); elapsed > buildTimeout {
		return Result{}, buildTimedOut
	}

	return Result{
		Coord:   req.Chunk.Coord(),
		Version: req.Version,
		Solid:   solid,
		Water:   water,
	}, buildOK
}

func (m *ChunkMesher) deliver(res Result, chunk *world.Chunk) {
	select {
	case m.results <- res:
	case <-m.stop:
		chunk.EndMeshing()
	}
}

func (m *ChunkMesher) requeue(chunk *world.Chunk) {
	chunk.EndMeshing()
	m.retry.Enqueue(chunk.Coord(), chunk)
}
