package turtle

import "sync"

// DefaultSignalThreshold sets how often the producer signals the worker:
// enqueue signals when the queue goes from empty to one entry and again
// each time its depth reaches a multiple of this value. The worker does not
// poll; it sleeps on the condition variable while the queue is empty.
const DefaultSignalThreshold = 20

// pipelineEntry pairs a Statement AST with the evaluator that must walk
// it; the queue only ever holds entries from a single document so the
// evaluator pointer is the same for every entry, but the pair is kept
// together to match spec.md §3's "(evaluator-function, AST-root)" data
// model literally.
type pipelineEntry struct {
	eval *evaluator
	stmt *Statement
}

// statementPipeline is the FIFO of spec.md §4.6: a single producer (the
// parser goroutine) and a single consumer (the worker goroutine) share one
// mutex and one condition variable. The queue has no capacity limit;
// enqueue never blocks the producer. This is
// deliberately sync.Mutex+sync.Cond rather than a buffered channel --
// the spec calls for an explicit queue-depth signal threshold and a
// synchronous drain-on-shutdown step that a channel's close semantics
// don't give a caller direct control over.
//
// The shutdown/join/drain shape is grounded on knakk-rdf/lex.go's lexer
// goroutine lifecycle (a producer that runs until EOI then stops feeding
// its channel) combined with geoknoesis-rdf-go/rdf/jsonld.go's use of a
// mutex alongside a sync.WaitGroup to join a worker before reporting a
// result.
type statementPipeline struct {
	mu        sync.Mutex
	cond      *sync.Cond
	entries   []pipelineEntry
	closed    bool
	workerErr error
	count     int
	wg        sync.WaitGroup
}

func newStatementPipeline() *statementPipeline {
	p := &statementPipeline{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// start launches the single worker goroutine. Must be called before any
// enqueue.
func (p *statementPipeline) start() {
	p.wg.Add(1)
	go p.run()
}

func (p *statementPipeline) run() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.entries) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.entries) == 0 && p.closed {
			p.mu.Unlock()
			return
		}
		entry := p.entries[0]
		p.entries = p.entries[1:]
		p.mu.Unlock()

		n, err := entry.eval.evalStatement(entry.stmt)
		p.mu.Lock()
		p.count += n
		if err != nil && p.workerErr == nil {
			p.workerErr = err
		}
		p.mu.Unlock()
	}
}

// enqueue adds an entry to the tail of the queue, signalling the worker
// when the queue goes from empty to one entry (the only state in which the
// worker can be waiting) and each time the depth reaches a multiple of
// DefaultSignalThreshold. Signalling on every
// enqueue would be correct too; the threshold exists purely to avoid
// waking the worker for every single short statement, per spec.md §4.6's
// note that the pipeline is net overhead for small inputs.
func (p *statementPipeline) enqueue(entry pipelineEntry) {
	p.mu.Lock()
	p.entries = append(p.entries, entry)
	depth := len(p.entries)
	p.mu.Unlock()
	if depth == 1 || depth%DefaultSignalThreshold == 0 {
		p.cond.Signal()
	}
}

// shutdown signals EOI or a producer-side parse error: it wakes the
// worker so it can drain to empty and exit, joins it, then -- per
// spec.md §4.6 -- synchronously drains any entries the worker didn't
// reach in the producer's own goroutine so final ordering never depends
// on worker scheduling. Returns the total triple count (worker sum plus
// drained tail) and the first error seen by either side.
func (p *statementPipeline) shutdown() (int, error) {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()

	p.mu.Lock()
	remaining := p.entries
	p.entries = nil
	count := p.count
	err := p.workerErr
	p.mu.Unlock()

	for _, entry := range remaining {
		n, evalErr := entry.eval.evalStatement(entry.stmt)
		count += n
		if evalErr != nil && err == nil {
			err = evalErr
		}
	}
	return count, err
}
