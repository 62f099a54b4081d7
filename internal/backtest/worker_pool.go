package backtest

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ducminhle1904/portfolio-backtest/pkg/config"
)

// WorkerPool manages parallel simulation execution
type WorkerPool struct {
	runner      *Runner
	workerCount int
	jobQueue    chan Job
	resultQueue chan JobResult
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// Job represents a single simulation task
type Job struct {
	ID     string
	Config *config.SimulationConfig
}

// JobResult represents the result of a simulation job
type JobResult struct {
	ID       string
	Output   *SimulationOutput
	Duration time.Duration
}

// NewWorkerPool creates a new worker pool for parallel simulations
func NewWorkerPool(runner *Runner, workerCount int, jobBufferSize int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		runner:      runner,
		workerCount: workerCount,
		jobQueue:    make(chan Job, jobBufferSize),
		resultQueue: make(chan JobResult, jobBufferSize),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start starts the worker pool
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Stop stops the worker pool gracefully
func (wp *WorkerPool) Stop() {
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
	wp.cancel()
}

// Submit submits a simulation job to the pool
func (wp *WorkerPool) Submit(job Job) error {
	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	}
}

// Results returns the result channel for collecting completed jobs
func (wp *WorkerPool) Results() <-chan JobResult {
	return wp.resultQueue
}

// worker processes simulation jobs until the queue closes
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case job, ok := <-wp.jobQueue:
			if !ok {
				return
			}

			result := wp.processJob(job)

			select {
			case wp.resultQueue <- result:
			case <-wp.ctx.Done():
				return
			}

		case <-wp.ctx.Done():
			return
		}
	}
}

func (wp *WorkerPool) processJob(job Job) JobResult {
	startTime := time.Now()
	output := wp.runner.Run(job.Config)
	return JobResult{
		ID:       job.ID,
		Output:   output,
		Duration: time.Since(startTime),
	}
}

// RunBatch executes multiple simulation configurations in parallel and
// returns the outputs keyed by job ID. Job IDs are positional when names are
// not supplied. Submission runs concurrently with result collection so a
// batch larger than the queue buffers cannot wedge the pool.
func (wp *WorkerPool) RunBatch(configs []*config.SimulationConfig) map[string]*SimulationOutput {
	wp.Start()
	defer wp.Stop()

	go func() {
		for i, cfg := range configs {
			job := Job{
				ID:     fmt.Sprintf("job_%d", i),
				Config: cfg,
			}
			if err := wp.Submit(job); err != nil {
				return
			}
		}
	}()

	outputs := make(map[string]*SimulationOutput, len(configs))
	for len(outputs) < len(configs) {
		result := <-wp.resultQueue
		outputs[result.ID] = result.Output
	}
	return outputs
}
