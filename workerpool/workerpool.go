// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for
// row-parallel kernels. A Pool is created once and reused across many
// invocations, so repeated benchmark iterations do not pay goroutine spawn
// cost on every call.
//
// Work is distributed with a static schedule: the index range is cut into
// contiguous blocks before any index is processed (see Partition), and the
// caller blocks until every block has completed.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for range iterations {
//	    threads := pool.ParallelFor(rows, func(start, end int) {
//	        processRows(start, end)
//	    })
//	}
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Block is a half-open index range [Start, End) owned by one worker.
type Block struct {
	Start, End int
}

// Len returns the number of indices in the block.
func (b Block) Len() int {
	return b.End - b.Start
}

// Partition splits [0, n) into at most workers contiguous blocks of
// ceil(n/workers) indices each. Empty trailing blocks are dropped, so the
// returned slice length is the number of workers that will do work.
func Partition(n, workers int) []Block {
	if n <= 0 {
		return nil
	}
	workers = max(1, min(workers, n))

	chunkSize := (n + workers - 1) / workers
	blocks := make([]Block, 0, workers)
	for start := 0; start < n; start += chunkSize {
		blocks = append(blocks, Block{Start: start, End: min(start+chunkSize, n)})
	}
	return blocks
}

// Pool is a persistent worker pool. Workers are spawned once at creation and
// reused until Close.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	block   Block
	fn      func(start, end int)
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers workers.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn(item.block.Start, item.block.End)
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool. Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor calls fn once per block of Partition(n, p.NumWorkers()) and
// blocks until all calls return. It reports how many workers took part.
//
// The first block always runs on the calling goroutine; it owns index 0.
// A closed pool, or a range that yields a single block, runs sequentially
// and reports 1.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) int {
	if n <= 0 {
		return 0
	}
	if p.closed.Load() {
		fn(0, n)
		return 1
	}

	blocks := Partition(n, p.numWorkers)
	if len(blocks) == 1 {
		fn(0, n)
		return 1
	}

	var wg sync.WaitGroup
	wg.Add(len(blocks) - 1)
	for _, b := range blocks[1:] {
		p.workC <- workItem{block: b, fn: fn, barrier: &wg}
	}
	fn(blocks[0].Start, blocks[0].End)
	wg.Wait()

	return len(blocks)
}
