package engine

import (
	"context"
	"sync"
	"time"

	"github.com/Veraticus/worth-it/internal/model"
)

// BatchSummary contains statistics about a batch run.
type BatchSummary struct {
	Categories     map[model.SpendCategory]int `json:"categories,omitempty"`
	ProcessingTime time.Duration               `json:"processingTime"`
	Total          int                         `json:"total"`
	Buy            int                         `json:"buy"`
	DontBuy        int                         `json:"dontBuy"`
	Flippable      int                         `json:"flippable"`
}

// EvaluateBatch evaluates purchases in parallel. Reports keep input order.
// progress, when set, is called once per finished purchase from worker goroutines.
// On cancellation the reports finished so far are returned with ctx.Err().
func (e *Evaluator) EvaluateBatch(ctx context.Context, inputs []model.PurchaseInput, progress func()) ([]Report, BatchSummary, error) {
	startTime := time.Now()

	workChan := make(chan int, len(inputs))
	for i := range inputs {
		workChan <- i
	}
	close(workChan)

	reports := make([]Report, len(inputs))
	done := make([]bool, len(inputs))

	workers := min(e.workers, len(inputs))
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(workerID int) {
			defer wg.Done()
			for i := range workChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				reports[i] = e.Evaluate(ctx, inputs[i])
				done[i] = true
				if progress != nil {
					progress()
				}
				e.logger.Debug("batch item evaluated", "worker_id", workerID, "index", i)
			}
		}(w)
	}
	wg.Wait()

	summary := BatchSummary{ProcessingTime: time.Since(startTime)}
	finished := make([]Report, 0, len(inputs))
	for i, r := range reports {
		if !done[i] {
			continue
		}
		finished = append(finished, r)
		summary.add(r)
	}

	e.logger.Info("batch evaluated",
		"total", summary.Total,
		"buy", summary.Buy,
		"dont_buy", summary.DontBuy,
		"flippable", summary.Flippable,
		"duration", summary.ProcessingTime)

	if err := ctx.Err(); err != nil && len(finished) < len(inputs) {
		return finished, summary, err
	}
	return finished, summary, nil
}

func (s *BatchSummary) add(r Report) {
	s.Total++
	switch r.Analysis.Decision {
	case model.DecisionBuy:
		s.Buy++
	case model.DecisionDontBuy:
		s.DontBuy++
		if r.Flip != nil && r.Flip.Found() {
			s.Flippable++
		}
	}
	if r.Classification != nil {
		if s.Categories == nil {
			s.Categories = make(map[model.SpendCategory]int)
		}
		s.Categories[r.Classification.Category]++
	}
}
