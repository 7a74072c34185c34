package extract

import (
	"context"
	"sync"

	"github.com/listahan/listahan/internal/models"
	"go.uber.org/zap"
)

// ExtractBatch runs ExtractFile over every input and returns one result per
// file, in input order. A failure in one file never aborts the batch: the
// failing file carries its errors and processing continues. An empty input is
// valid and yields an empty BatchResult.
//
// Files are processed by a bounded worker pool; results are reassembled by
// input index so completion order never shows in the output. When ctx is
// cancelled, files not yet started are abandoned and the results completed so
// far are returned together with ctx.Err().
func (s *Service) ExtractBatch(ctx context.Context, files []Input) (*models.BatchResult, error) {
	batch := &models.BatchResult{Files: []*models.FileResult{}}
	if len(files) == 0 {
		return batch, nil
	}

	workers := s.workers
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]*models.FileResult, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.ExtractFile(files[i].Content, files[i].Filename)
			}
		}()
	}

feed:
	for i := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	for _, r := range results {
		if r == nil {
			// Abandoned by cancellation; completed files keep their results.
			continue
		}
		batch.Files = append(batch.Files, r)
		batch.TotalStudents += len(r.Students)
	}

	s.logger.Info("batch extracted",
		zap.Int("files", len(batch.Files)),
		zap.Int("total_students", batch.TotalStudents),
	)
	if err := ctx.Err(); err != nil {
		return batch, err
	}
	return batch, nil
}
