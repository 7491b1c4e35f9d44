package records

import "github.com/hollis/taxease/internal/model"

// Stats derives the aggregate counters from the current store contents.
// It is recomputed on every call; nothing is cached, so the result always
// reflects the latest committed records.
func (s *Store) Stats() model.ProcessingStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats model.ProcessingStats
	stats.TotalFiles = len(s.records)

	for _, rec := range s.records {
		switch rec.Status {
		case model.StatusCompleted:
			stats.Processed++
			stats.Successful++
			stats.TotalValue += rec.TotalAmount
		case model.StatusError:
			stats.Processed++
			stats.Failed++
		case model.StatusPending, model.StatusProcessing:
		}
	}

	return stats
}
