// Package deduplication detects when a newly entered task is "the same task"
// as one already on the today list or the do-later list.
//
// # Rules
//
// Two variants exist and callers must pick the right one for their context:
//
//  1. FindSimilar (task scope): candidates are today's tasks followed by the
//     deferred items. A candidate matches when the edit-distance similarity
//     of the normalized texts is strictly greater than TaskThreshold (0.7),
//     or when both texts mention the same synonym-table entry.
//  2. FindSimilarDeferred (deferred list only): similarity strictly greater
//     than DeferredThreshold (0.8), synonyms are not consulted.
//
// Normalization is lowercase plus trim. Both variants return the first
// qualifying candidate in pool order, not the best one: an earlier weak match
// wins over a later strong match.
//
// # Configuration
//
// DefaultConfig holds the thresholds above. Applications override them
// through internal/config (the dedup section, or TASKCRAFT_DEDUP_*). Similarity scores are memoized in a bounded
// LRU cache (CacheSize entries, 0 disables it); the cache never changes a
// result.
//
// # Usage
//
//	detector, err := deduplication.NewDetector(deduplication.DefaultConfig(), synonyms.Default(), logger)
//	if err != nil {
//	    return err
//	}
//	if match := detector.FindSimilar(text, todayTasks, deferred); match != nil {
//	    workflow.Propose(pending, match)
//	}
package deduplication
