// Package logtail keeps the trailing lines of long logs.
//
// # Overview
//
// CI step logs can run to tens of thousands of lines, and the interesting
// part (the failure) is almost always at the end. logtail provides a small
// generic ring buffer that retains the most recent N values pushed into it,
// and helpers that read the last N lines of a file or reader in one pass.
//
// # Ring Buffer
//
// Ring[T] stores values in a fixed slice of size N:
//
//	1. Push writes at the current index and advances it (wrapping at N)
//	2. Once full, each Push overwrites the oldest value and bumps Dropped
//	3. Values returns a copy starting from the oldest retained value
//
// A non-positive capacity disables eviction and keeps everything, which
// lets callers treat "no limit" as just another configuration value.
//
// # Reading Files
//
// Read and ReadFrom scan sequentially with a 1 MiB per-line cap and use
// O(maxLines) memory regardless of input size:
//
//	lines, err := logtail.Read("/tmp/job-1234.log", 2000)
//	if err != nil {
//		log.Error("read step log", "err", err)
//	}
//
// # Error Handling
//
// Read returns nil, nil for files that do not exist. Other I/O errors are
// wrapped and returned.
//
// # Users
//
//   - buildlog: caps the lines retained per step (max_lines_per_step)
//   - replay: resolves log_file references in snapshot files
package logtail
