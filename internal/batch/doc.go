// Package batch walks an input tree and runs a transcode job for every
// matching file, isolating per-file failures so one bad file never stops the
// rest of the batch. Configuration and input problems, by contrast, abort the
// run before or as soon as they surface. Outcomes are aggregated into a
// summary and optionally recorded in the run journal.
package batch
