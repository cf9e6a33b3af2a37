// Package evaluator serializes access to a scoring model across many
// concurrent search jobs.
//
// A Batch owns exactly one Model instance and one worker goroutine. Callers
// submit pre-formed observation batches through Infer and block until the
// worker has run the model once for their batch. Request groups are served
// strictly FIFO by arrival; the bounded submission queue provides
// backpressure when callers outpace the model.
package evaluator
