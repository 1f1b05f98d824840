// option.go defines the options of a processor.

// Package processor provides the channel plumbing that lets an external
// scheduler drive a kernel: packets in, packets out, errors out.
package processor

type Option interface {
	apply(*config)
}

type config struct {
	QueueSizeInput  uint
	QueueSizeOutput uint
	QueueSizeError  uint
}

type OptionQueueSizeInput uint

func (o OptionQueueSizeInput) apply(cfg *config) {
	cfg.QueueSizeInput = uint(o)
}

type OptionQueueSizeOutput uint

func (o OptionQueueSizeOutput) apply(cfg *config) {
	cfg.QueueSizeOutput = uint(o)
}

type OptionQueueSizeError uint

func (o OptionQueueSizeError) apply(cfg *config) {
	cfg.QueueSizeError = uint(o)
}
