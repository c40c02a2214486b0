package shortestpath

import (
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Config encapsulates the settings for a Calculator.
type Config struct {
	// Workers is the size of the relaxation pool. The coordinator runs on
	// the goroutine calling Run and is not counted.
	Workers int

	// Observer, if defined, is notified whenever a frontier node is
	// selected and settled.
	Observer Observer

	// CollectTable requests the full per-node distance table in the
	// returned Result.
	CollectTable bool

	// Logger for traversal diagnostics. If not specified, output is
	// discarded.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Workers < 1 {
		err = multierror.Append(err, xerrors.Errorf("invalid value for worker count %d: %w", cfg.Workers, ErrInvalidWorkerCount))
	}
	if cfg.Observer == nil {
		cfg.Observer = nopObserver{}
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = logrus.NewEntry(l)
	}
	return err
}

// WorkersForThreads derives the worker pool size from a total thread
// budget, reserving one thread for the coordinator.
func WorkersForThreads(threads int) int { return threads - 1 }
