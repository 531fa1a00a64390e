package main

import (
	"context"
	"io"

	"go.uber.org/multierr"
)

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdown drains the server, then closes every resource even if an earlier
// step failed, and returns all failures combined.
func shutdown(ctx context.Context, server shutdowner, closers ...io.Closer) error {
	var err error
	if server != nil {
		err = multierr.Append(err, server.Shutdown(ctx))
	}
	for _, c := range closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}
