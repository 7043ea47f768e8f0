package main

import (
	"github.com/pkg/errors"

	"github.com/theoremus-urban-solutions/entd-longdistance/converter"
	"github.com/theoremus-urban-solutions/entd-longdistance/demand"
	"github.com/theoremus-urban-solutions/entd-longdistance/entd"
)

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
	exitUsage      = 3
	exitOutput     = 4
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// classify tags input errors with exitValidation.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var (
		missingFile   *entd.MissingFileError
		missingColumn *entd.MissingColumnError
		foreignKey    *converter.ForeignKeyError
	)
	switch {
	case errors.As(err, &missingFile), errors.As(err, &missingColumn),
		errors.As(err, &foreignKey), errors.Is(err, demand.ErrNoZones):
		return withCode(exitValidation, err)
	}
	return err
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitFailure
}
