package errors_test

import (
	"fmt"

	"github.com/jmgilman/go/mpq/errors"
)

func ExampleNew() {
	err := errors.New(errors.CodeListfileNotFound, "listfile not found in archive")
	fmt.Println(err.Error())
	// Output: listfile not found in archive
}

func ExampleWrap() {
	cause := fmt.Errorf("permission denied")
	err := errors.Wrap(cause, errors.CodeDirCreation, "could not create output directory")

	fmt.Println(errors.GetCode(err), errors.GetSeverity(err))
	// Output: DIR_CREATION_FAILED WARNING
}

func ExampleWithContext() {
	err := errors.New(errors.CodeEntryRead, "failed to read entry")
	err = errors.WithContext(err, "entry", `scripts\war3map.j`)

	fmt.Println(err.Context()["entry"])
	// Output: scripts\war3map.j
}
