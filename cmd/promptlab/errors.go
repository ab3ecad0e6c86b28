package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jackzampolin/promptlab/internal/providers"
)

// kinded is implemented by every typed error in the internal packages.
type kinded interface {
	Kind() string
}

// errorKind returns the Kind of the first typed error in err's chain.
func errorKind(err error) string {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return ""
}

// reportError prints err as "error [kind]: message". Timed out requests get
// a hint naming the setting that bounds them.
func reportError(w io.Writer, err error) {
	kind := errorKind(err)
	if kind == "" {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "error [%s]: %v\n", kind, err)

	var te *providers.TransportError
	if errors.As(err, &te) && te.Timeout() {
		fmt.Fprintln(w, "hint: the request timed out; raise request_timeout in the config file or PROMPTLAB_REQUEST_TIMEOUT")
	}
}
