package main

import (
	"encoding/json"
	"fmt"
	"io"

	"pmvhaven/internal/stash"
)

// writeResult encodes v as one compact JSON line.
func writeResult(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeError(w io.Writer, message string) {
	if err := writeResult(w, stash.ErrorResult{Error: message}); err != nil {
		fmt.Fprintln(w, `{"error":"pmvhaven fatal print error"}`)
	}
}
