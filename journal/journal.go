// Package journal appends finished rounds to a JSON-lines file.
package journal

import (
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"snake-duel/game/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Writer encodes one RoundResult per line.
type Writer struct {
	w   io.Writer
	c   io.Closer
	enc *jsoniter.Encoder
}

// New writes to w. Close does not close w.
func New(w io.Writer) *Writer {
	return &Writer{w: w, enc: json.NewEncoder(w)}
}

// Open appends to the file at path, creating it if needed.
func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "open journal %s", path)
	}
	jw := New(f)
	jw.c = f
	return jw, nil
}

// Record writes r as a single line.
func (j *Writer) Record(r types.RoundResult) error {
	if err := j.enc.Encode(r); err != nil {
		return errors.Wrap(err, "encode round")
	}
	return nil
}

func (j *Writer) Close() error {
	if j.c == nil {
		return nil
	}
	return j.c.Close()
}
