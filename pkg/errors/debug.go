package errors

import (
	"errors"
	"fmt"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	APICode  int      `json:"api_code,omitempty"`
	APINotes []string `json:"api_notes,omitempty"`
}

// apiCoded is implemented by errors that carry a numeric API error code and
// per-entry notes, without this package importing the API layer.
type apiCoded interface {
	APICode() int
	APINotes() []string
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var coded apiCoded
	if errors.As(err, &coded) {
		d.APICode = coded.APICode()
		d.APINotes = coded.APINotes()
	}

	return d
}
