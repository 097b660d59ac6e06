package validate

import (
	"testing"

	pkgerrors "github.com/pmiguel/workers-sdk/pkg/errors"
)

type sampleParams struct {
	Name    string `json:"name" validate:"required,min=1,max=63"`
	Retries int    `json:"max_retries" validate:"gte=0,lte=100"`
}

func TestStructAcceptsValidParams(t *testing.T) {
	if err := Struct(sampleParams{Name: "my-queue", Retries: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	err := Struct(sampleParams{Name: "", Retries: 500})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation domain error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	if details["name"] != "is required" {
		t.Fatalf("unexpected name detail %q", details["name"])
	}
	if details["max_retries"] != "must be at most 100" {
		t.Fatalf("unexpected retries detail %q", details["max_retries"])
	}
}
