package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeFetch, "mirror unreachable"),
			want: "FETCH_ERROR: mirror unreachable",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeDecompress, stderrors.New("unexpected EOF"), "reading index"),
			want: "DECOMPRESSION_ERROR: reading index: unexpected EOF",
		},
		{
			name: "formatted message",
			err:  New(ErrCodeInvalidArch, "unknown architecture %q", "sparc"),
			want: `INVALID_ARCHITECTURE: unknown architecture "sparc"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeEncoding, "undecodable index")

	if !Is(err, ErrCodeEncoding) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeFetch) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeFetch) {
		t.Error("Is() should not match a plain error")
	}
	if Is(nil, ErrCodeFetch) {
		t.Error("Is() should not match nil")
	}
}

func TestIs_Wrapped(t *testing.T) {
	inner := New(ErrCodeFetch, "status 503")
	outer := fmt.Errorf("pipeline: %w", inner)

	if !Is(outer, ErrCodeFetch) {
		t.Error("Is() should unwrap fmt.Errorf chains")
	}
	if GetCode(outer) != ErrCodeFetch {
		t.Errorf("GetCode() = %q, want FETCH_ERROR", GetCode(outer))
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeFetch, cause, "fetching index")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeFetch, "mirror unreachable")); got != "mirror unreachable" {
		t.Errorf("UserMessage() = %q, want message without code prefix", got)
	}
	if got := UserMessage(stderrors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %q, want error string as-is", got)
	}
}

func TestGetCode_NonStructured(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty for plain errors", got)
	}
}
