package diagnostics

import (
	"testing"

	"github.com/typedframes/framecheck/internal/token"
)

func TestErrorFormat(t *testing.T) {
	err := NewError(ErrC001, token.Token{Line: 6, Column: 4}, "Column 'emai' does not exist in UserSchema (defined at line 5)")
	want := "[C001] line 6, column 4: Column 'emai' does not exist in UserSchema (defined at line 5)"
	if err.Error() != want {
		t.Errorf("Wrong format:\nwant %q\ngot  %q", want, err.Error())
	}
}

func TestIsWarning(t *testing.T) {
	if !NewError(ErrC003, token.Token{}, "").IsWarning() {
		t.Error("C003 must be a warning")
	}
	for _, code := range []ErrorCode{ErrL001, ErrP001, ErrC001, ErrC002} {
		if NewError(code, token.Token{}, "").IsWarning() {
			t.Errorf("%s must not be a warning", code)
		}
	}
}

func TestIsParseFailure(t *testing.T) {
	parseCodes := []ErrorCode{ErrL001, ErrL002, ErrL003, ErrP001, ErrP002, ErrP003, ErrP004, ErrP005, ErrP006}
	for _, code := range parseCodes {
		if !NewError(code, token.Token{}, "").IsParseFailure() {
			t.Errorf("%s must be a parse failure", code)
		}
	}
	for _, code := range []ErrorCode{ErrC001, ErrC002, ErrC003} {
		if NewError(code, token.Token{}, "").IsParseFailure() {
			t.Errorf("%s must not be a parse failure", code)
		}
	}
}
