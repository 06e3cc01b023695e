package rpcerror

import (
	"errors"
	"testing"
)

func TestWrapDoesNotMutateSentinel(t *testing.T) {
	origMessage := InternalError.Message
	origData := InternalError.Data

	wrapped := Wrap(InternalError, errors.New("boom"))
	if wrapped == InternalError {
		t.Fatal("Wrap returned the sentinel itself")
	}
	if InternalError.Message != origMessage || InternalError.Data != origData {
		t.Fatal("Wrap mutated the shared sentinel")
	}
	if wrapped.Data.(map[string]any)["cause"] != "boom" {
		t.Errorf("wrapped.Data = %v, want cause=boom", wrapped.Data)
	}
}

func TestWrapDataBeyondHead(t *testing.T) {
	err := WrapData(RequestBeyondHeadBlock, map[string]int{"requested": 255, "head": 10})
	if err.Code != RequestBeyondHeadBlock.Code {
		t.Errorf("code = %d, want %d", err.Code, RequestBeyondHeadBlock.Code)
	}
}
