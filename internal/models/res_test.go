package models

import (
	"encoding/json"
	"testing"
)

func TestResponseEnvelope(t *testing.T) {
	ok, err := json.Marshal(SuccessResponse(map[string]int{"n": 1}, "done"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(ok) != `{"success":true,"message":"done","data":{"n":1}}` {
		t.Errorf("unexpected success envelope: %s", ok)
	}

	bad, err := json.Marshal(ErrorResponse("boom"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(bad) != `{"success":false,"error":"boom"}` {
		t.Errorf("unexpected error envelope: %s", bad)
	}
}
