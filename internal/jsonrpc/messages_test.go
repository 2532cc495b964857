package jsonrpc

import (
	"encoding/json"
	"testing"
)

func TestParseRequest(t *testing.T) {
	t.Run("full request", func(t *testing.T) {
		req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","id":7,"method":"tools/list","params":{"cursor":"x"}}`))
		if err != nil {
			t.Fatalf("ParseRequest: %v", err)
		}
		if req.Method != "tools/list" {
			t.Errorf("method: want %q, got %q", "tools/list", req.Method)
		}
		if !req.HasID || req.ID.String() != "7" {
			t.Errorf("id: want 7, got %q (present=%v)", req.ID.String(), req.HasID)
		}
		if string(req.Params) != `{"cursor":"x"}` {
			t.Errorf("params: got %s", req.Params)
		}
	})

	t.Run("not json", func(t *testing.T) {
		if _, err := ParseRequest([]byte("not json")); err == nil {
			t.Fatal("expected error for non-JSON input")
		}
	})

	t.Run("non-object json has empty method", func(t *testing.T) {
		req, err := ParseRequest([]byte(`[1,2,3]`))
		if err != nil {
			t.Fatalf("ParseRequest: %v", err)
		}
		if req.Method != "" || req.HasID {
			t.Fatalf("unexpected request: %+v", req)
		}
	})

	t.Run("non-string method", func(t *testing.T) {
		req, err := ParseRequest([]byte(`{"id":"a","method":42}`))
		if err != nil {
			t.Fatalf("ParseRequest: %v", err)
		}
		if req.Method != "" {
			t.Fatalf("want empty method, got %q", req.Method)
		}
	})

	t.Run("null params treated as absent", func(t *testing.T) {
		req, err := ParseRequest([]byte(`{"id":1,"method":"tools/call","params":null}`))
		if err != nil {
			t.Fatalf("ParseRequest: %v", err)
		}
		if req.Params != nil {
			t.Fatalf("want nil params, got %s", req.Params)
		}
	})
}

func TestResponseEchoesID(t *testing.T) {
	cases := map[string]string{
		"number":   `12`,
		"string":   `"abc"`,
		"null":     `null`,
		"fraction": `1.5`,
		"object":   `{"k":"v"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			req, err := ParseRequest([]byte(`{"id":` + raw + `,"method":"x"}`))
			if err != nil {
				t.Fatalf("ParseRequest: %v", err)
			}
			resp, err := NewResultResponse(req.ID, map[string]any{})
			if err != nil {
				t.Fatalf("NewResultResponse: %v", err)
			}
			b, err := json.Marshal(resp)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var decoded map[string]json.RawMessage
			if err := json.Unmarshal(b, &decoded); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if want, got := raw, string(decoded["id"]); want != got {
				t.Fatalf("id: want %s, got %s", want, got)
			}
		})
	}
}

func TestErrorResponseWithAbsentID(t *testing.T) {
	resp := NewErrorResponse(RequestID{}, ErrorCodeParseError, "Parse error: boom")
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"jsonrpc":"2.0","id":null,"error":{"code":-32700,"message":"Parse error: boom"}}`
	if string(b) != want {
		t.Fatalf("want %s, got %s", want, b)
	}
}
