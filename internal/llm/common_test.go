package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"object with prose around", "Here you go:\n{\"a\":1}\nHope it helps!", `{"a":1}`},
		{"nested object", `text {"a":{"b":2}} tail`, `{"a":{"b":2}}`},
		{"array", `Scores: [{"index":0},{"index":1}] done`, `[{"index":0},{"index":1}]`},
		{"no json at all", "just text", "just text"},
		{"unterminated", `{"a":1`, `{"a":1`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExtractJSON(c.input); got != c.want {
				t.Errorf("ExtractJSON(%q) = %q, expected %q", c.input, got, c.want)
			}
		})
	}
}

func TestNewVisionRequest(t *testing.T) {
	req := NewVisionRequest("model-v", "sys", "compare these", []string{"u1", "u2"})

	if len(req.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(req.Messages))
	}
	parts, ok := req.Messages[1].Content.([]ContentPart)
	if !ok {
		t.Fatalf("user content is %T, expected []ContentPart", req.Messages[1].Content)
	}
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	if parts[0].Type != "text" || parts[0].Text != "compare these" {
		t.Errorf("first part should be the text, got %+v", parts[0])
	}
	if parts[1].ImageURL == nil || parts[1].ImageURL.URL != "u1" {
		t.Errorf("second part should be image u1, got %+v", parts[1])
	}
}
