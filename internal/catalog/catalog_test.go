package catalog

import (
	"errors"
	"testing"
)

func TestDefault_ReferenceData(t *testing.T) {
	c := Default()
	if c.Len() != 10 {
		t.Fatalf("expected 10 experiments, got %d", c.Len())
	}

	first, err := c.Get(0)
	if err != nil {
		t.Fatalf("Get(0): %v", err)
	}
	if first.Title != "Rolling a Die" || first.Correct != Impossible {
		t.Errorf("unexpected first item: %+v", first)
	}

	last, err := c.Get(9)
	if err != nil {
		t.Fatalf("Get(9): %v", err)
	}
	if last.Outcome != "Rolling a number between 1 and 6" || last.Correct != Certain {
		t.Errorf("unexpected last item: %+v", last)
	}
}

func TestDefault_AllClassificationsValid(t *testing.T) {
	for i, it := range Default().Items() {
		if !it.Correct.Valid() {
			t.Errorf("item %d has invalid classification %q", i, it.Correct)
		}
	}
}

func TestDefault_AnswerKey(t *testing.T) {
	want := []Classification{
		Impossible, Possible, Possible, Certain, Impossible,
		Possible, Certain, Possible, Impossible, Certain,
	}
	items := Default().Items()
	for i, c := range want {
		if items[i].Correct != c {
			t.Errorf("item %d: correct = %q, want %q", i, items[i].Correct, c)
		}
	}
}

func TestGet_OutOfRange(t *testing.T) {
	c := Default()
	for _, idx := range []int{-1, c.Len(), c.Len() + 5} {
		_, err := c.Get(idx)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Get(%d): expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	c := Default()
	it, _ := c.Get(2)
	it.Visual[0] = "X"
	again, _ := c.Get(2)
	if again.Visual[0] == "X" {
		t.Error("mutating a returned item changed the catalog")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
	}{
		{"empty", nil},
		{"bad classification", []Item{{Title: "t", Outcome: "o", Correct: "likely"}}},
		{"missing title", []Item{{Outcome: "o", Correct: Possible}}},
		{"missing outcome", []Item{{Title: "t", Correct: Possible}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.items)
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	items := []Item{{Title: "t", Outcome: "o", Visual: []string{"a"}, Correct: Certain}}
	c, err := New(items)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	items[0].Title = "changed"
	items[0].Visual[0] = "b"
	got, _ := c.Get(0)
	if got.Title != "t" || got.Visual[0] != "a" {
		t.Errorf("catalog shares memory with input: %+v", got)
	}
}

func TestParse_SchemaRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"not an array", `{"title":"x"}`},
		{"empty array", `[]`},
		{"unknown classification", `[{"title":"t","description":"d","visual":[],"outcome":"o","correct":"likely"}]`},
		{"missing field", `[{"title":"t","description":"d","visual":[],"correct":"certain"}]`},
		{"extra field", `[{"title":"t","description":"d","visual":[],"outcome":"o","correct":"certain","points":3}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestParse_Valid(t *testing.T) {
	raw := `[{"title":"Coin","description":"Flip it.","visual":["o"],"outcome":"Heads","correct":"possible"}]`
	c, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", c.Len())
	}
	it, _ := c.Get(0)
	if it.Correct != Possible {
		t.Errorf("Correct = %q, want possible", it.Correct)
	}
}

func TestParseClassification(t *testing.T) {
	tests := []struct {
		in      string
		want    Classification
		wantErr bool
	}{
		{"impossible", Impossible, false},
		{" Possible ", Possible, false},
		{"CERTAIN", Certain, false},
		{"", "", true},
		{"likely", "", true},
		{"none", "", true},
	}
	for _, tt := range tests {
		got, err := ParseClassification(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidClassification) {
				t.Errorf("ParseClassification(%q): expected ErrInvalidClassification, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseClassification(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
