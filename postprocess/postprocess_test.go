package postprocess

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minios-linux/tskit/tsfile"
)

func message(source, translation string) *tsfile.Message {
	return &tsfile.Message{
		Source:      source,
		Translation: tsfile.Translation{Text: translation},
		Locations:   []tsfile.Location{{Filename: "../gui.cpp", Line: "7"}},
	}
}

// docWith builds a single-context document with n valid filler messages
// plus the given extra messages.
func docWith(n int, extra ...*tsfile.Message) *tsfile.Document {
	ctx := &tsfile.Context{Name: "MainWindow"}
	for i := 0; i < n; i++ {
		ctx.Messages = append(ctx.Messages, message(fmt.Sprintf("Label %d", i), fmt.Sprintf("Метка %d", i)))
	}
	ctx.Messages = append(ctx.Messages, extra...)
	return &tsfile.Document{Version: "2.1", Language: "ru", Contexts: []*tsfile.Context{ctx}}
}

func TestDocumentRepairsTranslations(t *testing.T) {
	m := message("Amount: %1", "Сумма: 1%")
	doc := docWith(0, m)

	p := New(1, nil)
	keep, err := p.Document("ru.ts", doc)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if !keep {
		t.Fatal("document discarded")
	}
	if m.Translation.Text != "Сумма: %1" {
		t.Fatalf("translation = %q", m.Translation.Text)
	}
	if p.Result.Fixed != 1 || p.Result.HadErrors {
		t.Fatalf("Result = %+v", p.Result)
	}
}

func TestDocumentClearsIrreparable(t *testing.T) {
	m := message("Amount: %1", "нет плейсхолдера")
	p := New(1, nil)

	if err := p.message("ru.ts", m); err != nil {
		t.Fatalf("message: %v", err)
	}
	if !m.Translation.Unfinished() || m.Translation.Text != "" {
		t.Fatalf("translation not cleared: %#v", m.Translation)
	}
	if !p.Result.HadErrors || p.Result.Fixed != 0 {
		t.Fatalf("Result = %+v", p.Result)
	}

	// An irreparable message must not survive into the shipped document.
	doc := docWith(1, message("Amount: %1", "ничего"))
	keep, err := p.Document("ru.ts", doc)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if !keep {
		t.Fatal("document discarded")
	}
	if n := doc.MessageCount(); n != 1 {
		t.Fatalf("MessageCount = %d, want 1", n)
	}
}

func TestDocumentAppliesContentPolicy(t *testing.T) {
	// Specifier profiles match exactly; the address alone must sink it.
	const text = "send to 1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa now"
	m := message(text, text)

	var findings []string
	p := New(1, func(format string, args ...any) {
		findings = append(findings, fmt.Sprintf(format, args...))
	})

	if err := p.message("ru.ts", m); err != nil {
		t.Fatalf("message: %v", err)
	}
	if !m.Translation.Unfinished() {
		t.Fatalf("address translation not cleared: %#v", m.Translation)
	}
	if !p.Result.HadErrors {
		t.Fatalf("Result = %+v", p.Result)
	}
	if len(findings) != 1 || !strings.Contains(findings[0], "payment address") {
		t.Fatalf("findings = %q", findings)
	}
}

func TestDocumentRepairsNumerusVariants(t *testing.T) {
	m := &tsfile.Message{
		Numerus: "yes",
		Source:  "%n minute(s)",
		Translation: tsfile.Translation{
			NumerusForms: []string{"%1 минута", "%n минуты", "%n минут"},
		},
	}
	p := New(1, nil)

	if err := p.message("ru.ts", m); err != nil {
		t.Fatalf("message: %v", err)
	}
	if got := m.Translation.NumerusForms[0]; got != "%n минута" {
		t.Fatalf("numerusform = %q", got)
	}
	if p.Result.Fixed != 1 || p.Result.HadErrors {
		t.Fatalf("Result = %+v", p.Result)
	}
}

func TestDocumentThreshold(t *testing.T) {
	t.Run("nine survivors are discarded", func(t *testing.T) {
		p := New(10, nil)
		keep, err := p.Document("ru.ts", docWith(9))
		if err != nil {
			t.Fatalf("Document: %v", err)
		}
		if keep {
			t.Fatal("document with 9 messages kept")
		}
		if p.Result.Removed != 1 {
			t.Fatalf("Removed = %d", p.Result.Removed)
		}
	})

	t.Run("ten survivors are kept", func(t *testing.T) {
		p := New(10, nil)
		keep, err := p.Document("ru.ts", docWith(10))
		if err != nil {
			t.Fatalf("Document: %v", err)
		}
		if !keep {
			t.Fatal("document with 10 messages discarded")
		}
	})

	t.Run("pruning counts against the threshold", func(t *testing.T) {
		// 10 messages, one of them irreparable: 9 survive, discard.
		p := New(10, nil)
		keep, err := p.Document("ru.ts", docWith(9, message("Amount: %1", "ничего")))
		if err != nil {
			t.Fatalf("Document: %v", err)
		}
		if keep {
			t.Fatal("document kept after pruning below threshold")
		}
	})
}

func TestDocumentFatalOnBrokenSource(t *testing.T) {
	p := New(1, nil)
	_, err := p.Document("ru.ts", docWith(0, message("progress: 50%", "прогресс: 50")))
	if err == nil {
		t.Fatal("expected fatal error for broken source string")
	}
}

func TestFile(t *testing.T) {
	t.Run("processed document is written", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "app_ru.ts.orig")
		out := filepath.Join(dir, "app_ru.ts")

		doc := docWith(3, message("Open", ""))
		doc.Contexts[0].Messages[3].Translation.Type = tsfile.TypeUnfinished
		if err := doc.WriteFile(in); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		p := New(2, nil)
		keep, err := p.File(in, out)
		if err != nil {
			t.Fatalf("File: %v", err)
		}
		if !keep {
			t.Fatal("document discarded")
		}

		got, err := tsfile.ParseFile(out)
		if err != nil {
			t.Fatalf("ParseFile: %v", err)
		}
		if got.MessageCount() != 3 {
			t.Fatalf("MessageCount = %d, want 3 (unfinished pruned)", got.MessageCount())
		}
		for _, ctx := range got.Contexts {
			for _, m := range ctx.Messages {
				if len(m.Locations) != 0 {
					t.Fatalf("locations not stripped: %#v", m.Locations)
				}
			}
		}
	})

	t.Run("small document is not written", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "app_ru.ts.orig")
		out := filepath.Join(dir, "app_ru.ts")

		if err := docWith(3).WriteFile(in); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		p := New(10, nil)
		keep, err := p.File(in, out)
		if err != nil {
			t.Fatalf("File: %v", err)
		}
		if keep {
			t.Fatal("small document kept")
		}
		if _, err := os.Stat(out); !os.IsNotExist(err) {
			t.Fatalf("output file written for discarded document (stat err: %v)", err)
		}
		if p.Result.Removed != 1 {
			t.Fatalf("Removed = %d", p.Result.Removed)
		}
	})
}

func TestContainsPaymentAddress(t *testing.T) {
	cases := []struct {
		s    string
		want bool
	}{
		{"send to 1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa now", true},
		{"bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", true},
		{"3J98t1WpEZ73CNmQviecrnyiWrnqRhWNLy", true},
		{"Сумма: %1", false},
		{"1 short", false},
	}
	for _, c := range cases {
		if got := ContainsPaymentAddress(c.s); got != c.want {
			t.Errorf("ContainsPaymentAddress(%q) = %v, want %v", c.s, got, c.want)
		}
	}
}
