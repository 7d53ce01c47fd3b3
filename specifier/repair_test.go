package specifier

import "testing"

func TestFixString(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"% 1", "%1"},
		{"2%", "%2"},
		{"$1", "%1"},
		{"% s", "%s"},
		{"s%", "%s"},
		{"$n", "%n"},
		{"% n", "%n"},
		{"% d", "%d"},
		{"untouched %1", "untouched %1"},
	}
	for _, c := range cases {
		if got := FixString(c.in); got != c.want {
			t.Errorf("FixString(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFixStringRestoresProfile(t *testing.T) {
	fixed := FixString("% 1 and 2% and % s")
	got, err := ProfileOf(fixed)
	if err != nil {
		t.Fatalf("ProfileOf(%q): %v", fixed, err)
	}
	want := mustProfile(t, "%1 and %2 and %s")
	if !got.Equal(want) {
		t.Fatalf("profile of %q = %#v, want %#v", fixed, got, want)
	}
}

func TestRepair(t *testing.T) {
	t.Run("literal fixup", func(t *testing.T) {
		fixed, ok := Repair("Amount: %1", "Сумма: 1%")
		if !ok {
			t.Fatal("repair failed")
		}
		if fixed != "Сумма: %1" {
			t.Fatalf("fixed = %q", fixed)
		}
	})

	t.Run("padding inserted after fixup", func(t *testing.T) {
		fixed, ok := Repair("Amount: %1", "Сумма:1%")
		if !ok {
			t.Fatal("repair failed")
		}
		if fixed != "Сумма: %1" {
			t.Fatalf("fixed = %q", fixed)
		}
	})

	t.Run("no padding when string starts with placeholder", func(t *testing.T) {
		fixed, ok := Repair("%1 left", "1% осталось")
		if !ok {
			t.Fatal("repair failed")
		}
		if fixed != "%1 осталось" {
			t.Fatalf("fixed = %q", fixed)
		}
	})

	t.Run("no padding when placeholder already separated", func(t *testing.T) {
		fixed, ok := Repair("Amount: %1", "Сумма: $1")
		if !ok {
			t.Fatal("repair failed")
		}
		if fixed != "Сумма: %1" {
			t.Fatalf("fixed = %q", fixed)
		}
	})

	t.Run("percent swapped for mnemonic marker", func(t *testing.T) {
		fixed, ok := Repair("E&xit", "В%ыход")
		if !ok {
			t.Fatal("repair failed")
		}
		if fixed != "В&ыход" {
			t.Fatalf("fixed = %q", fixed)
		}
	})

	t.Run("positional swapped for plural count", func(t *testing.T) {
		fixed, ok := Repair("%n minute(s)", "%1 минут")
		if !ok {
			t.Fatal("repair failed")
		}
		if fixed != "%n минут" {
			t.Fatalf("fixed = %q", fixed)
		}
	})

	t.Run("irreparable translation", func(t *testing.T) {
		_, ok := Repair("Amount: %1", "без плейсхолдера")
		if ok {
			t.Fatal("repair of a placeholder-free string should fail")
		}
	})

	t.Run("failed fixup still carries into later steps", func(t *testing.T) {
		// "% 1" is first rewritten to "%1" by the fixup table, which the
		// plural-swap step then turns into "%n".
		fixed, ok := Repair("%n minute(s)", "% 1 минут")
		if !ok {
			t.Fatal("repair failed")
		}
		if fixed != "%n минут" {
			t.Fatalf("fixed = %q", fixed)
		}
	})
}
