package cssvars_test

import (
	"testing"

	"slimock/cssvars"
)

func TestExtractDeclarations(t *testing.T) {
	input := `
:root {
  --primary: red;
  --gap:   4px  ;
}
.card { --shadow: 0 0 var(--gap) black; color: var(--primary); }
`
	decls := cssvars.ExtractDeclarations(input)
	if len(decls) != 3 {
		t.Fatalf("expected 3 declarations, got %d: %v", len(decls), decls)
	}

	tests := []struct {
		name  string
		value string
	}{
		{"--primary", "red"},
		{"--gap", "4px"},
		{"--shadow", "0 0 var(--gap) black"},
	}
	for _, tt := range tests {
		d, ok := decls[tt.name]
		if !ok {
			t.Errorf("declaration %s not found", tt.name)
			continue
		}
		if d.Name != tt.name {
			t.Errorf("Name = %q, want %q", d.Name, tt.name)
		}
		if d.Value != tt.value {
			t.Errorf("%s value = %q, want %q", tt.name, d.Value, tt.value)
		}
	}
}

func TestExtractDeclarations_LastWins(t *testing.T) {
	input := `:root { --c: red; }
.dark { --c: black; }`

	decls := cssvars.ExtractDeclarations(input)
	if got := decls["--c"].Value; got != "black" {
		t.Errorf("expected last declaration to win, got %q", got)
	}
}

func TestExtractDeclarations_Minified(t *testing.T) {
	decls := cssvars.ExtractDeclarations(`:root{--a:1px;--b:var(--a)}`)
	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d: %v", len(decls), decls)
	}
	if decls["--b"].Value != "var(--a)" {
		t.Errorf("--b value = %q", decls["--b"].Value)
	}
}

func TestExtractDeclarations_IgnoresSelectors(t *testing.T) {
	input := `.btn--primary:hover { color: red; }
.x { color: var(--y); }`

	decls := cssvars.ExtractDeclarations(input)
	if len(decls) != 0 {
		t.Errorf("expected no declarations, got %v", decls)
	}
}

func TestExtractDeclarations_Empty(t *testing.T) {
	decls := cssvars.ExtractDeclarations(`p { margin: 0; }`)
	if decls == nil {
		t.Fatal("expected empty non-nil table")
	}
	if len(decls) != 0 {
		t.Errorf("expected no declarations, got %v", decls)
	}
}

func TestExtractPropertyRules(t *testing.T) {
	input := `@property --angle {
  syntax: '<angle>';
  inherits: false;
  initial-value: 0deg;
}
@property --size{syntax:'<length>';inherits:true;initial-value:0px}
.x { --angle: 10deg; }`

	rules := cssvars.ExtractPropertyRules(input)
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}

	angle := rules["--angle"]
	if angle.Name != "--angle" {
		t.Errorf("Name = %q", angle.Name)
	}
	want := "@property --angle {\n  syntax: '<angle>';\n  inherits: false;\n  initial-value: 0deg;\n}"
	if angle.Text != want {
		t.Errorf("Text = %q, want %q", angle.Text, want)
	}

	// adjacent rules are not merged
	if rules["--size"].Text != "@property --size{syntax:'<length>';inherits:true;initial-value:0px}" {
		t.Errorf("unexpected --size text %q", rules["--size"].Text)
	}
}

func TestExtractPropertyRules_LaterOverwrites(t *testing.T) {
	input := `@property --a { syntax: '*'; }
@property --a { syntax: '<color>'; }`

	rules := cssvars.ExtractPropertyRules(input)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	if rules["--a"].Text != "@property --a { syntax: '<color>'; }" {
		t.Errorf("expected later rule, got %q", rules["--a"].Text)
	}
}
