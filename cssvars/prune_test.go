package cssvars_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"slimock/cssvars"
)

func TestPruneUnreachableDeclarations_SimpleUnused(t *testing.T) {
	input := `:root {
  --used: red;
  --unused: blue;
}
.title {
  color: var(--used);
}
`
	got, removed := cssvars.PruneUnreachableDeclarations(input)

	if !strings.Contains(got, "--used: red;") {
		t.Error("expected --used declaration to survive")
	}
	if strings.Contains(got, "--unused") {
		t.Error("expected --unused declaration to be removed")
	}
	if removed.Len() != 1 || !removed.Has("--unused") {
		t.Errorf("removed = %v, want [--unused]", removed.Sorted())
	}

	want := `:root {
  --used: red;
}
.title {
  color: var(--used);
}
`
	if got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPruneUnreachableDeclarations_Transitive(t *testing.T) {
	input := `:root {
  --a: var(--b);
  --b: green;
  --c: var(--b);
}
p {
  color: var(--a);
}
`
	got, removed := cssvars.PruneUnreachableDeclarations(input)

	if !strings.Contains(got, "--a: var(--b);") || !strings.Contains(got, "--b: green;") {
		t.Errorf("expected --a and --b to survive, got:\n%s", got)
	}
	if strings.Contains(got, "--c:") {
		t.Errorf("expected --c to be removed, got:\n%s", got)
	}
	if removed.Len() != 1 || !removed.Has("--c") {
		t.Errorf("removed = %v, want [--c]", removed.Sorted())
	}
}

func TestPruneUnreachableDeclarations_LastDeclarationWins(t *testing.T) {
	input := `:root {
  --a: var(--b);
  --b: blue;
}
.dark {
  --a: red;
}
p {
  color: var(--a);
}
`
	got, removed := cssvars.PruneUnreachableDeclarations(input)

	// only the last --a value contributes edges, earlier reference is left dangling
	if !strings.Contains(got, "--a: var(--b);") || !strings.Contains(got, "--a: red;") {
		t.Errorf("expected both --a declarations to survive, got:\n%s", got)
	}
	if strings.Contains(got, "--b: blue;") {
		t.Errorf("expected --b to be removed, got:\n%s", got)
	}
	if removed.Len() != 1 || !removed.Has("--b") {
		t.Errorf("removed = %v, want [--b]", removed.Sorted())
	}
}

func TestPruneUnreachableDeclarations_SelfReference(t *testing.T) {
	input := `:root {
  --x: var(--x);
}
a {
  color: var(--x);
}
`
	got, removed := cssvars.PruneUnreachableDeclarations(input)
	if got != input {
		t.Errorf("expected input unchanged, got:\n%s", got)
	}
	if removed.Len() != 0 {
		t.Errorf("expected nothing removed, got %v", removed.Sorted())
	}
	if strings.Count(got, "--x: var(--x);") != 1 {
		t.Error("expected --x declared exactly once")
	}
}

func TestPruneUnreachableDeclarations_Cycle(t *testing.T) {
	input := `:root {
  --a: var(--b);
  --b: var(--a);
  --dead-a: var(--dead-b);
  --dead-b: var(--dead-a);
}
a {
  color: var(--a);
}
`
	got, removed := cssvars.PruneUnreachableDeclarations(input)
	if !strings.Contains(got, "--a: var(--b);") || !strings.Contains(got, "--b: var(--a);") {
		t.Errorf("cycle reachable from usage must survive, got:\n%s", got)
	}
	if removed.Len() != 2 || !removed.Has("--dead-a") || !removed.Has("--dead-b") {
		t.Errorf("removed = %v, want [--dead-a --dead-b]", removed.Sorted())
	}
}

func TestPruneUnreachableDeclarations_MixedLineSurvives(t *testing.T) {
	input := `:root { --unused: blue; }
.a { --also-unused: 1px; color: red; }
.b {
  --gone: 0;
}
`
	got, removed := cssvars.PruneUnreachableDeclarations(input)

	want := `:root { --unused: blue; }
.a { --also-unused: 1px; color: red; }
.b {
}
`
	if got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
	if removed.Len() != 1 || !removed.Has("--gone") {
		t.Errorf("removed = %v, want [--gone]", removed.Sorted())
	}
}

func TestPruneUnreachableDeclarations_PrefixNames(t *testing.T) {
	input := `:root {
  --gap: 1px;
  --gap-lg: 2px;
}
a {
  margin: var(--gap-lg);
}
`
	got, _ := cssvars.PruneUnreachableDeclarations(input)
	if strings.Contains(got, "--gap: 1px;") {
		t.Error("expected --gap to be removed")
	}
	if !strings.Contains(got, "--gap-lg: 2px;") {
		t.Error("expected --gap-lg to survive")
	}
}

func TestPruneUnreachableDeclarations_Idempotent(t *testing.T) {
	inputs := []string{
		`:root {
  --a: var(--b);
  --b: var(--c);
  --c: 1px;
  --d: var(--a);
  --e: var(--e);
}
.x {
  padding: var(--a);
}
`,
		`:root {
  --used: red;
  --unused: blue;
  --mixed: 1px; --other: 2px;
}
.title { color: var(--used); }
`,
		`:root{--a:1px;--b:var(--a)}
.x{margin:var(--b)}
`,
	}

	for i, input := range inputs {
		once, _ := cssvars.PruneUnreachableDeclarations(input)
		twice, removed := cssvars.PruneUnreachableDeclarations(once)
		if once != twice {
			t.Errorf("input %d: second pass changed output:\n%s\nvs\n%s", i, once, twice)
		}
		if removed.Len() != 0 {
			t.Errorf("input %d: second pass removed %v", i, removed.Sorted())
		}
	}
}

func TestPruneUnreachableDeclarations_NoDeclarations(t *testing.T) {
	input := "p { color: var(--undefined); }\n"
	got, removed := cssvars.PruneUnreachableDeclarations(input)
	if got != input {
		t.Errorf("expected input unchanged, got %q", got)
	}
	if removed.Len() != 0 {
		t.Errorf("expected nothing removed, got %v", removed.Sorted())
	}
}

func TestPruneUnreachableDeclarations_PreservesCRLF(t *testing.T) {
	input := ":root {\r\n  --used: 1;\r\n  --unused: 2;\r\n}\r\np { order: var(--used); }\r\n"
	got, _ := cssvars.PruneUnreachableDeclarations(input)
	want := ":root {\r\n  --used: 1;\r\n}\r\np { order: var(--used); }\r\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPruneUnusedPropertyRules(t *testing.T) {
	input := `
      @property --used {
        syntax: '<color>';
        inherits: false;
        initial-value: red;
      }
      @property --unused {
        syntax: '<number>';
        inherits: false;
        initial-value: 1;
      }
      :root {
        --used: red;
      }
      .btn {
        color: var(--used);
      }
    `
	got, removed := cssvars.PruneUnusedPropertyRules(input)

	if !strings.Contains(got, "--used") {
		t.Error("expected --used to remain")
	}
	if strings.Contains(got, "--unused") {
		t.Error("expected --unused @property to be removed")
	}
	if removed.Len() != 1 || !removed.Has("--unused") {
		t.Errorf("removed = %v, want [--unused]", removed.Sorted())
	}
}

func TestPruneUnusedPropertyRules_KeptWhenOnlyDependency(t *testing.T) {
	// --base is not reachable from any usage but is mentioned in another
	// declaration's value, which is enough to keep its @property rule
	input := `@property --base { syntax: '<length>'; inherits: true; initial-value: 0px; }
:root { --derived: calc(var(--base) * 2); }`

	got, removed := cssvars.PruneUnusedPropertyRules(input)
	if got != input {
		t.Errorf("expected input unchanged, got %q", got)
	}
	if removed.Len() != 0 {
		t.Errorf("expected nothing removed, got %v", removed.Sorted())
	}
}

func TestPruneUnusedPropertyRules_NoRules(t *testing.T) {
	input := `:root { --a: 1; }`
	got, removed := cssvars.PruneUnusedPropertyRules(input)
	if got != input || removed.Len() != 0 {
		t.Errorf("expected identity transform, got %q (removed %v)", got, removed.Sorted())
	}
}

func TestPruneUnusedPropertyRules_Duplicates(t *testing.T) {
	input := `@property --gone { syntax: '*'; }
@property --gone { syntax: '<color>'; }
p { color: red; }`

	got, removed := cssvars.PruneUnusedPropertyRules(input)
	if strings.Contains(got, "@property") {
		t.Errorf("expected every @property --gone rule to be removed, got %q", got)
	}
	if removed.Len() != 1 {
		t.Errorf("removed = %v, want [--gone]", removed.Sorted())
	}
}

func TestPruner_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := cssvars.NewPruner(zap.New(core))

	input := `:root {
  --used: red;
  --unused: blue;
}
a { color: var(--used); }
`
	got, removed := p.UnreachableDeclarations(input)
	if strings.Contains(got, "--unused") || removed.Len() != 1 {
		t.Fatalf("unexpected pruning result %q", got)
	}

	entries := logs.FilterMessage("Removed unreachable custom properties").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if entries[0].LoggerName != "cssvars" {
		t.Errorf("logger name = %q, want cssvars", entries[0].LoggerName)
	}

	_, _ = p.UnusedPropertyRules(got)
	if logs.FilterMessage("All @property rules are in use").Len() != 1 {
		t.Error("expected log entry for property rules pass")
	}
}

func TestNewPruner_NilLogger(t *testing.T) {
	p := cssvars.NewPruner(nil)
	if got, _ := p.UnreachableDeclarations(""); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
