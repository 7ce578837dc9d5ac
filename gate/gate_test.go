package gate

import (
	"testing"

	"scratchc/syntax"
)

func parse(t *testing.T, src string) *syntax.Program {
	t.Helper()

	prg, err := syntax.Parse("test.js", src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	return prg
}

func TestCheckCleanProgram(t *testing.T) {
	prg := parse(t, "let x = 1;\nwhile (x < 5) { x = x + 1; }")
	if uf := Check(prg); uf != nil {
		t.Errorf("clean program reported %v", uf)
	}
}

func TestCheckBannedMember(t *testing.T) {
	prg := parse(t, "let x = 1;\nwindow.alert('hi');")
	uf := Check(prg)
	if uf == nil {
		t.Fatal("window.alert not reported")
	}
	if uf.Name != "window.alert" {
		t.Errorf("feature = %q, want window.alert", uf.Name)
	}
	if uf.Line != 2 {
		t.Errorf("line = %d, want 2", uf.Line)
	}
}

func TestCheckDottedPrefixContinuation(t *testing.T) {
	prg := parse(t, "let h = window.location.href;")
	uf := Check(prg)
	if uf == nil {
		t.Fatal("window.location.href not reported")
	}
	if uf.Name != "window.location" {
		t.Errorf("feature = %q, want the banned prefix window.location", uf.Name)
	}
}

func TestCheckBareGlobal(t *testing.T) {
	prg := parse(t, "fetch('/data');")
	uf := Check(prg)
	if uf == nil {
		t.Fatal("bare fetch not reported")
	}
	if uf.Name != "fetch" {
		t.Errorf("feature = %q, want fetch", uf.Name)
	}
}

func TestCheckAsyncAndAwait(t *testing.T) {
	prg := parse(t, "async function f() { return 1; }")
	uf := Check(prg)
	if uf == nil || uf.Name != "async" {
		t.Fatalf("async function reported %v, want async", uf)
	}

	prg = parse(t, "async function g() { await h(); }")
	uf = Check(prg)
	if uf == nil || uf.Name != "async" {
		t.Fatalf("pre-order report = %v, want async before await", uf)
	}
}

func TestCheckReportsFirstInPreorder(t *testing.T) {
	prg := parse(t, "console.log(1);\nwindow.alert(2);")
	uf := Check(prg)
	if uf == nil {
		t.Fatal("nothing reported")
	}
	if uf.Name != "console.log" {
		t.Errorf("first report = %q, want console.log", uf.Name)
	}
}

func TestCheckInsideNestedStatements(t *testing.T) {
	prg := parse(t, "if (true) { while (true) { setTimeout(f, 10); } }")
	uf := Check(prg)
	if uf == nil || uf.Name != "setTimeout" {
		t.Fatalf("nested banned call reported %v, want setTimeout", uf)
	}
}
