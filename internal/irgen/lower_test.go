package irgen_test

import (
	"errors"
	"strings"
	"testing"

	"mica/internal/ast"
	"mica/internal/diag"
	"mica/internal/ir"
	"mica/internal/irgen"
	"mica/internal/layout"
	"mica/internal/lexer"
	"mica/internal/parser"
	"mica/internal/source"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mica", []byte(src))
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	res := parser.ParseFile(lx, parser.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("parse failed:\n%s", diag.FormatShort(bag.Items(), fs, false))
	}
	return res.Program
}

func lowerProgram(t *testing.T, src string) *ir.Program {
	t.Helper()
	prog, err := irgen.Generate(parseProgram(t, src), layout.Default())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return prog
}

func lowerError(t *testing.T, src string) error {
	t.Helper()
	_, err := irgen.Generate(parseProgram(t, src), layout.Default())
	if err == nil {
		t.Fatal("Generate succeeded, want error")
	}
	return err
}

func findFunc(t *testing.T, p *ir.Program, label string) *ir.Func {
	t.Helper()
	for i := range p.Funcs {
		if p.Funcs[i].Label == label {
			return &p.Funcs[i]
		}
	}
	t.Fatalf("no function %q in program:\n%s", label, ir.ProgramString(p))
	return nil
}

func funcText(t *testing.T, p *ir.Program, label string) string {
	t.Helper()
	fn := findFunc(t, p, label)
	return ir.ProgramString(&ir.Program{Funcs: []ir.Func{*fn}})
}

func TestLowerFieldReturn(t *testing.T) {
	p := lowerProgram(t, `
class A {
	int x;
	int foo() {
		return this.x;
	}
}
`)
	want := "fn _A_foo(obj)\n  t1 = load.i [obj+0]\n  ret t1\n"
	if got := funcText(t, p, "_A_foo"); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	fn := findFunc(t, p, "_A_foo")
	if len(fn.Params) != 1 || fn.Params[0] != "obj" {
		t.Errorf("params = %v, want just the receiver", fn.Params)
	}
}

func TestLowerPrintBool(t *testing.T) {
	p := lowerProgram(t, `
class A {
	void show() {
		print(true);
	}
}
`)
	want := "fn _A_show(obj)\n  call _printBool(true)\n"
	if got := funcText(t, p, "_A_show"); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLowerDegenerateNew(t *testing.T) {
	p := lowerProgram(t, `
class Empty { }
class Main {
	void main() {
		Empty e;
		e = new Empty();
	}
}
`)
	text := ir.ProgramString(p)
	if strings.Contains(text, "_malloc") {
		t.Errorf("zero-size class must not allocate:\n%s", text)
	}
	want := "fn main()\nlocals e\n  e = 0\n"
	if got := funcText(t, p, ""); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLowerIfElse(t *testing.T) {
	p := lowerProgram(t, `
class A {
	void pick(boolean cond) {
		if (cond) { this.yes(); } else { this.no(); }
	}
	void yes() { }
	void no() { }
}
`)
	want := "fn _A_pick(obj, cond)\n" +
		"  if cond == false goto L1\n" +
		"  call _A_yes(obj)\n" +
		"  goto L2\n" +
		"L1:\n" +
		"  call _A_no(obj)\n" +
		"L2:\n"
	if got := funcText(t, p, "_A_pick"); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLowerIfWithoutElse(t *testing.T) {
	p := lowerProgram(t, `
class A {
	void maybe(boolean cond) {
		if (cond) this.go();
	}
	void go() { }
}
`)
	want := "fn _A_maybe(obj, cond)\n" +
		"  if cond == false goto L1\n" +
		"  call _A_go(obj)\n" +
		"L1:\n"
	if got := funcText(t, p, "_A_maybe"); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLowerWhile(t *testing.T) {
	p := lowerProgram(t, `
class W {
	void spin(boolean go) {
		while (go) { this.spin(true); }
	}
}
`)
	want := "fn _W_spin(obj, go)\n" +
		"L1:\n" +
		"  if go == false goto L2\n" +
		"  call _W_spin(obj, true)\n" +
		"  goto L1\n" +
		"L2:\n"
	if got := funcText(t, p, "_W_spin"); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLowerStaticBinding(t *testing.T) {
	p := lowerProgram(t, `
class A {
	int pad;
	int m() {
		return 1;
	}
}
class B extends A { }
class Main {
	void main() {
		B b;
		int v;
		b = new B();
		v = b.m();
	}
}
`)
	text := funcText(t, p, "")
	if !strings.Contains(text, "call _A_m(b)") {
		t.Errorf("inherited call must target the declaring class:\n%s", text)
	}
	if strings.Contains(text, "_B_m") {
		t.Errorf("call target must not use the receiver's class:\n%s", text)
	}
}

func TestCounterLocality(t *testing.T) {
	p := lowerProgram(t, `
class C {
	int a;
	int first() {
		if (true) { }
		return this.a;
	}
	int second() {
		if (true) { }
		return this.a;
	}
}
`)
	first := funcText(t, p, "_C_first")
	second := funcText(t, p, "_C_second")
	if strings.ReplaceAll(first, "_C_first", "_C_second") != second {
		t.Errorf("numbering must restart per method:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	for _, text := range []string{first, second} {
		if !strings.Contains(text, "t1 = ") || !strings.Contains(text, "L1:") {
			t.Errorf("counters must start at 1:\n%s", text)
		}
	}
}

func TestReceiverThreading(t *testing.T) {
	p := lowerProgram(t, `
class P {
	int count;
	void bump(int n) {
		count = n;
	}
	int get() {
		return count;
	}
}
`)
	wantBump := "fn _P_bump(obj, n)\n  store.i [obj+0], n\n"
	if got := funcText(t, p, "_P_bump"); got != wantBump {
		t.Errorf("got:\n%s\nwant:\n%s", got, wantBump)
	}
	wantGet := "fn _P_get(obj)\n  t1 = load.i [obj+0]\n  ret t1\n"
	if got := funcText(t, p, "_P_get"); got != wantGet {
		t.Errorf("got:\n%s\nwant:\n%s", got, wantGet)
	}
}

func TestLowerLocalInitializers(t *testing.T) {
	p := lowerProgram(t, `
class A {
	int x;
	void run() {
		int a = 5;
		boolean b = true;
		int c = this.x;
	}
}
`)
	want := "fn _A_run(obj)\n" +
		"locals a, b, c\n" +
		"  a = 5\n" +
		"  b = true\n" +
		"  t1 = load.i [obj+0]\n" +
		"  c = t1\n"
	if got := funcText(t, p, "_A_run"); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLowerPrintForms(t *testing.T) {
	p := lowerProgram(t, `
class A {
	int x;
	void out(boolean flag) {
		print();
		print("hi");
		print(5);
		print(flag);
		print(this.x);
	}
}
`)
	want := "fn _A_out(obj, flag)\n" +
		"  call _printStr()\n" +
		"  call _printStr(\"hi\")\n" +
		"  call _printInt(5)\n" +
		"  call _printBool(flag)\n" +
		"  t1 = load.i [obj+0]\n" +
		"  call _printInt(t1)\n"
	if got := funcText(t, p, "_A_out"); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLowerCallArgumentOrder(t *testing.T) {
	p := lowerProgram(t, `
class A {
	int x;
	int add(int a, int b) {
		return a;
	}
	void run(A peer) {
		int v;
		v = peer.add(this.x, 2);
	}
}
`)
	want := "fn _A_run(obj, peer)\n" +
		"locals v\n" +
		"  t1 = load.i [obj+0]\n" +
		"  t2 = call _A_add(peer, t1, 2)\n" +
		"  v = t2\n"
	if got := funcText(t, p, "_A_run"); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestAssignEvaluatesRHSFirst(t *testing.T) {
	p := lowerProgram(t, `
class A {
	int x;
	int get() {
		return 3;
	}
	void set(A o) {
		o.x = this.get();
	}
}
`)
	want := "fn _A_set(obj, o)\n" +
		"  t1 = call _A_get(obj)\n" +
		"  store.i [o+0], t1\n"
	if got := funcText(t, p, "_A_set"); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLowerChainedFieldAccess(t *testing.T) {
	p := lowerProgram(t, `
class B {
	int y;
}
class A {
	B link;
	int probe() {
		return this.link.y;
	}
}
`)
	want := "fn _A_probe(obj)\n" +
		"  t1 = load.p [obj+0]\n" +
		"  t2 = load.i [t1+0]\n" +
		"  ret t2\n"
	if got := funcText(t, p, "_A_probe"); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEntryFunction(t *testing.T) {
	p := lowerProgram(t, `
class Main {
	void main() {
		print("start");
	}
}
`)
	if len(p.Funcs) != 1 {
		t.Fatalf("got %d functions, want 1", len(p.Funcs))
	}
	fn := &p.Funcs[0]
	if !fn.IsEntry() {
		t.Error("main did not lower as the entry function")
	}
	if len(fn.Params) != 0 {
		t.Errorf("entry params = %v, want none", fn.Params)
	}
	want := "fn main()\n  call _printStr(\"start\")\n"
	if got := ir.ProgramString(p); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLowerWholeProgram(t *testing.T) {
	p := lowerProgram(t, `
class A {
	int x;
	int get() {
		return this.x;
	}
}
class B extends A {
	boolean y;
	void toggle(boolean v) {
		y = v;
	}
}
class Main {
	void main() {
		B b;
		int n;
		b = new B();
		b.x = 7;
		n = b.get();
		print(n);
	}
}
`)
	want := "fn _A_get(obj)\n" +
		"  t1 = load.i [obj+0]\n" +
		"  ret t1\n" +
		"\n" +
		"fn _B_toggle(obj, v)\n" +
		"  store.b [obj+4], v\n" +
		"\n" +
		"fn main()\n" +
		"locals b, n\n" +
		"  t1 = call _malloc(5)\n" +
		"  b = t1\n" +
		"  store.i [b+0], 7\n" +
		"  t2 = call _A_get(b)\n" +
		"  n = t2\n" +
		"  call _printInt(n)\n"
	if got := ir.ProgramString(p); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLowerErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantSub string
	}{
		{
			name:    "unknown method",
			src:     "class A { void m() { this.nope(); } }",
			wantSub: `has no method "nope"`,
		},
		{
			name:    "unknown field",
			src:     "class A { int m() { return this.gone; } }",
			wantSub: `has no field "gone"`,
		},
		{
			name:    "unknown class in new",
			src:     "class A { void m() { this.take(new Ghost()); } void take(A a) { } }",
			wantSub: `unknown class "Ghost"`,
		},
		{
			name:    "call on constructed receiver",
			src:     "class A { int pad; void m() { new A().m(); } }",
			wantSub: "unsupported receiver expression",
		},
		{
			name:    "void result captured",
			src:     "class A { void noop() { } void m() { int v; v = this.noop(); } }",
			wantSub: "void method's result",
		},
		{
			name:    "print of object",
			src:     "class A { int pad; void m(A a) { print(a); } }",
			wantSub: "print argument of type ptr",
		},
		{
			name:    "print of degenerate new",
			src:     "class Empty { } class A { void m() { print(new Empty()); } }",
			wantSub: "print argument of type none",
		},
		{
			name:    "this in entry",
			src:     "class Main { int x; void main() { print(this.x); } }",
			wantSub: "'this' in the entry method",
		},
		{
			name:    "undeclared name in entry",
			src:     "class Main { void main() { print(q); } }",
			wantSub: `undeclared name "q"`,
		},
		{
			name:    "duplicate local",
			src:     "class A { void m(int a) { int a; } }",
			wantSub: "duplicate declaration",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lowerError(t, tt.src)
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestLowerErrorTypes(t *testing.T) {
	err := lowerError(t, "class A { void m() { this.nope(); } }")
	var lookupErr *layout.LookupError
	if !errors.As(err, &lookupErr) {
		t.Errorf("error %v is not a layout.LookupError", err)
	}

	err = lowerError(t, "class A { int pad; void m() { new A().m(); } }")
	var unsupportedErr *irgen.UnsupportedError
	if !errors.As(err, &unsupportedErr) {
		t.Errorf("error %v is not an irgen.UnsupportedError", err)
	}
}

func TestLowerBlockStatement(t *testing.T) {
	p := lowerProgram(t, `
class A {
	void run(boolean c) {
		{
			this.one();
			{ this.two(); }
		}
	}
	void one() { }
	void two() { }
}
`)
	want := "fn _A_run(obj, c)\n" +
		"  call _A_one(obj)\n" +
		"  call _A_two(obj)\n"
	if got := funcText(t, p, "_A_run"); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
