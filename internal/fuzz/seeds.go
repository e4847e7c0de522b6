package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

// languageSeeds covers every construct of the grammar at least once, so
// mutation starts from inputs that reach deep into the parser instead of
// dying at the first token.
var languageSeeds = []string{
	"",
	"class A { }\n",
	"class A { int x; }\n",
	"class A extends B { boolean done; }\n",
	"class A { int get() { return this.x; } }\n",
	"class A { void set(int v) { this.x = v; } }\n",
	"class A { void main() { A a = new A(); print(a.get()); } }\n",
	"class A { void m() { if (this.flag) { print(\"yes\"); } else { print(0); } } }\n",
	"class A { void m() { while (this.flag) { this.step(); } } }\n",
	"class A { void m() { print(); print(true); print(\"a\\n\\t\\\"b\\\\\"); } }\n",
	"class A { void m() { this.peer.next.set(this.peer.get(), 2); } }\n",
	"class A { void m() { int i = 0; { i = 1; { return; } } } }\n",
	"// comment\nclass A { /* block */ int x; }\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range languageSeeds {
		f.Add([]byte(seed))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds folds any .mica files under the repository testdata
// tree into the corpus. The tree is optional; unreadable entries are
// simply skipped.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".mica" {
			return nil
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}
