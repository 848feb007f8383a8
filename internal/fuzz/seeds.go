package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB

var snippetSeeds = []string{
	"",
	"const a = 1;",
	"const a: f32 = 1.5e3;",
	"const h = 1.0h + 0x1p-3h;",
	"const a = vec3<f32>(1, 2, 3).xy * 2;",
	"const m = mat3x3f();",
	"const a = array<u32, 2>(1u, 2u)[1];",
	"struct S { a: i32, b: vec2f, }\nconst s = S(1, vec2f());",
	"const_assert 1 < 2 && !false;",
	"const a = select(1, 2, vec2(true, false));",
	"/* nested /* comment */ */ const a = ~0u >> 31u;",
	"const a = (1 + (2 * (3 - 4)));",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range snippetSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".wgsl" {
			return nil
		}
		// #nosec G304 -- path comes from the repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
