package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// pythonSeeds покрывают все конструкции, которые понимает парсер, и
// типичные нарушения стиля.
var pythonSeeds = []string{
	"",
	"\n",
	"x = 1\n",
	"x = 1;\n",
	"import os, sys\n",
	"from . import (a,\n    b)\n",
	"def f(a, b=1, *args, c, d=2, **kw):\n    return a\n",
	"def f(a, /, b, *, c):\n    pass\n",
	"async def Fetch(x):\n    await x\n",
	"@decorator\n@other(1)\ndef f():\n    pass\n",
	"class c(Base, metaclass=M):\n    x: int = 0\n\n    def m(self):\n        return self.x\n",
	"if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n",
	"for i in range(10):\n    if i: break\nelse:\n    continue\n",
	"while True:\n  x += 1\n",
	"try:\n    pass\nexcept (A, B) as e:\n    raise X from e\nexcept* C:\n    pass\nelse:\n    pass\nfinally:\n    pass\n",
	"with open(p) as f, ctx():\n    data = f.read()\n",
	"match cmd:\n    case [x, y, *rest]:\n        pass\n    case {\"k\": v}:\n        pass\n    case Point(x=0) | None:\n        pass\n    case _:\n        pass\n",
	"type Alias[T] = list[T]\n",
	"lam = lambda x, *a: (yield x)\n",
	"v = [x for x in y if x] + {k: v for k, v in d.items()} + {*s}\n",
	"s = f'{x!r:>{width}}' + b'raw' + '''doc\nstring'''\n",
	"x = a if b else c\ny = not a and b or c\nz = a @ b ** -c // d\n",
	"print(a, *b, c=1, **d)\n",
	"global a, b\nnonlocal c\ndel a[0], b.c\nassert x, 'msg'\n",
	"x = (\n    1,\n    2,\n)\n",
	"x = 1 \\\n    + 2\n",
	"\tx = 1\n",
	"def f():\n\treturn 1\n",
	"def f():\n    return 1\n\n\n\n\ndef g():\n    pass\n",
	"def f():\n    x = 1\n    x = 2\n",
	"def F(MyArg, a=[], b={}):\n    MyVar = 1\n",
	"import  os\nfrom   sys import path\nx = 1    # trailing   \n",
	"s = 'unterminated\n",
	"def f(:\n",
	"if x:\npass\n",
	"x = )\n",
	"a = '\xff'\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range pythonSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.py файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".py" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
