package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var inlineSeeds = []string{
	"",
	"Grem k gospodu in pridem z sestro.",
	"Šel sem s Markom , potem pa h Ani .",
	"Stane 5kg in meri 10 m. Pišem ti,ker ne vem,da je res.",
	"Poglej https://www.example.si/pot?x=1 ali www.gov.si, nato pa k gospodu.",
	"Ne vem ali pride, vendar ampak kljub temu da zato ker.",
	"S\nMarkom in K\r\nkolegu.",
	"\ufeffČŠŽ čšž ćđ — »navedek« „drugi“ 'tretji'",
	"a , b ; c : d ! e ? f ( g ) h",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range inlineSeeds {
		f.Add([]byte(seed))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.txt файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".txt" {
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
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
