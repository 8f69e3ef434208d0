// assets/embed.go
//
// Files compiled into the binary:
//   - words.txt:      default dictionary (used when WORDS_FILE is unset).
//   - migrations/*.sql: schema applied by internal/database.Migrate.
package assets

import (
	"embed"
	"io"
	"io/fs"
)

//go:embed words.txt migrations/*.sql
var files embed.FS

// Migrations exposes migrations/*.sql rooted at the migrations directory.
var Migrations fs.FS = mustSub(files, "migrations")

// Words opens the embedded default word list. Caller closes.
func Words() (io.ReadCloser, error) {
	return files.Open("words.txt")
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
