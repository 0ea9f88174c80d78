// Command phrasehash prints the normalized form and SHA-256 digest of a
// candidate secret phrase. The digest goes into SECRET_PHRASE_HASH; the
// plaintext phrase never touches the deployed service.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BradenHooton/refusebot/internal/game"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: phrasehash <secret phrase>")
		os.Exit(2)
	}

	phrase := strings.Join(os.Args[1:], " ")
	normalized := game.Normalize(phrase)
	if normalized == "" {
		fmt.Fprintln(os.Stderr, "phrase normalizes to an empty string")
		os.Exit(1)
	}

	fmt.Printf("normalized: %q\n", normalized)
	fmt.Printf("SECRET_PHRASE_HASH=%s\n", game.HashPhrase(phrase))
}
