// Command wdict crawls a remote site or a local directory tree and writes
// the extracted words to a deduplicated wordlist file.
package main

import (
	"os"

	"github.com/lexforge/wdict/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
