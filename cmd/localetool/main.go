// Command localetool manages locale text for Where Winds Meets:
// unpacking archives, merging translation patches, driving batch
// machine translation, and packing patched archives.
package main

import (
	"os"

	"github.com/wwm-locale/localetool/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
