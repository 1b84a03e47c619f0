// Command localcheck is a linter that checks task-local key usage across
// goroutine boundaries.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/NetPo4ki/go-tasklocal/localcheck"
)

func main() {
	singlechecker.Main(localcheck.Analyzer)
}
