// Command hybridrec 为选定的电影推荐相似电影。
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rushteam/hybridrec/core"
)

// version 在构建时通过 ldflags 注入
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error: "+err.Error())
		return exitCode(err)
	}
	return 0
}

// exitCode: 2 输入错误，3 数据不可用，1 其他
func exitCode(err error) int {
	switch {
	case core.IsInputError(err):
		return 2
	case core.IsDataUnavailable(err):
		return 3
	default:
		return 1
	}
}
