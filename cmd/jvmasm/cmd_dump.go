package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tangzhangming/jvmasm/internal/classdump"
	"github.com/tangzhangming/jvmasm/internal/errors"
	"github.com/tangzhangming/jvmasm/internal/i18n"
)

// cmdDump 解析类文件并打印摘要
func (c *cli) cmdDump(args []string) int {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	asJSON := fs.Bool("json", false, i18n.T(i18n.CLIOptJSON))
	fs.Usage = func() {
		fmt.Fprintln(c.stderr, i18n.T(i18n.CLIUsageDump))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		fmt.Fprintln(c.stderr, i18n.T(i18n.CLINoInput))
		return 1
	}

	file := fs.Arg(0)
	data, err := os.ReadFile(file)
	if err != nil {
		errors.Report(c.stderr, file, err)
		return 1
	}
	s, err := classdump.Summarize(data)
	if err != nil {
		errors.Report(c.stderr, file, err)
		return 1
	}

	if *asJSON {
		out, err := s.ToJSON()
		if err != nil {
			errors.Report(c.stderr, file, err)
			return 1
		}
		fmt.Fprintln(c.stdout, string(out))
		return 0
	}
	s.WriteText(c.stdout)
	return 0
}
