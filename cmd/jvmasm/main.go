package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tangzhangming/jvmasm/internal/config"
	"github.com/tangzhangming/jvmasm/internal/i18n"
)

const (
	Version = "0.1.0"
)

// cli 一次命令行调用的上下文
type cli struct {
	stdout     io.Writer
	stderr     io.Writer
	lang       string
	configPath string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run 执行命令并返回退出码
func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	args = c.preprocessArgs(args)
	InitLanguage(c.lang)

	if len(args) < 1 {
		c.printUsage()
		return 0
	}

	command := args[0]
	switch command {
	case "build":
		return c.cmdBuild(args[1:])
	case "hello":
		return c.cmdHello(args[1:])
	case "dump":
		return c.cmdDump(args[1:])
	case "version", "-v", "--version":
		fmt.Fprintln(c.stdout, i18n.T(i18n.CLIVersion, Version))
		return 0
	case "help", "-h", "--help":
		c.printUsage()
		return 0
	default:
		fmt.Fprintln(c.stderr, i18n.T(i18n.CLIUnknownCmd, command))
		fmt.Fprintln(c.stderr)
		fmt.Fprint(c.stderr, i18n.T(i18n.CLIUsage))
		return 1
	}
}

// preprocessArgs 提取全局参数 --lang 与 -config
func (c *cli) preprocessArgs(args []string) []string {
	var result []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || (name != "lang" && name != "config") {
			result = append(result, arg)
			continue
		}
		if !hasValue {
			if i+1 >= len(args) {
				result = append(result, arg)
				continue
			}
			value = args[i+1]
			i++ // 跳过下一个参数
		}
		if name == "lang" {
			c.lang = value
		} else {
			c.configPath = value
		}
	}
	return result
}

func (c *cli) printUsage() {
	fmt.Fprint(c.stdout, i18n.T(i18n.CLIUsage))
}

// loadConfig 读取 -config 指定的配置，没有指定时从 hint 向上查找
func (c *cli) loadConfig(hint string) (*config.Config, error) {
	path := c.configPath
	if path == "" {
		path = config.FindConfigFile(hint)
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(path)
}
