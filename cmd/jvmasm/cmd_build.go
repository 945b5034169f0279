package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tangzhangming/jvmasm/internal/asmfile"
	"github.com/tangzhangming/jvmasm/internal/config"
	"github.com/tangzhangming/jvmasm/internal/errors"
	"github.com/tangzhangming/jvmasm/internal/i18n"
	"github.com/tangzhangming/jvmasm/internal/jvmgen"
	"github.com/tangzhangming/jvmasm/internal/logger"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// buildEnv 由配置与命令行参数得到的汇编环境
type buildEnv struct {
	cfg   *config.Config
	flags int
	opts  []jvmgen.Option
	log   *zap.Logger
}

// newBuildEnv 加载配置并应用 -o 与 -compute
func (c *cli) newBuildEnv(hint, output, compute string) (*buildEnv, bool) {
	cfg, err := c.loadConfig(hint)
	if err != nil {
		fmt.Fprintln(c.stderr, i18n.T(i18n.CLIConfigFailed, err))
		return nil, false
	}
	if output != "" {
		cfg.OutputDir = output
	}
	if compute != "" {
		cfg.Compute = compute
	}
	flags, err := cfg.Flags()
	if err != nil {
		fmt.Fprintln(c.stderr, i18n.T(i18n.CLIConfigFailed, err))
		return nil, false
	}
	log, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		fmt.Fprintln(c.stderr, i18n.T(i18n.CLIConfigFailed, err))
		return nil, false
	}
	opts := append(cfg.Options(), jvmgen.WithLogger(log))
	return &buildEnv{cfg: cfg, flags: flags, opts: opts, log: log}, true
}

// writeClass 写出类文件，按需创建目录
func writeClass(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write class file: %w", err)
	}
	return nil
}

// cmdBuild 把类源文件汇编成 .class 文件
func (c *cli) cmdBuild(args []string) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	output := fs.String("o", "", i18n.T(i18n.CLIOptOutput))
	compute := fs.String("compute", "", i18n.T(i18n.CLIOptCompute))
	fs.Usage = func() {
		fmt.Fprintln(c.stderr, i18n.T(i18n.CLIUsageBuild))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fs.Usage()
		fmt.Fprintln(c.stderr, i18n.T(i18n.CLINoInput))
		return 1
	}

	env, ok := c.newBuildEnv(fs.Arg(0), *output, *compute)
	if !ok {
		return 1
	}
	defer env.log.Sync()

	var errs error
	for _, file := range fs.Args() {
		path, n, err := env.buildFile(file)
		if err != nil {
			errors.Report(c.stderr, file, err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", file, err))
			continue
		}
		env.log.Info("class written", zap.String("source", file), zap.String("output", path), zap.Int("size", n))
		fmt.Fprintln(c.stdout, i18n.T(i18n.CLIWrote, path, n))
	}

	if failed := len(multierr.Errors(errs)); failed > 0 {
		fmt.Fprintln(c.stderr, i18n.T(i18n.CLIBuildFailed, failed, fs.NArg()))
		return 1
	}
	return 0
}

// buildFile 汇编一个类源文件，返回输出路径与字节数
func (e *buildEnv) buildFile(file string) (string, int, error) {
	def, err := asmfile.Load(file)
	if err != nil {
		return "", 0, err
	}
	data, err := asmfile.Assemble(def, e.flags, e.opts...)
	if err != nil {
		return "", 0, err
	}
	path := def.OutputPath(e.cfg.OutputDir)
	if err := writeClass(path, data); err != nil {
		return "", 0, err
	}
	return path, len(data), nil
}

// cmdHello 生成示例类 Example.class
func (c *cli) cmdHello(args []string) int {
	fs := flag.NewFlagSet("hello", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	output := fs.String("o", "", i18n.T(i18n.CLIOptOutput))
	compute := fs.String("compute", "", i18n.T(i18n.CLIOptCompute))
	fs.Usage = func() {
		fmt.Fprintln(c.stderr, i18n.T(i18n.CLIUsageHello))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	env, ok := c.newBuildEnv(".", *output, *compute)
	if !ok {
		return 1
	}
	defer env.log.Sync()

	data, err := jvmgen.HelloWorld("Example", env.flags, env.opts...)
	if err == nil {
		path := filepath.Join(env.cfg.OutputDir, "Example.class")
		if err = writeClass(path, data); err == nil {
			fmt.Fprintln(c.stdout, i18n.T(i18n.CLIWrote, path, len(data)))
			return 0
		}
	}
	errors.Report(c.stderr, "", err)
	return 1
}
