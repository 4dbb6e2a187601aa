package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/xxxsen/cubesync/internal/model"
	"github.com/xxxsen/cubesync/internal/platform"

	"github.com/spf13/pflag"
)

// StatusCommand prints the per-platform counts without touching anything.
type StatusCommand struct {
	configFile string
	root       string
}

func NewStatusCommand() *StatusCommand {
	return &StatusCommand{}
}

func (c *StatusCommand) Name() string { return "status" }

func (c *StatusCommand) Desc() string {
	return "查看 SD 卡各平台的同步状态"
}

func (c *StatusCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "配置文件路径")
	f.StringVar(&c.root, "root", "", "SD 卡根目录，默认取配置")
}

func (c *StatusCommand) PreRun(ctx context.Context) error {
	cfg, err := loadConfig(c.configFile)
	if err != nil {
		return err
	}
	root, err := resolveRoot(c.root, cfg)
	if err != nil {
		return err
	}
	c.root = root
	return nil
}

func (c *StatusCommand) Run(ctx context.Context) error {
	summaries := make([]model.Summary, 0, len(platform.Names()))
	for _, name := range platform.Names() {
		info, _ := platform.Lookup(name)
		dir := filepath.Join(c.root, name)
		if st, err := os.Stat(dir); err != nil || !st.IsDir() {
			continue
		}
		summary, err := platformSummary(dir, info)
		if err != nil {
			return err
		}
		summaries = append(summaries, summary)
	}
	printSummaries(summaries)
	return nil
}

func (c *StatusCommand) PostRun(ctx context.Context) error { return nil }

func init() {
	RegisterRunner("status", func() IRunner { return NewStatusCommand() })
}
