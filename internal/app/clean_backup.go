package app

import (
	"context"
	"errors"

	"github.com/xxxsen/cubesync/internal/storage"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
)

// CleanBackupCommand empties the configured backup bucket.
type CleanBackupCommand struct {
	configFile string
	force      bool
}

func NewCleanBackupCommand() *CleanBackupCommand {
	return &CleanBackupCommand{}
}

func (c *CleanBackupCommand) Name() string { return "clean-backup" }

func (c *CleanBackupCommand) Desc() string {
	return "清空备份存储桶中的所有对象"
}

func (c *CleanBackupCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "配置文件路径")
	f.BoolVar(&c.force, "force", false, "确认执行清理操作")
}

func (c *CleanBackupCommand) PreRun(ctx context.Context) error {
	if !c.force {
		return errors.New("refusing to clean backup bucket without --force confirmation")
	}

	cfg, err := loadConfig(c.configFile)
	if err != nil {
		return err
	}
	if err := cfg.ValidateS3(); err != nil {
		return err
	}

	client, err := storage.NewS3Client(ctx, cfg.S3)
	if err != nil {
		return err
	}
	storage.SetDefaultClient(client)

	logutil.GetLogger(ctx).Info("clean backup begin")
	return nil
}

func (c *CleanBackupCommand) Run(ctx context.Context) error {
	return storage.DefaultClient().ClearBucket(ctx)
}

func (c *CleanBackupCommand) PostRun(ctx context.Context) error {
	logutil.GetLogger(ctx).Info("clean backup finished")
	return nil
}

func init() {
	RegisterRunner("clean-backup", func() IRunner { return NewCleanBackupCommand() })
}
