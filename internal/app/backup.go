package app

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/xxxsen/cubesync/internal/constant"
	"github.com/xxxsen/cubesync/internal/platform"
	"github.com/xxxsen/cubesync/internal/storage"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// BackupCommand uploads the card's derived text artifacts (catalogs, master
// index, reference lists) to the configured bucket under a timestamped prefix.
// ROMs and covers are not backed up; they are either replaceable or huge.
type BackupCommand struct {
	configFile string
	root       string
	prefix     string
}

func NewBackupCommand() *BackupCommand {
	return &BackupCommand{
		prefix: "backup",
	}
}

func (c *BackupCommand) Name() string { return "backup" }

func (c *BackupCommand) Desc() string {
	return "备份目录文件与索引到对象存储"
}

func (c *BackupCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "配置文件路径")
	f.StringVar(&c.root, "root", "", "SD 卡根目录，默认取配置")
	f.StringVar(&c.prefix, "prefix", "backup", "对象存储中的备份前缀")
}

func (c *BackupCommand) PreRun(ctx context.Context) error {
	cfg, err := loadConfig(c.configFile)
	if err != nil {
		return err
	}
	if err := cfg.ValidateS3(); err != nil {
		return err
	}
	root, err := resolveRoot(c.root, cfg)
	if err != nil {
		return err
	}
	c.root = root

	client, err := storage.NewS3Client(ctx, cfg.S3)
	if err != nil {
		return err
	}
	storage.SetDefaultClient(client)

	logutil.GetLogger(ctx).Info("backup begin",
		zap.String("root", c.root),
		zap.String("bucket", cfg.S3.Bucket),
	)
	return nil
}

func (c *BackupCommand) Run(ctx context.Context) error {
	logger := logutil.GetLogger(ctx)
	store := storage.DefaultClient()

	base := path.Join(c.prefix, time.Now().UTC().Format("20060102-150405"))
	uploaded := 0

	for _, name := range platform.Names() {
		src := filepath.Join(c.root, name, constant.CatalogFile)
		if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			return err
		}
		key := path.Join(base, name, constant.CatalogFile)
		if err := store.UploadFile(ctx, key, src, "text/csv"); err != nil {
			logger.Error("upload catalog failed", zap.String("platform", name), zap.Error(err))
			continue
		}
		uploaded++
	}

	for _, name := range []string{constant.IndexFile, constant.FavoritesFile, constant.RecentFile} {
		src := filepath.Join(c.root, constant.FirmwareDir, name)
		if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			return err
		}
		key := path.Join(base, constant.FirmwareDir, name)
		if err := store.UploadFile(ctx, key, src, "text/plain"); err != nil {
			logger.Error("upload list failed", zap.String("file", name), zap.Error(err))
			continue
		}
		uploaded++
	}

	logger.Info("backup completed",
		zap.String("prefix", base),
		zap.Int("files", uploaded),
	)
	return nil
}

func (c *BackupCommand) PostRun(ctx context.Context) error { return nil }

func init() {
	RegisterRunner("backup", func() IRunner { return NewBackupCommand() })
}
