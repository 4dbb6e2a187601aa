package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xxxsen/cubesync/internal/config"
	"github.com/xxxsen/cubesync/internal/constant"
	appdb "github.com/xxxsen/cubesync/internal/db"
	"github.com/xxxsen/cubesync/internal/imaging"
	"github.com/xxxsen/cubesync/internal/match"
	"github.com/xxxsen/cubesync/internal/model"
	"github.com/xxxsen/cubesync/internal/platform"
	"github.com/xxxsen/cubesync/internal/rom"
	"github.com/xxxsen/cubesync/internal/thumbs"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// FetchCoverCommand downloads covers for ROMs that have none, matching each
// ROM against the remote thumbnail repository of its platform. Attempts are
// cached so known-missing titles are not re-queried on every run.
type FetchCoverCommand struct {
	configFile     string
	root           string
	platformFilter string
	limit          int

	cfg *config.Config
}

func NewFetchCoverCommand() *FetchCoverCommand {
	return &FetchCoverCommand{}
}

func (c *FetchCoverCommand) Name() string { return "fetch-cover" }

func (c *FetchCoverCommand) Desc() string {
	return "从远端封面仓库补全缺失的封面"
}

func (c *FetchCoverCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "配置文件路径")
	f.StringVar(&c.root, "root", "", "SD 卡根目录，默认取配置")
	f.StringVar(&c.platformFilter, "platform", "", "只处理指定平台")
	f.IntVar(&c.limit, "limit", 0, "单次最多下载封面数量，0 表示不限制")
}

func (c *FetchCoverCommand) PreRun(ctx context.Context) error {
	cfg, err := loadConfig(c.configFile)
	if err != nil {
		return err
	}
	root, err := resolveRoot(c.root, cfg)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.root = root

	if c.platformFilter != "" {
		if _, ok := platform.Lookup(c.platformFilter); !ok {
			return fmt.Errorf("unknown platform: %s", c.platformFilter)
		}
	}

	client, err := thumbs.New(cfg.Thumbs.Host, time.Duration(cfg.Thumbs.TimeoutSec)*time.Second)
	if err != nil {
		return err
	}
	thumbs.SetDefaultClient(client)

	database, err := appdb.Open(ctx, cfg.Cache.DBFile)
	if err != nil {
		return err
	}
	appdb.SetDefault(database)

	logutil.GetLogger(ctx).Info("fetch-cover begin",
		zap.String("root", c.root),
		zap.String("host", cfg.Thumbs.Host),
		zap.String("platform", c.platformFilter),
	)
	return nil
}

func (c *FetchCoverCommand) Run(ctx context.Context) error {
	logger := logutil.GetLogger(ctx)
	client := thumbs.DefaultClient()

	fetched := 0
	for _, name := range platform.Names() {
		if c.platformFilter != "" && !strings.EqualFold(c.platformFilter, name) {
			continue
		}
		info, _ := platform.Lookup(name)
		dir := filepath.Join(c.root, name)

		missing, err := romsWithoutCover(dir, info)
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			continue
		}

		covers, err := client.ListCovers(ctx, info.ThumbRepo)
		if err != nil {
			logger.Error("list covers failed", zap.String("platform", name), zap.Error(err))
			continue
		}
		candidates := make([]match.Candidate, 0, len(covers))
		for _, cover := range covers {
			candidates = append(candidates, match.NewCandidate(strings.TrimSuffix(cover, constant.CoverExt)))
		}

		for _, e := range missing {
			if c.limit > 0 && fetched >= c.limit {
				logger.Info("fetch limit reached", zap.Int("limit", c.limit))
				return nil
			}
			done, err := c.fetchOne(ctx, dir, info, e, candidates)
			if err != nil {
				return err
			}
			if done {
				fetched++
			}
		}
	}

	logger.Info("fetch-cover completed", zap.Int("fetched", fetched))
	return nil
}

func (c *FetchCoverCommand) fetchOne(ctx context.Context, dir string, info platform.Info, e model.RomEntry, candidates []match.Candidate) (bool, error) {
	logger := logutil.GetLogger(ctx)
	key := e.Key()

	cached, found, err := appdb.CoverCacheDao.Lookup(ctx, key)
	if err != nil {
		return false, err
	}
	if found && cached.Outcome == appdb.OutcomeMissing {
		return false, nil
	}

	romTokens := match.Tokenize(e.BaseName)
	bestName, bestScore := "", 0
	for _, cand := range candidates {
		if s := match.Score(romTokens, cand.Tokens); s > bestScore {
			bestName, bestScore = cand.Name, s
		}
	}

	if bestScore < c.cfg.Thumbs.MinScore {
		fmt.Printf("[MISS] %s (best score=%d)\n", key, bestScore)
		return false, appdb.CoverCacheDao.Upsert(ctx, appdb.CoverCacheEntry{
			RomKey:  key,
			Outcome: appdb.OutcomeMissing,
			Score:   bestScore,
		})
	}

	coverName := bestName + constant.CoverExt
	data, err := thumbs.DefaultClient().Download(ctx, info.ThumbRepo, coverName)
	if err != nil {
		logger.Error("download cover failed",
			zap.String("key", key),
			zap.String("cover", coverName),
			zap.Error(err),
		)
		return false, nil
	}

	normalized, err := imaging.Normalize(data, c.cfg.Canvas.Width, c.cfg.Canvas.Height)
	if err != nil {
		logger.Error("normalize cover failed", zap.String("cover", coverName), zap.Error(err))
		return false, nil
	}

	target := filepath.Join(dir, constant.ImageDir, e.BaseName+constant.CoverExt)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, fmt.Errorf("create image dir: %w", err)
	}
	if err := os.WriteFile(target, normalized, 0o644); err != nil {
		return false, fmt.Errorf("write cover %s: %w", target, err)
	}
	fmt.Printf("[FETCH] %s <- %s (score=%d)\n", key, coverName, bestScore)

	return true, appdb.CoverCacheDao.Upsert(ctx, appdb.CoverCacheEntry{
		RomKey:    key,
		CoverName: coverName,
		Outcome:   appdb.OutcomeStored,
		Score:     bestScore,
	})
}

// romsWithoutCover lists ROMs lacking a stored cover, sorted by filename.
func romsWithoutCover(dir string, info platform.Info) ([]model.RomEntry, error) {
	roms, err := rom.List(dir, info)
	if err != nil {
		return nil, err
	}
	missing := make([]model.RomEntry, 0, len(roms))
	for _, e := range roms {
		cover := filepath.Join(dir, constant.ImageDir, e.BaseName+constant.CoverExt)
		if _, err := os.Stat(cover); err == nil {
			continue
		}
		missing = append(missing, e)
	}
	return missing, nil
}

func (c *FetchCoverCommand) PostRun(ctx context.Context) error {
	if database := appdb.Default(); database != nil {
		return database.Close()
	}
	return nil
}

func init() {
	RegisterRunner("fetch-cover", func() IRunner { return NewFetchCoverCommand() })
}
