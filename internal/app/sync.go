package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xxxsen/cubesync/internal/catalog"
	"github.com/xxxsen/cubesync/internal/constant"
	"github.com/xxxsen/cubesync/internal/imaging"
	"github.com/xxxsen/cubesync/internal/match"
	"github.com/xxxsen/cubesync/internal/model"
	"github.com/xxxsen/cubesync/internal/platform"
	"github.com/xxxsen/cubesync/internal/rom"

	"github.com/spf13/pflag"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// SyncCommand reconciles the card's derived artifacts with the ROM inventory:
// file names, cover images, per-platform catalogs, the master index and the
// firmware reference lists.
type SyncCommand struct {
	configFile string
	root       string
	dryRun     bool

	canvasWidth  int
	canvasHeight int
}

func NewSyncCommand() *SyncCommand {
	return &SyncCommand{
		dryRun: true,
	}
}

func (c *SyncCommand) Name() string { return "sync" }

func (c *SyncCommand) Desc() string {
	return "同步 SD 卡上的 ROM、封面与目录文件"
}

func (c *SyncCommand) Init(f *pflag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "配置文件路径")
	f.StringVar(&c.root, "root", "", "SD 卡根目录，默认取配置")
	f.BoolVar(&c.dryRun, "dryrun", true, "是否只是演练（默认 true）")
}

func (c *SyncCommand) PreRun(ctx context.Context) error {
	cfg, err := loadConfig(c.configFile)
	if err != nil {
		return err
	}
	root, err := resolveRoot(c.root, cfg)
	if err != nil {
		return err
	}
	c.root = root
	c.canvasWidth = cfg.Canvas.Width
	c.canvasHeight = cfg.Canvas.Height

	logutil.GetLogger(ctx).Info("sync begin",
		zap.String("root", c.root),
		zap.Bool("dry_run", c.dryRun),
	)
	return nil
}

func (c *SyncCommand) Run(ctx context.Context) error {
	if err := c.sanitizeNames(ctx); err != nil {
		return err
	}

	summaries := make([]model.Summary, 0, len(platform.Names()))
	for _, name := range platform.Names() {
		info, _ := platform.Lookup(name)
		summary, present, err := c.syncPlatform(ctx, info)
		if err != nil {
			return err
		}
		if present {
			summaries = append(summaries, summary)
		}
	}

	entries, err := collectEntries(c.root)
	if err != nil {
		return err
	}
	if err := c.syncIndex(ctx, entries); err != nil {
		return err
	}
	if err := c.cleanReferenceLists(ctx, entries); err != nil {
		return err
	}

	printSummaries(summaries)
	return nil
}

func (c *SyncCommand) PostRun(ctx context.Context) error {
	logutil.GetLogger(ctx).Info("sync completed", zap.Bool("dry_run", c.dryRun))
	return nil
}

// sanitizeNames strips commas out of ROM and image file names. A comma in a
// filename would corrupt filelist.csv, whose first field is the raw filename.
func (c *SyncCommand) sanitizeNames(ctx context.Context) error {
	for _, name := range platform.Names() {
		info, _ := platform.Lookup(name)
		dir := filepath.Join(c.root, name)
		accept := func(fn string) bool {
			ext := filepath.Ext(fn)
			return info.AcceptsExt(ext) || platform.IsImageExt(ext)
		}
		if err := c.sanitizeDir(ctx, dir, accept); err != nil {
			return err
		}
		imageOnly := func(fn string) bool {
			return platform.IsImageExt(filepath.Ext(fn))
		}
		if err := c.sanitizeDir(ctx, filepath.Join(dir, constant.ImageDir), imageOnly); err != nil {
			return err
		}
	}
	return nil
}

func (c *SyncCommand) sanitizeDir(ctx context.Context, dir string, accept func(string) bool) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}

	logger := logutil.GetLogger(ctx)
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		if !accept(name) || !strings.Contains(name, constant.CatalogSeparator) {
			continue
		}
		clean := strings.ReplaceAll(name, constant.CatalogSeparator, "")
		target := filepath.Join(dir, clean)
		if _, err := os.Stat(target); err == nil {
			logger.Warn("sanitize target already exists, keeping original",
				zap.String("file", filepath.Join(dir, name)),
				zap.String("target", target),
			)
			continue
		}
		fmt.Printf("[RENAME] %s -> %s\n", filepath.Join(dir, name), target)
		if c.dryRun {
			continue
		}
		if err := os.Rename(filepath.Join(dir, name), target); err != nil {
			logger.Error("rename failed", zap.String("file", name), zap.Error(err))
		}
	}
	return nil
}

func (c *SyncCommand) syncPlatform(ctx context.Context, info platform.Info) (model.Summary, bool, error) {
	dir := filepath.Join(c.root, info.Name)
	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		return model.Summary{}, false, nil
	}
	fmt.Printf("\n=== %s ===\n", info.Name)

	if err := c.relocateLooseImages(ctx, dir, info); err != nil {
		return model.Summary{}, false, err
	}
	if err := c.removeDuplicates(ctx, dir, info); err != nil {
		return model.Summary{}, false, err
	}
	if err := c.pruneOrphanImages(ctx, dir, info); err != nil {
		return model.Summary{}, false, err
	}
	if err := c.syncCatalog(ctx, dir, info); err != nil {
		return model.Summary{}, false, err
	}

	summary, err := platformSummary(dir, info)
	if err != nil {
		return model.Summary{}, false, err
	}
	return summary, true, nil
}

// relocateLooseImages moves cover images lying beside the ROMs into the images
// subdirectory, normalized onto the firmware canvas and renamed after the
// best-matching ROM. Each ROM claims at most one image.
func (c *SyncCommand) relocateLooseImages(ctx context.Context, dir string, info platform.Info) error {
	logger := logutil.GetLogger(ctx)

	images, err := listLooseImages(dir)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}

	roms, err := rom.List(dir, info)
	if err != nil {
		return err
	}
	if len(roms) == 0 {
		logger.Warn("loose images present but no roms",
			zap.String("platform", info.Name),
			zap.Int("images", len(images)),
		)
		return nil
	}

	candidates := make([]match.Candidate, 0, len(roms))
	for _, e := range roms {
		candidates = append(candidates, match.NewCandidate(e.BaseName))
	}
	claimed := make(map[string]struct{}, len(roms))

	for _, img := range images {
		free := make([]match.Candidate, 0, len(candidates))
		for _, cand := range candidates {
			if _, ok := claimed[cand.Name]; ok {
				continue
			}
			free = append(free, cand)
		}
		base := strings.TrimSuffix(img, filepath.Ext(img))
		best, score := match.Best(base, free)
		if score < 1 {
			fmt.Printf("[SKIP] %s: no rom matched\n", filepath.Join(dir, img))
			continue
		}
		claimed[best.Name] = struct{}{}

		target := filepath.Join(dir, constant.ImageDir, best.Name+constant.CoverExt)
		fmt.Printf("[COVER] %s -> %s (score=%d)\n", filepath.Join(dir, img), target, score)
		if c.dryRun {
			continue
		}
		if err := imaging.NormalizeFile(filepath.Join(dir, img), target, c.canvasWidth, c.canvasHeight); err != nil {
			logger.Error("normalize cover failed", zap.String("image", img), zap.Error(err))
			continue
		}
		if err := os.Remove(filepath.Join(dir, img)); err != nil {
			logger.Error("remove source image failed", zap.String("image", img), zap.Error(err))
		}
	}
	return nil
}

// removeDuplicates deletes loose ROMs shadowed by an archive with the same
// base name. The archive must be readable and non-empty before its loose twin
// is touched.
func (c *SyncCommand) removeDuplicates(ctx context.Context, dir string, info platform.Info) error {
	logger := logutil.GetLogger(ctx)

	roms, err := rom.List(dir, info)
	if err != nil {
		return err
	}
	for _, dup := range rom.FindDuplicates(roms) {
		if err := rom.InspectArchive(filepath.Join(dir, dup.ArchiveFile)); err != nil {
			logger.Warn("archive unreadable, keeping loose rom",
				zap.String("archive", dup.ArchiveFile),
				zap.Error(err),
			)
			continue
		}
		fmt.Printf("[DUP] %s shadowed by %s\n", dup.Entry.Filename, dup.ArchiveFile)
		if c.dryRun {
			continue
		}
		if err := os.Remove(filepath.Join(dir, dup.Entry.Filename)); err != nil {
			logger.Error("remove duplicate failed", zap.String("file", dup.Entry.Filename), zap.Error(err))
		}
	}
	return nil
}

// pruneOrphanImages deletes stored covers whose ROM no longer exists. With no
// ROMs left the whole images directory gets emptied.
func (c *SyncCommand) pruneOrphanImages(ctx context.Context, dir string, info platform.Info) error {
	imgDir := filepath.Join(dir, constant.ImageDir)
	entries, err := os.ReadDir(imgDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read dir %s: %w", imgDir, err)
	}

	roms, err := rom.List(dir, info)
	if err != nil {
		return err
	}
	valid := rom.BaseNames(roms)

	logger := logutil.GetLogger(ctx)
	kept, removed := 0, 0
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		if _, ok := valid[strings.TrimSuffix(name, filepath.Ext(name))]; ok {
			kept++
			continue
		}
		removed++
		fmt.Printf("[ORPHAN] %s\n", filepath.Join(imgDir, name))
		if c.dryRun {
			continue
		}
		if err := os.Remove(filepath.Join(imgDir, name)); err != nil {
			logger.Error("remove orphan image failed", zap.String("image", name), zap.Error(err))
		}
	}
	if removed > 0 {
		fmt.Printf("images: kept=%d removed=%d\n", kept, removed)
	}
	return nil
}

// syncCatalog rebuilds filelist.csv from the ROM set, preserving prior display
// fields and synthesizing records for new ROMs.
func (c *SyncCommand) syncCatalog(ctx context.Context, dir string, info platform.Info) error {
	logger := logutil.GetLogger(ctx)
	path := filepath.Join(dir, constant.CatalogFile)

	roms, err := rom.List(dir, info)
	if err != nil {
		return err
	}
	prior, malformed, err := catalog.LoadCatalog(path)
	if err != nil {
		return err
	}
	if malformed > 0 {
		logger.Warn("malformed catalog lines skipped",
			zap.String("platform", info.Name),
			zap.Int("count", malformed),
		)
	}

	if len(roms) == 0 {
		if len(prior) == 0 {
			return nil
		}
		fmt.Printf("[CATALOG] %s: clearing %d stale entries\n", info.Name, len(prior))
		if c.dryRun {
			return nil
		}
		return catalog.WriteLines(path, nil)
	}

	added, stale := catalogDiff(roms, prior)
	lines := catalog.MergeCatalog(roms, prior)
	fmt.Printf("[CATALOG] %s: %d entries (+%d new, -%d stale)\n", info.Name, len(lines), added, stale)
	if c.dryRun {
		return nil
	}
	return catalog.WriteLines(path, lines)
}

func catalogDiff(roms []model.RomEntry, prior map[string]string) (added, stale int) {
	current := make(map[string]struct{}, len(roms))
	for _, e := range roms {
		current[e.Filename] = struct{}{}
		if _, ok := prior[e.Filename]; !ok {
			added++
		}
	}
	for filename := range prior {
		if _, ok := current[filename]; !ok {
			stale++
		}
	}
	return added, stale
}

// syncIndex rebuilds the firmware master index against the global ROM set. A
// card without allfiles.lst is not index-managed and stays untouched.
func (c *SyncCommand) syncIndex(ctx context.Context, entries []model.RomEntry) error {
	logger := logutil.GetLogger(ctx)
	path := filepath.Join(c.root, constant.FirmwareDir, constant.IndexFile)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Info("master index not present, skipping", zap.String("path", path))
		return nil
	} else if err != nil {
		return fmt.Errorf("stat index %s: %w", path, err)
	}

	prior, malformed, err := catalog.LoadIndex(path)
	if err != nil {
		return err
	}
	if malformed > 0 {
		logger.Warn("malformed index lines skipped", zap.Int("count", malformed))
	}

	lines := catalog.MergeIndex(entries, prior)
	fmt.Printf("\n[INDEX] %s: %d entries (was %d)\n", path, len(lines), len(prior))
	if c.dryRun {
		return nil
	}
	return catalog.WriteLines(path, lines)
}

// cleanReferenceLists drops favorites/recents entries whose ROM is gone.
func (c *SyncCommand) cleanReferenceLists(ctx context.Context, entries []model.RomEntry) error {
	valid := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		valid[e.Key()] = struct{}{}
	}

	for _, name := range []string{constant.FavoritesFile, constant.RecentFile} {
		path := filepath.Join(c.root, constant.FirmwareDir, name)
		lines, err := catalog.LoadLines(path)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			continue
		}
		kept, removed := catalog.CleanReferences(lines, valid)
		if removed == 0 {
			continue
		}
		fmt.Printf("[LIST] %s: removed %d dead entries\n", name, removed)
		if c.dryRun {
			continue
		}
		if err := catalog.WriteLines(path, kept); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	RegisterRunner("sync", func() IRunner { return NewSyncCommand() })
}
