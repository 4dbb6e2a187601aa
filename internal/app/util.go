package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xxxsen/cubesync/internal/catalog"
	"github.com/xxxsen/cubesync/internal/config"
	"github.com/xxxsen/cubesync/internal/constant"
	"github.com/xxxsen/cubesync/internal/model"
	"github.com/xxxsen/cubesync/internal/platform"
	"github.com/xxxsen/cubesync/internal/rom"
)

const (
	defaultConfigName = "cubesync.json"
	systemConfigPath  = "/etc/cubesync.json"
)

// loadConfig resolves the configuration respecting precedence rules: the
// explicit --config path, then ./cubesync.json, then the system path. When no
// config file exists anywhere the built-in defaults apply.
func loadConfig(explicit string) (*config.Config, error) {
	searchPaths := make([]string, 0, 3)
	if explicit != "" {
		searchPaths = append(searchPaths, explicit)
	}

	if wd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(wd, defaultConfigName))
	}

	searchPaths = append(searchPaths, systemConfigPath)

	cfg, err := config.LoadFirst(searchPaths...)
	if errors.Is(err, os.ErrNotExist) {
		if explicit != "" {
			return nil, fmt.Errorf("config file not found: %s", explicit)
		}
		return config.Default(), nil
	}
	return cfg, err
}

// resolveRoot picks the card root from the flag or config and verifies it is a
// directory.
func resolveRoot(flagValue string, cfg *config.Config) (string, error) {
	root := flagValue
	if root == "" {
		root = cfg.Root
	}
	st, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("card root not accessible %s: %w", root, err)
	}
	if !st.IsDir() {
		return "", fmt.Errorf("card root is not a directory: %s", root)
	}
	return root, nil
}

// listLooseImages returns sorted image file names lying directly in the
// platform directory, outside the images subdirectory.
func listLooseImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var names []string
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		if platform.IsImageExt(filepath.Ext(ent.Name())) {
			names = append(names, ent.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// countFiles counts regular files in a directory. A missing directory counts
// as zero.
func countFiles(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read dir %s: %w", dir, err)
	}
	count := 0
	for _, ent := range entries {
		if !ent.IsDir() {
			count++
		}
	}
	return count, nil
}

// collectEntries resolves the ROM inventory of the whole card: platforms in
// sorted order, filenames sorted within each platform.
func collectEntries(root string) ([]model.RomEntry, error) {
	var all []model.RomEntry
	for _, name := range platform.Names() {
		info, _ := platform.Lookup(name)
		entries, err := rom.List(filepath.Join(root, name), info)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

// platformSummary recomputes the three counts for one platform directory.
func platformSummary(dir string, info platform.Info) (model.Summary, error) {
	roms, err := rom.List(dir, info)
	if err != nil {
		return model.Summary{}, err
	}
	catalogCount, err := catalog.CountLines(filepath.Join(dir, constant.CatalogFile))
	if err != nil {
		return model.Summary{}, err
	}
	imageCount, err := countFiles(filepath.Join(dir, constant.ImageDir))
	if err != nil {
		return model.Summary{}, err
	}
	return model.Summary{
		Platform:     info.Name,
		RomCount:     len(roms),
		CatalogCount: catalogCount,
		ImageCount:   imageCount,
		Status:       model.SummaryStatus(len(roms), catalogCount, imageCount),
	}, nil
}

func printSummaries(summaries []model.Summary) {
	fmt.Printf("\n%-8s %6s %8s %7s  %s\n", "PLATFORM", "ROMS", "CATALOG", "IMAGES", "STATUS")
	for _, s := range summaries {
		fmt.Printf("%-8s %6d %8d %7d  %s\n", s.Platform, s.RomCount, s.CatalogCount, s.ImageCount, s.Status)
	}
}
