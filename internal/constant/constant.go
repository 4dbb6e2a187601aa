package constant

const (
	// DefaultRoot is the mount point of the SD card when no --root is given.
	DefaultRoot = "/media/SDCARD"

	// ImageDir is the per-platform cover directory name used by the firmware.
	ImageDir = "images"

	// CatalogFile is the per-platform display-name catalog read by the firmware.
	CatalogFile = "filelist.csv"

	// FirmwareDir holds the firmware global lists on the card.
	FirmwareDir = "cubegm"

	// IndexFile is the global master index inside FirmwareDir.
	IndexFile = "allfiles.lst"

	// FavoritesFile and RecentFile are the firmware reference lists inside FirmwareDir.
	FavoritesFile = "favorites.lst"
	RecentFile    = "recent.lst"

	// CoverExt is the canonical stored cover format.
	CoverExt = ".png"

	// CatalogSeparator corrupts filelist.csv when present in a filename.
	CatalogSeparator = ","

	// IndexSeparator delimits fields in allfiles.lst and the reference lists.
	IndexSeparator = "|"
)
