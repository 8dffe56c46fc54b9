package host

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExtensions maps recognised file extensions to a format name.
var imageExtensions = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
}

// FormatOf returns the format name for path's extension, or "unknown".
func FormatOf(path string) string {
	if f, ok := imageExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return "unknown"
}

// ImageInfo describes an image file and the RGBA buffer decoded from it.
type ImageInfo struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// Format comes from the file extension, not the contents.
	Format string `json:"format"`

	// ByteLength is the size of the decoded RGBA buffer: width*height*4.
	ByteLength int `json:"byte_length"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo decodes path through cache and reports its size.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	g, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &ImageInfo{
		Path:          path,
		Width:         g.Width,
		Height:        g.Height,
		Format:        FormatOf(path),
		ByteLength:    len(g.Pix),
		FileSizeBytes: stat.Size(),
	}, nil
}

// ListResult is the set of image files found in a directory.
type ListResult struct {
	Dir   string   `json:"dir"`
	Files []string `json:"files"`
}

// ListImages returns the names of image files directly inside dir, sorted.
// Subdirectories and files with other extensions are skipped.
func ListImages(dir string) (*ListResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || FormatOf(e.Name()) == "unknown" {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	return &ListResult{Dir: dir, Files: files}, nil
}
