package services

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ImageConfig describes where materialized images end up.
type ImageConfig struct {
	Endpoint         string
	Folder           string
	DefaultExtension string
}

func (v ImageConfig) defaultExtension() string {
	if len(v.DefaultExtension) == 0 {
		return ".jpg"
	}
	if !strings.HasPrefix(v.DefaultExtension, ".") {
		return "." + v.DefaultExtension
	}
	return v.DefaultExtension
}

// ImageExtension returns the lowercased extension of a client file name,
// including the dot, or the configured default when none can be recovered.
func (v ImageConfig) ImageExtension(fileName string) string {
	base := filepath.Base(strings.TrimSpace(fileName))
	idx := strings.LastIndex(base, ".")
	if idx <= 0 || idx >= len(base)-1 {
		return v.defaultExtension()
	}
	return strings.ToLower(base[idx:])
}

// ImageFileName is the deterministic name an image of a post is stored under.
func (v ImageConfig) ImageFileName(postSlug string, sortOrder int, clientFileName string) string {
	return fmt.Sprintf("%s-image%d%s", postSlug, sortOrder, v.ImageExtension(clientFileName))
}

// ImageURL joins the endpoint, the folder and the file name.
func (v ImageConfig) ImageURL(fileName string) string {
	parts := make([]string, 0, 3)
	if endpoint := strings.TrimRight(v.Endpoint, "/"); len(endpoint) > 0 {
		parts = append(parts, endpoint)
	}
	if folder := strings.Trim(v.Folder, "/"); len(folder) > 0 {
		parts = append(parts, folder)
	}
	parts = append(parts, fileName)
	return strings.Join(parts, "/")
}
