package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageExtension(t *testing.T) {
	cfg := ImageConfig{DefaultExtension: ".jpg"}

	assert.Equal(t, ".png", cfg.ImageExtension("a.png"))
	assert.Equal(t, ".png", cfg.ImageExtension("HOLIDAY.PNG"))
	assert.Equal(t, ".gz", cfg.ImageExtension("archive.tar.gz"))
	assert.Equal(t, ".jpg", cfg.ImageExtension("photo"))
	assert.Equal(t, ".jpg", cfg.ImageExtension("photo."))
	assert.Equal(t, ".jpg", cfg.ImageExtension(".hidden"))
	assert.Equal(t, ".jpg", cfg.ImageExtension(""))
	assert.Equal(t, ".webp", cfg.ImageExtension("dir.v2/pic.webp"))
}

func TestImageExtensionDefault(t *testing.T) {
	assert.Equal(t, ".jpg", ImageConfig{}.ImageExtension("photo"))
	assert.Equal(t, ".webp", ImageConfig{DefaultExtension: "webp"}.ImageExtension("photo"))
}

func TestImageFileNameAndURL(t *testing.T) {
	cfg := ImageConfig{
		Endpoint:         "https://ik.imagekit.io/scribe/",
		Folder:           "/posts/",
		DefaultExtension: ".jpg",
	}

	name := cfg.ImageFileName("my-trip", 0, "a.png")
	assert.Equal(t, "my-trip-image0.png", name)
	assert.Equal(t, "https://ik.imagekit.io/scribe/posts/my-trip-image0.png", cfg.ImageURL(name))

	assert.Equal(t, "my-trip-image3.jpg", cfg.ImageFileName("my-trip", 3, "photo"))
	assert.Equal(t, "cdn/x.jpg", ImageConfig{Endpoint: "cdn"}.ImageURL("x.jpg"))
}
