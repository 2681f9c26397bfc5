// Package media classifies uploaded files and merges them into a report's
// image and video lists.
package media

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

// ErrNoFiles is returned when a media upload carries no files.
var ErrNoFiles = fmt.Errorf("no files uploaded: %w", domain.ErrValidation)

const (
	imagePrefix = "image/"
	videoPrefix = "video/"
)

// Classify partitions files into images and videos by MIME type prefix.
// Files of any other type are dropped.
func Classify(files []domain.MediaFile) domain.MediaLists {
	var out domain.MediaLists
	for _, f := range files {
		mt := strings.ToLower(strings.TrimSpace(f.MimeType))
		switch {
		case strings.HasPrefix(mt, imagePrefix):
			out.Images = append(out.Images, f.Filename)
		case strings.HasPrefix(mt, videoPrefix):
			out.Videos = append(out.Videos, f.Filename)
		}
	}
	return out
}

// Append concatenates the classified files onto the existing lists, keeping
// upload order and duplicates.
func Append(existing domain.MediaLists, files []domain.MediaFile) (domain.MediaLists, error) {
	if len(files) == 0 {
		return existing, ErrNoFiles
	}
	added := Classify(files)
	return domain.MediaLists{
		Images: concat(existing.Images, added.Images),
		Videos: concat(existing.Videos, added.Videos),
	}, nil
}

// Replace swaps both lists for the classification of files. With no files the
// existing lists are returned untouched.
func Replace(existing domain.MediaLists, files []domain.MediaFile) domain.MediaLists {
	if len(files) == 0 {
		return existing
	}
	return Classify(files)
}

// concat never aliases a's backing array.
func concat(a, b []string) []string {
	if len(a)+len(b) == 0 {
		return nil
	}
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
