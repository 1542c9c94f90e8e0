package export

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// VolumePaths maps legacy asset volume handles to their directory under the
// public web root.
var VolumePaths = map[string]string{
	"electronics":  "assets/electronics",
	"scoreSamples": "assets/scoresamples",
	"audio":        "assets/audio",
	"video":        "assets/video",
	"images":       "assets/images",
	"liveStream":   "assets/livestream",
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006",
}

var (
	isoDatePattern = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	usDatePattern  = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)

	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^\w-]+`)
	slugDashes  = regexp.MustCompile(`-{2,}`)
)

// SanityID derives a stable document id from the legacy UID.
func SanityID(docType, uid string) string {
	compact := strings.ReplaceAll(uid, "-", "")
	if len(compact) > 12 {
		compact = compact[:12]
	}
	return docType + "-" + compact
}

// FormatDate normalises a legacy date to yyyy-mm-dd. It returns "" when the
// value cannot be read as a date.
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02")
		}
	}

	if m := isoDatePattern.FindStringSubmatch(value); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
	}
	if m := usDatePattern.FindStringSubmatch(value); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], pad(m[1]), pad(m[2]))
	}

	logrus.Debugf("unparseable date %q omitted", value)
	return ""
}

func pad(v string) string {
	if len(v) == 1 {
		return "0" + v
	}
	return v
}

// Slugify builds a URL slug from a title.
func Slugify(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsImageFile reports whether filename has an image extension.
func IsImageFile(filename string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// AssetURL returns the importer locator for a legacy asset file. The second
// result is false when the volume is unknown.
func AssetURL(assetsPath, volume, filename string, image bool) (string, bool) {
	volumePath, ok := VolumePaths[volume]
	if !ok {
		logrus.Errorf("unknown volume: %s", volume)
		return "", false
	}

	prefix := "file"
	if image {
		prefix = "image"
	}
	return prefix + "@file://" + path.Join(assetsPath, volumePath, filename), true
}
