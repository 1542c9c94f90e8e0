package catalog

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

type EmbedProvider string

const (
	ProviderYouTube    EmbedProvider = "youtube"
	ProviderVimeo      EmbedProvider = "vimeo"
	ProviderSoundCloud EmbedProvider = "soundcloud"
	ProviderUnknown    EmbedProvider = "unknown"
)

type EmbedInfo struct {
	Provider    EmbedProvider `json:"provider"`
	VideoID     string        `json:"videoId,omitempty"`
	EmbedURL    string        `json:"embedUrl,omitempty"`
	OriginalURL string        `json:"originalUrl"`
}

var (
	youtubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtube\.com/watch\?.+&v=)([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
	}
	vimeoPatterns = []*regexp.Regexp{
		regexp.MustCompile(`vimeo\.com/(\d+)`),
		regexp.MustCompile(`player\.vimeo\.com/video/(\d+)`),
	}
)

const soundCloudWidget = "https://w.soundcloud.com/player/?url=%s&color=%%23ff5500&auto_play=false&hide_related=true&show_comments=false&show_user=true&show_reposts=false&show_teaser=false"

// GetEmbedInfo detects the media provider of a URL and builds its embed URL.
func GetEmbedInfo(link string) EmbedInfo {
	if link == "" {
		return EmbedInfo{Provider: ProviderUnknown}
	}

	for _, pattern := range youtubePatterns {
		if m := pattern.FindStringSubmatch(link); m != nil {
			return EmbedInfo{
				Provider:    ProviderYouTube,
				VideoID:     m[1],
				EmbedURL:    "https://www.youtube.com/embed/" + m[1],
				OriginalURL: link,
			}
		}
	}

	for _, pattern := range vimeoPatterns {
		if m := pattern.FindStringSubmatch(link); m != nil {
			return EmbedInfo{
				Provider:    ProviderVimeo,
				VideoID:     m[1],
				EmbedURL:    "https://player.vimeo.com/video/" + m[1],
				OriginalURL: link,
			}
		}
	}

	if strings.Contains(link, "soundcloud.com") {
		embed := link
		if !strings.Contains(link, "w.soundcloud.com/player") {
			embed = fmt.Sprintf(soundCloudWidget, encodeURIComponent(link))
		}
		return EmbedInfo{Provider: ProviderSoundCloud, EmbedURL: embed, OriginalURL: link}
	}

	return EmbedInfo{Provider: ProviderUnknown, OriginalURL: link}
}

var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func encodeURIComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}
