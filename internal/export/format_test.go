package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanityID(t *testing.T) {
	tests := []struct {
		docType string
		uid     string
		want    string
	}{
		{"work", "1a2b3c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6d", "work-1a2b3c4d5e6f"},
		{"instrument", "abc", "instrument-abc"},
		{"review", "", "review-"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanityID(tt.docType, tt.uid))
	}

	assert.Equal(t,
		SanityID("work", "1a2b3c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6d"),
		SanityID("work", "1a2b3c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6d"),
	)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"2020-05-01", "2020-05-01"},
		{"2020-05-01 00:00:00", "2020-05-01"},
		{"2020-05-01T10:30:00Z", "2020-05-01"},
		{"premiered 2019-11-03 in Buffalo", "2019-11-03"},
		{"3/7/2018", "2018-03-07"},
		{"12/25/2001", "2001-12-25"},
		{"May 1, 2020", "2020-05-01"},
		{"2019-2020", ""},
		{"sometime", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Crossfire", "crossfire"},
		{"  Stuck-Stuck  ", "stuck-stuck"},
		{"Coleccion Nocturna (1983)", "coleccion-nocturna-1983"},
		{"a -- b", "a-b"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("cover.JPG"))
	assert.True(t, IsImageFile("logo.svg"))
	assert.False(t, IsImageFile("score.pdf"))
	assert.False(t, IsImageFile("noext"))
}

func TestAssetURL(t *testing.T) {
	url, ok := AssetURL("/srv/public", "scoreSamples", "score.pdf", false)
	assert.True(t, ok)
	assert.Equal(t, "file@file:///srv/public/assets/scoresamples/score.pdf", url)

	url, ok = AssetURL("/srv/public", "images", "cover.jpg", true)
	assert.True(t, ok)
	assert.Equal(t, "image@file:///srv/public/assets/images/cover.jpg", url)

	_, ok = AssetURL("/srv/public", "podcasts", "x.mp3", false)
	assert.False(t, ok)
}
