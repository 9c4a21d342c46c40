package lessonsync_test

import (
	"testing"

	"github.com/jfsagro-glitch/lessonsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFileLinks(t *testing.T) {
	t.Parallel()

	t.Run("recognizes the known URL shapes", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			text string
			id   string
		}{
			{
				name: "file view link",
				text: "see https://drive.google.com/file/d/1aB2cD3eF4gH5/view?usp=sharing here",
				id:   "1aB2cD3eF4gH5",
			},
			{
				name: "open link",
				text: "https://drive.google.com/open?id=1aB2cD3eF4gH5",
				id:   "1aB2cD3eF4gH5",
			},
			{
				name: "uc link",
				text: "https://drive.google.com/uc?id=1aB2cD3eF4gH5&export=download",
				id:   "1aB2cD3eF4gH5",
			},
			{
				name: "uc export link",
				text: "https://drive.google.com/uc?export=view&id=1aB2cD3eF4gH5",
				id:   "1aB2cD3eF4gH5",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				links := lessonsync.FindFileLinks(tt.text)

				require.Len(t, links, 1)
				assert.Equal(t, tt.id, links[0].RemoteID)
			})
		}
	})

	t.Run("returns occurrences in position order", func(t *testing.T) {
		t.Parallel()

		text := "first https://drive.google.com/open?id=bbbbbbbbbb22 then " +
			"https://drive.google.com/file/d/aaaaaaaaaa11/view end"

		links := lessonsync.FindFileLinks(text)

		require.Len(t, links, 2)
		assert.Equal(t, "bbbbbbbbbb22", links[0].RemoteID)
		assert.Equal(t, "aaaaaaaaaa11", links[1].RemoteID)
		assert.Less(t, links[0].Start, links[1].Start)
	})

	t.Run("offsets address the literal matched substring", func(t *testing.T) {
		t.Parallel()

		text := "x https://drive.google.com/file/d/aaaaaaaaaa11/view y"

		links := lessonsync.FindFileLinks(text)

		require.Len(t, links, 1)
		assert.Equal(t, "https://drive.google.com/file/d/aaaaaaaaaa11/view", text[links[0].Start:links[0].End])
	})

	t.Run("short identifiers are not links", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, lessonsync.FindFileLinks("https://drive.google.com/file/d/short/view"))
	})

	t.Run("no links in plain text", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, lessonsync.FindFileLinks("nothing to see at https://example.com/file"))
	})
}

func TestMarkerToken(t *testing.T) {
	t.Parallel()

	token := lessonsync.MarkerToken("aaaaaaaaaa11", 2)

	assert.Equal(t, "MEDIA_aaaaaaaaaa11_2", token)
	assert.Equal(t, []string{token}, lessonsync.FindMarkers("before "+token+" after"))
}

func TestSanitizeFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "photo.jpg", want: "photo.jpg"},
		{in: "мой файл (1).jpg", want: "_1_.jpg"},
		{in: "a b/c\\d.png", want: "a_b_c_d.png"},
		{in: "clean-name_01.mp4", want: "clean-name_01.mp4"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, lessonsync.SanitizeFileName(tt.in))
	}
}

func TestMediaRelPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "day_05/pic.jpg", lessonsync.MediaRelPath(5, "pic.jpg"))
	assert.Equal(t, "day_12/a_b.png", lessonsync.MediaRelPath(12, "a b.png"))
}
