// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memorial_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternize/eternize/internal/memorial"
)

/*
TestShareURL verifies the deep link format and origin handling.
*/
func TestShareURL(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		id     string
		want   string
	}{
		{"plain_origin", "https://eternize.app", "mem-1", "https://eternize.app?id=mem-1&view=memorial"},
		{"trailing_slash", "https://eternize.app/", "mem-1", "https://eternize.app?id=mem-1&view=memorial"},
		{"demo_id", "https://eternize.app", "demo-maria-silva", "https://eternize.app?id=demo-maria-silva&view=memorial"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, memorial.ShareURL(tt.origin, tt.id))
		})
	}
}

/*
TestQRImageURL verifies the external render URL, including target escaping.
*/
func TestQRImageURL(t *testing.T) {
	target := "https://eternize.app?id=mem-1&view=memorial"
	qr := memorial.QRImageURL(target, 300)

	parsed, err := url.Parse(qr)
	require.NoError(t, err)

	assert.Equal(t, "api.qrserver.com", parsed.Host)
	assert.Equal(t, "300x300", parsed.Query().Get("size"))
	assert.Equal(t, "10", parsed.Query().Get("margin"))
	assert.Equal(t, target, parsed.Query().Get("data"))
}

/*
TestQRImageURL_DefaultSize verifies the fallback for non-positive sizes.
*/
func TestQRImageURL_DefaultSize(t *testing.T) {
	qr := memorial.QRImageURL("https://eternize.app", 0)

	parsed, err := url.Parse(qr)
	require.NoError(t, err)
	assert.Equal(t, "300x300", parsed.Query().Get("size"))
}

/*
TestNewShareLink verifies that the QR encodes exactly the share URL.
*/
func TestNewShareLink(t *testing.T) {
	link := memorial.NewShareLink("https://eternize.app", "mem-1")

	parsed, err := url.Parse(link.QRImageURL)
	require.NoError(t, err)
	assert.Equal(t, link.URL, parsed.Query().Get("data"))
}
