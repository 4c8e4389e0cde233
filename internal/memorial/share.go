// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memorial

import (
	"fmt"
	"net/url"
	"strings"
)

// # Share Links

// qrRenderEndpoint is the external QR rendering service.
const qrRenderEndpoint = "https://api.qrserver.com/v1/create-qr-code/"

// DefaultQRSize is the rendered pixel size used by the dashboard.
const DefaultQRSize = 300

// ShareLink is the shareable representation of one memorial page.
type ShareLink struct {
	URL        string `json:"url"`
	QRImageURL string `json:"qr_image_url"`
}

// ShareURL builds the public deep link for a memorial.
// Format: {origin}?view=memorial&id={id}
func ShareURL(origin, memorialID string) string {
	values := url.Values{}
	values.Set("view", "memorial")
	values.Set("id", memorialID)
	return strings.TrimSuffix(origin, "/") + "?" + values.Encode()
}

// QRImageURL builds the render URL for a QR code pointing at target.
func QRImageURL(target string, size int) string {
	if size <= 0 {
		size = DefaultQRSize
	}
	return fmt.Sprintf("%s?size=%dx%d&data=%s&margin=10",
		qrRenderEndpoint, size, size, url.QueryEscape(target))
}

// NewShareLink builds the full share payload for a memorial id.
func NewShareLink(origin, memorialID string) ShareLink {
	shareURL := ShareURL(origin, memorialID)
	return ShareLink{
		URL:        shareURL,
		QRImageURL: QRImageURL(shareURL, DefaultQRSize),
	}
}
