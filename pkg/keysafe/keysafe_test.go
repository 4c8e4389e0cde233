// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package keysafe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eternize/eternize/pkg/keysafe"
)

/*
TestFileName verifies accent stripping, hyphenation, extension handling and
path traversal defusal for user-provided upload names.
*/
func TestFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "accented portuguese name", input: "Vídeo da Vovó.mp4", expected: "video-da-vovo.mp4"},
		{name: "plain ascii", input: "holiday.jpg", expected: "holiday.jpg"},
		{name: "uppercase extension lowered", input: "Retrato.JPG", expected: "retrato.jpg"},
		{name: "spaces and punctuation", input: "Festa de 80 anos!! (final).png", expected: "festa-de-80-anos-final.png"},
		{name: "path components discarded", input: "../../etc/passwd", expected: "passwd"},
		{name: "no extension", input: "memórias", expected: "memorias"},
		{name: "only symbols falls back", input: "???!!!", expected: "file"},
		{name: "leading and trailing hyphens trimmed", input: "--meu--arquivo--.mp3", expected: "meu-arquivo.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, keysafe.FileName(tt.input))
		})
	}
}
