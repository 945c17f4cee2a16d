// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package audit

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

/*
TestTruncate verifies cell text is shortened by rune count, so multi-byte
usernames are never split into invalid UTF-8.
*/
func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short_ascii_untouched", "dj_mixer", 15, "dj_mixer"},
		{"exact_length_untouched", "abcde", 5, "abcde"},
		{"long_ascii_cut", "abcdefghij", 4, "abcd"},
		{"cyrillic_cut_on_rune_boundary", "Пользователь", 6, "Пользо"},
		{"accented_name_cut", "Renée-Aurélie", 6, "Renée-"},
		{"cjk_cut", "音楽が大好きです", 3, "音楽が"},
		{"empty_string", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
