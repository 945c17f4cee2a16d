// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mixlist/mixlist/pkg/query"
)

/*
TestInt64Slice verifies lenient parsing of comma-separated ID filters.
*/
func TestInt64Slice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int64
	}{
		{"empty", "", nil},
		{"single", "7", []int64{7}},
		{"multiple", "1,2,3", []int64{1, 2, 3}},
		{"spaces_trimmed", " 4 , 5 ", []int64{4, 5}},
		{"garbage_skipped", "1,abc,3", []int64{1, 3}},
		{"only_garbage", "abc,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.Int64Slice(tt.input))
		})
	}
}

/*
TestIntSlice verifies repeated-parameter parsing.
*/
func TestIntSlice(t *testing.T) {
	assert.Equal(t, []int{1, 9}, query.IntSlice([]string{"1", "x", "9"}))
	assert.Nil(t, query.IntSlice(nil))
}

/*
TestStringSlice verifies trimming and empty-entry removal.
*/
func TestStringSlice(t *testing.T) {
	assert.Equal(t, []string{"rock", "jazz"}, query.StringSlice(" rock ,, jazz"))
	assert.Nil(t, query.StringSlice(""))
}
