package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentFile_Index(t *testing.T) {
	f := FragmentFile{Name: "00001.json", Records: []TextRecord{
		{ID: 10, Text: "a"},
		{ID: 22, Text: "b"},
	}}

	idx, err := f.Index()
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{10: 0, 22: 1}, idx)
}

func TestFragmentFile_IndexRejectsDuplicates(t *testing.T) {
	f := FragmentFile{Name: "00001.json", Records: []TextRecord{
		{ID: 10, Text: "a"},
		{ID: 10, Text: "b"},
	}}

	_, err := f.Index()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestFragmentFile_CloneIsIndependent(t *testing.T) {
	f := FragmentFile{Name: "00001.json", Records: []TextRecord{{ID: 1, Text: "a"}}}

	c := f.Clone()
	c.Records[0].Text = "changed"

	assert.Equal(t, "a", f.Records[0].Text)
}

func TestFragmentSet_Accessors(t *testing.T) {
	set := FragmentSet{Files: []FragmentFile{
		{Name: "00001.json", Records: []TextRecord{{ID: 1}, {ID: 2}}},
		{Name: "00002.json", Records: []TextRecord{{ID: 3}}},
	}}

	assert.Equal(t, []string{"00001.json", "00002.json"}, set.Names())
	assert.Equal(t, 3, set.TotalRecords())

	f, ok := set.File("00002.json")
	require.True(t, ok)
	assert.Equal(t, "00002.json", f.Name)

	_, ok = set.File("00003.json")
	assert.False(t, ok)
}
