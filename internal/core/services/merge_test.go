package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wwm-locale/localetool/internal/core/domain"
)

func fragSet(files ...domain.FragmentFile) *domain.FragmentSet {
	return &domain.FragmentSet{Files: files}
}

func fragFile(name string, records ...domain.TextRecord) domain.FragmentFile {
	return domain.FragmentFile{Name: name, Records: records}
}

func rec(id int64, text string) domain.TextRecord {
	return domain.TextRecord{ID: id, Text: text}
}

func TestMerge_OverlaysByID(t *testing.T) {
	svc := NewMergeService()

	original := fragSet(fragFile("00001.json",
		rec(10, "你好"),
		rec(22, "世界"),
		rec(31, "再见"),
	))
	patch := fragSet(fragFile("00001.json",
		rec(31, "Tạm biệt"),
		rec(10, "Xin chào"),
	))

	merged, err := svc.Merge(context.Background(), original, patch)
	require.NoError(t, err)
	require.Len(t, merged.Files, 1)

	got := merged.Files[0]
	assert.Equal(t, "00001.json", got.Name)

	// Original order and count survive; only patched texts change
	require.Len(t, got.Records, 3)
	assert.Equal(t, rec(10, "Xin chào"), got.Records[0])
	assert.Equal(t, rec(22, "世界"), got.Records[1])
	assert.Equal(t, rec(31, "Tạm biệt"), got.Records[2])
}

func TestMerge_EmptyPatchFileIsIdentity(t *testing.T) {
	svc := NewMergeService()

	// Same file set, but the patch file touches no ids.
	original := fragSet(fragFile("00001.json", rec(1, "a"), rec(2, "b")))
	patch := fragSet(fragFile("00001.json"))

	merged, err := svc.Merge(context.Background(), original, patch)
	require.NoError(t, err)
	assert.Equal(t, original.Files, merged.Files)

	// Output is a copy, not an alias
	merged.Files[0].Records[0].Text = "mutated"
	assert.Equal(t, "a", original.Files[0].Records[0].Text)
}

func TestMerge_FileCountMismatchFails(t *testing.T) {
	svc := NewMergeService()

	original := fragSet(
		fragFile("00001.json", rec(1, "one")),
		fragFile("00002.json", rec(2, "two")),
	)
	patch := fragSet(fragFile("00002.json", rec(2, "zwei")))

	merged, err := svc.Merge(context.Background(), original, patch)
	assert.Nil(t, merged)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStructuralMismatch))

	var mismatch *domain.StructuralMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 2, mismatch.OriginalFiles)
	assert.Equal(t, 1, mismatch.PatchFiles)
}

func TestMerge_UnmatchedPatchFileFails(t *testing.T) {
	svc := NewMergeService()

	original := fragSet(fragFile("00001.json", rec(1, "one")))
	patch := fragSet(fragFile("00099.json", rec(1, "ninety-nine")))

	merged, err := svc.Merge(context.Background(), original, patch)
	assert.Nil(t, merged)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStructuralMismatch))

	var mismatch *domain.StructuralMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, []string{"00099.json"}, mismatch.Unmatched)
}

func TestMerge_MissingIDFails(t *testing.T) {
	svc := NewMergeService()

	original := fragSet(fragFile("00001.json", rec(10, "a"), rec(20, "b")))
	patch := fragSet(fragFile("00001.json", rec(10, "x"), rec(77, "y")))

	merged, err := svc.Merge(context.Background(), original, patch)
	assert.Nil(t, merged)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingID))

	var missing *domain.MissingIDError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "00001.json", missing.File)
	assert.Equal(t, int64(77), missing.ID)
}

func TestMerge_AllOrNothing(t *testing.T) {
	svc := NewMergeService()

	// Second patch file is bad; the valid first file must not leak
	// into any output.
	original := fragSet(
		fragFile("00001.json", rec(1, "one")),
		fragFile("00002.json", rec(2, "two")),
	)
	patch := fragSet(
		fragFile("00001.json", rec(1, "eins")),
		fragFile("00002.json", rec(99, "boom")),
	)

	merged, err := svc.Merge(context.Background(), original, patch)
	assert.Nil(t, merged)
	assert.True(t, errors.Is(err, domain.ErrMissingID))

	// Inputs untouched
	assert.Equal(t, "one", original.Files[0].Records[0].Text)
}

func TestMerge_DuplicateIDInOriginalFails(t *testing.T) {
	svc := NewMergeService()

	original := fragSet(fragFile("00001.json", rec(5, "a"), rec(5, "b")))
	patch := fragSet(fragFile("00001.json", rec(5, "x")))

	merged, err := svc.Merge(context.Background(), original, patch)
	assert.Nil(t, merged)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestMerge_NilInputs(t *testing.T) {
	svc := NewMergeService()
	ctx := context.Background()

	_, err := svc.Merge(ctx, nil, fragSet())
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = svc.Merge(ctx, fragSet(), nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestMerge_CancelledContext(t *testing.T) {
	svc := NewMergeService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Merge(ctx, fragSet(), fragSet())
	assert.Error(t, err)
}
