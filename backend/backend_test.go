package backend

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/flatfa/fasta"
	"github.com/hupe1980/flatfa/index"
	"github.com/hupe1980/flatfa/internal/flatten"
	"github.com/hupe1980/flatfa/internal/fs"
	"github.com/hupe1980/flatfa/kvstore"
	"github.com/hupe1980/flatfa/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sidecarBackend struct {
	name    string
	backend func() Backend
	// indexFile reports whether the index is kept in a .gdx sidecar.
	indexFile bool
}

func sidecarBackends() []sidecarBackend {
	return []sidecarBackend{
		{"file", File, true},
		{"mmap", Mmap, true},
		{"kv", func() Backend { return KV(kvstore.NewMemoryStore()) }, false},
	}
}

type rebuilds struct{ reasons []string }

func sourceOf(path string, inPlace bool, rb *rebuilds) Source {
	return Source{
		Path:           path,
		Records:        fasta.FileRecords(path, nil),
		FlattenInPlace: inPlace,
		OnRebuild:      func(reason string) { rb.reasons = append(rb.reasons, reason) },
	}
}

func backdate(t *testing.T, paths ...string) {
	t.Helper()
	past := time.Now().Add(-time.Hour)
	for _, p := range paths {
		require.NoError(t, os.Chtimes(p, past, past))
	}
}

func fetchString(t *testing.T, v View, span index.Span) string {
	t.Helper()
	b, err := v.Fetch(span.Start, span.Stop)
	require.NoError(t, err)
	return string(b)
}

func TestPrepare_BuildAndReuse(t *testing.T) {
	ctx := context.Background()
	for _, tc := range sidecarBackends() {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := testutil.WriteThreeChrs(t, dir)
			backdate(t, path)
			b := tc.backend()
			assert.Equal(t, tc.name, b.Name())

			rb := &rebuilds{}
			idx, view, err := b.Prepare(ctx, sourceOf(path, false, rb))
			require.NoError(t, err)
			assert.Equal(t, []string{"stale"}, rb.reasons)
			assert.Equal(t, index.Index{"chr1": {Start: 0, Stop: 80}, "chr2": {Start: 80, Stop: 160}, "chr3": {Start: 160, Stop: 3760}}, idx)
			assert.Equal(t, uint64(3760), view.Size())
			assert.Equal(t, testutil.ThreeChrs[1].Seq, fetchString(t, view, idx["chr2"]))
			require.NoError(t, view.Close())

			flatInfo, err := os.Stat(path + flatten.StoreExt)
			require.NoError(t, err)
			assert.Equal(t, tc.indexFile, fs.Exists(fs.Default, path+index.Ext))

			// Reuse must not touch the sidecars or read the source.
			rb = &rebuilds{}
			src := sourceOf(path, false, rb)
			src.Records = func(func(fasta.Record, error) bool) { t.Fatal("source re-read on reuse") }
			idx2, view2, err := b.Prepare(ctx, src)
			require.NoError(t, err)
			defer view2.Close()
			assert.Empty(t, rb.reasons)
			assert.Equal(t, idx, idx2)
			assert.Equal(t, testutil.ThreeChrs[2].Seq[:7], fetchString(t, view2, index.Span{Start: 160, Stop: 167}))

			again, err := os.Stat(path + flatten.StoreExt)
			require.NoError(t, err)
			assert.Equal(t, flatInfo.ModTime(), again.ModTime())
		})
	}
}

func TestPrepare_StaleRebuild(t *testing.T) {
	ctx := context.Background()
	for _, tc := range sidecarBackends() {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := testutil.WriteFile(t, dir, "x.fa", ">a\nAAAA\n")
			backdate(t, path)
			b := tc.backend()

			_, view, err := b.Prepare(ctx, sourceOf(path, false, &rebuilds{}))
			require.NoError(t, err)
			require.NoError(t, view.Close())

			// Rewrite the source with a newer mtime than the sidecars.
			require.NoError(t, os.WriteFile(path, []byte(">a\nCC\n>b\nGG\n"), 0o644))
			future := time.Now().Add(time.Hour)
			require.NoError(t, os.Chtimes(path, future, future))

			rb := &rebuilds{}
			idx, view, err := b.Prepare(ctx, sourceOf(path, false, rb))
			require.NoError(t, err)
			defer view.Close()
			assert.Equal(t, []string{"stale"}, rb.reasons)
			assert.Equal(t, index.Index{"a": {Start: 0, Stop: 2}, "b": {Start: 2, Stop: 4}}, idx)
			assert.Equal(t, "GG", fetchString(t, view, idx["b"]))
		})
	}
}

func TestPrepare_FlattenInPlace(t *testing.T) {
	ctx := context.Background()
	for _, tc := range sidecarBackends() {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := testutil.WriteFile(t, dir, "x.fa", ">a\nAC\nGT\n>b\nTT\n")
			backdate(t, path)
			b := tc.backend()

			rb := &rebuilds{}
			idx, view, err := b.Prepare(ctx, sourceOf(path, true, rb))
			require.NoError(t, err)
			assert.Equal(t, []string{"stale"}, rb.reasons)
			assert.Equal(t, "ACGT", fetchString(t, view, idx["a"]))
			assert.Equal(t, "TT", fetchString(t, view, idx["b"]))
			require.NoError(t, view.Close())

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, ">a\nACGT\n>b\nTT", string(content))

			placeholder, err := os.ReadFile(path + flatten.StoreExt)
			require.NoError(t, err)
			assert.Equal(t, flatten.Magic, string(placeholder))
			assert.False(t, fs.Exists(fs.Default, path+fs.TempSuffix))

			// Reopen with and without the flag: both reuse the flattened source.
			for _, inPlace := range []bool{true, false} {
				rb := &rebuilds{}
				idx2, view2, err := b.Prepare(ctx, sourceOf(path, inPlace, rb))
				require.NoError(t, err)
				assert.Empty(t, rb.reasons)
				assert.Equal(t, idx, idx2)
				assert.Equal(t, "ACGT", fetchString(t, view2, idx2["a"]))
				require.NoError(t, view2.Close())
			}
		})
	}
}

func TestPrepare_InPlaceWithoutPlaceholderRebuilds(t *testing.T) {
	ctx := context.Background()
	for _, tc := range sidecarBackends() {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := testutil.WriteFile(t, dir, "x.fa", ">a\nAC\nGT\n")
			backdate(t, path)
			b := tc.backend()

			_, view, err := b.Prepare(ctx, sourceOf(path, false, &rebuilds{}))
			require.NoError(t, err)
			require.NoError(t, view.Close())

			rb := &rebuilds{}
			idx, view, err := b.Prepare(ctx, sourceOf(path, true, rb))
			require.NoError(t, err)
			defer view.Close()
			assert.Equal(t, []string{"flatten in place requested"}, rb.reasons)
			assert.Equal(t, index.Span{Start: 3, Stop: 7}, idx["a"])
			assert.Equal(t, "ACGT", fetchString(t, view, idx["a"]))

			placeholder, err := flatten.IsPlaceholder(fs.Default, path+flatten.StoreExt)
			require.NoError(t, err)
			assert.True(t, placeholder)
		})
	}
}

func TestPrepare_Duplicates(t *testing.T) {
	ctx := context.Background()
	for _, tc := range sidecarBackends() {
		for _, inPlace := range []bool{false, true} {
			t.Run(tc.name, func(t *testing.T) {
				dir := t.TempDir()
				content := ">a\nAC\n>b\nGG\n>a\nTT\n"
				path := testutil.WriteFile(t, dir, "dups.fasta", content)

				_, _, err := tc.backend().Prepare(ctx, sourceOf(path, inPlace, &rebuilds{}))
				var dup *index.DuplicateHeaderError
				require.ErrorAs(t, err, &dup)
				assert.Equal(t, "a", dup.Header)

				assert.False(t, fs.Exists(fs.Default, path+flatten.StoreExt))
				assert.False(t, fs.Exists(fs.Default, path+index.Ext))
				got, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, content, string(got), "source untouched")
			})
		}
	}
}

func TestPrepare_CorruptIndexRebuilds(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "x.fa", ">a\nAC\n")
	backdate(t, path)

	_, view, err := Mmap().Prepare(ctx, sourceOf(path, false, &rebuilds{}))
	require.NoError(t, err)
	require.NoError(t, view.Close())

	require.NoError(t, os.WriteFile(path+index.Ext, []byte("garbage"), 0o644))

	rb := &rebuilds{}
	idx, view, err := Mmap().Prepare(ctx, sourceOf(path, false, rb))
	require.NoError(t, err)
	defer view.Close()
	assert.Equal(t, []string{"corrupt index"}, rb.reasons)
	assert.Equal(t, index.Index{"a": {Start: 0, Stop: 2}}, idx)
}

func TestPrepare_Errors(t *testing.T) {
	ctx := context.Background()
	missing := filepath.Join(t.TempDir(), "missing.fa")

	for _, b := range []Backend{File(), Mmap(), Memory(), KV(kvstore.NewMemoryStore())} {
		_, _, err := b.Prepare(ctx, sourceOf(missing, false, &rebuilds{}))
		assert.ErrorIs(t, err, ErrSourceNotFound, b.Name())
	}

	path := testutil.WriteFile(t, t.TempDir(), "x.fa", ">a\nA\n")
	_, _, err := KV(nil).Prepare(ctx, sourceOf(path, false, &rebuilds{}))
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestPrepare_WriteFailureLeavesNoSidecars(t *testing.T) {
	ctx := context.Background()
	path := testutil.WriteFile(t, t.TempDir(), "x.fa", ">a\n"+strings.Repeat("ACGT", 50_000)+"\n")

	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule(flatten.StoreExt, fs.Fault{FailAfterBytes: 1000})
	src := sourceOf(path, false, &rebuilds{})
	src.FS = ffs

	_, _, err := File().Prepare(ctx, src)
	require.ErrorIs(t, err, fs.ErrInjected)
	assert.False(t, fs.Exists(fs.Default, path+flatten.StoreExt))
	assert.False(t, fs.Exists(fs.Default, path+index.Ext))
}

func TestPrepare_PlaceholderReadError(t *testing.T) {
	ctx := context.Background()
	for _, sb := range sidecarBackends() {
		t.Run(sb.name, func(t *testing.T) {
			path := testutil.WriteThreeChrs(t, t.TempDir())
			b := sb.backend()
			_, view, err := b.Prepare(ctx, sourceOf(path, false, &rebuilds{}))
			require.NoError(t, err)
			require.NoError(t, view.Close())

			ffs := fs.NewFaultyFS(nil)
			ffs.AddRule(flatten.StoreExt, fs.Fault{FailAfterBytes: -1, FailOnRead: true})
			src := sourceOf(path, false, &rebuilds{})
			src.FS = ffs

			_, _, err = b.Prepare(ctx, src)
			assert.ErrorIs(t, err, fs.ErrInjected)
		})
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := testutil.WriteThreeChrs(t, dir)

	b := Memory()
	assert.Equal(t, "memory", b.Name())
	idx, view, err := b.Prepare(ctx, sourceOf(path, true, &rebuilds{}))
	require.NoError(t, err)
	assert.Equal(t, index.Span{Start: 80, Stop: 160}, idx["chr2"])
	assert.Equal(t, testutil.ThreeChrs[0].Seq, fetchString(t, view, idx["chr1"]))

	assert.False(t, fs.Exists(fs.Default, path+flatten.StoreExt), "memory backend writes nothing")
	assert.False(t, fs.Exists(fs.Default, path+index.Ext))

	_, _, err = b.Prepare(ctx, sourceOf(testutil.WriteFile(t, dir, "d.fa", ">a\nA\n>a\nC\n"), false, &rebuilds{}))
	assert.ErrorIs(t, err, index.ErrDuplicateHeader)

	require.NoError(t, view.Close())
	_, err = view.Fetch(0, 1)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestViews_Clamp(t *testing.T) {
	ctx := context.Background()
	for _, b := range []Backend{File(), Mmap(), Memory()} {
		t.Run(b.Name(), func(t *testing.T) {
			path := testutil.WriteFile(t, t.TempDir(), "x.fa", ">a\n0123456789\n")
			_, view, err := b.Prepare(ctx, sourceOf(path, false, &rebuilds{}))
			require.NoError(t, err)

			cases := []struct {
				start, stop uint64
				want        string
			}{
				{0, 10, "0123456789"},
				{2, 5, "234"},
				{8, 50, "89"},
				{10, 20, ""},
				{50, 60, ""},
				{5, 5, ""},
				{6, 2, ""},
			}
			for _, c := range cases {
				got, err := view.Fetch(c.start, c.stop)
				require.NoError(t, err)
				assert.NotNil(t, got)
				assert.Equal(t, c.want, string(got), "[%d,%d)", c.start, c.stop)
			}

			require.NoError(t, view.Close())
			require.NoError(t, view.Close())
			_, err = view.Fetch(0, 1)
			assert.ErrorIs(t, err, ErrClosed)
		})
	}
}

func TestClamp(t *testing.T) {
	s, e := clamp(5, 100, 10)
	assert.Equal(t, uint64(5), s)
	assert.Equal(t, uint64(10), e)

	s, e = clamp(20, 30, 10)
	assert.Equal(t, s, e)
}
