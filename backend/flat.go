package backend

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hupe1980/flatfa/index"
	"github.com/hupe1980/flatfa/internal/flatten"
)

// IndexStore persists the index of one source. ModTime reports when the
// stored index was written; ok is false when there is none.
type IndexStore interface {
	ModTime(ctx context.Context) (t time.Time, ok bool, err error)
	Load(ctx context.Context) (index.Index, error)
	Save(ctx context.Context, idx index.Index) error
	Remove(ctx context.Context) error
}

type openFunc func(src Source, path string) (View, error)

// prepareFlat implements the sidecar cache shared by the on-disk backends.
func prepareFlat(ctx context.Context, src Source, store IndexStore, open openFunc) (index.Index, View, error) {
	fsys := src.fs()
	if _, err := fsys.Stat(src.Path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrSourceNotFound, src.Path)
		}
		return nil, nil, err
	}

	storePath := src.Path + flatten.StoreExt

	reason, err := reuse(ctx, src, store, storePath)
	if err != nil {
		return nil, nil, err
	}
	if reason == "" {
		idx, err := store.Load(ctx)
		switch {
		case err == nil:
			target := storePath
			placeholder, err := flatten.IsPlaceholder(fsys, storePath)
			if err != nil {
				return nil, nil, err
			}
			if placeholder {
				target = src.Path
			}
			view, err := open(src, target)
			if err != nil {
				return nil, nil, err
			}
			return idx, view, nil
		case errors.Is(err, index.ErrCorrupt):
			reason = "corrupt index"
		default:
			return nil, nil, err
		}
	}

	src.rebuilding(reason)

	if err := store.Remove(ctx); err != nil {
		return nil, nil, fmt.Errorf("discard index: %w", err)
	}
	if err := fsys.Remove(storePath); err != nil && !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("discard store: %w", err)
	}

	dest := storePath
	if src.FlattenInPlace {
		dest = src.Path
	}

	idx, err := flatten.Build(ctx, fsys, dest, src.Records, src.FlattenInPlace)
	if err != nil {
		return nil, nil, err
	}
	if src.FlattenInPlace {
		if err := flatten.WritePlaceholder(fsys, src.Path); err != nil {
			return nil, nil, err
		}
	}
	if err := store.Save(ctx, idx); err != nil {
		return nil, nil, fmt.Errorf("save index: %w", err)
	}

	view, err := open(src, dest)
	if err != nil {
		return nil, nil, err
	}
	return idx, view, nil
}

// reuse returns "" when the cached sidecars can serve src, otherwise the
// reason they cannot.
func reuse(ctx context.Context, src Source, store IndexStore, storePath string) (string, error) {
	current, err := flatten.IsCurrent(ctx, src.fs(), src.Path, store)
	if err != nil {
		return "", err
	}
	if !current {
		return "stale", nil
	}
	if !src.FlattenInPlace {
		return "", nil
	}
	placeholder, err := flatten.IsPlaceholder(src.fs(), storePath)
	if err != nil {
		return "", err
	}
	if !placeholder {
		return "flatten in place requested", nil
	}
	return "", nil
}
