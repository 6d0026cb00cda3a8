package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/and161185/budget-keeper/internal/imaging"
	"github.com/and161185/budget-keeper/internal/model"
)

func cmdImage(ctx context.Context, a *app, args []string) error {
	if err := a.guard(ctx, "/transactions"); err != nil {
		return err
	}
	sub, rest := subcommand(args, "")
	switch sub {
	case "upload":
		fs := newFlagSet(a, "image upload")
		maxDim := fs.Int("max", imaging.DefaultMaxDimension, "longest side in pixels")
		quality := fs.Int("q", imaging.DefaultQuality, "JPEG quality")
		if _, err := parse(fs, rest); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return usagef("image upload [-max N] [-q N] <file>")
		}
		up, err := a.uploadReceipt(ctx, fs.Arg(0), imaging.Options{MaxDimension: *maxDim, Quality: *quality})
		if err != nil {
			return err
		}
		return a.printJSON(map[string]string{"filename": up.Filename, "path": up.Path, "url": a.client.ImageURL(up.Path)})
	case "fetch":
		fs := newFlagSet(a, "image fetch")
		out := fs.String("o", "", "output file (default: the image name)")
		if _, err := parse(fs, rest); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return usagef("image fetch [-o file] <path or filename>")
		}
		return a.fetchImage(ctx, fs.Arg(0), *out)
	default:
		return usagef("image upload|fetch")
	}
}

// uploadReceipt compresses the image at path and uploads it.
func (a *app) uploadReceipt(ctx context.Context, path string, opts imaging.Options) (*model.ImageUpload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := imaging.Compress(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.log.Debug("compressed receipt",
		zap.String("file", path),
		zap.String("format", img.SourceFormat),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("bytes", len(img.Data)),
	)
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".jpg"
	return a.client.UploadImage(ctx, name, img.ContentType(), bytes.NewReader(img.Data))
}

func (a *app) fetchImage(ctx context.Context, ref, out string) error {
	body, contentType, err := a.client.FetchImage(ctx, ref)
	if err != nil {
		return err
	}
	defer body.Close()
	if out == "" {
		out = filepath.Base(ref)
	}
	f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	n, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	return a.printJSON(map[string]any{"file": out, "content_type": contentType, "bytes": n})
}
