// Gamelist Export
// Copyright (c) 2025 The Gamelist Export Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Gamelist Export.
//
// Gamelist Export is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gamelist Export is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gamelist Export.  If not, see <http://www.gnu.org/licenses/>.

package media

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	xdraw "golang.org/x/image/draw"

	// Decoders for the image formats found in source libraries.
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
)

// Policy selects how a matched media file is placed into the destination
// layout.
type Policy int

const (
	// PolicyConvert decodes image sources, flattens to RGB unless an alpha
	// channel is present, and re-encodes losslessly as PNG. Non-image files
	// fall through to a verbatim copy.
	PolicyConvert Policy = iota
	// PolicyTrim crops an image to the bounding box of its non-transparent
	// pixels and re-encodes losslessly, leaving color and alpha untouched.
	// Used for marquee logos, which ship with large transparent borders.
	PolicyTrim
	// PolicyCopy byte-copies the file under its original extension.
	PolicyCopy
)

// TransformOptions carries the export toggles that alter transform behavior.
type TransformOptions struct {
	// ConvertImages enables PNG re-encoding under PolicyConvert. When false,
	// image sources are copied verbatim instead.
	ConvertImages bool
	// CopyMedia enables byte-copying under PolicyCopy. When false the
	// destination reference is still rewritten but no bytes are copied,
	// which supports metadata-only refresh runs.
	CopyMedia bool
	// ReduceImages downscales converted images whose longer edge exceeds
	// MaxDimension, for frontends on low-powered hardware. Only acts inside
	// the conversion step, so it requires ConvertImages.
	ReduceImages bool
	// MaxDimension bounds the longer image edge when ReduceImages is set.
	// Zero disables reduction.
	MaxDimension int
}

// Transformer converts or copies matched media files into a destination
// directory under a normalized base name.
type Transformer struct {
	fsys afero.Fs
	opts TransformOptions
}

func NewTransformer(fsys afero.Fs, opts TransformOptions) *Transformer {
	return &Transformer{fsys: fsys, opts: opts}
}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
}

// Transform places srcPath into destDir as baseName plus the extension the
// policy dictates, and returns the forward-slash relative reference for the
// destination catalog ("./<subdir>/<name>"). A decode or encode failure falls
// back to a plain byte copy; only when that also fails is an error returned
// and the category left unresolved.
func (t *Transformer) Transform(srcPath, destDir, baseName string, policy Policy) (string, error) {
	if err := t.fsys.MkdirAll(destDir, 0o750); err != nil {
		return "", fmt.Errorf("creating %s: %w", destDir, err)
	}

	ext := strings.ToLower(filepath.Ext(srcPath))
	isImage := imageExts[ext]

	outName := baseName + ext
	if isImage && (policy == PolicyTrim || (policy == PolicyConvert && t.opts.ConvertImages)) {
		outName = baseName + ".png"
	}
	outPath := filepath.Join(destDir, outName)

	var procErr error
	switch {
	case policy == PolicyTrim && isImage:
		procErr = t.trimImage(srcPath, outPath)
	case policy == PolicyConvert && isImage && t.opts.ConvertImages:
		procErr = t.convertImage(srcPath, outPath)
	default:
		if t.opts.CopyMedia {
			procErr = t.copyFile(srcPath, outPath)
		}
	}

	if procErr != nil {
		log.Warn().Err(procErr).Msgf("could not process %s, copying as is", srcPath)
		if copyErr := t.copyFile(srcPath, outPath); copyErr != nil {
			return "", fmt.Errorf("fallback copy of %s: %w", srcPath, copyErr)
		}
	}

	return "./" + filepath.Base(destDir) + "/" + outName, nil
}

// convertImage re-encodes an image as PNG, flattened to RGB when the source
// carries no alpha channel and preserved as RGBA when it does. With reduction
// enabled, oversized images are downscaled to the configured maximum edge
// first, aspect ratio preserved.
func (t *Transformer) convertImage(srcPath, outPath string) error {
	img, err := t.decode(srcPath)
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	target := bounds
	if t.opts.ReduceImages {
		target = reducedBounds(bounds, t.opts.MaxDimension)
	}

	var normalized draw.Image
	if hasAlpha(img) {
		normalized = image.NewNRGBA(target)
	} else {
		normalized = image.NewRGBA(target)
	}
	if target == bounds {
		draw.Draw(normalized, bounds, img, bounds.Min, draw.Src)
	} else {
		xdraw.CatmullRom.Scale(normalized, target, img, bounds, xdraw.Src, nil)
	}

	return t.encodePNG(outPath, normalized)
}

// reducedBounds shrinks bounds so neither edge exceeds maxDim, preserving the
// aspect ratio. Bounds already within the limit, or a non-positive limit,
// return bounds unchanged.
func reducedBounds(bounds image.Rectangle, maxDim int) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return bounds
	}

	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return image.Rect(0, 0, w, h)
}

// trimImage crops an image to its non-transparent bounding box and re-encodes
// it without any colorspace normalization.
func (t *Transformer) trimImage(srcPath, outPath string) error {
	img, err := t.decode(srcPath)
	if err != nil {
		return err
	}

	if bounds, ok := trimBounds(img); ok {
		if sub, ok := img.(interface {
			SubImage(image.Rectangle) image.Image
		}); ok {
			img = sub.SubImage(bounds)
		}
	}

	return t.encodePNG(outPath, img)
}

func (t *Transformer) decode(srcPath string) (image.Image, error) {
	f, err := t.fsys.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", srcPath, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", srcPath, err)
	}
	return img, nil
}

func (t *Transformer) encodePNG(outPath string, img image.Image) (err error) {
	out, err := t.fsys.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", outPath, closeErr)
		}
	}()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encoding %s: %w", outPath, err)
	}
	return nil
}

func (t *Transformer) copyFile(srcPath, outPath string) (err error) {
	src, err := t.fsys.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", srcPath, err)
	}
	defer func() { _ = src.Close() }()

	out, err := t.fsys.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", outPath, closeErr)
		}
	}()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("copying %s: %w", srcPath, err)
	}
	return nil
}

// hasAlpha reports whether an image carries an alpha channel. This checks the
// pixel format, not actual pixel opacity, mirroring how the media-producing
// tools decide between RGB and RGBA output.
func hasAlpha(img image.Image) bool {
	switch img.ColorModel() {
	case color.NRGBAModel, color.NRGBA64Model,
		color.RGBAModel, color.RGBA64Model,
		color.AlphaModel, color.Alpha16Model:
		return true
	}
	if p, ok := img.(*image.Paletted); ok {
		for _, c := range p.Palette {
			if _, _, _, a := c.RGBA(); a < 0xffff {
				return true
			}
		}
	}
	return false
}

// trimBounds returns the bounding box of non-fully-transparent pixels and
// whether cropping to it would change the image. Images without an alpha
// channel, and images that are entirely transparent, are left uncropped.
func trimBounds(img image.Image) (image.Rectangle, bool) {
	bounds := img.Bounds()
	if !hasAlpha(img) {
		return bounds, false
	}

	found := false
	var box image.Rectangle
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			if !found {
				box = image.Rect(x, y, x+1, y+1)
				found = true
				continue
			}
			if x < box.Min.X {
				box.Min.X = x
			}
			if x+1 > box.Max.X {
				box.Max.X = x + 1
			}
			box.Max.Y = y + 1
		}
	}

	if !found {
		return bounds, false
	}
	return box, box != bounds
}
