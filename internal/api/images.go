package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path"
	"strings"

	"github.com/and161185/budget-keeper/internal/model"
)

const imagesPath = "/images"

// UploadImage stores an image and returns the path to reference from a transaction.
// contentType must be an image/* type; the backend rejects anything else.
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (*model.ImageUpload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, path.Base(filename)))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, imagesPath+"/upload", nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var out model.ImageUpload
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode upload: %w", err)
	}
	return &out, nil
}

// ImageURL returns the absolute URL of a stored image. It accepts either a bare
// filename or a stored path such as /api/images/<name>.
func (c *Client) ImageURL(ref string) string {
	return c.endpoint(imagesPath+"/"+imageName(ref), nil)
}

// FetchImage downloads a stored image with the session's credentials.
// The caller must close the returned body.
func (c *Client) FetchImage(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, imagesPath+"/"+imageName(ref), nil, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "image/*")
	resp, err := c.send(req)
	if err != nil {
		return nil, "", err
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func imageName(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
