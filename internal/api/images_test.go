package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadImage(t *testing.T) {
	f := newFixture(t)
	f.mux.HandleFunc("POST /api/images/upload", func(w http.ResponseWriter, r *http.Request) {
		file, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "receipt.jpg", hdr.Filename)
		require.Equal(t, "image/jpeg", hdr.Header.Get("Content-Type"))
		b, _ := io.ReadAll(file)
		require.Equal(t, []byte("jpegbytes"), b)
		writeJSON(w, http.StatusOK, map[string]any{"filename": "abc.jpg", "path": "/api/images/abc.jpg"})
	})

	up, err := f.client.UploadImage(context.Background(), "/tmp/scans/receipt.jpg", "image/jpeg", bytes.NewReader([]byte("jpegbytes")))
	require.NoError(t, err)
	require.Equal(t, "abc.jpg", up.Filename)
	require.Equal(t, "/api/images/abc.jpg", up.Path)
}

func TestFetchImage(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sess.Login(context.Background(), f.token))
	f.mux.HandleFunc("GET /api/images/{name}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("name") != "abc.jpg" {
			writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Image not found"})
			return
		}
		require.Equal(t, "Bearer "+f.token, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("blob"))
	})

	body, ct, err := f.client.FetchImage(context.Background(), "/api/images/abc.jpg")
	require.NoError(t, err)
	defer body.Close()
	b, _ := io.ReadAll(body)
	require.Equal(t, "blob", string(b))
	require.Equal(t, "image/jpeg", ct)

	_, _, err = f.client.FetchImage(context.Background(), "missing.png")
	require.Error(t, err)

	require.Equal(t, f.srv.URL+"/api/images/abc.jpg", f.client.ImageURL("/api/images/abc.jpg"))
	require.Equal(t, f.srv.URL+"/api/images/abc.jpg", f.client.ImageURL("abc.jpg"))
}
