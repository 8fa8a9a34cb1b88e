package property

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"immo-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func (e *testEnv) uploadImage(t *testing.T, propertyID uint, token, filename string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/properties/%d/images", propertyID), &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestStoreImage(t *testing.T) {
	env := setup(t)
	owner, ownerTok := env.createUser(t, "owner@example.com")
	p := env.seedProperty(t, owner.ID, nil)

	resp := env.uploadImage(t, p.ID, ownerTok, "front door.png", []byte("png-bytes"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var image models.PropertyImage
	require.NoError(t, env.db.Where("property_id = ?", p.ID).First(&image).Error)
	require.True(t, strings.HasPrefix(image.ImageURL, "images/"))
	// Spaces in the original filename are replaced with underscores and a
	// timestamp prefix is added.
	require.True(t, strings.HasSuffix(image.ImageURL, "_front_door.png"))

	onDisk := filepath.Join(env.imgDir, filepath.Base(image.ImageURL))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), data)
}

func TestStoreImageRequiresOwnership(t *testing.T) {
	env := setup(t)
	owner, _ := env.createUser(t, "owner@example.com")
	_, otherTok := env.createUser(t, "other@example.com")
	p := env.seedProperty(t, owner.ID, nil)

	resp := env.uploadImage(t, p.ID, otherTok, "a.png", []byte("x"))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStoreImageValidation(t *testing.T) {
	env := setup(t)
	owner, ownerTok := env.createUser(t, "owner@example.com")
	p := env.seedProperty(t, owner.ID, nil)

	resp := env.uploadImage(t, p.ID, ownerTok, "a.bmp", []byte("x"))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body struct {
		ErrorMessages []string `json:"errorMessages"`
	}
	decode(t, resp, &body)
	require.Contains(t, body.ErrorMessages, "The image must be a file of type: jpeg, png, jpg, gif, svg.")

	resp = env.uploadImage(t, p.ID, ownerTok, "big.png", bytes.Repeat([]byte("a"), 2049*1024))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	decode(t, resp, &body)
	require.Contains(t, body.ErrorMessages, "The image may not be greater than 2048 kilobytes.")

	// Missing file entirely.
	resp = env.request(t, http.MethodPost, fmt.Sprintf("/api/v1/properties/%d/images", p.ID), ownerTok, nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestDestroyImage(t *testing.T) {
	env := setup(t)
	owner, ownerTok := env.createUser(t, "owner@example.com")
	p := env.seedProperty(t, owner.ID, nil)
	other := env.seedProperty(t, owner.ID, nil)

	image := models.PropertyImage{PropertyID: p.ID, ImageURL: "images/keep.png"}
	require.NoError(t, env.db.Create(&image).Error)

	// The image must belong to the property named in the path.
	resp := env.request(t, http.MethodDelete,
		fmt.Sprintf("/api/v1/properties/%d/images/%d", other.ID, image.ID), ownerTok, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.request(t, http.MethodDelete,
		fmt.Sprintf("/api/v1/properties/%d/images/%d", p.ID, image.ID), ownerTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	env.db.Model(&models.PropertyImage{}).Count(&count)
	require.Zero(t, count)

	// Property deletion is untouched by image deletion; the property stays.
	var stillThere models.Property
	require.NoError(t, env.db.First(&stillThere, p.ID).Error)
}
