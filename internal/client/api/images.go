package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"photokeeper/internal/client/models"
)

// UploadRequest carries the multipart upload of a new image. Name is
// required by the backend; Groups may pre-assign the image to groups.
type UploadRequest struct {
	Name        string
	Description string
	Groups      []int64
	FileName    string
	File        io.Reader
}

// ImageUpdate is a partial update of an image's editable metadata.
// Nil fields are omitted from the PATCH body.
type ImageUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func imagePath(id int64) string {
	return "/images/" + strconv.FormatInt(id, 10) + "/"
}

func groupPath(id int64) string {
	return "/groups/" + strconv.FormatInt(id, 10) + "/"
}

// ListImages fetches the image collection, scoped to the caller's own
// uploads when mine is true.
func (c *Client) ListImages(ctx context.Context, mine bool) ([]models.Image, error) {
	path := "/images/"
	if mine {
		path += "?mine=true"
	}
	var images []models.Image
	if err := c.do(ctx, http.MethodGet, path, "", nil, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// GetImage fetches the complete record for one image.
func (c *Client) GetImage(ctx context.Context, id int64) (*models.Image, error) {
	var img models.Image
	if err := c.do(ctx, http.MethodGet, imagePath(id), "", nil, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// UploadImage POSTs a multipart form with the image file and its metadata.
// Group ids are sent as repeated "groups" fields, which is how the backend
// expects list values in form data.
func (c *Client) UploadImage(ctx context.Context, req UploadRequest) (*models.Image, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("name", req.Name); err != nil {
		return nil, fmt.Errorf("upload form: %w", err)
	}
	if err := w.WriteField("description", req.Description); err != nil {
		return nil, fmt.Errorf("upload form: %w", err)
	}
	for _, g := range req.Groups {
		if err := w.WriteField("groups", strconv.FormatInt(g, 10)); err != nil {
			return nil, fmt.Errorf("upload form: %w", err)
		}
	}
	part, err := w.CreateFormFile("image", req.FileName)
	if err != nil {
		return nil, fmt.Errorf("upload form: %w", err)
	}
	if _, err := io.Copy(part, req.File); err != nil {
		return nil, fmt.Errorf("read image file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("upload form: %w", err)
	}

	var img models.Image
	if err := c.do(ctx, http.MethodPost, "/images/", w.FormDataContentType(), &buf, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// UpdateImage applies a partial metadata update and returns the new record.
func (c *Client) UpdateImage(ctx context.Context, id int64, upd ImageUpdate) (*models.Image, error) {
	var img models.Image
	if err := c.doJSON(ctx, http.MethodPatch, imagePath(id), upd, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// SetImageGroups replaces an image's group membership.
func (c *Client) SetImageGroups(ctx context.Context, id int64, groupIDs []int64) (*models.Image, error) {
	if groupIDs == nil {
		groupIDs = []int64{}
	}
	body := struct {
		Groups []int64 `json:"groups"`
	}{Groups: groupIDs}

	var img models.Image
	if err := c.doJSON(ctx, http.MethodPatch, imagePath(id), body, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// DeleteImage removes an image.
func (c *Client) DeleteImage(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, imagePath(id), "", nil, nil)
}

// ListGroups fetches all groups.
func (c *Client) ListGroups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	if err := c.do(ctx, http.MethodGet, "/groups/", "", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateGroup creates a group.
func (c *Client) CreateGroup(ctx context.Context, name, description string) (*models.Group, error) {
	body := models.Group{Name: name, Description: description}
	var g models.Group
	if err := c.doJSON(ctx, http.MethodPost, "/groups/", body, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateGroup renames or redescribes a group.
func (c *Client) UpdateGroup(ctx context.Context, id int64, name, description string) (*models.Group, error) {
	body := struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}{Name: name, Description: description}

	var g models.Group
	if err := c.doJSON(ctx, http.MethodPatch, groupPath(id), body, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGroup removes a group. The backend drops the association from every
// image; the images themselves survive.
func (c *Client) DeleteGroup(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, groupPath(id), "", nil, nil)
}
