package api

import (
	"TaskBuckets/internal/model"
	"context"
	"fmt"
	"net/http"
)

func (c *Client) ListBuckets(ctx context.Context) ([]model.Bucket, error) {
	var out []model.Bucket
	if _, err := c.do(ctx, http.MethodGet, "/api/buckets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBucket(ctx context.Context, id int64) (*model.Bucket, error) {
	var out model.Bucket
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/buckets/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBucket(ctx context.Context, in model.BucketInput) (*model.Bucket, error) {
	var out model.Bucket
	if _, err := c.do(ctx, http.MethodPost, "/api/buckets", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBucket(ctx context.Context, id int64, patch model.BucketPatch) (*model.Bucket, error) {
	var out model.Bucket
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/buckets/%d", id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBucket(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/buckets/%d", id), nil, nil)
	return err
}
