package api

import (
	"TaskBuckets/internal/model"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListTasks возвращает задачи; bucketID != nil добавляет ?bucketId=.
func (c *Client) ListTasks(ctx context.Context, bucketID *int64) ([]model.Task, error) {
	path := "/api/tasks"
	if bucketID != nil {
		path += "?" + url.Values{"bucketId": {strconv.FormatInt(*bucketID, 10)}}.Encode()
	}
	var out []model.Task
	if _, err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	var out model.Task
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTask(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	var out model.Task
	if _, err := c.do(ctx, http.MethodPost, "/api/tasks", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, error) {
	var out model.Task
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleTask — PATCH {"action":"toggle"}.
func (c *Client) ToggleTask(ctx context.Context, id int64) (*model.Task, error) {
	var out model.Task
	body := map[string]string{"action": "toggle"}
	if _, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/tasks/%d", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, nil)
	return err
}
