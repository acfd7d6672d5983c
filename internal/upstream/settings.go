package upstream

import (
	"context"
	"encoding/json"
	"net/http"

	"course_admin_gateway/internal/model"
)

func (c *Client) GetAllSettings(ctx context.Context) ([]model.Setting, error) {
	var out []model.Setting
	err := c.getList(ctx, "get_all_settings", "/settings", nil, &out)
	return out, err
}

func (c *Client) GetContactSettings(ctx context.Context) (model.ContactSettings, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/settings/contact", nil, nil, "")
	if err != nil {
		return model.ContactSettings{}, err
	}
	env, err := c.do(req, "get_contact_settings")
	if err != nil {
		return model.ContactSettings{}, err
	}

	var out model.ContactSettings
	obj, err := extractObject(env.Data)
	if err != nil || obj == nil {
		return out, err
	}
	err = json.Unmarshal(obj, &out)
	return out, err
}

func (c *Client) UpdateSetting(ctx context.Context, key, value string) error {
	return c.mutate(ctx, "update_setting", http.MethodPut, "/settings/"+key,
		map[string]string{"value": value}, nil)
}

func (c *Client) AddSetting(ctx context.Context, key, value string) (model.Setting, error) {
	var out model.Setting
	err := c.mutate(ctx, "add_setting", http.MethodPost, "/settings",
		map[string]string{"key": key, "value": value}, &out)
	return out, err
}

func (c *Client) UpdateAllSettings(ctx context.Context, values map[string]string) error {
	return c.mutate(ctx, "update_all_settings", http.MethodPut, "/settings",
		map[string]interface{}{"settings": values}, nil)
}
