package gateway

import (
	"context"

	"github.com/vnbcommerce/storefront-sync/internal/cart"
)

var _ cart.Gateway = (*Client)(nil)

func (c *Client) CurrentCart(ctx context.Context) (*cart.Snapshot, error) {
	var snap cart.Snapshot
	if err := c.get(ctx, "/orders/cart/current/", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) AddItem(ctx context.Context, req cart.AddItemRequest) (*cart.Snapshot, error) {
	body := struct {
		ProductID int64  `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}{req.ProductID, req.Quantity, req.Size, req.Color}

	var snap cart.Snapshot
	if err := c.post(ctx, "/orders/cart/add_item/", body, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) UpdateItem(ctx context.Context, itemID int64, quantity int) (*cart.Snapshot, error) {
	body := struct {
		ItemID   int64 `json:"item_id"`
		Quantity int   `json:"quantity"`
	}{itemID, quantity}

	var snap cart.Snapshot
	if err := c.post(ctx, "/orders/cart/update_item/", body, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) RemoveItem(ctx context.Context, itemID int64) (*cart.Snapshot, error) {
	body := struct {
		ItemID int64 `json:"item_id"`
	}{itemID}

	var snap cart.Snapshot
	if err := c.post(ctx, "/orders/cart/remove_item/", body, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *Client) ClearCart(ctx context.Context) (*cart.Snapshot, error) {
	var snap cart.Snapshot
	if err := c.post(ctx, "/orders/cart/clear/", struct{}{}, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
