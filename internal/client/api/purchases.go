package api

import (
	"context"
	"fmt"

	pkgapi "github.com/ndolgushev/bookstore/pkg/api"
)

// GetPurchases возвращает покупки: свои для обычного пользователя,
// все — для админа (фильтрацию делает сервер)
func (c *Client) GetPurchases(ctx context.Context) (*pkgapi.PurchaseList, error) {
	var resp pkgapi.PurchaseList
	if err := c.Get(ctx, "/purchases/", &resp); err != nil {
		return nil, fmt.Errorf("get purchases request failed: %w", err)
	}
	return &resp, nil
}

// GetPurchase возвращает одну покупку по id
func (c *Client) GetPurchase(ctx context.Context, id int64) (*pkgapi.Purchase, error) {
	var resp pkgapi.Purchase
	if err := c.Get(ctx, fmt.Sprintf("/purchases/%d/", id), &resp); err != nil {
		return nil, fmt.Errorf("get purchase request failed: %w", err)
	}
	return &resp, nil
}

// CreatePurchase создает запись о покупке со статусом pending.
// Сумму фиксирует сервер по текущей цене книги.
func (c *Client) CreatePurchase(ctx context.Context, req pkgapi.PurchaseCreateRequest) (*pkgapi.Purchase, error) {
	var resp pkgapi.Purchase
	if err := c.Post(ctx, "/purchases/", req, &resp); err != nil {
		return nil, fmt.Errorf("create purchase request failed: %w", err)
	}
	return &resp, nil
}

// ApprovePurchase переводит покупку в approved (админская операция)
func (c *Client) ApprovePurchase(ctx context.Context, id int64) (*pkgapi.Purchase, error) {
	var resp pkgapi.Purchase
	if err := c.Post(ctx, fmt.Sprintf("/purchases/%d/approve/", id), struct{}{}, &resp); err != nil {
		return nil, fmt.Errorf("approve purchase request failed: %w", err)
	}
	return &resp, nil
}

// RejectPurchase переводит покупку в rejected (админская операция)
func (c *Client) RejectPurchase(ctx context.Context, id int64) (*pkgapi.Purchase, error) {
	var resp pkgapi.Purchase
	if err := c.Post(ctx, fmt.Sprintf("/purchases/%d/reject/", id), struct{}{}, &resp); err != nil {
		return nil, fmt.Errorf("reject purchase request failed: %w", err)
	}
	return &resp, nil
}

// GetPaymentMethods возвращает активные способы оплаты.
// Показывается пользователю перед вводом transaction id.
func (c *Client) GetPaymentMethods(ctx context.Context) ([]pkgapi.PaymentMethod, error) {
	var resp []pkgapi.PaymentMethod
	if err := c.Get(ctx, "/purchases/payment-methods/", &resp); err != nil {
		return nil, fmt.Errorf("get payment methods request failed: %w", err)
	}
	return resp, nil
}

// GetStatistics возвращает сводку по покупкам (админская операция)
func (c *Client) GetStatistics(ctx context.Context) (*pkgapi.PurchaseStatistics, error) {
	var resp pkgapi.PurchaseStatistics
	if err := c.Get(ctx, "/purchases/statistics/", &resp); err != nil {
		return nil, fmt.Errorf("get statistics request failed: %w", err)
	}
	return &resp, nil
}
