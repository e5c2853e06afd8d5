package api

import (
	"encoding/json"
	"time"
)

// PurchaseStatus представляет статус записи о покупке.
// Переходы только pending -> approved и pending -> rejected,
// терминальные статусы не меняются.
type PurchaseStatus string

const (
	PurchasePending  PurchaseStatus = "pending"
	PurchaseApproved PurchaseStatus = "approved"
	PurchaseRejected PurchaseStatus = "rejected"
)

// Terminal сообщает, является ли статус конечным
func (s PurchaseStatus) Terminal() bool {
	return s == PurchaseApproved || s == PurchaseRejected
}

// Purchase представляет запись о покупке книги.
// Amount фиксируется сервером в момент создания (цена книги) и не меняется.
type Purchase struct {
	ID            int64          `json:"id"`
	User          int64          `json:"user"`
	Book          int64          `json:"book"`
	BookDetails   *Book          `json:"book_details,omitempty"`
	Amount        string         `json:"amount"` // decimal
	TransactionID string         `json:"transaction_id"`
	Status        PurchaseStatus `json:"status"`
	UserName      string         `json:"user_name"`
	UserEmail     string         `json:"user_email"`
	UserPhone     string         `json:"user_phone"`
	CreatedAt     time.Time      `json:"created_at"`
	ApprovedAt    *time.Time     `json:"approved_at,omitempty"`
	ApprovedBy    *int64         `json:"approved_by,omitempty"`
}

// PurchaseCreateRequest представляет запрос на создание покупки.
// transaction_id — непрозрачная строка, введенная пользователем вручную
// после перевода по одному из payment methods.
type PurchaseCreateRequest struct {
	Book          int64  `json:"book"`
	TransactionID string `json:"transaction_id"`
	UserName      string `json:"user_name"`
	UserEmail     string `json:"user_email"`
	UserPhone     string `json:"user_phone"`
}

// PurchaseList принимает и массив, и постраничный объект (как BookList)
type PurchaseList struct {
	Count   int        `json:"count"`
	Results []Purchase `json:"results"`
}

func (l *PurchaseList) UnmarshalJSON(data []byte) error {
	var plain []Purchase
	if err := json.Unmarshal(data, &plain); err == nil {
		l.Results = plain
		l.Count = len(plain)
		return nil
	}

	type page PurchaseList
	var p page
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	l.Count = p.Count
	l.Results = p.Results
	return nil
}

// PaymentMethod представляет способ оплаты, показываемый перед покупкой
type PaymentMethod struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	QRCode         string            `json:"qr_code,omitempty"` // URL изображения QR-кода
	AccountDetails map[string]string `json:"account_details,omitempty"`
	IsActive       bool              `json:"is_active"`
}

// PurchaseStatistics представляет сводку по покупкам для админ-панели
type PurchaseStatistics struct {
	TotalPurchases    int     `json:"total_purchases"`
	ApprovedPurchases int     `json:"approved_purchases"`
	PendingPurchases  int     `json:"pending_purchases"`
	RejectedPurchases int     `json:"rejected_purchases"`
	TotalRevenue      float64 `json:"total_revenue"`
}
