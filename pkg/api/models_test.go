package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBookList_UnmarshalJSON: сервер отдает списки в двух форматах —
// голый массив и постраничный объект, клиент принимает оба
func TestBookList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantTitle string
	}{
		{
			name:      "plain array",
			input:     `[{"id": 1, "title": "Dune"}, {"id": 2, "title": "Neuromancer"}]`,
			wantCount: 2,
			wantTitle: "Dune",
		},
		{
			name:      "paginated object",
			input:     `{"count": 42, "results": [{"id": 1, "title": "Dune"}]}`,
			wantCount: 42,
			wantTitle: "Dune",
		},
		{
			name:      "empty array",
			input:     `[]`,
			wantCount: 0,
		},
		{
			name:      "empty page",
			input:     `{"count": 0, "results": []}`,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list BookList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &list))

			assert.Equal(t, tt.wantCount, list.Count)
			if tt.wantTitle != "" {
				require.NotEmpty(t, list.Results)
				assert.Equal(t, tt.wantTitle, list.Results[0].Title)
			}
		})
	}
}

func TestBookList_UnmarshalJSON_Invalid(t *testing.T) {
	var list BookList
	err := json.Unmarshal([]byte(`"not a list"`), &list)
	require.Error(t, err)
}

func TestPurchaseList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantCount  int
		wantStatus PurchaseStatus
	}{
		{
			name:       "plain array",
			input:      `[{"id": 1, "status": "pending"}]`,
			wantCount:  1,
			wantStatus: PurchasePending,
		},
		{
			name:       "paginated object",
			input:      `{"count": 7, "results": [{"id": 1, "status": "approved"}]}`,
			wantCount:  7,
			wantStatus: PurchaseApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list PurchaseList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &list))

			assert.Equal(t, tt.wantCount, list.Count)
			require.Len(t, list.Results, 1)
			assert.Equal(t, tt.wantStatus, list.Results[0].Status)
		})
	}
}

func TestPurchaseStatus_Terminal(t *testing.T) {
	assert.False(t, PurchasePending.Terminal())
	assert.True(t, PurchaseApproved.Terminal())
	assert.True(t, PurchaseRejected.Terminal())
	assert.False(t, PurchaseStatus("unknown").Terminal())
}

func TestErrorResponse_Text(t *testing.T) {
	tests := []struct {
		name string
		resp ErrorResponse
		want string
	}{
		{name: "error field", resp: ErrorResponse{Error: "Book not found"}, want: "Book not found"},
		{name: "detail field", resp: ErrorResponse{Detail: "token expired"}, want: "token expired"},
		{name: "message field", resp: ErrorResponse{Message: "try later"}, want: "try later"},
		{
			name: "error wins over detail",
			resp: ErrorResponse{Error: "primary", Detail: "secondary"},
			want: "primary",
		},
		{name: "all empty", resp: ErrorResponse{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.resp.Text())
		})
	}
}

// TestPurchase_DecimalAmount: денежные поля остаются строками как есть
func TestPurchase_DecimalAmount(t *testing.T) {
	var p Purchase
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "amount": "499.00", "status": "pending"}`), &p))
	assert.Equal(t, "499.00", p.Amount)
}
