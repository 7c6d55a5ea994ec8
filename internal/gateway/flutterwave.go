package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.flutterwave.com/v3"

// Client talks to the Flutterwave REST API. The verify call is not retried;
// retrying is left to callers, which is safe because payment confirmation is
// idempotent on our side.
type Client struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

func NewClient(secretKey string) *Client {
	return &Client{
		BaseURL:   defaultBaseURL,
		SecretKey: secretKey,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type Customer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phonenumber,omitempty"`
}

type Customizations struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

type InitializePaymentRequest struct {
	TxRef          string         `json:"tx_ref"`
	Amount         int64          `json:"amount"`
	Currency       string         `json:"currency"`
	RedirectURL    string         `json:"redirect_url"`
	Customer       Customer       `json:"customer"`
	Customizations Customizations `json:"customizations,omitempty"`
}

type initializePaymentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Link string `json:"link"`
	} `json:"data"`
}

// InitializePayment creates a hosted payment page for the given reference
// and returns its link.
func (c *Client) InitializePayment(req InitializePaymentRequest) (string, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequest("POST", c.BaseURL+"/payments", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.SecretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("payment initialization failed with status %d", resp.StatusCode)
	}

	var parsed initializePaymentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if parsed.Status != "success" || parsed.Data.Link == "" {
		return "", fmt.Errorf("payment initialization rejected: %s", parsed.Message)
	}

	return parsed.Data.Link, nil
}

type TransactionData struct {
	ID       int64   `json:"id"`
	TxRef    string  `json:"tx_ref"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
}

type VerifyTransactionResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    TransactionData `json:"data"`
}

// Succeeded reports whether the gateway considers the transaction settled.
func (r *VerifyTransactionResponse) Succeeded() bool {
	return r.Status == "success" && r.Data.Status == "successful"
}

// VerifyTransaction fetches the gateway's authoritative record of a
// transaction. Used by the redirect callback path, which must never trust
// the client-supplied status.
func (c *Client) VerifyTransaction(transactionID string) (*VerifyTransactionResponse, error) {
	url := fmt.Sprintf("%s/transactions/%s/verify", c.BaseURL, transactionID)
	httpReq, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transaction verification failed with status %d", resp.StatusCode)
	}

	var parsed VerifyTransactionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	return &parsed, nil
}
