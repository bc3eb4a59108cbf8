package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/atlab/booking-service/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент почтового релея кампуса
// Отправляет студенту письмо-подтверждение записи
type Client struct {
	baseURL    string
	from       string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента релея
func NewClient(baseURL, from string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		from:    from,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// sendRequest тело запроса к релею
type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendConfirmation отправляет письмо-подтверждение записи
func (c *Client) SendConfirmation(ctx context.Context, email, name, slotLabel string, location domain.Location) error {
	payload := sendRequest{
		From:    c.from,
		To:      email,
		Subject: fmt.Sprintf("Practical exam appointment: %s", slotLabel),
		Body: fmt.Sprintf("Hi %s,\n\nYour practical exam appointment is confirmed for %s at the %s.\n\nIf you need to change it, book a new time before the day of your appointment.",
			name, slotLabel, location),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	url := c.baseURL + "/api/v1/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	c.log.Info("Confirmation sent: to=%s, slot=%s", email, slotLabel)
	return nil
}

// LogSender заглушка отправки подтверждений: только логирует
// Используется, когда почтовый релей выключен в конфигурации
type LogSender struct {
	log Logger
}

// NewLogSender создает заглушку отправки подтверждений
func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

// SendConfirmation логирует подтверждение вместо отправки письма
func (s *LogSender) SendConfirmation(_ context.Context, email, _, slotLabel string, location domain.Location) error {
	s.log.Info("Confirmation (mailer disabled): to=%s, slot=%s, location=%s", email, slotLabel, location)
	return nil
}
