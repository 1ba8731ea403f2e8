package gcalendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avelsk/NSD-SchedulingService/pkg/metrics"
)

// Client клиент внешнего календарного сервиса
// Все вызовы ограничены таймаутом httpClient; любая ошибка клиента
// трактуется вызывающей стороной как деградация, а не как отказ операции
type Client struct {
	baseURL    string
	calendarID string
	apiToken   string
	httpClient *http.Client
	log        Logger
	metrics    *metrics.Metrics
}

// NewClient создает новый экземпляр клиента календарного сервиса
func NewClient(baseURL, calendarID, apiToken string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		calendarID: calendarID,
		apiToken:   apiToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// WithMetrics включает учет попыток синхронизации в prometheus
func (c *Client) WithMetrics(m *metrics.Metrics) *Client {
	c.metrics = m
	return c
}

// observe записывает исход попытки синхронизации
func (c *Client) observe(operation string, err error) {
	if c.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.metrics.CalendarSyncTotal.WithLabelValues(operation, status).Inc()
}

// CreateEvent создает событие в календаре и возвращает его ID
func (c *Client) CreateEvent(ctx context.Context, event *Event) (eventID string, err error) {
	defer func() { c.observe("create", err) }()

	endpoint := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(c.calendarID))

	body, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		c.log.Warn("gcalendar: create event returned status %d: %s", resp.StatusCode, string(respBody))
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var created createEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("%w: empty event id", ErrInvalidResponse)
	}

	return created.ID, nil
}

// UpdateEvent обновляет событие календаря
func (c *Client) UpdateEvent(ctx context.Context, eventID string, event *Event) (err error) {
	defer func() { c.observe("update", err) }()

	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.baseURL, url.PathEscape(c.calendarID), url.PathEscape(eventID))

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound, http.StatusGone:
		return ErrEventNotFound
	default:
		respBody, _ := io.ReadAll(resp.Body)
		c.log.Warn("gcalendar: update event %s returned status %d: %s", eventID, resp.StatusCode, string(respBody))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// DeleteEvent удаляет событие календаря
// Отсутствующее событие (404/410) считается уже удаленным
func (c *Client) DeleteEvent(ctx context.Context, eventID string) (err error) {
	defer func() { c.observe("delete", err) }()

	endpoint := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.baseURL, url.PathEscape(c.calendarID), url.PathEscape(eventID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound, http.StatusGone:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		c.log.Warn("gcalendar: delete event %s returned status %d: %s", eventID, resp.StatusCode, string(respBody))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
}

// NoopClient заглушка клиента для выключенной синхронизации
// Все вызовы возвращают ErrDisabled, который трактуется как деградация
type NoopClient struct{}

// CreateEvent возвращает ErrDisabled
func (NoopClient) CreateEvent(ctx context.Context, event *Event) (string, error) {
	return "", ErrDisabled
}

// UpdateEvent возвращает ErrDisabled
func (NoopClient) UpdateEvent(ctx context.Context, eventID string, event *Event) error {
	return ErrDisabled
}

// DeleteEvent возвращает ErrDisabled
func (NoopClient) DeleteEvent(ctx context.Context, eventID string) error {
	return ErrDisabled
}
