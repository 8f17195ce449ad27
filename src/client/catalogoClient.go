package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/analisys/biblioteca-circulacion/src/models"
)

const DefaultCatalogoURL = "http://localhost:8082"

// CatalogoClient talks to the catalog service that owns book availability.
// Calls are single attempts bounded by the client timeout.
type CatalogoClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCatalogoClient(baseURL string, timeout time.Duration) *CatalogoClient {
	if baseURL == "" {
		baseURL = DefaultCatalogoURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CatalogoClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *CatalogoClient) BaseURL() string {
	return c.baseURL
}

// IsLibroDisponible issues GET /libros/{libroId}/disponible.
func (c *CatalogoClient) IsLibroDisponible(ctx context.Context, libroId models.LibroId) (bool, error) {
	path := "/libros/" + url.PathEscape(libroId.String()) + "/disponible"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var disponible *bool
	if err := c.do(req, &disponible); err != nil {
		return false, err
	}
	if disponible == nil {
		return false, fmt.Errorf("catalogo returned no availability for libro %s", libroId)
	}
	return *disponible, nil
}

// ActualizarDisponibilidad issues PUT /libros/{libroId}/disponibilidad with a JSON boolean body.
func (c *CatalogoClient) ActualizarDisponibilidad(ctx context.Context, libroId models.LibroId, disponible bool) error {
	body, err := json.Marshal(disponible)
	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}

	path := "/libros/" + url.PathEscape(libroId.String()) + "/disponibilidad"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

func (c *CatalogoClient) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalogo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("catalogo error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("catalogo error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
