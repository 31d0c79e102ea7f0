package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Employee is the slice of the directory record authorization needs.
type Employee struct {
	ID           uuid.UUID `json:"id"`
	Role         string    `json:"role"`
	DepartmentID uuid.UUID `json:"department_id"`
}

// Directory resolves employees and department headship from the identity
// service. Departments may designate several heads.
type Directory interface {
	GetEmployee(ctx context.Context, id uuid.UUID) (Employee, error)
	DepartmentHeads(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error)
}

var ErrNotFound = errors.New("directory: not found")

type DirectoryClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewDirectoryClient(baseURL, token string, timeout time.Duration) *DirectoryClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &DirectoryClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *DirectoryClient) GetEmployee(ctx context.Context, id uuid.UUID) (Employee, error) {
	var employee Employee
	err := c.get(ctx, "/employees/"+url.PathEscape(id.String()), &employee)
	return employee, err
}

func (c *DirectoryClient) DepartmentHeads(ctx context.Context, departmentID uuid.UUID) ([]uuid.UUID, error) {
	var payload struct {
		Heads []uuid.UUID `json:"heads"`
	}
	err := c.get(ctx, "/departments/"+url.PathEscape(departmentID.String())+"/heads", &payload)
	if err != nil {
		return nil, err
	}
	return payload.Heads, nil
}

func (c *DirectoryClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("directory: unexpected status %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
