package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Kenengmathias/Hunter/internal/models"
)

const joobleEndpoint = "https://jooble.org/api/"

// Jooble queries the Jooble REST API. The key is part of the URL
// path, not a header.
type Jooble struct {
	key     string
	client  *http.Client
	baseURL string
}

func NewJooble(key string, client *http.Client) *Jooble {
	return &Jooble{key: key, client: client, baseURL: joobleEndpoint}
}

func (j *Jooble) Name() string { return NameJooble }

type joobleRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
	Page     int    `json:"page"`
}

type joobleResponse struct {
	Jobs []joobleJob `json:"jobs"`
}

type joobleJob struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Salary   string `json:"salary"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
}

func (j *Jooble) Search(ctx context.Context, params models.SearchParams) ([]models.Job, error) {
	if j.key == "" {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(joobleRequest{
		Keywords: params.Keywords,
		Location: params.Location,
		Page:     1,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, j.baseURL+j.key, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}

	var decoded joobleResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	jobs := make([]models.Job, 0, len(decoded.Jobs))
	for _, item := range decoded.Jobs {
		if params.Limit > 0 && len(jobs) >= params.Limit {
			break
		}
		jobs = append(jobs, models.Job{
			Source:      NameJooble,
			Title:       orDefault(item.Title, "No title"),
			Company:     orDefault(item.Company, "Unknown"),
			Location:    orDefault(item.Location, "Remote"),
			Salary:      strings.TrimSpace(item.Salary),
			URL:         orDefault(item.Link, "#"),
			Description: stripTags(item.Snippet),
		})
	}
	return jobs, nil
}
