package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Skotchmaster/cyberacademy/internal/models"
	"github.com/elastic/go-elasticsearch/v9"
)

const DefaultLimit = 50

type Index interface {
	IndexCourse(ctx context.Context, course models.Course) error
	RemoveCourse(ctx context.Context, id uint) error
	// Search returns matching course ids ranked by relevance.
	Search(ctx context.Context, query string, limit int) ([]uint, error)
}

type courseDoc struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Tags        []string `json:"tags"`
	IsActive    bool     `json:"isActive"`
}

type ESIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewClient(ctx context.Context, url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: new client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch: info: %s: %s", res.Status(), body)
	}
	return client, nil
}

func (x *ESIndex) IndexCourse(ctx context.Context, course models.Course) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(courseDoc{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Difficulty:  course.Difficulty,
		Tags:        course.Tags,
		IsActive:    course.IsActive,
	}); err != nil {
		return err
	}

	res, err := x.ES.Index(
		x.Index,
		&buf,
		x.ES.Index.WithContext(ctx),
		x.ES.Index.WithDocumentID(strconv.FormatUint(uint64(course.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: index course %d: %w", course.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch: index course %d: %s", course.ID, res.Status())
	}
	return nil
}

func (x *ESIndex) RemoveCourse(ctx context.Context, id uint) error {
	res, err := x.ES.Delete(
		x.Index,
		strconv.FormatUint(uint64(id), 10),
		x.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: delete course %d: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("elasticsearch: delete course %d: %s", id, res.Status())
	}
	return nil
}

func (x *ESIndex) Search(ctx context.Context, query string, limit int) ([]uint, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"title^2", "description", "tags"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"isActive": true},
				},
			},
		},
		"_source": []string{"id"},
		"size":    limit,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := x.ES.Search(
		x.ES.Search.WithContext(ctx),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch: search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source courseDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, nil
}
