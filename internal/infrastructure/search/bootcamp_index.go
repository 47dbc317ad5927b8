// Package search keeps an Elasticsearch index of bootcamps for free-text
// lookup. A nil *BootcampIndex is a disabled index.
package search

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/domain/apperror"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
)

// NewESClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses:  addrs,
		Username:   username,
		Password:   password,
		MaxRetries: 2,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

type BootcampIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewBootcampIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *BootcampIndex {
	if es == nil || index == "" {
		return nil
	}
	return &BootcampIndex{ES: es, Index: index, Logger: logger}
}

// Hit is one search result.
type Hit struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Careers     []string `json:"careers"`
	City        string   `json:"city,omitempty"`
	AverageCost float64  `json:"averageCost"`
	Score       float64  `json:"score"`
}

func toDoc(b *entity.Bootcamp) map[string]any {
	doc := map[string]any{
		"id":          b.ID,
		"name":        b.Name,
		"slug":        b.Slug,
		"description": b.Description,
		"careers":     b.Careers,
		"averageCost": b.AverageCost,
		"created_at":  b.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  b.UpdatedAt.Format(time.RFC3339Nano),
	}
	if b.Location != nil {
		doc["city"] = b.Location.City
	}
	return doc
}

// Put indexes or replaces the document for b.
func (s *BootcampIndex) Put(ctx context.Context, b *entity.Bootcamp) error {
	if s == nil {
		return nil
	}
	body, err := json.Marshal(toDoc(b))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: s.Index, DocumentID: b.ID, Body: strings.NewReader(string(body)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Delete removes the document for id; a missing document is fine.
func (s *BootcampIndex) Delete(ctx context.Context, id string) error {
	if s == nil {
		return nil
	}
	req := esapi.DeleteRequest{Index: s.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search performs a multi_match over name, description and careers.
func (s *BootcampIndex) Search(ctx context.Context, q string, size int) ([]Hit, error) {
	if s == nil {
		return []Hit{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	body, _ := json.Marshal(map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^3", "careers^2", "description"},
			},
		},
		"size": size,
	})

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.Index), s.ES.Search.WithBody(strings.NewReader(string(body))))
	if err != nil {
		return nil, apperror.Upstream("search unavailable", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, apperror.Upstream("search failed", fmt.Errorf("%s", res.Status()))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string  `json:"_id"`
				Score  float64 `json:"_score"`
				Source Hit     `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperror.Upstream("search response", err)
	}
	out := make([]Hit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hit := h.Source
		hit.ID = h.ID
		hit.Score = h.Score
		out = append(out, hit)
	}
	return out, nil
}
