package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/composersite/catalog/internal/model"
)

// SanityConfig locates a dataset of the hosted CMS.
type SanityConfig struct {
	ProjectID  string
	Dataset    string
	Token      string
	APIVersion string
	// BaseURL overrides https://<project>.api.sanity.io.
	BaseURL string
}

func (c SanityConfig) url(group, kind string) string {
	base := c.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.api.sanity.io", c.ProjectID)
	}
	return fmt.Sprintf("%s/v%s/%s/%s/%s", base, c.APIVersion, group, kind, c.Dataset)
}

func (c SanityConfig) endpoint(kind string) string {
	return c.url("data", kind)
}

// assetEndpoint is the upload URL for kind "images" or "files".
func (c SanityConfig) assetEndpoint(kind string) string {
	return c.url("assets", kind)
}

var _ Store = (*SanityStore)(nil)

// SanityStore reads with GROQ queries and writes with the mutate API.
type SanityStore struct {
	config SanityConfig
	client *http.Client
}

func NewSanityStore(config SanityConfig) *SanityStore {
	return &SanityStore{
		config: config,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

type mutation map[string]any

func (s *SanityStore) query(ctx context.Context, groq string, params map[string]string, out any) error {
	values := url.Values{}
	values.Set("query", groq)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		values.Set("$"+name, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.endpoint("query")+"?"+values.Encode(), nil)
	if err != nil {
		return err
	}

	var res queryResponse
	if err := s.do(req, &res); err != nil {
		return err
	}
	if len(res.Result) == 0 || string(res.Result) == "null" {
		return ErrDocumentNotFound
	}

	return json.Unmarshal(res.Result, out)
}

func (s *SanityStore) mutate(ctx context.Context, mutations []mutation) error {
	for start := 0; start < len(mutations); start += batchSize {
		end := min(start+batchSize, len(mutations))

		body, err := json.Marshal(map[string]any{"mutations": mutations[start:end]})
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.endpoint("mutate")+"?returnIds=true", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		if err := s.do(req, nil); err != nil {
			return err
		}
		logrus.Debugf("applied %d mutations", end-start)
	}

	return nil
}

func (s *SanityStore) do(req *http.Request, out any) error {
	if s.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.Token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: %s: %s", ErrRequestFailed, resp.Status, bytes.TrimSpace(data))
	}
	if out == nil {
		return nil
	}

	return json.Unmarshal(data, out)
}

func (s *SanityStore) decodeOne(ctx context.Context, groq string, params map[string]string) (model.Document, error) {
	var raw json.RawMessage
	if err := s.query(ctx, groq, params, &raw); err != nil {
		return nil, err
	}
	return model.Decode(raw)
}

func (s *SanityStore) GetDocument(ctx context.Context, id string) (model.Document, error) {
	return s.decodeOne(ctx, `*[_id == $id][0]`, map[string]string{"id": id})
}

func (s *SanityStore) FindBySlug(ctx context.Context, docType, slug string) (model.Document, error) {
	return s.decodeOne(ctx, `*[_type == $type && slug.current == $slug][0]`, map[string]string{"type": docType, "slug": slug})
}

func (s *SanityStore) ListDocuments(ctx context.Context, docType string) ([]model.Document, error) {
	var raws []json.RawMessage
	err := s.query(ctx, `*[_type == $type && !(_id in path("drafts.**"))] | order(_id asc)`, map[string]string{"type": docType}, &raws)
	if err != nil {
		return nil, err
	}

	docs := make([]model.Document, 0, len(raws))
	for _, raw := range raws {
		doc, err := model.Decode(raw)
		if err != nil {
			logrus.Errorf("skipping undecodable %s document: %v", docType, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *SanityStore) ListIDs(ctx context.Context, docType string) ([]string, error) {
	var ids []string
	err := s.query(ctx, `*[_type == $type]._id`, map[string]string{"type": docType}, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// PutDocuments uploads the asset files the documents point at, then creates
// or replaces the documents with references to the uploaded assets.
func (s *SanityStore) PutDocuments(ctx context.Context, docs []model.Document) error {
	uploaded := map[string]string{}
	mutations := make([]mutation, 0, len(docs))
	for _, doc := range docs {
		resolved, err := s.resolveAssets(ctx, doc, uploaded)
		if err != nil {
			return err
		}
		mutations = append(mutations, mutation{"createOrReplace": resolved})
	}
	if len(uploaded) > 0 {
		logrus.Infof("uploaded %d assets", len(uploaded))
	}
	return s.mutate(ctx, mutations)
}

func (s *SanityStore) SetReferences(ctx context.Context, id, field string, refs []model.Reference) error {
	return s.mutate(ctx, []mutation{{
		"patch": map[string]any{
			"id":  id,
			"set": map[string]any{field: refs},
		},
	}})
}

func (s *SanityStore) DeleteDocuments(ctx context.Context, ids []string) error {
	mutations := make([]mutation, 0, len(ids))
	for _, id := range ids {
		mutations = append(mutations, mutation{"delete": map[string]string{"id": id}})
	}
	return s.mutate(ctx, mutations)
}

type passwordFields struct {
	PasswordOverride     string `json:"passwordOverride"`
	DefaultAssetPassword string `json:"defaultAssetPassword"`
}

func (s *SanityStore) GetWorkPasswordOverride(ctx context.Context, workID string) (string, error) {
	var fields passwordFields
	err := s.query(ctx, `*[_type == "work" && _id == $workId][0]{passwordOverride}`, map[string]string{"workId": workID}, &fields)
	if errors.Is(err, ErrDocumentNotFound) {
		return "", nil
	}
	return fields.PasswordOverride, err
}

func (s *SanityStore) GetDefaultAssetPassword(ctx context.Context) (string, error) {
	var fields passwordFields
	err := s.query(ctx, `*[_type == "siteSettings"][0]{defaultAssetPassword}`, nil, &fields)
	if errors.Is(err, ErrDocumentNotFound) {
		return "", nil
	}
	return fields.DefaultAssetPassword, err
}

// Migrate is a no-op: the hosted dataset has no schema to apply.
func (s *SanityStore) Migrate() error {
	return nil
}
