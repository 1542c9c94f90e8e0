package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/composersite/catalog/internal/model"
)

// assetLocatorKey holds an export's "<kind>@<url>" pointer to an asset file
// that has not been uploaded yet.
const assetLocatorKey = "_sanityAsset"

type assetUploadResponse struct {
	Document struct {
		ID string `json:"_id"`
	} `json:"document"`
}

// resolveAssets uploads every asset locator found in doc, in field name
// order, and replaces it with a reference to the uploaded asset. uploaded maps locators to asset ids and
// is shared across a batch so each file is sent once.
func (s *SanityStore) resolveAssets(ctx context.Context, doc model.Document, uploaded map[string]string) (json.RawMessage, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if !bytes.Contains(data, []byte(assetLocatorKey)) {
		return data, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}

	if err := s.replaceLocators(ctx, value, uploaded); err != nil {
		return nil, fmt.Errorf("%s: %w", doc.DocumentID(), err)
	}

	return json.Marshal(value)
}

func (s *SanityStore) replaceLocators(ctx context.Context, value any, uploaded map[string]string) error {
	switch v := value.(type) {
	case map[string]any:
		if locator, ok := v[assetLocatorKey].(string); ok {
			id, err := s.uploadAsset(ctx, locator, uploaded)
			if err != nil {
				return err
			}
			delete(v, assetLocatorKey)
			v["asset"] = model.NewReference(id)
			return nil
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := s.replaceLocators(ctx, v[key], uploaded); err != nil {
				return err
			}
		}
	case []any:
		for _, child := range v {
			if err := s.replaceLocators(ctx, child, uploaded); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *SanityStore) uploadAsset(ctx context.Context, locator string, uploaded map[string]string) (string, error) {
	if id, ok := uploaded[locator]; ok {
		return id, nil
	}

	kind, source, ok := strings.Cut(locator, "@")
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidAssetLocator, locator)
	}
	var endpoint string
	switch kind {
	case model.TypeImage:
		endpoint = s.config.assetEndpoint("images")
	case model.TypeFile:
		endpoint = s.config.assetEndpoint("files")
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidAssetLocator, locator)
	}

	data, err := s.readAsset(ctx, source)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrAssetUnavailable, source, err)
	}

	name := path.Base(source)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?filename="+url.QueryEscape(name), bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	req.Header.Set("Content-Type", contentType)

	var res assetUploadResponse
	if err := s.do(req, &res); err != nil {
		return "", err
	}
	if res.Document.ID == "" {
		return "", fmt.Errorf("%w: upload of %s returned no asset id", ErrRequestFailed, name)
	}

	logrus.Debugf("uploaded %s as %s", name, res.Document.ID)
	uploaded[locator] = res.Document.ID
	return res.Document.ID, nil
}

// readAsset loads a file:// path from disk or fetches an http(s) URL.
func (s *SanityStore) readAsset(ctx context.Context, source string) ([]byte, error) {
	if file, ok := strings.CutPrefix(source, "file://"); ok {
		return os.ReadFile(file)
	}
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return nil, errors.New("unsupported scheme")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching asset: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
