// File: internal/platform/elasticsearch/index.go
package elasticsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

const ProfilesIndexName = "profiles"

// defineProfilesMapping returns the JSON string for the profiles index mapping.
func defineProfilesMapping() (string, error) {
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"user_id":         map[string]interface{}{"type": "keyword"},
				"user_name":       map[string]interface{}{"type": "text", "fields": map[string]interface{}{"keyword": map[string]interface{}{"type": "keyword", "ignore_above": 256}}},
				"status":          map[string]interface{}{"type": "text"},
				"company":         map[string]interface{}{"type": "text"},
				"website":         map[string]interface{}{"type": "keyword"},
				"location":        map[string]interface{}{"type": "text"},
				"bio":             map[string]interface{}{"type": "text"},
				"github_username": map[string]interface{}{"type": "keyword"},
				"skills":          map[string]interface{}{"type": "text"},
				"created_at":      map[string]interface{}{"type": "date"},
				"updated_at":      map[string]interface{}{"type": "date"},
			},
		},
	}
	mappingBytes, err := json.Marshal(mapping)
	if err != nil {
		return "", fmt.Errorf("error marshalling profiles mapping to JSON: %w", err)
	}
	return string(mappingBytes), nil
}

// CreateProfilesIndexIfNotExists creates the profiles index with the defined
// mapping if it does not already exist.
func CreateProfilesIndexIfNotExists(client *ESClientWrapper, logger *zap.Logger) error {
	ctx := context.Background()
	log := logger.Named("elasticsearch_index_setup")

	req := esapi.IndicesExistsRequest{
		Index: []string{ProfilesIndexName},
	}
	res, err := req.Do(ctx, client.Client)
	if err != nil {
		log.Error("Error checking if profiles index exists", zap.Error(err))
		return fmt.Errorf("error checking if profiles index exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		log.Info("Profiles index already exists", zap.String("index_name", ProfilesIndexName))
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		log.Error("Unexpected status while checking profiles index",
			zap.String("status", res.Status()),
			zap.String("index_name", ProfilesIndexName),
		)
		return fmt.Errorf("error checking if profiles index exists: status %s", res.Status())
	}

	mappingJSON, err := defineProfilesMapping()
	if err != nil {
		log.Error("Failed to define profiles mapping", zap.Error(err))
		return err
	}

	createReq := esapi.IndicesCreateRequest{
		Index: ProfilesIndexName,
		Body:  strings.NewReader(mappingJSON),
	}
	createRes, err := createReq.Do(ctx, client.Client)
	if err != nil {
		log.Error("Error creating profiles index", zap.Error(err), zap.String("index_name", ProfilesIndexName))
		return fmt.Errorf("error creating profiles index %s: %w", ProfilesIndexName, err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		var errorBody map[string]interface{}
		if err := json.NewDecoder(createRes.Body).Decode(&errorBody); err != nil {
			log.Error("Failed to parse profiles index creation error response body", zap.Error(err), zap.String("status", createRes.Status()))
		} else {
			log.Error("Failed to create profiles index",
				zap.String("status", createRes.Status()),
				zap.Any("error_details", errorBody),
				zap.String("index_name", ProfilesIndexName),
			)
		}
		return fmt.Errorf("failed to create profiles index %s: status %s", ProfilesIndexName, createRes.Status())
	}

	log.Info("Profiles index created", zap.String("index_name", ProfilesIndexName))
	return nil
}
