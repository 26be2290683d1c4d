package vision

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/decorlens/backend/internal/domain"
)

type selectionPayload struct {
	SelectedProducts []domain.ExternalPick `json:"selectedProducts"`
}

type detectionPayload struct {
	Items []domain.DetectedItem `json:"items"`
}

func parseSelection(content string) ([]domain.ExternalPick, error) {
	var payload selectionPayload
	if err := decodeJSONObject(content, &payload); err != nil {
		return nil, err
	}

	picks := make([]domain.ExternalPick, 0, len(payload.SelectedProducts))
	for _, p := range payload.SelectedProducts {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			continue
		}
		p.Reason = strings.TrimSpace(p.Reason)
		picks = append(picks, p)
	}
	return picks, nil
}

func parseDetection(content string) ([]domain.DetectedItem, error) {
	var payload detectionPayload
	if err := decodeJSONObject(content, &payload); err != nil {
		return nil, err
	}

	items := make([]domain.DetectedItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		if strings.TrimSpace(item.Category) == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// decodeJSONObject accepts bare JSON, fenced JSON, or JSON wrapped in prose
func decodeJSONObject(content string, v interface{}) error {
	s := stripCodeFence(strings.TrimSpace(content))
	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}

	i := strings.Index(s, "{")
	j := strings.LastIndex(s, "}")
	if i >= 0 && j > i {
		if err := json.Unmarshal([]byte(s[i:j+1]), v); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrVisionResponse, truncate(content, 120))
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.Index(s, "\n"); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
