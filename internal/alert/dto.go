package alert

import (
	"encoding/json"
	"errors"
	"strings"
)

// SensorAlertRequest is the payload pushed by the monitoring feed. Assets are
// referenced by tag because the feed does not know internal IDs.
type SensorAlertRequest struct {
	AssetTag string          `json:"asset_tag"`
	Source   string          `json:"source"`
	Severity string          `json:"severity"`
	Message  string          `json:"message"`
	Reading  json.RawMessage `json:"reading,omitempty"`
}

func (req *SensorAlertRequest) Validate() error {
	if strings.TrimSpace(req.AssetTag) == "" {
		return errors.New("asset_tag is required")
	}
	if strings.TrimSpace(req.Source) == "" {
		return errors.New("source is required")
	}
	if !ValidSeverity(req.Severity) {
		return errors.New("severity must be info, warning or critical")
	}
	if strings.TrimSpace(req.Message) == "" {
		return errors.New("message is required")
	}
	return nil
}

type AlertsResponse struct {
	Alerts []*Alert `json:"alerts"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}
