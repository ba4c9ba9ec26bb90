package fusion

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

// cookieRecord mirrors one entry of the externally provisioned cookie file,
// a JSON array exported from an authenticated browser session.
type cookieRecord struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Domain   string `json:"domain"`
	Path     string `json:"path,omitempty"`
	Secure   bool   `json:"secure,omitempty"`
	HttpOnly bool   `json:"httpOnly,omitempty"`
}

func loadCookies(path string) ([]*http.Cookie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	records := []cookieRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	cookies := make([]*http.Cookie, 0, len(records))
	for i, record := range records {
		if record.Name == "" || record.Value == "" || record.Domain == "" {
			return nil, fmt.Errorf("cookie %d in %s is missing a required field", i, path)
		}
		cookies = append(cookies, &http.Cookie{
			Name:     record.Name,
			Value:    record.Value,
			Domain:   record.Domain,
			Path:     record.Path,
			Secure:   record.Secure,
			HttpOnly: record.HttpOnly,
		})
	}
	return cookies, nil
}
