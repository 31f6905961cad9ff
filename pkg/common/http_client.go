package common

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// Get sends a GET request to the specified URL with the given headers.
// It returns the decoded JSON body (or the raw string when the body is not
// JSON) or an error. Non-2xx statuses are returned to the caller as-is via
// the decoded body; transport failures surface as errors.
func Get(url string, headers map[string]string) (interface{}, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result interface{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &result); err != nil {
			return string(body), nil
		}
	}

	return result, nil
}

// Post sends a POST request with a JSON payload and the given headers.
func Post(url string, payload interface{}, headers map[string]string) (interface{}, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result interface{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &result); err != nil {
			return string(body), nil
		}
	}

	return result, nil
}
