// Package appium implements core.Session over an Appium server speaking
// the W3C WebDriver protocol.
package appium

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// W3C WebDriver element identifier key (standard constant)
const w3cElementKey = "element-6066-11e4-a52e-4f735466cecf"

// W3C error strings the harness distinguishes.
const (
	errNoSuchElement = "no such element"
	errStaleElement  = "stale element reference"
)

// wireError is a structured error returned by the automation server.
type wireError struct {
	Type    string
	Message string
}

func (e *wireError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Client handles HTTP communication with the Appium server. Exactly one
// round trip per method; no batching or pipelining.
type Client struct {
	serverURL string
	sessionID string
	client    *http.Client
}

// NewClient creates a new Appium client.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		client: &http.Client{
			Timeout: 2 * time.Minute, // generous: cold app start can be slow
		},
	}
}

// Connect creates a new session with the given capabilities.
func (c *Client) Connect(capabilities map[string]interface{}) error {
	body := map[string]interface{}{
		"capabilities": map[string]interface{}{
			"alwaysMatch": capabilities,
		},
	}

	resp, err := c.post("/session", body)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	value, ok := resp["value"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("invalid session response")
	}

	c.sessionID, _ = value["sessionId"].(string)
	if c.sessionID == "" {
		return fmt.Errorf("no session ID in response")
	}

	return nil
}

// Disconnect closes the session. Safe to call when no session is open.
func (c *Client) Disconnect() error {
	if c.sessionID == "" {
		return nil
	}
	_, err := c.delete(c.sessionPath(""))
	c.sessionID = ""
	return err
}

// HasSession returns true if a session is active.
func (c *Client) HasSession() bool {
	return c.sessionID != ""
}

// FindElement finds a single element. A non-match is reported as a
// *wireError with type "no such element".
func (c *Client) FindElement(using, value string) (string, error) {
	body := map[string]interface{}{
		"using": using,
		"value": value,
	}

	resp, err := c.post(c.sessionPath("/element"), body)
	if err != nil {
		return "", err
	}

	elemValue, ok := resp["value"].(map[string]interface{})
	if !ok {
		return "", &wireError{Type: errNoSuchElement, Message: "empty find response"}
	}
	id := extractElementID(elemValue)
	if id == "" {
		return "", &wireError{Type: errNoSuchElement, Message: "no element ID in response"}
	}
	return id, nil
}

// ClickElement clicks an element using the WebDriver standard endpoint.
func (c *Client) ClickElement(elementID string) error {
	_, err := c.post(c.elementPath(elementID)+"/click", nil)
	return err
}

// ClearElement clears an element's text.
func (c *Client) ClearElement(elementID string) error {
	_, err := c.post(c.elementPath(elementID)+"/clear", nil)
	return err
}

// SetElementValue types text into an element.
func (c *Client) SetElementValue(elementID, text string) error {
	_, err := c.post(c.elementPath(elementID)+"/value", map[string]interface{}{
		"text": text,
	})
	return err
}

// GetElementText returns an element's text.
func (c *Client) GetElementText(elementID string) (string, error) {
	resp, err := c.get(c.elementPath(elementID) + "/text")
	if err != nil {
		return "", err
	}
	text, _ := resp["value"].(string)
	return text, nil
}

// IsElementDisplayed reports whether an element is visible.
func (c *Client) IsElementDisplayed(elementID string) (bool, error) {
	resp, err := c.get(c.elementPath(elementID) + "/displayed")
	if err != nil {
		return false, err
	}
	displayed, _ := resp["value"].(bool)
	return displayed, nil
}

// Back navigates back using the WebDriver standard endpoint.
func (c *Client) Back() error {
	_, err := c.post(c.sessionPath("/back"), nil)
	return err
}

// PressKeyCode presses a key by keycode (Android).
func (c *Client) PressKeyCode(keycode int) error {
	_, err := c.post(c.sessionPath("/appium/device/press_keycode"), map[string]interface{}{
		"keycode": keycode,
	})
	return err
}

// HTTP Helpers

func (c *Client) sessionPath(suffix string) string {
	return "/session/" + c.sessionID + suffix
}

func (c *Client) elementPath(elementID string) string {
	return c.sessionPath("/element/" + elementID)
}

func (c *Client) get(path string) (map[string]interface{}, error) {
	return c.request("GET", path, nil)
}

func (c *Client) post(path string, body interface{}) (map[string]interface{}, error) {
	return c.request("POST", path, body)
}

func (c *Client) delete(path string) (map[string]interface{}, error) {
	return c.request("DELETE", path, nil)
}

func (c *Client) request(method, path string, body interface{}) (map[string]interface{}, error) {
	url := c.serverURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// W3C errors arrive as {"value": {"error": ..., "message": ...}}
	if errValue, ok := result["value"].(map[string]interface{}); ok {
		if errType, ok := errValue["error"].(string); ok && errType != "" {
			msg, _ := errValue["message"].(string)
			return result, &wireError{Type: errType, Message: msg}
		}
	}

	return result, nil
}

func extractElementID(value map[string]interface{}) string {
	// W3C format
	if id, ok := value[w3cElementKey].(string); ok {
		return id
	}
	// Legacy format
	if id, ok := value["ELEMENT"].(string); ok {
		return id
	}
	return ""
}
