package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smokyabdulrahman/hijri-cal/internal/log"
)

const defaultBaseURL = "https://api.aladhan.com/v1"

// DateLayout is the Al Adhan date format for path segments and responses.
const DateLayout = "02-01-2006"

// DefaultMethod is the Umm al-Qura calendar method.
const DefaultMethod = "UAQ"

// Methods lists the calendarMethod values the API accepts.
var Methods = []string{"UAQ", "HJCoSA", "DIYANET", "MATHEMATICAL"}

// MethodNames describes each calendar method.
var MethodNames = map[string]string{
	"UAQ":          "Umm al-Qura",
	"HJCoSA":       "High Judicial Council of Saudi Arabia",
	"DIYANET":      "Diyanet, Turkey",
	"MATHEMATICAL": "Kuwaiti algorithm",
}

// Client communicates with the Al Adhan Islamic calendar API.
type Client struct {
	httpClient *http.Client
	// BaseURL is the API base URL. Defaults to the Al Adhan API.
	// Exported for testing with httptest.
	BaseURL string
}

// NewClient creates a new API client with sensible defaults.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: defaultBaseURL,
	}
}

// FetchHijriCalendar fetches the Hijri date of every day of the given
// Gregorian month.
func (c *Client) FetchHijriCalendar(year int, month time.Month, method string) ([]DateInfo, error) {
	endpoint := fmt.Sprintf("%s/gToHCalendar/%d/%d", c.BaseURL, int(month), year)

	var resp CalendarResponse
	if err := c.doRequest(endpoint, methodParams(method), &resp); err != nil {
		return nil, err
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code=%d status=%s", resp.Code, resp.Status)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("API returned no days for %d-%02d", year, int(month))
	}

	return resp.Data, nil
}

// FetchHijriDate converts a single Gregorian date.
func (c *Client) FetchHijriDate(date time.Time, method string) (*DateInfo, error) {
	endpoint := fmt.Sprintf("%s/gToH/%s", c.BaseURL, date.Format(DateLayout))

	var resp Response
	if err := c.doRequest(endpoint, methodParams(method), &resp); err != nil {
		return nil, err
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code=%d status=%s", resp.Code, resp.Status)
	}

	return &resp.Data, nil
}

func methodParams(method string) url.Values {
	params := url.Values{}
	if method != "" {
		params.Set("calendarMethod", method)
	}
	return params
}

func (c *Client) doRequest(endpoint string, params url.Values, out any) error {
	reqURL := endpoint
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}
	log.Debug("api request", "url", reqURL)

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}

	return nil
}

// ValidMethod reports whether m is a known calendarMethod.
func ValidMethod(m string) bool {
	for _, v := range Methods {
		if v == m {
			return true
		}
	}
	return false
}

// MethodsHelp returns the method list for flag help text.
func MethodsHelp() string {
	return strings.Join(Methods, ", ")
}
