package setup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TruncateAllTables empties every table the bot writes to.
func TruncateAllTables(t *testing.T, db *pgxpool.Pool, ctx context.Context) {
	t.Log("Truncating all database tables...")

	for _, table := range []string{"ticket_events"} {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}
}

// ParseJSONArray reads a JSON array response body.
func ParseJSONArray(t *testing.T, resp *http.Response) []map[string]interface{} {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var result []map[string]interface{}
	err = json.Unmarshal(body, &result)
	require.NoError(t, err, "failed to parse JSON response: %s", string(body))

	return result
}

// ParseJSONResponse reads a JSON object response body.
func ParseJSONResponse(t *testing.T, resp *http.Response) map[string]interface{} {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NotEmpty(t, body, "response body should not be empty")

	var result map[string]interface{}
	err = json.Unmarshal(body, &result)
	require.NoError(t, err, "failed to parse JSON response")

	return result
}

// WaitForMailhogMessage polls MailHog until a message addressed to recipient arrives and returns its
// body.
func WaitForMailhogMessage(t *testing.T, mailhogURL string, recipient string) string {
	apiURL := fmt.Sprintf("%s/api/v2/search?kind=to&query=%s", mailhogURL, recipient)

	const maxAttempts = 20
	for i := 0; i < maxAttempts; i++ {
		// #nosec G107 -- apiURL points at the MailHog test container
		resp, err := http.Get(apiURL)
		require.NoError(t, err, "failed to fetch messages from MailHog")

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		require.NoError(t, err, "failed to read MailHog response")

		var search struct {
			Items []struct {
				Content struct {
					Body string `json:"Body"`
				} `json:"Content"`
			} `json:"items"`
		}
		err = json.Unmarshal(body, &search)
		require.NoError(t, err, "failed to parse MailHog JSON response")

		if len(search.Items) > 0 {
			return strings.ReplaceAll(search.Items[0].Content.Body, "=\r\n", "")
		}

		time.Sleep(500 * time.Millisecond)
	}

	require.Fail(t, "no e-mail received", "recipient %s, %d attempts", recipient, maxAttempts)
	return ""
}
