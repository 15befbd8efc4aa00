// Command tracefeed seeds a running service with sample traceability
// records and drives partial updates against them, exercising the record
// API and the live alert stream end to end.
package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

// Default configuration constants.
const (
	defaultRecords  = 25
	defaultUpdates  = 50
	defaultTimeout  = 10 * time.Second
	defaultInterval = 200 * time.Millisecond
)

var origins = []string{
	"Green Valley Farms", "Coastal Fisheries", "Sunrise Dairy",
	"Highland Orchards", "Delta Grain Co",
}

var certificationPool = []string{
	"FDA Approved", "FSSAI Certified", "ISO 22000", "Organic", "Fair Trade",
}

type createRequest struct {
	TraceID             string     `json:"trace_id"`
	Name                string     `json:"name"`
	Origin              string     `json:"origin"`
	FreshnessExpiryDate *time.Time `json:"freshness_expiry_date,omitempty"`
	Certifications      []string   `json:"certifications,omitempty"`
	ContaminationRisk   bool       `json:"contamination_risk"`
}

type updateRequest struct {
	Origin            *string `json:"origin,omitempty"`
	ContaminationRisk *bool   `json:"contamination_risk,omitempty"`
}

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8090", "Base URL of the service")
		records  = flag.Int("records", defaultRecords, "Number of records to create")
		updates  = flag.Int("updates", defaultUpdates, "Number of partial updates to send")
		interval = flag.Duration("interval", defaultInterval, "Delay between updates")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	ctx := context.Background()
	client := &http.Client{Timeout: *timeout}

	traceIDs := make([]string, 0, *records)
	for i := 0; i < *records; i++ {
		traceID := "trace-" + uuid.New().String()
		expiry := time.Now().Add(time.Duration(randomInt(96)-24) * time.Hour)
		req := createRequest{
			TraceID:             traceID,
			Name:                fmt.Sprintf("batch-%03d", i),
			Origin:              origins[randomInt(len(origins))],
			FreshnessExpiryDate: &expiry,
			Certifications:      certificationPool[:randomInt(len(certificationPool)+1)],
			ContaminationRisk:   randomInt(10) == 0,
		}
		if err := post(ctx, client, *baseURL+"/records", req); err != nil {
			os.Stderr.WriteString("create failed: " + err.Error() + "\n")
			continue
		}
		traceIDs = append(traceIDs, traceID)
	}
	fmt.Printf("created %d records\n", len(traceIDs))

	if len(traceIDs) == 0 {
		return
	}
	for i := 0; i < *updates; i++ {
		traceID := traceIDs[randomInt(len(traceIDs))]
		var req updateRequest
		if randomInt(2) == 0 {
			origin := origins[randomInt(len(origins))]
			req.Origin = &origin
		} else {
			risk := randomInt(4) == 0
			req.ContaminationRisk = &risk
		}
		if err := patch(ctx, client, *baseURL+"/records/"+traceID, req); err != nil {
			os.Stderr.WriteString("update failed: " + err.Error() + "\n")
		}
		time.Sleep(*interval)
	}
	fmt.Printf("sent %d updates\n", *updates)
}

func post(ctx context.Context, client *http.Client, url string, body any) error {
	return send(ctx, client, http.MethodPost, url, body)
}

func patch(ctx context.Context, client *http.Client, url string, body any) error {
	return send(ctx, client, http.MethodPatch, url, body)
}

func send(ctx context.Context, client *http.Client, method, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s %s: status %d", method, url, resp.StatusCode)
	}
	return nil
}

// randomInt returns a random int in [0, n) using crypto/rand.
func randomInt(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}
