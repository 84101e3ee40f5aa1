package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Метрики
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traffic_generator_requests_total",
		Help: "Запросы к API трекинга по операциям и кодам ответа",
	}, []string{"operation", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "traffic_generator_request_duration_seconds",
		Help:    "Длительность запросов к API трекинга",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.3, 0.5, 1, 2},
	}, []string{"operation"})
)

var zipCodes = []string{"10001", "10002", "10003", "20001", "20002"}

// путь отправки до вручения, код подтверждения генератор не знает,
// поэтому доходим до out_for_delivery и иногда возвращаем отправителю
var route = []string{"processing", "in_transit", "out_for_delivery", "returned"}

type client struct {
	baseURL string
	http    *http.Client
}

func (c *client) do(operation, method, path string, body any, out any) int {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			log.Printf("encode %s: %v", operation, err)
			return 0
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, &payload)
	if err != nil {
		log.Printf("build %s: %v", operation, err)
		return 0
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	requestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(operation, "error").Inc()
		return 0
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()
	if out != nil && resp.StatusCode < http.StatusMultipleChoices {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Printf("decode %s: %v", operation, err)
		}
	}
	return resp.StatusCode
}

func (c *client) registerPartners(n int) {
	for i := 0; i < n; i++ {
		c.do("partner_post", http.MethodPost, "/partner", map[string]any{
			"name":         fmt.Sprintf("Partner %d", i),
			"email":        fmt.Sprintf("partner-%d-%d@example.com", time.Now().Unix(), i),
			"zip_codes":    []string{zipCodes[i%len(zipCodes)], zipCodes[(i+1)%len(zipCodes)]},
			"max_capacity": 5 + rand.IntN(20),
		}, nil)
	}
}

func (c *client) shipmentLifecycle() {
	var created struct {
		ID string `json:"id"`
	}
	status := c.do("shipment_post", http.MethodPost, "/shipment", map[string]any{
		"content":              "parcel",
		"weight":               1 + rand.Float64()*20,
		"destination":          zipCodes[rand.IntN(len(zipCodes))],
		"client_contact_email": "client@example.com",
		"tags":                 []string{"standard"},
	}, &created)
	if status != http.StatusCreated || created.ID == "" {
		return
	}

	c.do("shipment_get", http.MethodGet, "/shipment/"+created.ID, nil, nil)

	if rand.IntN(10) == 0 {
		c.do("shipment_cancel_post", http.MethodPost, "/shipment/"+created.ID+"/cancel", nil, nil)
		return
	}

	steps := 1 + rand.IntN(len(route))
	for _, next := range route[:steps] {
		code := c.do("shipment_patch", http.MethodPatch, "/shipment/"+created.ID, map[string]any{
			"status":   next,
			"location": "Hub " + strconv.Itoa(rand.IntN(10)),
		}, nil)
		if code != http.StatusOK {
			return
		}
	}
}

func main() {
	baseURL := flag.String("target", "http://localhost:8080", "tracker API base URL")
	partners := flag.Int("partners", 10, "partners to register at start")
	interval := flag.Duration("interval", time.Second, "pause between shipments")
	flag.Parse()

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(":2112", nil); err != nil {
			log.Fatalf("metrics server: %v", err)
		}
	}()

	c := &client{baseURL: *baseURL, http: &http.Client{Timeout: 5 * time.Second}}
	c.registerPartners(*partners)

	for {
		c.shipmentLifecycle()
		c.do("shipments_get", http.MethodGet, "/shipments?page_size=20", nil, nil)
		time.Sleep(*interval)
	}
}
