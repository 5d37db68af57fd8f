// Package syncer is the remote sync client: it reads the full dataset from
// the configured spreadsheet endpoint (remote-authoritative replace) and
// pushes single-record writes best-effort. Local state is never blocked on
// the remote: a failed push leaves the already persisted local save in place,
// and a failed fetch leaves the local collection untouched.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"pm-dashboard-backend/config"
	"pm-dashboard-backend/internal/metrics"
	"pm-dashboard-backend/internal/model"
	"pm-dashboard-backend/internal/reconcile"
	"pm-dashboard-backend/internal/store"
)

// SyncError describes a failed exchange with the remote endpoint. Callers
// treat it as "not connected", never as fatal.
type SyncError struct {
	Op  string // "fetch" or "push"
	URL string
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("cloud %s failed for %s: %v", e.Op, e.URL, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// ErrNotConfigured is returned by SyncOnce when no endpoint URL is set.
var ErrNotConfigured = errors.New("no cloud endpoint configured")

// ErrSyncInProgress is returned when a sync is triggered while one is
// already running. Triggers are rejected, not queued.
var ErrSyncInProgress = errors.New("a sync is already in progress")

// messageTTL bounds how long a transient status message is reported.
const messageTTL = 5 * time.Second

// Status is the connectivity snapshot shown in the dashboard banner.
// Connected is nil until the first fetch or push has completed.
type Status struct {
	Connected *bool  `json:"connected"`
	Syncing   bool   `json:"syncing"`
	Message   string `json:"message,omitempty"`
}

// Service is the remote sync client.
type Service struct {
	cfg     *config.Config
	store   store.Store
	client  *http.Client
	metrics *metrics.Metrics

	mu        sync.Mutex
	syncing   bool
	connected *bool
	message   string
	messageAt time.Time

	pushJobs chan model.AssetRecord
}

// NewService creates a sync client bound to the given store.
func NewService(cfg *config.Config, st store.Store, m *metrics.Metrics) *Service {
	return &Service{
		cfg:      cfg,
		store:    st,
		client:   &http.Client{Timeout: cfg.Sync.Timeout},
		metrics:  m,
		pushJobs: make(chan model.AssetRecord, cfg.Sync.PushQueueSize),
	}
}

// Start launches the push worker. It drains the fire-and-forget push queue
// until the context is cancelled.
func (s *Service) Start(ctx context.Context) {
	go s.pushWorker(ctx)
}

// SyncOnce fetches the remote dataset and replaces the local collection with
// it. Nothing local is modified when the fetch fails.
func (s *Service) SyncOnce(ctx context.Context) error {
	endpoint, err := s.store.EndpointURL(ctx)
	if err != nil {
		return err
	}
	if endpoint == "" {
		return ErrNotConfigured
	}

	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		return ErrSyncInProgress
	}
	s.syncing = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.syncing = false
		s.mu.Unlock()
	}()

	records, err := s.FetchAll(ctx, endpoint)
	if err != nil {
		s.metrics.ObserveSync("fetch", "error")
		s.setConnected(false, "Cloud sync failed")
		return err
	}

	current, err := s.store.LoadAssets(ctx)
	if err != nil {
		current = nil
	}
	if err := s.store.ReplaceAssets(ctx, reconcile.ReplaceFromRemote(current, records)); err != nil {
		return fmt.Errorf("failed to persist fetched dataset: %w", err)
	}

	s.metrics.ObserveSync("fetch", "ok")
	s.setConnected(true, "Cloud sync complete")
	log.Printf("Cloud sync complete: %d records", len(records))
	return nil
}

// FetchAll reads the full remote dataset. The request carries a cache-busting
// timestamp parameter; the response may be array-of-arrays (positional
// columns) or array-of-objects (named fields). Rows without an id are
// dropped.
func (s *Service) FetchAll(ctx context.Context, endpoint string) ([]model.AssetRecord, error) {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	url := endpoint + sep + "_t=" + strconv.FormatInt(time.Now().UnixMilli(), 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &SyncError{Op: "fetch", URL: endpoint, Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &SyncError{Op: "fetch", URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &SyncError{Op: "fetch", URL: endpoint, Err: fmt.Errorf("received status code %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SyncError{Op: "fetch", URL: endpoint, Err: err}
	}

	records, err := decodeDataset(body)
	if err != nil {
		return nil, &SyncError{Op: "fetch", URL: endpoint, Err: err}
	}
	return records, nil
}

// decodeDataset detects the row shape once and dispatches each row to the
// matching mapper.
func decodeDataset(body []byte) ([]model.AssetRecord, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("response is not a JSON array: %w", err)
	}

	records := make([]model.AssetRecord, 0, len(rows))
	for _, row := range rows {
		trimmed := bytes.TrimSpace(row)
		if len(trimmed) == 0 {
			continue
		}
		var rec model.AssetRecord
		var ok bool
		switch trimmed[0] {
		case '[':
			rec, ok = decodePositional(row)
		case '{':
			rec, ok = decodeNamed(row)
		}
		if ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// EnqueuePush queues a best-effort remote write for the record. The call
// never blocks: when the queue is full the push is dropped with a warning,
// matching the fire-and-forget contract.
func (s *Service) EnqueuePush(record model.AssetRecord) {
	select {
	case s.pushJobs <- record:
	default:
		log.Printf("Warning: push queue full, dropping cloud write for asset %s", record.ID)
		s.metrics.ObserveSync("push", "dropped")
	}
}

func (s *Service) pushWorker(ctx context.Context) {
	for {
		select {
		case record := <-s.pushJobs:
			endpoint, err := s.store.EndpointURL(ctx)
			if err != nil || endpoint == "" {
				continue
			}
			if err := s.PushOne(ctx, endpoint, record); err != nil {
				log.Printf("Cloud push for asset %s failed: %v", record.ID, err)
				s.metrics.ObserveSync("push", "error")
				s.setConnected(false, "Cloud save failed")
				continue
			}
			s.metrics.ObserveSync("push", "ok")
			s.setConnected(true, "Saved to cloud")
		case <-ctx.Done():
			return
		}
	}
}

// PushOne issues one append/update write for the record. The response body is
// not parsed; a transport error or a non-2xx status yields a SyncError the
// caller may log and otherwise ignore.
func (s *Service) PushOne(ctx context.Context, endpoint string, record model.AssetRecord) error {
	payload, err := json.Marshal(map[string]any{"values": encodeRow(record)})
	if err != nil {
		return &SyncError{Op: "push", URL: endpoint, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return &SyncError{Op: "push", URL: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := s.client.Do(req)
	if err != nil {
		return &SyncError{Op: "push", URL: endpoint, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SyncError{Op: "push", URL: endpoint, Err: fmt.Errorf("received status code %d", resp.StatusCode)}
	}
	return nil
}

// Status reports the current connectivity snapshot. Transient messages
// expire after a few seconds, mirroring the dashboard's auto-dismissing
// banner.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := s.message
	if time.Since(s.messageAt) > messageTTL {
		msg = ""
	}
	return Status{Connected: s.connected, Syncing: s.syncing, Message: msg}
}

func (s *Service) setConnected(ok bool, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = &ok
	s.message = message
	s.messageAt = time.Now()
}
