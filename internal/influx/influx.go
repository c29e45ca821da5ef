// Package influx writes design valuations to InfluxDB as time series points.
package influx

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/modgarage/customizer/internal/catalog"
	"github.com/modgarage/customizer/internal/config"
	"github.com/modgarage/customizer/internal/dispatcher"
	"github.com/modgarage/customizer/internal/valuation"
	"github.com/modgarage/customizer/pkg/core"
	"github.com/rs/zerolog"
)

// Measurement is the name of the valuation points.
const Measurement = "design_valuation"

var (
	ErrDisabled     = errors.New("influx.enabled is false")
	ErrNotConnected = errors.New("influxDB client not initialized and backup writer not available")
)

// Manager handles InfluxDB connections and writes.
type Manager struct {
	cfg    config.InfluxConfig
	Logger zerolog.Logger

	mu         sync.Mutex
	client     influxdb2.Client
	writer     influxdb2_api.WriteAPI
	backupFile *os.File
	backup     *gzip.Writer
	valid      bool
}

// NewManager creates a new InfluxDB manager.
func NewManager(cfg config.InfluxConfig, log zerolog.Logger) *Manager {
	return &Manager{cfg: cfg, Logger: log}
}

// Connect establishes a connection to InfluxDB. When the server does not
// answer, points are written to the gzip backup file instead.
func (m *Manager) Connect(ctx context.Context) error {
	if !m.cfg.Enabled {
		return ErrDisabled
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.client = influxdb2.NewClientWithOptions(
		m.cfg.URL(),
		m.cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000),
	)

	// validate client connection health
	running, err := m.client.Ping(ctx)
	m.valid = err == nil && running

	if !m.valid {
		if m.backup == nil {
			m.Logger.Info().Str("backupPath", m.cfg.BackupPath).
				Msg("Failed to initialize InfluxDB client, writing to backup file")

			file, err := os.OpenFile(m.cfg.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				return fmt.Errorf("error creating backup file: %w", err)
			}
			m.backupFile = file
			m.backup = gzip.NewWriter(file)
		}
		m.Logger.Warn().Msg("InfluxDB client failed to initialize, using backup writer")
		return nil
	}

	if err := m.setupOrganizationAndBucket(ctx); err != nil {
		return err
	}
	m.createWriter()
	m.Logger.Info().Str("bucket", m.cfg.Bucket).Msg("InfluxDB client initialized")
	return nil
}

// Valid reports whether points go to the server rather than the backup file.
func (m *Manager) Valid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.valid
}

func (m *Manager) setupOrganizationAndBucket(ctx context.Context) error {
	orgs := m.client.OrganizationsAPI()

	org, err := orgs.FindOrganizationByName(ctx, m.cfg.Org)
	if err != nil {
		m.Logger.Info().Str("org", m.cfg.Org).Msg("Organization not found, creating")
		org, err = orgs.CreateOrganizationWithName(ctx, m.cfg.Org)
		if err != nil {
			m.Logger.Error().Err(err).Str("org", m.cfg.Org).Msg("Error creating organization")
			return err
		}
	}

	// ensure bucket exists with 90 day retention
	if _, err := m.client.BucketsAPI().FindBucketByName(ctx, m.cfg.Bucket); err != nil {
		m.Logger.Info().Str("bucket", m.cfg.Bucket).Msg("Bucket not found, creating")

		rule := domain.RetentionRuleTypeExpire
		_, err = m.client.BucketsAPI().CreateBucketWithName(ctx, org, m.cfg.Bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: 60 * 60 * 24 * 90, // 90 days
		})
		if err != nil {
			m.Logger.Error().Err(err).Str("bucket", m.cfg.Bucket).Msg("Error creating bucket")
			return err
		}
	}
	return nil
}

func (m *Manager) createWriter() {
	m.writer = m.client.WriteAPI(m.cfg.Org, m.cfg.Bucket)

	go func(errorsCh <-chan error) {
		for writeErr := range errorsCh {
			m.Logger.Error().Err(writeErr).Str("bucket", m.cfg.Bucket).
				Msg("Error sending data to InfluxDB")
		}
	}(m.writer.Errors())
}

// WritePoint writes a point to InfluxDB or the backup file.
func (m *Manager) WritePoint(point *influxdb2_write.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid {
		m.writer.WritePoint(point)
		return nil
	}
	if m.backup == nil {
		return ErrNotConnected
	}

	lineProtocol := strings.TrimSuffix(influxdb2_write.PointToLineProtocol(point, time.Nanosecond), "\n")
	if _, err := m.backup.Write([]byte(lineProtocol + "\n")); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// Close flushes pending points and releases the client and backup file.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writer != nil {
		m.writer.Flush()
	}
	if m.client != nil {
		m.client.Close()
	}

	var errs []error
	if m.backup != nil {
		errs = append(errs, m.backup.Close())
		errs = append(errs, m.backupFile.Close())
		m.backup = nil
		m.backupFile = nil
	}
	m.valid = false
	return errors.Join(errs...)
}

// NewValuationPoint builds the design_valuation point for a valued design.
func NewValuationPoint(d core.Design, v core.Valuation, ts time.Time) *influxdb2_write.Point {
	category := "unknown"
	if model, ok := catalog.Model(d.BaseModel); ok {
		category = model.Category.String()
	}

	perf := d.Modifications.Performance
	return influxdb2_write.NewPoint(
		Measurement,
		map[string]string{
			"baseModel":    d.BaseModel,
			"category":     category,
			"rating":       v.Rating.String(),
			"transmission": perf.Transmission.String(),
		},
		map[string]any{
			"price":        v.Price,
			"speed":        v.Stats.Speed,
			"acceleration": v.Stats.Acceleration,
			"braking":      v.Stats.Braking,
			"handling":     v.Stats.Handling,
			"weight":       v.Stats.Weight,
			"engineLevel":  perf.EngineLevel,
			"turbo":        perf.TurboInstalled,
		},
		ts,
	)
}

// RegisterHandlers subscribes the manager to valuation and creation events.
// Writes are buffered so the request path never waits on InfluxDB.
func (m *Manager) RegisterHandlers(d *dispatcher.Dispatcher) {
	d.Register(dispatcher.CmdDesignValuated, m.handleEvent, dispatcher.Buffered(1000))
	d.Register(dispatcher.CmdDesignCreated, m.handleEvent, dispatcher.Buffered(1000))
}

func (m *Manager) handleEvent(e dispatcher.Event) (any, error) {
	ev, ok := dispatcher.DesignEventFrom(e)
	if !ok {
		return nil, fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Command)
	}

	v := ev.Valuation
	if v == nil {
		computed, err := valuation.Valuate(ev.Design)
		if err != nil {
			return nil, err
		}
		v = &computed
	}

	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return nil, m.WritePoint(NewValuationPoint(ev.Design, *v, ts))
}
